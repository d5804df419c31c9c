package entity

import "time"

// Booking is a booking-form submission. It is dispatched as email and never
// persisted locally.
type Booking struct {
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	EventDate   string    `json:"event_date"`
	Details     string    `json:"details"`
	SubmittedAt time.Time `json:"submitted_at"`
}
