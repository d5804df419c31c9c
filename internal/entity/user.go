package entity

import "time"

type User struct {
	ID          int        `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Password    string     `json:"-"`
	DateOfBirth string     `json:"date_of_birth"`
	IsActive    bool       `json:"is_active"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Profile is the user view returned by the profile endpoint, folding in
// entitlement and tipping history.
type Profile struct {
	User
	HasGalleryAccess bool  `json:"has_gallery_access"`
	TipsSent         int64 `json:"tips_sent"`
	TotalTippedCents int64 `json:"total_tipped_cents"`
}
