package usecase

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"velvetroom/internal/entity"
	"velvetroom/internal/mailer"
	"velvetroom/pkg/logger"
)

type BookingUseCase interface {
	// Submit validates the booking form and dispatches the notification mail.
	Submit(ctx context.Context, booking *entity.Booking) error
}

type bookingUseCase struct {
	mailer mailer.Mailer
	logger *logger.Logger
}

func NewBookingUseCase(m mailer.Mailer, logger *logger.Logger) BookingUseCase {
	return &bookingUseCase{mailer: m, logger: logger}
}

func (uc *bookingUseCase) Submit(ctx context.Context, booking *entity.Booking) error {
	booking.Name = strings.TrimSpace(booking.Name)
	booking.Email = strings.TrimSpace(booking.Email)
	booking.Phone = strings.TrimSpace(booking.Phone)
	booking.Details = strings.TrimSpace(booking.Details)

	if booking.Name == "" || booking.Email == "" || booking.Details == "" {
		return invalid("name, email and details are required")
	}
	if _, err := mail.ParseAddress(booking.Email); err != nil {
		return invalid("invalid email address")
	}
	if booking.EventDate != "" {
		if _, err := time.Parse("2006-01-02", booking.EventDate); err != nil {
			return invalid("invalid event date")
		}
	}
	booking.SubmittedAt = time.Now()

	if err := uc.mailer.SendBookingNotification(ctx, booking); err != nil {
		uc.logger.Error("Booking notification failed for %s: %v", booking.Email, err)
		return fmt.Errorf("%w: %v", ErrProvider, err)
	}

	uc.logger.Info("Booking request from %s dispatched", booking.Email)
	return nil
}
