// Package mailer dispatches booking notifications through the EmailJS REST
// API. EmailJS has no Go SDK; the API is a single JSON POST.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"velvetroom/internal/entity"
	"velvetroom/pkg/config"
)

type Mailer interface {
	SendBookingNotification(ctx context.Context, booking *entity.Booking) error
}

type EmailJS struct {
	endpoint   string
	serviceID  string
	templateID string
	publicKey  string
	privateKey string
	recipient  string
	httpClient *http.Client
}

func NewEmailJS(cfg *config.Config) *EmailJS {
	return &EmailJS{
		endpoint:   cfg.EmailJSEndpoint,
		serviceID:  cfg.EmailJSServiceID,
		templateID: cfg.EmailJSTemplateID,
		publicKey:  cfg.EmailJSPublicKey,
		privateKey: cfg.EmailJSPrivateKey,
		recipient:  cfg.BookingRecipient,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

func (m *EmailJS) SendBookingNotification(ctx context.Context, booking *entity.Booking) error {
	payload := emailJSRequest{
		ServiceID:   m.serviceID,
		TemplateID:  m.templateID,
		UserID:      m.publicKey,
		AccessToken: m.privateKey,
		TemplateParams: map[string]string{
			"to_email":     m.recipient,
			"client_name":  booking.Name,
			"client_email": booking.Email,
			"client_phone": booking.Phone,
			"event_date":   booking.EventDate,
			"details":      booking.Details,
			"submitted_at": booking.SubmittedAt.Format(time.RFC3339),
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("emailjs request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("emailjs returned %d: %s", resp.StatusCode, msg)
	}
	return nil
}
