package services

import (
	"context"
	"fmt"
	"log/slog"

	"meetapp/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendSubscriptionNotice tells a meetup organizer that someone subscribed, using the "subscription" template.
func (s *emailService) SendSubscriptionNotice(ctx context.Context, data *domain.SubscriptionMailData) error {
	if data == nil {
		return fmt.Errorf("subscription mail data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("subscription", data)
	if err != nil {
		return fmt.Errorf("failed to render subscription template: %w", err)
	}
	if err := s.mailer.Send(ctx, data.OrganizerEmail, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send subscription email: %w", err)
	}
	s.logger.InfoContext(ctx, "[EMAIL] subscription notice sent", "to", data.OrganizerEmail, "meetup_id", data.MeetupID)
	return nil
}
