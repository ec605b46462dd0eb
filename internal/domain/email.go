package domain

import (
	"context"
	"time"
)

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// SubscriptionMailData holds data for the new-subscriber email sent to a meetup organizer.
type SubscriptionMailData struct {
	MeetupID        string    `json:"meetup_id"`
	MeetupTitle     string    `json:"meetup_title"`
	MeetupDate      time.Time `json:"meetup_date"`
	OrganizerName   string    `json:"organizer_name"`
	OrganizerEmail  string    `json:"organizer_email"`
	SubscriberName  string    `json:"subscriber_name"`
	SubscriberEmail string    `json:"subscriber_email"`
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendSubscriptionNotice(ctx context.Context, data *SubscriptionMailData) error
}
