package services

import (
	"context"
	"encoding/json"
	"fmt"

	"meetapp/internal/domain"
)

// NewSubscriptionMailHandler returns the queue handler for SubscriptionMail jobs.
func NewSubscriptionMailHandler(emailService domain.EmailService) domain.JobHandler {
	return func(ctx context.Context, payload json.RawMessage) error {
		var data domain.SubscriptionMailData
		if err := json.Unmarshal(payload, &data); err != nil {
			return fmt.Errorf("decode subscription mail payload: %w", err)
		}
		return emailService.SendSubscriptionNotice(ctx, &data)
	}
}
