package domain

import (
	"context"
	"time"
)

// Subscription represents a user's registration to attend a meetup.
// swagger:model Subscription
type Subscription struct {
	ID        string    `json:"id"`
	MeetupID  string    `json:"meetup_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSubscription creates a new Subscription. ID is typically set by the repository on create.
func NewSubscription(meetupID, userID string, createdAt, updatedAt time.Time) *Subscription {
	return &Subscription{
		MeetupID:  meetupID,
		UserID:    userID,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// SubscribedSlot is the (meetup, timestamp) pair of one of a user's existing subscriptions.
type SubscribedSlot struct {
	MeetupID string
	Date     time.Time
}

// SubscriptionWithMeetup bundles a subscription with its meetup.
type SubscriptionWithMeetup struct {
	Subscription *Subscription `json:"subscription"`
	Meetup       *Meetup       `json:"meetup"`
}

// CanSubscribe decides whether userID may subscribe to meetup given the user's
// existing slots. Checks run in order and stop at the first failure:
// missing meetup, own meetup, meetup in the past, slot at the same instant.
// Slots collide only on exact timestamp equality.
func CanSubscribe(userID string, meetup *Meetup, existing []SubscribedSlot, now time.Time) error {
	if meetup == nil {
		return ErrNotFound
	}
	if meetup.OwnerID == userID {
		return ErrSelfSubscription
	}
	if !meetup.Date.After(now) {
		return ErrMeetupPast
	}
	for _, slot := range existing {
		if slot.Date.Equal(meetup.Date) {
			return ErrTimeConflict
		}
	}
	return nil
}

// SubscriptionRepository defines storage operations for subscriptions.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *Subscription) error
	GetByMeetupAndUser(ctx context.Context, meetupID, userID string) (*Subscription, error)
	ListSlotsByUserID(ctx context.Context, userID string) ([]SubscribedSlot, error)
	ListUpcomingByUserID(ctx context.Context, userID string, after time.Time) ([]*SubscriptionWithMeetup, error)
	Delete(ctx context.Context, id string) error
}

// SubscriptionService defines attendee-facing operations on meetups.
type SubscriptionService interface {
	Subscribe(ctx context.Context, userID, meetupID string) (*Subscription, error)
	Unsubscribe(ctx context.Context, userID, meetupID string) error
	ListUpcoming(ctx context.Context, userID string) ([]*SubscriptionWithMeetup, error)
}
