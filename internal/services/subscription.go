package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"meetapp/internal/domain"
)

type subscriptionService struct {
	meetupRepo       domain.MeetupRepository
	subscriptionRepo domain.SubscriptionRepository
	userRepo         domain.UserRepository
	queue            domain.JobQueue
	logger           *slog.Logger
	contextTimeout   time.Duration
	now              func() time.Time
}

// NewSubscriptionService creates a SubscriptionService. A SubscriptionMail job is
// enqueued on queue for every successful subscription.
func NewSubscriptionService(
	meetupRepo domain.MeetupRepository,
	subscriptionRepo domain.SubscriptionRepository,
	userRepo domain.UserRepository,
	queue domain.JobQueue,
	logger *slog.Logger,
	timeout time.Duration,
) domain.SubscriptionService {
	return &subscriptionService{
		meetupRepo:       meetupRepo,
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		queue:            queue,
		logger:           logger,
		contextTimeout:   timeout,
		now:              time.Now,
	}
}

func (s *subscriptionService) Subscribe(ctx context.Context, userID, meetupID string) (*domain.Subscription, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	meetup, err := s.meetupRepo.GetByID(ctx, meetupID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		meetup = nil
	case err != nil:
		return nil, fmt.Errorf("get meetup: %w", err)
	}

	var slots []domain.SubscribedSlot
	if meetup != nil {
		slots, err = s.subscriptionRepo.ListSlotsByUserID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("list subscribed slots: %w", err)
		}
	}

	if err := domain.CanSubscribe(userID, meetup, slots, s.now()); err != nil {
		return nil, err
	}

	now := time.Now()
	sub := domain.NewSubscription(meetup.ID, userID, now, now)
	if err := s.subscriptionRepo.Create(ctx, sub); err != nil {
		if errors.Is(err, domain.ErrTimeConflict) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("create subscription: %w", err)
	}

	s.enqueueMail(ctx, meetup, user)
	return sub, nil
}

// enqueueMail schedules the organizer notification. Failures are logged only.
func (s *subscriptionService) enqueueMail(ctx context.Context, meetup *domain.Meetup, user *domain.User) {
	data := &domain.SubscriptionMailData{
		MeetupID:        meetup.ID,
		MeetupTitle:     meetup.Title,
		MeetupDate:      meetup.Date,
		SubscriberName:  user.Name,
		SubscriberEmail: user.Email,
	}
	if meetup.Organizer != nil {
		data.OrganizerName = meetup.Organizer.Name
		data.OrganizerEmail = meetup.Organizer.Email
	}
	if err := s.queue.Enqueue(ctx, domain.SubscriptionMailJobKey, data); err != nil {
		s.logger.ErrorContext(ctx, "subscription mail not enqueued", "meetup_id", meetup.ID, "user_id", user.ID, "err", err)
	}
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, userID, meetupID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	meetup, err := s.meetupRepo.GetByID(ctx, meetupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("get meetup: %w", err)
	}
	sub, err := s.subscriptionRepo.GetByMeetupAndUser(ctx, meetupID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotSubscribed
		}
		return fmt.Errorf("get subscription: %w", err)
	}
	if meetup.IsPast(s.now()) {
		return domain.ErrMeetupPast
	}
	if err := s.subscriptionRepo.Delete(ctx, sub.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotSubscribed
		}
		return fmt.Errorf("delete subscription: %w", err)
	}
	return nil
}

func (s *subscriptionService) ListUpcoming(ctx context.Context, userID string) ([]*domain.SubscriptionWithMeetup, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	subs, err := s.subscriptionRepo.ListUpcomingByUserID(ctx, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return subs, nil
}
