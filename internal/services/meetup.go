package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"meetapp/internal/domain"
)

type meetupService struct {
	meetupRepo     domain.MeetupRepository
	contextTimeout time.Duration
	now            func() time.Time
}

func NewMeetupService(meetupRepo domain.MeetupRepository, timeout time.Duration) domain.MeetupService {
	return &meetupService{
		meetupRepo:     meetupRepo,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *meetupService) markPast(meetups ...*domain.Meetup) {
	now := s.now()
	for _, m := range meetups {
		m.Past = m.IsPast(now)
	}
}

func (s *meetupService) List(ctx context.Context, filter domain.MeetupFilter) ([]*domain.Meetup, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	meetups, total, err := s.meetupRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list meetups: %w", err)
	}
	s.markPast(meetups...)
	return meetups, total, nil
}

func (s *meetupService) Get(ctx context.Context, id string) (*domain.Meetup, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	m, err := s.meetupRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get meetup: %w", err)
	}
	s.markPast(m)
	return m, nil
}

func (s *meetupService) Create(ctx context.Context, meetup *domain.Meetup) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if meetup.OwnerID == "" {
		return fmt.Errorf("meetup owner is required")
	}
	now := s.now()
	if meetup.Date.Before(now) {
		return domain.ErrPastDate
	}
	meetup.CreatedAt = now
	meetup.UpdatedAt = now

	if err := s.meetupRepo.Create(ctx, meetup); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return err
		}
		return fmt.Errorf("create meetup: %w", err)
	}
	return nil
}

// loadOwned returns the meetup when userID owns it.
func (s *meetupService) loadOwned(ctx context.Context, id, userID string) (*domain.Meetup, error) {
	m, err := s.meetupRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get meetup: %w", err)
	}
	if m.OwnerID != userID {
		return nil, domain.ErrForbidden
	}
	return m, nil
}

func (s *meetupService) Update(ctx context.Context, id, userID string, patch domain.MeetupPatch) (*domain.Meetup, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	m, err := s.loadOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if patch.Date != nil && patch.Date.Before(now) {
		return nil, domain.ErrPastDate
	}
	if m.IsPast(now) {
		return nil, domain.ErrMeetupPast
	}

	updated, err := s.meetupRepo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) {
			return nil, err
		}
		return nil, fmt.Errorf("update meetup: %w", err)
	}
	s.markPast(updated)
	return updated, nil
}

func (s *meetupService) Delete(ctx context.Context, id, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	m, err := s.loadOwned(ctx, id, userID)
	if err != nil {
		return err
	}
	if m.IsPast(s.now()) {
		return domain.ErrMeetupPast
	}
	if err := s.meetupRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete meetup: %w", err)
	}
	return nil
}

func (s *meetupService) ListOrganizing(ctx context.Context, userID string) ([]*domain.Meetup, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	meetups, err := s.meetupRepo.ListUpcomingByOwnerID(ctx, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("list organizing meetups: %w", err)
	}
	return meetups, nil
}
