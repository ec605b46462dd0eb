package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"meetapp/internal/domain"
)

type subscriptionRepository struct {
	DB *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) domain.SubscriptionRepository {
	return &subscriptionRepository{DB: db}
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	query := `
		INSERT INTO subscriptions (meetup_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, sub.MeetupID, sub.UserID, sub.CreatedAt, sub.UpdatedAt).Scan(&sub.ID)
	if err != nil {
		switch {
		case isPQCode(err, pqUniqueViolation):
			// already subscribed to this meetup, hence to its timestamp
			return domain.ErrTimeConflict
		case isPQCode(err, pqForeignKeyViolation):
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *subscriptionRepository) GetByMeetupAndUser(ctx context.Context, meetupID, userID string) (*domain.Subscription, error) {
	query := `
		SELECT id, meetup_id, user_id, created_at, updated_at
		FROM subscriptions
		WHERE meetup_id = $1 AND user_id = $2
	`
	sub := &domain.Subscription{}
	err := r.DB.QueryRowContext(ctx, query, meetupID, userID).
		Scan(&sub.ID, &sub.MeetupID, &sub.UserID, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return sub, nil
}

func (r *subscriptionRepository) ListSlotsByUserID(ctx context.Context, userID string) ([]domain.SubscribedSlot, error) {
	query := `
		SELECT s.meetup_id, m.date
		FROM subscriptions s
		JOIN meetups m ON m.id = s.meetup_id
		WHERE s.user_id = $1
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make([]domain.SubscribedSlot, 0)
	for rows.Next() {
		var slot domain.SubscribedSlot
		if err := rows.Scan(&slot.MeetupID, &slot.Date); err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

func (r *subscriptionRepository) ListUpcomingByUserID(ctx context.Context, userID string, after time.Time) ([]*domain.SubscriptionWithMeetup, error) {
	query := `
		SELECT s.id, s.meetup_id, s.user_id, s.created_at, s.updated_at,
			m.id, m.owner_id, m.title, m.description, m.location, m.date, m.banner_id, m.created_at, m.updated_at,
			u.name, u.email,
			f.id, f.name, f.path, f.url, f.created_at, f.updated_at
		FROM subscriptions s
		JOIN meetups m ON m.id = s.meetup_id
		JOIN users u ON u.id = m.owner_id
		LEFT JOIN files f ON f.id = m.banner_id
		WHERE s.user_id = $1 AND m.date > $2
		ORDER BY m.date ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID, after)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*domain.SubscriptionWithMeetup, 0)
	for rows.Next() {
		sub := &domain.Subscription{}
		m, err := scanMeetup(rows, &sub.ID, &sub.MeetupID, &sub.UserID, &sub.CreatedAt, &sub.UpdatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, &domain.SubscriptionWithMeetup{Subscription: sub, Meetup: m})
	}
	return out, rows.Err()
}

func (r *subscriptionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
