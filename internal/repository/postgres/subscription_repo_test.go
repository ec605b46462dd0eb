package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"meetapp/internal/domain"
)

func TestSubscriptionRepository_Create(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		errIs   error
		wantErr bool
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO subscriptions \(meetup_id, user_id, created_at, updated_at\)`).
					WithArgs("m-1", "user-1", ts, ts).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("sub-1"))
			},
			wantID: "sub-1",
		},
		{
			name: "unique violation is a time conflict",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO subscriptions`).WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: true,
			errIs:   domain.ErrTimeConflict,
		},
		{
			name: "meetup deleted meanwhile",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO subscriptions`).WillReturnError(&pq.Error{Code: "23503"})
			},
			wantErr: true,
			errIs:   domain.ErrNotFound,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO subscriptions`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			sub := domain.NewSubscription("m-1", "user-1", ts, ts)
			err = NewSubscriptionRepository(db).Create(ctx, sub)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.wantID, sub.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSubscriptionRepository_GetByMeetupAndUser(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM subscriptions\s+WHERE meetup_id = \$1 AND user_id = \$2`).
			WithArgs("m-1", "user-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "meetup_id", "user_id", "created_at", "updated_at"}).
				AddRow("sub-1", "m-1", "user-1", ts, ts))

		got, err := NewSubscriptionRepository(db).GetByMeetupAndUser(ctx, "m-1", "user-1")
		require.NoError(t, err)
		require.Equal(t, &domain.Subscription{ID: "sub-1", MeetupID: "m-1", UserID: "user-1", CreatedAt: ts, UpdatedAt: ts}, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM subscriptions`).WithArgs("m-1", "user-1").WillReturnError(sql.ErrNoRows)

		_, err = NewSubscriptionRepository(db).GetByMeetupAndUser(ctx, "m-1", "user-1")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSubscriptionRepository_ListSlotsByUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	d1 := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 6, 2, 18, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT s.meetup_id, m.date`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"meetup_id", "date"}).AddRow("m-1", d1).AddRow("m-2", d2))

	got, err := NewSubscriptionRepository(db).ListSlotsByUserID(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, []domain.SubscribedSlot{{MeetupID: "m-1", Date: d1}, {MeetupID: "m-2", Date: d2}}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionRepository_ListUpcomingByUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	date := now.Add(24 * time.Hour)
	cols := append([]string{"id", "meetup_id", "user_id", "created_at", "updated_at"}, meetupColumns...)
	mock.ExpectQuery(`WHERE s.user_id = \$1 AND m.date > \$2\s+ORDER BY m.date ASC`).
		WithArgs("user-1", now).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			"sub-1", "m-1", "user-1", now, now,
			"m-1", "user-2", "Go night", "Talks", "Lisbon", date, "file-1", now, now,
			"Bob", "bob@example.com",
			"file-1", "banner.png", "abc.png", "http://x/abc.png", now, now,
		))

	got, err := NewSubscriptionRepository(db).ListUpcomingByUserID(context.Background(), "user-1", now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "sub-1", got[0].Subscription.ID)
	require.Equal(t, "m-1", got[0].Meetup.ID)
	require.Equal(t, "Bob", got[0].Meetup.Organizer.Name)
	require.Equal(t, "abc.png", got[0].Meetup.Banner.Path)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM subscriptions WHERE id = \$1`).WithArgs("sub-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM subscriptions WHERE id = \$1`).WithArgs("sub-1").WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewSubscriptionRepository(db)
	require.NoError(t, repo.Delete(context.Background(), "sub-1"))
	require.ErrorIs(t, repo.Delete(context.Background(), "sub-1"), domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
