package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"meetapp/internal/domain"
)

func TestFileRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	f := &domain.File{Name: "banner.png", Path: "abc.png", URL: "http://localhost/files/abc.png", CreatedAt: ts, UpdatedAt: ts}

	mock.ExpectQuery(`INSERT INTO files \(name, path, url, created_at, updated_at\)`).
		WithArgs("banner.png", "abc.png", "http://localhost/files/abc.png", ts, ts).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("file-1"))

	require.NoError(t, NewFileRepository(db).Create(context.Background(), f))
	require.Equal(t, "file-1", f.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFileRepository_GetByPath(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.File
		errIs   error
		wantErr bool
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, path, url, created_at, updated_at`).
					WithArgs("abc.png").
					WillReturnRows(sqlmock.NewRows([]string{"id", "name", "path", "url", "created_at", "updated_at"}).
						AddRow("file-1", "banner.png", "abc.png", "http://x/abc.png", ts, ts))
			},
			want: &domain.File{ID: "file-1", Name: "banner.png", Path: "abc.png", URL: "http://x/abc.png", CreatedAt: ts, UpdatedAt: ts},
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM files`).WithArgs("abc.png").WillReturnError(sql.ErrNoRows)
			},
			wantErr: true,
			errIs:   domain.ErrNotFound,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM files`).WithArgs("abc.png").WillReturnError(sql.ErrConnDone)
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
			got, err := NewFileRepository(db).GetByPath(ctx, "abc.png")
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
				require.Nil(t, got)
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.want, got)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
