package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"meetapp/internal/domain"
)

const meetupSelect = `
	SELECT m.id, m.owner_id, m.title, m.description, m.location, m.date, m.banner_id, m.created_at, m.updated_at,
		u.name, u.email,
		f.id, f.name, f.path, f.url, f.created_at, f.updated_at
	FROM meetups m
	JOIN users u ON u.id = m.owner_id
	LEFT JOIN files f ON f.id = m.banner_id
`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanMeetup reads one row produced by meetupSelect (or a query with the same
// column list appended after extra leading columns passed in prefix).
func scanMeetup(s rowScanner, prefix ...any) (*domain.Meetup, error) {
	m := &domain.Meetup{Organizer: &domain.Organizer{}}
	var bannerID sql.NullString
	var fileID, fileName, filePath, fileURL sql.NullString
	var fileCreated, fileUpdated sql.NullTime
	dest := append(prefix,
		&m.ID, &m.OwnerID, &m.Title, &m.Description, &m.Location, &m.Date, &bannerID, &m.CreatedAt, &m.UpdatedAt,
		&m.Organizer.Name, &m.Organizer.Email,
		&fileID, &fileName, &filePath, &fileURL, &fileCreated, &fileUpdated,
	)
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}
	if bannerID.Valid {
		m.BannerID = &bannerID.String
	}
	if fileID.Valid {
		m.Banner = &domain.File{
			ID:        fileID.String,
			Name:      fileName.String,
			Path:      filePath.String,
			URL:       fileURL.String,
			CreatedAt: fileCreated.Time,
			UpdatedAt: fileUpdated.Time,
		}
	}
	return m, nil
}

type meetupRepository struct {
	DB *sql.DB
}

func NewMeetupRepository(db *sql.DB) domain.MeetupRepository {
	return &meetupRepository{DB: db}
}

func (r *meetupRepository) Create(ctx context.Context, m *domain.Meetup) error {
	query := `
		INSERT INTO meetups (owner_id, title, description, location, date, banner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, m.OwnerID, m.Title, m.Description, m.Location, m.Date, nullString(m.BannerID), m.CreatedAt, m.UpdatedAt).Scan(&m.ID)
	if err != nil {
		if isPQCode(err, pqForeignKeyViolation) {
			return fmt.Errorf("%w: banner_id does not reference a file", domain.ErrInvalidInput)
		}
		return err
	}
	return nil
}

func (r *meetupRepository) GetByID(ctx context.Context, id string) (*domain.Meetup, error) {
	m, err := scanMeetup(r.DB.QueryRowContext(ctx, meetupSelect+`WHERE m.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *meetupRepository) List(ctx context.Context, filter domain.MeetupFilter) ([]*domain.Meetup, int, error) {
	var where []string
	args := []any{}
	if filter.From != nil {
		args = append(args, *filter.From)
		where = append(where, fmt.Sprintf("m.date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where = append(where, fmt.Sprintf("m.date <= $%d", len(args)))
	}
	whereSQL := ""
	if len(where) > 0 {
		whereSQL = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM meetups m ` + whereSQL
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := meetupSelect + whereSQL + ` ORDER BY m.date ASC, m.id ASC`
	if limit := filter.Pagination.Limit(); limit > 0 {
		args = append(args, limit, filter.Pagination.Offset())
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	meetups, err := r.queryMeetups(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return meetups, total, nil
}

func (r *meetupRepository) ListUpcomingByOwnerID(ctx context.Context, ownerID string, after time.Time) ([]*domain.Meetup, error) {
	query := meetupSelect + `
		WHERE m.owner_id = $1 AND m.date > $2
		ORDER BY m.date ASC
	`
	return r.queryMeetups(ctx, query, ownerID, after)
}

func (r *meetupRepository) queryMeetups(ctx context.Context, query string, args ...any) ([]*domain.Meetup, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	meetups := make([]*domain.Meetup, 0)
	for rows.Next() {
		m, err := scanMeetup(rows)
		if err != nil {
			return nil, err
		}
		meetups = append(meetups, m)
	}
	return meetups, rows.Err()
}

func (r *meetupRepository) Update(ctx context.Context, id string, patch domain.MeetupPatch) (*domain.Meetup, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []any{}
	n := 1
	set := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.Location != nil {
		set("location", *patch.Location)
	}
	if patch.Date != nil {
		set("date", *patch.Date)
	}
	if patch.BannerID != nil {
		set("banner_id", nullString(patch.BannerID))
	}
	if n == 1 {
		// Nothing to change; return the current row.
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE meetups SET %s WHERE id = $%d`, strings.Join(setClauses, ", "), n)
	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		if isPQCode(err, pqForeignKeyViolation) {
			return nil, fmt.Errorf("%w: banner_id does not reference a file", domain.ErrInvalidInput)
		}
		return nil, err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *meetupRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM meetups WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// nullString maps nil and "" to SQL NULL.
func nullString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
