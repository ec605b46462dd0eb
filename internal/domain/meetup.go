package domain

import (
	"context"
	"time"
)

// Meetup represents a scheduled event with one owning organizer.
// swagger:model Meetup
type Meetup struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Date        time.Time `json:"date"`
	BannerID    *string   `json:"banner_id"`
	Past        bool      `json:"past"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Organizer *Organizer `json:"organizer,omitempty"`
	Banner    *File      `json:"banner,omitempty"`
}

// Organizer is the public view of a meetup owner embedded in listings.
type Organizer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewMeetup returns a new Meetup with the given fields. ID is typically set by the repository on create.
func NewMeetup(ownerID, title, description, location string, date time.Time, bannerID *string, createdAt, updatedAt time.Time) *Meetup {
	return &Meetup{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Location:    location,
		Date:        date,
		BannerID:    bannerID,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// IsPast reports whether the meetup's date is before now.
func (m *Meetup) IsPast(now time.Time) bool {
	return m.Date.Before(now)
}

// MeetupPatch holds the optional fields of a meetup update; nil fields are unchanged.
type MeetupPatch struct {
	Title       *string
	Description *string
	Location    *string
	Date        *time.Time
	BannerID    *string
}

// Empty reports whether the patch changes nothing.
func (p MeetupPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Location == nil && p.Date == nil && p.BannerID == nil
}

// MeetupFilter narrows the meetup listing. From/To bound the date range (inclusive) when set.
type MeetupFilter struct {
	From       *time.Time
	To         *time.Time
	Pagination PaginationParams
}

// MeetupRepository defines the interface for meetup storage
type MeetupRepository interface {
	Create(ctx context.Context, meetup *Meetup) error
	GetByID(ctx context.Context, id string) (*Meetup, error)
	List(ctx context.Context, filter MeetupFilter) ([]*Meetup, int, error)
	ListUpcomingByOwnerID(ctx context.Context, ownerID string, after time.Time) ([]*Meetup, error)
	Update(ctx context.Context, id string, patch MeetupPatch) (*Meetup, error)
	Delete(ctx context.Context, id string) error
}

// MeetupService defines the business logic for organizing meetups.
type MeetupService interface {
	List(ctx context.Context, filter MeetupFilter) ([]*Meetup, int, error)
	Get(ctx context.Context, id string) (*Meetup, error)
	Create(ctx context.Context, meetup *Meetup) error
	Update(ctx context.Context, id, userID string, patch MeetupPatch) (*Meetup, error)
	Delete(ctx context.Context, id, userID string) error
	ListOrganizing(ctx context.Context, userID string) ([]*Meetup, error)
}
