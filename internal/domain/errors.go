package domain

import "errors"

// Sentinel errors shared by services and controllers.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPastDate is returned when a meetup is scheduled (or rescheduled) before now.
	ErrPastDate = errors.New("meetup date invalid")
	// ErrMeetupPast is returned when acting on a meetup that already happened.
	ErrMeetupPast = errors.New("meetup already happened")

	ErrSelfSubscription = errors.New("cannot subscribe to your own meetup")
	ErrTimeConflict     = errors.New("already subscribed to a meetup at the same time")
	ErrNotSubscribed    = errors.New("not subscribed to this meetup")

	ErrUnsupportedFileType = errors.New("invalid file type, accepted [image/png, image/jpeg]")
)
