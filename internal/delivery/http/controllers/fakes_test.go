package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"meetapp/internal/delivery/http/helpers"
	"meetapp/internal/domain"

	"github.com/stretchr/testify/require"
)

const (
	testUserID   = "5b0f3a5e-2c1d-4a8e-9d39-7c9e6f0a1b2c"
	testMeetupID = "8f14e45f-ceea-467f-a0e6-bb7a8f6fd5a1"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// decodeEnvelope decodes the response body and re-decodes envelope.Data into data when non-nil.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, data any) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(bytes.NewReader(rr.Body.Bytes())).Decode(&envelope))
	if data != nil && envelope.Data != nil {
		raw, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, data))
	}
	return envelope
}

// fakeUserService implements domain.UserService for handler tests.
type fakeUserService struct {
	user       *domain.User
	token      string
	err        error
	lastUpdate domain.UserUpdate
	lastSignUp []string
}

func (f *fakeUserService) SignUp(ctx context.Context, name, email, password string) (*domain.User, error) {
	f.lastSignUp = []string{name, email, password}
	return f.user, f.err
}

func (f *fakeUserService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if f.err != nil {
		return "", nil, f.err
	}
	return f.token, f.user, nil
}

func (f *fakeUserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeUserService) Update(ctx context.Context, userID string, update domain.UserUpdate) (*domain.User, error) {
	f.lastUpdate = update
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

// fakeMeetupService implements domain.MeetupService for handler tests.
type fakeMeetupService struct {
	meetup     *domain.Meetup
	meetups    []*domain.Meetup
	total      int
	err        error
	lastFilter domain.MeetupFilter
	lastPatch  domain.MeetupPatch
	lastCreate *domain.Meetup
	lastUserID string
}

func (f *fakeMeetupService) List(ctx context.Context, filter domain.MeetupFilter) ([]*domain.Meetup, int, error) {
	f.lastFilter = filter
	return f.meetups, f.total, f.err
}

func (f *fakeMeetupService) Get(ctx context.Context, id string) (*domain.Meetup, error) {
	return f.meetup, f.err
}

func (f *fakeMeetupService) Create(ctx context.Context, m *domain.Meetup) error {
	f.lastCreate = m
	if f.err == nil {
		m.ID = testMeetupID
	}
	return f.err
}

func (f *fakeMeetupService) Update(ctx context.Context, id, userID string, patch domain.MeetupPatch) (*domain.Meetup, error) {
	f.lastPatch = patch
	f.lastUserID = userID
	return f.meetup, f.err
}

func (f *fakeMeetupService) Delete(ctx context.Context, id, userID string) error {
	f.lastUserID = userID
	return f.err
}

func (f *fakeMeetupService) ListOrganizing(ctx context.Context, userID string) ([]*domain.Meetup, error) {
	f.lastUserID = userID
	return f.meetups, f.err
}

// fakeSubscriptionService implements domain.SubscriptionService for handler tests.
type fakeSubscriptionService struct {
	sub  *domain.Subscription
	subs []*domain.SubscriptionWithMeetup
	err  error
}

func (f *fakeSubscriptionService) Subscribe(ctx context.Context, userID, meetupID string) (*domain.Subscription, error) {
	return f.sub, f.err
}

func (f *fakeSubscriptionService) Unsubscribe(ctx context.Context, userID, meetupID string) error {
	return f.err
}

func (f *fakeSubscriptionService) ListUpcoming(ctx context.Context, userID string) ([]*domain.SubscriptionWithMeetup, error) {
	return f.subs, f.err
}

// fakeFileService implements domain.FileService for handler tests.
type fakeFileService struct {
	file        *domain.File
	content     []byte
	err         error
	gotName     string
	gotType     string
	gotContents []byte
}

func (f *fakeFileService) Upload(ctx context.Context, originalName, contentType string, body io.Reader) (*domain.File, error) {
	f.gotName, f.gotType = originalName, contentType
	f.gotContents, _ = io.ReadAll(body)
	return f.file, f.err
}

func (f *fakeFileService) Open(ctx context.Context, path string) (io.ReadCloser, *domain.File, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return io.NopCloser(bytes.NewReader(f.content)), f.file, nil
}
