package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"meetapp/internal/delivery/http/controllers"
	"meetapp/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const routerUserID = "5b0f3a5e-2c1d-4a8e-9d39-7c9e6f0a1b2c"

type stubVerifier struct{}

func (stubVerifier) Verify(token string) (string, error) {
	if token != "good" {
		return "", errors.New("bad token")
	}
	return routerUserID, nil
}

type stubUserService struct{ domain.UserService }

func (stubUserService) GetByID(_ context.Context, id string) (*domain.User, error) {
	return &domain.User{ID: id, Name: "Alice"}, nil
}

type stubFileService struct{ domain.FileService }

func (stubFileService) Open(context.Context, string) (io.ReadCloser, *domain.File, error) {
	return nil, nil, domain.ErrNotFound
}

func newTestRouter() http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(logger, stubVerifier{}, Controllers{
		User:         controllers.NewUserController(logger, stubUserService{}),
		Meetup:       controllers.NewMeetupController(logger, nil),
		Subscription: controllers.NewSubscriptionController(logger, nil),
		File:         controllers.NewFileController(logger, stubFileService{}),
	}, []string{"*"})
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter()
	routes := []struct{ method, path string }{
		{http.MethodGet, "/users/me"},
		{http.MethodPatch, "/users/me"},
		{http.MethodPost, "/files"},
		{http.MethodGet, "/meetups"},
		{http.MethodPost, "/meetups"},
		{http.MethodGet, "/meetups/8f14e45f-ceea-467f-a0e6-bb7a8f6fd5a1"},
		{http.MethodPut, "/meetups/8f14e45f-ceea-467f-a0e6-bb7a8f6fd5a1"},
		{http.MethodDelete, "/meetups/8f14e45f-ceea-467f-a0e6-bb7a8f6fd5a1"},
		{http.MethodGet, "/organizing"},
		{http.MethodGet, "/subscriptions"},
		{http.MethodPost, "/meetups/8f14e45f-ceea-467f-a0e6-bb7a8f6fd5a1/subscriptions"},
		{http.MethodDelete, "/meetups/8f14e45f-ceea-467f-a0e6-bb7a8f6fd5a1/subscriptions"},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(rt.method, rt.path, nil))
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func TestRouter_AuthenticatedRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	req.Header.Set("Origin", "https://app.example.com")
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), routerUserID)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
	assert.Equal(t, "https://app.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_PublicFileRoute(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/files/missing.png", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodPatch, "/organizing", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
