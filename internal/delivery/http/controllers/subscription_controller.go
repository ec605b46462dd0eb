package controllers

import (
	"log/slog"
	"net/http"
	"strconv"

	"meetapp/internal/delivery/http/helpers"
	"meetapp/internal/domain"
)

// SubscriptionSuccessResponse is the success response envelope for POST /meetups/{meetupID}/subscriptions (201).
type SubscriptionSuccessResponse struct {
	Data  *domain.Subscription `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// SubscriptionListSuccessResponse is the success response envelope for GET /subscriptions (200).
type SubscriptionListSuccessResponse struct {
	Data  []*domain.SubscriptionWithMeetup `json:"data"`
	Error *helpers.APIError                `json:"error"`
}

// SubscriptionController handles attendee subscriptions.
type SubscriptionController struct {
	Logger  *slog.Logger
	Service domain.SubscriptionService
}

// NewSubscriptionController creates a SubscriptionController with the given logger and service.
func NewSubscriptionController(logger *slog.Logger, svc domain.SubscriptionService) *SubscriptionController {
	return &SubscriptionController{
		Logger:  logger,
		Service: svc,
	}
}

// List godoc
// @Summary List my upcoming subscriptions
// @Description Subscriptions of the authenticated user to future meetups, ordered by meetup date, each with the meetup, its banner and organizer.
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.SubscriptionListSuccessResponse "data contains the subscriptions"
// @Header 200 {integer} X-Total-Count "Number of subscriptions returned"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /subscriptions [get]
func (c *SubscriptionController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	subs, err := c.Service.ListUpcoming(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(len(subs)))
	helpers.WriteJSONSuccess(w, http.StatusOK, subs)
}

// Subscribe godoc
// @Summary Subscribe to a meetup
// @Description Subscribes the authenticated user. Rejected for own meetups, past meetups and when already subscribed to a meetup at the same time. The organizer is notified by email.
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param meetupID path string true "Meetup ID (UUID)"
// @Success 201 {object} controllers.SubscriptionSuccessResponse "data contains the subscription"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /meetups/{meetupID}/subscriptions [post]
func (c *SubscriptionController) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	meetupID, ok := helpers.PathUUID(w, r, "meetupID")
	if !ok {
		return
	}
	sub, err := c.Service.Subscribe(r.Context(), userID, meetupID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, sub)
}

// Unsubscribe godoc
// @Summary Cancel a subscription
// @Description Removes the authenticated user's subscription. Not allowed once the meetup happened.
// @Tags subscriptions
// @Security BearerAuth
// @Param meetupID path string true "Meetup ID (UUID)"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /meetups/{meetupID}/subscriptions [delete]
func (c *SubscriptionController) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	meetupID, ok := helpers.PathUUID(w, r, "meetupID")
	if !ok {
		return
	}
	if err := c.Service.Unsubscribe(r.Context(), userID, meetupID); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
