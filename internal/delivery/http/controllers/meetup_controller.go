package controllers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"meetapp/internal/delivery/http/helpers"
	"meetapp/internal/domain"
)

// dateQueryLayout is the layout of the date filter on GET /meetups.
const dateQueryLayout = "2006-01-02"

// CreateMeetupRequest is the request body for POST /meetups.
type CreateMeetupRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Date        time.Time `json:"date"`
	BannerID    *string   `json:"banner_id"`
}

// Validate implements Validator.
func (c CreateMeetupRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(c.Description) == "" {
		errs = append(errs, "description is required")
	}
	if strings.TrimSpace(c.Location) == "" {
		errs = append(errs, "location is required")
	}
	if c.Date.IsZero() {
		errs = append(errs, "date is required")
	}
	if c.BannerID != nil && *c.BannerID != "" {
		if _, err := uuid.Parse(*c.BannerID); err != nil {
			errs = append(errs, "banner_id must be a valid UUID")
		}
	}
	return errs
}

// UpdateMeetupRequest is the request body for PUT /meetups/{meetupID}. Omitted fields are unchanged;
// an empty banner_id removes the banner.
type UpdateMeetupRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	Date        *time.Time `json:"date"`
	BannerID    *string    `json:"banner_id"`
}

// Validate implements Validator.
func (u UpdateMeetupRequest) Validate() []string {
	var errs []string
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		errs = append(errs, "title cannot be empty")
	}
	if u.Description != nil && strings.TrimSpace(*u.Description) == "" {
		errs = append(errs, "description cannot be empty")
	}
	if u.Location != nil && strings.TrimSpace(*u.Location) == "" {
		errs = append(errs, "location cannot be empty")
	}
	if u.BannerID != nil && *u.BannerID != "" {
		if _, err := uuid.Parse(*u.BannerID); err != nil {
			errs = append(errs, "banner_id must be a valid UUID")
		}
	}
	return errs
}

func (u UpdateMeetupRequest) patch() domain.MeetupPatch {
	return domain.MeetupPatch{
		Title:       u.Title,
		Description: u.Description,
		Location:    u.Location,
		Date:        u.Date,
		BannerID:    u.BannerID,
	}
}

// MeetupListResponse is the data of GET /meetups.
type MeetupListResponse struct {
	Meetups    []*domain.Meetup       `json:"meetups"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// MeetupListSuccessResponse is the success response envelope for GET /meetups (200).
type MeetupListSuccessResponse struct {
	Data  MeetupListResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// MeetupSuccessResponse is the success response envelope for endpoints returning one meetup.
type MeetupSuccessResponse struct {
	Data  *domain.Meetup    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// MeetupsSuccessResponse is the success response envelope for endpoints returning a list of meetups.
type MeetupsSuccessResponse struct {
	Data  []*domain.Meetup  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// MeetupController handles meetup CRUD and the organizer listing.
type MeetupController struct {
	Logger  *slog.Logger
	Service domain.MeetupService
}

// NewMeetupController creates a MeetupController with the given logger and service.
func NewMeetupController(logger *slog.Logger, svc domain.MeetupService) *MeetupController {
	return &MeetupController{
		Logger:  logger,
		Service: svc,
	}
}

// parseDayFilter turns a YYYY-MM-DD value into the inclusive [start, end] range of that UTC day.
func parseDayFilter(value string) (from, to time.Time, err error) {
	day, err := time.ParseInLocation(dateQueryLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return day, day.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
}

// List godoc
// @Summary List meetups
// @Description Lists meetups with organizer and banner, 10 per page by default. Optional date (YYYY-MM-DD) restricts to that day.
// @Tags meetups
// @Produce json
// @Security BearerAuth
// @Param date query string false "Day filter, YYYY-MM-DD"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 10, max 100)"
// @Success 200 {object} controllers.MeetupListSuccessResponse "data contains meetups and pagination"
// @Header 200 {integer} X-Total-Count "Total number of matching meetups"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /meetups [get]
func (c *MeetupController) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.MeetupFilter{Pagination: helpers.ParsePagination(r)}
	if d := r.URL.Query().Get("date"); d != "" {
		from, to, err := parseDayFilter(d)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "date must be formatted as YYYY-MM-DD")
			return
		}
		filter.From, filter.To = &from, &to
	}
	meetups, total, err := c.Service.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	helpers.WriteJSONSuccess(w, http.StatusOK, MeetupListResponse{
		Meetups:    meetups,
		Pagination: helpers.NewPaginationMeta(filter.Pagination.Page, filter.Pagination.PageSize, total),
	})
}

// Get godoc
// @Summary Get a meetup
// @Tags meetups
// @Produce json
// @Security BearerAuth
// @Param meetupID path string true "Meetup ID (UUID)"
// @Success 200 {object} controllers.MeetupSuccessResponse "data contains the meetup"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /meetups/{meetupID} [get]
func (c *MeetupController) Get(w http.ResponseWriter, r *http.Request) {
	meetupID, ok := helpers.PathUUID(w, r, "meetupID")
	if !ok {
		return
	}
	meetup, err := c.Service.Get(r.Context(), meetupID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, meetup)
}

// Create godoc
// @Summary Create a meetup
// @Description Creates a meetup owned by the authenticated user. The date must not be in the past.
// @Tags meetups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateMeetupRequest true "Meetup data"
// @Success 201 {object} controllers.MeetupSuccessResponse "data contains the created meetup"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /meetups [post]
func (c *MeetupController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req CreateMeetupRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	var bannerID *string
	if req.BannerID != nil && *req.BannerID != "" {
		bannerID = req.BannerID
	}
	meetup := domain.NewMeetup(userID, strings.TrimSpace(req.Title), req.Description, strings.TrimSpace(req.Location), req.Date, bannerID, time.Time{}, time.Time{})
	if err := c.Service.Create(r.Context(), meetup); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, meetup)
}

// Update godoc
// @Summary Update a meetup
// @Description Partially updates a meetup owned by the authenticated user. Past meetups cannot be changed and the new date must not be in the past.
// @Tags meetups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param meetupID path string true "Meetup ID (UUID)"
// @Param body body UpdateMeetupRequest true "Fields to update"
// @Success 200 {object} controllers.MeetupSuccessResponse "data contains the updated meetup"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /meetups/{meetupID} [put]
func (c *MeetupController) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	meetupID, ok := helpers.PathUUID(w, r, "meetupID")
	if !ok {
		return
	}
	var req UpdateMeetupRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	meetup, err := c.Service.Update(r.Context(), meetupID, userID, req.patch())
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, meetup)
}

// Delete godoc
// @Summary Delete a meetup
// @Description Deletes a future meetup owned by the authenticated user.
// @Tags meetups
// @Security BearerAuth
// @Param meetupID path string true "Meetup ID (UUID)"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /meetups/{meetupID} [delete]
func (c *MeetupController) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	meetupID, ok := helpers.PathUUID(w, r, "meetupID")
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), meetupID, userID); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListOrganizing godoc
// @Summary List my upcoming meetups
// @Description The authenticated user's own future meetups, ordered by date.
// @Tags meetups
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.MeetupsSuccessResponse "data contains the meetups"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizing [get]
func (c *MeetupController) ListOrganizing(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	meetups, err := c.Service.ListOrganizing(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, meetups)
}
