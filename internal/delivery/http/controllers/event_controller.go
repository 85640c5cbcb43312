package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"skillsharehub/internal/delivery/http/helpers"
	"skillsharehub/internal/delivery/http/middleware"
	"skillsharehub/internal/domain"
)

// EventSuccessResponse is the success response envelope for a single event view.
type EventSuccessResponse struct {
	Data  *domain.EventView `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventListSuccessResponse is the success response envelope for event listings.
type EventListSuccessResponse struct {
	Data  []*domain.EventView `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// BookmarkResponse is the response body for POST /events/{eventID}/bookmark.
type BookmarkResponse struct {
	EventID    string `json:"event_id"`
	Bookmarked bool   `json:"bookmarked"`
}

// HostSuccessResponse is the success response envelope for POST /events/{eventID}/hosts (201).
type HostSuccessResponse struct {
	Data  *domain.Host      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// ListEvents godoc
// @Summary List events
// @Description Returns all events ordered by scheduled time. The optional q parameter filters case-insensitively on cost and the scheduled time text. Authentication is optional; when present, bookmarked and organizer reflect the caller.
// @Tags events
// @Produce json
// @Param q query string false "Substring matched against cost or datetime"
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized (invalid token)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	views, err := c.Service.ListEvents(r.Context(), r.URL.Query().Get("q"), middleware.ViewerFromContext(r.Context()))
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, views)
}

// GetEvent godoc
// @Summary Get an event
// @Description Returns one event with its hosts, topics, bookmark count and the caller's annotations.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized (invalid token)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDParam(w, r)
	if !ok {
		return
	}
	view, err := c.Service.GetEvent(r.Context(), eventID, middleware.ViewerFromContext(r.Context()))
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, view)
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates an event and registers the caller as its first host. The schedule is sent as datetime or as date plus time.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body EventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	view, err := c.Service.CreateEvent(r.Context(), req.toInput(), identity)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, view)
}

// UpdateEvent godoc
// @Summary Replace an event
// @Description Replaces every scalar field of the event. Hosts, topics and bookmarks are left untouched.
// @Tags events
// @Accept json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param event body EventRequest true "Event data"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [put]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDParam(w, r)
	if !ok {
		return
	}
	var req EventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if _, ok := middleware.IdentityFromContext(r.Context()); !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.UpdateEvent(r.Context(), eventID, req.toInput()); err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteNoContent(w)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes the event together with its hosts, topic links and bookmarks.
// @Tags events
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDParam(w, r)
	if !ok {
		return
	}
	if _, ok := middleware.IdentityFromContext(r.Context()); !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), eventID); err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteNoContent(w)
}

// AddBookmark godoc
// @Summary Bookmark an event
// @Description Bookmarks the event for the caller. Bookmarking twice is not an error.
// @Tags bookmarks
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 201 {object} helpers.APIResponse "data contains event_id and bookmarked"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/bookmark [post]
func (c *EventController) AddBookmark(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDParam(w, r)
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.AddBookmark(r.Context(), eventID, userID); err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, BookmarkResponse{EventID: eventID, Bookmarked: true})
}

// RemoveBookmark godoc
// @Summary Remove a bookmark
// @Description Removes the caller's bookmark. Removing a bookmark that does not exist is not an error.
// @Tags bookmarks
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/bookmark [delete]
func (c *EventController) RemoveBookmark(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDParam(w, r)
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.RemoveBookmark(r.Context(), eventID, userID); err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteNoContent(w)
}

// ListMyEvents godoc
// @Summary List events the caller hosts
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/myevents [get]
func (c *EventController) ListMyEvents(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	views, err := c.Service.ListMyEvents(r.Context(), identity.Viewer())
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, views)
}

// ListMyBookmarks godoc
// @Summary List events the caller bookmarked
// @Tags bookmarks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/mybookmarks [get]
func (c *EventController) ListMyBookmarks(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	views, err := c.Service.ListMyBookmarks(r.Context(), identity.Viewer())
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, views)
}

// RegisterHost godoc
// @Summary Register as a host
// @Description Adds the caller as an organizer of the event. The body is optional; name defaults to the token username.
// @Tags hosts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body RegisterHostRequest false "Display name"
// @Success 201 {object} controllers.HostSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already a host)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/hosts [post]
func (c *EventController) RegisterHost(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDParam(w, r)
	if !ok {
		return
	}
	var req RegisterHostRequest
	if r.ContentLength != 0 && !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	host, err := c.Service.RegisterHost(r.Context(), eventID, identity, req.Name)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, host)
}

// UnregisterHost godoc
// @Summary Step down as a host
// @Tags hosts
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (not a host)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/hosts [delete]
func (c *EventController) UnregisterHost(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDParam(w, r)
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.UnregisterHost(r.Context(), eventID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not a host of this event")
			return
		}
		c.fail(w, r, err)
		return
	}
	helpers.WriteNoContent(w)
}

// SetEventTopics godoc
// @Summary Replace the topics of an event
// @Tags topics
// @Accept json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body SetEventTopicsRequest true "Topic IDs"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (unknown topic)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/topics [put]
func (c *EventController) SetEventTopics(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDParam(w, r)
	if !ok {
		return
	}
	var req SetEventTopicsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if _, ok := middleware.IdentityFromContext(r.Context()); !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.SetEventTopics(r.Context(), eventID, req.TopicIDs); err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteNoContent(w)
}

// eventIDParam reads and validates the eventID path value, writing a 400 when it is not a UUID.
func eventIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return "", false
	}
	if !helpers.ValidID(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "eventID must be a UUID")
		return "", false
	}
	return eventID, true
}

func (c *EventController) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
	case errors.Is(err, domain.ErrAlreadyHost):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "already a host of this event")
	default:
		writeServiceError(c.Logger, w, r, err)
	}
}

// writeServiceError maps the errors shared by every controller and logs unexpected ones.
func writeServiceError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
	default:
		logger.ErrorContext(r.Context(), "request failed",
			"path", r.URL.Path, "method", r.Method, "err", err,
			"request_id", middleware.RequestIDFromContext(r.Context()))
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal server error")
	}
}
