package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"eventpass/internal/delivery/http/helpers"
	"eventpass/internal/domain"
)

// uuidRegex matches a canonical UUID string (8-4-4-4-12 hex).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

type EventController struct {
	Logger        *slog.Logger
	EventService  domain.EventService
	RosterService domain.RosterService
}

func NewEventController(logger *slog.Logger, events domain.EventService, roster domain.RosterService) *EventController {
	return &EventController{
		Logger:        logger,
		EventService:  events,
		RosterService: roster,
	}
}

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Title            string  `json:"title"`
	Details          *string `json:"details"`
	MaximumAttendees *int    `json:"maximum_attendees"`
}

// Validate implements helpers.Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if utf8.RuneCountInString(strings.TrimSpace(c.Title)) < 4 {
		errs = append(errs, "title must be at least 4 characters")
	}
	if c.MaximumAttendees != nil && *c.MaximumAttendees <= 0 {
		errs = append(errs, "maximum_attendees must be a positive integer")
	}
	return errs
}

// CreateEventResponse is the data payload for POST /events (201).
type CreateEventResponse struct {
	EventID string `json:"event_id"`
}

// CreateEventSuccessResponse is the success response envelope for POST /events (201).
type CreateEventSuccessResponse struct {
	Data  CreateEventResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Creates an event with a slug derived from its title. The slug is user-facing identity: a title colliding with an existing slug is rejected with 409 rather than disambiguated.
// @Tags events
// @Accept json
// @Produce json
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.CreateEventSuccessResponse "data contains the created event id"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (slug already in use)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	event, err := c.EventService.CreateEvent(r.Context(), strings.TrimSpace(req.Title), req.Details, req.MaximumAttendees)
	if err != nil {
		if errors.Is(err, domain.ErrSlugTaken) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "another event already uses this slug")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "title does not produce a usable slug")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, CreateEventResponse{EventID: event.ID})
}

// GetEventResponse is the data payload for GET /events/{eventID}.
type GetEventResponse struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Slug             string  `json:"slug"`
	Details          *string `json:"details"`
	MaximumAttendees *int    `json:"maximum_attendees"`
	AttendeesAmount  int     `json:"attendees_amount"`
}

// GetEventSuccessResponse is the success response envelope for GET /events/{eventID} (200).
type GetEventSuccessResponse struct {
	Data  GetEventResponse  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetEventByID godoc
// @Summary Get an event
// @Description Returns the event together with its current number of registered attendees.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.GetEventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEventByID(w http.ResponseWriter, r *http.Request) {
	eventID, ok := c.eventIDFromPath(w, r)
	if !ok {
		return
	}

	event, amount, err := c.EventService.GetEventByID(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, GetEventResponse{
		ID:               event.ID,
		Title:            event.Title,
		Slug:             event.Slug,
		Details:          event.Details,
		MaximumAttendees: event.MaximumAttendees,
		AttendeesAmount:  amount,
	})
}

// ListEventAttendeesSuccessResponse is the success response envelope for GET /events/{eventID}/attendees (200).
type ListEventAttendeesSuccessResponse struct {
	Data  *domain.RosterPage `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// ListEventAttendees godoc
// @Summary Get an event's attendees
// @Description Returns one roster page (10 attendees, newest registrations first) with each attendee's check-in timestamp when present. query filters by name substring; total always counts every registration for the event.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param query query string false "Name substring filter"
// @Param page_index query int false "Zero-based page index" default(0)
// @Success 200 {object} controllers.ListEventAttendeesSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/attendees [get]
func (c *EventController) ListEventAttendees(w http.ResponseWriter, r *http.Request) {
	eventID, ok := c.eventIDFromPath(w, r)
	if !ok {
		return
	}
	query := r.URL.Query().Get("query")
	pageIndex := helpers.ParsePageIndex(r)

	page, err := c.RosterService.ListEventAttendees(r.Context(), eventID, query, pageIndex)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, page)
}

func (c *EventController) eventIDFromPath(w http.ResponseWriter, r *http.Request) (string, bool) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return "", false
	}
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return "", false
	}
	return eventID, true
}
