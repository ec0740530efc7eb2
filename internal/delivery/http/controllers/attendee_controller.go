package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"eventpass/internal/delivery/http/helpers"
	"eventpass/internal/domain"
)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

type AttendeeController struct {
	Logger              *slog.Logger
	RegistrationService domain.RegistrationService
	CheckInService      domain.CheckInService
}

func NewAttendeeController(logger *slog.Logger, registrations domain.RegistrationService, checkIns domain.CheckInService) *AttendeeController {
	return &AttendeeController{
		Logger:              logger,
		RegistrationService: registrations,
		CheckInService:      checkIns,
	}
}

// RegisterForEventRequest is the request body for POST /events/{eventID}/attendees.
type RegisterForEventRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate implements helpers.Validator.
func (r *RegisterForEventRequest) Validate() []string {
	var errs []string
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	if r.Name == "" {
		errs = append(errs, "name is required")
	}
	if r.Email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegex.MatchString(r.Email) {
		errs = append(errs, "email is not a valid address")
	}
	return errs
}

// RegisterForEventResponse is the data payload for POST /events/{eventID}/attendees (201).
type RegisterForEventResponse struct {
	AttendeeID int64 `json:"attendee_id"`
}

// RegisterForEventSuccessResponse is the success response envelope for POST /events/{eventID}/attendees (201).
type RegisterForEventSuccessResponse struct {
	Data  RegisterForEventResponse `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// RegisterForEvent godoc
// @Summary Register an attendee for an event
// @Description Admits the attendee against the event's capacity limit. An email may register once per event; a full event rejects the registration.
// @Tags attendees
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param body body controllers.RegisterForEventRequest true "Attendee name and email"
// @Success 201 {object} controllers.RegisterForEventSuccessResponse "data contains the new attendee id"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (duplicate email) or capacity_exceeded (event full)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/attendees [post]
func (c *AttendeeController) RegisterForEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}

	var req RegisterForEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	attendee, err := c.RegistrationService.RegisterForEvent(r.Context(), eventID, req.Name, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "this email is already registered for this event")
			return
		}
		if errors.Is(err, domain.ErrEventFull) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeCapacityExceeded, "event is at maximum capacity")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, RegisterForEventResponse{AttendeeID: attendee.ID})
}

// CheckInResponse is the data payload for POST /attendees/{attendeeID}/check-in (201).
type CheckInResponse struct {
	CheckedInAt time.Time `json:"checked_in_at"`
}

// CheckInSuccessResponse is the success response envelope for POST /attendees/{attendeeID}/check-in (201).
type CheckInSuccessResponse struct {
	Data  CheckInResponse   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CheckIn godoc
// @Summary Check in an attendee
// @Description Records the attendee's one-time check-in. A repeat scan of the same badge is rejected with its own error code so clients can message it distinctly.
// @Tags attendees
// @Produce json
// @Param attendeeID path int true "Attendee ID"
// @Success 201 {object} controllers.CheckInSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: already_checked_in"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendees/{attendeeID}/check-in [post]
func (c *AttendeeController) CheckIn(w http.ResponseWriter, r *http.Request) {
	attendeeID, ok := attendeeIDFromPath(w, r)
	if !ok {
		return
	}

	checkIn, err := c.CheckInService.CheckIn(r.Context(), attendeeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "attendee not found")
			return
		}
		if errors.Is(err, domain.ErrAlreadyCheckedIn) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeAlreadyCheckedIn, "attendee already checked in")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, CheckInResponse{CheckedInAt: checkIn.CreatedAt})
}

// GetBadgeSuccessResponse is the success response envelope for GET /attendees/{attendeeID}/badge (200).
type GetBadgeSuccessResponse struct {
	Data  *domain.Badge     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetBadge godoc
// @Summary Get an attendee badge
// @Description Returns the attendee's badge data, including an absolute check-in URL built from this request's scheme and host.
// @Tags attendees
// @Produce json
// @Param attendeeID path int true "Attendee ID"
// @Success 200 {object} controllers.GetBadgeSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendees/{attendeeID}/badge [get]
func (c *AttendeeController) GetBadge(w http.ResponseWriter, r *http.Request) {
	attendeeID, ok := attendeeIDFromPath(w, r)
	if !ok {
		return
	}

	badge, err := c.CheckInService.GetBadge(r.Context(), attendeeID, requestBaseURL(r))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "attendee not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, badge)
}

func attendeeIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("attendeeID")
	if raw == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing attendeeID")
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid attendeeID")
		return 0, false
	}
	return id, true
}

// requestBaseURL reconstructs the caller-facing scheme and host. The scheme
// honors X-Forwarded-Proto so badges minted behind a TLS-terminating proxy
// link back over https.
func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}
