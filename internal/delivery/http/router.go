package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventpass/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(eventController *controllers.EventController, attendeeController *controllers.AttendeeController) *http.ServeMux {
	mux := http.NewServeMux()

	// Events
	mux.HandleFunc("POST /events", eventController.CreateEvent)
	mux.HandleFunc("GET /events/{eventID}", eventController.GetEventByID)
	mux.HandleFunc("GET /events/{eventID}/attendees", eventController.ListEventAttendees)

	// Attendees
	mux.HandleFunc("POST /events/{eventID}/attendees", attendeeController.RegisterForEvent)
	mux.HandleFunc("POST /attendees/{attendeeID}/check-in", attendeeController.CheckIn)
	mux.HandleFunc("GET /attendees/{attendeeID}/badge", attendeeController.GetBadge)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
