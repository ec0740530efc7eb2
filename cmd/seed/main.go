package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"

	"eventpass/config"
	"eventpass/internal/domain"
	"eventpass/internal/repository/postgres"
	"eventpass/internal/services"
)

const serviceTimeout = 5 * time.Second

// seed loads a demo event with a handful of attendees so the API has
// something to serve on a fresh database. Running it twice is harmless:
// the slug conflict on the event is treated as "already seeded".
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}
	if err := postgres.Migrate(db); err != nil {
		logger.Error("failed to run migrations", "err", err)
		os.Exit(1)
	}

	eventRepo := postgres.NewEventRepository(db)
	attendeeRepo := postgres.NewAttendeeRepository(db)
	checkInRepo := postgres.NewCheckInRepository(db)
	eventService := services.NewEventService(eventRepo, attendeeRepo, serviceTimeout)
	registrationService := services.NewRegistrationService(eventRepo, attendeeRepo, serviceTimeout)
	checkInService := services.NewCheckInService(eventRepo, attendeeRepo, checkInRepo, serviceTimeout)

	details := "Um evento para quem ama programar"
	maximumAttendees := 120
	event, err := eventService.CreateEvent(ctx, "Unite Summit", &details, &maximumAttendees)
	if err != nil {
		if errors.Is(err, domain.ErrSlugTaken) {
			logger.Info("demo event already seeded, nothing to do")
			return
		}
		logger.Error("failed to create demo event", "err", err)
		os.Exit(1)
	}
	logger.Info("created demo event", "id", event.ID, "slug", event.Slug)

	names := []string{
		"Ana Souza", "Bruno Lima", "Carla Mendes", "Diego Alves", "Elisa Rocha",
		"Felipe Costa", "Gabriela Dias", "Hugo Martins", "Isabela Nunes", "João Pereira",
		"Karen Silva", "Lucas Ferreira", "Mariana Gomes", "Nicolas Ramos", "Olivia Castro",
	}
	for i, name := range names {
		email := fmt.Sprintf("attendee%d@example.com", i+1)
		attendee, err := registrationService.RegisterForEvent(ctx, event.ID, name, email)
		if err != nil {
			logger.Error("failed to register demo attendee", "email", email, "err", err)
			os.Exit(1)
		}
		// Check in roughly half of them so the roster shows both states.
		if i%2 == 0 {
			if _, err := checkInService.CheckIn(ctx, attendee.ID); err != nil {
				logger.Error("failed to check in demo attendee", "attendee_id", attendee.ID, "err", err)
				os.Exit(1)
			}
		}
	}
	logger.Info("seeded demo attendees", "count", len(names))
}
