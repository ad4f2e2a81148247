package app

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/oauth2"

	"interview-scheduler/internal/mq"
	"interview-scheduler/internal/schedule"
)

// App wires the HTTP handlers to their collaborators.
type App struct {
	DB     *pgxpool.Pool
	Events *mq.Publisher
	Guard  *schedule.CreateGuard
	Rules  schedule.Rules
	Loc    *time.Location

	// Google Calendar export; nil when not configured.
	OAuth *oauth2.Config
}
