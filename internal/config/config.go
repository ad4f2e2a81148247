package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type App struct {
	// DB
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	// Network
	Port string `envconfig:"PORT" default:"8080"`
	// Auth
	StaticTokens string `envconfig:"STATIC_TOKENS"`
	JWTSecret    string `envconfig:"JWT_HMAC_SECRET"`
	// Scheduling policy
	Timezone          string        `envconfig:"TIMEZONE" default:"Asia/Ho_Chi_Minh"`
	BusinessHourStart int           `envconfig:"BUSINESS_HOUR_START" default:"8"`
	BusinessHourEnd   int           `envconfig:"BUSINESS_HOUR_END" default:"16"`
	MaxInterviewHours int           `envconfig:"MAX_INTERVIEW_HOURS" default:"4"`
	CreateDebounce    time.Duration `envconfig:"CREATE_DEBOUNCE" default:"2s"`
	// Events
	AMQPURL      string `envconfig:"AMQP_URL"`
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"interviews"`
	// Google Calendar export
	GoogleClientID     string `envconfig:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `envconfig:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `envconfig:"GOOGLE_REDIRECT_URL"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
