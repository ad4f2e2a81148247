package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"interview-scheduler/internal/app"
	"interview-scheduler/internal/config"
	"interview-scheduler/internal/mq"
	"interview-scheduler/internal/schedule"
	"interview-scheduler/internal/server"
)

func main() {
	ctx := context.Background()

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("invalid TIMEZONE %q: %v", cfg.Timezone, err)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer pool.Close()

	var publisher *mq.Publisher
	if cfg.AMQPURL != "" {
		publisher, err = mq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatalf("failed to connect to rabbitmq: %v", err)
		}
		defer publisher.Close()
	}

	rules := schedule.Rules{
		MaxDuration: time.Duration(cfg.MaxInterviewHours) * time.Hour,
		StartHour:   cfg.BusinessHourStart,
		EndHour:     cfg.BusinessHourEnd,
	}

	appInstance := &app.App{
		DB:     pool,
		Events: publisher,
		Guard:  schedule.NewCreateGuard(cfg.CreateDebounce, nil),
		Rules:  rules,
		Loc:    loc,
		OAuth:  app.NewGoogleOAuthConfig(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL),
	}

	if err := appInstance.EnsureSchema(ctx); err != nil {
		log.Fatalf("failed to ensure schema: %v", err)
	}

	router := gin.Default()

	// OAuth2 callback (must be before auth middleware)
	router.GET("/oauth2callback", appInstance.GoogleOAuth2CallbackHandler)

	router.Use(app.AuthMiddleware(cfg.StaticTokens, cfg.JWTSecret))

	api := router.Group("/api")
	{
		schedules := api.Group("/interview-schedules")
		{
			schedules.POST("", appInstance.CreateScheduleHandler)
			schedules.POST("/auto", appInstance.AutoScheduleHandler)
			schedules.GET("", appInstance.ListSchedulesHandler)
			schedules.GET("/pending", appInstance.ListPendingSchedulesHandler)
			schedules.PUT("/:id", appInstance.RescheduleHandler)
			schedules.PUT("/:id/result", appInstance.RecordResultHandler)
			schedules.DELETE("/:id", appInstance.DeleteScheduleHandler)
			schedules.POST("/:id/calendar-event", appInstance.ExportScheduleHandler)
		}

		applications := api.Group("/recruitment-applications")
		{
			applications.POST("", appInstance.CreateApplicationHandler)
			applications.GET("", appInstance.ListApplicationsHandler)
			applications.GET("/approved", appInstance.ListApprovedApplicationsHandler)
			applications.POST("/:id/approve", appInstance.ApproveApplicationHandler)
			applications.POST("/:id/reject", appInstance.RejectApplicationHandler)
			applications.DELETE("/:id", appInstance.DeleteApplicationHandler)
		}

		calendar := api.Group("/calendar")
		{
			calendar.GET("/auth", appInstance.GoogleAuthHandler)
			calendar.GET("/events", appInstance.GetCalendarEventsHandler)
		}
	}

	server.Run(router, ":"+cfg.Port)
}
