package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"interview-scheduler/internal/schedule"
)

// NewGoogleOAuthConfig builds the OAuth2 config for calendar export.
// Returns nil when the integration is not configured.
func NewGoogleOAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil
	}
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes: []string{
			calendar.CalendarEventsScope,
		},
		Endpoint: google.Endpoint,
	}
}

// GET /api/calendar/auth
func (a *App) GoogleAuthHandler(c *gin.Context) {
	if a.OAuth == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Google Calendar not configured"})
		return
	}

	state := fmt.Sprintf("organizer_%d", time.Now().Unix())
	url := a.OAuth.AuthCodeURL(state, oauth2.AccessTypeOffline)
	c.JSON(http.StatusOK, gin.H{
		"auth_url": url,
		"state":    state,
	})
}

// GET /oauth2callback
func (a *App) GoogleOAuth2CallbackHandler(c *gin.Context) {
	if a.OAuth == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Google Calendar not configured"})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "authorization code required"})
		return
	}

	token, err := a.OAuth.Exchange(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to exchange code for token"})
		return
	}

	tokenJSON, _ := json.Marshal(token)
	c.JSON(http.StatusOK, gin.H{
		"message": "Authorization successful",
		"state":   c.Query("state"),
		"token":   string(tokenJSON),
	})
}

func (a *App) calendarService(c *gin.Context) (*calendar.Service, bool) {
	if a.OAuth == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Google Calendar not configured"})
		return nil, false
	}
	tokenStr := c.GetHeader("X-Google-Token")
	if tokenStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Google token required in X-Google-Token header"})
		return nil, false
	}
	var token oauth2.Token
	if err := json.Unmarshal([]byte(tokenStr), &token); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid token format"})
		return nil, false
	}

	client := a.OAuth.Client(context.Background(), &token)
	srv, err := calendar.NewService(c.Request.Context(), option.WithHTTPClient(client))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create calendar service"})
		return nil, false
	}
	return srv, true
}

// POST /api/interview-schedules/:id/calendar-event
// Exports a booking to the organizer's Google Calendar.
func (a *App) ExportScheduleHandler(c *gin.Context) {
	srv, ok := a.calendarService(c)
	if !ok {
		return
	}

	s, err := a.GetSchedule(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if schedule.Status(s.Status) == schedule.StatusRejected {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rejected interviews are not exported"})
		return
	}

	calendarID := c.DefaultQuery("calendar_id", "primary")
	event := &calendar.Event{
		Summary:     fmt.Sprintf("%s - %s", s.ApplicantName, s.JobTitle),
		Description: fmt.Sprintf("Interview for application %d (status %s)", s.ApplicationID, s.Status),
		Start:       &calendar.EventDateTime{DateTime: s.StartTime.Format(time.RFC3339)},
		End:         &calendar.EventDateTime{DateTime: s.EndTime.Format(time.RFC3339)},
	}

	created, err := srv.Events.Insert(calendarID, event).Do()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("failed to create event: %v", err)})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"event_id":   created.Id,
		"html_link":  created.HtmlLink,
		"scheduleId": s.ID,
	})
}

// GET /api/calendar/events
func (a *App) GetCalendarEventsHandler(c *gin.Context) {
	srv, ok := a.calendarService(c)
	if !ok {
		return
	}

	calendarID := c.DefaultQuery("calendar_id", "primary")
	eventsCall := srv.Events.List(calendarID).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(250)

	if timeMin := c.Query("time_min"); timeMin != "" {
		eventsCall = eventsCall.TimeMin(timeMin)
	}
	if timeMax := c.Query("time_max"); timeMax != "" {
		eventsCall = eventsCall.TimeMax(timeMax)
	}

	events, err := eventsCall.Do()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("failed to retrieve events: %v", err)})
		return
	}

	type exportedEvent struct {
		ID        string `json:"id"`
		Summary   string `json:"summary"`
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
		Status    string `json:"status"`
	}
	var out []exportedEvent
	for _, item := range events.Items {
		ev := exportedEvent{ID: item.Id, Summary: item.Summary, Status: item.Status}
		if item.Start != nil {
			ev.StartTime = item.Start.DateTime
		}
		if item.End != nil {
			ev.EndTime = item.End.DateTime
		}
		out = append(out, ev)
	}

	c.JSON(http.StatusOK, gin.H{"events": out, "count": len(out)})
}
