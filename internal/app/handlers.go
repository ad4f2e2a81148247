package app

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"interview-scheduler/internal/mq"
	"interview-scheduler/internal/schedule"
)

// timeParam is the zone-less layout the calendar client sends; values are
// interpreted in the service's configured location.
const timeParam = "2006-01-02T15:04:05"

func (a *App) parseTimeParam(s string) (time.Time, error) {
	return time.ParseInLocation(timeParam, s, a.Loc)
}

func (a *App) now() time.Time {
	return time.Now().In(a.Loc)
}

// respondError maps guard violations to the stable codes the client
// localizes, conflicts to 409, and missing rows to 404.
func respondError(c *gin.Context, err error) {
	var verr *schedule.ValidationError
	if errors.As(err, &verr) {
		status := http.StatusBadRequest
		if verr.Code == schedule.CodeScheduleConflict || verr.Code == schedule.CodeNoFreeSlot {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": verr.Code, "message": verr.Message})
		return
	}
	if errors.Is(err, pgx.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "NOT_FOUND", "message": "not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func (a *App) publish(ctx context.Context, key string, s Schedule) {
	// best effort; a lost event never fails the mutation
	_ = a.Events.PublishJSON(ctx, key, gin.H{
		"scheduleId":    s.ID,
		"applicationId": s.ApplicationID,
		"applicantName": s.ApplicantName,
		"startTime":     s.StartTime,
		"endTime":       s.EndTime,
		"status":        s.Status,
	})
}

// POST /api/interview-schedules?applicationId=&startTime=&endTime=
func (a *App) CreateScheduleHandler(c *gin.Context) {
	appID, err := strconv.ParseInt(c.Query("applicationId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "applicationId required"})
		return
	}
	start, err := a.parseTimeParam(c.Query("startTime"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startTime"})
		return
	}
	end, err := a.parseTimeParam(c.Query("endTime"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endTime"})
		return
	}

	if err := a.Guard.Begin(appID); err != nil {
		respondError(c, err)
		return
	}
	defer a.Guard.End(appID)

	ctx := c.Request.Context()
	appl, err := a.GetApplication(ctx, appID)
	if err != nil {
		respondError(c, err)
		return
	}

	candidate := schedule.Interval{Start: start, End: end}
	snapshot, err := a.ListSchedules(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := a.Rules.ValidateCreate(candidate, appID, bookings(snapshot), a.now()); err != nil {
		respondError(c, err)
		return
	}

	s, err := a.InsertSchedule(ctx, appl, candidate)
	if err != nil {
		respondError(c, err)
		return
	}

	a.publish(ctx, mq.KeyScheduled, s)
	s.Color = colorForStatus(schedule.Status(s.Status))
	c.JSON(http.StatusCreated, s)
}

// POST /api/interview-schedules/auto?applicationId=&day=
// Picks the next free hour within business hours instead of taking a
// caller-chosen range.
func (a *App) AutoScheduleHandler(c *gin.Context) {
	appID, err := strconv.ParseInt(c.Query("applicationId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "applicationId required"})
		return
	}
	day, err := time.ParseInLocation("2006-01-02", c.Query("day"), a.Loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day"})
		return
	}

	if err := a.Guard.Begin(appID); err != nil {
		respondError(c, err)
		return
	}
	defer a.Guard.End(appID)

	ctx := c.Request.Context()
	appl, err := a.GetApplication(ctx, appID)
	if err != nil {
		respondError(c, err)
		return
	}

	snapshot, err := a.ListSchedules(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	slot, err := a.Rules.AllocateSlot(day, appID, bookings(snapshot), a.now())
	if err != nil {
		respondError(c, err)
		return
	}

	s, err := a.InsertSchedule(ctx, appl, slot)
	if err != nil {
		respondError(c, err)
		return
	}

	a.publish(ctx, mq.KeyScheduled, s)
	s.Color = colorForStatus(schedule.Status(s.Status))
	c.JSON(http.StatusCreated, s)
}

// GET /api/interview-schedules
func (a *App) ListSchedulesHandler(c *gin.Context) {
	schedules, err := a.ListSchedules(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	for i := range schedules {
		schedules[i].Color = colorForStatus(schedule.Status(schedules[i].Status))
	}
	c.JSON(http.StatusOK, schedules)
}

// GET /api/interview-schedules/pending
func (a *App) ListPendingSchedulesHandler(c *gin.Context) {
	schedules, err := a.ListPendingSchedules(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	for i := range schedules {
		schedules[i].Color = colorForStatus(schedule.Status(schedules[i].Status))
	}
	c.JSON(http.StatusOK, schedules)
}

// PUT /api/interview-schedules/:id?startTime=&endTime=
// Serves both calendar drag and resize; the client reverts its optimistic
// move whenever this returns an error.
func (a *App) RescheduleHandler(c *gin.Context) {
	id := c.Param("id")
	start, err := a.parseTimeParam(c.Query("startTime"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startTime"})
		return
	}
	end, err := a.parseTimeParam(c.Query("endTime"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endTime"})
		return
	}

	ctx := c.Request.Context()
	current, err := a.GetSchedule(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	next := schedule.Interval{Start: start, End: end}
	snapshot, err := a.ListSchedules(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := a.Rules.ValidateReschedule(current.booking(), next, bookings(snapshot)); err != nil {
		respondError(c, err)
		return
	}

	s, err := a.UpdateScheduleTime(ctx, id, next)
	if err != nil {
		respondError(c, err)
		return
	}

	a.publish(ctx, mq.KeyRescheduled, s)
	s.Color = colorForStatus(schedule.Status(s.Status))
	c.JSON(http.StatusOK, s)
}

type recordResultReq struct {
	Status string `json:"status" binding:"required"`
	Result string `json:"result"`
}

// PUT /api/interview-schedules/:id/result
func (a *App) RecordResultHandler(c *gin.Context) {
	id := c.Param("id")
	var req recordResultReq
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	current, err := a.GetSchedule(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	next := schedule.Status(req.Status)
	if err := schedule.ValidateResult(current.booking(), next, req.Result); err != nil {
		respondError(c, err)
		return
	}

	s, err := a.UpdateScheduleResult(ctx, id, schedule.Normalize(next), req.Result)
	if err != nil {
		respondError(c, err)
		return
	}

	a.publish(ctx, mq.KeyResult, s)
	s.Color = colorForStatus(schedule.Status(s.Status))
	c.JSON(http.StatusOK, s)
}

// DELETE /api/interview-schedules/:id
func (a *App) DeleteScheduleHandler(c *gin.Context) {
	id := c.Param("id")

	ctx := c.Request.Context()
	current, err := a.GetSchedule(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := schedule.ValidateDelete(current.booking()); err != nil {
		respondError(c, err)
		return
	}

	if err := a.DeleteSchedule(ctx, id); err != nil {
		respondError(c, err)
		return
	}

	a.publish(ctx, mq.KeyCancelled, current)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
