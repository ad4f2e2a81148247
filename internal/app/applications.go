package app

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"interview-scheduler/internal/mq"
)

type createApplicationReq struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	JobTitle string `json:"jobTitle" binding:"required"`
}

// POST /api/recruitment-applications
func (a *App) CreateApplicationHandler(c *gin.Context) {
	var req createApplicationReq
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appl := Application{FullName: req.FullName, Email: req.Email, JobTitle: req.JobTitle}
	if err := a.InsertApplication(c.Request.Context(), &appl); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appl)
}

// GET /api/recruitment-applications
func (a *App) ListApplicationsHandler(c *gin.Context) {
	apps, err := a.ListApplications(c.Request.Context(), "")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// GET /api/recruitment-applications/approved
func (a *App) ListApprovedApplicationsHandler(c *gin.Context) {
	apps, err := a.ListApplications(c.Request.Context(), applicationApproved)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

func applicationID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid application id"})
		return 0, false
	}
	return id, true
}

// POST /api/recruitment-applications/:id/approve
func (a *App) ApproveApplicationHandler(c *gin.Context) {
	id, ok := applicationID(c)
	if !ok {
		return
	}
	appl, err := a.SetApplicationStatus(c.Request.Context(), id, applicationApproved)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appl)
}

type rejectApplicationReq struct {
	Reason string `json:"reason"`
}

// POST /api/recruitment-applications/:id/reject
// Rejection also removes the candidate's not-yet-held interview booking,
// freeing the slot.
func (a *App) RejectApplicationHandler(c *gin.Context) {
	id, ok := applicationID(c)
	if !ok {
		return
	}
	var req rejectApplicationReq
	if c.Request.ContentLength > 0 {
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	ctx := c.Request.Context()
	appl, removed, err := a.RejectApplication(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	for _, scheduleID := range removed {
		_ = a.Events.PublishJSON(ctx, mq.KeyCancelled, gin.H{
			"scheduleId":    scheduleID,
			"applicationId": id,
			"reason":        req.Reason,
		})
	}

	c.JSON(http.StatusOK, gin.H{"application": appl, "removedSchedules": removed})
}

// DELETE /api/recruitment-applications/:id
func (a *App) DeleteApplicationHandler(c *gin.Context) {
	id, ok := applicationID(c)
	if !ok {
		return
	}
	if err := a.DeleteApplication(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
