package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"interview-scheduler/internal/schedule"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	conflict := &schedule.Booking{ID: "b1", ApplicationID: 5, ApplicantName: "Nguyen Van A"}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "validation failure is 400 with stable code",
			err:        &schedule.ValidationError{Code: schedule.CodePastTime, Message: "start time must not be in the past"},
			wantStatus: http.StatusBadRequest,
			wantCode:   schedule.CodePastTime,
		},
		{
			name:       "conflict is 409",
			err:        schedule.NewConflictError(conflict),
			wantStatus: http.StatusConflict,
			wantCode:   schedule.CodeScheduleConflict,
		},
		{
			name:       "full day is 409",
			err:        &schedule.ValidationError{Code: schedule.CodeNoFreeSlot, Message: "no free slot"},
			wantStatus: http.StatusConflict,
			wantCode:   schedule.CodeNoFreeSlot,
		},
		{
			name:       "missing row is 404",
			err:        pgx.ErrNoRows,
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			respondError(c, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON body: %v", err)
			}
			if body["error"] != tt.wantCode {
				t.Errorf("error = %v, want %s", body["error"], tt.wantCode)
			}
		})
	}
}
