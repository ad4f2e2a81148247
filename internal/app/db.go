package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"interview-scheduler/internal/schedule"
)

const scheduleColumns = `id, application_id, applicant_name, job_title,
	start_time, end_time, status, COALESCE(result, ''), created_at, updated_at`

func scanSchedule(row pgx.Row) (Schedule, error) {
	var s Schedule
	err := row.Scan(&s.ID, &s.ApplicationID, &s.ApplicantName, &s.JobTitle,
		&s.StartTime, &s.EndTime, &s.Status, &s.Result, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func collectSchedules(rows pgx.Rows) ([]Schedule, error) {
	defer rows.Close()
	var out []Schedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListSchedules returns every booking still relevant to the calendar.
// REJECTED bookings are dropped here, not in the conflict check.
func (a *App) ListSchedules(ctx context.Context) ([]Schedule, error) {
	q := `SELECT ` + scheduleColumns + `
	      FROM interview_schedules
	      WHERE status != 'REJECTED'
	      ORDER BY start_time`
	rows, err := a.DB.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	return collectSchedules(rows)
}

// ListPendingSchedules returns bookings still awaiting an outcome.
func (a *App) ListPendingSchedules(ctx context.Context) ([]Schedule, error) {
	q := `SELECT ` + scheduleColumns + `
	      FROM interview_schedules
	      WHERE status IN ('PENDING','SCHEDULED','DONE')
	      ORDER BY start_time`
	rows, err := a.DB.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	return collectSchedules(rows)
}

func (a *App) GetSchedule(ctx context.Context, id string) (Schedule, error) {
	q := `SELECT ` + scheduleColumns + ` FROM interview_schedules WHERE id=$1`
	return scanSchedule(a.DB.QueryRow(ctx, q, id))
}

// guardEditable re-checks the immutable-status invariant on a row read
// under lock: the handler's pre-check ran on an unlocked snapshot that a
// concurrent result record may have outrun.
func guardEditable(s Schedule) error {
	if !schedule.Status(s.Status).Editable() {
		return &schedule.ValidationError{
			Code:    schedule.CodeImmutableStatus,
			Message: "a " + string(schedule.Normalize(schedule.Status(s.Status))) + " interview can no longer be modified",
		}
	}
	return nil
}

// guardTransition re-checks the result transition on a locked row so two
// concurrent result records cannot double-transition a booking.
func guardTransition(s Schedule, next schedule.Status) error {
	if !schedule.CanTransition(schedule.Status(s.Status), next) {
		return &schedule.ValidationError{
			Code: schedule.CodeImmutableStatus,
			Message: "cannot move a " + string(schedule.Normalize(schedule.Status(s.Status))) +
				" interview to " + string(schedule.Normalize(next)),
		}
	}
	return nil
}

// lockConflicts locks every booking that would overlap the interval and
// returns the first one, mirroring the pure pre-check against a snapshot
// the database may have outrun.
func lockConflicts(ctx context.Context, tx pgx.Tx, iv schedule.Interval, excludeAppID int64, excludeID string) (*schedule.Booking, error) {
	q := `SELECT id, application_id, applicant_name, start_time, end_time, status
	      FROM interview_schedules
	      WHERE status NOT IN ('DONE','REJECTED')
	        AND application_id != $1
	        AND id != $2
	        AND start_time < $4 AND end_time > $3
	      ORDER BY start_time
	      FOR UPDATE`
	rows, err := tx.Query(ctx, q, excludeAppID, excludeID, iv.Start, iv.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var first *schedule.Booking
	for rows.Next() {
		var b schedule.Booking
		if err := rows.Scan(&b.ID, &b.ApplicationID, &b.ApplicantName, &b.StartTime, &b.EndTime, &b.Status); err != nil {
			return nil, err
		}
		if first == nil {
			first = &b
		}
	}
	return first, rows.Err()
}

// InsertSchedule creates a PENDING booking inside a transaction that
// re-checks the invariants the handler already pre-checked: the lock
// makes the database the final arbiter under concurrent clients.
func (a *App) InsertSchedule(ctx context.Context, appl Application, iv schedule.Interval) (Schedule, error) {
	tx, err := a.DB.Begin(ctx)
	if err != nil {
		return Schedule{}, err
	}
	defer tx.Rollback(ctx)

	// one non-terminal booking per application, across all days
	var existingID string
	checkQ := `SELECT id FROM interview_schedules
	           WHERE application_id=$1 AND status IN ('PENDING','SCHEDULED')
	           LIMIT 1 FOR UPDATE`
	err = tx.QueryRow(ctx, checkQ, appl.ID).Scan(&existingID)
	if err == nil {
		return Schedule{}, &schedule.ValidationError{
			Code:    schedule.CodeAlreadyScheduled,
			Message: "application already has an interview scheduled",
		}
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return Schedule{}, err
	}

	if c, err := lockConflicts(ctx, tx, iv, appl.ID, ""); err != nil {
		return Schedule{}, err
	} else if c != nil {
		return Schedule{}, schedule.NewConflictError(c)
	}

	now := time.Now().UTC()
	s := Schedule{
		ID:            uuid.NewString(),
		ApplicationID: appl.ID,
		ApplicantName: appl.FullName,
		JobTitle:      appl.JobTitle,
		StartTime:     iv.Start,
		EndTime:       iv.End,
		Status:        string(schedule.StatusPending),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	insertQ := `INSERT INTO interview_schedules
	            (id, application_id, applicant_name, job_title, start_time, end_time, status, created_at, updated_at)
	            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	if _, err := tx.Exec(ctx, insertQ,
		s.ID, s.ApplicationID, s.ApplicantName, s.JobTitle,
		s.StartTime, s.EndTime, s.Status, s.CreatedAt, s.UpdatedAt); err != nil {
		return Schedule{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Schedule{}, err
	}
	return s, nil
}

// UpdateScheduleTime moves or resizes a booking, re-checking overlap
// under lock.
func (a *App) UpdateScheduleTime(ctx context.Context, id string, iv schedule.Interval) (Schedule, error) {
	tx, err := a.DB.Begin(ctx)
	if err != nil {
		return Schedule{}, err
	}
	defer tx.Rollback(ctx)

	q := `SELECT ` + scheduleColumns + ` FROM interview_schedules WHERE id=$1 FOR UPDATE`
	s, err := scanSchedule(tx.QueryRow(ctx, q, id))
	if err != nil {
		return Schedule{}, err
	}
	if err := guardEditable(s); err != nil {
		return Schedule{}, err
	}

	if c, err := lockConflicts(ctx, tx, iv, s.ApplicationID, s.ID); err != nil {
		return Schedule{}, err
	} else if c != nil {
		return Schedule{}, schedule.NewConflictError(c)
	}

	now := time.Now().UTC()
	updateQ := `UPDATE interview_schedules
	            SET start_time=$1, end_time=$2, updated_at=$3
	            WHERE id=$4`
	if _, err := tx.Exec(ctx, updateQ, iv.Start, iv.End, now, id); err != nil {
		return Schedule{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Schedule{}, err
	}

	s.StartTime = iv.Start
	s.EndTime = iv.End
	s.UpdatedAt = now
	return s, nil
}

// UpdateScheduleResult records the interview outcome. The status must
// already be validated and normalized; the transition is re-checked on
// the locked row.
func (a *App) UpdateScheduleResult(ctx context.Context, id string, status schedule.Status, result string) (Schedule, error) {
	tx, err := a.DB.Begin(ctx)
	if err != nil {
		return Schedule{}, err
	}
	defer tx.Rollback(ctx)

	q := `SELECT ` + scheduleColumns + ` FROM interview_schedules WHERE id=$1 FOR UPDATE`
	s, err := scanSchedule(tx.QueryRow(ctx, q, id))
	if err != nil {
		return Schedule{}, err
	}
	if err := guardTransition(s, status); err != nil {
		return Schedule{}, err
	}

	now := time.Now().UTC()
	updateQ := `UPDATE interview_schedules
	            SET status=$1, result=$2, updated_at=$3
	            WHERE id=$4`
	if _, err := tx.Exec(ctx, updateQ, string(status), result, now, id); err != nil {
		return Schedule{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Schedule{}, err
	}

	s.Status = string(status)
	s.Result = result
	s.UpdatedAt = now
	return s, nil
}

// DeleteSchedule removes a booking, re-checking under lock that its
// status still permits deletion.
func (a *App) DeleteSchedule(ctx context.Context, id string) error {
	tx, err := a.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	q := `SELECT ` + scheduleColumns + ` FROM interview_schedules WHERE id=$1 FOR UPDATE`
	s, err := scanSchedule(tx.QueryRow(ctx, q, id))
	if err != nil {
		return err
	}
	if err := guardEditable(s); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM interview_schedules WHERE id=$1`, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func scanApplication(row pgx.Row) (Application, error) {
	var appl Application
	err := row.Scan(&appl.ID, &appl.FullName, &appl.Email, &appl.JobTitle, &appl.Status, &appl.CreatedAt)
	return appl, err
}

const applicationColumns = `id, full_name, email, job_title, status, created_at`

func (a *App) InsertApplication(ctx context.Context, appl *Application) error {
	appl.Status = applicationPending
	appl.CreatedAt = time.Now().UTC()
	q := `INSERT INTO recruitment_applications (full_name, email, job_title, status, created_at)
	      VALUES ($1,$2,$3,$4,$5) RETURNING id`
	return a.DB.QueryRow(ctx, q, appl.FullName, appl.Email, appl.JobTitle, appl.Status, appl.CreatedAt).Scan(&appl.ID)
}

func (a *App) GetApplication(ctx context.Context, id int64) (Application, error) {
	q := `SELECT ` + applicationColumns + ` FROM recruitment_applications WHERE id=$1`
	return scanApplication(a.DB.QueryRow(ctx, q, id))
}

func (a *App) ListApplications(ctx context.Context, status string) ([]Application, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if status != "" {
		q := `SELECT ` + applicationColumns + ` FROM recruitment_applications WHERE status=$1 ORDER BY id`
		rows, err = a.DB.Query(ctx, q, status)
	} else {
		q := `SELECT ` + applicationColumns + ` FROM recruitment_applications ORDER BY id`
		rows, err = a.DB.Query(ctx, q)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Application
	for rows.Next() {
		appl, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, appl)
	}
	return out, rows.Err()
}

func (a *App) SetApplicationStatus(ctx context.Context, id int64, status string) (Application, error) {
	q := `UPDATE recruitment_applications SET status=$1 WHERE id=$2 RETURNING ` + applicationColumns
	return scanApplication(a.DB.QueryRow(ctx, q, status, id))
}

func (a *App) DeleteApplication(ctx context.Context, id int64) error {
	res, err := a.DB.Exec(ctx, `DELETE FROM recruitment_applications WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// RejectApplication marks the application REJECTED and removes its
// not-yet-held bookings in one transaction, so a failure cannot leave a
// rejected candidate still occupying a slot. Locked bookings stay.
func (a *App) RejectApplication(ctx context.Context, id int64) (Application, []string, error) {
	tx, err := a.DB.Begin(ctx)
	if err != nil {
		return Application{}, nil, err
	}
	defer tx.Rollback(ctx)

	q := `UPDATE recruitment_applications SET status=$1 WHERE id=$2 RETURNING ` + applicationColumns
	appl, err := scanApplication(tx.QueryRow(ctx, q, applicationRejected, id))
	if err != nil {
		return Application{}, nil, err
	}

	deleteQ := `DELETE FROM interview_schedules
	            WHERE application_id=$1 AND status IN ('PENDING','SCHEDULED')
	            RETURNING id`
	rows, err := tx.Query(ctx, deleteQ, id)
	if err != nil {
		return Application{}, nil, err
	}
	defer rows.Close()

	var removed []string
	for rows.Next() {
		var scheduleID string
		if err := rows.Scan(&scheduleID); err != nil {
			return Application{}, nil, err
		}
		removed = append(removed, scheduleID)
	}
	if err := rows.Err(); err != nil {
		return Application{}, nil, err
	}
	rows.Close()

	if err := tx.Commit(ctx); err != nil {
		return Application{}, nil, err
	}
	return appl, removed, nil
}
