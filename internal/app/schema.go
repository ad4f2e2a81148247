package app

import "context"

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS recruitment_applications (
		id         BIGSERIAL PRIMARY KEY,
		full_name  TEXT NOT NULL,
		email      TEXT NOT NULL,
		job_title  TEXT NOT NULL,
		status     TEXT NOT NULL DEFAULT 'PENDING',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS interview_schedules (
		id             TEXT PRIMARY KEY,
		application_id BIGINT NOT NULL REFERENCES recruitment_applications(id) ON DELETE CASCADE,
		applicant_name TEXT NOT NULL,
		job_title      TEXT NOT NULL,
		start_time     TIMESTAMPTZ NOT NULL,
		end_time       TIMESTAMPTZ NOT NULL,
		status         TEXT NOT NULL DEFAULT 'PENDING',
		result         TEXT,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		CHECK (start_time < end_time)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_interview_schedules_start
		ON interview_schedules (start_time)`,
	`CREATE INDEX IF NOT EXISTS idx_interview_schedules_application
		ON interview_schedules (application_id)`,
}

// EnsureSchema creates the tables on boot.
func (a *App) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := a.DB.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
