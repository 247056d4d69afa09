package workout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/flexlog/flexlog/internal/sqlite"
)

// ScheduledSession assigns a template to a calendar date.
type ScheduledSession struct {
	Date       time.Time `json:"date"`
	TemplateID string    `json:"templateId"`
}

// sqliteScheduleRepository persists template-to-date assignments.
type sqliteScheduleRepository struct {
	baseRepository
}

func newSQLiteScheduleRepository(db *sqlite.Database, logger *slog.Logger) *sqliteScheduleRepository {
	return &sqliteScheduleRepository{
		baseRepository: newBaseRepository(db, logger),
	}
}

// Get retrieves the template assignment for a date.
func (r *sqliteScheduleRepository) Get(ctx context.Context, date time.Time) (ScheduledSession, error) {
	scheduled := ScheduledSession{Date: date}

	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT template_id
		FROM schedule
		WHERE date = ?`, formatDate(date)).
		Scan(&scheduled.TemplateID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ScheduledSession{}, ErrNotFound
		}
		return ScheduledSession{}, fmt.Errorf("query schedule: %w", err)
	}

	return scheduled, nil
}

// List retrieves assignments within a date range, both ends inclusive.
func (r *sqliteScheduleRepository) List(ctx context.Context, from, until time.Time) (_ []ScheduledSession, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT date, template_id
		FROM schedule
		WHERE date >= ? AND date <= ?
		ORDER BY date`, formatDate(from), formatDate(until))
	if err != nil {
		return nil, fmt.Errorf("query schedule: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var scheduled []ScheduledSession
	for rows.Next() {
		var (
			entry   ScheduledSession
			dateStr string
		)
		if err = rows.Scan(&dateStr, &entry.TemplateID); err != nil {
			return nil, fmt.Errorf("scan schedule row: %w", err)
		}
		if entry.Date, err = time.Parse(dateFormat, dateStr); err != nil {
			return nil, fmt.Errorf("parse schedule date: %w", err)
		}
		scheduled = append(scheduled, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return scheduled, nil
}

// Set assigns a template to a date, replacing any existing assignment.
func (r *sqliteScheduleRepository) Set(ctx context.Context, scheduled ScheduledSession) error {
	if _, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO schedule (date, template_id)
		VALUES (?, ?)
		ON CONFLICT (date) DO UPDATE SET template_id = excluded.template_id`,
		formatDate(scheduled.Date), scheduled.TemplateID); err != nil {
		return fmt.Errorf("set schedule: %w", err)
	}
	return nil
}

// Delete clears the assignment for a date.
func (r *sqliteScheduleRepository) Delete(ctx context.Context, date time.Time) error {
	if _, err := r.db.ReadWrite.ExecContext(ctx,
		`DELETE FROM schedule WHERE date = ?`, formatDate(date)); err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	return nil
}
