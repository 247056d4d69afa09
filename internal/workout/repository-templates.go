package workout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/flexlog/flexlog/internal/sqlite"
)

// sqliteTemplateRepository persists session templates and their ordered
// exercise lists.
type sqliteTemplateRepository struct {
	baseRepository
}

func newSQLiteTemplateRepository(db *sqlite.Database, logger *slog.Logger) *sqliteTemplateRepository {
	return &sqliteTemplateRepository{
		baseRepository: newBaseRepository(db, logger),
	}
}

// List retrieves all templates with their exercise ids in position order.
func (r *sqliteTemplateRepository) List(ctx context.Context) (_ []Template, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT wt.id, wt.name, wt.default_sets, wt.default_reps, te.exercise_id
		FROM workout_templates wt
		JOIN template_exercises te ON te.template_id = wt.id
		ORDER BY wt.name, te.position`)
	if err != nil {
		return nil, fmt.Errorf("query templates: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var (
		templates []Template
		current   Template
	)
	for rows.Next() {
		var (
			template   Template
			exerciseID string
		)
		if err = rows.Scan(&template.ID, &template.Name, &template.DefaultSets, &template.DefaultReps,
			&exerciseID); err != nil {
			return nil, fmt.Errorf("scan template row: %w", err)
		}

		if template.ID != current.ID {
			if current.ID != "" {
				templates = append(templates, current)
			}
			current = template
		}
		current.ExerciseIDs = append(current.ExerciseIDs, exerciseID)
	}
	if current.ID != "" {
		templates = append(templates, current)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return templates, nil
}

// Get retrieves a template by id.
func (r *sqliteTemplateRepository) Get(ctx context.Context, id string) (Template, error) {
	var template Template

	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, name, default_sets, default_reps
		FROM workout_templates
		WHERE id = ?`, id).
		Scan(&template.ID, &template.Name, &template.DefaultSets, &template.DefaultReps)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Template{}, ErrNotFound
		}
		return Template{}, fmt.Errorf("query template: %w", err)
	}

	if template.ExerciseIDs, err = r.exerciseIDs(ctx, id); err != nil {
		return Template{}, fmt.Errorf("load template exercises: %w", err)
	}

	return template, nil
}

// Create adds a new template.
func (r *sqliteTemplateRepository) Create(ctx context.Context, template Template) (err error) {
	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("rollback transaction: %w", rollbackErr))
		}
	}()

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO workout_templates (id, name, default_sets, default_reps)
		VALUES (?, ?, ?, ?)`,
		template.ID, template.Name, template.DefaultSets, template.DefaultReps); err != nil {
		return fmt.Errorf("insert template: %w", err)
	}

	for position, exerciseID := range template.ExerciseIDs {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO template_exercises (template_id, position, exercise_id)
			VALUES (?, ?, ?)`,
			template.ID, position, exerciseID); err != nil {
			return fmt.Errorf("insert template exercise: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// Delete removes a template and its exercise list.
func (r *sqliteTemplateRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ReadWrite.ExecContext(ctx,
		`DELETE FROM workout_templates WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}

func (r *sqliteTemplateRepository) exerciseIDs(ctx context.Context, templateID string) (_ []string, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT exercise_id
		FROM template_exercises
		WHERE template_id = ?
		ORDER BY position`, templateID)
	if err != nil {
		return nil, fmt.Errorf("query template exercises: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var ids []string
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan exercise id: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return ids, nil
}
