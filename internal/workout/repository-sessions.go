package workout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/flexlog/flexlog/internal/sqlite"
)

// sqliteSessionRepository persists workout sessions with their per-exercise
// logs and per-set rows.
type sqliteSessionRepository struct {
	baseRepository
}

func newSQLiteSessionRepository(db *sqlite.Database, logger *slog.Logger) *sqliteSessionRepository {
	return &sqliteSessionRepository{
		baseRepository: newBaseRepository(db, logger),
	}
}

// Get retrieves a session by id.
func (r *sqliteSessionRepository) Get(ctx context.Context, id string) (Session, error) {
	var (
		session Session
		dateStr string
	)

	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, name, date, completed, duration_seconds, is_historical
		FROM workout_sessions
		WHERE id = ?`, id).
		Scan(&session.ID, &session.Name, &dateStr, &session.Completed,
			&session.DurationSeconds, &session.IsHistorical)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrNotFound
		}
		return Session{}, fmt.Errorf("query session: %w", err)
	}

	if session.Date, err = parseTimestamp(dateStr); err != nil {
		return Session{}, fmt.Errorf("parse session date: %w", err)
	}

	if session.Exercises, err = r.loadExerciseLogs(ctx, session.ID); err != nil {
		return Session{}, fmt.Errorf("load exercise logs: %w", err)
	}

	return session, nil
}

// GetActive retrieves the in-progress session, the persisted draft the user
// can resume after a crash or reload. ErrNotFound when nothing is active.
func (r *sqliteSessionRepository) GetActive(ctx context.Context) (Session, error) {
	var id string
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id
		FROM workout_sessions
		WHERE completed = FALSE
		ORDER BY date DESC
		LIMIT 1`).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrNotFound
		}
		return Session{}, fmt.Errorf("query active session: %w", err)
	}

	return r.Get(ctx, id)
}

// List retrieves completed sessions since a given date, newest first.
func (r *sqliteSessionRepository) List(ctx context.Context, since time.Time) (_ []Session, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id
		FROM workout_sessions
		WHERE completed = TRUE AND date >= ?
		ORDER BY date DESC`, formatTimestamp(since))
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
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
			return nil, fmt.Errorf("scan session id: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	sessions := make([]Session, 0, len(ids))
	for _, id := range ids {
		var session Session
		if session, err = r.Get(ctx, id); err != nil {
			return nil, fmt.Errorf("load session %s: %w", id, err)
		}
		sessions = append(sessions, session)
	}

	return sessions, nil
}

// Create adds a new session.
func (r *sqliteSessionRepository) Create(ctx context.Context, session Session) error {
	if err := r.set(ctx, session, false); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// Update loads a session, applies updateFn, and saves it when updateFn
// reports a change.
func (r *sqliteSessionRepository) Update(
	ctx context.Context,
	id string,
	updateFn func(session *Session) (bool, error),
) error {
	session, err := r.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get session for update: %w", err)
	}

	updated, err := updateFn(&session)
	if err != nil {
		return fmt.Errorf("update function: %w", err)
	}

	if updated {
		if err = r.set(ctx, session, true); err != nil {
			return fmt.Errorf("save updated session: %w", err)
		}
	}

	return nil
}

// Delete removes a session and, through foreign keys, its logs and sets.
func (r *sqliteSessionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ReadWrite.ExecContext(ctx,
		`DELETE FROM workout_sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// set writes a session with optional upsert. The session row and its child
// rows are replaced wholesale inside one transaction.
func (r *sqliteSessionRepository) set(ctx context.Context, session Session, upsert bool) (err error) {
	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("rollback transaction: %w", rollbackErr))
		}
	}()

	// Delete so the session can be reinserted with fresh child rows.
	if upsert {
		if _, err = tx.ExecContext(ctx,
			`DELETE FROM workout_sessions WHERE id = ?`, session.ID); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO workout_sessions (id, name, date, completed, duration_seconds, is_historical)
		VALUES (?, ?, ?, ?, ?, ?)`,
		session.ID, session.Name, formatTimestamp(session.Date),
		session.Completed, session.DurationSeconds, session.IsHistorical); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	if err = r.saveExerciseLogs(ctx, tx, session.ID, session.Exercises); err != nil {
		return fmt.Errorf("save exercise logs: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// loadExerciseLogs fetches the per-exercise logs and their sets for a session.
func (r *sqliteSessionRepository) loadExerciseLogs(ctx context.Context, sessionID string) (_ []ExerciseLog, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT se.exercise_id, se.position, se.base_weight, se.target_sets, se.target_reps,
		       ss.weight, ss.reps, ss.completed
		FROM session_exercises se
		JOIN session_sets ss ON ss.session_id = se.session_id AND ss.position = se.position
		WHERE se.session_id = ?
		ORDER BY se.position, ss.set_index`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query exercise logs: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	// Rows are grouped by position so duplicate exercises at different slots
	// come back as separate logs.
	var (
		logs    []ExerciseLog
		current ExerciseLog
		started bool
	)
	for rows.Next() {
		var (
			log ExerciseLog
			set SetLog
		)
		if err = rows.Scan(&log.ExerciseID, &log.Order, &log.BaseWeight, &log.TargetSets, &log.TargetReps,
			&set.Weight, &set.RepsCompleted, &set.Completed); err != nil {
			return nil, fmt.Errorf("scan exercise set: %w", err)
		}

		if !started || log.Order != current.Order {
			if started {
				logs = append(logs, current)
			}
			current = log
			started = true
		}
		current.Sets = append(current.Sets, set)
	}
	if started {
		logs = append(logs, current)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return logs, nil
}

// saveExerciseLogs inserts the per-exercise logs and their sets.
func (r *sqliteSessionRepository) saveExerciseLogs(
	ctx context.Context,
	tx *sql.Tx,
	sessionID string,
	logs []ExerciseLog,
) error {
	for _, log := range logs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO session_exercises (session_id, exercise_id, position, base_weight, target_sets, target_reps)
			VALUES (?, ?, ?, ?, ?, ?)`,
			sessionID, log.ExerciseID, log.Order, log.BaseWeight, log.TargetSets, log.TargetReps); err != nil {
			return fmt.Errorf("insert exercise log: %w", err)
		}

		for i, set := range log.Sets {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO session_sets (session_id, position, set_index, weight, reps, completed)
				VALUES (?, ?, ?, ?, ?, ?)`,
				sessionID, log.Order, i, set.Weight, set.RepsCompleted, set.Completed); err != nil {
				return fmt.Errorf("insert set: %w", err)
			}
		}
	}

	return nil
}

// LastLogs resolves the most recent completed performance for each exercise
// id into a HistorySnapshot for the planner: last set's weight, the stored
// base weight, and whether every set met its target reps.
func (r *sqliteSessionRepository) LastLogs(ctx context.Context, exerciseIDs []string) (_ HistorySnapshot, err error) {
	snapshot := make(HistorySnapshot, len(exerciseIDs))
	if len(exerciseIDs) == 0 {
		return snapshot, nil
	}

	placeholders := strings.Repeat("?, ", len(exerciseIDs)-1) + "?"
	args := make([]any, 0, len(exerciseIDs))
	for _, id := range exerciseIDs {
		args = append(args, id)
	}

	//nolint:gosec // placeholders holds only '?' markers.
	query := fmt.Sprintf(`
		SELECT se.session_id, se.position, se.exercise_id, se.base_weight, se.target_reps,
		       ss.weight, ss.reps, ss.completed
		FROM session_exercises se
		JOIN workout_sessions ws ON ws.id = se.session_id
		JOIN session_sets ss ON ss.session_id = se.session_id AND ss.position = se.position
		WHERE ws.completed = TRUE AND se.exercise_id IN (%s)
		ORDER BY ws.date DESC, se.position, ss.set_index`, placeholders)

	rows, err := r.db.ReadOnly.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query last logs: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	// Sessions come newest first, so the first slot seen per exercise is the
	// one we want; later sessions and further same-session occurrences of the
	// exercise are skipped. The earliest position wins because it holds the
	// least fatigue-distorted performance.
	type logKey struct {
		sessionID string
		position  int
	}
	chosen := make(map[string]logKey)
	for rows.Next() {
		var (
			key        logKey
			exerciseID string
			baseWeight float64
			targetReps int
			set        SetLog
		)
		if err = rows.Scan(&key.sessionID, &key.position, &exerciseID, &baseWeight, &targetReps,
			&set.Weight, &set.RepsCompleted, &set.Completed); err != nil {
			return nil, fmt.Errorf("scan last log row: %w", err)
		}

		if existing, ok := chosen[exerciseID]; ok && existing != key {
			continue
		}
		chosen[exerciseID] = key

		last, ok := snapshot[exerciseID]
		if !ok {
			last = LastLog{BaseWeight: baseWeight, Succeeded: true}
		}
		last.Weight = set.Weight
		if !set.Completed || set.RepsCompleted < targetReps {
			last.Succeeded = false
		}
		snapshot[exerciseID] = last
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return snapshot, nil
}
