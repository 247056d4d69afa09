package workout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/flexlog/flexlog/internal/sqlite"
	"github.com/google/uuid"
)

// Service handles the business logic for workout management.
type Service struct {
	sessions     *sqliteSessionRepository
	templates    *sqliteTemplateRepository
	schedule     *sqliteScheduleRepository
	planner      *Planner
	catalog      Catalog
	logger       *slog.Logger
	openaiAPIKey string
}

// NewService creates a new workout service.
func NewService(
	db *sqlite.Database,
	logger *slog.Logger,
	catalog Catalog,
	openaiAPIKey string,
	fatigueFactor float64,
) *Service {
	return &Service{
		sessions:     newSQLiteSessionRepository(db, logger),
		templates:    newSQLiteTemplateRepository(db, logger),
		schedule:     newSQLiteScheduleRepository(db, logger),
		planner:      NewPlanner(catalog, DefaultTuning(), fatigueFactor),
		catalog:      catalog,
		logger:       logger,
		openaiAPIKey: openaiAPIKey,
	}
}

// StartSession begins a workout from a template. If a session is already in
// progress it is returned as-is so a reload resumes the draft instead of
// discarding logged sets.
func (s *Service) StartSession(ctx context.Context, templateID string, date time.Time) (Session, error) {
	active, err := s.sessions.GetActive(ctx)
	if err == nil {
		return active, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Session{}, fmt.Errorf("get active session: %w", err)
	}

	template, err := s.templates.Get(ctx, templateID)
	if err != nil {
		return Session{}, fmt.Errorf("get template %s: %w", templateID, err)
	}

	history, err := s.sessions.LastLogs(ctx, template.ExerciseIDs)
	if err != nil {
		return Session{}, fmt.Errorf("resolve last logs: %w", err)
	}

	session := s.planner.StartSession(template, history, date)
	session.ID = uuid.NewString()

	// A session started for an earlier day is a retroactive log: its duration
	// cannot be measured, so it keeps whatever FinishSession is given.
	if date.Format(dateFormat) < time.Now().Format(dateFormat) {
		session.IsHistorical = true
	}

	if err = s.sessions.Create(ctx, session); err != nil {
		return Session{}, fmt.Errorf("create session: %w", err)
	}

	return session, nil
}

// ActiveSession retrieves the in-progress session, if any.
func (s *Service) ActiveSession(ctx context.Context) (Session, error) {
	session, err := s.sessions.GetActive(ctx)
	if err != nil {
		return Session{}, fmt.Errorf("get active session: %w", err)
	}
	return session, nil
}

// GetSession retrieves a session by id.
func (s *Service) GetSession(ctx context.Context, id string) (Session, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return Session{}, fmt.Errorf("get session %s: %w", id, err)
	}
	return session, nil
}

// History retrieves completed sessions since a given date, newest first.
func (s *Service) History(ctx context.Context, since time.Time) ([]Session, error) {
	sessions, err := s.sessions.List(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// DeleteSession removes a session and its logs.
func (s *Service) DeleteSession(ctx context.Context, id string) error {
	if err := s.sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

// ToggleSet advances the completion cycle of a set and persists the result.
func (s *Service) ToggleSet(ctx context.Context, sessionID string, order, setIndex int) error {
	return s.updateSession(ctx, sessionID, func(sess *Session) {
		i := indexByOrder(sess.Exercises, order)
		if i < 0 {
			return
		}
		*sess = s.planner.UpdateLog(*sess, ToggleSet(sess.Exercises[i], setIndex))
	})
}

// AdjustWeight nudges the pending sets of an exercise by delta kilograms.
func (s *Service) AdjustWeight(ctx context.Context, sessionID string, order int, delta float64) error {
	return s.updateSession(ctx, sessionID, func(sess *Session) {
		i := indexByOrder(sess.Exercises, order)
		if i < 0 {
			return
		}
		*sess = s.planner.UpdateLog(*sess, AdjustWeight(sess.Exercises[i], delta))
	})
}

// Reorder moves an exercise to a new position and recalculates weights for
// the positions the move disturbed.
func (s *Service) Reorder(ctx context.Context, sessionID string, fromOrder, toOrder int) error {
	return s.updateSession(ctx, sessionID, func(sess *Session) {
		*sess = s.planner.Reorder(*sess, fromOrder, toOrder)
	})
}

// Swap replaces the exercise at a position with another one, seeding its
// weight from the replacement's own history.
func (s *Service) Swap(ctx context.Context, sessionID string, atOrder int, newExerciseID string) error {
	if _, ok := s.catalog.ExerciseOf(newExerciseID); !ok {
		return fmt.Errorf("unknown exercise %s", newExerciseID)
	}

	history, err := s.sessions.LastLogs(ctx, []string{newExerciseID})
	if err != nil {
		return fmt.Errorf("resolve last logs: %w", err)
	}

	return s.updateSession(ctx, sessionID, func(sess *Session) {
		*sess = s.planner.SwapExercise(*sess, atOrder, newExerciseID, history)
	})
}

// AddExercise appends an exercise to the end of the session.
func (s *Service) AddExercise(ctx context.Context, sessionID, exerciseID string) error {
	if _, ok := s.catalog.ExerciseOf(exerciseID); !ok {
		return fmt.Errorf("unknown exercise %s", exerciseID)
	}

	history, err := s.sessions.LastLogs(ctx, []string{exerciseID})
	if err != nil {
		return fmt.Errorf("resolve last logs: %w", err)
	}

	return s.updateSession(ctx, sessionID, func(sess *Session) {
		*sess = s.planner.AddExercise(*sess, exerciseID, history)
	})
}

// DeleteExercise removes the exercise at a position and closes the gap.
func (s *Service) DeleteExercise(ctx context.Context, sessionID string, atOrder int) error {
	return s.updateSession(ctx, sessionID, func(sess *Session) {
		*sess = s.planner.DeleteExercise(*sess, atOrder)
	})
}

// FinishSession marks a session as completed and records its duration.
func (s *Service) FinishSession(ctx context.Context, sessionID string) error {
	return s.updateSession(ctx, sessionID, func(sess *Session) {
		*sess = s.planner.FinishSession(*sess, time.Now())
	})
}

// updateSession loads a session, applies fn, and persists the result.
func (s *Service) updateSession(ctx context.Context, sessionID string, fn func(sess *Session)) error {
	if err := s.sessions.Update(ctx, sessionID, func(sess *Session) (bool, error) {
		fn(sess)
		return true, nil
	}); err != nil {
		return fmt.Errorf("update session %s: %w", sessionID, err)
	}
	return nil
}

// Templates retrieves all session templates.
func (s *Service) Templates(ctx context.Context) ([]Template, error) {
	templates, err := s.templates.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return templates, nil
}

// GetTemplate retrieves a template by id.
func (s *Service) GetTemplate(ctx context.Context, id string) (Template, error) {
	template, err := s.templates.Get(ctx, id)
	if err != nil {
		return Template{}, fmt.Errorf("get template %s: %w", id, err)
	}
	return template, nil
}

// CreateTemplate saves a new template after checking its exercises exist.
func (s *Service) CreateTemplate(ctx context.Context, template Template) (Template, error) {
	if template.Name == "" {
		return Template{}, errors.New("template name is required")
	}
	for _, exerciseID := range template.ExerciseIDs {
		if _, ok := s.catalog.ExerciseOf(exerciseID); !ok {
			return Template{}, fmt.Errorf("unknown exercise %s", exerciseID)
		}
	}
	if template.ID == "" {
		template.ID = uuid.NewString()
	}
	if template.DefaultSets < 1 {
		template.DefaultSets = defaultTargetSets
	}
	if template.DefaultReps < 1 {
		template.DefaultReps = defaultTargetReps
	}

	if err := s.templates.Create(ctx, template); err != nil {
		return Template{}, fmt.Errorf("create template: %w", err)
	}

	return template, nil
}

// DeleteTemplate removes a template.
func (s *Service) DeleteTemplate(ctx context.Context, id string) error {
	if err := s.templates.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete template %s: %w", id, err)
	}
	return nil
}

// ScheduledTemplate resolves the template assigned to a date. ErrNotFound
// when the date has no assignment.
func (s *Service) ScheduledTemplate(ctx context.Context, date time.Time) (Template, error) {
	scheduled, err := s.schedule.Get(ctx, date)
	if err != nil {
		return Template{}, fmt.Errorf("get schedule %s: %w", formatDate(date), err)
	}

	template, err := s.templates.Get(ctx, scheduled.TemplateID)
	if err != nil {
		return Template{}, fmt.Errorf("get template %s: %w", scheduled.TemplateID, err)
	}

	return template, nil
}

// StartOfWeek returns the Monday of the week containing date.
func StartOfWeek(date time.Time) time.Time {
	offset := int(time.Monday - date.Weekday())
	if offset > 0 {
		offset = -6 //nolint:mnd // Sunday wraps back to the previous Monday.
	}
	return date.AddDate(0, 0, offset)
}

// WeeklySchedule retrieves the assignments for the week containing date,
// Monday through Sunday.
func (s *Service) WeeklySchedule(ctx context.Context, date time.Time) ([]ScheduledSession, error) {
	monday := StartOfWeek(date)

	scheduled, err := s.schedule.List(ctx, monday, monday.AddDate(0, 0, 6))
	if err != nil {
		return nil, fmt.Errorf("list schedule: %w", err)
	}
	return scheduled, nil
}

// ScheduleTemplate assigns a template to a date.
func (s *Service) ScheduleTemplate(ctx context.Context, date time.Time, templateID string) error {
	if _, err := s.templates.Get(ctx, templateID); err != nil {
		return fmt.Errorf("get template %s: %w", templateID, err)
	}
	if err := s.schedule.Set(ctx, ScheduledSession{Date: date, TemplateID: templateID}); err != nil {
		return fmt.Errorf("set schedule %s: %w", formatDate(date), err)
	}
	return nil
}

// UnscheduleDate clears the assignment for a date.
func (s *Service) UnscheduleDate(ctx context.Context, date time.Time) error {
	if err := s.schedule.Delete(ctx, date); err != nil {
		return fmt.Errorf("delete schedule %s: %w", formatDate(date), err)
	}
	return nil
}

// LastLogs resolves recent performance for the given exercises, used by the
// progress views.
func (s *Service) LastLogs(ctx context.Context, exerciseIDs []string) (HistorySnapshot, error) {
	snapshot, err := s.sessions.LastLogs(ctx, exerciseIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve last logs: %w", err)
	}
	return snapshot, nil
}
