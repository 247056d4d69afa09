package workout_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/flexlog/flexlog/internal/catalog"
	"github.com/flexlog/flexlog/internal/sqlite"
	"github.com/flexlog/flexlog/internal/workout"
)

// newTestService creates a service backed by an in-memory database.
func newTestService(t *testing.T) (*workout.Service, *sqlite.Database) {
	t.Helper()

	ctx := t.Context()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:       slog.LevelDebug,
		AddSource:   false,
		ReplaceAttr: nil,
	}))

	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if closeErr := db.Close(); closeErr != nil {
			t.Errorf("Failed to close database: %v", closeErr)
		}
	})

	return workout.NewService(db, logger, catalog.Default(), "", 0), db
}

// createTestTemplate saves a small three-exercise template.
func createTestTemplate(ctx context.Context, t *testing.T, svc *workout.Service) workout.Template {
	t.Helper()

	template, err := svc.CreateTemplate(ctx, workout.Template{
		Name:        "Test Day",
		ExerciseIDs: []string{"bb-flat-bp", "cab-lat-pd", "leg-press"},
		DefaultSets: 3,
		DefaultReps: 12,
	})
	if err != nil {
		t.Fatalf("Failed to create template: %v", err)
	}

	return template
}

// completeSession toggles every set once and finishes the session, which
// records every set as done at its target rep count.
func completeSession(ctx context.Context, t *testing.T, svc *workout.Service, session workout.Session) {
	t.Helper()

	for _, log := range session.Exercises {
		for setIndex := range log.Sets {
			if err := svc.ToggleSet(ctx, session.ID, log.Order, setIndex); err != nil {
				t.Fatalf("Failed to toggle set: %v", err)
			}
		}
	}

	if err := svc.FinishSession(ctx, session.ID); err != nil {
		t.Fatalf("Failed to finish session: %v", err)
	}
}

func Test_StartSession_AppliesProgressiveOverload(t *testing.T) {
	ctx := t.Context()
	svc, _ := newTestService(t)
	template := createTestTemplate(ctx, t, svc)

	// First session has no history, so the bench starts at the barbell
	// starting weight.
	first, err := svc.StartSession(ctx, template.ID, time.Now().AddDate(0, 0, -7))
	if err != nil {
		t.Fatalf("Failed to start first session: %v", err)
	}
	if got := first.Exercises[0].BaseWeight; got != 20 {
		t.Fatalf("Expected starting base weight 20, got %v", got)
	}

	completeSession(ctx, t, svc, first)

	// Every set hit its target, so the next session adds one increment.
	second, err := svc.StartSession(ctx, template.ID, time.Now())
	if err != nil {
		t.Fatalf("Failed to start second session: %v", err)
	}
	if second.ID == first.ID {
		t.Fatal("Expected a new session after finishing the first")
	}
	if got := second.Exercises[0].BaseWeight; got != 22.5 {
		t.Errorf("Expected base weight 22.5 after a successful session, got %v", got)
	}
}

func Test_StartSession_ResumesActiveDraft(t *testing.T) {
	ctx := t.Context()
	svc, _ := newTestService(t)
	template := createTestTemplate(ctx, t, svc)

	session, err := svc.StartSession(ctx, template.ID, time.Now())
	if err != nil {
		t.Fatalf("Failed to start session: %v", err)
	}

	// Log a set so we can tell the draft survived.
	if err = svc.ToggleSet(ctx, session.ID, 0, 0); err != nil {
		t.Fatalf("Failed to toggle set: %v", err)
	}

	resumed, err := svc.StartSession(ctx, template.ID, time.Now())
	if err != nil {
		t.Fatalf("Failed to resume session: %v", err)
	}

	if resumed.ID != session.ID {
		t.Errorf("Expected to resume session %s, got a new session %s", session.ID, resumed.ID)
	}
	if !resumed.Exercises[0].Sets[0].Completed {
		t.Error("Expected the logged set to survive resumption")
	}
}

func Test_SessionMutations_Persist(t *testing.T) {
	ctx := t.Context()
	svc, _ := newTestService(t)
	template := createTestTemplate(ctx, t, svc)

	session, err := svc.StartSession(ctx, template.ID, time.Now())
	if err != nil {
		t.Fatalf("Failed to start session: %v", err)
	}

	t.Run("Add exercise", func(t *testing.T) {
		if err = svc.AddExercise(ctx, session.ID, "pec-deck"); err != nil {
			t.Fatalf("Failed to add exercise: %v", err)
		}

		var got workout.Session
		if got, err = svc.GetSession(ctx, session.ID); err != nil {
			t.Fatalf("Failed to get session: %v", err)
		}
		if len(got.Exercises) != 4 {
			t.Fatalf("Expected 4 exercises after add, got %d", len(got.Exercises))
		}
		added := got.Exercises[3]
		if added.ExerciseID != "pec-deck" || added.Order != 3 {
			t.Errorf("Expected pec-deck at order 3, got %s at %d", added.ExerciseID, added.Order)
		}
	})

	t.Run("Add unknown exercise fails", func(t *testing.T) {
		if err = svc.AddExercise(ctx, session.ID, "no-such-exercise"); err == nil {
			t.Error("Expected error when adding an unknown exercise")
		}
	})

	t.Run("Reorder", func(t *testing.T) {
		if err = svc.Reorder(ctx, session.ID, 0, 2); err != nil {
			t.Fatalf("Failed to reorder: %v", err)
		}

		var got workout.Session
		if got, err = svc.GetSession(ctx, session.ID); err != nil {
			t.Fatalf("Failed to get session: %v", err)
		}
		if got.Exercises[2].ExerciseID != "bb-flat-bp" {
			t.Errorf("Expected bb-flat-bp at order 2, got %s", got.Exercises[2].ExerciseID)
		}
	})

	t.Run("Delete exercise compacts orders", func(t *testing.T) {
		if err = svc.DeleteExercise(ctx, session.ID, 0); err != nil {
			t.Fatalf("Failed to delete exercise: %v", err)
		}

		var got workout.Session
		if got, err = svc.GetSession(ctx, session.ID); err != nil {
			t.Fatalf("Failed to get session: %v", err)
		}
		if len(got.Exercises) != 3 {
			t.Fatalf("Expected 3 exercises after delete, got %d", len(got.Exercises))
		}
		for i, log := range got.Exercises {
			if log.Order != i {
				t.Errorf("Expected contiguous orders, got %d at index %d", log.Order, i)
			}
		}
	})

	t.Run("Swap exercise", func(t *testing.T) {
		if err = svc.Swap(ctx, session.ID, 0, "sm-flat-bp"); err != nil {
			t.Fatalf("Failed to swap: %v", err)
		}

		var got workout.Session
		if got, err = svc.GetSession(ctx, session.ID); err != nil {
			t.Fatalf("Failed to get session: %v", err)
		}
		if got.Exercises[0].ExerciseID != "sm-flat-bp" {
			t.Errorf("Expected sm-flat-bp at order 0, got %s", got.Exercises[0].ExerciseID)
		}
	})
}

func Test_History_ListsFinishedSessions(t *testing.T) {
	ctx := t.Context()
	svc, _ := newTestService(t)
	template := createTestTemplate(ctx, t, svc)

	session, err := svc.StartSession(ctx, template.ID, time.Now())
	if err != nil {
		t.Fatalf("Failed to start session: %v", err)
	}

	// An unfinished session must not show up in history.
	history, err := svc.History(ctx, time.Now().AddDate(0, -1, 0))
	if err != nil {
		t.Fatalf("Failed to list history: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("Expected empty history before finishing, got %d sessions", len(history))
	}

	completeSession(ctx, t, svc, session)

	history, err = svc.History(ctx, time.Now().AddDate(0, -1, 0))
	if err != nil {
		t.Fatalf("Failed to list history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("Expected one finished session, got %d", len(history))
	}
	if !history[0].Completed {
		t.Error("Expected the listed session to be completed")
	}
}

func Test_Schedule_RoundTrip(t *testing.T) {
	ctx := t.Context()
	svc, _ := newTestService(t)
	template := createTestTemplate(ctx, t, svc)

	day := time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC)

	if err := svc.ScheduleTemplate(ctx, day, template.ID); err != nil {
		t.Fatalf("Failed to schedule template: %v", err)
	}

	scheduled, err := svc.ScheduledTemplate(ctx, day)
	if err != nil {
		t.Fatalf("Failed to resolve scheduled template: %v", err)
	}
	if scheduled.ID != template.ID {
		t.Errorf("Expected template %s, got %s", template.ID, scheduled.ID)
	}

	week, err := svc.WeeklySchedule(ctx, day)
	if err != nil {
		t.Fatalf("Failed to list weekly schedule: %v", err)
	}
	if len(week) != 1 {
		t.Fatalf("Expected one scheduled day, got %d", len(week))
	}

	if err = svc.UnscheduleDate(ctx, day); err != nil {
		t.Fatalf("Failed to unschedule: %v", err)
	}

	if _, err = svc.ScheduledTemplate(ctx, day); !errors.Is(err, workout.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after unscheduling, got %v", err)
	}
}

func Test_SuggestAlternatives_FallsBackWithoutAPIKey(t *testing.T) {
	ctx := t.Context()
	svc, _ := newTestService(t)

	alternatives, err := svc.SuggestAlternatives(ctx, "bb-flat-bp")
	if err != nil {
		t.Fatalf("Failed to suggest alternatives: %v", err)
	}
	if len(alternatives) == 0 {
		t.Fatal("Expected default alternatives for the bench press")
	}
	for _, alternative := range alternatives {
		if alternative.ID == "bb-flat-bp" {
			t.Error("Expected alternatives to exclude the exercise itself")
		}
	}
}

func Test_FixtureTemplates_Seeded(t *testing.T) {
	ctx := t.Context()
	svc, _ := newTestService(t)

	templates, err := svc.Templates(ctx)
	if err != nil {
		t.Fatalf("Failed to list templates: %v", err)
	}
	if len(templates) < 5 {
		t.Fatalf("Expected the seeded starter templates, got %d", len(templates))
	}

	push, err := svc.GetTemplate(ctx, "tpl-push")
	if err != nil {
		t.Fatalf("Failed to get push template: %v", err)
	}
	if len(push.ExerciseIDs) == 0 {
		t.Error("Expected the push template to carry exercises")
	}
}

func Test_StartSession_PastDateIsHistorical(t *testing.T) {
	ctx := t.Context()
	svc, _ := newTestService(t)
	template := createTestTemplate(ctx, t, svc)

	lastWeek := time.Now().AddDate(0, 0, -7)
	session, err := svc.StartSession(ctx, template.ID, lastWeek)
	if err != nil {
		t.Fatalf("Failed to start session: %v", err)
	}
	if !session.IsHistorical {
		t.Error("Expected a session started for a past date to be historical")
	}

	completeSession(ctx, t, svc, session)

	finished, err := svc.GetSession(ctx, session.ID)
	if err != nil {
		t.Fatalf("Failed to get session: %v", err)
	}
	if !finished.Completed {
		t.Error("Expected the session to be completed")
	}
	// A retroactive log keeps its given duration instead of measuring a
	// bogus week-long one.
	if finished.DurationSeconds != 0 {
		t.Errorf("Expected duration 0 for a historical session, got %d", finished.DurationSeconds)
	}
}

func Test_StartSession_SupportsDuplicateExercises(t *testing.T) {
	ctx := t.Context()
	svc, _ := newTestService(t)

	template, err := svc.CreateTemplate(ctx, workout.Template{
		Name:        "Double Bench",
		ExerciseIDs: []string{"bb-flat-bp", "pec-deck", "bb-flat-bp"},
		DefaultSets: 3,
		DefaultReps: 12,
	})
	if err != nil {
		t.Fatalf("Failed to create template with a repeated exercise: %v", err)
	}

	session, err := svc.StartSession(ctx, template.ID, time.Now())
	if err != nil {
		t.Fatalf("Failed to start session from a template with a repeated exercise: %v", err)
	}

	// Storage keys slots by position, so the round-trip keeps both bench
	// slots distinct.
	got, err := svc.GetSession(ctx, session.ID)
	if err != nil {
		t.Fatalf("Failed to get session: %v", err)
	}
	wantSequence := []string{"bb-flat-bp", "pec-deck", "bb-flat-bp"}
	if len(got.Exercises) != len(wantSequence) {
		t.Fatalf("Expected %d exercises, got %d", len(wantSequence), len(got.Exercises))
	}
	for i, want := range wantSequence {
		if got.Exercises[i].ExerciseID != want || got.Exercises[i].Order != i {
			t.Errorf("slot %d = %s (order %d), want %s (order %d)",
				i, got.Exercises[i].ExerciseID, got.Exercises[i].Order, want, i)
		}
	}

	// Adding an exercise that is already in the session appends another slot.
	if err = svc.AddExercise(ctx, session.ID, "pec-deck"); err != nil {
		t.Fatalf("Failed to add an exercise already in the session: %v", err)
	}
	if got, err = svc.GetSession(ctx, session.ID); err != nil {
		t.Fatalf("Failed to get session: %v", err)
	}
	if len(got.Exercises) != 4 || got.Exercises[3].ExerciseID != "pec-deck" {
		t.Errorf("Expected a fourth pec-deck slot, got %+v", got.Exercises)
	}
}

func Test_ToggleSet_PreservesBaseWeight(t *testing.T) {
	ctx := t.Context()
	svc, _ := newTestService(t)

	template, err := svc.CreateTemplate(ctx, workout.Template{
		Name:        "Chest Day",
		ExerciseIDs: []string{"bb-flat-bp", "pec-deck"},
		DefaultSets: 3,
		DefaultReps: 12,
	})
	if err != nil {
		t.Fatalf("Failed to create template: %v", err)
	}

	first, err := svc.StartSession(ctx, template.ID, time.Now())
	if err != nil {
		t.Fatalf("Failed to start session: %v", err)
	}
	// The second chest slot plans its sets fatigue-reduced to 17.5 while its
	// fresh-capacity base weight stays 20.
	if weight := first.Exercises[1].Sets[0].Weight; weight != 17.5 {
		t.Fatalf("planned set weight = %v, want 17.5", weight)
	}

	completeSession(ctx, t, svc, first)

	stored, err := svc.GetSession(ctx, first.ID)
	if err != nil {
		t.Fatalf("Failed to get session: %v", err)
	}
	if base := stored.Exercises[1].BaseWeight; base != 20 {
		t.Errorf("stored base weight = %v, want 20: completing sets must not decay fresh capacity", base)
	}

	// The next session overloads from the preserved base, not from the
	// fatigue-reduced set weight.
	second, err := svc.StartSession(ctx, template.ID, time.Now())
	if err != nil {
		t.Fatalf("Failed to start second session: %v", err)
	}
	if base := second.Exercises[1].BaseWeight; base != 22.5 {
		t.Errorf("next session base weight = %v, want 22.5", base)
	}
}

func TestStartOfWeek(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		date time.Time
		want time.Time
	}{
		{
			name: "monday maps to itself",
			date: time.Date(2026, time.March, 2, 14, 30, 0, 0, time.UTC),
			want: time.Date(2026, time.March, 2, 14, 30, 0, 0, time.UTC),
		},
		{
			name: "midweek maps back to monday",
			date: time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC),
			want: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday wraps to the previous monday",
			date: time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC),
			want: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := workout.StartOfWeek(tt.date); !got.Equal(tt.want) {
				t.Errorf("StartOfWeek(%v) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}
