package catalog_test

import (
	"testing"

	"github.com/flexlog/flexlog/internal/catalog"
	"github.com/flexlog/flexlog/internal/workout"
)

func TestDefault(t *testing.T) {
	t.Parallel()
	c := catalog.Default()

	bench, ok := c.ExerciseOf("bb-flat-bp")
	if !ok {
		t.Fatal("expected bb-flat-bp in catalog")
	}
	if bench.Name != "Barbell Bench Press" || bench.MuscleGroup != workout.MuscleGroupChest {
		t.Errorf("unexpected exercise: %+v", bench)
	}

	if _, ok = c.ExerciseOf("no-such-exercise"); ok {
		t.Error("expected lookup miss for unknown id")
	}
}

func TestDefault_alternativesResolve(t *testing.T) {
	t.Parallel()
	c := catalog.Default()

	// Every alternative reference must point back into the catalog.
	for _, exercise := range c.All() {
		for _, alternativeID := range exercise.DefaultAlternatives {
			if _, ok := c.ExerciseOf(alternativeID); !ok {
				t.Errorf("%s lists unknown alternative %s", exercise.ID, alternativeID)
			}
			if alternativeID == exercise.ID {
				t.Errorf("%s lists itself as an alternative", exercise.ID)
			}
		}
	}
}

func TestDefault_exercisesAreComplete(t *testing.T) {
	t.Parallel()
	c := catalog.Default()

	all := c.All()
	if len(all) == 0 {
		t.Fatal("empty catalog")
	}
	for _, exercise := range all {
		if exercise.Name == "" || exercise.MuscleGroup == "" || exercise.Equipment == "" {
			t.Errorf("incomplete exercise: %+v", exercise)
		}
		if exercise.DescriptionMarkdown == "" {
			t.Errorf("%s has no description", exercise.ID)
		}
	}
}

func TestByMuscleGroup(t *testing.T) {
	t.Parallel()
	c := catalog.Default()

	legs := c.ByMuscleGroup(workout.MuscleGroupLegs)
	if len(legs) == 0 {
		t.Fatal("no leg exercises")
	}
	for _, exercise := range legs {
		if exercise.MuscleGroup != workout.MuscleGroupLegs {
			t.Errorf("%s grouped under Legs but trains %s", exercise.ID, exercise.MuscleGroup)
		}
	}
	for i := 1; i < len(legs); i++ {
		if legs[i-1].Name > legs[i].Name {
			t.Errorf("results not sorted: %q before %q", legs[i-1].Name, legs[i].Name)
		}
	}
}
