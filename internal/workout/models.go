package workout

import (
	"time"
)

// MuscleGroup identifies the primary muscle a catalog exercise trains.
type MuscleGroup string

// Muscle group constants.
const (
	MuscleGroupChest     MuscleGroup = "Chest"
	MuscleGroupShoulders MuscleGroup = "Shoulders"
	MuscleGroupTriceps   MuscleGroup = "Triceps"
	MuscleGroupLats      MuscleGroup = "Lats"
	MuscleGroupUpperBack MuscleGroup = "Upper Back"
	MuscleGroupLowerBack MuscleGroup = "Lower Back"
	MuscleGroupBiceps    MuscleGroup = "Biceps"
	MuscleGroupLegs      MuscleGroup = "Legs"
	MuscleGroupGlutes    MuscleGroup = "Glutes"
	MuscleGroupCalves    MuscleGroup = "Calves"
)

// Equipment identifies what an exercise is performed with. It selects the
// weight increment and minimum weight used by the planner.
type Equipment string

// Equipment constants.
const (
	EquipmentBarbell    Equipment = "Barbell"
	EquipmentDumbbell   Equipment = "Dumbbell"
	EquipmentCable      Equipment = "Cable Machine"
	EquipmentMachine    Equipment = "Machine"
	EquipmentBodyweight Equipment = "Bodyweight"
	EquipmentSmith      Equipment = "Smith Machine"
	EquipmentKettlebell Equipment = "Kettlebell"
)

// Exercise represents a single catalog exercise, e.g. Barbell Bench Press.
// Catalog data is read-only to the planner.
type Exercise struct {
	ID                  string      `json:"id"`
	Name                string      `json:"name"`
	MuscleGroup         MuscleGroup `json:"muscleGroup"`
	Equipment           Equipment   `json:"equipment"`
	IsCompound          bool        `json:"isCompound"`
	DefaultAlternatives []string    `json:"defaultAlternatives"`
	DescriptionMarkdown string      `json:"descriptionMarkdown,omitempty"`
}

// SetLog is one planned or performed set. Once Completed is true the weight
// and reps are historical fact and recomputation must leave them alone.
type SetLog struct {
	RepsCompleted int     `json:"repsCompleted"`
	Weight        float64 `json:"weight"`
	Completed     bool    `json:"completed"`
}

// ExerciseLog is one exercise's slot within a session. Order is the
// zero-based position and the only identity the mutation operations use.
type ExerciseLog struct {
	ExerciseID string   `json:"exerciseId"`
	Order      int      `json:"order"`
	TargetSets int      `json:"targetSets"`
	TargetReps int      `json:"targetReps"`
	BaseWeight float64  `json:"baseWeight"`
	Sets       []SetLog `json:"sets"`
}

// Session represents a workout session, either in progress or finished.
type Session struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Date            time.Time     `json:"date"`
	Completed       bool          `json:"completed"`
	DurationSeconds int           `json:"duration"`
	IsHistorical    bool          `json:"isHistorical,omitempty"`
	Exercises       []ExerciseLog `json:"exercises"`
}

// Template is a reusable routine that seeds new sessions.
type Template struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	ExerciseIDs []string `json:"exerciseIds"`
	DefaultSets int      `json:"defaultSets"`
	DefaultReps int      `json:"defaultReps"`
}

// Catalog looks up exercise metadata.
type Catalog interface {
	ExerciseOf(id string) (Exercise, bool)
	ByMuscleGroup(group MuscleGroup) []Exercise
}

// LastLog is the most recent completed performance of an exercise.
type LastLog struct {
	// Weight is the last recorded working weight (final set).
	Weight float64
	// BaseWeight is the fresh-capacity estimate stored with that log.
	BaseWeight float64
	// Succeeded is true when every set met its target rep count.
	Succeeded bool
}

// History answers what the user last did for an exercise.
type History interface {
	LastLogFor(exerciseID string) (LastLog, bool)
}

// HistorySnapshot is an in-memory History, resolved ahead of an engine call
// so the planner itself stays free of I/O.
type HistorySnapshot map[string]LastLog

// LastLogFor implements History.
func (s HistorySnapshot) LastLogFor(exerciseID string) (LastLog, bool) {
	last, ok := s[exerciseID]
	return last, ok
}

// EquipmentSettings are the per-equipment tuning constants.
type EquipmentSettings struct {
	// IncrementKg is the smallest weight step for the equipment.
	IncrementKg float64
	// MinWeightKg is the lightest loadable weight.
	MinWeightKg float64
	// StartWeightKg is the starting weight for an exercise without history.
	StartWeightKg float64
}

// Tuning maps equipment to its settings. Unknown equipment falls back to
// DefaultEquipmentSettings.
type Tuning map[Equipment]EquipmentSettings

// DefaultEquipmentSettings applies to plate-loaded and stack machines.
//
//nolint:gochecknoglobals // shared tuning default.
var DefaultEquipmentSettings = EquipmentSettings{
	IncrementKg:   2.5,
	MinWeightKg:   0,
	StartWeightKg: 20,
}

// DefaultTuning returns the built-in equipment table: hand-held free weights
// get small increments and a realistic minimum, everything else the plate
// increment and a 20 kg starting weight.
func DefaultTuning() Tuning {
	return Tuning{
		EquipmentDumbbell: {
			IncrementKg:   2,
			MinWeightKg:   4,
			StartWeightKg: 4,
		},
		EquipmentKettlebell: {
			IncrementKg:   4,
			MinWeightKg:   8,
			StartWeightKg: 8,
		},
		EquipmentBodyweight: {
			IncrementKg:   2.5,
			MinWeightKg:   0,
			StartWeightKg: 0,
		},
	}
}

// settings resolves the tuning entry for equipment.
func (t Tuning) settings(equipment Equipment) EquipmentSettings {
	if s, ok := t[equipment]; ok {
		return s
	}
	return DefaultEquipmentSettings
}
