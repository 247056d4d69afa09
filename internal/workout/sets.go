package workout

import (
	"math"
	"slices"
)

// ToggleSet advances one set through its completion cycle:
//
//	pending -> completed at target reps -> completed with one rep less ->
//	... -> completed with 1 rep -> pending
//
// A full cycle takes targetReps+1 toggles. The downward steps model "failed
// the last rep on second look". Out-of-range indexes are a no-op.
func ToggleSet(log ExerciseLog, setIndex int) ExerciseLog {
	if setIndex < 0 || setIndex >= len(log.Sets) {
		return log
	}

	sets := slices.Clone(log.Sets)
	set := sets[setIndex]
	switch {
	case !set.Completed:
		set.Completed = true
		set.RepsCompleted = log.TargetReps
	case set.RepsCompleted > 1:
		set.RepsCompleted--
	default:
		set.Completed = false
		set.RepsCompleted = 0
	}
	sets[setIndex] = set

	log.Sets = sets
	return log
}

// AdjustWeight nudges the weight of the first not-completed set and every set
// after it by delta, clamped at zero. When every set is completed the last
// set is the target instead. Sets before the active one keep their recorded
// weight.
func AdjustWeight(log ExerciseLog, delta float64) ExerciseLog {
	if len(log.Sets) == 0 {
		return log
	}

	active := slices.IndexFunc(log.Sets, func(set SetLog) bool {
		return !set.Completed
	})
	if active == -1 {
		active = len(log.Sets) - 1
	}

	sets := slices.Clone(log.Sets)
	for i := active; i < len(sets); i++ {
		sets[i].Weight = math.Max(0, sets[i].Weight+delta)
	}

	log.Sets = sets
	return log
}

// OverloadReady reports whether every set was completed at or above the
// target rep count, i.e. the next session should bump the base weight.
func OverloadReady(log ExerciseLog) bool {
	if len(log.Sets) == 0 {
		return false
	}
	for _, set := range log.Sets {
		if !set.Completed || set.RepsCompleted < log.TargetReps {
			return false
		}
	}
	return true
}
