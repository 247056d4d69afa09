// Package workout implements the session weight-planning engine: progressive
// overload, within-session muscle fatigue, and the mutation operations that
// keep an in-progress session's weights consistent while the user edits it.
package workout

import (
	"math"
	"slices"
	"time"
)

// Progression model constants.
const (
	// FatigueFactor is the per-occurrence weight reduction when a muscle
	// group is worked more than once in one session.
	FatigueFactor = 0.05
	// fatigueFloor caps the reduction at half of fresh capacity.
	fatigueFloor = 0.5

	// Defaults for exercises added to a session ad hoc.
	defaultTargetSets = 3
	defaultTargetReps = 12
)

// Planner computes session weights. All of its operations are pure: they take
// a session snapshot and return a new one, never touching shared state, so
// the caller owns storage and serializes edits.
type Planner struct {
	catalog       Catalog
	tuning        Tuning
	fatigueFactor float64
}

// NewPlanner constructs a planner. A fatigueFactor of zero or less falls back
// to FatigueFactor.
func NewPlanner(catalog Catalog, tuning Tuning, fatigueFactor float64) *Planner {
	if fatigueFactor <= 0 {
		fatigueFactor = FatigueFactor
	}
	return &Planner{
		catalog:       catalog,
		tuning:        tuning,
		fatigueFactor: fatigueFactor,
	}
}

// ResolveBaseWeight computes the fresh (un-fatigued) starting weight for an
// exercise entering a session.
//
// Without history it is the equipment's starting weight. With history it
// starts from the stored base weight, falling back to the last recorded
// working weight, and adds one increment when the previous session met every
// rep target (progressive overload). The result never goes below the
// equipment's minimum weight.
func (p *Planner) ResolveBaseWeight(exerciseID string, equipment Equipment, history History) float64 {
	settings := p.tuning.settings(equipment)

	last, ok := history.LastLogFor(exerciseID)
	if !ok {
		return math.Max(settings.StartWeightKg, settings.MinWeightKg)
	}

	weight := last.BaseWeight
	if weight == 0 {
		weight = last.Weight
	}
	if last.Succeeded {
		weight += settings.IncrementKg
	}

	return math.Max(weight, settings.MinWeightKg)
}

// Recalculate runs the fatigue model over a session's exercise logs.
//
// The logs are walked in order; each repeated exposure of a muscle group
// lowers the planned weight by the fatigue factor relative to fresh capacity,
// floored at half of it. Weights round down to the equipment increment so a
// fatigued muscle is never overloaded. Completed sets keep their recorded
// weight, and logs whose exercise is missing from the catalog pass through
// unchanged. The returned logs are sorted by order.
func (p *Planner) Recalculate(logs []ExerciseLog) []ExerciseLog {
	recalculated := make([]ExerciseLog, len(logs))
	copy(recalculated, logs)
	slices.SortStableFunc(recalculated, func(a, b ExerciseLog) int {
		return a.Order - b.Order
	})

	occurrences := make(map[MuscleGroup]int)
	for i := range recalculated {
		exercise, ok := p.catalog.ExerciseOf(recalculated[i].ExerciseID)
		if !ok {
			continue
		}

		priorCount := occurrences[exercise.MuscleGroup]
		occurrences[exercise.MuscleGroup]++

		multiplier := 1 - float64(priorCount)*p.fatigueFactor
		if multiplier < fatigueFloor {
			multiplier = fatigueFloor
		}

		settings := p.tuning.settings(exercise.Equipment)
		adjusted := recalculated[i].BaseWeight * multiplier
		if settings.IncrementKg > 0 {
			adjusted = math.Floor(adjusted/settings.IncrementKg) * settings.IncrementKg
		}

		sets := make([]SetLog, len(recalculated[i].Sets))
		for j, set := range recalculated[i].Sets {
			if !set.Completed {
				set.Weight = adjusted
			}
			sets[j] = set
		}
		recalculated[i].Sets = sets
	}

	return recalculated
}

// StartSession seeds a session from a template: one log per template
// exercise in template order, base weights resolved from history, sets
// planned as pending, and the fatigue model applied to the whole list.
//
// The session id is left empty; assigning identity is the caller's job.
func (p *Planner) StartSession(template Template, history History, date time.Time) Session {
	logs := make([]ExerciseLog, 0, len(template.ExerciseIDs))
	for position, exerciseID := range template.ExerciseIDs {
		base := p.ResolveBaseWeight(exerciseID, p.equipmentOf(exerciseID), history)
		logs = append(logs, ExerciseLog{
			ExerciseID: exerciseID,
			Order:      position,
			TargetSets: template.DefaultSets,
			TargetReps: template.DefaultReps,
			BaseWeight: base,
			Sets:       pendingSets(template.DefaultSets, base),
		})
	}

	return Session{
		Name:      template.Name,
		Date:      date,
		Exercises: p.Recalculate(logs),
	}
}

// Reorder swaps the order values of two slots and reapplies the fatigue
// model. Unknown order values make it a no-op.
func (p *Planner) Reorder(session Session, fromOrder, toOrder int) Session {
	fromIdx := indexByOrder(session.Exercises, fromOrder)
	toIdx := indexByOrder(session.Exercises, toOrder)
	if fromIdx == -1 || toIdx == -1 || fromIdx == toIdx {
		return session
	}

	logs := slices.Clone(session.Exercises)
	logs[fromIdx].Order, logs[toIdx].Order = logs[toIdx].Order, logs[fromIdx].Order

	session.Exercises = p.Recalculate(logs)
	return session
}

// SwapExercise replaces the exercise at a slot with a different catalog
// exercise: the slot gets a base weight from the new exercise's history and
// its sets reset to pending, then the whole session is recalculated because
// the muscle group may have changed.
func (p *Planner) SwapExercise(session Session, atOrder int, newExerciseID string, history History) Session {
	idx := indexByOrder(session.Exercises, atOrder)
	if idx == -1 {
		return session
	}

	logs := slices.Clone(session.Exercises)
	base := p.ResolveBaseWeight(newExerciseID, p.equipmentOf(newExerciseID), history)

	swapped := logs[idx]
	swapped.ExerciseID = newExerciseID
	swapped.BaseWeight = base
	swapped.Sets = pendingSets(len(swapped.Sets), base)
	logs[idx] = swapped

	session.Exercises = p.Recalculate(logs)
	return session
}

// AddExercise appends a new slot with the default scheme at the end of the
// session. The same exercise may occupy several slots; slot identity is the
// order value, never the exercise id.
func (p *Planner) AddExercise(session Session, exerciseID string, history History) Session {
	maxOrder := -1
	for _, log := range session.Exercises {
		if log.Order > maxOrder {
			maxOrder = log.Order
		}
	}

	base := p.ResolveBaseWeight(exerciseID, p.equipmentOf(exerciseID), history)
	logs := append(slices.Clone(session.Exercises), ExerciseLog{
		ExerciseID: exerciseID,
		Order:      maxOrder + 1,
		TargetSets: defaultTargetSets,
		TargetReps: defaultTargetReps,
		BaseWeight: base,
		Sets:       pendingSets(defaultTargetSets, base),
	})

	session.Exercises = p.Recalculate(logs)
	return session
}

// DeleteExercise removes a slot and compacts the remaining order values to
// 0..n-1, preserving relative sequence.
func (p *Planner) DeleteExercise(session Session, atOrder int) Session {
	if indexByOrder(session.Exercises, atOrder) == -1 {
		return session
	}

	logs := make([]ExerciseLog, 0, len(session.Exercises)-1)
	for _, log := range session.Exercises {
		if log.Order != atOrder {
			logs = append(logs, log)
		}
	}
	slices.SortStableFunc(logs, func(a, b ExerciseLog) int {
		return a.Order - b.Order
	})
	for i := range logs {
		logs[i].Order = i
	}

	session.Exercises = p.Recalculate(logs)
	return session
}

// UpdateLog replaces a single slot with an edited log. When the edit changed
// a set weight, the base weight becomes the last set's current weight: the
// user's corrected working weight is the best fresh-capacity estimate going
// forward. Edits that only touch reps or completion leave the base weight
// alone, since a fatigue-reduced set weight says nothing about fresh capacity.
//
// Other slots are deliberately left alone; the fatigue model is NOT re-run so
// a manual correction never surprise-edits weights the user has not touched.
// Callers that do want session-wide consistency can follow up with
// Recalculate.
func (p *Planner) UpdateLog(session Session, log ExerciseLog) Session {
	idx := indexByOrder(session.Exercises, log.Order)
	if idx == -1 {
		return session
	}

	log.Sets = clampSets(log.Sets)
	if len(log.Sets) > 0 && setWeightsChanged(session.Exercises[idx].Sets, log.Sets) {
		log.BaseWeight = log.Sets[len(log.Sets)-1].Weight
	}
	if log.BaseWeight < 0 {
		log.BaseWeight = 0
	}

	logs := slices.Clone(session.Exercises)
	logs[idx] = log
	session.Exercises = logs
	return session
}

// FinishSession freezes the session. A live session gets its elapsed
// wall-clock duration; a historical (retroactively logged) session keeps the
// duration it was given.
func (p *Planner) FinishSession(session Session, now time.Time) Session {
	session.Completed = true
	if !session.IsHistorical {
		duration := int(now.Sub(session.Date).Seconds())
		if duration < 0 {
			duration = 0
		}
		session.DurationSeconds = duration
	}
	return session
}

// equipmentOf resolves an exercise's equipment, defaulting to the zero value
// (and thereby the default tuning entry) for unknown exercises.
func (p *Planner) equipmentOf(exerciseID string) Equipment {
	exercise, ok := p.catalog.ExerciseOf(exerciseID)
	if !ok {
		return Equipment("")
	}
	return exercise.Equipment
}

// pendingSets plans count pending sets at the given weight.
func pendingSets(count int, weight float64) []SetLog {
	if count < 1 {
		count = 1
	}
	sets := make([]SetLog, count)
	for i := range sets {
		sets[i] = SetLog{
			RepsCompleted: 0,
			Weight:        weight,
			Completed:     false,
		}
	}
	return sets
}

// clampSets floors weights and reps at zero, favoring availability over
// strict validation.
func clampSets(sets []SetLog) []SetLog {
	clamped := make([]SetLog, len(sets))
	for i, set := range sets {
		if set.Weight < 0 {
			set.Weight = 0
		}
		if set.RepsCompleted < 0 {
			set.RepsCompleted = 0
		}
		clamped[i] = set
	}
	return clamped
}

// setWeightsChanged reports whether any set weight differs between the stored
// and edited logs, counting added or removed sets as a change.
func setWeightsChanged(stored, edited []SetLog) bool {
	if len(stored) != len(edited) {
		return true
	}
	for i := range edited {
		if stored[i].Weight != edited[i].Weight {
			return true
		}
	}
	return false
}

// indexByOrder finds the slot with the given order value, -1 if absent.
func indexByOrder(logs []ExerciseLog, order int) int {
	return slices.IndexFunc(logs, func(log ExerciseLog) bool {
		return log.Order == order
	})
}
