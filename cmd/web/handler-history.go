package main

import (
	"net/http"
	"sort"
	"time"

	"github.com/flexlog/flexlog/internal/workout"
)

// historyWindow bounds how far back the history and progress pages look.
const historyWindow = 365 * 24 * time.Hour

type historyTemplateData struct {
	BaseTemplateData
	Sessions []historySessionView
}

type historySessionView struct {
	Session  workout.Session
	Duration time.Duration
	Volume   float64
}

// sessionVolume is the total weight moved in a session, the sum of
// weight times reps over every completed set.
func sessionVolume(session workout.Session) float64 {
	var volume float64
	for _, log := range session.Exercises {
		for _, set := range log.Sets {
			if set.Completed {
				volume += set.Weight * float64(set.RepsCompleted)
			}
		}
	}
	return volume
}

func (app *application) historyGET(w http.ResponseWriter, r *http.Request) {
	sessions, err := app.workoutService.History(r.Context(), time.Now().Add(-historyWindow))
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	// Newest first.
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Date.After(sessions[j].Date)
	})

	views := make([]historySessionView, 0, len(sessions))
	for _, session := range sessions {
		views = append(views, historySessionView{
			Session:  session,
			Duration: time.Duration(session.DurationSeconds) * time.Second,
			Volume:   sessionVolume(session),
		})
	}

	data := historyTemplateData{
		BaseTemplateData: app.newSessionTemplateData(r),
		Sessions:         views,
	}

	app.render(w, r, http.StatusOK, "history", data)
}

type progressTemplateData struct {
	BaseTemplateData
	Groups []progressGroupView
}

type progressGroupView struct {
	Name      workout.MuscleGroup
	Exercises []progressExerciseView
}

type progressExerciseView struct {
	Exercise workout.Exercise
	Last     workout.LastLog
}

func (app *application) progressGET(w http.ResponseWriter, r *http.Request) {
	all := app.catalog.All()
	ids := make([]string, 0, len(all))
	for _, exercise := range all {
		ids = append(ids, exercise.ID)
	}

	snapshot, err := app.workoutService.LastLogs(r.Context(), ids)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	byGroup := make(map[workout.MuscleGroup][]progressExerciseView)
	for _, exercise := range all {
		last, ok := snapshot.LastLogFor(exercise.ID)
		if !ok {
			continue
		}
		byGroup[exercise.MuscleGroup] = append(byGroup[exercise.MuscleGroup], progressExerciseView{
			Exercise: exercise,
			Last:     last,
		})
	}

	groups := make([]progressGroupView, 0, len(byGroup))
	for group, exercises := range byGroup {
		groups = append(groups, progressGroupView{Name: group, Exercises: exercises})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Name < groups[j].Name
	})

	data := progressTemplateData{
		BaseTemplateData: app.newSessionTemplateData(r),
		Groups:           groups,
	}

	app.render(w, r, http.StatusOK, "progress", data)
}
