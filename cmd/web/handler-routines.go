package main

import (
	"net/http"
	"strconv"

	"github.com/flexlog/flexlog/internal/workout"
)

type routinesTemplateData struct {
	BaseTemplateData
	Routines []routineView
	Groups   []muscleGroupView
}

// routineView pairs a routine with the catalog metadata of its exercises.
type routineView struct {
	Template  workout.Template
	Exercises []workout.Exercise
}

func (app *application) routinesGET(w http.ResponseWriter, r *http.Request) {
	templates, err := app.workoutService.Templates(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	routines := make([]routineView, 0, len(templates))
	for _, template := range templates {
		view := routineView{
			Template:  template,
			Exercises: make([]workout.Exercise, 0, len(template.ExerciseIDs)),
		}
		for _, exerciseID := range template.ExerciseIDs {
			exercise, ok := app.catalog.ExerciseOf(exerciseID)
			if !ok {
				// Routines can reference exercises that were removed from the
				// catalog. Render them with what we know.
				exercise = workout.Exercise{ID: exerciseID, Name: exerciseID} //nolint:exhaustruct // placeholder
			}
			view.Exercises = append(view.Exercises, exercise)
		}
		routines = append(routines, view)
	}

	data := routinesTemplateData{
		BaseTemplateData: app.newSessionTemplateData(r),
		Routines:         routines,
		Groups:           app.muscleGroups(),
	}

	app.render(w, r, http.StatusOK, "routines", data)
}

func (app *application) routinesPOST(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	name := r.PostForm.Get("name")
	if name == "" {
		http.Error(w, "missing name", http.StatusBadRequest)
		return
	}

	// A checkbox per catalog exercise, so the field repeats. Picking the same
	// exercise twice is done by editing the slots, not the form.
	exerciseIDs := r.PostForm["exercise_id"]
	if len(exerciseIDs) == 0 {
		http.Error(w, "missing exercise_id", http.StatusBadRequest)
		return
	}

	template := workout.Template{ //nolint:exhaustruct // id is assigned on create
		Name:        name,
		ExerciseIDs: exerciseIDs,
	}
	// Blank sets and reps fall back to the service defaults.
	if raw := r.PostForm.Get("default_sets"); raw != "" {
		sets, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "invalid default_sets", http.StatusBadRequest)
			return
		}
		template.DefaultSets = sets
	}
	if raw := r.PostForm.Get("default_reps"); raw != "" {
		reps, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "invalid default_reps", http.StatusBadRequest)
			return
		}
		template.DefaultReps = reps
	}

	if _, err := app.workoutService.CreateTemplate(r.Context(), template); err != nil {
		app.serverError(w, r, err)
		return
	}

	app.sessionManager.Put(r.Context(), "flash", "Routine created")
	redirect(w, r, "/routines")
}

func (app *application) routineDeletePOST(w http.ResponseWriter, r *http.Request) {
	if err := app.workoutService.DeleteTemplate(r.Context(), r.PathValue("id")); err != nil {
		app.serverError(w, r, err)
		return
	}

	app.sessionManager.Put(r.Context(), "flash", "Routine deleted")
	redirect(w, r, "/routines")
}
