package main

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/flexlog/flexlog/internal/workout"
)

type sessionTemplateData struct {
	BaseTemplateData
	Session   workout.Session
	Exercises []exerciseView
}

// exerciseView pairs an exercise log with its catalog metadata for rendering.
type exerciseView struct {
	Log      workout.ExerciseLog
	Exercise workout.Exercise
}

func (app *application) exerciseViews(session workout.Session) []exerciseView {
	views := make([]exerciseView, 0, len(session.Exercises))
	for _, log := range session.Exercises {
		exercise, ok := app.catalog.ExerciseOf(log.ExerciseID)
		if !ok {
			// Logs can reference exercises that were removed from the
			// catalog. Render them with what we know.
			exercise = workout.Exercise{ID: log.ExerciseID, Name: log.ExerciseID} //nolint:exhaustruct // placeholder
		}
		views = append(views, exerciseView{Log: log, Exercise: exercise})
	}
	return views
}

func (app *application) sessionStartPOST(w http.ResponseWriter, r *http.Request) {
	templateID := r.FormValue("template_id")
	if templateID == "" {
		http.Error(w, "missing template_id", http.StatusBadRequest)
		return
	}

	// An explicit date logs a past workout retroactively.
	date := time.Now()
	if r.FormValue("date") != "" {
		var ok bool
		if date, ok = app.parseDateForm(w, r, "date"); !ok {
			return
		}
	}

	session, err := app.workoutService.StartSession(r.Context(), templateID, date)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	redirect(w, r, fmt.Sprintf("/sessions/%s", session.ID))
}

func (app *application) sessionCurrentGET(w http.ResponseWriter, r *http.Request) {
	session, err := app.workoutService.ActiveSession(r.Context())
	if err != nil {
		redirect(w, r, "/")
		return
	}
	redirect(w, r, fmt.Sprintf("/sessions/%s", session.ID))
}

func (app *application) sessionGET(w http.ResponseWriter, r *http.Request) {
	session, ok := app.fetchSession(w, r)
	if !ok {
		return
	}

	data := sessionTemplateData{
		BaseTemplateData: app.newSessionTemplateData(r),
		Session:          session,
		Exercises:        app.exerciseViews(session),
	}

	app.render(w, r, http.StatusOK, "workout", data)
}

func (app *application) sessionFinishPOST(w http.ResponseWriter, r *http.Request) {
	session, ok := app.fetchSession(w, r)
	if !ok {
		return
	}

	if err := app.workoutService.FinishSession(r.Context(), session.ID); err != nil {
		app.serverError(w, r, err)
		return
	}

	app.sessionManager.Put(r.Context(), "flash", "Workout finished")
	redirect(w, r, "/")
}

func (app *application) sessionReorderPOST(w http.ResponseWriter, r *http.Request) {
	session, ok := app.fetchSession(w, r)
	if !ok {
		return
	}

	from, err := strconv.Atoi(r.FormValue("from"))
	if err != nil {
		http.Error(w, "invalid from position", http.StatusBadRequest)
		return
	}
	to, err := strconv.Atoi(r.FormValue("to"))
	if err != nil {
		http.Error(w, "invalid to position", http.StatusBadRequest)
		return
	}

	if err = app.workoutService.Reorder(r.Context(), session.ID, from, to); err != nil {
		app.serverError(w, r, err)
		return
	}

	redirect(w, r, fmt.Sprintf("/sessions/%s", session.ID))
}

func (app *application) setTogglePOST(w http.ResponseWriter, r *http.Request) {
	session, ok := app.fetchSession(w, r)
	if !ok {
		return
	}
	order, ok := app.parseIntParam(w, r, "order")
	if !ok {
		return
	}
	setIndex, ok := app.parseIntParam(w, r, "setIndex")
	if !ok {
		return
	}

	if err := app.workoutService.ToggleSet(r.Context(), session.ID, order, setIndex); err != nil {
		app.serverError(w, r, err)
		return
	}

	redirect(w, r, fmt.Sprintf("/sessions/%s", session.ID))
}

func (app *application) exerciseWeightPOST(w http.ResponseWriter, r *http.Request) {
	session, ok := app.fetchSession(w, r)
	if !ok {
		return
	}
	order, ok := app.parseIntParam(w, r, "order")
	if !ok {
		return
	}

	delta, err := strconv.ParseFloat(r.FormValue("delta"), 64)
	if err != nil {
		http.Error(w, "invalid delta", http.StatusBadRequest)
		return
	}

	if err = app.workoutService.AdjustWeight(r.Context(), session.ID, order, delta); err != nil {
		app.serverError(w, r, err)
		return
	}

	redirect(w, r, fmt.Sprintf("/sessions/%s", session.ID))
}

func (app *application) exerciseDeletePOST(w http.ResponseWriter, r *http.Request) {
	session, ok := app.fetchSession(w, r)
	if !ok {
		return
	}
	order, ok := app.parseIntParam(w, r, "order")
	if !ok {
		return
	}

	if err := app.workoutService.DeleteExercise(r.Context(), session.ID, order); err != nil {
		app.serverError(w, r, err)
		return
	}

	redirect(w, r, fmt.Sprintf("/sessions/%s", session.ID))
}

type swapTemplateData struct {
	BaseTemplateData
	Session      workout.Session
	Order        int
	Current      workout.Exercise
	Alternatives []workout.Exercise
}

func (app *application) exerciseSwapGET(w http.ResponseWriter, r *http.Request) {
	session, ok := app.fetchSession(w, r)
	if !ok {
		return
	}
	order, ok := app.parseIntParam(w, r, "order")
	if !ok {
		return
	}
	if order < 0 || order >= len(session.Exercises) {
		app.notFound(w, r)
		return
	}

	current, _ := app.catalog.ExerciseOf(session.Exercises[order].ExerciseID)

	alternatives, err := app.workoutService.SuggestAlternatives(r.Context(), current.ID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	data := swapTemplateData{
		BaseTemplateData: app.newSessionTemplateData(r),
		Session:          session,
		Order:            order,
		Current:          current,
		Alternatives:     alternatives,
	}

	app.render(w, r, http.StatusOK, "swap", data)
}

func (app *application) exerciseSwapPOST(w http.ResponseWriter, r *http.Request) {
	session, ok := app.fetchSession(w, r)
	if !ok {
		return
	}
	order, ok := app.parseIntParam(w, r, "order")
	if !ok {
		return
	}

	exerciseID := r.FormValue("exercise_id")
	if exerciseID == "" {
		http.Error(w, "missing exercise_id", http.StatusBadRequest)
		return
	}

	if err := app.workoutService.Swap(r.Context(), session.ID, order, exerciseID); err != nil {
		app.serverError(w, r, err)
		return
	}

	redirect(w, r, fmt.Sprintf("/sessions/%s", session.ID))
}

type addExerciseTemplateData struct {
	BaseTemplateData
	Session workout.Session
	Groups  []muscleGroupView
}

// muscleGroupView groups selectable exercises for the add-exercise picker.
type muscleGroupView struct {
	Name      workout.MuscleGroup
	Exercises []workout.Exercise
}

// muscleGroups lists the whole catalog grouped for exercise pickers.
func (app *application) muscleGroups() []muscleGroupView {
	groups := make([]muscleGroupView, 0)
	for _, group := range []workout.MuscleGroup{
		workout.MuscleGroupChest, workout.MuscleGroupShoulders, workout.MuscleGroupTriceps,
		workout.MuscleGroupLats, workout.MuscleGroupUpperBack, workout.MuscleGroupLowerBack,
		workout.MuscleGroupBiceps, workout.MuscleGroupLegs, workout.MuscleGroupGlutes,
		workout.MuscleGroupCalves,
	} {
		if available := app.catalog.ByMuscleGroup(group); len(available) > 0 {
			groups = append(groups, muscleGroupView{Name: group, Exercises: available})
		}
	}
	return groups
}

func (app *application) addExerciseGET(w http.ResponseWriter, r *http.Request) {
	session, ok := app.fetchSession(w, r)
	if !ok {
		return
	}

	data := addExerciseTemplateData{
		BaseTemplateData: app.newSessionTemplateData(r),
		Session:          session,
		// Exercises already in the session stay selectable: a slot may repeat
		// an exercise, e.g. a second bench press block at the end of a push
		// day.
		Groups: app.muscleGroups(),
	}

	app.render(w, r, http.StatusOK, "add-exercise", data)
}

func (app *application) addExercisePOST(w http.ResponseWriter, r *http.Request) {
	session, ok := app.fetchSession(w, r)
	if !ok {
		return
	}

	exerciseID := r.FormValue("exercise_id")
	if exerciseID == "" {
		http.Error(w, "missing exercise_id", http.StatusBadRequest)
		return
	}

	if err := app.workoutService.AddExercise(r.Context(), session.ID, exerciseID); err != nil {
		app.serverError(w, r, err)
		return
	}

	redirect(w, r, fmt.Sprintf("/sessions/%s", session.ID))
}
