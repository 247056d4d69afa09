package main

import (
	"net/http"

	"github.com/flexlog/flexlog/internal/workout"
)

type exerciseInfoTemplateData struct {
	BaseTemplateData
	Exercise     workout.Exercise
	Alternatives []workout.Exercise
}

func (app *application) exerciseInfoGET(w http.ResponseWriter, r *http.Request) {
	exercise, ok := app.catalog.ExerciseOf(r.PathValue("exerciseID"))
	if !ok {
		app.notFound(w, r)
		return
	}

	var alternatives []workout.Exercise
	for _, id := range exercise.DefaultAlternatives {
		if alternative, found := app.catalog.ExerciseOf(id); found {
			alternatives = append(alternatives, alternative)
		}
	}

	data := exerciseInfoTemplateData{
		BaseTemplateData: app.newSessionTemplateData(r),
		Exercise:         exercise,
		Alternatives:     alternatives,
	}

	app.render(w, r, http.StatusOK, "exercise-info", data)
}
