package main

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/flexlog/flexlog/internal/errors"
	"github.com/flexlog/flexlog/internal/workout"
)

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error", errors.SlogError(err))
	app.render(w, r, http.StatusInternalServerError, "error", newBaseTemplateData(r))
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusNotFound, "not-found", newBaseTemplateData(r))
}

// redirect detects if the request is originating from a fetch API call or a top-level navigation and points the user
// to the correct URL.
func redirect(w http.ResponseWriter, r *http.Request, path string) {
	if r.Header.Get("Sec-Fetch-Dest") == "empty" {
		w.Header().Set("Content-Location", path)
		w.WriteHeader(http.StatusOK)
		return
	}

	http.Redirect(w, r, path, http.StatusSeeOther)
}

// fetchSession loads the session named by the "id" path parameter. On a
// missing or unknown id it sends a 404 and reports false.
func (app *application) fetchSession(w http.ResponseWriter, r *http.Request) (workout.Session, bool) {
	id := r.PathValue("id")
	session, err := app.workoutService.GetSession(r.Context(), id)
	if err != nil {
		if errors.Is(err, workout.ErrNotFound) {
			app.notFound(w, r)
			return workout.Session{}, false
		}
		app.serverError(w, r, err)
		return workout.Session{}, false
	}
	return session, true
}

// parseIntParam parses a named integer path parameter.
// On failure, sends HTTP 404 response automatically.
func (app *application) parseIntParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	value, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		http.NotFound(w, r)
		return 0, false
	}
	return value, true
}

// parseDateForm parses a date form value in 2006-01-02 format.
// On failure, sends HTTP 400 response automatically.
func (app *application) parseDateForm(w http.ResponseWriter, r *http.Request, name string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", r.FormValue(name))
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return time.Time{}, false
	}
	return date, true
}
