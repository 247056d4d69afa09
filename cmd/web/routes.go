package main

import (
	"fmt"
	"net/http"
)

func (app *application) routes() (*http.ServeMux, error) {
	mux := http.NewServeMux()

	var (
		base = func(next http.Handler) http.Handler {
			return app.logAndTraceRequest(secureHeaders(app.crossOriginProtection(
				commonContext(app.timeout(next)))))
		}
		noSession = func(next http.Handler) http.Handler {
			return app.recoverPanic(base(next))
		}
		session = func(next http.Handler) http.Handler {
			return app.recoverPanic(noCache(app.sessionManager.LoadAndSave(base(next))))
		}
	)

	mux.Handle("POST /sessions/start", session(http.HandlerFunc(app.sessionStartPOST)))
	mux.Handle("GET /sessions/current", session(http.HandlerFunc(app.sessionCurrentGET)))
	mux.Handle("GET /sessions/{id}", session(http.HandlerFunc(app.sessionGET)))
	mux.Handle("POST /sessions/{id}/finish", session(http.HandlerFunc(app.sessionFinishPOST)))
	mux.Handle("POST /sessions/{id}/reorder", session(http.HandlerFunc(app.sessionReorderPOST)))

	mux.Handle("POST /sessions/{id}/exercises/{order}/sets/{setIndex}/toggle",
		session(http.HandlerFunc(app.setTogglePOST)))
	mux.Handle("POST /sessions/{id}/exercises/{order}/weight",
		session(http.HandlerFunc(app.exerciseWeightPOST)))
	mux.Handle("POST /sessions/{id}/exercises/{order}/delete",
		session(http.HandlerFunc(app.exerciseDeletePOST)))
	mux.Handle("GET /sessions/{id}/exercises/{order}/swap",
		session(http.HandlerFunc(app.exerciseSwapGET)))
	mux.Handle("POST /sessions/{id}/exercises/{order}/swap",
		session(http.HandlerFunc(app.exerciseSwapPOST)))
	mux.Handle("GET /sessions/{id}/add-exercise", session(http.HandlerFunc(app.addExerciseGET)))
	mux.Handle("POST /sessions/{id}/add-exercise", session(http.HandlerFunc(app.addExercisePOST)))

	mux.Handle("GET /exercises/{exerciseID}", session(http.HandlerFunc(app.exerciseInfoGET)))

	mux.Handle("GET /history", session(http.HandlerFunc(app.historyGET)))
	mux.Handle("GET /progress", session(http.HandlerFunc(app.progressGET)))

	mux.Handle("GET /schedule", session(http.HandlerFunc(app.scheduleGET)))
	mux.Handle("POST /schedule", session(http.HandlerFunc(app.schedulePOST)))
	mux.Handle("POST /schedule/clear", session(http.HandlerFunc(app.scheduleClearPOST)))

	mux.Handle("GET /routines", session(http.HandlerFunc(app.routinesGET)))
	mux.Handle("POST /routines", session(http.HandlerFunc(app.routinesPOST)))
	mux.Handle("POST /routines/{id}/delete", session(http.HandlerFunc(app.routineDeletePOST)))

	mux.Handle("GET /settings", session(http.HandlerFunc(app.settingsGET)))
	mux.Handle("GET /settings/export", session(http.HandlerFunc(app.exportSnapshotGET)))
	mux.Handle("GET /settings/export.csv", session(http.HandlerFunc(app.exportCSVGET)))
	mux.Handle("GET /settings/export.json", session(http.HandlerFunc(app.exportJSONGET)))

	mux.Handle("GET /api/healthy", noSession(http.HandlerFunc(app.healthy)))
	mux.Handle("GET /api/test/timeout", noSession(http.HandlerFunc(app.testTimeout)))
	mux.Handle("POST /api/reports", noSession(http.HandlerFunc(app.reportingAPI)))

	// Home route (most specific)
	mux.Handle("GET /{$}", session(http.HandlerFunc(app.home)))

	// File server with custom 404 handling
	fileServerHandler, err := app.fileServerHandler()
	if err != nil {
		return nil, fmt.Errorf("fileServerHandler: %w", err)
	}
	mux.Handle("/", fileServerHandler)

	return mux, nil
}
