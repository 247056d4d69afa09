package main

import (
	"encoding/csv"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type settingsTemplateData struct {
	BaseTemplateData
}

func (app *application) settingsGET(w http.ResponseWriter, r *http.Request) {
	data := settingsTemplateData{
		BaseTemplateData: app.newSessionTemplateData(r),
	}
	app.render(w, r, http.StatusOK, "settings", data)
}

// exportSnapshotGET streams a standalone SQLite snapshot of the database.
func (app *application) exportSnapshotGET(w http.ResponseWriter, r *http.Request) {
	exportPath, err := app.db.ExportSnapshot(r.Context(), os.TempDir())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	defer func() {
		if removeErr := os.Remove(exportPath); removeErr != nil {
			app.logger.LogAttrs(r.Context(), slog.LevelWarn, "remove export snapshot", slog.Any("error", removeErr))
		}
	}()

	w.Header().Set("Content-Type", "application/vnd.sqlite3")
	w.Header().Set("Content-Disposition", "attachment; filename="+filepath.Base(exportPath))
	http.ServeFile(w, r, exportPath)
}

// exportCSVGET dumps the finished session history as CSV, one row per set.
func (app *application) exportCSVGET(w http.ResponseWriter, r *http.Request) {
	sessions, err := app.workoutService.History(r.Context(), time.Time{})
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=flexlog-export.csv")

	writer := csv.NewWriter(w)
	_ = writer.Write([]string{"date", "session", "exercise", "set", "reps", "weight", "completed"})
	for _, session := range sessions {
		for _, log := range session.Exercises {
			for setIndex, set := range log.Sets {
				_ = writer.Write([]string{
					session.Date.Format("2006-01-02"),
					session.Name,
					log.ExerciseID,
					strconv.Itoa(setIndex + 1),
					strconv.Itoa(set.RepsCompleted),
					formatFloat(set.Weight),
					strconv.FormatBool(set.Completed),
				})
			}
		}
	}
	writer.Flush()
	if err = writer.Error(); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelWarn, "write csv export", slog.Any("error", err))
	}
}

// exportJSON is the shape of the JSON data export.
type exportJSON struct {
	ExportedAt time.Time `json:"exportedAt"`
	Sessions   any       `json:"sessions"`
}

// exportJSONGET dumps the finished session history as JSON.
func (app *application) exportJSONGET(w http.ResponseWriter, r *http.Request) {
	sessions, err := app.workoutService.History(r.Context(), time.Time{})
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=flexlog-export.json")
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err = encoder.Encode(exportJSON{ExportedAt: time.Now(), Sessions: sessions}); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelWarn, "encode export", slog.Any("error", err))
	}
}
