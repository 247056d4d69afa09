package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
)

// reportBodyLimit caps report payloads, which are small JSON documents.
const reportBodyLimit = 64 * 1024

// reportingAPI receives browser reports such as CSP violations and logs them.
// See: https://developer.mozilla.org/en-US/docs/Web/API/Reporting_API
func (app *application) reportingAPI(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	if contentType != "" && contentType != "application/csp-report" &&
		contentType != "application/json" && contentType != "application/reports+json" {
		app.logger.LogAttrs(r.Context(), slog.LevelWarn, "Report with unexpected content type",
			slog.String("content_type", contentType))
	}

	defer r.Body.Close()

	body, err := io.ReadAll(io.LimitReader(r.Body, reportBodyLimit))
	if err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "Failed to read report request body",
			slog.String("error", err.Error()))
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	var data map[string]any
	if err = json.Unmarshal(body, &data); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "Failed to parse report",
			slog.String("error", err.Error()),
			slog.String("body", string(body)))
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	app.logger.LogAttrs(r.Context(), slog.LevelWarn, "Report received via Reporting API",
		slog.Any("payload", data),
		slog.String("user_agent", r.Header.Get("User-Agent")))

	// The Reporting API expects 204 No Content.
	w.WriteHeader(http.StatusNoContent)
}
