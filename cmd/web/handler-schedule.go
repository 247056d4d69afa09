package main

import (
	"net/http"
	"time"

	"github.com/flexlog/flexlog/internal/workout"
)

type scheduleTemplateData struct {
	BaseTemplateData
	Days      []scheduleDayView
	Templates []workout.Template
}

type scheduleDayView struct {
	Date         time.Time
	IsToday      bool
	TemplateID   string
	TemplateName string
}

func (app *application) scheduleGET(w http.ResponseWriter, r *http.Request) {
	now := time.Now()

	scheduled, err := app.workoutService.WeeklySchedule(r.Context(), now)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	templates, err := app.workoutService.Templates(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	names := make(map[string]string, len(templates))
	for _, template := range templates {
		names[template.ID] = template.Name
	}

	byDate := make(map[string]workout.ScheduledSession, len(scheduled))
	for _, entry := range scheduled {
		byDate[entry.Date.Format(time.DateOnly)] = entry
	}

	monday := workout.StartOfWeek(now)

	days := make([]scheduleDayView, 0, 7)
	for i := range 7 {
		date := monday.AddDate(0, 0, i)
		day := scheduleDayView{
			Date:    date,
			IsToday: date.Format(time.DateOnly) == now.Format(time.DateOnly),
		}
		if entry, ok := byDate[date.Format(time.DateOnly)]; ok {
			day.TemplateID = entry.TemplateID
			day.TemplateName = names[entry.TemplateID]
		}
		days = append(days, day)
	}

	data := scheduleTemplateData{
		BaseTemplateData: app.newSessionTemplateData(r),
		Days:             days,
		Templates:        templates,
	}

	app.render(w, r, http.StatusOK, "schedule", data)
}

func (app *application) schedulePOST(w http.ResponseWriter, r *http.Request) {
	date, ok := app.parseDateForm(w, r, "date")
	if !ok {
		return
	}

	templateID := r.FormValue("template_id")
	if templateID == "" {
		http.Error(w, "missing template_id", http.StatusBadRequest)
		return
	}

	if err := app.workoutService.ScheduleTemplate(r.Context(), date, templateID); err != nil {
		app.serverError(w, r, err)
		return
	}

	redirect(w, r, "/schedule")
}

func (app *application) scheduleClearPOST(w http.ResponseWriter, r *http.Request) {
	date, ok := app.parseDateForm(w, r, "date")
	if !ok {
		return
	}

	if err := app.workoutService.UnscheduleDate(r.Context(), date); err != nil {
		app.serverError(w, r, err)
		return
	}

	redirect(w, r, "/schedule")
}
