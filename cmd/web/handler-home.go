package main

import (
	"net/http"
	"time"

	"github.com/flexlog/flexlog/internal/errors"
	"github.com/flexlog/flexlog/internal/ptr"
	"github.com/flexlog/flexlog/internal/workout"
)

const percentMultiplier = 100

type homeTemplateData struct {
	BaseTemplateData
	// Days contains the current week's schedule, Monday to Sunday.
	Days []dayView
	// Templates lists the routines a session can be started from.
	Templates []workout.Template
	// ActiveSession is the in-progress session, if any.
	ActiveSession *workout.Session
	// ActiveProgress is the completion percentage of the active session.
	ActiveProgress int
}

// dayView represents a single day's view data.
type dayView struct {
	// Date is the date of this day
	Date time.Time
	// Name is the weekday name (e.g. "Monday")
	Name string
	// IsToday indicates if this is the current day
	IsToday bool
	// IsPast indicates the day is before today, so a scheduled workout can
	// only be logged retroactively
	IsPast bool
	// TemplateID is the id of the scheduled routine, empty when the day is free
	TemplateID string
	// TemplateName is the name of the scheduled routine
	TemplateName string
}

func toDays(monday time.Time, scheduled []workout.ScheduledSession, templates []workout.Template) []dayView {
	templateNames := make(map[string]string, len(templates))
	for _, template := range templates {
		templateNames[template.ID] = template.Name
	}

	today := time.Now().Format("2006-01-02")
	days := make([]dayView, 7) //nolint:mnd // 7 days in a week
	for i := range days {
		date := monday.AddDate(0, 0, i)
		days[i] = dayView{
			Date:         date,
			Name:         date.Format("Monday"),
			IsToday:      date.Format("2006-01-02") == today,
			IsPast:       date.Format("2006-01-02") < today,
			TemplateID:   "",
			TemplateName: "",
		}
		for _, entry := range scheduled {
			if entry.Date.Format("2006-01-02") == date.Format("2006-01-02") {
				days[i].TemplateID = entry.TemplateID
				days[i].TemplateName = templateNames[entry.TemplateID]
			}
		}
	}

	return days
}

// sessionProgress counts completed sets against all sets as a percentage.
func sessionProgress(session workout.Session) int {
	completedSets := 0
	totalSets := 0
	for _, log := range session.Exercises {
		for _, set := range log.Sets {
			totalSets++
			if set.Completed {
				completedSets++
			}
		}
	}
	if totalSets == 0 {
		return 0
	}
	return (completedSets * percentMultiplier) / totalSets
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	templates, err := app.workoutService.Templates(ctx)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	now := time.Now()
	monday := workout.StartOfWeek(now)

	scheduled, err := app.workoutService.WeeklySchedule(ctx, now)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	data := homeTemplateData{
		BaseTemplateData: app.newSessionTemplateData(r),
		Days:             toDays(monday, scheduled, templates),
		Templates:        templates,
		ActiveSession:    nil,
		ActiveProgress:   0,
	}

	active, err := app.workoutService.ActiveSession(ctx)
	switch {
	case err == nil:
		data.ActiveSession = ptr.Ref(active)
		data.ActiveProgress = sessionProgress(active)
	case !errors.Is(err, workout.ErrNotFound):
		app.serverError(w, r, err)
		return
	}

	app.render(w, r, http.StatusOK, "home", data)
}
