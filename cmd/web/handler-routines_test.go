package main

import (
	neturl "net/url"
	"testing"

	"github.com/flexlog/flexlog/internal/e2etest"
	"github.com/flexlog/flexlog/internal/testhelpers"
)

func Test_application_routines(t *testing.T) {
	ctx := t.Context()

	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}

	client := server.Client()

	doc, err := client.GetDoc(ctx, "/routines")
	if err != nil {
		t.Fatalf("Failed to get routines page: %v", err)
	}

	// The fixtures seed five routines, each with a delete form.
	deleteForms := doc.Find("ul.routines form[action$='/delete']")
	if deleteForms.Length() != 5 {
		t.Fatalf("Expected 5 routines, found %d", deleteForms.Length())
	}
	if doc.Find("form[action='/routines']").Length() != 1 {
		t.Fatal("Expected a create routine form")
	}

	doc, err = client.Post(ctx, "/routines", neturl.Values{
		"name":        {"Arm Day"},
		"exercise_id": {"db-curl-stand", "cab-tri-push"},
	})
	if err != nil {
		t.Fatalf("Failed to create routine: %v", err)
	}

	if doc.Find(".flash:contains('Routine created')").Length() != 1 {
		t.Error("Expected a creation flash message")
	}
	armDay := doc.Find("ul.routines li:contains('Arm Day')").First()
	if armDay.Length() != 1 {
		t.Fatal("Expected Arm Day to be listed")
	}
	if exercises := armDay.Find("ol.routine-exercises li").Length(); exercises != 2 {
		t.Errorf("Expected Arm Day to list 2 exercises, found %d", exercises)
	}

	// The new routine is offered when scheduling a day.
	scheduleDoc, err := client.GetDoc(ctx, "/schedule")
	if err != nil {
		t.Fatalf("Failed to get schedule page: %v", err)
	}
	if scheduleDoc.Find("select option:contains('Arm Day')").Length() == 0 {
		t.Error("Expected Arm Day to be selectable on the schedule page")
	}

	// A routine without a name is rejected before anything is stored.
	if _, err = client.Post(ctx, "/routines", neturl.Values{
		"exercise_id": {"db-curl-stand"},
	}); err == nil {
		t.Error("Expected creating a nameless routine to fail")
	}

	deleteAction, exists := armDay.Find("form[action$='/delete']").Attr("action")
	if !exists {
		t.Fatal("Expected Arm Day to have a delete form")
	}
	doc, err = client.SubmitForm(ctx, doc, deleteAction, nil)
	if err != nil {
		t.Fatalf("Failed to delete routine: %v", err)
	}
	if doc.Find(".flash:contains('Routine deleted')").Length() != 1 {
		t.Error("Expected a deletion flash message")
	}
	if doc.Find("ul.routines li:contains('Arm Day')").Length() != 0 {
		t.Error("Expected Arm Day to be gone after deletion")
	}
}
