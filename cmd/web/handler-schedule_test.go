package main

import (
	"testing"

	"github.com/flexlog/flexlog/internal/e2etest"
	"github.com/flexlog/flexlog/internal/testhelpers"
)

func Test_application_schedule(t *testing.T) {
	ctx := t.Context()

	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}

	client := server.Client()

	doc, err := client.GetDoc(ctx, "/schedule")
	if err != nil {
		t.Fatalf("Failed to get schedule page: %v", err)
	}

	// A fresh database has nothing scheduled, so every day offers a routine select.
	if forms := doc.Find("form[action='/schedule']").Length(); forms != 7 {
		t.Fatalf("Expected 7 schedule forms, found %d", forms)
	}

	doc, err = client.SubmitForm(ctx, doc, "/schedule", map[string]string{"Routine": "tpl-push"})
	if err != nil {
		t.Fatalf("Failed to submit schedule form: %v", err)
	}

	if doc.Find("span.scheduled:contains('Push Day')").Length() != 1 {
		t.Error("Expected Push Day to appear as scheduled")
	}
	clearForms := doc.Find("form[action='/schedule/clear']")
	if clearForms.Length() != 1 {
		t.Fatalf("Expected one clear form after scheduling, found %d", clearForms.Length())
	}

	// Clearing the day puts its select back.
	doc, err = client.SubmitForm(ctx, doc, "/schedule/clear", nil)
	if err != nil {
		t.Fatalf("Failed to clear scheduled day: %v", err)
	}
	if doc.Find("span.scheduled").Length() != 0 {
		t.Error("Expected no scheduled days after clearing")
	}
	if forms := doc.Find("form[action='/schedule']").Length(); forms != 7 {
		t.Errorf("Expected 7 schedule forms after clearing, found %d", forms)
	}
}
