package main

import (
	"testing"

	"github.com/flexlog/flexlog/internal/e2etest"
	"github.com/flexlog/flexlog/internal/testhelpers"
)

func testLookupEnv(key string) (string, bool) {
	switch key {
	case "FLEXLOG_SQLITE_URL":
		return ":memory:", true
	case "FLEXLOG_ADDR":
		return "localhost:0", true
	default:
		return "", false
	}
}

func Test_application_home(t *testing.T) {
	ctx := t.Context()

	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}

	client := server.Client()

	doc, err := client.GetDoc(ctx, "/")
	if err != nil {
		t.Fatalf("Failed to get document: %v", err)
	}

	// The week view always renders seven days.
	if days := doc.Find("ol.week li").Length(); days != 7 {
		t.Errorf("Expected 7 days in the week view, found %d", days)
	}

	// Without an active session, every seeded routine gets a start button.
	startForms := doc.Find("form[action='/sessions/start']")
	if startForms.Length() < 5 {
		t.Errorf("Expected at least 5 start workout forms, found %d", startForms.Length())
	}
	if doc.Find("button:contains('Push Day')").Length() != 1 {
		t.Error("Expected a start button for the Push Day routine")
	}

	for _, path := range []string{"/history", "/progress", "/schedule", "/settings"} {
		if doc.Find("nav a[href='" + path + "']").Length() != 1 {
			t.Errorf("Expected a nav link to %s", path)
		}
	}
}
