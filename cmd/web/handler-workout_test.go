package main

import (
	"net/http"
	neturl "net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/flexlog/flexlog/internal/e2etest"
	"github.com/flexlog/flexlog/internal/testhelpers"
)

func Test_application_workoutFlow(t *testing.T) {
	ctx := t.Context()

	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}

	client := server.Client()

	var (
		doc         *goquery.Document
		sessionPath string
	)

	t.Run("start a session from a routine", func(t *testing.T) {
		doc, err = client.Post(ctx, "/sessions/start", neturl.Values{"template_id": {"tpl-push"}})
		if err != nil {
			t.Fatalf("Failed to start session: %v", err)
		}

		sessionPath = doc.Url.Path
		if !strings.HasPrefix(sessionPath, "/sessions/") {
			t.Fatalf("Expected redirect to the session page, landed on %s", sessionPath)
		}
		if doc.Find("h1:contains('Push Day')").Length() != 1 {
			t.Error("Expected the session page to be titled after the routine")
		}
		if exercises := doc.Find("section.exercise").Length(); exercises != 6 {
			t.Errorf("Expected 6 exercises from the Push Day routine, found %d", exercises)
		}
	})

	t.Run("starting again resumes the same session", func(t *testing.T) {
		doc, err = client.Post(ctx, "/sessions/start", neturl.Values{"template_id": {"tpl-push"}})
		if err != nil {
			t.Fatalf("Failed to start session: %v", err)
		}
		if doc.Url.Path != sessionPath {
			t.Errorf("Expected to resume %s, got %s", sessionPath, doc.Url.Path)
		}
	})

	t.Run("toggling a set marks it completed", func(t *testing.T) {
		doc, err = client.Post(ctx, sessionPath+"/exercises/0/sets/0/toggle", nil)
		if err != nil {
			t.Fatalf("Failed to toggle set: %v", err)
		}
		if doc.Find("button.set.completed").Length() != 1 {
			t.Errorf("Expected exactly 1 completed set, found %d", doc.Find("button.set.completed").Length())
		}
	})

	t.Run("finishing redirects home with a flash", func(t *testing.T) {
		doc, err = client.Post(ctx, sessionPath+"/finish", nil)
		if err != nil {
			t.Fatalf("Failed to finish session: %v", err)
		}
		if doc.Url.Path != "/" {
			t.Errorf("Expected redirect to home, landed on %s", doc.Url.Path)
		}
		if doc.Find(".flash:contains('Workout finished')").Length() != 1 {
			t.Error("Expected a flash message confirming the finished workout")
		}
	})

	t.Run("finished session shows up in history", func(t *testing.T) {
		doc, err = client.GetDoc(ctx, "/history")
		if err != nil {
			t.Fatalf("Failed to get history: %v", err)
		}
		if doc.Find("section.history-session h2:contains('Push Day')").Length() != 1 {
			t.Error("Expected the finished Push Day session in history")
		}
	})
}

func Test_application_notFound(t *testing.T) {
	ctx := t.Context()

	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}

	client := server.Client()

	resp, err := client.Get(ctx, "/sessions/no-such-session")
	if err != nil {
		t.Fatalf("Failed to get unknown session: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		t.Fatalf("Failed to parse 404 document: %v", err)
	}
	if doc.Find("h1:contains('Page not found')").Length() != 1 {
		t.Error("Expected the custom 404 page")
	}
}

func Test_crossOriginProtection(t *testing.T) {
	ctx := t.Context()

	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}

	// Simulate a browser submitting the form from another origin.
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, server.URL()+"/sessions/start",
		strings.NewReader(neturl.Values{"template_id": {"tpl-push"}}.Encode()))
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Sec-Fetch-Site", "cross-site")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected cross-origin POST to be rejected with %d, got %d",
			http.StatusForbidden, resp.StatusCode)
	}
}
