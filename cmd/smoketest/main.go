package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/flexlog/flexlog/internal/e2etest"
	"github.com/flexlog/flexlog/internal/logging"
	"github.com/flexlog/flexlog/internal/testhelpers"
	"golang.org/x/sync/errgroup"
)

const pageTimeout = 10 * time.Second

// pages are the navigations a deployment must serve to be considered healthy.
var pages = []string{"/", "/history", "/progress", "/schedule", "/settings"} //nolint:gochecknoglobals // smoke scope.

// checkPage fetches a page and asserts it renders with the shared navigation.
func checkPage(ctx context.Context, client *e2etest.Client, urlPath string) error {
	ctx, cancel := context.WithTimeout(ctx, pageTimeout)
	defer cancel()

	doc, err := client.GetDoc(ctx, urlPath)
	if err != nil {
		return fmt.Errorf("get %s: %w", urlPath, err)
	}
	if doc.Find("nav a[href='/']").Length() == 0 {
		return fmt.Errorf("page %s is missing the main navigation", urlPath)
	}
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		client   *e2etest.Client
		err      error
		start    = time.Now()
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))
	url := "https://" + hostname
	if strings.Contains(hostname, "localhost") {
		url = "http://" + hostname
	}

	if client, err = e2etest.NewClient(url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", slog.Any("error", err))
		os.Exit(1)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready in time", slog.Any("error", err))
		os.Exit(1)
	}

	g, groupCtx := errgroup.WithContext(ctx)
	for _, page := range pages {
		g.Go(func() error {
			return checkPage(groupCtx, client, page)
		})
	}
	if err = g.Wait(); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error checking pages", slog.Any("error", err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌", slog.Duration("duration", time.Since(start)))
	os.Exit(0)
}
