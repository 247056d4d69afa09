// Command stresstest drives a running flexlog instance with a writer that
// grinds through full workouts and a pool of concurrent readers, then reports
// latency and success-rate numbers.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	neturl "net/url"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/flexlog/flexlog/internal/e2etest"
	"github.com/flexlog/flexlog/internal/logging"
	"github.com/flexlog/flexlog/internal/testhelpers"
	"golang.org/x/sync/errgroup"
)

const (
	requestTimeout       = 10 * time.Second
	scenarioTimeout      = 5 * time.Minute
	maxConcurrentReaders = 20
	workoutCount         = 20
	readIterations       = 50
	successRateThreshold = 95.0
	percentageMultiplier = 100
	expectedArgsCount    = 2
)

// routines are the seeded templates the writer cycles through.
var routines = []string{"tpl-push", "tpl-pull", "tpl-legs", "tpl-upper", "tpl-lower"} //nolint:gochecknoglobals

// readPages are hammered by the reader pool while workouts are in flight.
var readPages = []string{"/", "/history", "/progress", "/schedule"} //nolint:gochecknoglobals

// metrics tracks request outcomes across all goroutines.
type metrics struct {
	requests    atomic.Int64
	failures    atomic.Int64
	totalNanos  atomic.Int64
	worstNanos  atomic.Int64
	workoutsRun atomic.Int64
}

func (m *metrics) record(start time.Time, err error) {
	elapsed := time.Since(start).Nanoseconds()
	m.requests.Add(1)
	m.totalNanos.Add(elapsed)
	for {
		worst := m.worstNanos.Load()
		if elapsed <= worst || m.worstNanos.CompareAndSwap(worst, elapsed) {
			break
		}
	}
	if err != nil {
		m.failures.Add(1)
	}
}

func (m *metrics) successRate() float64 {
	requests := m.requests.Load()
	if requests == 0 {
		return 0
	}
	return float64(requests-m.failures.Load()) / float64(requests) * percentageMultiplier
}

// runWorkout starts a session from a routine, toggles every set once, and
// finishes it.
func runWorkout(ctx context.Context, client *e2etest.Client, m *metrics, templateID string) error {
	ctx, cancel := context.WithTimeout(ctx, scenarioTimeout)
	defer cancel()

	start := time.Now()
	doc, err := client.Post(ctx, "/sessions/start", neturl.Values{"template_id": {templateID}})
	m.record(start, err)
	if err != nil {
		return fmt.Errorf("start session from %s: %w", templateID, err)
	}

	sessionPath := doc.Url.Path
	if !strings.HasPrefix(sessionPath, "/sessions/") {
		return fmt.Errorf("expected session page after start, landed on %s", sessionPath)
	}

	var toggleErr error
	doc.Find("form[action$='/toggle']").Each(func(_ int, form *goquery.Selection) {
		if toggleErr != nil {
			return
		}
		action, ok := form.Attr("action")
		if !ok {
			return
		}
		toggleStart := time.Now()
		_, err := client.Post(ctx, action, nil)
		m.record(toggleStart, err)
		if err != nil {
			toggleErr = fmt.Errorf("toggle %s: %w", action, err)
		}
	})
	if toggleErr != nil {
		return toggleErr
	}

	finishStart := time.Now()
	_, err = client.Post(ctx, sessionPath+"/finish", nil)
	m.record(finishStart, err)
	if err != nil {
		return fmt.Errorf("finish session %s: %w", sessionPath, err)
	}

	m.workoutsRun.Add(1)
	return nil
}

// runReader fetches read-only pages in a loop, jittered so readers do not
// march in lockstep.
func runReader(ctx context.Context, client *e2etest.Client, m *metrics) error {
	for i := range readIterations {
		page := readPages[i%len(readPages)]
		reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		start := time.Now()
		_, err := client.GetDoc(reqCtx, page)
		cancel()
		m.record(start, err)
		if err != nil {
			return fmt.Errorf("get %s: %w", page, err)
		}
		time.Sleep(time.Duration(rand.IntN(20)) * time.Millisecond) //nolint:gosec,mnd // jitter only.
	}
	return nil
}

func run(ctx context.Context, logger *slog.Logger, url string) error {
	client, err := e2etest.NewClient(url)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		return fmt.Errorf("server not ready: %w", err)
	}

	var m metrics
	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReaders + 1)

	// The app is single-user, so exactly one writer mutates sessions while
	// the readers load pages concurrently.
	g.Go(func() error {
		for i := range workoutCount {
			if err := runWorkout(groupCtx, client, &m, routines[i%len(routines)]); err != nil {
				return err
			}
		}
		return nil
	})
	for range maxConcurrentReaders {
		g.Go(func() error {
			return runReader(groupCtx, client, &m)
		})
	}

	waitErr := g.Wait()

	requests := m.requests.Load()
	avg := time.Duration(0)
	if requests > 0 {
		avg = time.Duration(m.totalNanos.Load() / requests)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "stress test finished",
		slog.Int64("requests", requests),
		slog.Int64("failures", m.failures.Load()),
		slog.Int64("workouts", m.workoutsRun.Load()),
		slog.String("success_rate", fmt.Sprintf("%.1f%%", m.successRate())),
		slog.Duration("avg_latency", avg),
		slog.Duration("worst_latency", time.Duration(m.worstNanos.Load())),
	)

	if waitErr != nil {
		return fmt.Errorf("stress scenario: %w", waitErr)
	}
	if rate := m.successRate(); rate < successRateThreshold {
		return fmt.Errorf("success rate %.1f%% below threshold %.1f%%", rate, successRateThreshold)
	}
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != expectedArgsCount {
		logger.LogAttrs(ctx, slog.LevelError, "usage: stresstest <hostname>")
		os.Exit(1)
	}

	hostname := os.Args[1]
	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))
	url := "https://" + hostname
	if strings.Contains(hostname, "localhost") {
		url = "http://" + hostname
	}

	if err := run(ctx, logger, url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "stress test failed", slog.Any("error", err))
		os.Exit(1)
	}
}
