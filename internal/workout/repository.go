package workout

import (
	"log/slog"
	"time"

	"github.com/flexlog/flexlog/internal/errors"
	"github.com/flexlog/flexlog/internal/sqlite"
)

// ErrNotFound is returned when a requested aggregate does not exist.
var ErrNotFound = errors.NewSentinel("not found")

const dateFormat = "2006-01-02"

// baseRepository holds the shared database handle and logger.
type baseRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newBaseRepository(db *sqlite.Database, logger *slog.Logger) baseRepository {
	return baseRepository{
		db:     db,
		logger: logger,
	}
}

func formatDate(t time.Time) string {
	return t.Format(dateFormat)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "parse timestamp", slog.String("value", s))
	}
	return t, nil
}
