package sqlite

import (
	"database/sql"
	"testing"

	"github.com/flexlog/flexlog/internal/testhelpers"
)

func TestDatabase_ExportSnapshot(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))

	db, err := connect(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			t.Errorf("Failed to close database: %v", err)
		}
	}()

	schema := `CREATE TABLE exercises (id INTEGER PRIMARY KEY, name TEXT NOT NULL);
CREATE TABLE session_logs (
    id INTEGER PRIMARY KEY,
    exercise_id INTEGER NOT NULL REFERENCES exercises (id),
    weight REAL NOT NULL
);`
	if err = db.migrateTo(ctx, schema); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	if _, err = db.ReadWrite.ExecContext(ctx,
		`INSERT INTO exercises (id, name) VALUES (1, 'Bench Press');
		 INSERT INTO session_logs (exercise_id, weight) VALUES (1, 60.0);`); err != nil {
		t.Fatalf("Failed to seed data: %v", err)
	}

	exportPath, err := db.ExportSnapshot(ctx, t.TempDir())
	if err != nil {
		t.Fatalf("ExportSnapshot: %v", err)
	}

	exported, err := sql.Open("sqlite3", "file:"+exportPath+"?mode=ro")
	if err != nil {
		t.Fatalf("open exported database: %v", err)
	}
	defer func() {
		if err = exported.Close(); err != nil {
			t.Errorf("close exported database: %v", err)
		}
	}()

	var weight float64
	row := exported.QueryRowContext(ctx,
		`SELECT weight FROM session_logs JOIN exercises ON exercises.id = session_logs.exercise_id
		 WHERE exercises.name = 'Bench Press'`)
	if err = row.Scan(&weight); err != nil {
		t.Fatalf("scan exported row: %v", err)
	}
	if weight != 60.0 {
		t.Errorf("exported weight = %v, want 60", weight)
	}
}
