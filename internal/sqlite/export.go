package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"
)

// ExportSnapshot copies the whole database into a standalone SQLite file under
// basePath and returns the path to the created file.
//
// The snapshot is a plain database file that can be opened with any SQLite
// client, so it doubles as a backup and as a take-your-data-with-you export.
func (db *Database) ExportSnapshot(ctx context.Context, basePath string) (_ string, err error) {
	exportPath := filepath.Join(basePath, fmt.Sprintf("flexlog-%s.sqlite3", time.Now().Format("2006-01-02")))
	exportDsn := fmt.Sprintf("file:%s?mode=rwc", exportPath)

	conn, err := db.setupExportConnection(ctx)
	if err != nil {
		return "", fmt.Errorf("setup export connection: %w", err)
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close db connection: %w", closeErr)
		}
	}()

	return db.executeExport(ctx, conn, exportDsn, exportPath)
}

// setupExportConnection prepares a database connection for export operations.
func (db *Database) setupExportConnection(ctx context.Context) (*sql.Conn, error) {
	conn, err := db.ReadOnly.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("get db connection: %w", err)
	}

	if pragmaErr := db.configurePragmas(ctx, conn, false); pragmaErr != nil {
		if closeErr := conn.Close(); closeErr != nil {
			return nil, fmt.Errorf("configure pragmas: %w (close error: %w)", pragmaErr, closeErr)
		}
		return nil, fmt.Errorf("configure pragmas: %w", pragmaErr)
	}

	return conn, nil
}

// configurePragmas sets up the necessary PRAGMA settings for export operations.
func (db *Database) configurePragmas(ctx context.Context, conn *sql.Conn, readOnly bool) error {
	var queryOnlyMode, foreignKeysMode string
	var modeErr, fkErr string

	if readOnly {
		queryOnlyMode = "TRUE"
		foreignKeysMode = "ON"
		modeErr = "enable read only mode"
		fkErr = "enable foreign keys"
	} else {
		queryOnlyMode = "FALSE"
		foreignKeysMode = "OFF"
		modeErr = "disable read only mode"
		fkErr = "disable foreign keys"
	}

	if _, err := conn.ExecContext(ctx, `PRAGMA QUERY_ONLY = `+queryOnlyMode); err != nil {
		return fmt.Errorf("%s: %w", modeErr, err)
	}
	if _, err := conn.ExecContext(ctx, `PRAGMA FOREIGN_KEYS = `+foreignKeysMode); err != nil {
		return fmt.Errorf("%s: %w", fkErr, err)
	}
	return nil
}

// executeExport performs the export within a transaction. Foreign keys are off
// on the connection so that tables can be copied in any order.
func (db *Database) executeExport(
	ctx context.Context, conn *sql.Conn, exportDsn string, exportPath string,
) (string, error) {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback() // Ignore rollback errors to preserve original error
		}
		// Restore original pragmas
		_ = db.configurePragmas(ctx, conn, true) // Ignore pragma restoration errors
	}()

	if _, err = tx.ExecContext(ctx, `ATTACH DATABASE ? AS export`, exportDsn); err != nil {
		return "", fmt.Errorf("create export database: %w", err)
	}

	tables, err := db.exportableTables(ctx, tx)
	if err != nil {
		return "", fmt.Errorf("find exportable tables: %w", err)
	}

	for _, table := range tables {
		if err = db.copyTableSchema(ctx, tx, table); err != nil {
			return "", fmt.Errorf("copy schema for table %s: %w", table, err)
		}
		//nolint:gosec // table names come from sqlite_schema, not user input.
		copySQL := fmt.Sprintf("INSERT INTO export.%s SELECT * FROM main.%s", table, table)
		if _, err = tx.ExecContext(ctx, copySQL); err != nil {
			return "", fmt.Errorf("copy data for table %s: %w", table, err)
		}
	}

	if _, err = tx.ExecContext(ctx, `PRAGMA export.foreign_keys = ON`); err != nil {
		return "", fmt.Errorf("re-enable foreign keys in export database: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("commit export database: %w", err)
	}
	committed = true

	return exportPath, nil
}

// exportableTables lists the application tables, skipping SQLite internals and
// Litestream bookkeeping.
func (db *Database) exportableTables(ctx context.Context, tx *sql.Tx) (_ []string, err error) {
	rows, err := tx.QueryContext(ctx, `SELECT name FROM sqlite_schema
WHERE type = 'table'
  AND name NOT LIKE 'sqlite_%'
  AND name NOT LIKE '_litestream_%'`)
	if err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	var tables []string
	for rows.Next() {
		var tableName string
		if err = rows.Scan(&tableName); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		tables = append(tables, tableName)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over tables: %w", err)
	}

	return tables, nil
}

// copyTableSchema copies the schema for a table from the main database to the export database.
func (db *Database) copyTableSchema(ctx context.Context, tx *sql.Tx, tableName string) error {
	var createSQL string
	schemaQuery := `SELECT sql FROM sqlite_schema WHERE type = 'table' AND name = ?`
	if err := tx.QueryRowContext(ctx, schemaQuery, tableName).Scan(&createSQL); err != nil {
		return fmt.Errorf("get schema for table %s: %w", tableName, err)
	}

	// Rewrite the CREATE TABLE statement so the table lands in the export database.
	exportSQL := fmt.Sprintf("CREATE TABLE export.%s%s", tableName, createSQL[len("CREATE TABLE "+tableName):])
	if _, err := tx.ExecContext(ctx, exportSQL); err != nil {
		return fmt.Errorf("create table schema in export db: %w", err)
	}

	return nil
}
