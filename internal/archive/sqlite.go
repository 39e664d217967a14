package archive

import (
	"database/sql"
	"errors"
	"fmt"

	"da-go/internal/archive/migrations"
	"da-go/internal/da"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteArchive implements Archive using SQLite.
type SQLiteArchive struct {
	db    *sql.DB
	clock da.Clock
	idgen da.IDGenerator
	path  string
}

var _ Archive = (*SQLiteArchive)(nil)

// NewSQLiteArchive opens an archive at path (":memory:" is allowed), runs
// pending migrations, and returns it. nil clock/idgen fall back to the
// real implementations.
func NewSQLiteArchive(path string, clock da.Clock, idgen da.IDGenerator) (*SQLiteArchive, error) {
	if clock == nil {
		clock = da.RealClock{}
	}
	if idgen == nil {
		idgen = da.UUIDGenerator{}
	}

	db, err := openConnection(path)
	if err != nil {
		return nil, err
	}

	// The archive holds derived data only, so migrating on open is safe.
	if err := migrations.Up(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating archive: %w", err)
	}

	return &SQLiteArchive{db: db, clock: clock, idgen: idgen, path: path}, nil
}

// openConnection opens and configures a SQLite connection.
func openConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	// SQLite ships with foreign keys off for backward compatibility.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

func (a *SQLiteArchive) SaveReport(fileID int64, title string, totalScore float64, reportJSON string) (string, error) {
	id := a.idgen.New()
	_, err := a.db.Exec(
		`INSERT INTO reports (id, file_id, title, total_score, report_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, fileID, title, totalScore, reportJSON, a.clock.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("saving report: %w", err)
	}
	return id, nil
}

func (a *SQLiteArchive) GetReport(id string) (*StoredReport, error) {
	row := a.db.QueryRow(
		`SELECT id, file_id, title, total_score, report_json, created_at
		 FROM reports WHERE id = ?`, id)

	var r StoredReport
	err := row.Scan(&r.ID, &r.FileID, &r.Title, &r.TotalScore, &r.ReportJSON, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading report: %w", err)
	}
	return &r, nil
}

func (a *SQLiteArchive) ListReports(limit int) ([]*StoredReport, error) {
	rows, err := a.db.Query(
		`SELECT id, file_id, title, total_score, report_json, created_at
		 FROM reports ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer rows.Close()

	var out []*StoredReport
	for rows.Next() {
		var r StoredReport
		if err := rows.Scan(&r.ID, &r.FileID, &r.Title, &r.TotalScore, &r.ReportJSON, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		out = append(out, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	return out, nil
}

func (a *SQLiteArchive) CreateOperation(operation, parameters string) (int64, error) {
	res, err := a.db.Exec(
		`INSERT INTO operations (operation, parameters, status, started_at)
		 VALUES (?, ?, 'success', ?)`,
		operation, parameters, a.clock.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("recording operation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading operation id: %w", err)
	}
	return id, nil
}

func (a *SQLiteArchive) FinishOperation(id int64, status string) error {
	_, err := a.db.Exec(
		`UPDATE operations SET status = ?, finished_at = ? WHERE id = ?`,
		status, a.clock.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("finishing operation: %w", err)
	}
	return nil
}

func (a *SQLiteArchive) ListOperations(limit int) ([]*Operation, error) {
	rows, err := a.db.Query(
		`SELECT id, operation, parameters, status, started_at, finished_at
		 FROM operations ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}
	defer rows.Close()

	var out []*Operation
	for rows.Next() {
		var op Operation
		if err := rows.Scan(&op.ID, &op.Operation, &op.Parameters, &op.Status, &op.StartedAt, &op.FinishedAt); err != nil {
			return nil, fmt.Errorf("scanning operation: %w", err)
		}
		out = append(out, &op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}
	return out, nil
}

func (a *SQLiteArchive) Close() error {
	return a.db.Close()
}
