package archive

import (
	"database/sql"
	"time"
)

// Archive persists fetched analysis reports and the CLI operation log
// locally, so reports survive between invocations without re-hitting the
// backend. It is derived data: losing it only costs a re-fetch.
type Archive interface {
	// SaveReport stores a normalized report for a file. reportJSON is the
	// full canonical report serialized, kept verbatim for later rendering.
	// Returns the archive row id.
	SaveReport(fileID int64, title string, totalScore float64, reportJSON string) (string, error)

	// GetReport returns a stored report by archive id, or nil if absent.
	GetReport(id string) (*StoredReport, error)

	// ListReports returns the most recent stored reports, newest first.
	ListReports(limit int) ([]*StoredReport, error)

	// CreateOperation records the start of a CLI operation and returns its
	// auto-increment id.
	CreateOperation(operation, parameters string) (int64, error)

	// FinishOperation stamps an operation's final status.
	FinishOperation(id int64, status string) error

	// ListOperations returns the most recent operations, newest first.
	ListOperations(limit int) ([]*Operation, error)

	Close() error
}

// StoredReport is one archived analysis report.
type StoredReport struct {
	ID         string
	FileID     int64
	Title      string
	TotalScore float64
	ReportJSON string
	CreatedAt  time.Time
}

// Operation is one row of the CLI operation log.
type Operation struct {
	ID         int64
	Operation  string
	Parameters string
	Status     string
	StartedAt  time.Time
	FinishedAt sql.NullTime
}
