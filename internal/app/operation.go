package app

// CLIOperation tracks a CLI command invocation for the local operation log.
// Operations are created in memory with ID=0. Only commands that touch the
// backend persist them (giving them an auto-increment ID from the archive).
type CLIOperation struct {
	ID         int64
	Operation  string
	Parameters string
	Status     string // "success" or "error"
}

// NewCLIOperation creates a new in-memory operation record.
func NewCLIOperation(operation, parameters string) *CLIOperation {
	return &CLIOperation{
		Operation:  operation,
		Parameters: parameters,
		Status:     "success",
	}
}

// Persisted returns true if this operation has been saved to the archive.
func (op *CLIOperation) Persisted() bool {
	return op.ID != 0
}
