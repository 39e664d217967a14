package da

import "encoding/json"

// FileStatus is the analysis status of an uploaded file. The backend has
// shipped at least three value sets over time (an English enum, Korean
// labels, and the field simply missing), so every raw value funnels through
// ParseFileStatus and unrecognized input becomes StatusUnknown instead of
// leaking raw strings into the rest of the client.
type FileStatus string

const (
	StatusUnknown    FileStatus = "unknown"
	StatusPending    FileStatus = "pending"
	StatusProcessing FileStatus = "processing"
	StatusCompleted  FileStatus = "completed"
	StatusFailed     FileStatus = "failed"
)

// ParseFileStatus maps a raw status value to the enum. The Korean labels
// are the legacy value set still returned by older backend rows.
func ParseFileStatus(s string) FileStatus {
	switch s {
	case "pending", "대기중":
		return StatusPending
	case "processing", "분석중":
		return StatusProcessing
	case "completed", "완료":
		return StatusCompleted
	case "failed":
		return StatusFailed
	default:
		return StatusUnknown
	}
}

func (s *FileStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ParseFileStatus(raw)
	return nil
}
