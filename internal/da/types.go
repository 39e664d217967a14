package da

import "io"

// File is one entry in the user's file collection. Identity is ID; the
// store guarantees ID uniqueness within a fetched collection. Timestamps
// are carried as the backend's strings, not parsed.
type File struct {
	ID          int64      `json:"id"`
	FileName    string     `json:"file_name"`
	FilePath    string     `json:"file_path"`
	MimeType    string     `json:"mime_type,omitempty"`
	FileSize    int64      `json:"file_size,omitempty"`
	CreatedAt   string     `json:"created_at,omitempty"`
	UpdatedAt   string     `json:"updated_at,omitempty"`
	LatestJobID *int64     `json:"latest_job_id,omitempty"`
	Status      FileStatus `json:"status,omitempty"`
}

// FilesSearchResponse is the body of GET /files/search. Success false with
// a 200 status is a logical failure, distinct from transport errors.
type FilesSearchResponse struct {
	Success bool   `json:"success"`
	Results []File `json:"results"`
}

// Candidate describes a local file offered for upload. Content is consumed
// exactly once, during the transfer step.
type Candidate struct {
	Name     string
	MimeType string
	Size     int64
	Content  io.Reader
}

// PresignRequest is the body of POST /files/upload.
type PresignRequest struct {
	UserID      string `json:"user_id"`
	FileName    string `json:"file_name"`
	MimeType    string `json:"mime_type"`
	FileSize    int64  `json:"file_size"`
	Description string `json:"description"`
}

// PresignResponse is the write capability issued per upload attempt. It is
// consumed once to transfer bytes to storage, then discarded.
type PresignResponse struct {
	PresignedURL string `json:"presigned_url"`
	FileURL      string `json:"file_url"`
	Key          string `json:"key"`
}

// RegisterRequest is the body of POST /files/upload/metadata. The size and
// key fields are intentionally duplicated under both their old and new
// names; the backend still reads both.
type RegisterRequest struct {
	UserID    string `json:"user_id"`
	FileName  string `json:"file_name"`
	MimeType  string `json:"mime_type"`
	Key       string `json:"key"`
	FileURL   string `json:"file_url"`
	Size      int64  `json:"size"`
	FileSize  int64  `json:"file_size"`
	S3Key     string `json:"s3_key"`
	S3FileURL string `json:"s3_file_url"`

	Description string `json:"description"`
}

// RegisterResponse is the body returned by metadata registration.
type RegisterResponse struct {
	Message string `json:"message"`
	FileID  int64  `json:"file_id"`
}

// DeleteResponse is the body of DELETE /files/{id}.
type DeleteResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	DeletedFileID int64  `json:"deleted_file_id"`
}

// AnalysisRequest is the body of POST /evaluation/request. Zero TimeoutSec
// and empty AnalysisModel are filled in with defaults by the client.
type AnalysisRequest struct {
	FilePath      string `json:"file_path"`
	ContestType   string `json:"contest_type"`
	TimeoutSec    int    `json:"timeout_sec"`
	AnalysisModel string `json:"analysis_model"`
}

// AnalysisResponse is the body returned by an accepted evaluation job.
type AnalysisResponse struct {
	ReportJSON       string `json:"report_json"`
	SectionsAnalyzed int    `json:"sections_analyzed"`
	ContestType      string `json:"contest_type"`
}
