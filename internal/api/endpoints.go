package api

import (
	"fmt"
	"strings"
)

// Endpoints builds backend URLs from the configured base. The base comes
// from external configuration and may or may not carry a trailing slash.
type Endpoints struct {
	base string
}

// NewEndpoints creates an Endpoints for the given base URL.
func NewEndpoints(base string) Endpoints {
	return Endpoints{base: strings.TrimRight(base, "/")}
}

func (e Endpoints) FilesSearch() string         { return e.base + "/files/search" }
func (e Endpoints) FilesUpload() string         { return e.base + "/files/upload" }
func (e Endpoints) FilesUploadMetadata() string { return e.base + "/files/upload/metadata" }

func (e Endpoints) FileDelete(id int64) string {
	return fmt.Sprintf("%s/files/%d", e.base, id)
}

func (e Endpoints) EvaluationRequest() string { return e.base + "/evaluation/request" }

func (e Endpoints) EvaluationResult(id int64) string {
	return fmt.Sprintf("%s/evaluation/results/%d", e.base, id)
}

// EvaluationDetail addresses one per-dimension report: market, financial,
// technical, or risk.
func (e Endpoints) EvaluationDetail(dimension string, id int64) string {
	return fmt.Sprintf("%s/evaluation/results/%s/%d", e.base, dimension, id)
}
