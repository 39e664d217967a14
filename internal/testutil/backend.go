package testutil

import (
	"context"
	"sync"

	"da-go/internal/da"
)

// MockBackend is a scriptable da.Backend. Each method returns the
// corresponding Resp/Err pair unless a Func override is set. Call counts
// are recorded per method. Safe for concurrent use.
type MockBackend struct {
	mu sync.Mutex

	SearchResp *da.FilesSearchResponse
	SearchErr  *da.APIError
	SearchFunc func(ctx context.Context, token string) (*da.FilesSearchResponse, *da.APIError)

	PresignResp *da.PresignResponse
	PresignErr  *da.APIError
	PresignFunc func(ctx context.Context, token string, req da.PresignRequest) (*da.PresignResponse, *da.APIError)

	RegisterResp *da.RegisterResponse
	RegisterErr  *da.APIError
	RegisterFunc func(ctx context.Context, token string, req da.RegisterRequest) (*da.RegisterResponse, *da.APIError)

	DeleteResp *da.DeleteResponse
	DeleteErr  *da.APIError
	DeleteFunc func(ctx context.Context, token string, id int64) (*da.DeleteResponse, *da.APIError)

	AnalysisResp *da.AnalysisResponse
	AnalysisErr  *da.APIError
	AnalysisFunc func(ctx context.Context, token string, req da.AnalysisRequest) (*da.AnalysisResponse, *da.APIError)

	ResultResp *da.RawAnalysisResult
	ResultErr  *da.APIError
	ResultFunc func(ctx context.Context, token string, id int64) (*da.RawAnalysisResult, *da.APIError)

	SearchCalls   int
	PresignCalls  int
	RegisterCalls int
	DeleteCalls   int
	AnalysisCalls int
	ResultCalls   int

	// Recorded arguments from the most recent call.
	LastPresignReq  da.PresignRequest
	LastRegisterReq da.RegisterRequest
	LastAnalysisReq da.AnalysisRequest
	LastDeleteID    int64
	LastResultID    int64
	LastToken       string
}

var _ da.Backend = (*MockBackend)(nil)

// NewMockBackend creates a MockBackend with no scripted responses.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

func (m *MockBackend) SearchFiles(ctx context.Context, token string) (*da.FilesSearchResponse, *da.APIError) {
	m.mu.Lock()
	m.SearchCalls++
	m.LastToken = token
	fn := m.SearchFunc
	resp, apiErr := m.SearchResp, m.SearchErr
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, token)
	}
	if aerr := tokenGate(token); aerr != nil {
		return nil, aerr
	}
	return resp, apiErr
}

func (m *MockBackend) PresignUpload(ctx context.Context, token string, req da.PresignRequest) (*da.PresignResponse, *da.APIError) {
	m.mu.Lock()
	m.PresignCalls++
	m.LastToken = token
	m.LastPresignReq = req
	fn := m.PresignFunc
	resp, apiErr := m.PresignResp, m.PresignErr
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, token, req)
	}
	if aerr := tokenGate(token); aerr != nil {
		return nil, aerr
	}
	return resp, apiErr
}

func (m *MockBackend) RegisterUpload(ctx context.Context, token string, req da.RegisterRequest) (*da.RegisterResponse, *da.APIError) {
	m.mu.Lock()
	m.RegisterCalls++
	m.LastToken = token
	m.LastRegisterReq = req
	fn := m.RegisterFunc
	resp, apiErr := m.RegisterResp, m.RegisterErr
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, token, req)
	}
	if aerr := tokenGate(token); aerr != nil {
		return nil, aerr
	}
	return resp, apiErr
}

func (m *MockBackend) DeleteFile(ctx context.Context, token string, id int64) (*da.DeleteResponse, *da.APIError) {
	m.mu.Lock()
	m.DeleteCalls++
	m.LastToken = token
	m.LastDeleteID = id
	fn := m.DeleteFunc
	resp, apiErr := m.DeleteResp, m.DeleteErr
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, token, id)
	}
	if aerr := tokenGate(token); aerr != nil {
		return nil, aerr
	}
	return resp, apiErr
}

func (m *MockBackend) RequestAnalysis(ctx context.Context, token string, req da.AnalysisRequest) (*da.AnalysisResponse, *da.APIError) {
	m.mu.Lock()
	m.AnalysisCalls++
	m.LastToken = token
	m.LastAnalysisReq = req
	fn := m.AnalysisFunc
	resp, apiErr := m.AnalysisResp, m.AnalysisErr
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, token, req)
	}
	if aerr := tokenGate(token); aerr != nil {
		return nil, aerr
	}
	return resp, apiErr
}

func (m *MockBackend) FetchResult(ctx context.Context, token string, id int64) (*da.RawAnalysisResult, *da.APIError) {
	m.mu.Lock()
	m.ResultCalls++
	m.LastToken = token
	m.LastResultID = id
	fn := m.ResultFunc
	resp, apiErr := m.ResultResp, m.ResultErr
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, token, id)
	}
	if aerr := tokenGate(token); aerr != nil {
		return nil, aerr
	}
	return resp, apiErr
}

// Calls returns the total call count across all methods.
func (m *MockBackend) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.SearchCalls + m.PresignCalls + m.RegisterCalls + m.DeleteCalls + m.AnalysisCalls + m.ResultCalls
}

// tokenGate mirrors the real client's pre-flight token check.
func tokenGate(token string) *da.APIError {
	if token == "" {
		return da.NotAuthenticatedError()
	}
	return nil
}
