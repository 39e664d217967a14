package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"da-go/internal/api"
	"da-go/internal/archive"
	"da-go/internal/config"
	"da-go/internal/credentials"
	"da-go/internal/da"
	"da-go/internal/session"
	"da-go/internal/storage"
)

// DAApp is the application layer between the CLI and the client packages.
// It constructs all dependencies from config, exposes high-level operations
// that accept raw CLI arguments, and manages the archive lifecycle on Close.
type DAApp struct {
	cfg      *config.Config
	client   *api.Client
	session  *session.Provider
	store    *da.FileStore
	uploader *da.Uploader
	analysis *da.AnalysisClient
	deleter  *da.Deleter
	models   *da.ModelSelection
	archive  archive.Archive
	cache    *credentials.Cache
	enc      credentials.Encryptor
	op       *CLIOperation
	logger   da.Logger
	logFile  *os.File
}

// NewDAApp creates a fully wired DAApp from the given config.
// operation identifies the CLI command being run (e.g. "Upload", "Analyze").
// The caller must call Close when done.
func NewDAApp(cfg *config.Config, operation, parameters string) (*DAApp, error) {
	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("backend base_url not configured")
	}

	opID := time.Now().UTC().Format("20060102T150405Z")
	slogger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: slogger}

	httpClient := &http.Client{
		Timeout: time.Duration(cfg.Backend.TimeoutSec) * time.Second,
	}

	retry := api.Policy{
		MaxAttempts: cfg.Retry.MaxAttempts,
		Backoff:     time.Duration(cfg.Retry.BackoffMs) * time.Millisecond,
	}
	client := api.NewClient(httpClient, api.NewEndpoints(cfg.Backend.BaseURL), retry, da.UUIDGenerator{}, logger)

	sess := session.NewProvider(cfg.Identity.TokenURL, httpClient, logger)
	notifier := NewWriterNotifier(os.Stderr)
	models := da.NewModelSelection(cfg.Analysis.DefaultModel, cfg.Analysis.Models, logger)
	transfer := storage.NewHTTPTransfer(httpClient, logger)

	enc, err := credentials.NewEncryptorFromConfig(cfg.Credentials)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating credential encryptor: %w", err)
	}

	arch, err := archive.NewArchiveFromConfig(cfg.Archive, da.RealClock{}, da.UUIDGenerator{})
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating archive: %w", err)
	}

	return &DAApp{
		cfg:      cfg,
		client:   client,
		session:  sess,
		store:    da.NewFileStore(client, logger),
		uploader: da.NewUploader(client, transfer, sess, notifier, logger, cfg.Identity.UserID, cfg.Upload.Description),
		analysis: da.NewAnalysisClient(client, sess, models, notifier, logger),
		deleter:  da.NewDeleter(client, sess, notifier, logger),
		models:   models,
		archive:  arch,
		cache:    credentials.NewCache(cfg.Credentials.CachePath, enc),
		enc:      enc,
		op:       NewCLIOperation(operation, parameters),
		logger:   logger,
		logFile:  logFile,
	}, nil
}

// persistOperation saves the operation to the archive, giving it an
// auto-increment ID. This should only be called for backend-touching commands.
func (a *DAApp) persistOperation() error {
	if a.op.Persisted() {
		return nil // already persisted
	}
	id, err := a.archive.CreateOperation(a.op.Operation, a.op.Parameters)
	if err != nil {
		return fmt.Errorf("persisting operation: %w", err)
	}
	a.op.ID = id
	return nil
}

// Login stores the identity credential encrypted at rest and starts a
// session with it. On first use the key pair is generated, protected by
// the passphrase.
func (a *DAApp) Login(ctx context.Context, credential, passphrase string) error {
	if !a.enc.IsConfigured() {
		if err := a.enc.Setup(passphrase); err != nil {
			return fmt.Errorf("setting up credential store: %w", err)
		}
	}
	if err := a.cache.Save(credential); err != nil {
		return err
	}
	return a.session.SetSession(ctx, true, credential)
}

// Logout clears the cached credential and resets token state.
func (a *DAApp) Logout(ctx context.Context) error {
	if err := a.cache.Clear(); err != nil {
		return err
	}
	return a.session.SetSession(ctx, false, "")
}

// Authenticate establishes a session from the environment or the
// credential cache. DA_SESSION_TOKEN takes precedence; otherwise the
// cache is unlocked with the passphrase. Commands that need a token call
// this before their backend operation.
func (a *DAApp) Authenticate(ctx context.Context, passphrase string) error {
	if cred := os.Getenv("DA_SESSION_TOKEN"); cred != "" {
		return a.session.SetSession(ctx, true, cred)
	}

	if !a.cache.Exists() {
		return fmt.Errorf("not logged in: run 'da login' first")
	}
	cred, err := a.cache.Load(passphrase)
	if err != nil {
		return err
	}
	return a.session.SetSession(ctx, true, cred)
}

// LoggedIn reports whether a credential is available without unlocking it.
func (a *DAApp) LoggedIn() bool {
	return os.Getenv("DA_SESSION_TOKEN") != "" || a.cache.Exists()
}

// FetchFiles refreshes the file collection and returns the current list.
func (a *DAApp) FetchFiles(ctx context.Context) ([]da.File, error) {
	a.store.FetchFiles(ctx, a.session.Token().AccessToken)
	if msg := a.store.Err(); msg != "" {
		return nil, fmt.Errorf("%s", msg)
	}
	return a.store.Files(), nil
}

// FileStats returns aggregate statistics over the last fetched file list.
func (a *DAApp) FileStats() da.Aggregates {
	return a.store.Aggregates()
}

// Upload reads the file at rawPath and uploads it as a PDF candidate.
func (a *DAApp) Upload(ctx context.Context, rawPath string) (*da.UploadResult, error) {
	if err := a.persistOperation(); err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(rawPath)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	f, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	cand := &da.Candidate{
		Name:     filepath.Base(absPath),
		MimeType: mimeTypeForPath(absPath),
		Size:     info.Size(),
		Content:  f,
	}

	res := a.uploader.Upload(ctx, cand)
	if res == nil {
		return nil, fmt.Errorf("%s", a.uploader.Err())
	}
	return res, nil
}

// Delete removes the file with the given id from the backend.
func (a *DAApp) Delete(ctx context.Context, fileID int64) error {
	if err := a.persistOperation(); err != nil {
		return err
	}

	res := a.deleter.Delete(ctx, fileID)
	if res == nil {
		return fmt.Errorf("%s", a.deleter.Err())
	}
	return nil
}

// Analyze submits an evaluation job for the given stored file path.
// Zero timeoutSec and empty model fall back to configured defaults.
func (a *DAApp) Analyze(ctx context.Context, filePath, contestType string, timeoutSec int, model string) (*da.AnalysisResponse, error) {
	if err := a.persistOperation(); err != nil {
		return nil, err
	}

	if model != "" && !a.models.Select(model) {
		return nil, fmt.Errorf("unknown analysis model: %s", model)
	}

	res := a.analysis.RequestAnalysis(ctx, da.AnalysisRequest{
		FilePath:    filePath,
		ContestType: contestType,
		TimeoutSec:  timeoutSec,
	})
	if res == nil {
		return nil, fmt.Errorf("%s", a.analysis.Err().Detail)
	}
	return res, nil
}

// Result fetches the analysis result for a file and returns the
// normalized report. When save is true the report is also stored in the
// local archive and the archive id is returned.
func (a *DAApp) Result(ctx context.Context, fileID int64, save bool) (*da.AnalysisReport, string, error) {
	report := a.analysis.GetResult(ctx, fileID)
	if report == nil {
		return nil, "", fmt.Errorf("%s", a.analysis.Err().Detail)
	}

	var archiveID string
	if save {
		if err := a.persistOperation(); err != nil {
			return nil, "", err
		}
		raw, err := json.Marshal(report)
		if err != nil {
			return nil, "", fmt.Errorf("encoding report: %w", err)
		}
		archiveID, err = a.archive.SaveReport(fileID, report.Title, report.TotalScore, string(raw))
		if err != nil {
			return nil, "", fmt.Errorf("archiving report: %w", err)
		}
	}
	return report, archiveID, nil
}

// Detail fetches one per-dimension detail report as formatted JSON.
// dimension is one of "market", "financial", "technical", "risk".
func (a *DAApp) Detail(ctx context.Context, dimension string, fileID int64) (string, error) {
	token := a.session.Token().AccessToken

	var v any
	var err error
	switch dimension {
	case "market":
		v, err = a.client.MarketDetail(ctx, token, fileID)
	case "financial":
		v, err = a.client.FinancialDetail(ctx, token, fileID)
	case "technical":
		v, err = a.client.TechnicalDetail(ctx, token, fileID)
	case "risk":
		v, err = a.client.RiskDetail(ctx, token, fileID)
	default:
		return "", fmt.Errorf("unknown detail dimension: %s", dimension)
	}
	if err != nil {
		return "", err
	}

	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding detail report: %w", err)
	}
	return string(out), nil
}

// Reports lists the most recent archived reports.
func (a *DAApp) Reports(limit int) ([]*archive.StoredReport, error) {
	return a.archive.ListReports(limit)
}

// Report returns one archived report by archive id.
func (a *DAApp) Report(id string) (*archive.StoredReport, error) {
	return a.archive.GetReport(id)
}

// History returns the most recent CLI operations.
func (a *DAApp) History(limit int) ([]*archive.Operation, error) {
	return a.archive.ListOperations(limit)
}

// Models returns the current model selection.
func (a *DAApp) Models() *da.ModelSelection {
	return a.models
}

// SetFailed marks the operation record as failed. Close stamps the final
// status for persisted operations.
func (a *DAApp) SetFailed() {
	a.op.Status = "error"
}

// Close finalizes the operation record and closes all resources.
func (a *DAApp) Close() error {
	var firstErr error

	if a.op.Persisted() {
		if err := a.archive.FinishOperation(a.op.ID, a.op.Status); err != nil {
			firstErr = fmt.Errorf("finishing operation: %w", err)
		}
	}

	if err := a.archive.Close(); err != nil {
		if firstErr == nil {
			firstErr = fmt.Errorf("closing archive: %w", err)
		}
	}

	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}

// mimeTypeForPath maps the file extension to a MIME type. Anything that
// is not a PDF falls through to octet-stream and is rejected by upload
// validation with the user-facing message.
func mimeTypeForPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return "application/pdf"
	}
	return "application/octet-stream"
}
