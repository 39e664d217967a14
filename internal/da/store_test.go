package da_test

import (
	"context"
	"sync"
	"testing"

	"da-go/internal/da"
	"da-go/internal/testutil"
)

func searchResponse(files ...da.File) *da.FilesSearchResponse {
	return &da.FilesSearchResponse{Success: true, Results: files}
}

func validFile(id int64) da.File {
	return da.File{
		ID:       id,
		FileName: "doc.pdf",
		FilePath: "uploads/doc.pdf",
		MimeType: "application/pdf",
		FileSize: 1024,
		Status:   da.StatusCompleted,
	}
}

func TestFileStore_FetchFiles(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the collection on success", func(t *testing.T) {
		backend := testutil.NewMockBackend()
		backend.SearchResp = searchResponse(validFile(1), validFile(2))
		store := da.NewFileStore(backend, nil)

		store.FetchFiles(ctx, "tok")

		files := store.Files()
		if len(files) != 2 {
			t.Fatalf("len(Files()) = %d, want 2", len(files))
		}
		if store.Err() != "" {
			t.Errorf("Err() = %q, want empty", store.Err())
		}
		ok := store.LastFetchSuccessful()
		if ok == nil || !*ok {
			t.Errorf("LastFetchSuccessful() = %v, want true", ok)
		}

		// A later fetch replaces wholesale.
		backend.SearchResp = searchResponse(validFile(3))
		store.FetchFiles(ctx, "tok")
		files = store.Files()
		if len(files) != 1 || files[0].ID != 3 {
			t.Errorf("Files() after refetch = %+v, want single id 3", files)
		}
	})

	t.Run("empty token records Not authenticated without clearing files", func(t *testing.T) {
		backend := testutil.NewMockBackend()
		backend.SearchResp = searchResponse(validFile(1))
		store := da.NewFileStore(backend, nil)
		store.FetchFiles(ctx, "tok")

		store.FetchFiles(ctx, "")

		if got := store.Err(); got != "Not authenticated." {
			t.Errorf("Err() = %q, want %q", got, "Not authenticated.")
		}
		if len(store.Files()) != 1 {
			t.Errorf("cached files lost on failed fetch")
		}
	})

	t.Run("success false yields fixed message and false outcome", func(t *testing.T) {
		backend := testutil.NewMockBackend()
		backend.SearchResp = &da.FilesSearchResponse{Success: false}
		store := da.NewFileStore(backend, nil)

		store.FetchFiles(ctx, "tok")

		if got := store.Err(); got != "Failed to fetch files: API reported failure." {
			t.Errorf("Err() = %q", got)
		}
		ok := store.LastFetchSuccessful()
		if ok == nil || *ok {
			t.Errorf("LastFetchSuccessful() = %v, want false", ok)
		}
	})

	t.Run("api error carries backend detail", func(t *testing.T) {
		backend := testutil.NewMockBackend()
		backend.SearchErr = &da.APIError{Detail: "boom", StatusCode: 500}
		store := da.NewFileStore(backend, nil)

		store.FetchFiles(ctx, "tok")

		if got := store.Err(); got != "boom" {
			t.Errorf("Err() = %q, want %q", got, "boom")
		}
		if store.LastFetchSuccessful() != nil {
			t.Error("LastFetchSuccessful() should stay nil on transport-level error")
		}
	})

	t.Run("validation failure leaves files untouched", func(t *testing.T) {
		backend := testutil.NewMockBackend()
		backend.SearchResp = searchResponse(validFile(1))
		store := da.NewFileStore(backend, nil)
		store.FetchFiles(ctx, "tok")

		bad := validFile(2)
		bad.FileName = ""
		backend.SearchResp = searchResponse(bad)
		store.FetchFiles(ctx, "tok")

		if store.Err() == "" {
			t.Error("expected validation error")
		}
		files := store.Files()
		if len(files) != 1 || files[0].ID != 1 {
			t.Errorf("Files() = %+v, want previous collection intact", files)
		}
	})

	t.Run("duplicate ids collapse to the first occurrence", func(t *testing.T) {
		backend := testutil.NewMockBackend()
		first := validFile(7)
		first.FileName = "first.pdf"
		second := validFile(7)
		second.FileName = "second.pdf"
		backend.SearchResp = searchResponse(first, second, validFile(8))
		store := da.NewFileStore(backend, nil)

		store.FetchFiles(ctx, "tok")

		files := store.Files()
		if len(files) != 2 {
			t.Fatalf("len(Files()) = %d, want 2", len(files))
		}
		if files[0].ID != 7 || files[0].FileName != "first.pdf" {
			t.Errorf("first occurrence did not win: %+v", files[0])
		}
	})

	t.Run("concurrent fetch is a no-op while one is in flight", func(t *testing.T) {
		backend := testutil.NewMockBackend()
		release := make(chan struct{})
		started := make(chan struct{})
		var once sync.Once
		backend.SearchFunc = func(ctx context.Context, token string) (*da.FilesSearchResponse, *da.APIError) {
			once.Do(func() { close(started) })
			<-release
			return searchResponse(validFile(1)), nil
		}
		store := da.NewFileStore(backend, nil)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.FetchFiles(ctx, "tok")
		}()

		<-started
		if !store.Loading() {
			t.Error("Loading() = false while fetch in flight")
		}

		// Second call must return immediately without a backend call.
		store.FetchFiles(ctx, "tok")

		close(release)
		wg.Wait()

		if backend.SearchCalls != 1 {
			t.Errorf("SearchCalls = %d, want 1", backend.SearchCalls)
		}
		if store.Loading() {
			t.Error("Loading() = true after fetch settled")
		}
	})
}

func TestFileStore_Aggregates(t *testing.T) {
	backend := testutil.NewMockBackend()
	a := validFile(1)
	a.FileSize = 1048576
	a.Status = da.StatusCompleted
	b := validFile(2)
	b.FileSize = 524288
	b.Status = da.StatusProcessing
	c := validFile(3)
	c.FileSize = 0
	c.Status = da.StatusPending
	backend.SearchResp = searchResponse(a, b, c)

	store := da.NewFileStore(backend, nil)
	store.FetchFiles(context.Background(), "tok")

	agg := store.Aggregates()
	if agg.TotalCount != 3 {
		t.Errorf("TotalCount = %d, want 3", agg.TotalCount)
	}
	if agg.CompletedCount != 1 {
		t.Errorf("CompletedCount = %d, want 1", agg.CompletedCount)
	}
	if agg.ProcessingCount != 1 {
		t.Errorf("ProcessingCount = %d, want 1", agg.ProcessingCount)
	}
	if agg.TotalSizeMiB != 1.5 {
		t.Errorf("TotalSizeMiB = %v, want 1.5", agg.TotalSizeMiB)
	}
}

func TestFileStore_Files_ReturnsCopy(t *testing.T) {
	backend := testutil.NewMockBackend()
	backend.SearchResp = searchResponse(validFile(1))
	store := da.NewFileStore(backend, nil)
	store.FetchFiles(context.Background(), "tok")

	files := store.Files()
	files[0].FileName = "mutated.pdf"

	if store.Files()[0].FileName != "doc.pdf" {
		t.Error("Files() exposes internal slice")
	}
}
