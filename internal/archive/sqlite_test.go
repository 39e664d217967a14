package archive_test

import (
	"testing"
	"time"

	"da-go/internal/archive"
	"da-go/internal/testutil"
)

func TestSQLiteArchive_Reports(t *testing.T) {
	t.Run("save and get round-trip", func(t *testing.T) {
		a := testutil.NewTestArchive(t)

		id, err := a.SaveReport(42, "Startup pitch", 85.5, `{"total_score":85.5}`)
		if err != nil {
			t.Fatalf("SaveReport() error = %v", err)
		}
		if id == "" {
			t.Fatal("SaveReport() returned empty id")
		}

		got, err := a.GetReport(id)
		if err != nil {
			t.Fatalf("GetReport() error = %v", err)
		}
		if got == nil {
			t.Fatal("GetReport() = nil for saved report")
		}
		if got.FileID != 42 || got.Title != "Startup pitch" || got.TotalScore != 85.5 {
			t.Errorf("report = %+v", got)
		}
		if got.ReportJSON != `{"total_score":85.5}` {
			t.Errorf("ReportJSON = %q", got.ReportJSON)
		}
	})

	t.Run("get absent report returns nil", func(t *testing.T) {
		a := testutil.NewTestArchive(t)

		got, err := a.GetReport("missing")
		if err != nil {
			t.Fatalf("GetReport() error = %v", err)
		}
		if got != nil {
			t.Errorf("GetReport() = %+v, want nil", got)
		}
	})

	t.Run("list returns newest first", func(t *testing.T) {
		clock := testutil.FixedClock()
		a, err := archive.NewSQLiteArchive(":memory:", clock, testutil.NewStubIDGenerator())
		if err != nil {
			t.Fatalf("NewSQLiteArchive() error = %v", err)
		}
		defer a.Close()

		if _, err := a.SaveReport(1, "first", 10, "{}"); err != nil {
			t.Fatalf("SaveReport() error = %v", err)
		}
		clock.Advance(time.Minute)
		if _, err := a.SaveReport(2, "second", 20, "{}"); err != nil {
			t.Fatalf("SaveReport() error = %v", err)
		}
		clock.Advance(time.Minute)
		if _, err := a.SaveReport(3, "third", 30, "{}"); err != nil {
			t.Fatalf("SaveReport() error = %v", err)
		}

		reports, err := a.ListReports(2)
		if err != nil {
			t.Fatalf("ListReports() error = %v", err)
		}
		if len(reports) != 2 {
			t.Fatalf("len(reports) = %d, want 2", len(reports))
		}
		if reports[0].Title != "third" || reports[1].Title != "second" {
			t.Errorf("order = %q, %q", reports[0].Title, reports[1].Title)
		}
	})
}

func TestSQLiteArchive_Operations(t *testing.T) {
	t.Run("create assigns sequential ids", func(t *testing.T) {
		a := testutil.NewTestArchive(t)

		id1, err := a.CreateOperation("Upload", "doc.pdf")
		if err != nil {
			t.Fatalf("CreateOperation() error = %v", err)
		}
		id2, err := a.CreateOperation("Delete", "12")
		if err != nil {
			t.Fatalf("CreateOperation() error = %v", err)
		}
		if id1 <= 0 || id2 != id1+1 {
			t.Errorf("ids = %d, %d", id1, id2)
		}
	})

	t.Run("finish stamps status and finished_at", func(t *testing.T) {
		a := testutil.NewTestArchive(t)

		id, err := a.CreateOperation("Upload", "doc.pdf")
		if err != nil {
			t.Fatalf("CreateOperation() error = %v", err)
		}
		if err := a.FinishOperation(id, "error"); err != nil {
			t.Fatalf("FinishOperation() error = %v", err)
		}

		ops, err := a.ListOperations(10)
		if err != nil {
			t.Fatalf("ListOperations() error = %v", err)
		}
		if len(ops) != 1 {
			t.Fatalf("len(ops) = %d, want 1", len(ops))
		}
		op := ops[0]
		if op.Status != "error" {
			t.Errorf("Status = %q, want error", op.Status)
		}
		if !op.FinishedAt.Valid {
			t.Error("FinishedAt not set")
		}
	})

	t.Run("unfinished operations have null finished_at", func(t *testing.T) {
		a := testutil.NewTestArchive(t)

		if _, err := a.CreateOperation("FetchFiles", ""); err != nil {
			t.Fatalf("CreateOperation() error = %v", err)
		}

		ops, err := a.ListOperations(10)
		if err != nil {
			t.Fatalf("ListOperations() error = %v", err)
		}
		if ops[0].FinishedAt.Valid {
			t.Error("FinishedAt set for unfinished operation")
		}
		if ops[0].Status != "success" {
			t.Errorf("default Status = %q", ops[0].Status)
		}
	})

	t.Run("list returns newest first with limit", func(t *testing.T) {
		a := testutil.NewTestArchive(t)

		for _, name := range []string{"Upload", "Analyze", "Delete"} {
			if _, err := a.CreateOperation(name, ""); err != nil {
				t.Fatalf("CreateOperation(%s) error = %v", name, err)
			}
		}

		ops, err := a.ListOperations(2)
		if err != nil {
			t.Fatalf("ListOperations() error = %v", err)
		}
		if len(ops) != 2 {
			t.Fatalf("len(ops) = %d, want 2", len(ops))
		}
		if ops[0].Operation != "Delete" || ops[1].Operation != "Analyze" {
			t.Errorf("order = %q, %q", ops[0].Operation, ops[1].Operation)
		}
	})
}
