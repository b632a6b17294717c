package processor

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/niyoseris/roller/internal/category"
	"github.com/niyoseris/roller/internal/normalizer"
	"github.com/niyoseris/roller/internal/rollwiki"
	"github.com/niyoseris/roller/internal/storage"
)

type fakeSubmitter struct {
	outcome rollwiki.Outcome
	err     error
	calls   []string
}

func (f *fakeSubmitter) Submit(_ context.Context, url, _ string) (rollwiki.Outcome, error) {
	f.calls = append(f.calls, url)
	return f.outcome, f.err
}

type fakeSummary struct {
	summary string
	err     error
}

func (f *fakeSummary) Summary(context.Context, string) (string, error) {
	return f.summary, f.err
}

type fakeArchive struct {
	rows [][4]string
}

func (f *fakeArchive) SaveSubmission(trend, url, cat, outcome string) error {
	f.rows = append(f.rows, [4]string{trend, url, cat, outcome})
	return nil
}

func newTestProcessor(t *testing.T, sub *fakeSubmitter, arch Archiver) (*Processor, storage.Ledger) {
	t.Helper()
	ledger, err := storage.NewFileLedger(filepath.Join(t.TempDir(), "urls.json"))
	if err != nil {
		t.Fatalf("NewFileLedger error: %v", err)
	}

	n := normalizer.New("https://en.wikipedia.org")
	chain := category.NewChain("Culture", time.Second, &category.KeywordResolver{})
	p := New(n, chain, &fakeSummary{summary: "professional basketball league"}, sub, ledger, arch)
	return p, ledger
}

func TestProcessNewSuccessRecordsLedger(t *testing.T) {
	sub := &fakeSubmitter{outcome: rollwiki.OutcomeNewSuccess}
	arch := &fakeArchive{}
	p, ledger := newTestProcessor(t, sub, arch)

	status, err := p.Process(context.Background(), "NBA")
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if status != StatusSubmitted {
		t.Fatalf("status = %v, want submitted", status)
	}

	const wantURL = "https://en.wikipedia.org/wiki/NBA"
	if len(sub.calls) != 1 || sub.calls[0] != wantURL {
		t.Fatalf("submit calls = %v, want [%s]", sub.calls, wantURL)
	}
	if !ledger.Contains(wantURL) {
		t.Fatalf("ledger should contain %s", wantURL)
	}
	if len(arch.rows) != 1 || arch.rows[0][3] != "new_success" {
		t.Fatalf("archive rows = %v", arch.rows)
	}
	// 摘要里有 basketball，关键词表应判为 Sports
	if arch.rows[0][2] != "Sports" {
		t.Fatalf("category = %q, want Sports", arch.rows[0][2])
	}
}

func TestProcessAlreadyExistsAlsoRecordsLedger(t *testing.T) {
	sub := &fakeSubmitter{outcome: rollwiki.OutcomeAlreadyExists}
	p, ledger := newTestProcessor(t, sub, nil)

	status, err := p.Process(context.Background(), "NBA")
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if status != StatusSubmitted {
		t.Fatalf("status = %v, want submitted", status)
	}
	if !ledger.Contains("https://en.wikipedia.org/wiki/NBA") {
		t.Fatalf("already_exists must record the ledger like new_success")
	}
}

func TestProcessLocalDuplicateShortCircuits(t *testing.T) {
	sub := &fakeSubmitter{outcome: rollwiki.OutcomeNewSuccess}
	p, ledger := newTestProcessor(t, sub, nil)

	if err := ledger.Record("https://en.wikipedia.org/wiki/NBA"); err != nil {
		t.Fatalf("Record error: %v", err)
	}

	status, err := p.Process(context.Background(), "NBA")
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if status != StatusSkipped {
		t.Fatalf("status = %v, want skipped", status)
	}
	if len(sub.calls) != 0 {
		t.Fatalf("submit should not be called for local duplicate, calls = %v", sub.calls)
	}
}

func TestProcessNotFoundLeavesLedgerUntouched(t *testing.T) {
	sub := &fakeSubmitter{outcome: rollwiki.OutcomeNotFound}
	p, ledger := newTestProcessor(t, sub, nil)

	status, err := p.Process(context.Background(), "Talus Labs")
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if status != StatusFailed {
		t.Fatalf("status = %v, want failed", status)
	}
	if ledger.Count() != 0 {
		t.Fatalf("ledger should stay empty after not_found")
	}

	// 下个周期同样的热搜会再尝试一次，并再次得到相同结果
	status, err = p.Process(context.Background(), "Talus Labs")
	if err != nil || status != StatusFailed {
		t.Fatalf("retry = (%v, %v), want (failed, nil)", status, err)
	}
	if len(sub.calls) != 2 {
		t.Fatalf("not_found trends must be re-attempted, calls = %d", len(sub.calls))
	}
}

func TestProcessTransientErrorLeavesLedgerUntouched(t *testing.T) {
	sub := &fakeSubmitter{outcome: rollwiki.OutcomeTransientError, err: errors.New("connection reset")}
	p, ledger := newTestProcessor(t, sub, nil)

	status, err := p.Process(context.Background(), "NBA")
	if err != nil {
		t.Fatalf("transient submit errors must not propagate, got %v", err)
	}
	if status != StatusFailed {
		t.Fatalf("status = %v, want failed", status)
	}
	if ledger.Count() != 0 {
		t.Fatalf("ledger should stay empty after transient error")
	}
}

type failingLedger struct {
	storage.Ledger
}

func (f *failingLedger) Contains(string) bool { return false }

func (f *failingLedger) Record(string) error {
	return storage.ErrLedger
}

func TestProcessLedgerFailureIsFatal(t *testing.T) {
	sub := &fakeSubmitter{outcome: rollwiki.OutcomeNewSuccess}
	n := normalizer.New("https://en.wikipedia.org")
	chain := category.NewChain("Culture", time.Second)
	p := New(n, chain, nil, sub, &failingLedger{}, nil)

	_, err := p.Process(context.Background(), "NBA")
	if !errors.Is(err, storage.ErrLedger) {
		t.Fatalf("expected ErrLedger to propagate, got %v", err)
	}
}
