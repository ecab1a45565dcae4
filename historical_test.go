package cartera

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fgalarza/cartera/date"
)

func addValued(t *testing.T, s *Store, ticker string, value int64, on date.Date) Position {
	t.Helper()
	p := testPosition()
	p.Ticker = ticker
	if err := s.AddPosition(MainBook, &p); err != nil {
		t.Fatal(err)
	}
	if err := s.SetValuation(MainBook, p.ID, decimal.NewFromInt(value), on); err != nil {
		t.Fatal(err)
	}
	return p
}

func ledgerKeys(t *testing.T, s *Store) []string {
	t.Helper()
	snaps, err := s.Snapshots()
	if err != nil {
		t.Fatal(err)
	}
	keys := make([]string, 0, len(snaps))
	for _, snap := range snaps {
		keys = append(keys, snap.ValuationDate.String()+"#"+snap.Ticker+"#"+snap.CurrentValue.String())
	}
	return keys
}

func TestAppendHistoricalCaptures(t *testing.T) {
	s := newTestStore(t)
	on := date.MustParse("2026-04-10")
	p := addValued(t, s, "AAPL", 105, on)

	if err := s.AppendHistorical(); err != nil {
		t.Fatal(err)
	}

	snaps, err := s.Snapshots()
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 1 {
		t.Fatalf("got %d snapshots, want 1", len(snaps))
	}
	snap := snaps[0]
	if snap.ID != p.ID || snap.Ticker != "AAPL" || snap.ValuationDate != on {
		t.Errorf("snapshot = %+v", snap)
	}
	if !snap.CurrentValue.Equal(decimal.NewFromInt(105)) {
		t.Errorf("snapshot value = %s", snap.CurrentValue)
	}
}

func TestAppendHistoricalIdempotent(t *testing.T) {
	s := newTestStore(t)
	on := date.MustParse("2026-04-10")
	addValued(t, s, "AAPL", 105, on)
	addValued(t, s, "GGAL", 40, on)

	if err := s.AppendHistorical(); err != nil {
		t.Fatal(err)
	}
	first := ledgerKeys(t, s)

	if err := s.AppendHistorical(); err != nil {
		t.Fatal(err)
	}
	second := ledgerKeys(t, s)

	if len(first) != len(second) {
		t.Fatalf("ledger grew from %d to %d rows", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("row %d changed: %q -> %q", i, first[i], second[i])
		}
	}
}

func TestAppendHistoricalAccumulates(t *testing.T) {
	s := newTestStore(t)
	p := addValued(t, s, "AAPL", 100, date.MustParse("2026-04-10"))
	if err := s.AppendHistorical(); err != nil {
		t.Fatal(err)
	}

	// A refresh moves the live valuation forward; the next capture adds a
	// second ledger row instead of replacing the first.
	if err := s.SetValuation(MainBook, p.ID, decimal.NewFromInt(110), date.MustParse("2026-04-11")); err != nil {
		t.Fatal(err)
	}
	if err := s.AppendHistorical(); err != nil {
		t.Fatal(err)
	}

	snaps, err := s.Snapshots()
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 2 {
		t.Fatalf("got %d snapshots, want 2", len(snaps))
	}
	if !snaps[0].CurrentValue.Equal(decimal.NewFromInt(100)) || !snaps[1].CurrentValue.Equal(decimal.NewFromInt(110)) {
		t.Errorf("ledger values = %s, %s", snaps[0].CurrentValue, snaps[1].CurrentValue)
	}
}

func TestAppendHistoricalSkipsUnvalued(t *testing.T) {
	s := newTestStore(t)
	valued := addValued(t, s, "AAPL", 105, date.MustParse("2026-04-10"))

	// A lot whose pricing failed through the whole cycle has no valuation
	// and must not land in the ledger.
	unvalued := testPosition()
	unvalued.Ticker = "BETA"
	if err := s.AddPosition(MainBook, &unvalued); err != nil {
		t.Fatal(err)
	}

	if err := s.AppendHistorical(); err != nil {
		t.Fatal(err)
	}
	snaps, err := s.Snapshots()
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 1 || snaps[0].ID != valued.ID {
		t.Fatalf("ledger = %+v, want only the valued lot", snaps)
	}

	// Idempotent with the unvalued lot still around.
	if err := s.AppendHistorical(); err != nil {
		t.Fatal(err)
	}
	if snaps, err = s.Snapshots(); err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 1 {
		t.Errorf("second run grew the ledger to %d rows", len(snaps))
	}
}

func TestSnapshotsSince(t *testing.T) {
	s := newTestStore(t)
	p := addValued(t, s, "AAPL", 100, date.MustParse("2026-04-10"))
	if err := s.AppendHistorical(); err != nil {
		t.Fatal(err)
	}
	if err := s.SetValuation(MainBook, p.ID, decimal.NewFromInt(110), date.MustParse("2026-04-11")); err != nil {
		t.Fatal(err)
	}
	if err := s.AppendHistorical(); err != nil {
		t.Fatal(err)
	}

	snaps, err := s.Snapshots(Since(date.MustParse("2026-04-10")))
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 1 || snaps[0].ValuationDate != date.MustParse("2026-04-11") {
		t.Errorf("Since filter returned %d rows", len(snaps))
	}
}
