package cartera

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fgalarza/cartera/date"
)

func newTestStore(t *testing.T, mirrors ...Book) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cartera.db"), mirrors...)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testPosition() Position {
	return Position{
		PurchaseDate: date.MustParse("2026-01-15"),
		Category:     Accion,
		Ticker:       "AAPL",
		Quantity:     decimal.RequireFromString("10.123456789"),
		Principal:    decimal.RequireFromString("1000.55"),
	}
}

func TestPositionRoundTrip(t *testing.T) {
	s := newTestStore(t)
	p := testPosition()
	if err := s.AddPosition(MainBook, &p); err != nil {
		t.Fatal(err)
	}
	if p.ID == 0 {
		t.Fatal("AddPosition did not assign an id")
	}

	got, err := s.Position(MainBook, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != p.ID || got.PurchaseDate != p.PurchaseDate || got.Category != p.Category || got.Ticker != p.Ticker {
		t.Errorf("read back %+v, want %+v", got, p)
	}
	if !got.Quantity.Equal(p.Quantity) {
		t.Errorf("quantity = %s, want %s", got.Quantity, p.Quantity)
	}
	if !got.Principal.Equal(p.Principal) {
		t.Errorf("principal = %s, want %s", got.Principal, p.Principal)
	}
}

func TestUnvaluedPositionRoundTrip(t *testing.T) {
	s := newTestStore(t)
	// A lot whose add-time pricing failed is stored without a valuation.
	p := testPosition()
	if err := s.AddPosition(MainBook, &p); err != nil {
		t.Fatal(err)
	}

	got, err := s.Position(MainBook, p.ID)
	if err != nil {
		t.Fatalf("reading back an unvalued lot: %v", err)
	}
	if !got.ValuationDate.IsZero() {
		t.Errorf("valuation date = %s, want zero", got.ValuationDate)
	}
	if !got.CurrentValue.Equal(decimal.Zero) {
		t.Errorf("current value = %s, want 0", got.CurrentValue)
	}

	// The category scan the updater relies on must see the lot too.
	byCat, err := s.PositionsByCategory(MainBook, Accion)
	if err != nil {
		t.Fatalf("PositionsByCategory with an unvalued lot: %v", err)
	}
	if len(byCat) != 1 {
		t.Errorf("got %d positions, want 1", len(byCat))
	}
}

func TestUpdatePositionKeepsValuation(t *testing.T) {
	s := newTestStore(t)
	p := testPosition()
	if err := s.AddPosition(MainBook, &p); err != nil {
		t.Fatal(err)
	}
	on := date.MustParse("2026-02-02")
	if err := s.SetValuation(MainBook, p.ID, decimal.NewFromInt(105), on); err != nil {
		t.Fatal(err)
	}

	p.Quantity = decimal.NewFromInt(20)
	if err := s.UpdatePosition(MainBook, p); err != nil {
		t.Fatal(err)
	}

	got, err := s.Position(MainBook, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Quantity.Equal(decimal.NewFromInt(20)) {
		t.Errorf("quantity = %s, want 20", got.Quantity)
	}
	if !got.CurrentValue.Equal(decimal.NewFromInt(105)) || got.ValuationDate != on {
		t.Errorf("valuation clobbered: %s at %s", got.CurrentValue, got.ValuationDate)
	}
}

func TestRecordNotFound(t *testing.T) {
	s := newTestStore(t)
	if err := s.DeletePosition(MainBook, 42); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("DeletePosition error = %v, want ErrRecordNotFound", err)
	}
	if _, err := s.Position(MainBook, 42); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("Position error = %v, want ErrRecordNotFound", err)
	}
	if err := s.UpdatePosition(MainBook, Position{ID: 42, Category: Fund}); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("UpdatePosition error = %v, want ErrRecordNotFound", err)
	}
	if err := s.SetValuation(MainBook, 42, decimal.NewFromInt(1), date.Today()); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("SetValuation error = %v, want ErrRecordNotFound", err)
	}
}

func TestPositionsByCategory(t *testing.T) {
	s := newTestStore(t)
	for _, c := range []Category{Fund, Accion, Accion, USD} {
		p := testPosition()
		p.Category = c
		if err := s.AddPosition(MainBook, &p); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		category Category
		want     int
	}{
		{Fund, 1}, {Cedear, 0}, {Accion, 2}, {USD, 1},
	}
	for _, tt := range tests {
		t.Run(tt.category.String(), func(t *testing.T) {
			got, err := s.PositionsByCategory(MainBook, tt.category)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d positions, want %d", len(got), tt.want)
			}
			for _, p := range got {
				if p.Category != tt.category {
					t.Errorf("position %d has category %v", p.ID, p.Category)
				}
			}
		})
	}
}

func TestMirrorBooks(t *testing.T) {
	s := newTestStore(t, "jes")

	if got := s.Books(); len(got) != 2 || got[0] != MainBook || got[1] != Book("jes") {
		t.Fatalf("Books() = %v", got)
	}

	main, mirror := testPosition(), testPosition()
	if err := s.AddPosition(MainBook, &main); err != nil {
		t.Fatal(err)
	}
	if err := s.AddPosition(Book("jes"), &mirror); err != nil {
		t.Fatal(err)
	}

	// The books are independent tables: deleting from one leaves the other.
	if err := s.DeletePosition(Book("jes"), mirror.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Position(MainBook, main.ID); err != nil {
		t.Errorf("main book row lost: %v", err)
	}

	// A mirror valuation for a row the mirror never had is not found.
	err := s.SetValuation(Book("jes"), main.ID, decimal.NewFromInt(1), date.Today())
	if !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("SetValuation error = %v, want ErrRecordNotFound", err)
	}
}

func TestOpenRejectsBadBookName(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "x.db"), Book("no; drop"))
	if err == nil {
		t.Fatal("Open accepted an invalid book name")
	}
}

func TestReadWithDivisor(t *testing.T) {
	s := newTestStore(t)
	p := testPosition()
	p.Quantity = decimal.NewFromInt(100)
	p.Principal = decimal.NewFromInt(3000)
	if err := s.AddPosition(MainBook, &p); err != nil {
		t.Fatal(err)
	}

	got, err := s.Positions(MainBook, WithDivisor(2))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d positions", len(got))
	}
	if !got[0].Quantity.Equal(decimal.NewFromInt(50)) || !got[0].Principal.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("divided read = qty %s, principal %s", got[0].Quantity, got[0].Principal)
	}
}

func TestInflationCRUD(t *testing.T) {
	s := newTestStore(t)

	r := InflationRecord{Month: date.MustParse("2026-03-17"), RefValue: decimal.RequireFromString("7864.13")}
	if err := s.AddInflation(&r); err != nil {
		t.Fatal(err)
	}
	if r.Month != date.MustParse("2026-03-01") {
		t.Errorf("month not normalized: %s", r.Month)
	}

	r.RefValue = decimal.RequireFromString("7900.00")
	if err := s.UpdateInflation(r); err != nil {
		t.Fatal(err)
	}

	earlier := InflationRecord{Month: date.MustParse("2026-02-01"), RefValue: decimal.NewFromInt(7500)}
	if err := s.AddInflation(&earlier); err != nil {
		t.Fatal(err)
	}

	records, err := s.InflationRecords()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records", len(records))
	}
	if !records[0].Month.Before(records[1].Month) {
		t.Errorf("records not in month order: %s, %s", records[0].Month, records[1].Month)
	}
	if !records[1].RefValue.Equal(decimal.RequireFromString("7900.00")) {
		t.Errorf("updated value = %s", records[1].RefValue)
	}

	if err := s.DeleteInflation(r.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteInflation(r.ID); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("second delete error = %v, want ErrRecordNotFound", err)
	}
}

func TestInflationMonthUnique(t *testing.T) {
	s := newTestStore(t)
	r := InflationRecord{Month: date.MustParse("2026-03-01"), RefValue: decimal.NewFromInt(100)}
	if err := s.AddInflation(&r); err != nil {
		t.Fatal(err)
	}
	dup := InflationRecord{Month: date.MustParse("2026-03-09"), RefValue: decimal.NewFromInt(101)}
	if err := s.AddInflation(&dup); err == nil {
		t.Fatal("second record for the same month was accepted")
	}
}
