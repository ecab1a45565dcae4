package cartera

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fgalarza/cartera/date"
)

// TransformUSDMultiply multiplies a refreshed valuation by the current USD
// buy rate before it is written. It exists for fund shares that are
// USD-denominated but tracked in local currency in one of the books.
const TransformUSDMultiply = "usd-multiply"

// Override alters the refreshed valuation of one position when it is
// written into one book. The rule is data, not code: the set of overrides is
// loaded from configuration.
type Override struct {
	PositionID int64  `json:"position_id"`
	Book       Book   `json:"book"`
	Transform  string `json:"transform"`
}

// LoadOverrides reads an override list from a JSON file.
func LoadOverrides(path string) ([]Override, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading overrides: %w", err)
	}
	var overrides []Override
	if err := json.Unmarshal(content, &overrides); err != nil {
		return nil, fmt.Errorf("parsing overrides %q: %w", path, err)
	}
	for _, o := range overrides {
		if o.Transform != TransformUSDMultiply {
			return nil, fmt.Errorf("override for position %d: unknown transform %q", o.PositionID, o.Transform)
		}
	}
	return overrides, nil
}

// Updater refreshes the valuation of every open position from a PriceSource
// and mirrors the refreshed values into the store's mirror books.
type Updater struct {
	store     *Store
	source    PriceSource
	overrides []Override

	// today is replaceable so the weekend rollback rule can be tested on
	// any weekday.
	today func() date.Date
}

// NewUpdater returns an Updater over the given store and price source.
func NewUpdater(store *Store, source PriceSource, overrides []Override) *Updater {
	return &Updater{store: store, source: source, overrides: overrides, today: date.Today}
}

// Refresh fetches the current valuation for every open position of the main
// book and writes it back, per category. A failing fetch skips that
// instrument (logged) and the batch continues; prior writes are kept. The
// returned error joins the per-instrument failures.
func (u *Updater) Refresh() error {
	today := u.today()
	var errs error

	// The USD rate serves the cash positions and the usd-multiply
	// overrides; fetch it once per cycle.
	usdRate, usdErr := u.source.USDBuyRate()
	if usdErr != nil {
		usdErr = &AdapterError{Ticker: "USD", Err: usdErr}
		log.Printf("warning: %v", usdErr)
		errs = errors.Join(errs, usdErr)
	}

	haveUSD := usdErr == nil
	errs = errors.Join(errs, u.refreshFunds(today, usdRate, haveUSD))
	errs = errors.Join(errs, u.refreshEquities(today, usdRate, haveUSD))
	if haveUSD {
		errs = errors.Join(errs, u.refreshUSD(today, usdRate))
	}
	return errs
}

// fundQuote caches one fund's fetch so a ticker held in several books is
// queried once per cycle.
type fundQuote struct {
	price float64
	asOf  date.Date
	err   error
}

// refreshFunds covers every book: mirror books can hold funds the main book
// does not, and those still need their valuation refreshed.
func (u *Updater) refreshFunds(today date.Date, usdRate float64, haveUSD bool) error {
	var errs error
	quotes := make(map[string]fundQuote)
	for _, b := range u.store.Books() {
		funds, err := u.store.PositionsByCategory(b, Fund)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		for _, p := range funds {
			q, ok := quotes[p.Ticker]
			if !ok {
				q.price, q.asOf, q.err = u.source.FundPrice(p.Ticker)
				if q.err != nil {
					q.err = &AdapterError{Ticker: p.Ticker, Err: q.err}
					log.Printf("warning: %v", q.err)
					errs = errors.Join(errs, q.err)
				}
				quotes[p.Ticker] = q
			}
			if q.err != nil {
				continue
			}
			// Each fund is tested on its own: an already-current fund is
			// skipped without stopping the rest of the batch. This also
			// covers mirrored lots the main book's pass just wrote.
			if q.asOf == p.ValuationDate {
				log.Printf("fund %q already current at %s", p.Ticker, q.asOf)
				continue
			}
			// Funds publish with a delay; a date newer than yesterday is not
			// trusted yet.
			if q.asOf.After(today.Add(-1)) {
				continue
			}
			value := decimal.NewFromFloat(q.price)
			if b == MainBook {
				errs = errors.Join(errs, u.writeValuation(p.ID, value, q.asOf, usdRate, haveUSD))
			} else {
				// A lot only this book holds is refreshed in place.
				errs = errors.Join(errs, u.writeBook(b, p.ID, value, q.asOf, usdRate, haveUSD))
			}
		}
	}
	return errs
}

func (u *Updater) refreshEquities(today date.Date, usdRate float64, haveUSD bool) error {
	var errs error
	for _, c := range []Category{Cedear, Accion} {
		positions, err := u.store.PositionsByCategory(MainBook, c)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		for _, p := range positions {
			price, asOf, err := u.source.EquityClose(p.Ticker)
			if err != nil {
				err = &AdapterError{Ticker: p.Ticker, Err: err}
				log.Printf("warning: %v", err)
				errs = errors.Join(errs, err)
				continue
			}
			if asOf.After(today) {
				continue
			}
			on := marketDate(today, asOf)
			errs = errors.Join(errs, u.writeValuation(p.ID, decimal.NewFromFloat(price).Round(2), on, usdRate, haveUSD))
		}
	}
	return errs
}

func (u *Updater) refreshUSD(today date.Date, rate float64) error {
	positions, err := u.store.PositionsByCategory(MainBook, USD)
	if err != nil {
		return err
	}
	var errs error
	value := decimal.NewFromFloat(rate)
	// There is no provider date for cash: stamp today, rolled back over
	// weekends like the equities.
	on := marketDate(today, today)
	for _, p := range positions {
		errs = errors.Join(errs, u.writeValuation(p.ID, value, on, rate, true))
	}
	return errs
}

// marketDate applies the weekend rollback rule for market-traded categories:
// on a Monday the effective date lands on the prior Friday, because the
// providers may not yet reflect the weekend gap. Otherwise the instrument's
// own fetched date wins, except that a fetch dated yesterday is written as
// yesterday verbatim.
func marketDate(today, fetched date.Date) date.Date {
	if today.Weekday() == time.Monday {
		return today.Add(-3)
	}
	if yesterday := today.Add(-1); fetched != yesterday {
		return fetched
	}
	return today.Add(-1)
}

// writeValuation stores a refreshed valuation in the main book and every
// mirror book, applying the configured per-(position, book) overrides. A
// mirror that does not carry the position is skipped.
func (u *Updater) writeValuation(id int64, value decimal.Decimal, on date.Date, usdRate float64, haveUSD bool) error {
	var errs error
	for _, b := range u.store.Books() {
		err := u.writeBook(b, id, value, on, usdRate, haveUSD)
		if b != MainBook && errors.Is(err, ErrRecordNotFound) {
			continue
		}
		errs = errors.Join(errs, err)
	}
	return errs
}

// writeBook stores a refreshed valuation in one book, applying the book's
// override for the position if configured.
func (u *Updater) writeBook(b Book, id int64, value decimal.Decimal, on date.Date, usdRate float64, haveUSD bool) error {
	if t, ok := u.override(id, b); ok {
		switch t {
		case TransformUSDMultiply:
			if !haveUSD {
				log.Printf("skipping %s override for position %d in book %q: no usd rate this cycle", t, id, b)
				return nil
			}
			value = value.Mul(decimal.NewFromFloat(usdRate))
		}
	}
	return u.store.SetValuation(b, id, value, on)
}

func (u *Updater) override(id int64, b Book) (transform string, ok bool) {
	for _, o := range u.overrides {
		if o.PositionID == id && o.Book == b {
			return o.Transform, true
		}
	}
	return "", false
}

// Price fetches the current valuation for a position that is being created,
// so a new lot lands already valued. The category decides the source; cash
// is stamped with today.
func (u *Updater) Price(p *Position) error {
	switch p.Category {
	case Fund:
		price, asOf, err := u.source.FundPrice(p.Ticker)
		if err != nil {
			return &AdapterError{Ticker: p.Ticker, Err: err}
		}
		p.CurrentValue, p.ValuationDate = decimal.NewFromFloat(price), asOf
	case Cedear, Accion:
		price, asOf, err := u.source.EquityClose(p.Ticker)
		if err != nil {
			return &AdapterError{Ticker: p.Ticker, Err: err}
		}
		p.CurrentValue, p.ValuationDate = decimal.NewFromFloat(price).Round(2), asOf
	case USD:
		rate, err := u.source.USDBuyRate()
		if err != nil {
			return &AdapterError{Ticker: "USD", Err: err}
		}
		p.CurrentValue, p.ValuationDate = decimal.NewFromFloat(rate), u.today()
	default:
		return fmt.Errorf("cannot price category %q", p.Category)
	}
	return nil
}
