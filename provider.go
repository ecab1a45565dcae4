package cartera

import (
	"net/http"

	"github.com/fgalarza/cartera/date"
)

// PriceSource is the capability to fetch the current valuation of one
// instrument, per category. Calls are synchronous and issued serially by the
// updater; implementations must be safe to replace with a batching or
// fanning-out variant without touching the rollup engine.
type PriceSource interface {
	// FundPrice returns the latest published share value of a mutual fund
	// and the date it was published for.
	FundPrice(ticker string) (price float64, asOf date.Date, err error)

	// EquityClose returns the most recent daily close of an equity or
	// cedear within a 5-trading-day lookback window, and its trading date.
	EquityClose(ticker string) (price float64, asOf date.Date, err error)

	// USDBuyRate returns the current reference buy rate for US dollars.
	// There is no provider date; the caller stamps the effective day.
	USDBuyRate() (float64, error)
}

// WebSource implements PriceSource against the live providers: the broker's
// fund data page, the Yahoo chart API and the bluelytics FX API. Base URLs
// are variables so tests can point them at local servers.
type WebSource struct {
	FundDataURL string // fund page, "?ticker=" is appended
	ChartURL    string // chart API root
	FXRatesURL  string // FX API root

	client *http.Client
}

// NewWebSource returns a WebSource with the production endpoints and a
// daily-expiring disk cache.
func NewWebSource() *WebSource {
	return &WebSource{
		FundDataURL: "https://www.bullmarketbrokers.com/Information/FundData",
		ChartURL:    "https://query1.finance.yahoo.com",
		FXRatesURL:  "https://api.bluelytics.com.ar",
		client:      cachedDaily(),
	}
}
