package cartera

import (
	"fmt"
	"math"
	"net/url"
	"time"

	"github.com/PaesslerAG/jsonpath"

	"github.com/fgalarza/cartera/date"
)

// EquityClose returns the most recent daily close for an equity or cedear,
// using a 5-trading-day lookback and taking the latest entry with a price.
func (w *WebSource) EquityClose(ticker string) (float64, date.Date, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?range=5d&interval=1d", w.ChartURL, url.PathEscape(ticker))

	var jobj any
	if err := getJSON(w.client, addr, &jobj); err != nil {
		return math.NaN(), date.Date{}, fmt.Errorf("chart data for %q: %w", ticker, err)
	}

	stamps, err := jsonFloats(jobj, "$.chart.result[0].timestamp[*]")
	if err != nil {
		return math.NaN(), date.Date{}, fmt.Errorf("chart data for %q: %w", ticker, err)
	}
	closes, err := jsonFloats(jobj, "$.chart.result[0].indicators.quote[0].close[*]")
	if err != nil {
		return math.NaN(), date.Date{}, fmt.Errorf("chart data for %q: %w", ticker, err)
	}
	if len(stamps) == 0 || len(stamps) != len(closes) {
		return math.NaN(), date.Date{}, fmt.Errorf("chart data for %q: %d timestamps for %d closes", ticker, len(stamps), len(closes))
	}

	// Walk backwards: the last entries can be null on half-open sessions.
	for i := len(closes) - 1; i >= 0; i-- {
		if math.IsNaN(closes[i]) || closes[i] == 0 {
			continue
		}
		on := date.FromTime(time.Unix(int64(stamps[i]), 0))
		return closes[i], on, nil
	}
	return math.NaN(), date.Date{}, fmt.Errorf("chart data for %q: no close in lookback window", ticker)
}

// jsonFloats extracts a list of numbers at path; null entries come back as
// NaN so positions stay aligned with their timestamps.
func jsonFloats(jobj any, path string) ([]float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		// jsonpath may return a single element instead of a list of one.
		jlist = []any{jval}
	}
	values := make([]float64, 0, len(jlist))
	for _, v := range jlist {
		f, ok := v.(float64)
		if !ok {
			f = math.NaN()
		}
		values = append(values, f)
	}
	return values, nil
}
