package cartera

import (
	"fmt"
	"math"
)

// USDBuyRate returns the current "blue" reference buy rate from the FX API.
func (w *WebSource) USDBuyRate() (float64, error) {
	addr := w.FXRatesURL + "/v2/latest"

	var payload struct {
		Blue struct {
			ValueBuy float64 `json:"value_buy"`
		} `json:"blue"`
	}
	if err := getJSON(w.client, addr, &payload); err != nil {
		return math.NaN(), fmt.Errorf("usd rate: %w", err)
	}
	if payload.Blue.ValueBuy == 0 {
		return math.NaN(), fmt.Errorf("usd rate: empty buy value in response")
	}
	return payload.Blue.ValueBuy, nil
}
