package cartera

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/fgalarza/cartera/date"
)

// The broker publishes fund data as a small HTML page with a table holding
// the share value and its publication date ("dd/mm/yyyy"), both in local
// number format (comma decimals, dot thousands). Only those two cells are
// needed, so a tolerant cell scan beats a full HTML parser here.

var (
	tableCellRE = regexp.MustCompile(`(?s)<td[^>]*>(.*?)</td>`)
	tagRE       = regexp.MustCompile(`<[^>]*>`)
	fundDateRE  = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
)

// FundPrice scrapes the latest published share value of a fund.
func (w *WebSource) FundPrice(ticker string) (float64, date.Date, error) {
	addr := w.FundDataURL + "?ticker=" + url.QueryEscape(ticker)
	body, err := getBody(w.client, addr)
	if err != nil {
		return math.NaN(), date.Date{}, fmt.Errorf("fund data for %q: %w", ticker, err)
	}
	return parseFundPage(string(body), ticker)
}

// parseFundPage finds the publication date cell and reads the share value
// from the cell right before it.
func parseFundPage(body, ticker string) (float64, date.Date, error) {
	var cells []string
	for _, m := range tableCellRE.FindAllStringSubmatch(body, -1) {
		cells = append(cells, strings.TrimSpace(tagRE.ReplaceAllString(m[1], "")))
	}
	for i, cell := range cells {
		if !fundDateRE.MatchString(cell) || i == 0 {
			continue
		}
		on, err := time.Parse("02/01/2006", cell)
		if err != nil {
			continue
		}
		value, err := parseLocalNumber(cells[i-1])
		if err != nil {
			return math.NaN(), date.Date{}, fmt.Errorf("fund %q: share value %q: %w", ticker, cells[i-1], err)
		}
		return value, date.New(on.Date()), nil
	}
	return math.NaN(), date.Date{}, fmt.Errorf("fund %q: no share value found in fund data page", ticker)
}

// parseLocalNumber parses a number in local format: "1.234,56" -> 1234.56.
func parseLocalNumber(s string) (float64, error) {
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.TrimPrefix(s, "$")
	return strconv.ParseFloat(s, 64)
}
