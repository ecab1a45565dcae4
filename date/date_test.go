package date

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-07-01", want: New(2025, time.July, 1)},
		{in: "2025-7-1", want: New(2025, time.July, 1)},
		{in: " 2025-12-31 ", want: New(2025, time.December, 31)},
		{in: "31/12/2025", wantErr: true},
		{in: "2025-13-01", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	d := New(2026, time.January, 5)
	if got := d.String(); got != "2026-01-05" {
		t.Fatalf("String() = %q, want %q", got, "2026-01-05")
	}
	back, err := Parse(d.String())
	if err != nil {
		t.Fatal(err)
	}
	if back != d {
		t.Errorf("round trip gave %v, want %v", back, d)
	}
}

func TestAdd(t *testing.T) {
	tests := []struct {
		name string
		d    Date
		days int
		want Date
	}{
		{"within month", New(2026, time.March, 10), 5, New(2026, time.March, 15)},
		{"across month", New(2026, time.January, 30), 3, New(2026, time.February, 2)},
		{"across year", New(2025, time.December, 31), 1, New(2026, time.January, 1)},
		{"monday back to friday", New(2026, time.August, 31), -3, New(2026, time.August, 28)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.Add(tt.days); got != tt.want {
				t.Errorf("%v.Add(%d) = %v, want %v", tt.d, tt.days, got, tt.want)
			}
		})
	}
}

func TestWeekday(t *testing.T) {
	// 2026-08-31 is a Monday.
	if got := New(2026, time.August, 31).Weekday(); got != time.Monday {
		t.Errorf("Weekday() = %v, want Monday", got)
	}
}

func TestFirstOfMonth(t *testing.T) {
	if got := New(2026, time.February, 17).FirstOfMonth(); got != New(2026, time.February, 1) {
		t.Errorf("FirstOfMonth() = %v", got)
	}
}

func TestLexicalOrderIsChronological(t *testing.T) {
	a, b := New(2026, time.September, 9), New(2026, time.October, 1)
	if !(a.String() < b.String()) {
		t.Errorf("lexical order broken: %q >= %q", a, b)
	}
}

func TestJSON(t *testing.T) {
	d := New(2026, time.June, 3)
	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `"2026-06-03"` {
		t.Fatalf("Marshal = %s", raw)
	}
	var back Date
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatal(err)
	}
	if back != d {
		t.Errorf("round trip gave %v, want %v", back, d)
	}
}
