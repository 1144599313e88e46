package normalize

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

const refYear = 2024

func TestParseDate_Table(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		want     *Date
		strategy string
	}{
		{"java array", []int{2025, 3, 12}, &Date{2025, 2, 12}, "sequence"},
		{"java datetime array", []int64{2025, 3, 12, 14, 30}, &Date{2025, 2, 12}, "sequence"},
		{"json array", []any{json.Number("2025"), json.Number("12"), json.Number("1")}, &Date{2025, 11, 1}, "sequence"},
		{"float array", []any{2025.0, 1.0, 31.0}, &Date{2025, 0, 31}, "sequence"},
		{"iso", "2025-03-12", &Date{2025, 2, 12}, "numeric"},
		{"iso timestamp", "2025-03-12T23:30:00-03:00", &Date{2025, 2, 12}, "numeric"},
		{"iso local timestamp", "2025-03-12T08:15:00", &Date{2025, 2, 12}, "numeric"},
		{"iso millis compact offset", "2025-03-12T10:00:00.000+0000", &Date{2025, 2, 12}, "numeric"},
		{"iso compact offset", "2025-03-12T23:30:00-0300", &Date{2025, 2, 12}, "numeric"},
		{"iso space minutes", "2025-03-12 10:00", &Date{2025, 2, 12}, "numeric"},
		{"iso unknown suffix", "2025-03-12T10:00:00 America/Sao_Paulo", &Date{2025, 2, 12}, "numeric"},
		{"iso glued text", "2025-03-12abc", nil, ""},
		{"br full", "12/03/2025", &Date{2025, 2, 12}, "numeric"},
		{"br dash", "12-03-2025", &Date{2025, 2, 12}, "numeric"},
		{"br two digit year", "12/03/25", &Date{2025, 2, 12}, "numeric"},
		{"br two digit year is this century", "12/03/99", &Date{2099, 2, 12}, "numeric"},
		{"br partial", "12/03", &Date{refYear, 2, 12}, "numeric"},
		{"br with time", "12/03/2025 10:00", &Date{2025, 2, 12}, "numeric"},
		{"br padded", "  5/1  ", &Date{refYear, 0, 5}, "numeric"},
		{"free text short", "12 mar", &Date{refYear, 2, 12}, "month-name"},
		{"free text long", "12 de março", &Date{refYear, 2, 12}, "month-name"},
		{"free text upper", "12 DE MARÇO", &Date{refYear, 2, 12}, "month-name"},
		{"free text with year", "12 de março de 2023", &Date{2023, 2, 12}, "month-name"},
		{"free text punctuated", "3-fev.", &Date{refYear, 1, 3}, "month-name"},
		{"free text month first", "dez 25", &Date{refYear, 11, 25}, "month-name"},
		{"english long form", "March 12, 2025", &Date{2025, 2, 12}, "month-name"},
		{"free text with clock", "12 mar 2025 10:30", &Date{2025, 2, 12}, "month-name"},
		{"rfc1123z utc", "Tue, 12 Mar 2024 10:00:00 +0000", &Date{2024, 2, 12}, "native"},
		{"rfc1123z offset", "Tue, 12 Mar 2024 10:00:00 -0300", &Date{2024, 2, 12}, "native"},
		{"js date string", "Wed Mar 12 2025 00:00:00 GMT-0300 (Horário Padrão de Brasília)", &Date{2025, 2, 12}, "native"},
		{"rfc1123", "Thu, 12 Dec 2024 10:00:00 GMT", &Date{2024, 11, 12}, "native"},
		{"year first slash", "2025/03/12", &Date{2025, 2, 12}, "native"},
		{"english month", "December 5, 2025", &Date{2025, 11, 5}, "native"},
		{"time value", time.Date(2025, 7, 4, 22, 0, 0, 0, time.UTC), &Date{2025, 6, 4}, "native"},
		{"unix millis", int64(1741737600000), &Date{2025, 2, 12}, "native"},
		{"not a date", "not a date", nil, ""},
		{"nil", nil, nil, ""},
		{"empty", "", nil, ""},
		{"blank", "   ", nil, ""},
		{"zero", 0, nil, ""},
		{"false", false, nil, ""},
		{"short array", []int{2025, 3}, nil, ""},
		{"array with text", []any{"2025", "x", 1}, nil, ""},
		{"month out of range", []int{2025, 13, 1}, nil, ""},
		{"impossible day", "31/02/2025", nil, ""},
		{"invalid iso", "2025-02-30", nil, ""},
		{"day without month", "12 horas", nil, ""},
		{"month without day", "março", nil, ""},
		{"empty segment", "12//03", nil, ""},
		{"map", map[string]int{"year": 2025}, nil, ""},
	}

	p := NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, strategy := p.Resolve(tt.raw, refYear)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("Resolve(%v) = %v via %s, want nil", tt.raw, got, strategy)
				}
				return
			}
			if got == nil {
				t.Fatalf("Resolve(%v) = nil, want %v", tt.raw, tt.want)
			}
			if *got != *tt.want {
				t.Errorf("Resolve(%v) = %v, want %v", tt.raw, *got, *tt.want)
			}
			if strategy != tt.strategy {
				t.Errorf("Resolve(%v) strategy = %q, want %q", tt.raw, strategy, tt.strategy)
			}
		})
	}
}

func TestParseDate_SequenceProperty(t *testing.T) {
	for _, year := range []int{1999, 2024, 2025} {
		for month := 1; month <= 12; month++ {
			for _, day := range []int{1, 15, 28} {
				d := ParseDate([]int{year, month, day}, refYear)
				if d == nil {
					t.Fatalf("ParseDate([%d %d %d]) = nil", year, month, day)
				}
				if d.Year != year || d.MonthIndex != month-1 || d.Day != day {
					t.Errorf("ParseDate([%d %d %d]) = %+v", year, month, day, *d)
				}
			}
		}
	}
}

func TestParseDate_RoundTrip(t *testing.T) {
	inputs := []any{
		[]int{2025, 3, 12},
		"12/03/2025",
		"12 de março de 2023",
		"2000-02-29",
		time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	for _, in := range inputs {
		d := ParseDate(in, refYear)
		if d == nil {
			t.Fatalf("ParseDate(%v) = nil", in)
		}
		again := ParseDate(d.ISO(), 1900)
		if again == nil || *again != *d {
			t.Errorf("round trip of %v: %v -> %v", in, d, again)
		}
	}
}

func TestParseDate_ReferenceYearOnlyFillsPartialDates(t *testing.T) {
	if d := ParseDate("12/03", 2019); d == nil || d.Year != 2019 {
		t.Errorf("partial date should take reference year 2019, got %v", d)
	}
	if d := ParseDate("12/03/2025", 2019); d == nil || d.Year != 2025 {
		t.Errorf("explicit year should win over reference year, got %v", d)
	}
	if d := ParseDate("12/03", 0); d != nil {
		t.Errorf("partial date without reference year should be absent, got %v", d)
	}
}

func TestParseDate_Pointers(t *testing.T) {
	s := "12/03/2025"
	if d := ParseDate(&s, refYear); d == nil || d.ISO() != "2025-03-12" {
		t.Errorf("ParseDate(*string) = %v", d)
	}
	var nilStr *string
	if d := ParseDate(nilStr, refYear); d != nil {
		t.Errorf("ParseDate(nil *string) = %v, want nil", d)
	}
	ts := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	if d := ParseDate(&ts, refYear); d == nil || d.ISO() != "2025-01-02" {
		t.Errorf("ParseDate(*time.Time) = %v", d)
	}
}

func TestParser_CustomLocale(t *testing.T) {
	p := NewParser(
		WithMonths([]string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}),
		WithConnectives("of", "the"),
	)
	d := p.Parse("the 5th of december", refYear)
	if d != nil {
		t.Fatalf("ordinal day should not parse as a number, got %v", d)
	}
	d = p.Parse("5 of december", refYear)
	if d == nil || *d != (Date{refYear, 11, 5}) {
		t.Errorf("Parse(5 of december) = %v", d)
	}
	if d := p.Parse("5 fev", refYear); d != nil {
		t.Errorf("portuguese month should not match english table, got %v", d)
	}
}

func TestParser_IgnoresShortMonthTable(t *testing.T) {
	p := NewParser(WithMonths([]string{"jan"}))
	if d := p.Parse("12 mar", refYear); d == nil || d.MonthIndex != 2 {
		t.Errorf("short month table should be ignored, got %v", d)
	}
}

func TestParser_LogsUnparseableAtDebug(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	p := NewParser(WithLogger(log))

	if d := p.Parse("qualquer coisa", refYear); d != nil {
		t.Fatalf("expected nil, got %v", d)
	}
	if !strings.Contains(buf.String(), "unparseable date") {
		t.Errorf("expected debug line, got %q", buf.String())
	}
}

func TestParser_Strategies(t *testing.T) {
	got := strings.Join(NewParser().Strategies(), ",")
	if got != "sequence,numeric,month-name,native" {
		t.Errorf("Strategies() = %s", got)
	}
}

func TestDate_Helpers(t *testing.T) {
	a := Date{2025, 0, 31}
	b := Date{2025, 1, 1}
	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Errorf("Compare ordering wrong")
	}
	if n := a.DaysUntil(b); n != 1 {
		t.Errorf("DaysUntil = %d, want 1", n)
	}
	if n := b.DaysUntil(Date{2024, 1, 1}); n != -366 {
		t.Errorf("DaysUntil across leap year = %d, want -366", n)
	}
	if s := a.ISO(); s != "2025-01-31" {
		t.Errorf("ISO = %s", s)
	}
	var none *Date
	if none.TimePtr() != nil {
		t.Errorf("nil TimePtr should be nil")
	}
	if NewDate(2024, 2, 29) == nil || NewDate(2023, 2, 29) != nil {
		t.Errorf("leap day validation wrong")
	}
}

func TestParseDate_Concurrent(t *testing.T) {
	p := NewParser()
	done := make(chan bool)
	for i := 0; i < 8; i++ {
		go func() {
			for j := 0; j < 200; j++ {
				if d := p.Parse("12 de março", refYear); d == nil || d.MonthIndex != 2 {
					t.Error("concurrent parse failed")
				}
			}
			done <- true
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
