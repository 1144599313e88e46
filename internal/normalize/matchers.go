package normalize

import (
	"encoding/json"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	numericPattern = regexp.MustCompile(`\d+[/-]\d+`)
	isoPrefix      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	dateSeparator  = regexp.MustCompile(`[/-]`)
	nonWordChars   = regexp.MustCompile(`[^a-z0-9\s]+`)
	clockTime      = regexp.MustCompile(`\b\d{1,2}:\d{2}(:\d{2}(\.\d+)?)?\b`)
	zoneComment    = regexp.MustCompile(`\s*\([^)]*\)\s*$`)
)

// ISO layouts tried once the input starts with YYYY-MM-DD.
var isoLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04",
}

// Layouts for the final fallback, roughly what a browser's Date parser
// accepts for strings that reach it.
var nativeLayouts = []string{
	time.RFC3339Nano,
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.ANSIC,
	time.UnixDate,
	"Mon Jan 02 2006 15:04:05 GMT-0700",
	"Mon Jan 2 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
	"2-Jan-2006",
	"2006/01/02",
	"2006/1/2",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// matchSequence handles ordered integer sequences such as Java LocalDate
// arrays: [year, month (1-based), day, ...]. Extra elements are ignored.
func matchSequence(raw any, _ int) *Date {
	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 || rv.Len() < 3 {
		return nil
	}
	var parts [3]int
	for i := range parts {
		n, ok := integer(rv.Index(i).Interface())
		if !ok {
			return nil
		}
		parts[i] = n
	}
	return NewDate(parts[0], parts[1], parts[2])
}

// matchNumeric handles digit/separator strings: ISO dates, DD/MM and DD/MM/YYYY.
func matchNumeric(raw any, referenceYear int) *Date {
	s, ok := raw.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if !numericPattern.MatchString(s) {
		return nil
	}
	if prefix := isoPrefix.FindString(s); prefix != "" {
		if d := parseLayouts(s, isoLayouts); d != nil {
			return d
		}
		// Unknown time or zone suffix: the calendar date is the prefix.
		if rest := s[len(prefix):]; rest == "" || rest[0] == 'T' || rest[0] == ' ' {
			return parseLayouts(prefix, isoLayouts[:1])
		}
		return nil
	}

	parts := dateSeparator.Split(s, -1)
	day, _, ok := leadingInt(parts[0])
	if !ok {
		return nil
	}
	month, _, ok := leadingInt(parts[1])
	if !ok {
		return nil
	}
	year := referenceYear
	if len(parts) > 2 && strings.TrimSpace(parts[2]) != "" {
		y, digits, ok := leadingInt(parts[2])
		if !ok {
			return nil
		}
		// Two-digit years are always this century: "12/03/99" is 2099.
		if digits <= 2 {
			y += 2000
		}
		year = y
	}
	return NewDate(year, month, day)
}

// matchMonthName handles free text such as "12 mar", "12 de março" or
// "12 de março de 2025". Clock times are ignored, the first non-year number
// is the day, a four-digit number is the year, and the last token starting
// with a month prefix wins. Text with more than one four-digit number
// ("12 Mar 2024 10:00 +0000") is a timestamp and is left to matchNative.
func (p *Parser) matchMonthName(raw any, referenceYear int) *Date {
	s, ok := raw.(string)
	if !ok {
		return nil
	}
	folded := clockTime.ReplaceAllString(FoldText(s), " ")
	tokens := strings.Fields(nonWordChars.ReplaceAllString(folded, " "))

	day, month, year, years := 0, -1, 0, 0
	for _, tok := range tokens {
		if p.connectives[tok] {
			continue
		}
		if isDigits(tok) {
			n, err := strconv.Atoi(tok)
			if err != nil {
				continue
			}
			if len(tok) == 4 {
				years++
				if year == 0 {
					year = n
				}
			} else if day == 0 {
				day = n
			}
			continue
		}
		if idx := p.monthIndex(tok); idx >= 0 {
			month = idx
		}
	}
	if day <= 0 || month < 0 || years > 1 {
		return nil
	}
	if year == 0 {
		year = referenceYear
	}
	return NewDate(year, month+1, day)
}

func (p *Parser) monthIndex(tok string) int {
	for i, m := range p.months {
		if m != "" && strings.HasPrefix(tok, m) {
			return i
		}
	}
	return -1
}

// matchNative is the last resort: time values, Unix milliseconds and a
// list of common layouts.
func matchNative(raw any, _ int) *Date {
	switch v := raw.(type) {
	case time.Time:
		if v.IsZero() {
			return nil
		}
		return fromTime(v)
	case string:
		// Date.toString() appends the zone name: "(Horário Padrão de Brasília)".
		return parseLayouts(zoneComment.ReplaceAllString(strings.TrimSpace(v), ""), nativeLayouts)
	}
	if ms, ok := number(raw); ok {
		if math.IsNaN(ms) || math.IsInf(ms, 0) {
			return nil
		}
		return fromTime(time.UnixMilli(int64(ms)).UTC())
	}
	return nil
}

func parseLayouts(s string, layouts []string) *Date {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return fromTime(t)
		}
	}
	return nil
}

func fromTime(t time.Time) *Date {
	d := DateOf(t)
	return NewDate(d.Year, d.MonthIndex+1, d.Day)
}

// leadingInt parses the run of digits at the start of s, after leading
// whitespace. It reports the digit count so callers can tell "25" from "2025".
func leadingInt(s string) (n, digits int, ok bool) {
	s = strings.TrimLeft(s, " \t")
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if digits == 0 || digits > 9 {
		return 0, digits, false
	}
	n, err := strconv.Atoi(s[:digits])
	if err != nil {
		return 0, digits, false
	}
	return n, digits, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// integer converts integral numeric values (including json.Number and
// whole floats) to int.
func integer(v any) (int, bool) {
	if n, ok := v.(json.Number); ok {
		i, err := n.Int64()
		if err != nil || i > math.MaxInt32 || i < math.MinInt32 {
			return 0, false
		}
		return int(i), true
	}
	f, ok := number(v)
	if !ok || f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

func number(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
