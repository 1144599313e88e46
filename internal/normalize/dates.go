package normalize

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Date is a calendar date with no time-zone component.
// MonthIndex is zero-based (0 = January).
type Date struct {
	Year       int
	MonthIndex int
	Day        int
}

// NewDate returns the date for a one-based month, or nil when the
// combination does not exist on the calendar (month 13, 31/02, year 0).
func NewDate(year, month, day int) *Date {
	if year < 1 || year > 9999 || month < 1 || month > 12 || day < 1 {
		return nil
	}
	if day > daysIn(year, month) {
		return nil
	}
	return &Date{Year: year, MonthIndex: month - 1, Day: day}
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DateOf returns the calendar date of t as seen in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, MonthIndex: int(m) - 1, Day: d}
}

// Month returns the date's month as a time.Month.
func (d Date) Month() time.Month {
	return time.Month(d.MonthIndex + 1)
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month(), d.Day, 0, 0, 0, 0, time.UTC)
}

// TimePtr is Time for optional dates: nil in, nil out.
func (d *Date) TimePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time()
	return &t
}

// ISO formats the date as YYYY-MM-DD.
func (d Date) ISO() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.MonthIndex+1, d.Day)
}

func (d Date) String() string {
	return d.ISO()
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.MonthIndex != o.MonthIndex:
		return sign(d.MonthIndex - o.MonthIndex)
	default:
		return sign(d.Day - o.Day)
	}
}

// DaysUntil returns the number of days from d to o; negative when o is earlier.
func (d Date) DaysUntil(o Date) int {
	return int((o.Time().Unix() - d.Time().Unix()) / 86400)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

// Strategy is one step of the resolution chain. Match returns nil when the
// input is not in a shape the strategy understands.
type Strategy struct {
	Name  string
	Match func(raw any, referenceYear int) *Date
}

// DefaultMonths are the Portuguese three-letter month prefixes, January first.
var DefaultMonths = []string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

// DefaultConnectives are words dropped from free-text dates ("12 de março").
var DefaultConnectives = []string{"de", "do", "da"}

// Parser normalizes heterogeneous date values. It holds no mutable state
// and is safe for concurrent use.
type Parser struct {
	months      []string
	connectives map[string]bool
	strategies  []Strategy
	log         zerolog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithMonths sets the twelve month prefixes used by free-text matching.
// Prefixes are folded like the input (lowercase, no accents). Lists that are
// not exactly twelve entries long are ignored.
func WithMonths(months []string) Option {
	return func(p *Parser) {
		if len(months) != 12 {
			return
		}
		p.months = make([]string, len(months))
		for i, m := range months {
			p.months[i] = FoldText(m)
		}
	}
}

// WithConnectives replaces the words ignored by free-text matching.
func WithConnectives(words ...string) Option {
	return func(p *Parser) {
		p.connectives = make(map[string]bool, len(words))
		for _, w := range words {
			if w = FoldText(w); w != "" {
				p.connectives[w] = true
			}
		}
	}
}

// WithLogger sets the logger used for debug diagnostics.
func WithLogger(log zerolog.Logger) Option {
	return func(p *Parser) { p.log = log }
}

// NewParser builds a Parser with the Portuguese month table unless
// overridden. Strategies run in this order: sequence, numeric, month-name,
// native.
func NewParser(opts ...Option) *Parser {
	p := &Parser{months: DefaultMonths, log: zerolog.Nop()}
	WithConnectives(DefaultConnectives...)(p)
	for _, opt := range opts {
		opt(p)
	}
	p.strategies = []Strategy{
		{Name: "sequence", Match: matchSequence},
		{Name: "numeric", Match: matchNumeric},
		{Name: "month-name", Match: p.matchMonthName},
		{Name: "native", Match: matchNative},
	}
	return p
}

// Strategies returns the names of the resolution steps in order.
func (p *Parser) Strategies() []string {
	names := make([]string, len(p.strategies))
	for i, s := range p.strategies {
		names[i] = s.Name
	}
	return names
}

// Parse normalizes raw into a calendar date, or returns nil. Partial inputs
// without a year ("12/03", "12 mar") take referenceYear; callers supply it
// explicitly, Parse never reads the clock.
func (p *Parser) Parse(raw any, referenceYear int) *Date {
	d, _ := p.Resolve(raw, referenceYear)
	return d
}

// Resolve is Parse that also reports which strategy produced the date.
// Panics inside a strategy are recovered and reported as no date.
func (p *Parser) Resolve(raw any, referenceYear int) (d *Date, strategy string) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Debug().Interface("input", raw).Interface("panic", r).Msg("date parse recovered")
			d, strategy = nil, ""
		}
	}()

	v := unwrap(raw)
	if isBlank(v) {
		return nil, ""
	}
	for _, s := range p.strategies {
		if d := s.Match(v, referenceYear); d != nil {
			return d, s.Name
		}
	}
	p.log.Debug().Interface("input", raw).Msg("unparseable date")
	return nil, ""
}

var defaultParser = NewParser()

// ParseDate normalizes raw with the default Portuguese parser.
// Returns nil if the input is empty or unparseable.
func ParseDate(raw any, referenceYear int) *Date {
	return defaultParser.Parse(raw, referenceYear)
}

// unwrap dereferences pointers and turns json.Number into int64 or float64.
// Typed nil pointers become untyped nil.
func unwrap(raw any) any {
	if raw == nil {
		return nil
	}
	rv := reflect.ValueOf(raw)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	v := rv.Interface()
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return i
		}
		if f, err := n.Float64(); err == nil {
			return f
		}
		return n.String()
	}
	return v
}

// isBlank reports values that carry no date at all: nil, blank strings,
// false and numeric zero.
func isBlank(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return strings.TrimSpace(rv.String()) == ""
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return rv.IsZero()
	case reflect.Slice, reflect.Map:
		return rv.IsNil()
	}
	return false
}
