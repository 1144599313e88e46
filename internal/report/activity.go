// Package report derives the dashboard figures from normalized activity:
// the monthly activity chart, the participation split, newest-first
// ordering and human-readable durations.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/workup/datenorm/internal/model"
	"github.com/workup/datenorm/internal/normalize"
)

// MonthLabels are the chart's x-axis labels, January first.
var MonthLabels = [12]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// MonthBucket is one bar group of the monthly activity chart.
type MonthBucket struct {
	Label      string
	MonthIndex int
	Year       int
	Projects   int
	Events     int
}

// Slice is one wedge of the participation distribution.
type Slice struct {
	Name  string
	Value int
}

func emptyBuckets(year int) []MonthBucket {
	buckets := make([]MonthBucket, 12)
	for i := range buckets {
		buckets[i] = MonthBucket{Label: MonthLabels[i], MonthIndex: i, Year: year}
	}
	return buckets
}

func (b *MonthBucket) add(kind string, n int) {
	switch kind {
	case model.KindProject.Name:
		b.Projects += n
	case model.KindEvent.Name:
		b.Events += n
	}
}

// MonthlyActivity counts rows by the month of their start date, keeping
// only starts that fall in year. Rows without a start date are skipped.
func MonthlyActivity(year int, rows []model.ActivityRow) []MonthBucket {
	buckets := emptyBuckets(year)
	for i := range rows {
		if rows[i].StartDate == nil {
			continue
		}
		d := normalize.DateOf(*rows[i].StartDate)
		if d.Year != year {
			continue
		}
		buckets[d.MonthIndex].add(rows[i].Kind, 1)
	}
	return buckets
}

// MonthlyFromCounts builds the chart from aggregated database counts.
func MonthlyFromCounts(year int, counts []model.MonthCount) []MonthBucket {
	buckets := emptyBuckets(year)
	for _, c := range counts {
		if c.MonthIndex < 0 || c.MonthIndex > 11 {
			continue
		}
		buckets[c.MonthIndex].add(c.Kind, int(c.Count))
	}
	return buckets
}

// Distribution counts rows per kind, dated or not. Kinds with no rows are
// omitted.
func Distribution(rows []model.ActivityRow) []Slice {
	totals := make(map[string]int)
	for i := range rows {
		totals[rows[i].Kind]++
	}
	var slices []Slice
	for _, k := range model.AllKinds {
		if n := totals[k.Name]; n > 0 {
			slices = append(slices, Slice{Name: k.Label, Value: n})
		}
	}
	return slices
}

// WriteChart renders the monthly buckets as an aligned text table.
func WriteChart(w io.Writer, buckets []MonthBucket) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Mês\t%s\t%s\t\n", model.KindProject.Label, model.KindEvent.Label)
	for _, b := range buckets {
		fmt.Fprintf(tw, "%s/%d\t%d %s\t%d %s\t\n",
			b.Label, b.Year,
			b.Projects, strings.Repeat("#", b.Projects),
			b.Events, strings.Repeat("#", b.Events))
	}
	return tw.Flush()
}
