// mkfixture converts a JSON activity export into a Parquet fixture.
// String dates are kept verbatim so the fixture still exercises every text
// shape; arrays and timestamps, which Parquet stores as text here, are
// written as ISO dates.
// Usage: go run ./cmd/mkfixture --in testdata/export.json --out testdata/export.parquet --rows 200
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	goparquet "github.com/parquet-go/parquet-go"

	"github.com/workup/datenorm/internal/model"
	"github.com/workup/datenorm/internal/normalize"
	"github.com/workup/datenorm/internal/source"
)

func main() {
	in := flag.String("in", "testdata/export.json", "input JSON export")
	out := flag.String("out", "testdata/export.parquet", "output parquet")
	maxRows := flag.Int("rows", 200, "max rows to output")
	refYear := flag.Int("reference-year", time.Now().Year(), "year for dates written without one")
	flag.Parse()

	reader, err := source.OpenJSON(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open input: %v\n", err)
		os.Exit(1)
	}
	defer reader.Close()

	records, err := source.ReadAll(reader)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read: %v\n", err)
		os.Exit(1)
	}

	var (
		rows      []model.ActivityParquetRow
		converted int
		dropped   int
	)
	kindCounts := make(map[string]int)
	for i := range records {
		if len(rows) >= *maxRows {
			break
		}
		rec := &records[i]
		kind, ok := model.KindByName(rec.Kind)
		if !ok {
			dropped++
			continue
		}
		kindCounts[kind.Name]++

		row := model.ActivityParquetRow{
			Kind:   kind.Name,
			ID:     optString(rec.ID),
			Title:  rec.Title,
			Regime: optString(rec.Regime),
		}
		if tags := normalize.ParseTags(rec.Tags); len(tags) > 0 {
			joined := strings.Join(tags, ", ")
			row.Tags = &joined
		}
		row.StartDate = dateText(rec.Start, *refYear, &converted)
		row.EndDate = dateText(rec.End, *refYear, &converted)
		row.CreatedAt = dateText(rec.Created, *refYear, &converted)
		rows = append(rows, row)
	}
	fmt.Printf("Scanned %d records\n", len(records))

	outFile, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create output: %v\n", err)
		os.Exit(1)
	}
	defer outFile.Close()

	writer := goparquet.NewGenericWriter[model.ActivityParquetRow](outFile)
	if _, err := writer.Write(rows); err != nil {
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(1)
	}
	if err := writer.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close writer: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d rows to %s\n", len(rows), *out)
	fmt.Println("Kind distribution:")
	for _, k := range model.AllKinds {
		if c := kindCounts[k.Name]; c > 0 {
			fmt.Printf("  %-10s %d\n", k.Name, c)
		}
	}
	fmt.Printf("  %-10s %d\n", "converted", converted)
	fmt.Printf("  %-10s %d\n", "dropped", dropped)
}

func optString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// dateText renders a raw date for the text column. Non-string values that
// parse are written as ISO; anything else keeps its raw rendering.
func dateText(v any, refYear int, converted *int) *string {
	if s, ok := v.(string); ok {
		return optString(s)
	}
	if d := normalize.ParseDate(v, refYear); d != nil {
		*converted++
		iso := d.ISO()
		return &iso
	}
	return normalize.RawText(v)
}
