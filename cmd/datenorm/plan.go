package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/workup/datenorm/internal/exitcode"
	"github.com/workup/datenorm/internal/logging"
	"github.com/workup/datenorm/internal/model"
	"github.com/workup/datenorm/internal/normalize"
	"github.com/workup/datenorm/internal/report"
	"github.com/workup/datenorm/internal/source"
)

const newestShown = 5

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run normalization and stats (no writes)",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVar(&cfg.FilePath, "file", "", "Path to JSON or Parquet export (required)")
	_ = planCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(planCmd)
}

// columnStats counts one date column across the valid records.
type columnStats struct {
	name    string
	present int
	parsed  int
}

func (s *columnStats) add(raw *string, date *time.Time) {
	if raw == nil {
		return
	}
	s.present++
	if date != nil {
		s.parsed++
	}
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	sha, err := normalize.FileHash(cfg.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash file")
		os.Exit(exitcode.ValidationError)
	}

	reader, err := source.Open(cfg.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("failed to open source file")
		os.Exit(exitcode.ValidationError)
	}
	defer reader.Close()

	if err := reader.Validate(); err != nil {
		log.Error().Err(err).Msg("schema validation failed")
		os.Exit(exitcode.ValidationError)
	}

	records, err := source.ReadAll(reader)
	if err != nil {
		log.Error().Err(err).Msg("failed to read records")
		os.Exit(exitcode.ValidationError)
	}

	year := cfg.ResolveReferenceYear(time.Now())
	parser := cfg.NewParser(log)

	var (
		rows     []model.ActivityRow
		rejected int
		skipped  int
	)
	start := columnStats{name: "start"}
	end := columnStats{name: "end"}
	created := columnStats{name: "created"}

	for i := range records {
		row, err := normalize.ToActivityRow(&records[i], uuid.Nil, 0, int64(i+1), parser, year)
		if err != nil {
			rejected++
			log.Debug().Err(err).Int("row", i+1).Msg("record rejected")
			continue
		}
		if !cfg.KindSelected(row.Kind) {
			skipped++
			continue
		}
		start.add(row.StartRaw, row.StartDate)
		end.add(row.EndRaw, row.EndDate)
		created.add(row.CreatedRaw, row.CreatedDate)
		rows = append(rows, *row)
	}

	fmt.Println("=== datenorm plan ===")
	fmt.Printf("File:           %s\n", cfg.FilePath)
	fmt.Printf("SHA-256:        %s\n", sha)
	fmt.Printf("Reference year: %d\n", year)
	fmt.Printf("Records:        %d read, %d valid, %d rejected, %d skipped\n",
		len(records), len(rows), rejected, skipped)
	fmt.Println()
	fmt.Println("Date columns:")
	for _, s := range []columnStats{start, end, created} {
		fmt.Printf("  %-8s %5d present, %5d parsed, %5d unparseable\n",
			s.name, s.present, s.parsed, s.present-s.parsed)
	}

	fmt.Println()
	if err := report.WriteChart(os.Stdout, report.MonthlyActivity(year, rows)); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Distribution:")
	for _, s := range report.Distribution(rows) {
		fmt.Printf("  %-10s %d\n", s.Name, s.Value)
	}

	report.SortNewestFirst(rows, func(r model.ActivityRow) *normalize.Date {
		return report.Day(r.CreatedDate)
	})
	fmt.Println()
	fmt.Println("Newest:")
	for i := 0; i < len(rows) && i < newestShown; i++ {
		r := rows[i]
		fmt.Printf("  %-40s created %s  start %s  duration %s\n",
			r.Title,
			report.FormatDate(report.Day(r.CreatedDate)),
			report.FormatDate(report.Day(r.StartDate)),
			report.Duration(report.Day(r.StartDate), report.Day(r.EndDate)))
	}
	return nil
}
