package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/workup/datenorm/internal/db"
	"github.com/workup/datenorm/internal/exitcode"
	"github.com/workup/datenorm/internal/logging"
	"github.com/workup/datenorm/internal/report"
)

var activityYear int

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Print the monthly activity chart from loaded records",
	RunE:  runActivity,
}

func init() {
	activityCmd.Flags().IntVar(&activityYear, "year", 0, "Chart year (default: reference year)")
	rootCmd.AddCommand(activityCmd)
}

func runActivity(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	ctx := context.Background()

	if cfg.DSN == "" {
		log.Error().Msg("--dsn or DATENORM_DB_URL is required")
		os.Exit(exitcode.UsageError)
	}
	year := activityYear
	if year == 0 {
		year = cfg.ResolveReferenceYear(time.Now())
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	counts, err := db.MonthlyCounts(ctx, pool, year)
	if err != nil {
		log.Error().Err(err).Msg("activity query failed")
		os.Exit(exitcode.LoadError)
	}

	fmt.Printf("=== activity %d ===\n", year)
	return report.WriteChart(os.Stdout, report.MonthlyFromCounts(year, counts))
}
