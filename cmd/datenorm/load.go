package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/workup/datenorm/internal/db"
	"github.com/workup/datenorm/internal/exitcode"
	"github.com/workup/datenorm/internal/load"
	"github.com/workup/datenorm/internal/logging"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Normalize an export file and load it into the database",
	RunE:  runLoad,
}

func init() {
	f := loadCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to JSON or Parquet export (required)")
	f.BoolVar(&cfg.Force, "force", false, "Reload even if file SHA already exists")
	_ = loadCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	ctx := context.Background()

	if err := cfg.ValidateWithDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	summary, err := load.Run(ctx, pool, log, &cfg, cfg.ResolveReferenceYear(time.Now()))
	if err != nil {
		var pe *load.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("load failed")
			switch pe.Phase {
			case "preflight":
				os.Exit(exitcode.ValidationError)
			case "stage":
				os.Exit(exitcode.CopyError)
			default:
				os.Exit(exitcode.LoadError)
			}
		}
		log.Error().Err(err).Msg("load failed")
		os.Exit(exitcode.LoadError)
	}

	if summary.AlreadyLoaded {
		fmt.Printf("File already loaded as source %d, nothing to do\n", summary.SourceFileID)
		return nil
	}

	fmt.Printf("Load complete: %d rows read, %d staged, %d rejected, %d skipped, %d unparseable dates (%.1fs)\n",
		summary.RowsRead, summary.RowsStaged, summary.RowsRejected, summary.RowsSkipped,
		summary.DatesAbsent, summary.DurationTotal.Seconds())

	if summary.RowsRejected > 0 {
		os.Exit(exitcode.PartialSuccess)
	}
	return nil
}
