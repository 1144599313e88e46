package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/workup/datenorm/internal/config"
)

var (
	cfg        config.Config
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "datenorm",
	Short: "Activity date normalizer and Postgres loader",
	Long: "Normalizes the heterogeneous dates of exported projects and events " +
		"and bulk-loads the records into Postgres via the COPY protocol.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			return cfg.LoadFromFile(configPath)
		}
		return cfg.Prepare()
	},
}

func init() {
	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("DATENORM_DB_URL"), "Postgres connection string (or set DATENORM_DB_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&cfg.LogLevel, "log-level", "info", "Log level: debug, info, warn or error")
	pf.StringVar(&configPath, "config", "", "Path to YAML config (kinds, locale, reference_year)")
	pf.IntVar(&cfg.ReferenceYear, "reference-year", 0, "Year for dates written without one (default: current year)")
}
