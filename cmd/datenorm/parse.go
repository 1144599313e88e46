package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/workup/datenorm/internal/logging"
	"github.com/workup/datenorm/internal/report"
)

var parseJSON bool

var parseCmd = &cobra.Command{
	Use:   "parse [values...]",
	Short: "Normalize date values given on the command line",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Decode each value as JSON first (e.g. [2025,3,12] or 1741737600000)")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	parser := cfg.NewParser(log)
	year := cfg.ResolveReferenceYear(time.Now())

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INPUT\tDATE\tSTRATEGY\t")
	for _, arg := range args {
		var raw any = arg
		if parseJSON {
			dec := json.NewDecoder(bytes.NewReader([]byte(arg)))
			dec.UseNumber()
			if err := dec.Decode(&raw); err != nil {
				return fmt.Errorf("decode %q: %w", arg, err)
			}
		}
		d, strategy := parser.Resolve(raw, year)
		shown := report.Unknown
		if d != nil {
			shown = d.ISO()
		}
		if strategy == "" {
			strategy = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", arg, shown, strategy)
	}
	return tw.Flush()
}
