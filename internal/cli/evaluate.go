package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Simplici0/toolcost/internal/consumption"
	"github.com/Simplici0/toolcost/internal/metrics"
	"github.com/Simplici0/toolcost/internal/report"
	"github.com/Simplici0/toolcost/internal/scenario"
)

type evaluateOptions struct {
	file        string
	format      string
	reference   int
	alternative int
}

func newEvaluateCmd() *cobra.Command {
	opts := evaluateOptions{}

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate the tools of a scenario file",
		Long: `Reads a YAML scenario (job size, annual settings, tool list), computes the
consumption of every tool and prints them ranked by cost per meter.`,
		Example: `  # Rank the tools of a scenario
  toolcost evaluate -f scenario.yaml

  # Compare tool 2 (current practice) against tool 1 and emit JSON
  toolcost evaluate -f scenario.yaml --reference 2 --alternative 1 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "scenario YAML file")
	cmd.Flags().StringVar(&opts.format, "format", "table", "output format: table, csv or json")
	cmd.Flags().IntVar(&opts.reference, "reference", 0, "1-based position of the current-practice tool (overrides the file)")
	cmd.Flags().IntVar(&opts.alternative, "alternative", 0, "1-based position of the alternative tool (overrides the file)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runEvaluate(w io.Writer, opts evaluateOptions) error {
	write, err := writerFor(opts.format)
	if err != nil {
		return err
	}

	f, err := scenario.Load(opts.file)
	if err != nil {
		return err
	}
	if opts.reference > 0 {
		f.Compare.Reference = opts.reference
	}
	if opts.alternative > 0 {
		f.Compare.Alternative = opts.alternative
	}

	tools, err := f.ToolList()
	if err != nil {
		return err
	}
	if n := len(tools); f.Compare.Reference > n || f.Compare.Alternative > n {
		return fmt.Errorf("comparison positions must be between 1 and %d", n)
	}

	ev := consumption.EvaluateBasis(f.Basis, tools)
	metrics.ObserveEvaluation("cli", ev.Results)
	slog.Debug("scenario evaluated", "file", opts.file, "tools", len(ev.Results))

	return write(w, report.New(ev, f.Compare.Reference-1, f.Compare.Alternative-1, f.Annual))
}

func writerFor(format string) (func(io.Writer, report.Report) error, error) {
	switch strings.ToLower(format) {
	case "", "table":
		return report.WriteTable, nil
	case "csv":
		return report.WriteCSV, nil
	case "json":
		return report.WriteJSON, nil
	}
	return nil, fmt.Errorf("unknown format %q (want table, csv or json)", format)
}
