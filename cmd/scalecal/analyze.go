package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/calvinmclean/scalecal/analysis"
)

type analyzeOptions struct {
	smooth   int
	changes  bool
	resample float64
	out      string
	thrust   bool
}

func NewAnalyzeCommand() *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze <recording.csv>",
		Short: "Print statistics for a recorded CSV file",
		Long: `Print statistics for a CSV file with "Time (s)" and "Weight (g)" columns, like the ones
written by 'monitor --record'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open recording: %w", err)
			}
			defer f.Close()

			series, err := analysis.ReadCSV(f)
			if err != nil {
				return fmt.Errorf("failed to read recording: %w", err)
			}

			return analyze(cmd.OutOrStdout(), series, opts)
		},
	}

	cmd.Flags().IntVar(&opts.smooth, "smooth", 0, "print the moving average over this many samples")
	cmd.Flags().BoolVar(&opts.changes, "changes", false, "print the weight change between successive samples")
	cmd.Flags().Float64Var(&opts.resample, "resample", 0, "resample onto an even time grid with this step in seconds")
	cmd.Flags().StringVar(&opts.out, "out", "", "write the resampled recording to this CSV file")
	cmd.Flags().BoolVar(&opts.thrust, "thrust", false, "treat weights as kgf and also report Newtons")

	return cmd
}

func analyze(w io.Writer, series analysis.Series, opts analyzeOptions) error {
	if opts.resample > 0 {
		resampled, err := series.Resample(opts.resample)
		if err != nil {
			return fmt.Errorf("failed to resample: %w", err)
		}
		series = resampled

		if opts.out != "" {
			err = writeRecording(opts.out, series)
			if err != nil {
				return err
			}
		}
	} else if opts.out != "" {
		return fmt.Errorf("--out requires --resample")
	}

	summary, err := series.Summarize()
	if err != nil {
		return err
	}
	printSummary(w, summary)

	if opts.thrust {
		fmt.Fprintln(w)
		fmt.Fprintln(w, bold("Thrust"))
		fmt.Fprintf(w, "  Max thrust:       %s\n", color.New(color.Bold, color.FgGreen).Sprintf("%.3f N", analysis.ToNewtons(summary.Max)))
		fmt.Fprintf(w, "  Average thrust:   %.3f N\n", analysis.ToNewtons(summary.Mean))
		fmt.Fprintf(w, "  Total impulse:    %.3f N·s\n", analysis.ToNewtons(summary.Impulse))
	}

	if opts.smooth > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, bold("Smoothed (window %d)", opts.smooth))
		fmt.Fprintln(w, formatValues(series.Smooth(opts.smooth)))
	}

	if opts.changes {
		fmt.Fprintln(w)
		fmt.Fprintln(w, bold("Weight changes"))
		fmt.Fprintln(w, formatValues(series.Changes()))
	}

	return nil
}

func writeRecording(path string, series analysis.Series) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer f.Close()

	err = series.WriteCSV(f)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func formatValues(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%.3f", v)
	}
	return strings.Join(parts, " ")
}
