package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"

	"github.com/calvinmclean/scalecal"
	"github.com/calvinmclean/scalecal/analysis"
)

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}

func printSummary(w io.Writer, s analysis.Summary) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, bold("Summary"))
	fmt.Fprintf(w, "  Samples:          %d\n", s.Count)
	fmt.Fprintf(w, "  Duration:         %.2f s\n", s.Duration)
	fmt.Fprintf(w, "  Max weight:       %s\n", color.New(color.Bold, color.FgGreen).Sprintf("%.3f g", s.Max))
	fmt.Fprintf(w, "  Min weight:       %.3f g\n", s.Min)
	fmt.Fprintf(w, "  Average weight:   %.3f g\n", s.Mean)
	fmt.Fprintf(w, "  Std deviation:    %.3f g\n", s.StdDev)
	fmt.Fprintf(w, "  Integrated:       %.3f g·s\n", s.Integral)
	fmt.Fprintf(w, "  Impulse:          %.3f g·s\n", s.Impulse)
}

func printFactor(w io.Writer, factor float64) {
	fmt.Fprintf(w, "\n%s%s\n", bold(scalecal.FactorLabel), color.CyanString(strconv.FormatFloat(factor, 'f', 2, 64)))
}

func printAverage(w io.Writer, average float64) {
	fmt.Fprintf(w, "  Last 60s average: %s\n", color.New(color.Bold).Sprintf("%.3f g", average))
}
