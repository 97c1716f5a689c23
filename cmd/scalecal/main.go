package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/calvinmclean/scalecal/controller"
	"github.com/calvinmclean/scalecal/ui"
)

var logLevel = "info"

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(err error) {
	if errors.Is(err, controller.ErrNoUSBSerial) {
		fmt.Fprintln(os.Stderr, "\nError: no USB serial device found")
		fmt.Fprintln(os.Stderr, "  - Is the board plugged in?")
		fmt.Fprintln(os.Stderr, "  - Use '--port none' to replay a captured console log from stdin")
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scalecal",
		Short: "scalecal calibrates HX711 load cells",
		Long: `scalecal calibrates HX711 load cells.

Tune the calibration factor with '+' and '-' until the printed weight matches a known weight,
either on local GPIO (calibrate) or against the firmware over a serial port (monitor, ui).`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger()
		},
	}

	if os.Getenv("ENABLE_UI") == "true" {
		cmd.RunE = func(cmd *cobra.Command, _ []string) error {
			return runUI(cmd.Context(), controller.ConfigFromEnv(), ui.Options{})
		}
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")

	cmd.AddCommand(
		NewCalibrateCommand(),
		NewMonitorCommand(),
		NewUICommand(),
		NewAnalyzeCommand(),
		NewPortsCommand(),
	)

	return cmd
}
