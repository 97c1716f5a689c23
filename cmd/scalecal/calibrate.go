package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/calvinmclean/scalecal"
	"github.com/calvinmclean/scalecal/calibration"
	"github.com/calvinmclean/scalecal/hx711"
	"github.com/calvinmclean/scalecal/hx711/periphpin"
	"github.com/calvinmclean/scalecal/internal/keys"
)

func NewCalibrateCommand() *cobra.Command {
	var (
		dataPin  = "GPIO" + strconv.Itoa(scalecal.DataPin)
		clockPin = "GPIO" + strconv.Itoa(scalecal.ClockPin)
		extended bool
		lineMode bool
	)

	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Run the calibration console on an HX711 wired to local GPIO",
		Long: `Run the calibration console on an HX711 wired to this machine's GPIO pins.

Press '+' or '-' to change the calibration factor by 1. Press Esc or Ctrl+C to stop.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dev, err := periphpin.Open(dataPin, clockPin, hx711.Config{Gain: hx711.GainA128})
			if err != nil {
				return fmt.Errorf("failed to open HX711: %w", err)
			}
			scale := hx711.NewScale(dev)
			defer scale.PowerDown()

			input := cmd.InOrStdin()
			if !lineMode {
				keyReader, err := keys.Open()
				if err != nil {
					return fmt.Errorf("failed to read keyboard: %w", err)
				}
				defer keyReader.Close()
				input = keyReader
			}

			console := calibration.NewStreamConsole(input, cmd.OutOrStdout())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			go func() {
				<-console.Done()
				logrus.Debug("input closed")
				stop()
			}()

			session := calibration.NewSession(scale, console, calibration.Options{
				Extended: extended,
				OnFactor: func(f float64) {
					logrus.WithField("factor", f).Debug("calibration factor changed")
				},
			})

			err = session.Run(ctx)
			if err != nil && ctx.Err() == nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), scalecal.FormatFactor(session.Factor()))
			return nil
		},
	}

	cmd.Flags().StringVar(&dataPin, "data", dataPin, "HX711 DOUT pin name")
	cmd.Flags().StringVar(&clockPin, "clock", clockPin, "HX711 PD_SCK pin name")
	cmd.Flags().BoolVar(&extended, "extended", false, "enable the 't' (tare) and '?' (help) commands")
	cmd.Flags().BoolVar(&lineMode, "line-mode", false, "read commands from stdin instead of raw key presses")

	return cmd
}
