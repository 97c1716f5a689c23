package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/calvinmclean/scalecal/controller"
	"github.com/calvinmclean/scalecal/internal/keys"
)

// bindConfigFlags registers flags that override the environment configuration
func bindConfigFlags(cmd *cobra.Command, cfg *controller.Config) {
	cmd.Flags().StringVarP(&cfg.SerialPort, "port", "p", cfg.SerialPort, "serial port of the firmware, or 'none' to replay stdin (env SERIAL_PORT)")
	cmd.Flags().StringVarP(&cfg.BaudRate, "baud", "b", cfg.BaudRate, "serial baud rate, default 9600 (env BAUD_RATE)")
	cmd.Flags().StringVar(&cfg.TWChartAddr, "twchart", cfg.TWChartAddr, "TWChart server address (env TWCHART_ADDR)")
	cmd.Flags().StringVar(&cfg.SessionName, "session", cfg.SessionName, "TWChart session name (env SESSION_NAME)")
	cmd.Flags().StringVar(&cfg.RecordFile, "record", cfg.RecordFile, "write weight readings to this CSV file on exit (env RECORD_FILE)")
}

// defaultSerialPort picks the first USB serial port when none is configured
func defaultSerialPort(cfg *controller.Config) error {
	if cfg.SerialPort != "" {
		return nil
	}

	ports, err := controller.GetSerialPorts()
	if err != nil {
		return err
	}

	cfg.SerialPort = ports[0]
	logrus.WithField("port", cfg.SerialPort).Info("using first USB serial port")
	return nil
}

func NewMonitorCommand() *cobra.Command {
	cfg := controller.ConfigFromEnv()
	var raw bool

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Bridge this terminal to the calibration firmware over a serial port",
		Long: `Bridge this terminal to the calibration firmware over a serial port.

Device output is echoed and weight readings are recorded. Typed characters are sent to the
device, so '+' and '-' adjust the calibration factor. A summary of the readings is printed on exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := defaultSerialPort(&cfg)
			if err != nil {
				return err
			}

			c, err := controller.New(cfg)
			if err != nil {
				return err
			}

			input := cmd.InOrStdin()
			if raw {
				keyReader, err := keys.Open()
				if err != nil {
					c.Close()
					return fmt.Errorf("failed to read keyboard: %w", err)
				}
				defer keyReader.Close()
				input = keyReader
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			if raw {
				// Esc and Ctrl+C end the key stream instead of raising SIGINT
				input = stopOnEOF(input, stop)
			}

			runErr := c.Run(ctx, input, cmd.OutOrStdout())

			summary, err := c.Summary()
			if err == nil {
				printSummary(cmd.OutOrStdout(), summary)
				printAverage(cmd.OutOrStdout(), c.Average())
			}
			if factor, ok := c.Factor(); ok {
				printFactor(cmd.OutOrStdout(), factor)
			}

			closeErr := c.Close()
			if runErr != nil {
				return runErr
			}
			return closeErr
		},
	}

	bindConfigFlags(cmd, &cfg)
	cmd.Flags().BoolVar(&raw, "raw", false, "send key presses immediately without waiting for Enter")

	return cmd
}

type eofReader struct {
	io.Reader
	onEOF func()
}

func (r eofReader) Read(p []byte) (int, error) {
	n, err := r.Reader.Read(p)
	if err == io.EOF {
		r.onEOF()
	}
	return n, err
}

func stopOnEOF(r io.Reader, stop func()) io.Reader {
	return eofReader{Reader: r, onEOF: stop}
}
