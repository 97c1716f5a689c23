package controller

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.bug.st/serial"

	"github.com/calvinmclean/scalecal"
	"github.com/calvinmclean/scalecal/analysis"
	"github.com/calvinmclean/scalecal/twchart"
)

// averageWindow is the span of the rolling average shown while monitoring
const averageWindow = 60 * time.Second

// Controller bridges an operator to the calibration firmware over a serial port. It forwards
// command bytes, echoes the console and records every weight reading
type Controller struct {
	cfg     Config
	port    io.ReadWriteCloser
	twchart twchartClient
	now     func() time.Time

	mtx       sync.Mutex
	start     time.Time
	started   bool
	recording analysis.Series
	window    *analysis.Window
	factor    float64
	hasFactor bool
}

// New opens the configured serial port
func New(cfg Config) (*Controller, error) {
	var port io.ReadWriteCloser
	if cfg.SerialPort != SerialPortNone {
		if cfg.SerialPort == "" {
			return nil, errors.New("missing serial port")
		}

		baud, err := cfg.Baud()
		if err != nil {
			return nil, err
		}

		port, err = serial.Open(cfg.SerialPort, &serial.Mode{BaudRate: baud})
		if err != nil {
			return nil, fmt.Errorf("error opening serial port %q: %w", cfg.SerialPort, err)
		}
	}

	var tw twchartClient = noopTWChartClient{}
	if cfg.TWChartAddr != "" {
		tw = twchart.NewClient(cfg.TWChartAddr)
	}

	return newController(cfg, port, tw), nil
}

// NewFromEnv creates a Controller using ConfigFromEnv
func NewFromEnv() (*Controller, error) {
	return New(ConfigFromEnv())
}

func newController(cfg Config, port io.ReadWriteCloser, tw twchartClient) *Controller {
	return &Controller{
		cfg:     cfg,
		port:    port,
		twchart: tw,
		now:     time.Now,
		window:  analysis.NewWindow(averageWindow),
	}
}

// Run forwards bytes from in to the device and writes device lines to out until the context is
// cancelled or the device stops sending. EOF on in does not stop Run
func (c *Controller) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	c.mtx.Lock()
	c.start = c.now()
	c.mtx.Unlock()

	err := c.twchart.StartCalibration(ctx, c.cfg.Session(c.start.Format(time.DateOnly)), c.start)
	if err != nil {
		logrus.WithError(err).Warn("failed to start twchart session")
	} else {
		c.mtx.Lock()
		c.started = true
		c.mtx.Unlock()
	}

	device := io.Reader(c.port)
	if c.port == nil {
		device = in
	} else {
		go func() {
			_, err := io.Copy(c.port, in)
			if err != nil {
				logrus.WithError(err).Debug("stopped forwarding input")
			}
		}()
	}

	done := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(device)
		for scanner.Scan() {
			c.handleLine(ctx, scanner.Text(), out)
		}
		done <- scanner.Err()
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-done:
		if err != nil {
			return fmt.Errorf("error reading from device: %w", err)
		}
		return nil
	}
}

func (c *Controller) handleLine(ctx context.Context, raw string, out io.Writer) {
	line := scalecal.ParseLine(raw)
	fmt.Fprintln(out, line.Raw)

	now := c.now()

	switch line.Kind {
	case scalecal.LineWeight:
		c.mtx.Lock()
		sample := analysis.Sample{Time: now.Sub(c.start).Seconds(), Weight: line.Value}
		c.recording = append(c.recording, sample)
		c.mtx.Unlock()
		c.window.Add(sample)
	case scalecal.LineFactor:
		c.mtx.Lock()
		c.factor = line.Value
		c.hasFactor = true
		c.mtx.Unlock()

		logrus.WithField("factor", line.Value).Info("calibration factor changed")
		err := c.twchart.RecordFactor(ctx, line.Value, now)
		if err != nil {
			logrus.WithError(err).Warn("failed to record factor in twchart")
		}
	case scalecal.LineError:
		logrus.WithField("line", line.Raw).Warn("device reported an error")
		err := c.twchart.Note(ctx, line.Raw, now)
		if err != nil {
			logrus.WithError(err).Warn("failed to record error in twchart")
		}
	case scalecal.LineText:
		if line.Raw != "" {
			logrus.WithField("line", line.Raw).Debug("device message")
		}
	}
}

// Recording returns a copy of the weight readings received so far
func (c *Controller) Recording() analysis.Series {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	result := make(analysis.Series, len(c.recording))
	copy(result, c.recording)
	return result
}

// Summary summarizes the recording
func (c *Controller) Summary() (analysis.Summary, error) {
	return c.Recording().Summarize()
}

// Average returns the mean weight over the last minute
func (c *Controller) Average() float64 {
	return c.window.Mean()
}

// Factor returns the last calibration factor reported by the device
func (c *Controller) Factor() (float64, bool) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return c.factor, c.hasFactor
}

// WriteRecording writes the recording as CSV
func (c *Controller) WriteRecording(w io.Writer) error {
	return c.Recording().WriteCSV(w)
}

// Close saves the recording if RecordFile is set, finishes the TWChart session and closes the port
func (c *Controller) Close() error {
	var errs []error

	if c.cfg.RecordFile != "" {
		errs = append(errs, c.saveRecording())
	}

	c.mtx.Lock()
	started := c.started
	c.mtx.Unlock()
	if started {
		err := c.twchart.Done(context.Background())
		if err != nil {
			errs = append(errs, fmt.Errorf("error finishing twchart session: %w", err))
		}
	}

	if c.port != nil {
		errs = append(errs, c.port.Close())
	}

	return errors.Join(errs...)
}

func (c *Controller) saveRecording() error {
	f, err := os.Create(c.cfg.RecordFile)
	if err != nil {
		return fmt.Errorf("error creating record file: %w", err)
	}
	defer f.Close()

	err = c.WriteRecording(f)
	if err != nil {
		return fmt.Errorf("error writing record file: %w", err)
	}

	logrus.WithField("file", c.cfg.RecordFile).Info("saved recording")
	return nil
}
