package controller

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinmclean/scalecal/analysis"
)

type fakePort struct {
	*io.PipeReader

	mtx     sync.Mutex
	written bytes.Buffer
	closed  bool
}

func newFakePort() (*fakePort, *io.PipeWriter) {
	r, w := io.Pipe()
	return &fakePort{PipeReader: r}, w
}

func (p *fakePort) Write(b []byte) (int, error) {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	return p.written.Write(b)
}

func (p *fakePort) Written() string {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	return p.written.String()
}

func (p *fakePort) Close() error {
	p.mtx.Lock()
	p.closed = true
	p.mtx.Unlock()
	return p.PipeReader.Close()
}

type fakeTWChart struct {
	mtx      sync.Mutex
	startErr error
	name     string
	factors  []float64
	notes    []string
	done     int
}

func (f *fakeTWChart) StartCalibration(_ context.Context, name string, _ time.Time) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.name = name
	return f.startErr
}

func (f *fakeTWChart) RecordFactor(_ context.Context, factor float64, _ time.Time) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.factors = append(f.factors, factor)
	return nil
}

func (f *fakeTWChart) Note(_ context.Context, note string, _ time.Time) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.notes = append(f.notes, note)
	return nil
}

func (f *fakeTWChart) Done(context.Context) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.done++
	return nil
}

// stepClock advances one second each time it is read
func stepClock(start time.Time) func() time.Time {
	var mtx sync.Mutex
	now := start
	return func() time.Time {
		mtx.Lock()
		defer mtx.Unlock()
		result := now
		now = now.Add(time.Second)
		return result
	}
}

var testStart = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

const deviceOutput = "HX711 Calibration\r\n" +
	"Tare done! Remove all weight from scale.\r\n" +
	"Place a known weight on the scale.\r\n" +
	"0.512\r\n" +
	"Calibration Factor: -9563.36\r\n" +
	"0.513\r\n" +
	"error: timeout waiting for HX711\r\n"

func TestRun(t *testing.T) {
	port, device := newFakePort()
	tw := &fakeTWChart{}
	c := newController(Config{}, port, tw)
	c.now = stepClock(testStart)

	go func() {
		_, _ = device.Write([]byte(deviceOutput))
		device.Close()
	}()

	var out bytes.Buffer
	err := c.Run(context.Background(), strings.NewReader("+-+"), &out)
	require.NoError(t, err)

	assert.Equal(t, strings.ReplaceAll(deviceOutput, "\r\n", "\n"), out.String())

	assert.Equal(t, analysis.Series{
		{Time: 4, Weight: 0.512},
		{Time: 6, Weight: 0.513},
	}, c.Recording())

	factor, ok := c.Factor()
	assert.True(t, ok)
	assert.Equal(t, -9563.36, factor)
	assert.InDelta(t, 0.5125, c.Average(), 1e-9)

	assert.Equal(t, "Scale calibration 2026-10-18", tw.name)
	assert.Equal(t, []float64{-9563.36}, tw.factors)
	assert.Equal(t, []string{"error: timeout waiting for HX711"}, tw.notes)

	assert.Eventually(t, func() bool {
		return port.Written() == "+-+"
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, c.Close())
	assert.True(t, port.closed)
	assert.Equal(t, 1, tw.done)
}

func TestRunCancel(t *testing.T) {
	port, _ := newFakePort()
	c := newController(Config{}, port, noopTWChartClient{})

	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error)
	go func() {
		errs <- c.Run(ctx, strings.NewReader(""), io.Discard)
	}()

	cancel()
	select {
	case err := <-errs:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	assert.NoError(t, c.Close())
}

func TestRunReadError(t *testing.T) {
	port, device := newFakePort()
	c := newController(Config{}, port, noopTWChartClient{})

	device.CloseWithError(errors.New("unplugged"))

	err := c.Run(context.Background(), strings.NewReader(""), io.Discard)
	require.Error(t, err)
	assert.Equal(t, "error reading from device: unplugged", err.Error())
}

func TestReplay(t *testing.T) {
	recordFile := filepath.Join(t.TempDir(), "recording.csv")
	tw := &fakeTWChart{startErr: errors.New("unavailable")}
	c := newController(Config{SerialPort: SerialPortNone, SessionName: "bench", RecordFile: recordFile}, nil, tw)
	c.now = stepClock(testStart)

	err := c.Run(context.Background(), strings.NewReader(deviceOutput), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "bench", tw.name)

	summary, err := c.Summary()
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Count)
	assert.InDelta(t, 0.513, summary.Max, 1e-12)

	require.NoError(t, c.Close())
	// session never started
	assert.Equal(t, 0, tw.done)

	data, err := os.ReadFile(recordFile)
	require.NoError(t, err)
	assert.Equal(t, "Time (s),Weight (g)\n4.00,0.512\n6.00,0.513\n", string(data))
}

func TestNew(t *testing.T) {
	t.Run("MissingPort", func(t *testing.T) {
		_, err := New(Config{})
		require.Error(t, err)
		assert.Equal(t, "missing serial port", err.Error())
	})

	t.Run("InvalidBaud", func(t *testing.T) {
		_, err := New(Config{SerialPort: "/dev/ttyUSB0", BaudRate: "fast"})
		require.Error(t, err)
		assert.Equal(t, `invalid baud rate: "fast"`, err.Error())
	})

	t.Run("NoDevice", func(t *testing.T) {
		c, err := New(Config{SerialPort: SerialPortNone, TWChartAddr: "http://localhost:8080"})
		require.NoError(t, err)
		assert.Nil(t, c.port)
		assert.NotNil(t, c.twchart)
	})
}

func TestConfig(t *testing.T) {
	tests := []struct {
		name     string
		baudRate string
		expected int
		err      string
	}{
		{"Default", "", 9600, ""},
		{"Custom", "115200", 115200, ""},
		{"NotANumber", "abc", 0, `invalid baud rate: "abc"`},
		{"Negative", "-1", 0, `invalid baud rate: "-1"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			baud, err := Config{BaudRate: tt.baudRate}.Baud()
			if tt.err != "" {
				require.Error(t, err)
				assert.Equal(t, tt.err, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, baud)
		})
	}

	t.Run("Session", func(t *testing.T) {
		assert.Equal(t, "Scale calibration 2026-10-18", Config{}.Session("2026-10-18"))
		assert.Equal(t, "custom", Config{SessionName: "custom"}.Session("2026-10-18"))
	})

	t.Run("FromEnv", func(t *testing.T) {
		t.Setenv("SERIAL_PORT", "/dev/ttyACM0")
		t.Setenv("BAUD_RATE", "9600")
		t.Setenv("TWCHART_ADDR", "http://twchart")
		t.Setenv("SESSION_NAME", "bench")
		t.Setenv("RECORD_FILE", "out.csv")

		assert.Equal(t, Config{
			SerialPort:  "/dev/ttyACM0",
			BaudRate:    "9600",
			TWChartAddr: "http://twchart",
			SessionName: "bench",
			RecordFile:  "out.csv",
		}, ConfigFromEnv())
	})
}
