package main_test

import (
	"bufio"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial"

	"github.com/calvinmclean/scalecal"
)

// portEnv names the serial port of a board running the calibration firmware
const portEnv = "SCALECAL_TEST_PORT"

func openPort(t *testing.T) serial.Port {
	t.Helper()

	name := os.Getenv(portEnv)
	if name == "" {
		t.Skipf("%s is not set", portEnv)
	}

	port, err := serial.Open(name, &serial.Mode{BaudRate: scalecal.BaudRate})
	require.NoError(t, err, "unexpected error opening serial connection")
	t.Cleanup(func() { port.Close() })

	require.NoError(t, port.SetReadTimeout(100*time.Millisecond))
	return port
}

// readLineWithPrefix reads lines until one starts with prefix or the timeout passes
func readLineWithPrefix(t *testing.T, r *bufio.Reader, prefix string, timeout time.Duration) string {
	t.Helper()

	var line strings.Builder
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		b, err := r.ReadByte()
		if err != nil {
			// read timeout returns no data
			continue
		}
		if b != '\n' {
			line.WriteByte(b)
			continue
		}

		l := scalecal.ParseLine(line.String())
		line.Reset()
		if strings.HasPrefix(l.Raw, prefix) {
			return l.Raw
		}
	}

	t.Fatalf("no line starting with %q within %s", prefix, timeout)
	return ""
}

func TestSerial(t *testing.T) {
	port := openPort(t)
	r := bufio.NewReader(port)

	// opening the port resets most boards, so wait for the loop to start
	readLineWithPrefix(t, r, scalecal.WeightPrompt, 10*time.Second)

	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"Increase", "+", scalecal.FormatFactor(scalecal.InitialCalibrationFactor + 1)},
		{"Decrease", "--", scalecal.FormatFactor(scalecal.InitialCalibrationFactor - 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := port.Write([]byte(tt.in))
			require.NoError(t, err)

			var last string
			for range tt.in {
				last = readLineWithPrefix(t, r, scalecal.FactorLabel, 2*time.Second)
			}
			assert.Equal(t, tt.expected, last)
		})
	}

	t.Run("WeightLines", func(t *testing.T) {
		var line strings.Builder
		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) {
			b, err := r.ReadByte()
			if err != nil {
				continue
			}
			if b != '\n' {
				line.WriteByte(b)
				continue
			}
			l := scalecal.ParseLine(line.String())
			if l.Kind == scalecal.LineWeight {
				parts := strings.SplitN(l.Raw, ".", 2)
				require.Len(t, parts, 2)
				assert.Len(t, parts[1], 3)
				return
			}
			line.Reset()
		}
		t.Fatal("no weight line received")
	})
}
