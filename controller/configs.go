package controller

import (
	"fmt"
	"os"
	"strconv"

	"github.com/calvinmclean/scalecal"
)

// Config has the settings for connecting to the calibration firmware
type Config struct {
	SerialPort  string
	BaudRate    string
	TWChartAddr string
	SessionName string
	// RecordFile is a CSV file that weight readings are written to on Close
	RecordFile string
}

// ConfigFromEnv reads a Config from SERIAL_PORT, BAUD_RATE, TWCHART_ADDR, SESSION_NAME and RECORD_FILE
func ConfigFromEnv() Config {
	return Config{
		SerialPort:  os.Getenv("SERIAL_PORT"),
		BaudRate:    os.Getenv("BAUD_RATE"),
		TWChartAddr: os.Getenv("TWCHART_ADDR"),
		SessionName: os.Getenv("SESSION_NAME"),
		RecordFile:  os.Getenv("RECORD_FILE"),
	}
}

// Baud parses BaudRate, defaulting to the firmware's rate
func (c Config) Baud() (int, error) {
	if c.BaudRate == "" {
		return scalecal.BaudRate, nil
	}

	baud, err := strconv.Atoi(c.BaudRate)
	if err != nil || baud <= 0 {
		return 0, fmt.Errorf("invalid baud rate: %q", c.BaudRate)
	}
	return baud, nil
}

// Session returns the TWChart session name, with a default based on the current date
func (c Config) Session(date string) string {
	if c.SessionName != "" {
		return c.SessionName
	}
	return "Scale calibration " + date
}
