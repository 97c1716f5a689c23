package calibration

import "io"

// Sensor is the load cell amplifier used by a Session
type Sensor interface {
	// Begin prepares the sensor's pins and wakes it up
	Begin() error
	// Tare averages the given number of samples and uses the result as the zero offset
	Tare(times int) error
	// SetScale sets the divisor applied to zeroed readings
	SetScale(scale float64)
	// GetUnits returns the average of the given number of samples, zeroed and scaled
	GetUnits(times int) (float64, error)
}

// Console is the serial channel that the operator reads and types on. machine.Serial satisfies it
type Console interface {
	io.Writer
	// Buffered returns how many bytes can be read without blocking
	Buffered() int
	ReadByte() (byte, error)
}
