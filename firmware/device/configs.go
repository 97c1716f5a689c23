//go:build tinygo

package device

import (
	"machine"

	"github.com/calvinmclean/scalecal/hx711"
)

// SensorConfig has the pins that the HX711 is wired to
type SensorConfig struct {
	Data  machine.Pin
	Clock machine.Pin
	Gain  hx711.Gain
}

// DisplayConfig configures the optional SSD1306 display. A zero Address disables it, as does a
// display that does not answer on the bus
type DisplayConfig struct {
	I2C     *machine.I2C
	Address uint16
	Width   int16
	Height  int16
}
