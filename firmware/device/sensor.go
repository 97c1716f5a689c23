//go:build tinygo

package device

import (
	"machine"

	"github.com/calvinmclean/scalecal/hx711"
)

// NewSensor configures the pins and creates the scale. The chip is not touched until Begin
func NewSensor(cfg SensorConfig) *hx711.Scale {
	cfg.Data.Configure(machine.PinConfig{Mode: machine.PinInput})
	cfg.Clock.Configure(machine.PinConfig{Mode: machine.PinOutput})

	dev := hx711.New(cfg.Data, cfg.Clock, hx711.Config{Gain: cfg.Gain})
	return hx711.NewScale(dev)
}
