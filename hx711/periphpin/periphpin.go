// Package periphpin connects the hx711 driver to host GPIO pins through periph.io
package periphpin

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/calvinmclean/scalecal/hx711"
)

// Input reads a periph GPIO pin
type Input struct {
	Pin gpio.PinIn
}

func (p Input) Get() bool {
	return p.Pin.Read() == gpio.High
}

// Output drives a periph GPIO pin. Errors from Out are dropped since hx711.OutputPin can't report them
type Output struct {
	Pin gpio.PinOut
}

func (p Output) Set(high bool) {
	_ = p.Pin.Out(gpio.Level(high))
}

var (
	_ hx711.InputPin  = Input{}
	_ hx711.OutputPin = Output{}
)

// Open initializes the host drivers, configures the named pins and returns an hx711.Device
func Open(dataName, clockName string, cfg hx711.Config) (*hx711.Device, error) {
	_, err := host.Init()
	if err != nil {
		return nil, fmt.Errorf("error initializing host: %w", err)
	}

	data := gpioreg.ByName(dataName)
	if data == nil {
		return nil, fmt.Errorf("unknown data pin %q", dataName)
	}
	clock := gpioreg.ByName(clockName)
	if clock == nil {
		return nil, fmt.Errorf("unknown clock pin %q", clockName)
	}

	err = data.In(gpio.PullNoChange, gpio.NoEdge)
	if err != nil {
		return nil, fmt.Errorf("error configuring data pin: %w", err)
	}
	err = clock.Out(gpio.Low)
	if err != nil {
		return nil, fmt.Errorf("error configuring clock pin: %w", err)
	}

	return hx711.New(Input{data}, Output{clock}, cfg), nil
}
