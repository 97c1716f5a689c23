//go:build tinygo

package main

import (
	"context"
	"machine"

	"github.com/calvinmclean/scalecal"
	"github.com/calvinmclean/scalecal/calibration"
	"github.com/calvinmclean/scalecal/firmware/device"
	"github.com/calvinmclean/scalecal/hx711"
)

//go:generate tinygo flash -target=arduino

// extendedCommands enables 't' (tare) and '?' (help) on the console
const extendedCommands = false

func main() {
	machine.Serial.Configure(machine.UARTConfig{BaudRate: scalecal.BaudRate})

	// D3 and D2 are scalecal.DataPin and scalecal.ClockPin
	sensor := device.NewSensor(device.SensorConfig{
		Data:  machine.D3,
		Clock: machine.D2,
		Gain:  hx711.GainA128,
	})

	opts := calibration.Options{Extended: extendedCommands}

	// the display is optional and the console must start with the banner, so errors are dropped
	display, _ := device.NewDisplay(device.DisplayConfig{
		I2C:     machine.I2C0,
		Address: 0x3C,
		Width:   128,
		Height:  64,
	})
	display.Bind(&opts)

	session := calibration.NewSession(sensor, machine.Serial, opts)

	err := session.Run(context.Background())
	if err != nil {
		// Run only returns if the sensor could not be started
		println(err.Error())
	}
	for {
	}
}
