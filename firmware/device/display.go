//go:build tinygo

package device

import (
	"errors"
	"image/color"
	"machine"
	"time"

	"tinygo.org/x/drivers/ssd1306"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/proggy"
)

var white = color.RGBA{255, 255, 255, 255}

// oled draws the status lines on an SSD1306
type oled struct {
	dev ssd1306.Device
}

func (o *oled) Show(weight, factor string) error {
	o.dev.ClearBuffer()
	tinyfont.WriteLine(&o.dev, &freemono.Regular12pt7b, 0, 24, weight, white)
	tinyfont.WriteLine(&o.dev, &proggy.TinySZ8pt7b, 0, 56, factor, white)
	return o.dev.Display()
}

// NewDisplay configures the I2C bus and checks that a display answers at the address before
// setting it up. On error the returned Status is nil, which Bind ignores
func NewDisplay(cfg DisplayConfig) (*Status, error) {
	if cfg.Address == 0 {
		return nil, errors.New("display address not set")
	}

	err := cfg.I2C.Configure(machine.I2CConfig{Frequency: 400 * machine.KHz})
	if err != nil {
		return nil, errors.New("error configuring I2C: " + err.Error())
	}
	// the display needs time to start after a cold boot
	time.Sleep(time.Second)

	// 0x00 is the command-stream control byte, so an empty command is harmless
	err = cfg.I2C.Tx(cfg.Address, []byte{0x00}, nil)
	if err != nil {
		return nil, errors.New("no display found: " + err.Error())
	}

	o := &oled{dev: ssd1306.NewI2C(cfg.I2C)}
	o.dev.Configure(ssd1306.Config{Width: cfg.Width, Height: cfg.Height, Address: cfg.Address, VccState: ssd1306.SWITCHCAPVCC})
	o.dev.ClearDisplay()

	s := newStatus(o)
	s.draw()
	return s, nil
}
