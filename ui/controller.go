package ui

import (
	"io"
	"time"

	"github.com/calvinmclean/scalecal"
)

// controllerWrapper sends single-byte commands to the firmware
type controllerWrapper struct {
	writer          io.Writer
	lastAdjustTimer *timer
}

func (c *controllerWrapper) Increase() error {
	return c.adjust(scalecal.IncreaseChar)
}

func (c *controllerWrapper) Decrease() error {
	return c.adjust(scalecal.DecreaseChar)
}

func (c *controllerWrapper) Tare() error {
	return c.send(scalecal.TareChar)
}

func (c *controllerWrapper) adjust(b byte) error {
	if c.lastAdjustTimer != nil {
		c.lastAdjustTimer.Set(time.Now())
	}
	return c.send(b)
}

func (c *controllerWrapper) send(b byte) error {
	_, err := c.writer.Write([]byte{b})
	return err
}
