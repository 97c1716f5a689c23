// Package hx711 drives the HX711 24-bit load cell amplifier over its two-wire serial interface.
//
// The pins are small interfaces so the same driver works with TinyGo's machine.Pin and with
// host GPIO libraries (see the periphpin package).
package hx711

import (
	"errors"
	"time"
)

// ErrTimeout is returned when the chip does not signal a ready conversion in time
var ErrTimeout = errors.New("timeout waiting for HX711")

// Gain selects the input channel and amplifier gain used for the next conversion. The value is the
// number of extra clock pulses sent after the 24 data bits
type Gain int

const (
	GainA128 Gain = 1
	GainB32  Gain = 2
	GainA64  Gain = 3
)

const (
	defaultBitDelay     = time.Microsecond
	defaultReadTimeout  = time.Second
	defaultPollInterval = time.Millisecond

	// the chip enters power down when the clock stays high for more than 60us
	powerDownDelay = 100 * time.Microsecond
)

// OutputPin drives the PD_SCK line
type OutputPin interface {
	Set(bool)
}

// InputPin reads the DOUT line
type InputPin interface {
	Get() bool
}

// Config has the optional settings for a Device
type Config struct {
	Gain Gain
	// BitDelay is how long each clock edge is held
	BitDelay time.Duration
	// ReadTimeout limits how long Read waits for a conversion
	ReadTimeout time.Duration
}

// Device is an HX711 connected to a data and a clock pin
type Device struct {
	data  InputPin
	clock OutputPin

	gain         Gain
	bitDelay     time.Duration
	readTimeout  time.Duration
	pollInterval time.Duration
}

// New creates a Device. The pins must already be configured as input (data) and output (clock)
func New(data InputPin, clock OutputPin, cfg Config) *Device {
	if cfg.Gain == 0 {
		cfg.Gain = GainA128
	}
	if cfg.BitDelay == 0 {
		cfg.BitDelay = defaultBitDelay
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = defaultReadTimeout
	}

	return &Device{
		data:         data,
		clock:        clock,
		gain:         cfg.Gain,
		bitDelay:     cfg.BitDelay,
		readTimeout:  cfg.ReadTimeout,
		pollInterval: defaultPollInterval,
	}
}

// Gain returns the gain used for conversions
func (d *Device) Gain() Gain {
	return d.gain
}

// SetGain selects a new gain. The chip only applies it after a full read, so one conversion is
// read and discarded
func (d *Device) SetGain(g Gain) error {
	if g < GainA128 || g > GainA64 {
		return errors.New("invalid gain")
	}
	d.gain = g
	d.clock.Set(false)

	_, err := d.Read()
	return err
}

// IsReady reports whether a conversion is waiting. DOUT is pulled low when data is ready
func (d *Device) IsReady() bool {
	return !d.data.Get()
}

// WaitReady polls until a conversion is ready or the timeout expires
func (d *Device) WaitReady(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for !d.IsReady() {
		if time.Now().After(deadline) {
			return ErrTimeout
		}
		time.Sleep(d.pollInterval)
	}
	return nil
}

// Read waits for a conversion and returns it as a signed value
func (d *Device) Read() (int32, error) {
	err := d.WaitReady(d.readTimeout)
	if err != nil {
		return 0, err
	}

	var value uint32
	for range 24 {
		value <<= 1
		if d.pulse() {
			value |= 1
		}
	}

	// extra pulses select the gain of the next conversion
	for range int(d.gain) {
		d.pulse()
	}

	// sign extend the 24 bit two's complement value
	if value&0x800000 != 0 {
		value |= 0xFF000000
	}

	return int32(value), nil
}

// PowerDown puts the chip into low power mode
func (d *Device) PowerDown() {
	d.clock.Set(false)
	d.clock.Set(true)
	busyWait(powerDownDelay)
}

// PowerUp wakes the chip. It resets to channel A with gain 128, so SetGain should be called if
// another gain is used
func (d *Device) PowerUp() {
	d.clock.Set(false)
}

// pulse sends one clock pulse and samples DOUT while the clock is high
func (d *Device) pulse() bool {
	d.clock.Set(true)
	busyWait(d.bitDelay)
	bit := d.data.Get()
	d.clock.Set(false)
	busyWait(d.bitDelay)
	return bit
}

// busyWait is used instead of time.Sleep because the clock must not stay high for more than 60us
// and sleeping can overshoot by much more than that
func busyWait(d time.Duration) {
	start := time.Now()
	for time.Since(start) < d {
	}
}
