package hx711

import (
	"errors"
)

// ErrZeroScale is returned by GetUnits when the scale is 0
var ErrZeroScale = errors.New("scale is zero")

// Scale converts raw HX711 conversions into weight units using a zero offset and a scale divisor
type Scale struct {
	dev    *Device
	offset float64
	scale  float64
}

// NewScale creates a Scale with no offset and a scale of 1
func NewScale(dev *Device) *Scale {
	return &Scale{dev: dev, scale: 1}
}

// Begin wakes the chip and applies the configured gain
func (s *Scale) Begin() error {
	s.dev.PowerUp()
	return s.dev.SetGain(s.dev.Gain())
}

// ReadAverage returns the mean of the given number of raw conversions
func (s *Scale) ReadAverage(times int) (float64, error) {
	if times < 1 {
		times = 1
	}

	var sum int64
	for range times {
		v, err := s.dev.Read()
		if err != nil {
			return 0, err
		}
		sum += int64(v)
	}

	return float64(sum) / float64(times), nil
}

// GetValue returns the averaged reading minus the tare offset
func (s *Scale) GetValue(times int) (float64, error) {
	avg, err := s.ReadAverage(times)
	if err != nil {
		return 0, err
	}
	return avg - s.offset, nil
}

// GetUnits returns GetValue divided by the scale
func (s *Scale) GetUnits(times int) (float64, error) {
	if s.scale == 0 {
		return 0, ErrZeroScale
	}

	v, err := s.GetValue(times)
	if err != nil {
		return 0, err
	}
	return v / s.scale, nil
}

// Tare stores the current averaged reading as the zero offset
func (s *Scale) Tare(times int) error {
	avg, err := s.ReadAverage(times)
	if err != nil {
		return err
	}
	s.offset = avg
	return nil
}

func (s *Scale) SetScale(scale float64) {
	s.scale = scale
}

func (s *Scale) Scale() float64 {
	return s.scale
}

func (s *Scale) SetOffset(offset float64) {
	s.offset = offset
}

func (s *Scale) Offset() float64 {
	return s.offset
}

// PowerDown puts the chip to sleep until the next Begin
func (s *Scale) PowerDown() {
	s.dev.PowerDown()
}
