package device

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/calvinmclean/scalecal/calibration"
)

type fakeScreen struct {
	lines [][2]string
	err   error
}

func (f *fakeScreen) Show(weight, factor string) error {
	f.lines = append(f.lines, [2]string{weight, factor})
	return f.err
}

func newTestStatus() (*Status, *fakeScreen, *time.Time) {
	screen := &fakeScreen{}
	s := newStatus(screen)
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	return s, screen, &now
}

func TestStatus(t *testing.T) {
	s, screen, now := newTestStatus()

	s.SetWeight(1.2344)
	assert.Equal(t, [][2]string{{"1.234", "Calibration Factor: -9564.36"}}, screen.lines)

	t.Run("WeightThrottled", func(t *testing.T) {
		*now = now.Add(100 * time.Millisecond)
		s.SetWeight(2)
		assert.Len(t, screen.lines, 1)
	})

	t.Run("FactorImmediate", func(t *testing.T) {
		s.SetFactor(-9563.3564)
		assert.Equal(t, [2]string{"2.000", "Calibration Factor: -9563.36"}, screen.lines[1])
	})

	t.Run("WeightAfterInterval", func(t *testing.T) {
		*now = now.Add(statusInterval)
		s.SetWeight(3)
		assert.Equal(t, [2]string{"3.000", "Calibration Factor: -9563.36"}, screen.lines[2])
	})

	t.Run("ScreenError", func(t *testing.T) {
		screen.err = errors.New("i2c nack")
		s.SetFactor(-1)
		assert.Len(t, screen.lines, 4)
	})
}

func TestStatusBind(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		var s *Status
		opts := calibration.Options{}
		s.Bind(&opts)
		assert.Nil(t, opts.OnWeight)
		assert.Nil(t, opts.OnFactor)
	})

	t.Run("Bound", func(t *testing.T) {
		s, screen, _ := newTestStatus()
		opts := calibration.Options{}
		s.Bind(&opts)

		opts.OnFactor(-9565.3564)
		assert.Equal(t, [][2]string{{"0.000", "Calibration Factor: -9565.36"}}, screen.lines)
	})
}
