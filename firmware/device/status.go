package device

import (
	"strconv"
	"time"

	"github.com/calvinmclean/scalecal"
	"github.com/calvinmclean/scalecal/calibration"
)

const statusInterval = 250 * time.Millisecond

// screen shows the two status lines
type screen interface {
	Show(weight, factor string) error
}

// Status keeps the latest weight and calibration factor and redraws a screen when they change.
// Weight redraws are throttled, factor changes are drawn immediately
type Status struct {
	screen   screen
	weight   float64
	factor   float64
	lastDraw time.Time
	interval time.Duration
	now      func() time.Time
}

func newStatus(s screen) *Status {
	return &Status{
		screen:   s,
		factor:   scalecal.InitialCalibrationFactor,
		interval: statusInterval,
		now:      time.Now,
	}
}

// Bind sends session updates to the Status. A nil Status leaves opts unchanged
func (s *Status) Bind(opts *calibration.Options) {
	if s == nil {
		return
	}
	opts.OnWeight = s.SetWeight
	opts.OnFactor = s.SetFactor
}

// SetWeight records a new weight and redraws if enough time has passed since the last draw
func (s *Status) SetWeight(w float64) {
	s.weight = w
	if s.now().Sub(s.lastDraw) < s.interval {
		return
	}
	s.draw()
}

// SetFactor records a new calibration factor and redraws immediately
func (s *Status) SetFactor(f float64) {
	s.factor = f
	s.draw()
}

func (s *Status) draw() {
	err := s.screen.Show(strconv.FormatFloat(s.weight, 'f', 3, 64), scalecal.FormatFactor(s.factor))
	if err != nil {
		println("error drawing display:", err.Error())
	}
	s.lastDraw = s.now()
}
