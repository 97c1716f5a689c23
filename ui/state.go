package ui

import (
	"bytes"
	"strconv"
	"sync"
	"time"

	"github.com/calvinmclean/scalecal"
	"github.com/calvinmclean/scalecal/analysis"
)

const (
	maxLogLines   = 200
	averageWindow = 60 * time.Second
)

// state is built from the firmware's console output and rendered by the UI
type state struct {
	mtx     sync.Mutex
	partial []byte
	start   time.Time
	window  *analysis.Window

	weight  string
	average string
	factor  string
	status  string
	log     []string
}

// snapshot is a copy of the displayed values
type snapshot struct {
	Weight  string
	Average string
	Factor  string
	Status  string
	Log     []string
}

func newState() *state {
	return &state{
		window:  analysis.NewWindow(averageWindow),
		weight:  "--",
		average: "--",
		factor:  "--",
		status:  "Waiting for device",
	}
}

// write consumes console output and returns true if any complete line was handled
func (s *state) write(p []byte, now time.Time) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.partial = append(s.partial, p...)

	updated := false
	for {
		i := bytes.IndexByte(s.partial, '\n')
		if i < 0 {
			break
		}

		s.apply(scalecal.ParseLine(string(s.partial[:i])), now)
		s.partial = s.partial[i+1:]
		updated = true
	}

	return updated
}

func (s *state) apply(line scalecal.Line, now time.Time) {
	if line.Raw == "" {
		return
	}

	if s.start.IsZero() {
		s.start = now
	}

	switch line.Kind {
	case scalecal.LineWeight:
		s.weight = line.Raw
		s.window.Add(analysis.Sample{Time: now.Sub(s.start).Seconds(), Weight: line.Value})
		s.average = strconv.FormatFloat(s.window.Mean(), 'f', 3, 64)
		return
	case scalecal.LineFactor:
		s.factor = strconv.FormatFloat(line.Value, 'f', 2, 64)
	case scalecal.LineError:
		s.status = line.Raw
	case scalecal.LineText:
		s.status = line.Raw
	}

	s.log = append(s.log, line.Raw)
	if len(s.log) > maxLogLines {
		s.log = s.log[len(s.log)-maxLogLines:]
	}
}

func (s *state) snapshot() snapshot {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return snapshot{
		Weight:  s.weight,
		Average: s.average,
		Factor:  s.factor,
		Status:  s.status,
		Log:     append([]string(nil), s.log...),
	}
}
