package analysis

import (
	"sync"
	"time"
)

// Window keeps the samples from the most recent span of time and their mean
type Window struct {
	span    float64
	samples []Sample
	sum     float64
	mtx     sync.Mutex
}

// NewWindow creates a Window covering span
func NewWindow(span time.Duration) *Window {
	return &Window{span: span.Seconds()}
}

// Add appends a sample and drops the oldest samples until the window fits within its span
func (w *Window) Add(s Sample) {
	w.mtx.Lock()
	defer w.mtx.Unlock()

	w.samples = append(w.samples, s)
	w.sum += s.Weight

	for len(w.samples) > 1 && s.Time-w.samples[0].Time > w.span {
		w.sum -= w.samples[0].Weight
		w.samples = w.samples[1:]
	}
}

// Mean returns the mean weight in the window, or 0 if it is empty
func (w *Window) Mean() float64 {
	w.mtx.Lock()
	defer w.mtx.Unlock()

	if len(w.samples) == 0 {
		return 0
	}
	return w.sum / float64(len(w.samples))
}

// Len returns the number of samples in the window
func (w *Window) Len() int {
	w.mtx.Lock()
	defer w.mtx.Unlock()

	return len(w.samples)
}
