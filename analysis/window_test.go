package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindow(t *testing.T) {
	w := NewWindow(10 * time.Second)
	assert.Equal(t, 0.0, w.Mean())
	assert.Equal(t, 0, w.Len())

	w.Add(Sample{Time: 0, Weight: 10})
	w.Add(Sample{Time: 5, Weight: 20})
	w.Add(Sample{Time: 10, Weight: 30})
	assert.Equal(t, 3, w.Len())
	assert.InDelta(t, 20.0, w.Mean(), 1e-12)

	w.Add(Sample{Time: 12, Weight: 40})
	assert.Equal(t, 3, w.Len())
	assert.InDelta(t, 30.0, w.Mean(), 1e-12)

	// a long gap leaves only the newest sample
	w.Add(Sample{Time: 100, Weight: 1})
	assert.Equal(t, 1, w.Len())
	assert.InDelta(t, 1.0, w.Mean(), 1e-12)
}
