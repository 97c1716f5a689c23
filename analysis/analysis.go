// Package analysis summarizes weight recordings taken from the calibration console
package analysis

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/stat"
)

// StandardGravity converts kilogram-force to newtons
const StandardGravity = 9.81

var (
	ErrNotEnoughSamples = errors.New("not enough samples")
	ErrNonFinite        = errors.New("non-finite sample")
)

// Sample is a single weight reading taken Time seconds after the recording started
type Sample struct {
	Time   float64
	Weight float64
}

// Series is an ordered recording of samples
type Series []Sample

// Summary describes a Series
type Summary struct {
	Count    int
	Duration float64
	Min      float64
	Max      float64
	Mean     float64
	StdDev   float64
	// Integral is the trapezoid-rule integral of weight over time
	Integral float64
	// Impulse is the Simpson's-rule integral of weight over time
	Impulse float64
}

// Times returns the time of every sample
func (s Series) Times() []float64 {
	result := make([]float64, len(s))
	for i, sample := range s {
		result[i] = sample.Time
	}
	return result
}

// Weights returns the weight of every sample
func (s Series) Weights() []float64 {
	result := make([]float64, len(s))
	for i, sample := range s {
		result[i] = sample.Weight
	}
	return result
}

// Normalize returns a copy sorted by time, keeping only the first sample for each timestamp
func (s Series) Normalize() Series {
	sorted := make(Series, len(s))
	copy(sorted, s)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time < sorted[j].Time
	})

	result := Series{}
	for i, sample := range sorted {
		if i > 0 && sample.Time == sorted[i-1].Time {
			continue
		}
		result = append(result, sample)
	}
	return result
}

// Summarize calculates statistics for the Series. Integrals need 2 (trapezoid) and 3 (Simpson)
// distinct timestamps and are left at 0 otherwise
func (s Series) Summarize() (Summary, error) {
	if len(s) == 0 {
		return Summary{}, ErrNotEnoughSamples
	}
	err := s.checkFinite()
	if err != nil {
		return Summary{}, err
	}

	weights := s.Weights()
	summary := Summary{
		Count: len(s),
		Min:   floats.Min(weights),
		Max:   floats.Max(weights),
	}

	if len(s) > 1 {
		summary.Mean, summary.StdDev = stat.MeanStdDev(weights, nil)
	} else {
		summary.Mean = weights[0]
	}

	n := s.Normalize()
	times := n.Times()
	summary.Duration = times[len(times)-1] - times[0]
	if len(n) >= 2 {
		summary.Integral = integrate.Trapezoidal(times, n.Weights())
	}
	if len(n) >= 3 {
		summary.Impulse = integrate.Simpsons(times, n.Weights())
	}

	return summary, nil
}

// Smooth returns the moving average of the weights over the given window, centered on each sample.
// Missing neighbors at the edges count as zero so the output has the same length as the input.
// A window longer than the series is clamped to its length
func (s Series) Smooth(window int) []float64 {
	weights := s.Weights()
	window = min(window, len(weights))
	if window <= 1 {
		return weights
	}

	result := make([]float64, len(weights))
	shift := (window - 1) / 2
	for i := range result {
		var sum float64
		for m := range window {
			j := i + shift - m
			if j < 0 || j >= len(weights) {
				continue
			}
			sum += weights[j]
		}
		result[i] = sum / float64(window)
	}
	return result
}

// Changes returns the difference between each weight and the previous one
func (s Series) Changes() []float64 {
	if len(s) < 2 {
		return nil
	}

	result := make([]float64, len(s)-1)
	for i := 1; i < len(s); i++ {
		result[i-1] = s[i].Weight - s[i-1].Weight
	}
	return result
}

// Resample linearly interpolates the weights onto evenly spaced times starting at the first
// sample, up to but excluding the last one
func (s Series) Resample(step float64) (Series, error) {
	if step <= 0 {
		return nil, fmt.Errorf("invalid step: %v", step)
	}
	err := s.checkFinite()
	if err != nil {
		return nil, err
	}

	n := s.Normalize()
	if len(n) < 2 {
		return nil, ErrNotEnoughSamples
	}

	var pl interp.PiecewiseLinear
	err = pl.Fit(n.Times(), n.Weights())
	if err != nil {
		return nil, fmt.Errorf("error fitting samples: %w", err)
	}

	start, end := n[0].Time, n[len(n)-1].Time
	count := int((end - start) / step)
	if start+float64(count)*step < end {
		count++
	}

	result := make(Series, 0, count)
	for i := range count {
		t := start + float64(i)*step
		result = append(result, Sample{Time: t, Weight: pl.Predict(t)})
	}
	return result, nil
}

// checkFinite rejects NaN and infinite values, which cannot be sorted or integrated
func (s Series) checkFinite() error {
	for i, sample := range s {
		if !finite(sample.Time) || !finite(sample.Weight) {
			return fmt.Errorf("%w at index %d", ErrNonFinite, i)
		}
	}
	return nil
}

// ToNewtons converts kilogram-force readings from a thrust stand to newtons
func ToNewtons(kgf float64) float64 {
	return kgf * StandardGravity
}
