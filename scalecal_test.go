package scalecal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatWeight(t *testing.T) {
	tests := []struct {
		name     string
		units    float64
		expected string
	}{
		{"Zero", 0, "0.000"},
		{"NegativeZero", -0.0, "0.000"},
		{"Positive", 1234.5, "123.450"},
		{"Negative", -52.3, "-5.230"},
		{"Rounding", 0.12345, "0.012"},
		{"Small", 0.004, "0.000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatWeight(tt.units))
		})
	}
}

func TestFormatFactor(t *testing.T) {
	assert.Equal(t, "Calibration Factor: -9564.36", FormatFactor(InitialCalibrationFactor))
	assert.Equal(t, "Calibration Factor: -9563.36", FormatFactor(InitialCalibrationFactor+FactorStep))
	assert.Equal(t, "Calibration Factor: 12.00", FormatFactor(12))
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		kind     LineKind
		value    float64
		expected string
	}{
		{"Weight", "12.345\r\n", LineWeight, 12.345, "12.345"},
		{"NegativeWeight", "-0.120", LineWeight, -0.12, "-0.120"},
		{"Factor", "Calibration Factor: -9563.36\r", LineFactor, -9563.36, "Calibration Factor: -9563.36"},
		{"BadFactor", "Calibration Factor: abc", LineText, 0, "Calibration Factor: abc"},
		{"Error", "error: timeout waiting for HX711", LineError, 0, "error: timeout waiting for HX711"},
		{"Banner", Banner, LineText, 0, Banner},
		{"Prompt", TarePrompt, LineText, 0, TarePrompt},
		{"Empty", "", LineText, 0, ""},
		{"NaN", "NaN", LineText, 0, "NaN"},
		{"InfiniteFactor", "Calibration Factor: +Inf", LineText, 0, "Calibration Factor: +Inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ParseLine(tt.in)
			assert.Equal(t, tt.kind, l.Kind)
			assert.InDelta(t, tt.value, l.Value, 1e-9)
			assert.Equal(t, tt.expected, l.Raw)
		})
	}
}

func TestLineKindString(t *testing.T) {
	assert.Equal(t, "Weight", LineWeight.String())
	assert.Equal(t, "Factor", LineFactor.String())
	assert.Equal(t, "Error", LineError.String())
	assert.Equal(t, "Text", LineText.String())
	assert.Equal(t, "Text", LineKind(42).String())
}
