package scalecal

import (
	"math"
	"strconv"
	"strings"
)

const BaudRate = 9600

// Pins used by the HX711 on the reference wiring. They are fixed at compile time
const (
	DataPin  = 3
	ClockPin = 2
)

// InitialCalibrationFactor is programmed into the sensor at startup
const InitialCalibrationFactor = -9564.3564

// FactorStep is how much a single '+' or '-' changes the calibration factor
const FactorStep = 1.0

// DisplayDivisor scales every reading down before it is printed. Its meaning was never documented
// (it is not a known unit conversion) so integrators should confirm it for their load cell.
const DisplayDivisor = 10

const (
	// ReadSamples is the number of samples the sensor averages for each printed reading
	ReadSamples = 1
	// TareSamples is the number of samples averaged when zeroing the scale
	TareSamples = 10
)

// Command bytes accepted on the console
const (
	IncreaseChar byte = '+'
	DecreaseChar byte = '-'
	// TareChar and HelpChar are only accepted when extended commands are enabled
	TareChar byte = 't'
	HelpChar byte = '?'
)

// Console text
const (
	Banner       = "HX711 Calibration"
	TarePrompt   = "Tare done! Remove all weight from scale."
	WeightPrompt = "Place a known weight on the scale."
	FactorLabel  = "Calibration Factor: "
	ErrorLabel   = "error: "
)

// LineKind identifies what a console line contains
type LineKind int

const (
	LineText LineKind = iota
	LineWeight
	LineFactor
	LineError
)

func (k LineKind) String() string {
	switch k {
	case LineWeight:
		return "Weight"
	case LineFactor:
		return "Factor"
	case LineError:
		return "Error"
	default:
		fallthrough
	case LineText:
		return "Text"
	}
}

// Line is a single parsed line of console output
type Line struct {
	Kind  LineKind
	Value float64
	Raw   string
}

// FormatWeight converts a sensor reading into the printed weight: divided by DisplayDivisor with
// exactly 3 decimals
func FormatWeight(units float64) string {
	v := units / DisplayDivisor
	if v == 0 {
		// avoid printing "-0.000"
		v = 0
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// FormatFactor prints the factor the way the calibration console reports it, with 2 decimals
func FormatFactor(factor float64) string {
	return FactorLabel + strconv.FormatFloat(factor, 'f', 2, 64)
}

// ParseLine classifies a line of console output. Trailing whitespace, including "\r", is ignored
func ParseLine(raw string) Line {
	s := strings.TrimSpace(raw)
	l := Line{Kind: LineText, Raw: s}

	switch {
	case strings.HasPrefix(s, FactorLabel):
		v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(s, FactorLabel)), 64)
		if err != nil || !finite(v) {
			return l
		}
		l.Kind = LineFactor
		l.Value = v
	case strings.HasPrefix(s, ErrorLabel):
		l.Kind = LineError
	default:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || !finite(v) {
			return l
		}
		l.Kind = LineWeight
		l.Value = v
	}

	return l
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
