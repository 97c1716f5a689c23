package calibration

import (
	"context"
	"errors"
	"time"

	"github.com/calvinmclean/scalecal"
)

const defaultDelay = time.Millisecond

// Options customizes a Session. The zero value gives the plain '+'/'-' calibration console
type Options struct {
	// Delay is the idle time at the end of every loop iteration and between the startup prompts
	Delay time.Duration
	// Extended enables the tare and help commands
	Extended bool
	// OnWeight is called with every printed weight
	OnWeight func(float64)
	// OnFactor is called whenever the calibration factor changes
	OnFactor func(float64)

	sleep func(time.Duration)
}

// Session drives a Sensor and lets an operator tune its calibration factor from a Console.
// It is not safe for concurrent use: the loop is meant to run on a single goroutine
type Session struct {
	sensor  Sensor
	console Console
	opts    Options

	factor float64

	commands []*Command
	cmdMap   map[byte]*Command
}

// NewSession creates a Session with the factor set to scalecal.InitialCalibrationFactor
func NewSession(sensor Sensor, console Console, opts Options) *Session {
	if opts.Delay == 0 {
		opts.Delay = defaultDelay
	}
	if opts.sleep == nil {
		opts.sleep = time.Sleep
	}

	s := &Session{
		sensor:  sensor,
		console: console,
		opts:    opts,
		factor:  scalecal.InitialCalibrationFactor,
		cmdMap:  map[byte]*Command{},
	}

	s.commands = append(s.commands, commands...)
	if opts.Extended {
		s.commands = append(s.commands, extendedCommands...)
	}
	for _, cmd := range s.commands {
		s.cmdMap[cmd.Flag] = cmd
	}

	return s
}

// Factor returns the current calibration factor
func (s *Session) Factor() float64 {
	return s.factor
}

// Start initializes the sensor, programs the initial factor, tares the scale and prints the prompts
func (s *Session) Start() error {
	s.println(scalecal.Banner)

	err := s.sensor.Begin()
	if err != nil {
		return errors.New("error starting sensor: " + err.Error())
	}

	s.sensor.SetScale(s.factor)

	err = s.sensor.Tare(scalecal.TareSamples)
	if err != nil {
		s.printError(err)
	}

	s.println(scalecal.TarePrompt)
	s.opts.sleep(s.opts.Delay)
	s.println(scalecal.WeightPrompt)

	return nil
}

// Step runs one iteration of the calibration loop: print a reading, handle at most one
// command byte, then idle
func (s *Session) Step() {
	units, err := s.sensor.GetUnits(scalecal.ReadSamples)
	if err != nil {
		s.printError(err)
	} else {
		s.println(scalecal.FormatWeight(units))
		if s.opts.OnWeight != nil {
			s.opts.OnWeight(units / scalecal.DisplayDivisor)
		}
	}

	if s.console.Buffered() > 0 {
		b, err := s.console.ReadByte()
		if err == nil {
			s.HandleByte(b)
		}
	}

	s.opts.sleep(s.opts.Delay)
}

// HandleByte runs the command for b. It returns false if b is not a command, in which case
// nothing happens
func (s *Session) HandleByte(b byte) bool {
	cmd, ok := s.cmdMap[b]
	if !ok {
		return false
	}

	err := cmd.Run(s)
	if err != nil {
		s.printError(err)
	}
	return true
}

// AdjustFactor changes the calibration factor by delta, reports it and pushes it to the sensor
func (s *Session) AdjustFactor(delta float64) {
	s.factor += delta
	s.println(scalecal.FormatFactor(s.factor))
	s.sensor.SetScale(s.factor)

	if s.opts.OnFactor != nil {
		s.opts.OnFactor(s.factor)
	}
}

// Run starts the session and loops until ctx is cancelled
func (s *Session) Run(ctx context.Context) error {
	err := s.Start()
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s.Step()
	}
}

func (s *Session) println(line string) {
	// console write errors have nowhere to be reported
	_, _ = s.console.Write([]byte(line + "\r\n"))
}

func (s *Session) printError(err error) {
	s.println(scalecal.ErrorLabel + err.Error())
}
