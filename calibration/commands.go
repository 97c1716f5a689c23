package calibration

import (
	"github.com/calvinmclean/scalecal"
)

// Command is run when its Flag byte is received on the console
type Command struct {
	Flag        byte
	Run         func(*Session) error
	Description string
}

var (
	IncreaseCommand = &Command{
		Flag: scalecal.IncreaseChar,
		Run: func(s *Session) error {
			s.AdjustFactor(+scalecal.FactorStep)
			return nil
		},
		Description: "Increase the calibration factor by 1.",
	}
	DecreaseCommand = &Command{
		Flag: scalecal.DecreaseChar,
		Run: func(s *Session) error {
			s.AdjustFactor(-scalecal.FactorStep)
			return nil
		},
		Description: "Decrease the calibration factor by 1.",
	}
	TareCommand = &Command{
		Flag: scalecal.TareChar,
		Run: func(s *Session) error {
			err := s.sensor.Tare(scalecal.TareSamples)
			if err != nil {
				return err
			}
			s.println(scalecal.TarePrompt)
			return nil
		},
		Description: "Zero the scale again. Remove all weight first.",
	}
	HelpCommand = &Command{
		Flag: scalecal.HelpChar,
		Run: func(s *Session) error {
			s.println("Available Commands:")
			for _, cmd := range s.commands {
				s.println(string(cmd.Flag) + ": " + cmd.Description)
			}
			return nil
		},
		Description: "Show all available commands and their descriptions.",
	}
)

var commands = []*Command{
	IncreaseCommand,
	DecreaseCommand,
}

var extendedCommands = []*Command{
	TareCommand,
	HelpCommand,
}
