package main

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/calvinmclean/scalecal/controller"
	"github.com/calvinmclean/scalecal/ui"
)

func NewUICommand() *cobra.Command {
	var opts ui.Options

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the calibration window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI(cmd.Context(), controller.ConfigFromEnv(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Tare, "tare", false, "show a Tare button (firmware must be built with extended commands)")

	return cmd
}

func runUI(ctx context.Context, cfg controller.Config, opts ui.Options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	scaleUI := ui.NewScaleUI(opts)

	r, w := io.Pipe()

	// read from Stdin also
	go func() {
		_, _ = io.Copy(w, os.Stdin)
	}()

	var c *controller.Controller
	start := func() {
		var err error
		c, err = controller.New(cfg)
		if err != nil {
			logrus.WithError(err).Error("failed to start controller")
			scaleUI.App().Quit()
			return
		}

		go func() {
			err := c.Run(ctx, r, io.MultiWriter(os.Stdout, scaleUI))
			if err != nil {
				logrus.WithError(err).Error("controller stopped")
			}
		}()

		scaleUI.Show(w)
	}

	cw := ui.NewConfigWindow(scaleUI.App())
	cw.OnSubmit = start
	cw.Show(&cfg)

	scaleUI.RunApp(ctx)
	cancel()

	if c == nil {
		return nil
	}
	return c.Close()
}
