package ui

import (
	"context"
	"image/color"
	"io"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"
)

const appID = "com.calvinmclean.scalecal"

// Options customizes the ScaleUI
type Options struct {
	// Tare shows a button sending the tare command. The firmware only accepts it when it is built
	// with extended commands
	Tare bool
}

// ScaleUI shows the calibration console in a window. Console output is written to it and
// commands are sent to the writer passed to Run or Show
type ScaleUI struct {
	app   fyne.App
	opts  Options
	state *state

	weightText  *canvas.Text
	averageText *widget.Label
	factorText  *widget.Label
	statusText  *widget.Label
	logContent  *widget.Label
	logScroll   *container.Scroll

	increaseButton *widget.Button
	decreaseButton *widget.Button
	tareButton     *widget.Button

	overallTimer    *timer
	lastAdjustTimer *timer
	started         chan struct{}
}

var _ io.Writer = &ScaleUI{}

func NewScaleUI(opts Options) *ScaleUI {
	return newScaleUI(app.NewWithID(appID), opts)
}

func newScaleUI(a fyne.App, opts Options) *ScaleUI {
	ui := &ScaleUI{
		app:             a,
		opts:            opts,
		state:           newState(),
		overallTimer:    newTimer(false),
		lastAdjustTimer: newTimer(true),
		started:         make(chan struct{}),
	}

	snap := ui.state.snapshot()

	ui.weightText = canvas.NewText(snap.Weight, color.RGBA{R: 0, G: 100, B: 0, A: 255})
	ui.weightText.TextSize = 48
	ui.weightText.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	ui.weightText.Alignment = fyne.TextAlignCenter

	ui.averageText = widget.NewLabel(snap.Average)
	ui.factorText = widget.NewLabel(snap.Factor)
	ui.statusText = widget.NewLabel(snap.Status)
	ui.statusText.Truncation = fyne.TextTruncateEllipsis

	ui.logContent = widget.NewLabel("")
	ui.logScroll = container.NewVScroll(ui.logContent)
	ui.logScroll.SetMinSize(fyne.NewSize(300, 100))

	return ui
}

// App returns the application so a ConfigWindow can be shown before the main window
func (ui *ScaleUI) App() fyne.App {
	return ui.app
}

// Write handles console output from the firmware
func (ui *ScaleUI) Write(p []byte) (int, error) {
	if !ui.state.write(p, time.Now()) {
		return len(p), nil
	}

	select {
	case <-ui.started:
	default:
		close(ui.started)
		now := time.Now()
		ui.overallTimer.Set(now)
		ui.lastAdjustTimer.Set(now)
	}

	snap := ui.state.snapshot()
	fyne.Do(func() {
		ui.render(snap)
	})

	return len(p), nil
}

func (ui *ScaleUI) render(snap snapshot) {
	ui.weightText.Text = snap.Weight
	ui.weightText.Refresh()
	ui.averageText.SetText(snap.Average)
	ui.factorText.SetText(snap.Factor)
	ui.statusText.SetText(snap.Status)

	logText := strings.Join(snap.Log, "\n")
	if logText != ui.logContent.Text {
		ui.logContent.SetText(logText)
		ui.logScroll.ScrollToBottom()
	}
}

// Show creates the main window. Button presses are written to w
func (ui *ScaleUI) Show(w io.Writer) {
	window := ui.app.NewWindow("Scale Calibration")

	ui.overallTimer.Go(ui.started)
	ui.lastAdjustTimer.Go(ui.started)

	content := container.NewVBox(
		container.NewHBox(
			container.NewPadded(ui.overallTimer.text),
			layout.NewSpacer(),
			container.NewPadded(ui.lastAdjustTimer.text),
		),
		ui.weightText,
		container.NewGridWithColumns(2,
			widget.NewLabel("60s Average:"),
			ui.averageText,
		),
		ui.controls(&controllerWrapper{writer: w, lastAdjustTimer: ui.lastAdjustTimer}),
		ui.statusText,
		widget.NewAccordion(
			widget.NewAccordionItem("Logs", ui.logScroll),
		),
	)

	window.SetContent(content)
	window.Resize(fyne.NewSize(360, 420))
	window.SetOnClosed(func() {
		ui.overallTimer.Stop()
		ui.lastAdjustTimer.Stop()
		ui.app.Quit()
	})
	window.Show()
}

// controls creates the command buttons. The tare button is only added when enabled in Options
func (ui *ScaleUI) controls(cw *controllerWrapper) *fyne.Container {
	send := func(f func() error) func() {
		return func() {
			err := f()
			if err != nil {
				logrus.WithError(err).Error("failed to send command")
			}
		}
	}

	ui.decreaseButton = widget.NewButtonWithIcon("", theme.ContentRemoveIcon(), send(cw.Decrease))
	ui.increaseButton = widget.NewButtonWithIcon("", theme.ContentAddIcon(), send(cw.Increase))

	c := container.NewVBox(widget.NewCard("Calibration Factor", "", container.NewGridWithColumns(3,
		ui.decreaseButton,
		container.NewCenter(ui.factorText),
		ui.increaseButton,
	)))

	if ui.opts.Tare {
		ui.tareButton = widget.NewButton("Tare", send(cw.Tare))
		c.Add(ui.tareButton)
	}

	return c
}

// Run shows the main window and blocks until it is closed or the context is cancelled
func (ui *ScaleUI) Run(ctx context.Context, w io.Writer) {
	ui.Show(w)
	ui.RunApp(ctx)
}

// RunApp runs the application until it quits or the context is cancelled
func (ui *ScaleUI) RunApp(ctx context.Context) {
	go func() {
		<-ctx.Done()
		fyne.Do(func() {
			ui.app.Quit()
		})
	}()

	ui.app.Run()
}
