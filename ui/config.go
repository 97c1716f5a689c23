package ui

import (
	"errors"
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/calvinmclean/scalecal"
	"github.com/calvinmclean/scalecal/controller"
)

// configField is a controller.Config setting that is stored in preferences and shown as a form row
type configField struct {
	label string
	key   string
	hint  string
	// fallback is used when the preference is unset. Empty keeps the value already in the Config
	fallback string
	value    func(*controller.Config) *string
}

var configFields = []configField{
	{
		label: "Serial Port",
		key:   "serialPort",
		value: func(c *controller.Config) *string { return &c.SerialPort },
	},
	{
		label:    "Baud Rate",
		key:      "baudRate",
		fallback: strconv.Itoa(scalecal.BaudRate),
		value:    func(c *controller.Config) *string { return &c.BaudRate },
	},
	{
		label: "TWChart Address",
		key:   "twchartAddr",
		hint:  "optional",
		value: func(c *controller.Config) *string { return &c.TWChartAddr },
	},
	{
		label: "Session Name",
		key:   "sessionName",
		hint:  "Scale calibration <date>",
		value: func(c *controller.Config) *string { return &c.SessionName },
	},
}

// ConfigWindow asks for the connection settings before the calibration window opens
type ConfigWindow struct {
	app      fyne.App
	OnSubmit func()
}

func NewConfigWindow(app fyne.App) *ConfigWindow {
	return &ConfigWindow{
		app: app,
	}
}

func (cw *ConfigWindow) loadConfigFromPreferences(cfg *controller.Config) {
	prefs := cw.app.Preferences()
	for _, f := range configFields {
		v := f.value(cfg)
		fallback := f.fallback
		if fallback == "" {
			fallback = *v
		}
		*v = prefs.StringWithFallback(f.key, fallback)
	}
}

func (cw *ConfigWindow) saveConfigToPreferences(cfg *controller.Config) {
	prefs := cw.app.Preferences()
	for _, f := range configFields {
		prefs.SetString(f.key, *f.value(cfg))
	}
}

func validateBaud(s string) error {
	if s == "" {
		return errors.New("baud rate is required")
	}
	_, err := controller.Config{BaudRate: s}.Baud()
	return err
}

// validConfig reports whether the settings can be used. TWChart is optional
func validConfig(cfg *controller.Config) bool {
	return cfg.SerialPort != "" && validateBaud(cfg.BaudRate) == nil
}

// formItem creates the input for a field. The serial port is picked from the detected ports
func formItem(f configField, cfg *controller.Config, serialPorts []string) *widget.FormItem {
	value := f.value(cfg)

	if f.key == "serialPort" {
		if *value == "" {
			*value = serialPorts[0]
		}
		sel := widget.NewSelect(serialPorts, nil)
		sel.Bind(binding.BindString(value))
		return widget.NewFormItem(f.label, sel)
	}

	entry := widget.NewEntry()
	entry.SetPlaceHolder(f.hint)
	entry.Bind(binding.BindString(value))
	if f.key == "baudRate" {
		entry.Validator = validateBaud
	}
	return widget.NewFormItem(f.label, entry)
}

func (cw *ConfigWindow) Show(cfg *controller.Config) {
	window := cw.app.NewWindow("Scale Calibration - Configuration")
	window.Resize(fyne.NewSize(400, 250))
	window.SetCloseIntercept(func() {
		// Treat window close as cancel
		window.Close()
		cw.app.Quit()
	})
	window.Show()

	cw.loadConfigFromPreferences(cfg)

	serialPorts, err := controller.GetSerialPorts()
	if err != nil && !errors.Is(err, controller.ErrNoUSBSerial) {
		showError(cw.app, window, fmt.Errorf("error getting serial ports: %w", err))
		return
	}
	serialPorts = append(serialPorts, controller.SerialPortNone)

	form := widget.NewForm()
	for _, f := range configFields {
		form.AppendItem(formItem(f, cfg, serialPorts))
	}
	form.SubmitText = "Start"
	form.OnSubmit = func() {
		if !validConfig(cfg) {
			dialog.ShowError(errors.New("serial port and a valid baud rate are required"), window)
			return
		}
		cw.saveConfigToPreferences(cfg)
		window.Close()
		cw.OnSubmit()
	}
	form.OnCancel = func() {
		window.Close()
		cw.app.Quit()
	}

	window.SetContent(widget.NewCard("Configuration", "", form))
}

func showError(app fyne.App, window fyne.Window, err error) {
	d := dialog.NewError(err, window)
	d.SetOnClosed(func() {
		app.Quit()
	})
	d.Show()
}
