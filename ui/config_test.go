package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinmclean/scalecal/controller"
)

func TestPreferences(t *testing.T) {
	a := test.NewTempApp(t)
	cw := NewConfigWindow(a)

	t.Run("Defaults", func(t *testing.T) {
		cfg := controller.Config{SerialPort: "/dev/ttyUSB0"}
		cw.loadConfigFromPreferences(&cfg)
		assert.Equal(t, controller.Config{SerialPort: "/dev/ttyUSB0", BaudRate: "9600"}, cfg)
	})

	t.Run("SaveAndLoad", func(t *testing.T) {
		cw.saveConfigToPreferences(&controller.Config{
			SerialPort:  "/dev/ttyACM0",
			BaudRate:    "115200",
			TWChartAddr: "http://twchart:8080",
			SessionName: "bench",
		})

		var cfg controller.Config
		cw.loadConfigFromPreferences(&cfg)
		assert.Equal(t, controller.Config{
			SerialPort:  "/dev/ttyACM0",
			BaudRate:    "115200",
			TWChartAddr: "http://twchart:8080",
			SessionName: "bench",
		}, cfg)
	})
}

func TestFormItem(t *testing.T) {
	test.NewTempApp(t)
	cfg := controller.Config{BaudRate: "9600"}
	ports := []string{"/dev/ttyACM0", controller.SerialPortNone}

	items := make(map[string]*widget.FormItem)
	for _, f := range configFields {
		items[f.key] = formItem(f, &cfg, ports)
	}

	t.Run("SerialPortDefaultsToFirst", func(t *testing.T) {
		assert.Equal(t, "/dev/ttyACM0", cfg.SerialPort)
		sel, ok := items["serialPort"].Widget.(*widget.Select)
		require.True(t, ok)
		assert.Equal(t, ports, sel.Options)
	})

	t.Run("BaudValidated", func(t *testing.T) {
		entry, ok := items["baudRate"].Widget.(*widget.Entry)
		require.True(t, ok)
		require.NotNil(t, entry.Validator)
		assert.NoError(t, entry.Validator("115200"))
		assert.EqualError(t, entry.Validator(""), "baud rate is required")
		assert.EqualError(t, entry.Validator("fast"), `invalid baud rate: "fast"`)
	})

	t.Run("Hints", func(t *testing.T) {
		entry, ok := items["twchartAddr"].Widget.(*widget.Entry)
		require.True(t, ok)
		assert.Equal(t, "optional", entry.PlaceHolder)
		assert.Equal(t, "TWChart Address", items["twchartAddr"].Text)
	})
}

func TestValidConfig(t *testing.T) {
	tests := []struct {
		name     string
		cfg      controller.Config
		expected bool
	}{
		{"Valid", controller.Config{SerialPort: "/dev/ttyUSB0", BaudRate: "9600"}, true},
		{"NoDevice", controller.Config{SerialPort: controller.SerialPortNone, BaudRate: "9600"}, true},
		{"MissingPort", controller.Config{BaudRate: "9600"}, false},
		{"MissingBaud", controller.Config{SerialPort: "/dev/ttyUSB0"}, false},
		{"InvalidBaud", controller.Config{SerialPort: "/dev/ttyUSB0", BaudRate: "fast"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, validConfig(&tt.cfg))
		})
	}
}
