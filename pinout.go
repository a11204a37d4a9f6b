package boardkit

import (
	"fmt"
	"io"
)

func (d *BoardDescriptor) PrintPinout(writer io.Writer) {
	fmt.Fprintln(writer)
	fmt.Fprintf(writer, "=== %s ===\n", d.PlatformName)
	fmt.Fprintf(writer, "| physical pins: %d, gpio: %d, chardev: %v\n", d.PhysicalPinCount-1, d.GpioCount, d.ChardevCapable)
	fmt.Fprintln(writer, "________")
	fmt.Fprintf(writer, "| %-4s %-12s %-28s %s\n", "pin", "name", "capabilities", "mapping")
	for num, pin := range d.Pins {
		if num == 0 {
			continue
		}
		fmt.Fprintf(writer, "| %-4d %-12s %-28s %s\n", num, pin.Name, pin.Capabilities, pinMapping(pin))
	}
	fmt.Fprintln(writer, "--------")

	fmt.Fprintln(writer, "| uart:")
	for i, dev := range d.UartDevices {
		def := ""
		if i == d.DefaultUartIndex {
			def = " (default)"
		}
		fmt.Fprintf(writer, "|   [%d] %s rx: %d, tx: %d%s\n", i, dev.DevicePath, dev.RxPin, dev.TxPin, def)
	}

	fmt.Fprintln(writer, "| i2c:")
	for i, bus := range d.I2cBuses {
		def := ""
		if i == d.DefaultI2cBusIndex {
			def = " (default)"
		}
		fmt.Fprintf(writer, "|   [%d] bus %d sda: %d, scl: %d%s\n", i, bus.BusId, bus.SdaPin, bus.SclPin, def)
	}
	fmt.Fprintln(writer, "-----------------------------")
	fmt.Fprintln(writer)
}

func pinMapping(pin PinInfo) (mapping string) {
	if pin.Capabilities.Gpio {
		mapping = fmt.Sprintf("chip %d line %d (sysfs %d)", pin.Gpio.GpioChip, pin.Gpio.GpioLine, pin.Gpio.Pinmap)
	}
	if pin.Capabilities.Uart {
		mapping += fmt.Sprintf(" uart %d", pin.Uart.ParentId)
	}
	return
}
