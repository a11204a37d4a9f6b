package boardkit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Validate checks a descriptor's internal consistency and reports every
// violation found, not just the first one.
func Validate(d *BoardDescriptor) error {
	violations := []string{}
	addf := func(format string, args ...interface{}) {
		violations = append(violations, fmt.Sprintf(format, args...))
	}

	if len(d.Pins) != d.PhysicalPinCount {
		addf("pin table has %d entries, physical pin count is %d", len(d.Pins), d.PhysicalPinCount)
	}

	if len(d.Pins) > 0 {
		if d.Pins[0].Name != InvalidPinName {
			addf("pin 0 is named %q, want %q", d.Pins[0].Name, InvalidPinName)
		}
		if !d.Pins[0].Capabilities.None() {
			addf("pin 0 has capabilities %s", d.Pins[0].Capabilities)
		}
	}

	if counted := countGpio(d.Pins); counted != d.GpioCount {
		addf("gpio count is %d, pin table has %d gpio pins", d.GpioCount, counted)
	}

	for num, pin := range d.Pins {
		if len(pin.Name) > PinNameSize {
			addf("pin %d name %q longer than %d", num, pin.Name, PinNameSize)
		}

		if pin.Capabilities.Uart {
			parent := pin.Uart.ParentId
			if parent < 0 || parent >= len(d.UartDevices) {
				addf("pin %d references uart %d, board has %d", num, parent, len(d.UartDevices))
			} else if dev := d.UartDevices[parent]; dev.RxPin != num && dev.TxPin != num {
				addf("pin %d is neither rx (%d) nor tx (%d) of uart %d", num, dev.RxPin, dev.TxPin, parent)
			}
		}

		if pin.Capabilities.I2c && !onI2cBus(d.I2cBuses, num) {
			addf("pin %d is i2c capable but not sda/scl of any bus", num)
		}
	}

	for i, dev := range d.UartDevices {
		if !d.inRange(dev.RxPin) || !d.inRange(dev.TxPin) {
			addf("uart %d pins rx %d tx %d out of range", i, dev.RxPin, dev.TxPin)
		}
	}
	for i, bus := range d.I2cBuses {
		if !d.inRange(bus.SdaPin) || !d.inRange(bus.SclPin) {
			addf("i2c bus %d pins sda %d scl %d out of range", i, bus.SdaPin, bus.SclPin)
		}
	}

	if len(d.UartDevices) > 0 && (d.DefaultUartIndex < 0 || d.DefaultUartIndex >= len(d.UartDevices)) {
		addf("default uart index %d out of range", d.DefaultUartIndex)
	}
	if len(d.I2cBuses) > 0 && (d.DefaultI2cBusIndex < 0 || d.DefaultI2cBusIndex >= len(d.I2cBuses)) {
		addf("default i2c bus index %d out of range", d.DefaultI2cBusIndex)
	}

	if len(violations) > 0 {
		return errors.Wrapf(ErrInvariant, "%s: %s", d.PlatformName, strings.Join(violations, "; "))
	}
	return nil
}

func (d *BoardDescriptor) inRange(num int) bool {
	return num > 0 && num < len(d.Pins)
}

func onI2cBus(buses []I2cBus, num int) bool {
	for _, bus := range buses {
		if bus.SdaPin == num || bus.SclPin == num {
			return true
		}
	}
	return false
}

// GpioConflict lists distinct physical pins mapped onto one kernel line.
type GpioConflict struct {
	GpioChip int
	GpioLine int
	Pins     []int
}

func (gc GpioConflict) String() string {
	return fmt.Sprintf("chip %d line %d shared by pins %v", gc.GpioChip, gc.GpioLine, gc.Pins)
}

func DuplicateGpioLines(d *BoardDescriptor) (conflicts []GpioConflict) {
	type line struct{ chip, line int }
	byLine := map[line][]int{}

	for num, pin := range d.Pins {
		if !pin.Capabilities.Gpio {
			continue
		}
		key := line{pin.Gpio.GpioChip, pin.Gpio.GpioLine}
		byLine[key] = append(byLine[key], num)
	}

	for key, pins := range byLine {
		if len(pins) > 1 {
			conflicts = append(conflicts, GpioConflict{GpioChip: key.chip, GpioLine: key.line, Pins: pins})
		}
	}

	sort.Slice(conflicts, func(i, j int) bool {
		return conflicts[i].Pins[0] < conflicts[j].Pins[0]
	})
	return
}
