package boardkit

import "github.com/pkg/errors"

func (d *BoardDescriptor) Pin(num int) (pin PinInfo, err error) {
	if num < 0 || num >= len(d.Pins) {
		err = errors.Wrapf(ErrUnknownPin, "pin %d out of range [0, %d)", num, len(d.Pins))
		return
	}

	pin = d.Pins[num]
	return
}

func (d *BoardDescriptor) Supports(num int, cp Capability) bool {
	pin, err := d.Pin(num)
	if err != nil {
		return false
	}
	return pin.Capabilities.Has(cp)
}

// GpioAddress resolves a physical pin to its kernel chip/line pair.
func (d *BoardDescriptor) GpioAddress(num int) (GpioMap, error) {
	pin, err := d.Pin(num)
	if err != nil {
		return GpioMap{}, err
	}
	if !pin.Capabilities.Gpio {
		return GpioMap{}, errors.Wrapf(ErrCapability, "pin %d (%s) is not gpio capable", num, pin.Name)
	}

	return pin.Gpio, nil
}

func (d *BoardDescriptor) UartFor(num int) (UartDevice, error) {
	pin, err := d.Pin(num)
	if err != nil {
		return UartDevice{}, err
	}
	if !pin.Capabilities.Uart {
		return UartDevice{}, errors.Wrapf(ErrCapability, "pin %d (%s) is not uart capable", num, pin.Name)
	}
	if pin.Uart.ParentId < 0 || pin.Uart.ParentId >= len(d.UartDevices) {
		return UartDevice{}, errors.Errorf("pin %d references uart %d, board has %d", num, pin.Uart.ParentId, len(d.UartDevices))
	}

	return d.UartDevices[pin.Uart.ParentId], nil
}

func (d *BoardDescriptor) I2cBusFor(num int) (I2cBus, error) {
	pin, err := d.Pin(num)
	if err != nil {
		return I2cBus{}, err
	}
	if !pin.Capabilities.I2c {
		return I2cBus{}, errors.Wrapf(ErrCapability, "pin %d (%s) is not i2c capable", num, pin.Name)
	}
	for _, bus := range d.I2cBuses {
		if bus.SdaPin == num || bus.SclPin == num {
			return bus, nil
		}
	}

	return I2cBus{}, errors.Errorf("pin %d is i2c capable but no bus uses it", num)
}

// PinByName returns the lowest physical pin carrying name.
func (d *BoardDescriptor) PinByName(name string) (int, error) {
	for num, pin := range d.Pins {
		if num == 0 {
			continue
		}
		if pin.Name == name {
			return num, nil
		}
	}

	return 0, errors.Wrapf(ErrUnknownPin, "no pin named %s", name)
}

func (d *BoardDescriptor) PinsWith(cp Capability) (nums []int) {
	for num, pin := range d.Pins {
		if pin.Capabilities.Has(cp) {
			nums = append(nums, num)
		}
	}
	return
}

func (d *BoardDescriptor) DefaultUart() (UartDevice, error) {
	if d.DefaultUartIndex < 0 || d.DefaultUartIndex >= len(d.UartDevices) {
		return UartDevice{}, errors.Errorf("default uart index %d out of range", d.DefaultUartIndex)
	}
	return d.UartDevices[d.DefaultUartIndex], nil
}

func (d *BoardDescriptor) DefaultI2cBus() (I2cBus, error) {
	if d.DefaultI2cBusIndex < 0 || d.DefaultI2cBusIndex >= len(d.I2cBuses) {
		return I2cBus{}, errors.Errorf("default i2c bus index %d out of range", d.DefaultI2cBusIndex)
	}
	return d.I2cBuses[d.DefaultI2cBusIndex], nil
}
