package boardkit

import (
	"testing"

	"github.com/pkg/errors"
)

func buildTestBoard(t testing.TB) *BoardDescriptor {
	t.Helper()

	d, err := Build(testLayout(), WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("Build returned err: %v", err)
	}
	return d
}

func TestPin(t *testing.T) {
	d := buildTestBoard(t)

	pin, err := d.Pin(2)
	if err != nil {
		t.Fatalf("Pin returned err: %v", err)
	}
	assertStrings(t, pin.Name, "RX")

	for _, num := range []int{-1, 6, 100} {
		_, err = d.Pin(num)
		if !errors.Is(err, ErrUnknownPin) {
			t.Errorf("pin %d: got err %v want %v", num, err, ErrUnknownPin)
		}
	}
}

func TestSupports(t *testing.T) {
	d := buildTestBoard(t)

	assertBools(t, d.Supports(4, I2c), true)
	assertBools(t, d.Supports(4, Spi), false)
	assertBools(t, d.Supports(0, Valid), false)
	assertBools(t, d.Supports(99, Gpio), false)
}

func TestGpioAddress(t *testing.T) {
	d := buildTestBoard(t)

	mapping, err := d.GpioAddress(3)
	if err != nil {
		t.Fatalf("GpioAddress returned err: %v", err)
	}
	assertInts(t, mapping.GpioChip, 0)
	assertInts(t, mapping.GpioLine, 3)
	assertInts(t, mapping.Pinmap, 103)

	_, err = d.GpioAddress(1)
	if !errors.Is(err, ErrCapability) {
		t.Errorf("got err %v want %v", err, ErrCapability)
	}
}

func TestUartFor(t *testing.T) {
	d := buildTestBoard(t)

	dev, err := d.UartFor(2)
	if err != nil {
		t.Fatalf("UartFor returned err: %v", err)
	}
	assertStrings(t, dev.DevicePath, "/dev/ttyTEST0")

	_, err = d.UartFor(4)
	if !errors.Is(err, ErrCapability) {
		t.Errorf("got err %v want %v", err, ErrCapability)
	}

	d.Pins[3].Uart.ParentId = 5
	_, err = d.UartFor(3)
	if err == nil {
		t.Error("got nil error for dangling uart parent")
	}
}

func TestI2cBusFor(t *testing.T) {
	d := buildTestBoard(t)

	bus, err := d.I2cBusFor(4)
	if err != nil {
		t.Fatalf("I2cBusFor returned err: %v", err)
	}
	assertInts(t, bus.BusId, 7)

	_, err = d.I2cBusFor(2)
	if !errors.Is(err, ErrCapability) {
		t.Errorf("got err %v want %v", err, ErrCapability)
	}
}

func TestPinByName(t *testing.T) {
	d := buildTestBoard(t)

	num, err := d.PinByName("TX")
	if err != nil {
		t.Fatalf("PinByName returned err: %v", err)
	}
	assertInts(t, num, 3)

	_, err = d.PinByName(InvalidPinName)
	if err != nil {
		t.Errorf("pin 5 is INVALID too, got err: %v", err)
	}

	_, err = d.PinByName("NOPE")
	if !errors.Is(err, ErrUnknownPin) {
		t.Errorf("got err %v want %v", err, ErrUnknownPin)
	}
}

func TestPinsWith(t *testing.T) {
	d := buildTestBoard(t)

	got := d.PinsWith(Uart)
	if len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("got %v want [2 3]", got)
	}
	assertInts(t, len(d.PinsWith(Gpio)), d.GpioCount)
}

func TestDefaults(t *testing.T) {
	d := buildTestBoard(t)

	dev, err := d.DefaultUart()
	if err != nil {
		t.Fatalf("DefaultUart returned err: %v", err)
	}
	assertInts(t, dev.RxPin, 2)

	bus, err := d.DefaultI2cBus()
	if err != nil {
		t.Fatalf("DefaultI2cBus returned err: %v", err)
	}
	assertInts(t, bus.BusId, 7)

	d.DefaultI2cBusIndex = 3
	_, err = d.DefaultI2cBus()
	if err == nil {
		t.Error("got nil error for out of range default bus")
	}
}
