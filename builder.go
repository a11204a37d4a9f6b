package boardkit

import (
	"os"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

// Layout is the fixed data of one board variant. Pins is indexed by
// physical pin number; entry 0 is ignored and always written as INVALID.
type Layout struct {
	Name             string
	PhysicalPinCount int
	ChardevCapable   bool

	Uarts       []UartDevice
	DefaultUart int

	I2cBuses      []I2cBus
	DefaultI2cBus int

	Pins []PinInfo
}

type Option func(*builder)

// WithAllocator replaces the heap allocator. A nil allocator is ignored.
func WithAllocator(a Allocator) Option {
	return func(b *builder) {
		if a != nil {
			b.allocator = a
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(b *builder) {
		b.logger = l
	}
}

type builder struct {
	allocator Allocator
	logger    *log.Logger
}

// Build populates a descriptor from layout. The only failure is
// ErrAllocationFailed, in which case nothing allocated is left behind.
func Build(layout Layout, opts ...Option) (*BoardDescriptor, error) {
	b := &builder{
		allocator: heapAllocator{},
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "boardkit",
			Level:  log.GetLevel(),
		})
	}

	return b.build(layout)
}

func (b *builder) build(layout Layout) (d *BoardDescriptor, err error) {
	d = &BoardDescriptor{
		PlatformName:     layout.Name,
		PhysicalPinCount: layout.PhysicalPinCount,
		AioCount:         0,
		AdcRaw:           0,
		AdcSupported:     0,
	}

	d.Pins, err = b.allocator.AllocPins(layout.PhysicalPinCount)
	if err == nil && len(d.Pins) != layout.PhysicalPinCount {
		b.allocator.ReleasePins(d.Pins)
		err = errors.Errorf("got %d pin slots, want %d", len(d.Pins), layout.PhysicalPinCount)
	}
	if err != nil {
		return nil, b.fail(layout.Name, err)
	}

	d.AdvancedFunctions, err = b.allocator.AllocAdvancedFunctions()
	if err != nil {
		b.allocator.ReleasePins(d.Pins)
		return nil, b.fail(layout.Name, err)
	}

	d.ChardevCapable = layout.ChardevCapable

	d.UartDevices = append([]UartDevice{}, layout.Uarts...)
	d.DefaultUartIndex = layout.DefaultUart

	d.I2cBuses = append([]I2cBus{}, layout.I2cBuses...)
	d.DefaultI2cBusIndex = layout.DefaultI2cBus

	if len(layout.Pins) > layout.PhysicalPinCount {
		b.logger.Debug(layout.Name+": layout pins past the physical pin count are ignored",
			"layout_pins", len(layout.Pins), "phy_pin_count", layout.PhysicalPinCount)
	}

	for num := range d.Pins {
		if num == 0 || num >= len(layout.Pins) {
			d.Pins[num] = invalidPin()
			continue
		}
		pin := layout.Pins[num]
		pin.Name = boundName(pin.Name)
		d.Pins[num] = pin
	}

	// counted only after every slot is written
	d.GpioCount = countGpio(d.Pins)
	d.allocator = b.allocator

	return d, nil
}

func (b *builder) fail(name string, cause error) error {
	b.logger.Error(name+": Platform failed to initialise", "err", cause)
	return errors.Wrapf(ErrAllocationFailed, "%s: %v", name, cause)
}

// boundName cuts name to PinNameSize bytes without splitting a rune.
func boundName(name string) string {
	if len(name) <= PinNameSize {
		return name
	}

	end := PinNameSize
	for end > 0 && !utf8.RuneStart(name[end]) {
		end--
	}
	return name[:end]
}
