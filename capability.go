package boardkit

import (
	"strings"

	"github.com/pkg/errors"
)

type Capability int

// Order follows the capability flag layout of a pin entry.
const (
	Valid Capability = iota
	Gpio
	Pwm
	FastGpio
	Spi
	I2c
	Aio
	Uart
)

var capabilityNames = []string{"valid", "gpio", "pwm", "fastgpio", "spi", "i2c", "aio", "uart"}

func AllCapabilities() []Capability {
	return []Capability{Valid, Gpio, Pwm, FastGpio, Spi, I2c, Aio, Uart}
}

func (c Capability) String() string {
	if c < Valid || c > Uart {
		return "unknown"
	}
	return capabilityNames[c]
}

func ParseCapability(name string) (Capability, error) {
	for i, n := range capabilityNames {
		if strings.EqualFold(n, name) {
			return Capability(i), nil
		}
	}

	return 0, errors.Wrapf(ErrCapability, "unknown capability %q", name)
}

// Capabilities is the fixed per-pin flag set.
type Capabilities struct {
	Valid    bool `json:"valid" yaml:"valid"`
	Gpio     bool `json:"gpio" yaml:"gpio"`
	Pwm      bool `json:"pwm" yaml:"pwm"`
	FastGpio bool `json:"fastgpio" yaml:"fastgpio"`
	Spi      bool `json:"spi" yaml:"spi"`
	I2c      bool `json:"i2c" yaml:"i2c"`
	Aio      bool `json:"aio" yaml:"aio"`
	Uart     bool `json:"uart" yaml:"uart"`
}

func NewCapabilities(caps ...Capability) (c Capabilities) {
	for _, cp := range caps {
		c.set(cp)
	}
	return
}

func (c *Capabilities) set(cp Capability) {
	switch cp {
	case Valid:
		c.Valid = true
	case Gpio:
		c.Gpio = true
	case Pwm:
		c.Pwm = true
	case FastGpio:
		c.FastGpio = true
	case Spi:
		c.Spi = true
	case I2c:
		c.I2c = true
	case Aio:
		c.Aio = true
	case Uart:
		c.Uart = true
	}
}

func (c Capabilities) Has(cp Capability) bool {
	switch cp {
	case Valid:
		return c.Valid
	case Gpio:
		return c.Gpio
	case Pwm:
		return c.Pwm
	case FastGpio:
		return c.FastGpio
	case Spi:
		return c.Spi
	case I2c:
		return c.I2c
	case Aio:
		return c.Aio
	case Uart:
		return c.Uart
	}
	return false
}

// List returns the set flags in flag order.
func (c Capabilities) List() (caps []Capability) {
	for _, cp := range AllCapabilities() {
		if c.Has(cp) {
			caps = append(caps, cp)
		}
	}
	return
}

func (c Capabilities) None() bool {
	return len(c.List()) == 0
}

func (c Capabilities) String() string {
	names := []string{}
	for _, cp := range c.List() {
		names = append(names, cp.String())
	}
	return strings.Join(names, ",")
}
