package boardkit

// PinNameSize bounds a pin name, longer names are cut at build time.
const PinNameSize = 12

const InvalidPinName = "INVALID"

type GpioMap struct {
	Pinmap   int `json:"pinmap" yaml:"pinmap"`
	GpioChip int `json:"gpio_chip" yaml:"gpio_chip"`
	GpioLine int `json:"gpio_line" yaml:"gpio_line"`
	MuxTotal int `json:"mux_total" yaml:"mux_total"`
}

// I2cMap is per-pin I2C mux info. Boards that address I2C by bus only leave it zero.
type I2cMap struct {
	Pinmap   int `json:"pinmap" yaml:"pinmap"`
	MuxTotal int `json:"mux_total" yaml:"mux_total"`
}

type UartMap struct {
	ParentId int `json:"parent_id" yaml:"parent_id"`
	MuxTotal int `json:"mux_total" yaml:"mux_total"`
}

// PinInfo describes one physical header pin. Gpio, I2c and Uart are only
// meaningful when the matching capability flag is set.
type PinInfo struct {
	Name         string       `json:"name" yaml:"name"`
	Capabilities Capabilities `json:"capabilities" yaml:"capabilities"`

	Gpio GpioMap `json:"gpio" yaml:"gpio"`
	I2c  I2cMap  `json:"i2c" yaml:"i2c"`
	Uart UartMap `json:"uart" yaml:"uart"`
}

func invalidPin() PinInfo {
	return PinInfo{Name: InvalidPinName}
}

type UartDevice struct {
	RxPin      int    `json:"rx" yaml:"rx"`
	TxPin      int    `json:"tx" yaml:"tx"`
	DevicePath string `json:"device_path" yaml:"device_path"`
}

type I2cBus struct {
	BusId  int `json:"bus_id" yaml:"bus_id"`
	SdaPin int `json:"sda" yaml:"sda"`
	SclPin int `json:"scl" yaml:"scl"`
}

// AdvancedFunctions holds board specific hooks the pin-mux layer calls
// around its own init paths. A nil hook means the generic path is used.
type AdvancedFunctions struct {
	GpioInitPre  func(pin int) error
	GpioInitPost func(pin int) error
	I2cInitPre   func(bus int) error
	UartInitPre  func(index int) error
	SpiInitPre   func(bus int) error
}

func (af *AdvancedFunctions) Empty() bool {
	if af == nil {
		return true
	}
	return af.GpioInitPre == nil &&
		af.GpioInitPost == nil &&
		af.I2cInitPre == nil &&
		af.UartInitPre == nil &&
		af.SpiInitPre == nil
}

// BoardDescriptor is the populated description of one board. It is built
// once by Build and owned by the caller afterwards.
type BoardDescriptor struct {
	PlatformName     string `json:"platform_name" yaml:"platform_name"`
	PhysicalPinCount int    `json:"phy_pin_count" yaml:"phy_pin_count"`
	GpioCount        int    `json:"gpio_count" yaml:"gpio_count"`

	AioCount       int  `json:"aio_count" yaml:"aio_count"`
	AdcRaw         int  `json:"adc_raw" yaml:"adc_raw"`
	AdcSupported   int  `json:"adc_supported" yaml:"adc_supported"`
	ChardevCapable bool `json:"chardev_capable" yaml:"chardev_capable"`

	Pins []PinInfo `json:"pins" yaml:"pins"`

	UartDevices      []UartDevice `json:"uart_devices" yaml:"uart_devices"`
	DefaultUartIndex int          `json:"def_uart_dev" yaml:"def_uart_dev"`

	I2cBuses           []I2cBus `json:"i2c_buses" yaml:"i2c_buses"`
	DefaultI2cBusIndex int      `json:"def_i2c_bus" yaml:"def_i2c_bus"`

	AdvancedFunctions *AdvancedFunctions `json:"-" yaml:"-"`

	allocator Allocator
}

// Release hands the pin table and the advanced function block back to the
// allocator that produced them. The descriptor is unusable afterwards.
func (d *BoardDescriptor) Release() {
	if d.allocator == nil {
		return
	}
	if d.Pins != nil {
		d.allocator.ReleasePins(d.Pins)
		d.Pins = nil
	}
	if d.AdvancedFunctions != nil {
		d.allocator.ReleaseAdvancedFunctions(d.AdvancedFunctions)
		d.AdvancedFunctions = nil
	}
	d.allocator = nil
}

func countGpio(pins []PinInfo) (count int) {
	for _, pin := range pins {
		if pin.Capabilities.Gpio {
			count++
		}
	}
	return
}
