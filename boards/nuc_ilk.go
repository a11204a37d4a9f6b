package boards

import "github.com/hubertat/boardkit"

const nucIlkName = "nuc_ilk"

const NucIlkPlatformName = "Intel NUC Learning Kit"

// 40 header pins, slot 0 is reserved.
const NucIlkPinCount = 40 + 1

var (
	power = boardkit.NewCapabilities(boardkit.Valid)
	gpio  = boardkit.NewCapabilities(boardkit.Valid, boardkit.Gpio)
	i2c   = boardkit.NewCapabilities(boardkit.Valid, boardkit.Gpio, boardkit.I2c)
	uart  = boardkit.NewCapabilities(boardkit.Valid, boardkit.Gpio, boardkit.Uart)
	spi   = boardkit.NewCapabilities(boardkit.Valid, boardkit.Gpio, boardkit.Spi)
)

func line(pinmap, chip, offset int) boardkit.GpioMap {
	return boardkit.GpioMap{Pinmap: pinmap, GpioChip: chip, GpioLine: offset}
}

func uartOf(parent int) boardkit.UartMap {
	return boardkit.UartMap{ParentId: parent}
}

var nucIlkLayout = boardkit.Layout{
	Name:             NucIlkPlatformName,
	PhysicalPinCount: NucIlkPinCount,
	ChardevCapable:   true,

	Uarts: []boardkit.UartDevice{
		{RxPin: 10, TxPin: 8, DevicePath: "/dev/ttyS4"},
		{RxPin: 13, TxPin: 15, DevicePath: "/dev/ttyS5"},
	},
	DefaultUart: 1,

	I2cBuses: []boardkit.I2cBus{
		{BusId: 1, SdaPin: 3, SclPin: 5},
		{BusId: 2, SdaPin: 18, SclPin: 16},
		{BusId: 3, SdaPin: 22, SclPin: 11},
		{BusId: 4, SdaPin: 27, SclPin: 28},
	},
	DefaultI2cBus: 0,

	Pins: []boardkit.PinInfo{
		{Name: boardkit.InvalidPinName},
		{Name: "3V3", Capabilities: power},
		{Name: "5V", Capabilities: power},
		{Name: "I2C1_SDA", Capabilities: i2c, Gpio: line(864+38, 1, 38)},
		{Name: "5V", Capabilities: power},
		{Name: "I2C1_SCL", Capabilities: i2c, Gpio: line(864+39, 1, 39)},
		{Name: "GND", Capabilities: power},
		{Name: "PMU_BATLOW_N", Capabilities: gpio, Gpio: line(864+30, 1, 30)},
		{Name: "UART1_TX", Capabilities: uart, Gpio: line(864+63, 1, 63), Uart: uartOf(0)},
		{Name: "GND", Capabilities: power},
		// sysfs base of chip 1 with a chip 0 line, kept as listed for the board
		{Name: "UART1_RX", Capabilities: uart, Gpio: line(864+62, 0, 62), Uart: uartOf(0)},
		{Name: "GPIO17", Capabilities: gpio, Gpio: line(864+75, 1, 75)},
		{Name: "GPIO18", Capabilities: gpio, Gpio: line(864+77, 1, 77)},
		{Name: "UART2_RX", Capabilities: uart, Gpio: line(944+64, 0, 64), Uart: uartOf(1)},
		{Name: "GND", Capabilities: power},
		{Name: "UART2_TX", Capabilities: uart, Gpio: line(944+65, 0, 65), Uart: uartOf(1)},
		{Name: "GPIO23", Capabilities: gpio, Gpio: line(864+78, 1, 78)},
		{Name: "3V3", Capabilities: power},
		{Name: "GPIO24", Capabilities: gpio, Gpio: line(864+79, 1, 79)},
		{Name: "SPI_MOSI", Capabilities: spi, Gpio: line(864+70, 1, 70)},
		{Name: "GND", Capabilities: power},
		{Name: "SPI_MISO", Capabilities: spi, Gpio: line(864+69, 1, 69)},
		{Name: "GPIO25", Capabilities: gpio, Gpio: line(864+71, 1, 71)},
		{Name: "SPI_CLK", Capabilities: spi, Gpio: line(864+66, 1, 66)},
		{Name: "SPI_CS0", Capabilities: spi, Gpio: line(864+67, 1, 67)},
		{Name: "GND", Capabilities: power},
		{Name: "SPI_CS1", Capabilities: spi, Gpio: line(864+68, 1, 68)},
		// 27 and 28 share chip 1 line 34 in the board data
		{Name: "I2C2_SDA", Capabilities: i2c, Gpio: line(864+34, 1, 34)},
		{Name: "I2C2_SCL", Capabilities: i2c, Gpio: line(864+34, 1, 34)},
		{Name: "GPIO1", Capabilities: gpio, Gpio: line(809+9, 3, 9)},
		{Name: "GND", Capabilities: power},
		{Name: "GPIO6", Capabilities: gpio, Gpio: line(864+76, 1, 76)},
		{Name: "GPIO_PWM0_LS", Capabilities: gpio, Gpio: line(944+43, 0, 43)},
		{Name: "GPIO_PWM0_LS", Capabilities: gpio, Gpio: line(944+42, 0, 42)},
		{Name: "GND", Capabilities: power},
		{Name: "GPIO19", Capabilities: gpio, Gpio: line(809+4, 3, 4)},
		{Name: "GPIO16", Capabilities: gpio, Gpio: line(809+7, 3, 7)},
		{Name: "GPIO26", Capabilities: gpio, Gpio: line(809+8, 3, 8)},
		{Name: "GPIO20", Capabilities: gpio, Gpio: line(864+72, 1, 72)},
		{Name: "GND", Capabilities: power},
		{Name: "GPIO21", Capabilities: gpio, Gpio: line(864+73, 1, 73)},
	},
}

// NucIlk builds the descriptor of the Intel NUC Learning Kit 40 pin header.
func NucIlk(opts ...boardkit.Option) (*boardkit.BoardDescriptor, error) {
	return boardkit.Build(nucIlkLayout, opts...)
}
