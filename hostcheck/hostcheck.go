// Package hostcheck compares a board descriptor with what the running host
// exposes: gpio character devices, serial ports and i2c device nodes.
// Nothing is requested or configured, lines and ports are only inspected.
package hostcheck

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/warthog618/go-gpiocdev"
	"go.bug.st/serial"

	"github.com/hubertat/boardkit"
)

type ChipInspector interface {
	LineCount(chip int) (int, error)
}

type PortLister interface {
	Ports() ([]string, error)
}

type NodeLister interface {
	Exists(path string) bool
}

type cdevInspector struct{}

func (cdevInspector) LineCount(chip int) (int, error) {
	name := fmt.Sprintf("gpiochip%d", chip)
	c, err := gpiocdev.NewChip(name)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to open %s", name)
	}
	defer c.Close()

	return c.Lines(), nil
}

type serialPorts struct{}

func (serialPorts) Ports() ([]string, error) {
	ports, err := serial.GetPortsList()
	return ports, errors.Wrap(err, "failed to list serial ports")
}

type devNodes struct{}

func (devNodes) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

type Kind string

const (
	KindGpio    Kind = "gpio"
	KindUart    Kind = "uart"
	KindI2c     Kind = "i2c"
	KindChardev Kind = "chardev"
)

type Finding struct {
	Kind    Kind
	Pin     int
	Device  string
	Message string
}

func (f Finding) String() string {
	if f.Pin > 0 {
		return fmt.Sprintf("[%s] pin %d: %s", f.Kind, f.Pin, f.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", f.Kind, f.Device, f.Message)
}

type Report struct {
	Board    string
	Findings []Finding
}

func (r Report) OK() bool {
	return len(r.Findings) == 0
}

func (r Report) Err() error {
	if r.OK() {
		return nil
	}
	return errors.Errorf("%s: %d host check finding(s)", r.Board, len(r.Findings))
}

func (r Report) Print(writer io.Writer) {
	fmt.Fprintf(writer, "=== host check: %s ===\n", r.Board)
	if r.OK() {
		fmt.Fprintln(writer, "| all mappings present")
	}
	for _, f := range r.Findings {
		fmt.Fprintf(writer, "| %s\n", f)
	}
	fmt.Fprintln(writer, "-----------------------------")
}

type Checker struct {
	Gpio   ChipInspector
	Serial PortLister
	I2c    NodeLister

	logger *log.Logger
}

func New() *Checker {
	return &Checker{
		Gpio:   cdevInspector{},
		Serial: serialPorts{},
		I2c:    devNodes{},
	}
}

func (c *Checker) SetLogger(l *log.Logger) {
	c.logger = l
}

func (c *Checker) getLogger() *log.Logger {
	if c.logger == nil {
		c.logger = log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "hostcheck",
			Level:  log.GetLevel(),
		})
	}
	return c.logger
}

func (c *Checker) Check(d *boardkit.BoardDescriptor) (report Report) {
	report.Board = d.PlatformName

	report.Findings = append(report.Findings, c.checkGpio(d)...)
	report.Findings = append(report.Findings, c.checkUart(d)...)
	report.Findings = append(report.Findings, c.checkI2c(d)...)

	c.getLogger().Debug("host check done", "board", d.PlatformName, "findings", len(report.Findings))
	return
}

func (c *Checker) checkGpio(d *boardkit.BoardDescriptor) (findings []Finding) {
	if !d.ChardevCapable {
		c.getLogger().Debug("board not chardev capable, gpio lines not checked", "board", d.PlatformName)
		return
	}

	lineCounts := map[int]int{}
	failedChips := map[int]bool{}

	for _, num := range d.PinsWith(boardkit.Gpio) {
		mapping := d.Pins[num].Gpio
		chip := mapping.GpioChip

		if failedChips[chip] {
			continue
		}
		count, known := lineCounts[chip]
		if !known {
			var err error
			count, err = c.Gpio.LineCount(chip)
			if err != nil {
				failedChips[chip] = true
				findings = append(findings, Finding{
					Kind:    KindChardev,
					Pin:     num,
					Device:  fmt.Sprintf("gpiochip%d", chip),
					Message: err.Error(),
				})
				continue
			}
			lineCounts[chip] = count
		}

		if mapping.GpioLine < 0 || mapping.GpioLine >= count {
			findings = append(findings, Finding{
				Kind:    KindGpio,
				Pin:     num,
				Device:  fmt.Sprintf("gpiochip%d", chip),
				Message: fmt.Sprintf("line %d not on gpiochip%d (%d lines)", mapping.GpioLine, chip, count),
			})
		}
	}
	return
}

func (c *Checker) checkUart(d *boardkit.BoardDescriptor) (findings []Finding) {
	if len(d.UartDevices) == 0 {
		return
	}

	ports, err := c.Serial.Ports()
	if err != nil {
		findings = append(findings, Finding{Kind: KindUart, Device: "serial", Message: err.Error()})
		return
	}

	present := map[string]bool{}
	for _, port := range ports {
		present[port] = true
	}

	for _, dev := range d.UartDevices {
		if !present[dev.DevicePath] {
			findings = append(findings, Finding{
				Kind:    KindUart,
				Device:  dev.DevicePath,
				Message: "serial port not present",
			})
		}
	}
	return
}

func (c *Checker) checkI2c(d *boardkit.BoardDescriptor) (findings []Finding) {
	for _, bus := range d.I2cBuses {
		node := fmt.Sprintf("/dev/i2c-%d", bus.BusId)
		if !c.I2c.Exists(node) {
			findings = append(findings, Finding{
				Kind:    KindI2c,
				Device:  node,
				Message: "i2c bus node not present",
			})
		}
	}
	return
}
