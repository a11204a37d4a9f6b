package infoserver

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/brutella/dnssd"
	dnslog "github.com/brutella/dnssd/log"
	"github.com/charmbracelet/log"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"

	"github.com/hubertat/boardkit"
)

const httpTimeoutsMs = 3000
const serviceType = "_http._tcp"


// InfoServer serves a read-only json view of one board descriptor.
type InfoServer struct {
	HttpAddr string
	// Announce advertises the server over mdns as an _http._tcp service
	// named after the board.
	Announce bool

	board  *boardkit.BoardDescriptor
	server *http.Server
	logger *log.Logger
}

type pinView struct {
	Number int `json:"number"`
	boardkit.PinInfo
}

type boardView struct {
	PlatformName     string `json:"platform_name"`
	PhysicalPinCount int    `json:"phy_pin_count"`
	GpioCount        int    `json:"gpio_count"`
	ChardevCapable   bool   `json:"chardev_capable"`
	UartCount        int    `json:"uart_count"`
	I2cBusCount      int    `json:"i2c_bus_count"`
	DefaultUart      int    `json:"def_uart_dev"`
	DefaultI2cBus    int    `json:"def_i2c_bus"`
}

func New(addr string, board *boardkit.BoardDescriptor) *InfoServer {
	return &InfoServer{
		HttpAddr: addr,
		board:    board,
		logger: log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "infoserver",
			Level:  log.GetLevel(),
		}),
	}
}

func (is *InfoServer) Handler() http.Handler {
	handler := httprouter.New()
	handler.GET("/board", is.handleBoard)
	handler.GET("/pins", is.handlePins)
	handler.GET("/pins/:pin_no", is.handlePin)
	handler.GET("/pins/:pin_no/supports/:capability", is.handleSupports)
	handler.GET("/uart", is.handleUart)
	handler.GET("/i2c", is.handleI2c)

	return handler
}

// Service is the dns-sd record announcing this board on port.
func (is *InfoServer) Service(port int) (dnssd.Service, error) {
	if port <= 0 {
		return dnssd.Service{}, errors.Errorf("can't announce %s on port %d", is.board.PlatformName, port)
	}

	return dnssd.NewService(dnssd.Config{
		Name: is.board.PlatformName,
		Type: serviceType,
		Port: port,
		Text: map[string]string{
			"path": "/board",
			"pins": strconv.Itoa(is.board.PhysicalPinCount),
		},
	})
}

func (is *InfoServer) announce(ctx context.Context, port int) {
	if is.logger.GetLevel() == log.DebugLevel {
		dnslog.Debug.Enable()
	}

	sv, err := is.Service(port)
	if err != nil {
		is.logger.Error("failed to create dns-sd service", "err", err)
		return
	}
	rp, err := dnssd.NewResponder()
	if err != nil {
		is.logger.Error("failed to create dns-sd responder", "err", err)
		return
	}
	_, err = rp.Add(sv)
	if err != nil {
		is.logger.Error("failed to add dns-sd service", "err", err)
		return
	}

	is.logger.Info("announcing board", "service", sv.Name, "type", sv.Type, "port", port)
	err = rp.Respond(ctx)
	if err != nil && ctx.Err() == nil {
		is.logger.Error("dns-sd responder stopped", "err", err)
	}
}

// ListenAndServe blocks until ctx is done or the server fails.
func (is *InfoServer) ListenAndServe(ctx context.Context) error {
	httpTimeout := httpTimeoutsMs * time.Millisecond

	listener, err := net.Listen("tcp", is.HttpAddr)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %s", is.HttpAddr)
	}

	is.server = &http.Server{
		Handler:           is.Handler(),
		ReadTimeout:       httpTimeout,
		ReadHeaderTimeout: httpTimeout,
		WriteTimeout:      httpTimeout,
		IdleTimeout:       2 * httpTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- is.server.Serve(listener)
	}()
	is.logger.Info("serving board descriptor", "addr", listener.Addr(), "board", is.board.PlatformName)

	announceCtx, stopAnnounce := context.WithCancel(ctx)
	defer stopAnnounce()
	if is.Announce {
		go is.announce(announceCtx, listener.Addr().(*net.TCPAddr).Port)
	}

	select {
	case err := <-serverErr:
		return errors.Wrap(err, "info server failed")
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), httpTimeout)
		defer cancel()
		return is.server.Shutdown(shutdownCtx)
	}
}

func (is *InfoServer) handleBoard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	is.writeJSON(w, boardView{
		PlatformName:     is.board.PlatformName,
		PhysicalPinCount: is.board.PhysicalPinCount,
		GpioCount:        is.board.GpioCount,
		ChardevCapable:   is.board.ChardevCapable,
		UartCount:        len(is.board.UartDevices),
		I2cBusCount:      len(is.board.I2cBuses),
		DefaultUart:      is.board.DefaultUartIndex,
		DefaultI2cBus:    is.board.DefaultI2cBusIndex,
	})
}

func (is *InfoServer) handlePins(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	pins := []pinView{}
	for num, pin := range is.board.Pins {
		pins = append(pins, pinView{Number: num, PinInfo: pin})
	}
	is.writeJSON(w, pins)
}

func (is *InfoServer) pinFromParams(w http.ResponseWriter, p httprouter.Params) (num int, pin boardkit.PinInfo, ok bool) {
	num, err := strconv.Atoi(p.ByName("pin_no"))
	if err != nil {
		http.Error(w, "bad pin number", http.StatusBadRequest)
		return
	}

	pin, err = is.board.Pin(num)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	ok = true
	return
}

func (is *InfoServer) handlePin(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	num, pin, ok := is.pinFromParams(w, p)
	if !ok {
		return
	}
	is.writeJSON(w, pinView{Number: num, PinInfo: pin})
}

func (is *InfoServer) handleSupports(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	_, pin, ok := is.pinFromParams(w, p)
	if !ok {
		return
	}

	cp, err := boardkit.ParseCapability(p.ByName("capability"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	is.writeJSON(w, map[string]bool{"supported": pin.Capabilities.Has(cp)})
}

func (is *InfoServer) handleUart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	is.writeJSON(w, is.board.UartDevices)
}

func (is *InfoServer) handleI2c(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	is.writeJSON(w, is.board.I2cBuses)
}

func (is *InfoServer) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		is.logger.Error("failed to write response", "err", err)
	}
}
