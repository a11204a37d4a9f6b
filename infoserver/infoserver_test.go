package infoserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hubertat/boardkit"
	"github.com/hubertat/boardkit/boards"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	d, err := boards.NucIlk(boardkit.WithLogger(log.New(io.Discard)))
	if err != nil {
		t.Fatalf("NucIlk returned err: %v", err)
	}

	is := New(":0", d)
	is.logger = log.New(io.Discard)

	ts := httptest.NewServer(is.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, wantStatus int, v interface{}) {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s: got status %d want %d", url, resp.StatusCode, wantStatus)
	}
	if v == nil {
		return
	}
	err = json.NewDecoder(resp.Body).Decode(v)
	if err != nil {
		t.Fatalf("GET %s: bad json: %v", url, err)
	}
}

func TestBoard(t *testing.T) {
	ts := newTestServer(t)

	got := boardView{}
	getJSON(t, ts.URL+"/board", http.StatusOK, &got)

	if got.PlatformName != "Intel NUC Learning Kit" || got.PhysicalPinCount != 41 {
		t.Errorf("got %+v", got)
	}
	if got.UartCount != 2 || got.I2cBusCount != 4 || got.DefaultUart != 1 {
		t.Errorf("got %+v", got)
	}
}

func TestPins(t *testing.T) {
	ts := newTestServer(t)

	pins := []pinView{}
	getJSON(t, ts.URL+"/pins", http.StatusOK, &pins)
	if len(pins) != 41 {
		t.Fatalf("got %d pins want 41", len(pins))
	}
	if pins[40].Number != 40 || pins[40].Name != "GPIO21" {
		t.Errorf("got pin %+v", pins[40])
	}

	pin := pinView{}
	getJSON(t, ts.URL+"/pins/3", http.StatusOK, &pin)
	if pin.Name != "I2C1_SDA" || pin.Gpio.GpioChip != 1 || pin.Gpio.GpioLine != 38 {
		t.Errorf("got pin %+v", pin)
	}

	getJSON(t, ts.URL+"/pins/41", http.StatusNotFound, nil)
	getJSON(t, ts.URL+"/pins/abc", http.StatusBadRequest, nil)
}

func TestSupports(t *testing.T) {
	ts := newTestServer(t)

	cases := map[string]bool{
		"/pins/19/supports/spi":  true,
		"/pins/19/supports/i2c":  false,
		"/pins/8/supports/uart":  true,
		"/pins/6/supports/gpio":  false,
		"/pins/0/supports/valid": false,
	}
	for path, want := range cases {
		got := map[string]bool{}
		getJSON(t, ts.URL+path, http.StatusOK, &got)
		if got["supported"] != want {
			t.Errorf("%s: got %v want %v", path, got["supported"], want)
		}
	}

	getJSON(t, ts.URL+"/pins/19/supports/can", http.StatusBadRequest, nil)
}

func TestBuses(t *testing.T) {
	ts := newTestServer(t)

	uarts := []boardkit.UartDevice{}
	getJSON(t, ts.URL+"/uart", http.StatusOK, &uarts)
	if len(uarts) != 2 || uarts[0].DevicePath != "/dev/ttyS4" {
		t.Errorf("got %+v", uarts)
	}

	buses := []boardkit.I2cBus{}
	getJSON(t, ts.URL+"/i2c", http.StatusOK, &buses)
	if len(buses) != 4 || buses[3].SdaPin != 27 || buses[3].SclPin != 28 {
		t.Errorf("got %+v", buses)
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	d, err := boards.NucIlk(boardkit.WithLogger(log.New(io.Discard)))
	if err != nil {
		t.Fatal(err)
	}
	is := New("127.0.0.1:0", d)
	is.logger = log.New(io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- is.ListenAndServe(ctx)
	}()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe returned err: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestService(t *testing.T) {
	d, err := boards.NucIlk(boardkit.WithLogger(log.New(io.Discard)))
	if err != nil {
		t.Fatal(err)
	}
	is := New(":8090", d)

	sv, err := is.Service(8090)
	if err != nil {
		t.Fatalf("Service returned err: %v", err)
	}
	if sv.Name != "Intel NUC Learning Kit" {
		t.Errorf("got name %q", sv.Name)
	}
	if sv.Type != "_http._tcp" || sv.Port != 8090 {
		t.Errorf("got type %s port %d", sv.Type, sv.Port)
	}
	if sv.Text["path"] != "/board" || sv.Text["pins"] != "41" {
		t.Errorf("got text %v", sv.Text)
	}

	_, err = is.Service(0)
	if err == nil {
		t.Error("got nil error for port 0")
	}
}
