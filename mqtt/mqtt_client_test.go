package mqtt

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/hubertat/boardkit"
	"github.com/hubertat/boardkit/boards"
)

type fakePublisher struct {
	topic   string
	payload []byte
	retain  bool
	err     error
}

func (fp *fakePublisher) Publish(ctx context.Context, topic string, payload []byte, retain bool) error {
	fp.topic = topic
	fp.payload = payload
	fp.retain = retain
	return fp.err
}

func TestDescriptorTopic(t *testing.T) {
	got := DescriptorTopic("boardkit", "nuc_ilk")
	want := "boardkit/nuc_ilk/descriptor"

	if got != want {
		t.Errorf("got %s want %s", got, want)
	}
}

func TestPublishDescriptor(t *testing.T) {
	d, err := boards.NucIlk(boardkit.WithLogger(log.New(io.Discard)))
	if err != nil {
		t.Fatal(err)
	}

	fp := &fakePublisher{}
	err = PublishDescriptor(context.Background(), fp, "boardkit/nuc_ilk/descriptor", d)
	if err != nil {
		t.Fatalf("PublishDescriptor returned err: %v", err)
	}

	if fp.topic != "boardkit/nuc_ilk/descriptor" {
		t.Errorf("got topic %s", fp.topic)
	}
	if !fp.retain {
		t.Error("descriptor should be retained")
	}

	sent := boardkit.BoardDescriptor{}
	err = json.Unmarshal(fp.payload, &sent)
	if err != nil {
		t.Fatalf("payload is not json: %v", err)
	}
	if sent.GpioCount != d.GpioCount || len(sent.Pins) != len(d.Pins) {
		t.Errorf("payload does not match descriptor: gpio %d pins %d", sent.GpioCount, len(sent.Pins))
	}
}

func TestPublishDescriptorError(t *testing.T) {
	d, err := boards.NucIlk(boardkit.WithLogger(log.New(io.Discard)))
	if err != nil {
		t.Fatal(err)
	}

	brokerDown := errors.New("broker down")
	err = PublishDescriptor(context.Background(), &fakePublisher{err: brokerDown}, "t", d)
	if errors.Cause(err) != brokerDown {
		t.Errorf("got err %v want %v", err, brokerDown)
	}
}

func TestNewMqttClient(t *testing.T) {
	mc, err := NewMqttClient("mqtt://localhost:1883", "boardkit-test")
	if err != nil {
		t.Fatalf("NewMqttClient returned err: %v", err)
	}
	if len(mc.config.ServerUrls) != 1 || mc.config.ServerUrls[0].Host != "localhost:1883" {
		t.Errorf("got server urls %v", mc.config.ServerUrls)
	}
	if mc.config.ClientConfig.ClientID != "boardkit-test" {
		t.Errorf("got client id %s", mc.config.ClientConfig.ClientID)
	}

	err = mc.Publish(context.Background(), "t", nil, false)
	if err == nil {
		t.Error("got nil error publishing without connection")
	}

	_, err = NewMqttClient("://bad", "x")
	if err == nil {
		t.Error("got nil error for bad broker url")
	}
}

func TestConnectFailureStopsManager(t *testing.T) {
	// nothing listens on port 1
	mc, err := NewMqttClient("mqtt://127.0.0.1:1", "boardkit-test")
	if err != nil {
		t.Fatal(err)
	}
	mc.logger = log.New(io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err = mc.Connect(ctx)
	if err == nil {
		t.Fatal("got nil error connecting to a closed port")
	}
	if mc.conn != nil || mc.stop != nil {
		t.Error("connection manager left running after failed connect")
	}

	err = mc.Publish(context.Background(), "t", nil, false)
	if err == nil {
		t.Error("got nil error publishing after failed connect")
	}
	err = mc.Disconnect(context.Background())
	if err != nil {
		t.Errorf("Disconnect after failed connect returned err: %v", err)
	}
}
