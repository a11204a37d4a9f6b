package mqtt

import (
	"bytes"
	"context"
	"net/url"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/eclipse/paho.golang/autopaho"
	"github.com/eclipse/paho.golang/paho"
	"github.com/pkg/errors"

	"github.com/hubertat/boardkit"
)

const connectionTimeoutSeconds = 5
const publishTimeoutSeconds = 4

type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte, retain bool) error
}

type MqttClient struct {
	config autopaho.ClientConfig
	conn   *autopaho.ConnectionManager
	stop   context.CancelFunc
	logger *log.Logger
}

func (mc *MqttClient) Publish(ctx context.Context, topic string, payload []byte, retain bool) (err error) {
	if mc.conn == nil {
		return errors.New("mqtt client not connected")
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeoutSeconds*time.Second)
	defer cancel()

	_, err = mc.conn.Publish(ctx, &paho.Publish{
		Topic:   topic,
		QoS:     1,
		Retain:  retain,
		Payload: payload,
	})
	return errors.Wrapf(err, "failed to publish on %s", topic)
}

func (mc *MqttClient) onConnUp(cm *autopaho.ConnectionManager, connAck *paho.Connack) {
	mc.logger.Info("Connected to MQTT broker")
}

func (mc *MqttClient) onConnError(err error) {
	mc.logger.Error("Received Mqtt connection error", "err", err)
}

func (mc *MqttClient) onSrvDisconnect(d *paho.Disconnect) {
	mc.logger.Info("Disconnected from MQTT broker")
}

func (mc *MqttClient) Connect(ctx context.Context) (err error) {
	ctx, cancel := context.WithTimeout(ctx, connectionTimeoutSeconds*time.Second)
	defer cancel()

	mc.logger.Debug("NewConnection")
	// the connection manager outlives the connect timeout, it runs until stop
	connCtx, stop := context.WithCancel(context.Background())
	mc.conn, err = autopaho.NewConnection(connCtx, mc.config)
	if err != nil {
		stop()
		mc.conn = nil
		return errors.Wrap(err, "failed to create mqtt connection")
	}
	mc.stop = stop

	mc.logger.Debug("AwaitConnection")
	err = mc.conn.AwaitConnection(ctx)
	mc.logger.Debug("AwaitConnection done", "err", err)
	if err != nil {
		mc.shutdown()
		return errors.Wrap(err, "failed to connect to mqtt broker")
	}

	return nil
}

func (mc *MqttClient) Disconnect(ctx context.Context) error {
	if mc.conn == nil {
		return nil
	}
	defer mc.shutdown()

	return errors.Wrap(mc.conn.Disconnect(ctx), "failed to disconnect from mqtt broker")
}

func (mc *MqttClient) shutdown() {
	if mc.stop != nil {
		mc.stop()
	}
	mc.stop = nil
	mc.conn = nil
}

func NewMqttClient(broker string, clientId string) (mc *MqttClient, err error) {
	addr, err := url.Parse(broker)
	if err != nil {
		err = errors.Wrapf(err, "bad mqtt broker url %s", broker)
		return
	}

	mc = &MqttClient{
		logger: log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "MqttClient",
			Level:  log.GetLevel(),
		}),
	}

	mc.config = autopaho.ClientConfig{
		ServerUrls:            []*url.URL{addr},
		KeepAlive:             20,
		SessionExpiryInterval: 60,
		OnConnectionUp:        mc.onConnUp,
		OnConnectError:        mc.onConnError,
		ClientConfig: paho.ClientConfig{
			ClientID:           clientId,
			OnClientError:      mc.onConnError,
			OnServerDisconnect: mc.onSrvDisconnect,
		},
	}

	return
}

func DescriptorTopic(prefix string, boardName string) string {
	return prefix + "/" + boardName + "/descriptor"
}

// PublishDescriptor sends the json snapshot of d as a retained message.
func PublishDescriptor(ctx context.Context, pub Publisher, topic string, d *boardkit.BoardDescriptor) error {
	payload := &bytes.Buffer{}
	err := d.WriteJSON(payload)
	if err != nil {
		return err
	}

	return pub.Publish(ctx, topic, payload.Bytes(), true)
}
