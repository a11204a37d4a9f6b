package boardkit

import (
	"encoding/json"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

const (
	DefaultBoard           = "nuc_ilk"
	DefaultHttpAddr        = ":8090"
	DefaultMqttTopicPrefix = "boardkit"
	DefaultLogLevel        = "info"
)

type Config struct {
	Board           string
	HttpAddr        string
	MqttBroker      string
	MqttTopicPrefix string
	LogLevel        string
	// Announce advertises the http server over mdns
	Announce bool
}

func DefaultConfig() Config {
	return Config{
		Board:           DefaultBoard,
		HttpAddr:        DefaultHttpAddr,
		MqttTopicPrefix: DefaultMqttTopicPrefix,
		LogLevel:        DefaultLogLevel,
		Announce:        true,
	}
}

// LoadConfig reads a json config file over the defaults. A missing file
// is not an error, the defaults are returned.
func LoadConfig(path string) (conf Config, err error) {
	conf = DefaultConfig()

	configFile, err := os.Open(path)
	if os.IsNotExist(err) {
		err = nil
		return
	}
	if err != nil {
		err = errors.Wrapf(err, "can't open config file (%s)", path)
		return
	}
	defer configFile.Close()

	err = conf.Read(configFile)
	if err != nil {
		err = errors.Wrapf(err, "failed reading config file (%s)", path)
	}
	return
}

func (conf *Config) Read(r io.Reader) error {
	cBuff, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "failed reading config")
	}

	err = json.Unmarshal(cBuff, conf)
	if err != nil {
		return errors.Wrap(err, "failed unmarshalling json config")
	}

	_, err = conf.Level()
	return err
}

func (conf *Config) Level() (log.Level, error) {
	if len(conf.LogLevel) == 0 {
		return log.InfoLevel, nil
	}

	level, err := log.ParseLevel(conf.LogLevel)
	if err != nil {
		return log.InfoLevel, errors.Wrapf(err, "bad log level %q", conf.LogLevel)
	}
	return level, nil
}
