package boardkit

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

func (d *BoardDescriptor) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	err := enc.Encode(d)
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s descriptor as json", d.PlatformName)
	}
	return nil
}

func (d *BoardDescriptor) WriteYAML(w io.Writer) error {
	out, err := yaml.Marshal(d)
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s descriptor as yaml", d.PlatformName)
	}

	_, err = w.Write(out)
	return errors.Wrap(err, "failed to write yaml")
}
