// Package file provides config sources backed by a viper instance, which is
// typically loaded from a config file.
package file

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/stwrap/gatekeeper/pkg/config"
)

type conf struct {
	v   *viper.Viper
	key string
}

// NewConfig returns a config for key in v.
func NewConfig(v *viper.Viper, key string) config.Config {
	return &conf{
		v:   v,
		key: key,
	}
}

// Load reads the config file at path into a new viper instance.
func Load(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}
	return v, nil
}

// Get implements Config.Get
func (c *conf) Get(_ context.Context) (interface{}, error) {
	if c.v == nil || !c.v.IsSet(c.key) {
		return nil, config.ErrNoValue
	}

	val := c.v.Get(c.key)
	if s, ok := val.(string); ok && len(s) == 0 {
		return nil, config.ErrNoValue
	}
	return val, nil
}

// Shutdown implements Config.Shutdown
func (c *conf) Shutdown() {
}
