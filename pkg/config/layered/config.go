// Package layered resolves a value from an ordered list of sources, such as
// command line flags, then a config file, then the environment. The first
// source holding a value wins.
package layered

import (
	"context"

	"github.com/stwrap/gatekeeper/pkg/config"
)

type conf struct {
	sources []config.Config
}

// NewConfig returns a config that yields the value of the first source, in
// order of precedence, that has one. Sources without a value are skipped;
// any other source error is returned as is.
func NewConfig(sources ...config.Config) config.Config {
	return &conf{
		sources: sources,
	}
}

// Get implements Config.Get
func (c *conf) Get(ctx context.Context) (interface{}, error) {
	for _, source := range c.sources {
		val, err := source.Get(ctx)
		if err == config.ErrNoValue {
			continue
		} else if err != nil {
			return nil, err
		}
		return val, nil
	}
	return nil, config.ErrNoValue
}

// Shutdown implements Config.Shutdown
func (c *conf) Shutdown() {
	for _, source := range c.sources {
		source.Shutdown()
	}
}
