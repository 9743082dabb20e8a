package wrapper

import (
	"context"
	"crypto/ed25519"
	"sync"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/stwrap/gatekeeper/pkg/config"
)

var (
	// ErrUnsuportedConversion indicates the wrapper does not implement conversion from the source type
	ErrUnsuportedConversion = errors.New("config: wrapper conversion from source type not implemented")

	// ErrInvalidPublicKey indicates the source value is not a valid public key
	ErrInvalidPublicKey = errors.New("config: invalid public key")
)

// StringConfig is a utility wrapper for a string config
type StringConfig struct {
	override     config.Config
	defaultValue string

	stateMu   sync.RWMutex
	lastValue string
}

// NewStringConfig returns a new string utility wrapper
func NewStringConfig(override config.Config, defaultValue string) config.String {
	return &StringConfig{
		override:     override,
		defaultValue: defaultValue,
		lastValue:    defaultValue,
	}
}

// GetSafe gets a config value and propagates any errors that arise. A best-effort
// attempt is made to return the last known value
func (c *StringConfig) GetSafe(ctx context.Context) (string, error) {
	override, err := c.override.Get(ctx)
	c.stateMu.RLock()
	lastValue := c.lastValue
	c.stateMu.RUnlock()
	if err == config.ErrNoValue {
		c.setLast(c.defaultValue)
		return c.defaultValue, nil
	} else if err != nil {
		return lastValue, err
	}

	var newValue string
	switch override := override.(type) {
	case []byte:
		newValue = string(override)
	case string:
		newValue = override
	default:
		return lastValue, ErrUnsuportedConversion
	}
	c.setLast(newValue)
	return newValue, nil
}

// Get is a wrapper for GetSafe that ignores the returned error
func (c *StringConfig) Get(ctx context.Context) string {
	val, _ := c.GetSafe(ctx)
	return val
}

// Shutdown signals the config to stop all underlying resources
func (c *StringConfig) Shutdown() {
	c.override.Shutdown()
}

func (c *StringConfig) setLast(v string) {
	c.stateMu.Lock()
	c.lastValue = v
	c.stateMu.Unlock()
}

// PublicKeyConfig is a utility wrapper for a public key config. String and
// []byte values are base58 decoded; ed25519.PublicKey values are used as is.
type PublicKeyConfig struct {
	override     config.Config
	defaultValue ed25519.PublicKey

	stateMu   sync.RWMutex
	lastValue ed25519.PublicKey
}

// NewPublicKeyConfig returns a new public key utility wrapper. defaultValue
// may be nil, in which case an unset source yields config.ErrNoValue.
func NewPublicKeyConfig(override config.Config, defaultValue ed25519.PublicKey) config.PublicKey {
	return &PublicKeyConfig{
		override:     override,
		defaultValue: defaultValue,
		lastValue:    defaultValue,
	}
}

// GetSafe gets a config value and propagates any errors that arise. A best-effort
// attempt is made to return the last known value
func (c *PublicKeyConfig) GetSafe(ctx context.Context) (ed25519.PublicKey, error) {
	override, err := c.override.Get(ctx)
	c.stateMu.RLock()
	lastValue := c.lastValue
	c.stateMu.RUnlock()
	if err == config.ErrNoValue {
		c.setLast(c.defaultValue)
		if c.defaultValue == nil {
			return nil, config.ErrNoValue
		}
		return c.defaultValue, nil
	} else if err != nil {
		return lastValue, err
	}

	var newValue ed25519.PublicKey
	switch override := override.(type) {
	case ed25519.PublicKey:
		newValue = override
	case string:
		newValue, err = decodePublicKey(override)
	case []byte:
		newValue, err = decodePublicKey(string(override))
	default:
		return lastValue, ErrUnsuportedConversion
	}
	if err != nil {
		return lastValue, err
	}
	if len(newValue) != ed25519.PublicKeySize {
		return lastValue, ErrInvalidPublicKey
	}

	c.setLast(newValue)
	return newValue, nil
}

// Get is a wrapper for GetSafe that ignores the returned error
func (c *PublicKeyConfig) Get(ctx context.Context) ed25519.PublicKey {
	val, _ := c.GetSafe(ctx)
	return val
}

// Shutdown signals the config to stop all underlying resources
func (c *PublicKeyConfig) Shutdown() {
	c.override.Shutdown()
}

func (c *PublicKeyConfig) setLast(v ed25519.PublicKey) {
	c.stateMu.Lock()
	c.lastValue = v
	c.stateMu.Unlock()
}

func decodePublicKey(value string) (ed25519.PublicKey, error) {
	decoded, err := base58.Decode(value)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidPublicKey, err.Error())
	}
	return decoded, nil
}
