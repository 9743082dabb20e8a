package env

import (
	"context"
	"crypto/ed25519"
	"os"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stwrap/gatekeeper/pkg/config"
)

func TestConfigDoesntExist(t *testing.T) {
	const env = "ENV_CONFIG_TEST_VAR"
	os.Setenv(env, "default")

	v, err := NewConfig(env).Get(context.Background())
	assert.Equal(t, []byte("default"), v)
	assert.Nil(t, err)

	os.Unsetenv(env)

	v, err = NewConfig(env).Get(context.Background())
	assert.Nil(t, v)
	assert.Equal(t, config.ErrNoValue, err)
}

func TestConfigKeyIsUpperCased(t *testing.T) {
	const env = "ENV_CONFIG_TEST_UPPER"
	os.Setenv(env, "value")
	defer os.Unsetenv(env)

	v, err := NewConfig("env_config_test_upper").Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), v)
}

func TestPublicKeyConfig(t *testing.T) {
	const env = "ENV_CONFIG_TEST_KEY"
	expected, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	fallback, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	c := NewPublicKeyConfig(env, fallback)
	assert.Equal(t, fallback, c.Get(context.Background()))

	os.Setenv(env, base58.Encode(expected))
	defer os.Unsetenv(env)
	assert.Equal(t, expected, c.Get(context.Background()))
}

func TestStringConfig(t *testing.T) {
	const env = "ENV_CONFIG_TEST_STRING"
	c := NewStringConfig(env, "http://localhost:8899")
	assert.Equal(t, "http://localhost:8899", c.Get(context.Background()))

	os.Setenv(env, "https://api.devnet.solana.com")
	defer os.Unsetenv(env)
	assert.Equal(t, "https://api.devnet.solana.com", c.Get(context.Background()))
}
