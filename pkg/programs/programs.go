// Package programs resolves the program ids the wrapper validators are
// parametrized with.
package programs

import (
	"context"
	"crypto/ed25519"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/stwrap/gatekeeper/pkg/config"
	"github.com/stwrap/gatekeeper/pkg/config/env"
	"github.com/stwrap/gatekeeper/pkg/config/file"
	"github.com/stwrap/gatekeeper/pkg/config/layered"
	"github.com/stwrap/gatekeeper/pkg/config/memory"
	"github.com/stwrap/gatekeeper/pkg/config/wrapper"
	"github.com/stwrap/gatekeeper/pkg/solana"
	"github.com/stwrap/gatekeeper/pkg/solana/token"
	"github.com/stwrap/gatekeeper/pkg/solana/tokenswap"
)

const (
	WrapperProgramKey   = "wrapper_program_id"
	TokenProgramKey     = "token_program_id"
	TokenSwapProgramKey = "token_swap_program_id"

	// EndpointKey names the RPC endpoint account snapshots are fetched from.
	EndpointKey = "rpc_endpoint"
)

// IDs are the programs a wrapper instance interacts with.
type IDs struct {
	// The wrapper program that owns instance records and derives every
	// instance address.
	Wrapper ed25519.PublicKey
	// The token program owning every mint and token account.
	Token ed25519.PublicKey
	// The token-swap program owning the rewards pool. Only used by the
	// dual-asset wrapper.
	TokenSwap ed25519.PublicKey
}

// Config holds one source per program id.
type Config struct {
	Wrapper   config.PublicKey
	Token     config.PublicKey
	TokenSwap config.PublicKey

	Endpoint config.String
}

// NewConfig layers, per key, flags over the config file over the environment.
// flags and v may be nil. The token and token-swap programs default to their
// well known ids and the endpoint to mainnet; the wrapper program has no
// default.
func NewConfig(flags map[string]string, v *viper.Viper) *Config {
	source := func(key string) config.Config {
		return layered.NewConfig(
			memory.NewConfigFromMap(flags, key),
			file.NewConfig(v, key),
			env.NewConfig(key),
		)
	}

	return &Config{
		Wrapper:   wrapper.NewPublicKeyConfig(source(WrapperProgramKey), nil),
		Token:     wrapper.NewPublicKeyConfig(source(TokenProgramKey), token.ProgramKey),
		TokenSwap: wrapper.NewPublicKeyConfig(source(TokenSwapProgramKey), tokenswap.ProgramKey),
		Endpoint:  wrapper.NewStringConfig(source(EndpointKey), string(solana.EnvironmentProd)),
	}
}

// Load resolves every program id. Any missing or malformed id fails the load.
func Load(ctx context.Context, c *Config) (*IDs, error) {
	var ids IDs
	for _, field := range []struct {
		key string
		src config.PublicKey
		dst *ed25519.PublicKey
	}{
		{WrapperProgramKey, c.Wrapper, &ids.Wrapper},
		{TokenProgramKey, c.Token, &ids.Token},
		{TokenSwapProgramKey, c.TokenSwap, &ids.TokenSwap},
	} {
		val, err := field.src.GetSafe(ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to resolve %s", field.key)
		}
		*field.dst = val
	}
	return &ids, nil
}

// NewClient returns an RPC client for the configured endpoint.
func NewClient(ctx context.Context, c *Config) (solana.Client, error) {
	endpoint, err := c.Endpoint.GetSafe(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", EndpointKey)
	}
	return solana.New(endpoint), nil
}
