package solana

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/ybbus/jsonrpc"

	"github.com/stwrap/gatekeeper/pkg/retry"
)

const (
	// Reference: https://github.com/solana-labs/solana/blob/71e9958e061493d7545bd28d4ac7a85aaed6ffbb/client/src/rpc_custom_error.rs#L11
	rpcNodeUnhealthyCode = -32005

	// The RPC API caps getMultipleAccounts at 100 addresses per request.
	maxAccountsPerRequest = 100
)

type Commitment struct {
	Commitment string `json:"commitment"`
}

var (
	CommitmentProcessed = Commitment{Commitment: "processed"}
	CommitmentConfirmed = Commitment{Commitment: "confirmed"}
	CommitmentFinalized = Commitment{Commitment: "finalized"}
)

var (
	ErrNoAccountInfo = errors.New("no account info")
)

// Client fetches account snapshots from the Solana JSON RPC API. The
// snapshots it returns are untrusted input to the wrapper validators.
//
// Reference: https://docs.solana.com/apps/jsonrpc-api
type Client interface {
	GetAccountInfo(ctx context.Context, account ed25519.PublicKey, commitment Commitment) (*AccountInfo, error)

	// GetMultipleAccounts fetches every account at the same slot, in order.
	// It fails with ErrNoAccountInfo if any of them does not exist.
	GetMultipleAccounts(ctx context.Context, commitment Commitment, accounts ...ed25519.PublicKey) ([]*AccountInfo, error)
}

var (
	errRateLimited  = errors.New("rate limited")
	errServiceError = errors.New("service error")
)

var errMissingContext = errors.New("response is missing its context")

type rpcContext struct {
	Slot uint64 `json:"slot"`
}

type rpcAccount struct {
	Lamports   uint64   `json:"lamports"`
	Owner      string   `json:"owner"`
	Data       []string `json:"data"`
	Executable bool     `json:"executable"`
}

type rpcConfig struct {
	Commitment string `json:"commitment"`
	Encoding   string `json:"encoding"`
}

type client struct {
	log     *logrus.Entry
	client  jsonrpc.RPCClient
	retrier retry.Retrier
}

// New returns a client using the specified endpoint.
func New(endpoint string) Client {
	return NewWithRPCOptions(endpoint, nil)
}

// NewWithRPCOptions returns a client configured with the specified RPC options.
func NewWithRPCOptions(endpoint string, opts *jsonrpc.RPCClientOpts) Client {
	return newClient(endpoint, opts, retry.NewRetrier(
		retry.RetriableErrors(errRateLimited, errServiceError),
		retry.Limit(3),
		retry.BackoffWithJitter(retry.BinaryExponential(time.Second), 10*time.Second, 0.1),
	))
}

func newClient(endpoint string, opts *jsonrpc.RPCClientOpts, retrier retry.Retrier) *client {
	return &client{
		log:     logrus.StandardLogger().WithField("type", "solana/client"),
		client:  jsonrpc.NewClientWithOpts(endpoint, opts),
		retrier: retrier,
	}
}

func (c *client) call(ctx context.Context, out interface{}, method string, params ...interface{}) error {
	_, err := c.retrier.Retry(ctx, func() error {
		err := c.client.CallFor(out, method, params...)
		if err == nil {
			return nil
		}

		return c.handleRpcError(method, err)
	})

	return err
}

func (c *client) handleRpcError(method string, err error) error {
	rpcErr, ok := err.(*jsonrpc.RPCError)
	if !ok {
		return err
	}
	if rpcErr.Code == 429 {
		c.log.WithField("method", method).Error("rate limited")
		return errRateLimited
	}
	if rpcErr.Code >= 500 || rpcErr.Code == rpcNodeUnhealthyCode {
		return errServiceError
	}

	return err
}

func (c *client) GetAccountInfo(ctx context.Context, account ed25519.PublicKey, commitment Commitment) (*AccountInfo, error) {
	var resp struct {
		Context *rpcContext `json:"context"`
		Value   *rpcAccount `json:"value"`
	}

	config := rpcConfig{
		Commitment: commitment.Commitment,
		Encoding:   "base64",
	}
	if err := c.call(ctx, &resp, "getAccountInfo", base58.Encode(account), config); err != nil {
		return nil, errors.Wrap(err, "getAccountInfo() failed to send request")
	}

	if resp.Context == nil {
		return nil, errors.Wrap(errMissingContext, "getAccountInfo()")
	}
	if resp.Value == nil {
		return nil, errors.Wrap(ErrNoAccountInfo, base58.Encode(account))
	}

	return resp.Value.toAccountInfo(account, resp.Context.Slot)
}

func (c *client) GetMultipleAccounts(ctx context.Context, commitment Commitment, accounts ...ed25519.PublicKey) ([]*AccountInfo, error) {
	if len(accounts) > maxAccountsPerRequest {
		return nil, errors.Errorf("cannot fetch more than %d accounts at once", maxAccountsPerRequest)
	}
	if len(accounts) == 0 {
		return nil, nil
	}

	var resp struct {
		Context *rpcContext   `json:"context"`
		Value   []*rpcAccount `json:"value"`
	}

	encoded := make([]string, len(accounts))
	for i, account := range accounts {
		encoded[i] = base58.Encode(account)
	}
	config := rpcConfig{
		Commitment: commitment.Commitment,
		Encoding:   "base64",
	}
	if err := c.call(ctx, &resp, "getMultipleAccounts", encoded, config); err != nil {
		return nil, errors.Wrap(err, "getMultipleAccounts() failed to send request")
	}

	if resp.Context == nil {
		return nil, errors.Wrap(errMissingContext, "getMultipleAccounts()")
	}
	if len(resp.Value) != len(accounts) {
		return nil, errors.Errorf("getMultipleAccounts() returned %d accounts, expected %d", len(resp.Value), len(accounts))
	}

	infos := make([]*AccountInfo, len(accounts))
	for i, value := range resp.Value {
		if value == nil {
			return nil, errors.Wrap(ErrNoAccountInfo, encoded[i])
		}

		info, err := value.toAccountInfo(accounts[i], resp.Context.Slot)
		if err != nil {
			return nil, err
		}
		infos[i] = info
	}
	return infos, nil
}

func (a *rpcAccount) toAccountInfo(address ed25519.PublicKey, slot uint64) (*AccountInfo, error) {
	owner, err := base58.Decode(a.Owner)
	if err != nil {
		return nil, errors.Wrap(err, "invalid base58 encoded owner")
	}
	if len(a.Data) == 0 {
		return nil, errors.New("missing account data")
	}
	data, err := base64.StdEncoding.DecodeString(a.Data[0])
	if err != nil {
		return nil, errors.Wrap(err, "invalid base64 encoded data")
	}

	return &AccountInfo{
		Address:    append(ed25519.PublicKey{}, address...),
		Owner:      owner,
		Data:       data,
		Lamports:   a.Lamports,
		Executable: a.Executable,
		Slot:       slot,
	}, nil
}
