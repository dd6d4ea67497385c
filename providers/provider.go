package providers

import (
	"context"
	"errors"
	"math/big"

	"github.com/tranvictor/l2plugins/config"
	"github.com/tranvictor/l2plugins/networks"
)

const (
	NodeProviderName  = "node"
	LocalProviderName = "test"
)

var (
	ErrNotConnected    = errors.New("provider is not connected")
	ErrChainIDMismatch = errors.New("chain id mismatch")
)

// Provider is a connection to one network of an ecosystem.
type Provider interface {
	Name() string
	Network() networks.Network
	NetworkConfig() config.NetworkConfig
	// ChainID is the chain id reported by the connected chain.
	ChainID() uint64
	// MaxGas is the block gas limit used when the gas limit policy is "max".
	MaxGas() uint64

	Connect(ctx context.Context) error
	Disconnect()
	IsConnected() bool
}

// FeeSuggester is implemented by providers that read fee levels from the
// chain they are connected to.
type FeeSuggester interface {
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	// BaseFee is the base fee of the latest block, nil before London.
	BaseFee(ctx context.Context) (*big.Int, error)
}

// Factory creates a provider for a network. Plugins register one factory
// per (ecosystem, network) pair.
type Factory func(n networks.Network, cfg config.NetworkConfig) Provider
