package providers

import (
	"context"
	"sync"

	"github.com/tranvictor/l2plugins/config"
	"github.com/tranvictor/l2plugins/networks"
)

const (
	LocalChainID = 1337
	LocalMaxGas  = 30_000_000
)

// LocalProvider is an in-process test chain. It is always reachable and
// reports LocalChainID unless the network has its own chain id.
type LocalProvider struct {
	network networks.Network
	config  config.NetworkConfig

	mu        sync.Mutex
	connected bool
}

func NewLocalProvider(n networks.Network, cfg config.NetworkConfig) Provider {
	return &LocalProvider{network: n, config: cfg}
}

func (lp *LocalProvider) Name() string {
	return LocalProviderName
}

func (lp *LocalProvider) Network() networks.Network {
	return lp.network
}

func (lp *LocalProvider) NetworkConfig() config.NetworkConfig {
	return lp.config
}

func (lp *LocalProvider) ChainID() uint64 {
	if id := lp.network.GetChainID(); id != 0 {
		return id
	}
	return LocalChainID
}

func (lp *LocalProvider) MaxGas() uint64 {
	return LocalMaxGas
}

func (lp *LocalProvider) Connect(ctx context.Context) error {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	lp.connected = true
	return nil
}

func (lp *LocalProvider) Disconnect() {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	lp.connected = false
}

func (lp *LocalProvider) IsConnected() bool {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	return lp.connected
}
