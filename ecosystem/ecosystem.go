package ecosystem

import (
	"github.com/tranvictor/l2plugins/config"
	"github.com/tranvictor/l2plugins/conversion"
	"github.com/tranvictor/l2plugins/networks"
	"github.com/tranvictor/l2plugins/providers"
	"github.com/tranvictor/l2plugins/tx"
)

// ProviderSource hands out the provider in use, nil when none is.
type ProviderSource interface {
	ActiveProvider() providers.Provider
}

// Ecosystem is an Ethereum compatible L2 chain family as seen by the host:
// its configuration and its transaction construction rules.
type Ecosystem struct {
	name      string
	config    *config.EcosystemConfig
	providers ProviderSource
}

func New(name string, cfg *config.EcosystemConfig, ps ProviderSource) *Ecosystem {
	return &Ecosystem{
		name:      name,
		config:    cfg,
		providers: ps,
	}
}

func (e *Ecosystem) Name() string {
	return e.name
}

func (e *Ecosystem) Config() *config.EcosystemConfig {
	return e.config
}

// target is the network a transaction is built for along with the values
// it lends to fields the request leaves out.
type target struct {
	network networks.Network
	config  config.NetworkConfig
	chainID uint64
	// maxGas is 0 when nothing reported a block gas limit
	maxGas uint64
}

func (t *target) converter() tx.Converter {
	return conversion.ForNetwork(t.network)
}

// gasLimit applies the gas limit policy of the network config. Auto, and
// max without a known block gas limit, leave the gas to estimation.
func (t *target) gasLimit() *uint64 {
	var res uint64
	switch t.config.GasLimit.Policy {
	case config.GasLimitMax:
		res = t.maxGas
	case config.GasLimitExact:
		res = t.config.GasLimit.Value
	}
	if res == 0 {
		return nil
	}
	return &res
}

// activeProvider returns the active provider only when it serves one of
// this ecosystem's networks.
func (e *Ecosystem) activeProvider() providers.Provider {
	if e.providers == nil {
		return nil
	}
	p := e.providers.ActiveProvider()
	if p == nil || p.Network().GetEcosystem() != e.name {
		return nil
	}
	return p
}

func (e *Ecosystem) activeTarget() *target {
	p := e.activeProvider()
	if p == nil {
		return nil
	}
	return &target{
		network: p.Network(),
		config:  p.NetworkConfig(),
		chainID: p.ChainID(),
		maxGas:  p.MaxGas(),
	}
}

// networkTarget prefers the active provider when it serves n and falls back
// to the ecosystem config of n otherwise.
func (e *Ecosystem) networkTarget(n networks.Network) *target {
	if t := e.activeTarget(); t != nil && networks.NormalizeName(t.network.GetName()) == networks.NormalizeName(n.GetName()) {
		return t
	}
	return &target{
		network: n,
		config:  e.config.Get(n.GetName()),
		chainID: n.GetChainID(),
	}
}

// DefaultTransactionType is the default of the connected network's config,
// or the ecosystem wide default when no network of this ecosystem is
// connected.
func (e *Ecosystem) DefaultTransactionType() tx.TransactionType {
	return e.defaultTransactionType(e.activeTarget())
}

func (e *Ecosystem) defaultTransactionType(t *target) tx.TransactionType {
	if t != nil {
		return t.config.DefaultTransactionType
	}
	return e.config.DefaultTransactionType
}
