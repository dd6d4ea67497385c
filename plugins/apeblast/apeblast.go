// Package apeblast plugs the Blast ecosystem into the host: mainnet and
// sepolia, their forks and a local network.
package apeblast

import (
	"github.com/tranvictor/l2plugins/config"
	"github.com/tranvictor/l2plugins/ecosystem"
	"github.com/tranvictor/l2plugins/networks"
	"github.com/tranvictor/l2plugins/plugin"
	"github.com/tranvictor/l2plugins/tx"
)

const Name = networks.BlastEcosystemName

// Networks are the live Blast networks.
var Networks = networks.BlastNetworks

var Defaults = config.NetworkDefaults{
	BlockTime:              2,
	RequiredConfirmations:  1,
	DefaultTransactionType: tx.TxTypeStatic,
}

// NewConfig returns the Blast config with every network at its default.
func NewConfig() *config.EcosystemConfig {
	return config.NewEcosystemConfig(Name, Defaults, Networks)
}

func NewEcosystem(cfg *config.EcosystemConfig, ps ecosystem.ProviderSource) *ecosystem.Ecosystem {
	return ecosystem.New(Name, cfg, ps)
}

type Plugin struct{}

func (Plugin) Name() string {
	return Name
}

func (Plugin) ConfigClass() plugin.ConfigFactory {
	return NewConfig
}

func (Plugin) Ecosystems() []plugin.EcosystemFactory {
	return []plugin.EcosystemFactory{{
		Name:       Name,
		NewNetwork: networks.NewBlastNetwork,
		New:        NewEcosystem,
	}}
}

func (Plugin) Networks() []plugin.NetworkRegistration {
	return plugin.StandardNetworks(Name, Networks)
}

func (Plugin) Providers() []plugin.ProviderRegistration {
	return plugin.StandardProviders(Name, Networks)
}

func init() {
	plugin.MustRegister(Plugin{})
}
