package plugin

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/tranvictor/l2plugins/config"
	"github.com/tranvictor/l2plugins/ecosystem"
	"github.com/tranvictor/l2plugins/networks"
	"github.com/tranvictor/l2plugins/providers"
)

var ErrDuplicatePlugin = errors.New("plugin already registered")

// NetworkType tells the host how to build a registered network.
type NetworkType struct {
	Kind networks.Kind
	// Entry is only set for live networks.
	Entry networks.NetworkEntry
}

// Live is the type of a live network of the given entry.
func Live(entry networks.NetworkEntry) NetworkType {
	return NetworkType{Kind: networks.KindLive, Entry: entry}
}

// Fork is the type of a fork network. Its upstream is the live network whose
// name is the fork name without the fork suffix.
var Fork = NetworkType{Kind: networks.KindFork}

// Local is the type of an ecosystem's local network.
var Local = NetworkType{Kind: networks.KindLocal}

// ConfigFactory creates the config of a plugin, filled with defaults.
type ConfigFactory func() *config.EcosystemConfig

// EcosystemFactory contributes one ecosystem to the host.
type EcosystemFactory struct {
	Name string
	// NewNetwork builds the live network of an entry.
	NewNetwork func(entry networks.NetworkEntry) networks.Network
	New        func(cfg *config.EcosystemConfig, ps ecosystem.ProviderSource) *ecosystem.Ecosystem
}

type NetworkRegistration struct {
	Ecosystem string
	Name      string
	Type      NetworkType
}

type ProviderRegistration struct {
	Ecosystem string
	Network   string
	Name      string
	New       providers.Factory
}

// Plugin is what an ecosystem plugin hands to the host. The host calls
// every method once while loading.
type Plugin interface {
	// Name is also the key of the plugin's section in the config file.
	Name() string
	ConfigClass() ConfigFactory
	Ecosystems() []EcosystemFactory
	Networks() []NetworkRegistration
	Providers() []ProviderRegistration
}

var (
	mu      sync.RWMutex
	plugins = map[string]Plugin{}
)

// Register makes a plugin available to Load.
func Register(p Plugin) error {
	mu.Lock()
	defer mu.Unlock()
	if _, found := plugins[p.Name()]; found {
		return fmt.Errorf("%w: %s", ErrDuplicatePlugin, p.Name())
	}
	plugins[p.Name()] = p
	return nil
}

// MustRegister is Register for init functions.
func MustRegister(p Plugin) {
	if err := Register(p); err != nil {
		panic(err)
	}
}

// Registered returns the registered plugins sorted by name.
func Registered() []Plugin {
	mu.RLock()
	defer mu.RUnlock()
	res := make([]Plugin, 0, len(plugins))
	for _, p := range plugins {
		res = append(res, p)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Name() < res[j].Name()
	})
	return res
}

// StandardNetworks registers, for every entry, the live network, its fork
// and finally the ecosystem's local network.
func StandardNetworks(ecosystem string, entries []networks.NetworkEntry) []NetworkRegistration {
	res := []NetworkRegistration{}
	for _, entry := range entries {
		res = append(res,
			NetworkRegistration{Ecosystem: ecosystem, Name: entry.Name, Type: Live(entry)},
			NetworkRegistration{Ecosystem: ecosystem, Name: networks.ForkName(entry.Name), Type: Fork},
		)
	}
	return append(res, NetworkRegistration{Ecosystem: ecosystem, Name: networks.LocalNetworkName, Type: Local})
}

// StandardProviders registers the node provider for every live network and
// the test provider for the local network.
func StandardProviders(ecosystem string, entries []networks.NetworkEntry) []ProviderRegistration {
	res := []ProviderRegistration{}
	for _, entry := range entries {
		res = append(res, ProviderRegistration{
			Ecosystem: ecosystem,
			Network:   entry.Name,
			Name:      providers.NodeProviderName,
			New:       providers.NewNodeProvider,
		})
	}
	return append(res, ProviderRegistration{
		Ecosystem: ecosystem,
		Network:   networks.LocalNetworkName,
		Name:      providers.LocalProviderName,
		New:       providers.NewLocalProvider,
	})
}
