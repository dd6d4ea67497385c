package plugin

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/tranvictor/l2plugins/config"
	"github.com/tranvictor/l2plugins/ecosystem"
	"github.com/tranvictor/l2plugins/networks"
	"github.com/tranvictor/l2plugins/providers"
)

var (
	ErrEcosystemNotFound = errors.New("ecosystem not found")
	ErrProviderNotFound  = errors.New("provider not found")
)

// Host holds everything the loaded plugins contributed.
type Host struct {
	registry   *networks.Registry
	ecosystems map[string]*ecosystem.Ecosystem
	// ecosystem -> network -> provider name -> factory
	providers map[string]map[string]map[string]providers.Factory
	manager   *providers.Manager
}

// Load loads every registered plugin against the user config file.
func Load(file *config.File, pm *providers.Manager) (*Host, error) {
	return LoadPlugins(Registered(), file, pm)
}

// LoadPlugins applies the config file section of each plugin, validates the
// result and builds the networks, ecosystems and provider table. Every
// config error of every plugin is reported at once.
func LoadPlugins(plugins []Plugin, file *config.File, pm *providers.Manager) (*Host, error) {
	if pm == nil {
		pm = providers.NewManager()
	}
	h := &Host{
		registry:   networks.NewRegistry(),
		ecosystems: map[string]*ecosystem.Ecosystem{},
		providers:  map[string]map[string]map[string]providers.Factory{},
		manager:    pm,
	}

	var result *multierror.Error
	for _, p := range plugins {
		if err := h.load(p, file); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *Host) load(p Plugin, file *config.File) error {
	cfg := p.ConfigClass()()
	section, err := file.Section(p.Name())
	if err != nil {
		return err
	}
	if err := cfg.Apply(section); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	builders := map[string]func(networks.NetworkEntry) networks.Network{}
	for _, factory := range p.Ecosystems() {
		if _, found := h.ecosystems[factory.Name]; found {
			return fmt.Errorf("ecosystem %s is provided by more than one plugin", factory.Name)
		}
		h.ecosystems[factory.Name] = factory.New(cfg, h.manager)
		builders[factory.Name] = factory.NewNetwork
	}

	// forks need their upstream in the registry
	regs := append([]NetworkRegistration{}, p.Networks()...)
	sort.SliceStable(regs, func(i, j int) bool {
		return regs[i].Type.Kind < regs[j].Type.Kind
	})
	for _, reg := range regs {
		n, err := h.buildNetwork(reg, builders)
		if err != nil {
			return fmt.Errorf("%s: %w", p.Name(), err)
		}
		if err := h.registry.Add(n); err != nil {
			return fmt.Errorf("%s: %w", p.Name(), err)
		}
	}

	for _, reg := range p.Providers() {
		h.addProvider(reg)
	}
	logrus.WithFields(logrus.Fields{
		"plugin":   p.Name(),
		"networks": len(regs),
	}).Debug("plugin loaded")
	return nil
}

func (h *Host) buildNetwork(reg NetworkRegistration, builders map[string]func(networks.NetworkEntry) networks.Network) (networks.Network, error) {
	switch reg.Type.Kind {
	case networks.KindLive:
		build, found := builders[reg.Ecosystem]
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrEcosystemNotFound, reg.Ecosystem)
		}
		return build(reg.Type.Entry), nil
	case networks.KindFork:
		upstream, err := h.registry.Get(reg.Ecosystem, strings.TrimSuffix(reg.Name, networks.ForkSuffix))
		if err != nil {
			return nil, fmt.Errorf("upstream of %s: %w", reg.Name, err)
		}
		return networks.NewForkNetwork(upstream), nil
	case networks.KindLocal:
		return networks.NewLocalNetwork(reg.Ecosystem), nil
	}
	return nil, fmt.Errorf("unknown network kind %s of %s", reg.Type.Kind, reg.Name)
}

func (h *Host) addProvider(reg ProviderRegistration) {
	byNetwork, found := h.providers[reg.Ecosystem]
	if !found {
		byNetwork = map[string]map[string]providers.Factory{}
		h.providers[reg.Ecosystem] = byNetwork
	}
	network := networks.NormalizeName(reg.Network)
	if byNetwork[network] == nil {
		byNetwork[network] = map[string]providers.Factory{}
	}
	byNetwork[network][reg.Name] = reg.New
}

// AddCustomNetworks registers the JSON network files of dir. Custom
// networks of a loaded ecosystem can use the node provider.
func (h *Host) AddCustomNetworks(dir string) error {
	custom, err := networks.LoadCustomNetworks(dir)
	if err != nil {
		return err
	}
	for _, n := range custom {
		if _, found := h.ecosystems[n.GetEcosystem()]; !found {
			logrus.Warnf("skipping custom network %s: ecosystem %s is not loaded", n.GetName(), n.GetEcosystem())
			continue
		}
		if err := h.registry.Add(n); err != nil {
			return err
		}
		h.addProvider(ProviderRegistration{
			Ecosystem: n.GetEcosystem(),
			Network:   n.GetName(),
			Name:      providers.NodeProviderName,
			New:       providers.NewNodeProvider,
		})
	}
	return nil
}

func (h *Host) Ecosystem(name string) (*ecosystem.Ecosystem, error) {
	e, found := h.ecosystems[strings.ToLower(name)]
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrEcosystemNotFound, name)
	}
	return e, nil
}

func (h *Host) Ecosystems() []string {
	res := make([]string, 0, len(h.ecosystems))
	for name := range h.ecosystems {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

func (h *Host) Network(ecosystem, name string) (networks.Network, error) {
	return h.registry.Get(ecosystem, name)
}

// NetworkByChainID returns the live network serving a chain id, whichever
// ecosystem it belongs to.
func (h *Host) NetworkByChainID(id uint64) (networks.Network, error) {
	return h.registry.GetByChainID(id)
}

func (h *Host) Networks(ecosystem string) []networks.Network {
	return h.registry.Networks(ecosystem)
}

func (h *Host) ProviderManager() *providers.Manager {
	return h.manager
}

// ProviderNames lists the providers registered for a network.
func (h *Host) ProviderNames(ecosystem, network string) []string {
	n, err := h.registry.Get(ecosystem, network)
	if err != nil {
		return nil
	}
	factories := h.providers[n.GetEcosystem()][networks.NormalizeName(n.GetName())]
	res := make([]string, 0, len(factories))
	for name := range factories {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// Provider creates a provider of a network configured by its ecosystem's
// config. An empty provider name picks the only provider of the network.
func (h *Host) Provider(ecosystem, network, providerName string) (providers.Provider, error) {
	eco, err := h.Ecosystem(ecosystem)
	if err != nil {
		return nil, err
	}
	n, err := h.registry.Get(ecosystem, network)
	if err != nil {
		return nil, err
	}

	factories := h.providers[n.GetEcosystem()][networks.NormalizeName(n.GetName())]
	if providerName == "" {
		if len(factories) != 1 {
			return nil, fmt.Errorf("%w: %s:%s has %d providers, pick one of %v",
				ErrProviderNotFound, ecosystem, network, len(factories), h.ProviderNames(ecosystem, network))
		}
		for name := range factories {
			providerName = name
		}
	}
	factory, found := factories[providerName]
	if !found {
		return nil, fmt.Errorf("%w: %s for %s:%s", ErrProviderNotFound, providerName, ecosystem, network)
	}
	return factory(n, eco.Config().Get(n.GetName())), nil
}

// Connect creates a provider and makes it the active one.
func (h *Host) Connect(ctx context.Context, ecosystem, network, providerName string) (providers.Provider, error) {
	p, err := h.Provider(ecosystem, network, providerName)
	if err != nil {
		return nil, err
	}
	if err := h.manager.Use(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
