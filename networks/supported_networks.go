package networks

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var ErrNetworkNotFound = fmt.Errorf("network not found")

// Registry holds every network contributed by the loaded plugins, grouped by
// ecosystem.
type Registry struct {
	mu           sync.RWMutex
	networks     map[string]map[string]Network
	networksByID map[uint64]Network
}

func NewRegistry() *Registry {
	return &Registry{
		networks:     map[string]map[string]Network{},
		networksByID: map[uint64]Network{},
	}
}

// NormalizeName maps the snake case spelling used in config files to the
// dashed spelling used in network names.
func NormalizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}

func (r *Registry) Add(n Network) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	eco := strings.ToLower(n.GetEcosystem())
	byName, found := r.networks[eco]
	if !found {
		byName = map[string]Network{}
		r.networks[eco] = byName
	}

	names := append([]string{n.GetName()}, n.GetAlternativeNames()...)
	for _, name := range names {
		if _, found := byName[NormalizeName(name)]; found {
			return fmt.Errorf(
				"network with name or alternative name of '%s' already exists in ecosystem '%s'",
				name, eco,
			)
		}
	}
	for _, name := range names {
		byName[NormalizeName(name)] = n
	}
	if n.GetKind() == KindLive {
		if existing, found := r.networksByID[n.GetChainID()]; found {
			logrus.WithFields(logrus.Fields{
				"chain_id": n.GetChainID(),
				"existing": existing.GetEcosystem() + ":" + existing.GetName(),
				"network":  eco + ":" + n.GetName(),
			}).Warn("chain id registered twice, using the latest network")
		}
		r.networksByID[n.GetChainID()] = n
	}
	return nil
}

func (r *Registry) Get(ecosystem, name string) (Network, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byName, found := r.networks[strings.ToLower(ecosystem)]
	if !found {
		return nil, fmt.Errorf("ecosystem '%s': %w", ecosystem, ErrNetworkNotFound)
	}
	res, found := byName[NormalizeName(name)]
	if !found {
		return nil, fmt.Errorf("network name '%s:%s': %w", ecosystem, name, ErrNetworkNotFound)
	}
	return res, nil
}

func (r *Registry) GetByChainID(id uint64) (Network, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, found := r.networksByID[id]
	if !found {
		return nil, fmt.Errorf("network id %d: %w", id, ErrNetworkNotFound)
	}
	return res, nil
}

// Networks returns the networks of an ecosystem ordered by name. Every
// network appears once even when it has alternative names.
func (r *Registry) Networks(ecosystem string) []Network {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := map[Network]bool{}
	res := []Network{}
	for _, n := range r.networks[strings.ToLower(ecosystem)] {
		if seen[n] {
			continue
		}
		seen[n] = true
		res = append(res, n)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].GetName() < res[j].GetName()
	})
	return res
}

func (r *Registry) Ecosystems() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]string, 0, len(r.networks))
	for eco := range r.networks {
		res = append(res, eco)
	}
	sort.Strings(res)
	return res
}

// LoadCustomNetworks reads every *.json network description in dir. Files
// that fail to parse are skipped.
func LoadCustomNetworks(dir string) ([]Network, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob between json files in %s: %w", dir, err)
	}

	networks := []Network{}
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", file, err)
		}

		network, err := NewNetworkFromJSON(content)
		if err != nil {
			logrus.WithField("file", file).WithError(err).
				Warn("failed to parse custom network, ignore and continue with other custom networks")
			continue
		}
		networks = append(networks, network)
	}
	return networks, nil
}

func NewNetworkFromJSON(content []byte) (Network, error) {
	networkConfig := GenericL2NetworkConfig{}
	err := json.Unmarshal(content, &networkConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal network config: %w", err)
	}
	if networkConfig.Name == "" || networkConfig.Ecosystem == "" {
		return nil, fmt.Errorf("network config needs both name and ecosystem")
	}
	return NewGenericL2Network(networkConfig), nil
}
