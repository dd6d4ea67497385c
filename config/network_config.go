package config

import (
	"fmt"
	"sort"

	"github.com/hashicorp/go-multierror"

	"github.com/tranvictor/l2plugins/networks"
	"github.com/tranvictor/l2plugins/tx"
)

const (
	DefaultLiveBaseFeeMultiplier = 1.4
	DefaultTransactionAcceptance = 20
)

// NetworkConfig holds the settings of one network of an ecosystem.
type NetworkConfig struct {
	BlockTime                    uint32             `yaml:"block_time" json:"block_time"`
	RequiredConfirmations        uint32             `yaml:"required_confirmations" json:"required_confirmations"`
	DefaultTransactionType       tx.TransactionType `yaml:"default_transaction_type" json:"default_transaction_type"`
	GasLimit                     GasLimit           `yaml:"gas_limit" json:"gas_limit"`
	BaseFeeMultiplier            float64            `yaml:"base_fee_multiplier" json:"base_fee_multiplier"`
	TransactionAcceptanceTimeout uint32             `yaml:"transaction_acceptance_timeout" json:"transaction_acceptance_timeout"`
}

// NetworkDefaults are the chain wide values every live network of an
// ecosystem starts from.
type NetworkDefaults struct {
	BlockTime              uint32
	RequiredConfirmations  uint32
	DefaultTransactionType tx.TransactionType
}

func (d NetworkDefaults) live() NetworkConfig {
	timeout := 2 * d.BlockTime
	if timeout < DefaultTransactionAcceptance {
		timeout = DefaultTransactionAcceptance
	}
	return NetworkConfig{
		BlockTime:                    d.BlockTime,
		RequiredConfirmations:        d.RequiredConfirmations,
		DefaultTransactionType:       d.DefaultTransactionType,
		GasLimit:                     AutoGasLimit,
		BaseFeeMultiplier:            DefaultLiveBaseFeeMultiplier,
		TransactionAcceptanceTimeout: timeout,
	}
}

func (d NetworkDefaults) local() NetworkConfig {
	return NetworkConfig{
		DefaultTransactionType:       d.DefaultTransactionType,
		GasLimit:                     MaxGasLimit,
		BaseFeeMultiplier:            1.0,
		TransactionAcceptanceTimeout: DefaultTransactionAcceptance,
	}
}

func (d NetworkDefaults) custom() NetworkConfig {
	return NetworkConfig{
		DefaultTransactionType:       d.DefaultTransactionType,
		GasLimit:                     AutoGasLimit,
		BaseFeeMultiplier:            1.0,
		TransactionAcceptanceTimeout: DefaultTransactionAcceptance,
	}
}

// EcosystemConfig is the configuration schema of one ecosystem: a config per
// live network, per fork of a live network, for the local network and for
// any custom network named in the config file.
type EcosystemConfig struct {
	Name                   string
	DefaultTransactionType tx.TransactionType
	DefaultNetwork         string
	Defaults               NetworkDefaults

	networks map[string]NetworkConfig
}

func NewEcosystemConfig(name string, defaults NetworkDefaults, entries []networks.NetworkEntry) *EcosystemConfig {
	c := &EcosystemConfig{
		Name:                   name,
		DefaultTransactionType: defaults.DefaultTransactionType,
		DefaultNetwork:         networks.LocalNetworkName,
		Defaults:               defaults,
		networks:               map[string]NetworkConfig{},
	}
	for _, entry := range entries {
		c.networks[networks.NormalizeName(entry.Name)] = defaults.live()
		c.networks[networks.NormalizeName(networks.ForkName(entry.Name))] = defaults.local()
	}
	c.networks[networks.LocalNetworkName] = defaults.local()
	return c
}

// Get returns the config of a network. Names are matched in either the
// dashed (mainnet-fork) or snake case (mainnet_fork) spelling. Networks the
// ecosystem does not know get the custom network defaults.
func (c *EcosystemConfig) Get(network string) NetworkConfig {
	if cfg, found := c.networks[networks.NormalizeName(network)]; found {
		return cfg
	}
	return c.Defaults.custom()
}

func (c *EcosystemConfig) Has(network string) bool {
	_, found := c.networks[networks.NormalizeName(network)]
	return found
}

// Set replaces the config of a network.
func (c *EcosystemConfig) Set(network string, cfg NetworkConfig) {
	c.networks[networks.NormalizeName(network)] = cfg
}

func (c *EcosystemConfig) Names() []string {
	res := make([]string, 0, len(c.networks))
	for name := range c.networks {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// Apply merges a config file section over the current values. Every
// invalid network section is reported.
func (c *EcosystemConfig) Apply(section EcosystemSection) error {
	var result *multierror.Error
	if section.DefaultNetwork != "" {
		c.DefaultNetwork = networks.NormalizeName(section.DefaultNetwork)
	}
	for _, name := range sortedKeys(section.Networks) {
		cfg, err := section.Networks[name].apply(c.Get(name))
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s.%s: %w", c.Name, name, err))
			continue
		}
		c.Set(name, cfg)
	}
	return result.ErrorOrNil()
}

// Validate reports every network whose config can't be used.
func (c *EcosystemConfig) Validate() error {
	var result *multierror.Error
	if !c.DefaultTransactionType.IsSupported() {
		result = multierror.Append(result, fmt.Errorf("%s: %w", c.Name, &tx.UnsupportedTransactionTypeError{Type: c.DefaultTransactionType}))
	}
	for _, name := range c.Names() {
		if err := c.networks[name].Validate(); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s.%s: %w", c.Name, name, err))
		}
	}
	return result.ErrorOrNil()
}

func (nc NetworkConfig) Validate() error {
	if !nc.DefaultTransactionType.IsSupported() {
		return &tx.UnsupportedTransactionTypeError{Type: nc.DefaultTransactionType}
	}
	if nc.BaseFeeMultiplier < 1.0 {
		return fmt.Errorf("base_fee_multiplier must be at least 1.0, got %v", nc.BaseFeeMultiplier)
	}
	if nc.GasLimit.Policy == GasLimitExact && nc.GasLimit.Value == 0 {
		return fmt.Errorf("gas_limit can't be 0")
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	res := make([]string, 0, len(m))
	for k := range m {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}
