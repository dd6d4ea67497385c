package networks

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type GenericL2NetworkConfig struct {
	Name               string            `json:"name"`
	Ecosystem          string            `json:"ecosystem"`
	Kind               Kind              `json:"kind"`
	AlternativeNames   []string          `json:"alternative_names"`
	ChainID            uint64            `json:"chain_id"`
	NetworkID          uint64            `json:"network_id"`
	NativeTokenSymbol  string            `json:"native_token_symbol"`
	NativeTokenDecimal uint64            `json:"native_token_decimal"`
	BlockTime          uint64            `json:"block_time"`
	NodeVariableName   string            `json:"node_variable_name"`
	DefaultNodes       map[string]string `json:"default_nodes"`
	BlockExplorerURL   string            `json:"block_explorer_url"`
}

// GenericL2Network is a network of an OP-stack style rollup whose identity is
// fully described by its config.
type GenericL2Network struct {
	config GenericL2NetworkConfig
}

func NewGenericL2Network(config GenericL2NetworkConfig) *GenericL2Network {
	if config.NetworkID == 0 {
		config.NetworkID = config.ChainID
	}
	if config.NativeTokenSymbol == "" {
		config.NativeTokenSymbol = "ETH"
	}
	if config.NativeTokenDecimal == 0 {
		config.NativeTokenDecimal = 18
	}
	if config.NodeVariableName == "" {
		config.NodeVariableName = NodeVariableName(config.Ecosystem, config.Name)
	}
	return &GenericL2Network{config: config}
}

// NewLiveNetwork creates the live network of an ecosystem from its entry.
func NewLiveNetwork(ecosystem string, entry NetworkEntry, blockTime uint64, nodes map[string]string, explorer string) *GenericL2Network {
	return NewGenericL2Network(GenericL2NetworkConfig{
		Name:             entry.Name,
		Ecosystem:        ecosystem,
		Kind:             KindLive,
		AlternativeNames: []string{},
		ChainID:          entry.ChainID,
		NetworkID:        entry.NetworkID,
		BlockTime:        blockTime,
		DefaultNodes:     nodes,
		BlockExplorerURL: explorer,
	})
}

// NewForkNetwork creates the fork variant of a live network. The fork keeps
// the chain id of its upstream so signed transactions stay replayable.
func NewForkNetwork(upstream Network) *GenericL2Network {
	return NewGenericL2Network(GenericL2NetworkConfig{
		Name:               ForkName(upstream.GetName()),
		Ecosystem:          upstream.GetEcosystem(),
		Kind:               KindFork,
		AlternativeNames:   []string{},
		ChainID:            upstream.GetChainID(),
		NetworkID:          upstream.GetNetworkID(),
		NativeTokenSymbol:  upstream.GetNativeTokenSymbol(),
		NativeTokenDecimal: upstream.GetNativeTokenDecimal(),
		BlockTime:          uint64(upstream.GetBlockTime() / time.Second),
		DefaultNodes:       map[string]string{},
		BlockExplorerURL:   upstream.GetBlockExplorerURL(),
	})
}

// NewLocalNetwork creates the local network of an ecosystem. Its chain id is
// unknown until a provider connects.
func NewLocalNetwork(ecosystem string) *GenericL2Network {
	return NewGenericL2Network(GenericL2NetworkConfig{
		Name:             LocalNetworkName,
		Ecosystem:        ecosystem,
		Kind:             KindLocal,
		AlternativeNames: []string{},
		DefaultNodes:     map[string]string{},
	})
}

// NodeVariableName returns the env var that overrides the node url of a
// network, e.g. BASE_MAINNET_NODE.
func NodeVariableName(ecosystem, network string) string {
	name := fmt.Sprintf("%s_%s_NODE", ecosystem, network)
	return strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

func (gn *GenericL2Network) GetName() string {
	return gn.config.Name
}

func (gn *GenericL2Network) GetEcosystem() string {
	return gn.config.Ecosystem
}

func (gn *GenericL2Network) GetKind() Kind {
	return gn.config.Kind
}

func (gn *GenericL2Network) GetChainID() uint64 {
	return gn.config.ChainID
}

func (gn *GenericL2Network) GetNetworkID() uint64 {
	return gn.config.NetworkID
}

func (gn *GenericL2Network) GetAlternativeNames() []string {
	return gn.config.AlternativeNames
}

func (gn *GenericL2Network) GetNativeTokenSymbol() string {
	return gn.config.NativeTokenSymbol
}

func (gn *GenericL2Network) GetNativeTokenDecimal() uint64 {
	return gn.config.NativeTokenDecimal
}

func (gn *GenericL2Network) GetBlockTime() time.Duration {
	return time.Duration(gn.config.BlockTime) * time.Second
}

func (gn *GenericL2Network) GetNodeVariableName() string {
	return gn.config.NodeVariableName
}

func (gn *GenericL2Network) GetDefaultNodes() map[string]string {
	return gn.config.DefaultNodes
}

func (gn *GenericL2Network) GetBlockExplorerURL() string {
	return gn.config.BlockExplorerURL
}

func (gn *GenericL2Network) MarshalJSON() ([]byte, error) {
	return json.Marshal(gn.config)
}

func (gn *GenericL2Network) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &gn.config)
}
