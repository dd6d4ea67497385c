package networks

import (
	"time"
)

// Kind tells how a network is reached: a live chain, a local fork of a live
// chain, or a throwaway local chain.
type Kind uint8

const (
	KindLive Kind = iota
	KindFork
	KindLocal
)

func (k Kind) String() string {
	switch k {
	case KindLive:
		return "live"
	case KindFork:
		return "fork"
	case KindLocal:
		return "local"
	}
	return "unknown"
}

type Network interface {
	GetName() string
	GetEcosystem() string
	GetKind() Kind
	GetChainID() uint64
	GetNetworkID() uint64
	GetAlternativeNames() []string
	GetNativeTokenSymbol() string
	GetNativeTokenDecimal() uint64
	GetBlockTime() time.Duration // in second

	GetNodeVariableName() string
	GetDefaultNodes() map[string]string
	GetBlockExplorerURL() string

	MarshalJSON() ([]byte, error)
}
