package networks

// LocalNetworkName is the name every ecosystem uses for its local chain.
const LocalNetworkName = "local"

// ForkSuffix is appended to a live network name to get its fork variant.
const ForkSuffix = "-fork"

// NetworkEntry is the static identity of a live network.
type NetworkEntry struct {
	Name      string
	ChainID   uint64
	NetworkID uint64
}

// ForkName returns the name of the fork variant of a live network.
func ForkName(name string) string {
	return name + ForkSuffix
}
