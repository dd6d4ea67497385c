package networks

const BaseEcosystemName = "base"

// BaseNetworks lists the live Base chains as (chain_id, network_id).
var BaseNetworks = []NetworkEntry{
	{Name: "mainnet", ChainID: 8453, NetworkID: 8453},
	{Name: "goerli", ChainID: 84531, NetworkID: 84531},
	{Name: "sepolia", ChainID: 84532, NetworkID: 84532},
}

var baseNodes = map[string]map[string]string{
	"mainnet": {"public-base": "https://mainnet.base.org"},
	"goerli":  {"public-base-goerli": "https://goerli.base.org"},
	"sepolia": {"public-base-sepolia": "https://sepolia.base.org"},
}

var baseExplorers = map[string]string{
	"mainnet": "https://basescan.org",
	"goerli":  "https://goerli.basescan.org",
	"sepolia": "https://sepolia.basescan.org",
}

// NewBaseNetwork creates the live Base network for entry.
func NewBaseNetwork(entry NetworkEntry) Network {
	return NewLiveNetwork(BaseEcosystemName, entry, 2, baseNodes[entry.Name], baseExplorers[entry.Name])
}
