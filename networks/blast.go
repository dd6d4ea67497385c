package networks

const BlastEcosystemName = "blast"

// BlastNetworks lists the live Blast chains as (chain_id, network_id).
var BlastNetworks = []NetworkEntry{
	{Name: "mainnet", ChainID: 81457, NetworkID: 81457},
	{Name: "sepolia", ChainID: 168587773, NetworkID: 168587773},
}

var blastNodes = map[string]map[string]string{
	"mainnet": {"public-blast": "https://rpc.blast.io"},
	"sepolia": {"public-blast-sepolia": "https://sepolia.blast.io"},
}

var blastExplorers = map[string]string{
	"mainnet": "https://blastscan.io",
	"sepolia": "https://sepolia.blastscan.io",
}

// NewBlastNetwork creates the live Blast network for entry.
func NewBlastNetwork(entry NetworkEntry) Network {
	return NewLiveNetwork(BlastEcosystemName, entry, 2, blastNodes[entry.Name], blastExplorers[entry.Name])
}
