package config

// Command line settings shared by the cmd package.
var (
	Path        string
	NetworksDir string
	Ecosystem   string
	Network     string
	Provider    string
	Verbose     bool

	JSONOutput bool
	Connect    bool
)
