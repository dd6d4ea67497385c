package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/tranvictor/l2plugins/config"
	"github.com/tranvictor/l2plugins/networks"
	"github.com/tranvictor/l2plugins/plugin"
	"github.com/tranvictor/l2plugins/providers"
	"github.com/tranvictor/l2plugins/tx"

	// ecosystem plugins
	_ "github.com/tranvictor/l2plugins/plugins/apebase"
	_ "github.com/tranvictor/l2plugins/plugins/apeblast"
)

// configCandidates are looked up in the working directory when no config
// file is given.
var configCandidates = []string{"ape-config.yaml", "ape-config.yml", "pyproject.toml"}

func loadConfigFile() (*config.File, error) {
	if config.Path != "" {
		return config.Load(config.Path)
	}
	for _, candidate := range configCandidates {
		if _, err := os.Stat(candidate); err == nil {
			return config.Load(candidate)
		}
	}
	logrus.Debug("no config file found, using defaults")
	return config.EmptyFile(), nil
}

// loadHost loads every plugin against the config file and the custom
// networks directory.
func loadHost() (*plugin.Host, error) {
	file, err := loadConfigFile()
	if err != nil {
		return nil, err
	}
	host, err := plugin.Load(file, providers.NewManager())
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if config.NetworksDir != "" {
		if err := host.AddCustomNetworks(config.NetworksDir); err != nil {
			return nil, err
		}
	}
	return host, nil
}

// selectedNetwork is the --network flag, or the default network of the
// selected ecosystem.
func selectedNetwork(host *plugin.Host) (string, error) {
	if config.Network != "" {
		return config.Network, nil
	}
	eco, err := host.Ecosystem(config.Ecosystem)
	if err != nil {
		return "", err
	}
	return eco.Config().DefaultNetwork, nil
}

// findNetwork looks up a network of the selected ecosystem and suggests
// close names when there is none.
func findNetwork(host *plugin.Host, name string) (networks.Network, error) {
	n, err := host.Network(config.Ecosystem, name)
	if err == nil || !errors.Is(err, networks.ErrNetworkNotFound) {
		return n, err
	}
	names := []string{}
	for _, candidate := range host.Networks(config.Ecosystem) {
		names = append(names, candidate.GetName())
	}
	matches := fuzzy.Find(networks.NormalizeName(name), names)
	if len(matches) == 0 {
		return nil, err
	}
	suggestions := make([]string, 0, len(matches))
	for _, m := range matches {
		suggestions = append(suggestions, m.Str)
	}
	return nil, fmt.Errorf("%w, did you mean %s?", err, strings.Join(suggestions, " or "))
}

// parseRequestArgs turns key=value arguments into a transaction request.
// Values are read as YAML scalars so null, numbers and lists keep their
// type, except 0x literals which stay strings for the byte and hex aware
// converters.
func parseRequestArgs(args []string) (tx.Request, error) {
	req := tx.Request{}
	for _, arg := range args {
		key, raw, found := strings.Cut(arg, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", arg)
		}
		value, err := parseRequestValue(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		req[key] = value
	}
	return req, nil
}

func parseRequestValue(raw string) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		// empty value
		return raw, nil
	}
	node := doc.Content[0]
	switch {
	case node.Tag == "!!null":
		return nil, nil
	case node.Kind == yaml.SequenceNode || node.Kind == yaml.MappingNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	case node.Tag == "!!int" && !strings.HasPrefix(strings.ToLower(node.Value), "0x"):
		var v int64
		if err := node.Decode(&v); err != nil {
			// too large for int64, the converters parse the digits
			return node.Value, nil
		}
		return v, nil
	}
	return raw, nil
}
