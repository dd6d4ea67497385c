package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/tranvictor/l2plugins/tx"
)

const defaultNetworkKey = "default_network"

// NetworkOverride is one network section of a config file. Only the fields
// present in the file are applied.
type NetworkOverride struct {
	BlockTime                    *uint32  `yaml:"block_time"`
	RequiredConfirmations        *uint32  `yaml:"required_confirmations"`
	DefaultTransactionType       any      `yaml:"default_transaction_type"`
	GasLimit                     any      `yaml:"gas_limit"`
	BaseFeeMultiplier            *float64 `yaml:"base_fee_multiplier"`
	TransactionAcceptanceTimeout *uint32  `yaml:"transaction_acceptance_timeout"`
}

func (o NetworkOverride) apply(cfg NetworkConfig) (NetworkConfig, error) {
	if o.BlockTime != nil {
		cfg.BlockTime = *o.BlockTime
	}
	if o.RequiredConfirmations != nil {
		cfg.RequiredConfirmations = *o.RequiredConfirmations
	}
	if o.DefaultTransactionType != nil {
		t, err := tx.ParseTransactionType(fmt.Sprint(o.DefaultTransactionType))
		if err != nil {
			return cfg, fmt.Errorf("default_transaction_type: %w", err)
		}
		cfg.DefaultTransactionType = t
	}
	if o.GasLimit != nil {
		g, err := gasLimitFromAny(o.GasLimit)
		if err != nil {
			return cfg, fmt.Errorf("gas_limit: %w", err)
		}
		cfg.GasLimit = g
	}
	if o.BaseFeeMultiplier != nil {
		cfg.BaseFeeMultiplier = *o.BaseFeeMultiplier
	}
	if o.TransactionAcceptanceTimeout != nil {
		cfg.TransactionAcceptanceTimeout = *o.TransactionAcceptanceTimeout
	}
	return cfg, cfg.Validate()
}

// EcosystemSection is the part of a config file keyed by an ecosystem name.
type EcosystemSection struct {
	DefaultNetwork string
	Networks       map[string]NetworkOverride
}

// File is a parsed config file. Sections are decoded on demand so that
// sections belonging to other tools never fail the load.
type File struct {
	Path     string
	sections map[string]map[string]any
}

func EmptyFile() *File {
	return &File{sections: map[string]map[string]any{}}
}

// SectionNames lists every top level mapping of the file.
func (f *File) SectionNames() []string {
	if f == nil {
		return nil
	}
	return sortedKeys(f.sections)
}

// Section decodes the section of an ecosystem, empty when the file has none.
func (f *File) Section(ecosystem string) (EcosystemSection, error) {
	section := EcosystemSection{Networks: map[string]NetworkOverride{}}
	if f == nil {
		return section, nil
	}
	name := strings.ToLower(ecosystem)
	body, found := f.sections[name]
	if !found {
		return section, nil
	}
	for _, key := range sortedKeys(body) {
		v := body[key]
		if key == defaultNetworkKey {
			section.DefaultNetwork = fmt.Sprint(v)
			continue
		}
		netBody, ok := v.(map[string]any)
		if !ok {
			logrus.WithFields(logrus.Fields{"section": name, "key": key}).
				Debug("skipping non network entry in config section")
			continue
		}
		override, err := decodeOverride(netBody)
		if err != nil {
			return section, fmt.Errorf("%s.%s: %w", name, key, err)
		}
		section.Networks[key] = override
	}
	return section, nil
}

// Load reads an ape-config.yaml, a JSON file or the [tool.ape] table of a
// pyproject.toml.
func Load(path string) (*File, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var raw map[string]any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml", ".json":
		raw, err = parseYAML(data)
	case ".toml":
		raw, err = parsePyproject(data)
	default:
		return nil, fmt.Errorf("unsupported config file extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	file := fileFromRaw(raw)
	file.Path = path
	logrus.WithField("sections", len(file.sections)).Info("Configuration loaded successfully.")
	return file, nil
}

// Parse reads YAML (or JSON) config content.
func Parse(data []byte) (*File, error) {
	raw, err := parseYAML(data)
	if err != nil {
		return nil, err
	}
	return fileFromRaw(raw), nil
}

func parseYAML(data []byte) (map[string]any, error) {
	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func parsePyproject(data []byte) (map[string]any, error) {
	var doc struct {
		Tool struct {
			Ape map[string]any `toml:"ape"`
		} `toml:"tool"`
	}
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, err
	}
	if doc.Tool.Ape == nil {
		return map[string]any{}, nil
	}
	return doc.Tool.Ape, nil
}

// fileFromRaw keeps every top level mapping as a section. Plain values
// such as project names are skipped.
func fileFromRaw(raw map[string]any) *File {
	file := EmptyFile()
	for name, value := range raw {
		if body, ok := value.(map[string]any); ok {
			file.sections[strings.ToLower(name)] = body
		}
	}
	return file
}

// decodeOverride goes through yaml so that yaml and toml sourced values are
// validated the same way, unknown keys included.
func decodeOverride(body map[string]any) (NetworkOverride, error) {
	override := NetworkOverride{}
	encoded, err := yaml.Marshal(body)
	if err != nil {
		return override, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(encoded))
	dec.KnownFields(true)
	if err := dec.Decode(&override); err != nil {
		return override, err
	}
	return override, nil
}
