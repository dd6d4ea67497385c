package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/l2plugins/config"
	"github.com/tranvictor/l2plugins/networks"
	"github.com/tranvictor/l2plugins/tx"
)

var baseDefaults = config.NetworkDefaults{
	BlockTime:              2,
	RequiredConfirmations:  1,
	DefaultTransactionType: tx.TxTypeStatic,
}

func newBaseConfig() *config.EcosystemConfig {
	return config.NewEcosystemConfig("base", baseDefaults, networks.BaseNetworks)
}

func applyYAML(t *testing.T, c *config.EcosystemConfig, content string) error {
	t.Helper()
	file, err := config.Parse([]byte(content))
	require.NoError(t, err)
	section, err := file.Section(c.Name)
	if err != nil {
		return err
	}
	return c.Apply(section)
}

func TestGasLimitOfLocal(t *testing.T) {
	assert.Equal(t, config.MaxGasLimit, newBaseConfig().Get("local").GasLimit)
}

func TestLiveNetworkDefaults(t *testing.T) {
	mainnet := newBaseConfig().Get("mainnet")
	assert.Equal(t, uint32(2), mainnet.BlockTime)
	assert.Equal(t, uint32(1), mainnet.RequiredConfirmations)
	assert.Equal(t, tx.TxTypeStatic, mainnet.DefaultTransactionType)
	assert.Equal(t, config.AutoGasLimit, mainnet.GasLimit)
	assert.Equal(t, 1.4, mainnet.BaseFeeMultiplier)
	assert.Equal(t, uint32(20), mainnet.TransactionAcceptanceTimeout)
}

func TestMainnetForkNotConfigured(t *testing.T) {
	c := newBaseConfig()
	require.NoError(t, applyYAML(t, c, "{}"))
	assert.Equal(t, uint32(0), c.Get("mainnet_fork").RequiredConfirmations)
	assert.Equal(t, config.MaxGasLimit, c.Get("mainnet-fork").GasLimit)
}

func TestMainnetForkConfigured(t *testing.T) {
	c := newBaseConfig()
	require.NoError(t, applyYAML(t, c, `
base:
  mainnet_fork:
    required_confirmations: 555
`))
	assert.Equal(t, uint32(555), c.Get("mainnet_fork").RequiredConfirmations)
	assert.Equal(t, uint32(555), c.Get("mainnet-fork").RequiredConfirmations)
}

func TestCustomNetwork(t *testing.T) {
	c := newBaseConfig()
	assert.False(t, c.Has("apenet"))
	assert.Equal(t, uint32(0), c.Get("apenet").RequiredConfirmations)

	require.NoError(t, applyYAML(t, c, `
base:
  default_network: apenet
  apenet:
    required_confirmations: 333
    default_transaction_type: dynamic
    gas_limit: 0x1000
`))
	apenet := c.Get("apenet")
	assert.True(t, c.Has("apenet"))
	assert.Equal(t, uint32(333), apenet.RequiredConfirmations)
	assert.Equal(t, tx.TxTypeDynamic, apenet.DefaultTransactionType)
	assert.Equal(t, config.ExactGasLimit(4096), apenet.GasLimit)
	assert.Equal(t, "apenet", c.DefaultNetwork)
}

func TestOverrideKeepsUnsetFields(t *testing.T) {
	c := newBaseConfig()
	require.NoError(t, applyYAML(t, c, `
base:
  mainnet:
    default_transaction_type: 2
`))
	mainnet := c.Get("mainnet")
	assert.Equal(t, tx.TxTypeDynamic, mainnet.DefaultTransactionType)
	assert.Equal(t, uint32(1), mainnet.RequiredConfirmations)
	assert.Equal(t, uint32(2), mainnet.BlockTime)
}

func TestApplyReportsEveryInvalidNetwork(t *testing.T) {
	c := newBaseConfig()
	err := applyYAML(t, c, `
base:
  mainnet:
    default_transaction_type: 3
  sepolia:
    base_fee_multiplier: 0.5
  goerli:
    gas_limit: lots
`)
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 3)
	assert.True(t, errors.Is(err, tx.ErrUnsupportedTransactionType))

	// the invalid sections left the defaults untouched
	assert.Equal(t, tx.TxTypeStatic, c.Get("mainnet").DefaultTransactionType)
	assert.NoError(t, c.Validate())
}

func TestUnknownNetworkFieldIsRejected(t *testing.T) {
	c := newBaseConfig()
	err := applyYAML(t, c, `
base:
  mainnet:
    required_confirmation: 3
`)
	assert.Error(t, err)
}

func TestOtherSectionsAreIgnored(t *testing.T) {
	file, err := config.Parse([]byte(`
name: my-project
node:
  ethereum:
    mainnet:
      uri: https://example.com
base:
  sepolia:
    block_time: 4
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"base", "node"}, file.SectionNames())

	section, err := file.Section("base")
	require.NoError(t, err)
	assert.Len(t, section.Networks, 1)

	section, err = file.Section("blast")
	require.NoError(t, err)
	assert.Empty(t, section.Networks)
}

func TestLoadYAMLAndPyproject(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "ape-config.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
blast:
  mainnet:
    required_confirmations: 7
`), 0o644))

	tomlPath := filepath.Join(dir, "pyproject.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(`
[project]
name = "my-project"

[tool.ape.blast.mainnet]
required_confirmations = 7
gas_limit = "max"
`), 0o644))

	for _, path := range []string{yamlPath, tomlPath} {
		file, err := config.Load(path)
		require.NoError(t, err, path)
		assert.Equal(t, path, file.Path)

		c := config.NewEcosystemConfig("blast", baseDefaults, networks.BlastNetworks)
		section, err := file.Section("blast")
		require.NoError(t, err)
		require.NoError(t, c.Apply(section), path)
		assert.Equal(t, uint32(7), c.Get("mainnet").RequiredConfirmations, path)
	}

	_, err := config.Load(filepath.Join(dir, "ape-config.ini"))
	assert.Error(t, err)
}

func TestParseGasLimit(t *testing.T) {
	for in, want := range map[string]config.GasLimit{
		"max":   config.MaxGasLimit,
		"AUTO":  config.AutoGasLimit,
		"21000": config.ExactGasLimit(21000),
		"0x10":  config.ExactGasLimit(16),
		"0100":  config.ExactGasLimit(100),
	} {
		got, err := config.ParseGasLimit(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := config.ParseGasLimit("-1")
	assert.Error(t, err)
}
