package cmd

import (
	"errors"
	"math/big"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/l2plugins/networks"
	"github.com/tranvictor/l2plugins/ui"
)

func run(t *testing.T, args ...string) (*ui.RecordingUI, error) {
	t.Helper()
	u := ui.NewRecordingUI()
	root := newRootCmd(u)
	root.SetArgs(args)
	root.SetOut(&nopWriter{})
	root.SetErr(&nopWriter{})
	return u, root.Execute()
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) {
	return len(p), nil
}

type fakeEth struct {
	chainID uint64
}

func (s *fakeEth) ChainId() *hexutil.Big {
	return (*hexutil.Big)(new(big.Int).SetUint64(s.chainID))
}

func (s *fakeEth) GasPrice() *hexutil.Big {
	return (*hexutil.Big)(big.NewInt(3_000_000_000))
}

func (s *fakeEth) MaxPriorityFeePerGas() *hexutil.Big {
	return (*hexutil.Big)(big.NewInt(1_000_000))
}

func (s *fakeEth) GetBlockByNumber(number string, full bool) *types.Header {
	return &types.Header{
		Number:     big.NewInt(1),
		Difficulty: new(big.Int),
		GasLimit:   30_000_000,
		BaseFee:    big.NewInt(50_000_000),
	}
}

func fakeNode(t *testing.T, chainID uint64) string {
	t.Helper()
	srv := rpc.NewServer()
	require.NoError(t, srv.RegisterName("eth", &fakeEth{chainID: chainID}))
	httpSrv := httptest.NewServer(srv)
	t.Cleanup(func() {
		httpSrv.Close()
		srv.Stop()
	})
	return httpSrv.URL
}

func TestVersion(t *testing.T) {
	u, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, []string{"Version: " + VERSION}, u.Messages("Info"))
}

func TestNetworkList(t *testing.T) {
	u, err := run(t, "network", "list", "-e", "blast")
	require.NoError(t, err)

	assert.Equal(t, []string{"blast"}, u.Messages("Section"))
	rows := u.Messages("Table")
	assert.Contains(t, rows, "mainnet | live | 81457 | node")
	assert.Contains(t, rows, "mainnet-fork | fork | 81457 | ")
	assert.Contains(t, rows, "local | local | 0 | test")
	assert.Len(t, rows, 5)
}

func TestNetworkListAll(t *testing.T) {
	u, err := run(t, "network", "list", "--all")
	require.NoError(t, err)
	assert.Equal(t, []string{"base", "blast"}, u.Messages("Section"))
	assert.Len(t, u.Messages("Table"), 12)
}

func TestNetworkListUnknownEcosystem(t *testing.T) {
	_, err := run(t, "network", "list", "-e", "zksync")
	assert.Error(t, err)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ape-config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConfigShow(t *testing.T) {
	path := writeConfig(t, `
base:
  default_network: sepolia
  mainnet:
    required_confirmations: 7
    gas_limit: 100000
`)
	u, err := run(t, "config", "show", "--config", path)
	require.NoError(t, err)

	assert.Contains(t, u.Messages("KeyValue"), "Default network: sepolia")
	assert.Contains(t, u.Messages("Table"), "mainnet | 7 | 2s | static | 100000 | 1.40 | 20s")
	assert.Contains(t, u.Messages("Table"), "local | 0 | 0s | static | max | 1.00 | 20s")
}

func TestConfigShowInvalid(t *testing.T) {
	path := writeConfig(t, `
base:
  mainnet:
    base_fee_multiplier: 0.1
`)
	_, err := run(t, "config", "show", "--config", path)
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestTxBuildLocal(t *testing.T) {
	u, err := run(t, "tx", "build", "gasPrice=0", "value=1 ether", "to=0x274b028b03A250cA03644E6c578D81f019eE1323")
	require.NoError(t, err)

	kv := u.Messages("KeyValue")
	assert.Contains(t, kv, "Type: static")
	assert.Contains(t, kv, "Chain ID: 1337")
	assert.Contains(t, kv, "Gas price: 0")
	assert.Contains(t, kv, "Value: 1000000000000000000 (1 ETH)")
	assert.Contains(t, kv, "Gas: 30000000")
	assert.Contains(t, kv, "To: 0x274b028b03A250cA03644E6c578D81f019eE1323")
	assert.Contains(t, kv, "Confirmations: 0")
	assert.Equal(t, []string{"Connecting to base:local..."}, u.Messages("Spinner"))
	assert.True(t, u.HasMessage("not signed"))
}

func TestTxBuildLiveWithoutConnecting(t *testing.T) {
	u, err := run(t, "tx", "build", "-e", "blast", "-k", "mainnet", "maxFeePerGas=2 gwei")
	require.NoError(t, err)

	kv := u.Messages("KeyValue")
	assert.Contains(t, kv, "Type: dynamic")
	assert.Contains(t, kv, "Chain ID: 81457")
	assert.Contains(t, kv, "Max fee: 2000000000")
	assert.Contains(t, kv, "Max priority fee: -")
	assert.Contains(t, kv, "Gas: -")
	assert.Contains(t, kv, "Confirmations: 1")
	assert.Empty(t, u.Messages("Spinner"))
	assert.Empty(t, u.Messages("Warn"))
}

func TestTxBuildUsesNetworkConfig(t *testing.T) {
	path := writeConfig(t, `
blast:
  mainnet:
    default_transaction_type: dynamic
    required_confirmations: 6
    gas_limit: 90000
`)

	u, err := run(t, "tx", "build", "--config", path, "-e", "blast", "-k", "mainnet", "value=0")
	require.NoError(t, err)

	kv := u.Messages("KeyValue")
	assert.Contains(t, kv, "Type: dynamic")
	assert.Contains(t, kv, "Confirmations: 6")
	assert.Contains(t, kv, "Gas: 90000")
	assert.Contains(t, kv, "Value: 0")
}

func TestTxBuildWarnsForeignChainID(t *testing.T) {
	u, err := run(t, "tx", "build", "-e", "blast", "-k", "mainnet", "chainId=0x2105")
	require.NoError(t, err)
	assert.Equal(t, []string{"Chain id 8453 is base:mainnet, not blast:mainnet"}, u.Messages("Warn"))

	u, err = run(t, "tx", "build", "-e", "blast", "-k", "mainnet", "chainId=0x5")
	require.NoError(t, err)
	require.Len(t, u.Messages("Warn"), 1)
	assert.Contains(t, u.Messages("Warn")[0], "not a known network")
}

func TestTxBuildConnectedFillsFees(t *testing.T) {
	t.Setenv("BASE_SEPOLIA_NODE", fakeNode(t, 84532))

	u, err := run(t, "tx", "build", "-k", "sepolia", "--connect", "type=2")
	require.NoError(t, err)

	assert.Equal(t, []string{"Connected to base:sepolia (chain id 84532)"}, u.Messages("Success"))
	kv := u.Messages("KeyValue")
	assert.Contains(t, kv, "Chain ID: 84532")
	assert.Contains(t, kv, "Max priority fee: 1000000")
	assert.Contains(t, kv, "Max fee: 101000000")

	u, err = run(t, "tx", "build", "-k", "sepolia", "--connect", "gasPrice=null")
	require.NoError(t, err)
	assert.Contains(t, u.Messages("KeyValue"), "Gas price: 3000000000")
}

func TestTxBuildJSON(t *testing.T) {
	u, err := run(t, "tx", "build", "--json", "maxFeePerGas=1", "nonce=0x3")
	require.NoError(t, err)

	out := u.Output()
	assert.Contains(t, out, `"type": "0x2"`)
	assert.Contains(t, out, `"maxFeePerGas": "0x1"`)
	assert.Contains(t, out, `"nonce": "0x3"`)
	assert.Contains(t, out, `"chainId": "0x539"`)
	assert.Contains(t, out, `"gas": "0x1c9c380"`)
}

func TestTxBuildSigned(t *testing.T) {
	u, err := run(t, "tx", "build", "gasPrice=1", "v=27", "r=0x01", "s=0x02")
	require.NoError(t, err)
	require.Len(t, u.Messages("Critical"), 1)
	assert.Contains(t, u.Messages("Critical")[0], "Signed transaction: 0x")
}

func TestTxBuildErrors(t *testing.T) {
	_, err := run(t, "tx", "build", "type=3")
	assert.ErrorContains(t, err, "unsupported")

	_, err = run(t, "tx", "build", "gasPrice")
	assert.ErrorContains(t, err, "expected key=value")

	_, err = run(t, "tx", "build", "chainId=base")
	assert.Error(t, err)
}

func TestTxBuildSuggestsNetworks(t *testing.T) {
	_, err := run(t, "tx", "build", "-k", "sepola", "gasPrice=1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, networks.ErrNetworkNotFound))
	assert.ErrorContains(t, err, "did you mean")
	assert.ErrorContains(t, err, "sepolia")

	_, err = run(t, "tx", "build", "-k", "zzz", "gasPrice=1")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestParseRequestValue(t *testing.T) {
	tests := []struct {
		raw  string
		want any
	}{
		{"null", nil},
		{"~", nil},
		{"0", int64(0)},
		{"21000", int64(21000)},
		{"0x01", "0x01"},
		{"1 ether", "1 ether"},
		{"dynamic", "dynamic"},
		{"", ""},
		{"[]", []any{}},
	}
	for _, tc := range tests {
		got, err := parseRequestValue(tc.raw)
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}
}
