package networks_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/l2plugins/networks"
)

func baseRegistry(t *testing.T) *networks.Registry {
	t.Helper()
	r := networks.NewRegistry()
	for _, entry := range networks.BaseNetworks {
		live := networks.NewBaseNetwork(entry)
		require.NoError(t, r.Add(live))
		require.NoError(t, r.Add(networks.NewForkNetwork(live)))
	}
	require.NoError(t, r.Add(networks.NewLocalNetwork(networks.BaseEcosystemName)))
	return r
}

func TestRegistryGet(t *testing.T) {
	r := baseRegistry(t)

	n, err := r.Get("base", "mainnet")
	require.NoError(t, err)
	assert.Equal(t, uint64(8453), n.GetChainID())
	assert.Equal(t, uint64(8453), n.GetNetworkID())
	assert.Equal(t, networks.KindLive, n.GetKind())
	assert.Equal(t, 2*time.Second, n.GetBlockTime())
	assert.Equal(t, "BASE_MAINNET_NODE", n.GetNodeVariableName())

	fork, err := r.Get("BASE", "mainnet_fork")
	require.NoError(t, err)
	assert.Equal(t, "mainnet-fork", fork.GetName())
	assert.Equal(t, networks.KindFork, fork.GetKind())
	assert.Equal(t, uint64(8453), fork.GetChainID())

	local, err := r.Get("base", "local")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), local.GetChainID())
	assert.Equal(t, networks.KindLocal, local.GetKind())
}

func TestRegistryNotFound(t *testing.T) {
	r := baseRegistry(t)

	_, err := r.Get("base", "apenet")
	assert.True(t, errors.Is(err, networks.ErrNetworkNotFound))

	_, err = r.Get("blast", "mainnet")
	assert.True(t, errors.Is(err, networks.ErrNetworkNotFound))
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := baseRegistry(t)
	err := r.Add(networks.NewBaseNetwork(networks.BaseNetworks[0]))
	assert.Error(t, err)
}

func TestRegistryByChainIDIgnoresForks(t *testing.T) {
	r := baseRegistry(t)

	n, err := r.GetByChainID(84532)
	require.NoError(t, err)
	assert.Equal(t, "sepolia", n.GetName())
	assert.Equal(t, networks.KindLive, n.GetKind())

	_, err = r.GetByChainID(0)
	assert.True(t, errors.Is(err, networks.ErrNetworkNotFound))
}

func TestRegistryListing(t *testing.T) {
	r := baseRegistry(t)
	for _, entry := range networks.BlastNetworks {
		require.NoError(t, r.Add(networks.NewBlastNetwork(entry)))
	}

	assert.Equal(t, []string{"base", "blast"}, r.Ecosystems())

	names := []string{}
	for _, n := range r.Networks("base") {
		names = append(names, n.GetName())
	}
	assert.Equal(t, []string{
		"goerli", "goerli-fork", "local", "mainnet", "mainnet-fork", "sepolia", "sepolia-fork",
	}, names)
}

func TestLoadCustomNetworks(t *testing.T) {
	dir := t.TempDir()
	good := `{"name": "apenet", "ecosystem": "base", "chain_id": 999, "block_time": 3}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "apenet.json"), []byte(good), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "noname.json"), []byte(`{"chain_id": 1}`), 0o644))

	loaded, err := networks.LoadCustomNetworks(dir)
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	n := loaded[0]
	assert.Equal(t, "apenet", n.GetName())
	assert.Equal(t, uint64(999), n.GetNetworkID())
	assert.Equal(t, "ETH", n.GetNativeTokenSymbol())
	assert.Equal(t, 3*time.Second, n.GetBlockTime())
	assert.Equal(t, "BASE_APENET_NODE", n.GetNodeVariableName())
}
