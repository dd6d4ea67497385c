package providers

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/sirupsen/logrus"

	"github.com/tranvictor/l2plugins/config"
	"github.com/tranvictor/l2plugins/networks"
)

const TIMEOUT time.Duration = 4 * time.Second

// NodeProvider talks to a JSON-RPC node of a live or forked network.
type NodeProvider struct {
	network networks.Network
	config  config.NetworkConfig
	nodeURL string

	mu        sync.Mutex
	client    *rpc.Client
	ethClient *ethclient.Client
	chainID   uint64
	maxGas    uint64
}

func NewNodeProvider(n networks.Network, cfg config.NetworkConfig) Provider {
	return &NodeProvider{network: n, config: cfg}
}

// NewNodeProviderWithURL skips node url resolution and always dials url.
func NewNodeProviderWithURL(n networks.Network, cfg config.NetworkConfig, url string) *NodeProvider {
	return &NodeProvider{network: n, config: cfg, nodeURL: url}
}

// ResolveNodeURL returns the url set in the network's node env var, or the
// first of its default nodes by name.
func ResolveNodeURL(n networks.Network) (string, error) {
	if url := strings.TrimSpace(os.Getenv(n.GetNodeVariableName())); url != "" {
		return url, nil
	}
	nodes := n.GetDefaultNodes()
	names := make([]string, 0, len(nodes))
	for name := range nodes {
		names = append(names, name)
	}
	if len(names) == 0 {
		return "", fmt.Errorf(
			"no node known for %s:%s, set %s",
			n.GetEcosystem(), n.GetName(), n.GetNodeVariableName(),
		)
	}
	sort.Strings(names)
	return nodes[names[0]], nil
}

func (np *NodeProvider) Name() string {
	return NodeProviderName
}

func (np *NodeProvider) Network() networks.Network {
	return np.network
}

func (np *NodeProvider) NetworkConfig() config.NetworkConfig {
	return np.config
}

func (np *NodeProvider) NodeURL() string {
	return np.nodeURL
}

func (np *NodeProvider) ChainID() uint64 {
	np.mu.Lock()
	defer np.mu.Unlock()
	return np.chainID
}

func (np *NodeProvider) MaxGas() uint64 {
	np.mu.Lock()
	defer np.mu.Unlock()
	return np.maxGas
}

// Connect dials the node and checks that it serves the expected chain.
func (np *NodeProvider) Connect(ctx context.Context) error {
	np.mu.Lock()
	defer np.mu.Unlock()

	if np.nodeURL == "" {
		url, err := ResolveNodeURL(np.network)
		if err != nil {
			return err
		}
		np.nodeURL = url
	}

	client, err := rpc.DialContext(ctx, np.nodeURL)
	if err != nil {
		return fmt.Errorf("couldn't connect to %s: %w", np.nodeURL, err)
	}
	ethClient := ethclient.NewClient(client)

	timeout, cancel := context.WithTimeout(ctx, TIMEOUT)
	defer cancel()
	chainID, err := ethClient.ChainID(timeout)
	if err != nil {
		client.Close()
		return fmt.Errorf("couldn't get chain id from %s: %w", np.nodeURL, err)
	}
	if expected := np.network.GetChainID(); expected != 0 && chainID.Cmp(new(big.Int).SetUint64(expected)) != 0 {
		client.Close()
		return fmt.Errorf(
			"%w: %s:%s expects %d, node %s serves %s",
			ErrChainIDMismatch, np.network.GetEcosystem(), np.network.GetName(), expected, np.nodeURL, chainID,
		)
	}

	header, err := ethClient.HeaderByNumber(timeout, nil)
	if err != nil {
		logrus.WithField("node", np.nodeURL).WithError(err).Warn("couldn't read the latest block gas limit")
	} else {
		np.maxGas = header.GasLimit
	}

	np.client = client
	np.ethClient = ethClient
	np.chainID = chainID.Uint64()
	logrus.WithFields(logrus.Fields{
		"network":  np.network.GetEcosystem() + ":" + np.network.GetName(),
		"node":     np.nodeURL,
		"chain_id": np.chainID,
	}).Debug("connected to node")
	return nil
}

func (np *NodeProvider) Disconnect() {
	np.mu.Lock()
	defer np.mu.Unlock()
	if np.client != nil {
		np.client.Close()
	}
	np.client = nil
	np.ethClient = nil
}

func (np *NodeProvider) IsConnected() bool {
	np.mu.Lock()
	defer np.mu.Unlock()
	return np.ethClient != nil
}

func (np *NodeProvider) EthClient() (*ethclient.Client, error) {
	np.mu.Lock()
	defer np.mu.Unlock()
	if np.ethClient == nil {
		return nil, ErrNotConnected
	}
	return np.ethClient, nil
}

func (np *NodeProvider) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	ethcli, err := np.EthClient()
	if err != nil {
		return nil, err
	}
	timeout, cancel := context.WithTimeout(ctx, TIMEOUT)
	defer cancel()
	return ethcli.SuggestGasPrice(timeout)
}

func (np *NodeProvider) SuggestGasTipCap(ctx context.Context) (*big.Int, error) {
	ethcli, err := np.EthClient()
	if err != nil {
		return nil, err
	}
	timeout, cancel := context.WithTimeout(ctx, TIMEOUT)
	defer cancel()
	return ethcli.SuggestGasTipCap(timeout)
}

func (np *NodeProvider) BaseFee(ctx context.Context) (*big.Int, error) {
	ethcli, err := np.EthClient()
	if err != nil {
		return nil, err
	}
	timeout, cancel := context.WithTimeout(ctx, TIMEOUT)
	defer cancel()
	header, err := ethcli.HeaderByNumber(timeout, nil)
	if err != nil {
		return nil, err
	}
	return header.BaseFee, nil
}
