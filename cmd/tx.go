package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/tranvictor/l2plugins/config"
	"github.com/tranvictor/l2plugins/conversion"
	"github.com/tranvictor/l2plugins/ecosystem"
	"github.com/tranvictor/l2plugins/networks"
	"github.com/tranvictor/l2plugins/plugin"
	"github.com/tranvictor/l2plugins/providers"
	"github.com/tranvictor/l2plugins/tx"
	"github.com/tranvictor/l2plugins/ui"
)

const connectTimeout = 10 * time.Second

func newTxCmd(u ui.UI) *cobra.Command {
	txCmd := &cobra.Command{
		Use:   "tx",
		Short: "Build transactions of an ecosystem",
	}

	buildCmd := &cobra.Command{
		Use:   "build [key=value]...",
		Short: "Build a transaction from loosely spelled fields",
		Long: `Build a transaction from key=value fields such as

	l2plugins tx build to=0x... value="1 ether" maxFeePerGas="3 gwei"

Keys may use any of the usual spellings (gasPrice, gas_price, maxFeePerGas,
chainId, from, to...). When no type is given it is deduced from the fee
fields: gas_price makes a static fee transaction, max_fee or
max_priority_fee a dynamic fee one and access_list an access list one.
Values accept amounts with units ("2 gwei"), decimal and 0x hex numbers and
null.

Fields left out take the values configured for the selected network
(confirmations, gas limit, default type). With --connect, chain id and the
block gas limit come from the node and missing fees are filled with the
levels it suggests.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := parseRequestArgs(args)
			if err != nil {
				return err
			}
			host, err := loadHost()
			if err != nil {
				return err
			}
			eco, err := host.Ecosystem(config.Ecosystem)
			if err != nil {
				return err
			}
			network, err := selectedNetwork(host)
			if err != nil {
				return err
			}
			n, err := findNetwork(host, network)
			if err != nil {
				return err
			}
			p, err := connect(u, host, n)
			if err != nil {
				return err
			}
			defer host.ProviderManager().Disconnect()

			res, err := eco.CreateTransactionFor(n, req)
			if err != nil {
				return err
			}
			if suggester, ok := p.(providers.FeeSuggester); ok {
				ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
				defer cancel()
				if err := ecosystem.FillFees(ctx, res, suggester); err != nil {
					return err
				}
			}
			warnForeignChainID(u, host, n, res.Common().ChainID)
			return printTransaction(u, n, res)
		},
	}
	AddCommonFlagsToTransactionalCmds(buildCmd)

	txCmd.AddCommand(buildCmd)
	return txCmd
}

// connect activates a provider of n when asked to, and always for the local
// network. It returns nil when nothing was connected.
func connect(u ui.UI, host *plugin.Host, n networks.Network) (providers.Provider, error) {
	if !config.Connect && n.GetKind() != networks.KindLocal {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	stop := u.Spinner(fmt.Sprintf("Connecting to %s:%s...", n.GetEcosystem(), n.GetName()))
	p, err := host.Connect(ctx, n.GetEcosystem(), n.GetName(), config.Provider)
	stop()
	if err != nil {
		return nil, err
	}
	if p.Name() != providers.LocalProviderName {
		u.Success("Connected to %s:%s (chain id %d)", n.GetEcosystem(), n.GetName(), p.ChainID())
	}
	return p, nil
}

// warnForeignChainID warns when a transaction for n carries the chain id of
// another network.
func warnForeignChainID(u ui.UI, host *plugin.Host, n networks.Network, chainID uint64) {
	if chainID == 0 || n.GetChainID() == 0 || chainID == n.GetChainID() {
		return
	}
	other, err := host.NetworkByChainID(chainID)
	if err != nil {
		u.Warn("Chain id %d is not a known network, %s:%s is %d", chainID, n.GetEcosystem(), n.GetName(), n.GetChainID())
		return
	}
	u.Warn("Chain id %d is %s:%s, not %s:%s", chainID, other.GetEcosystem(), other.GetName(), n.GetEcosystem(), n.GetName())
}

func optional[T any](v *T) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}

func optionalBig(v *big.Int) string {
	if v == nil {
		return "-"
	}
	return v.String()
}

// formatValue shows an amount in wei along with its native token amount.
func formatValue(n networks.Network, v *big.Int) string {
	if v.Sign() == 0 {
		return "0"
	}
	return fmt.Sprintf("%s (%s %s)", v, conversion.BigToFloatString(v, n.GetNativeTokenDecimal()), n.GetNativeTokenSymbol())
}

func printTransaction(u ui.UI, n networks.Network, t tx.Transaction) error {
	if config.JSONOutput {
		gtx, err := t.ToGethTx()
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(gtx, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(u.Writer(), string(data))
		return nil
	}

	f := t.Common()
	rows := [][2]string{
		{"Type", u.Style(ui.StyledText{Text: f.Type.String(), Severity: ui.SeverityCritical})},
		{"Chain ID", fmt.Sprintf("%d", f.ChainID)},
		{"Nonce", optional(f.Nonce)},
		{"From", optional(f.Sender)},
		{"To", optional(f.Receiver)},
		{"Gas", optional(f.Gas)},
	}
	switch v := t.(type) {
	case *tx.StaticFeeTransaction:
		rows = append(rows, [2]string{"Gas price", optionalBig(v.GasPrice)})
	case *tx.AccessListTransaction:
		rows = append(rows,
			[2]string{"Gas price", optionalBig(v.GasPrice)},
			[2]string{"Access list", fmt.Sprintf("%d entries", len(v.AccessList))},
		)
	case *tx.DynamicFeeTransaction:
		rows = append(rows,
			[2]string{"Max fee", optionalBig(v.MaxFee)},
			[2]string{"Max priority fee", optionalBig(v.MaxPriorityFee)},
			[2]string{"Access list", fmt.Sprintf("%d entries", len(v.AccessList))},
		)
	}
	rows = append(rows,
		[2]string{"Value", formatValue(n, f.Value)},
		[2]string{"Data", hexutil.Encode(f.Data)},
		[2]string{"Confirmations", fmt.Sprintf("%d", f.RequiredConfirmations)},
	)
	u.KeyValue(rows)

	if !f.IsSigned() {
		u.Info("Transaction is not signed.")
		return nil
	}
	raw, err := tx.Encode(t)
	if err != nil {
		return err
	}
	u.Critical("Signed transaction: %s", hexutil.Encode(raw))
	return nil
}
