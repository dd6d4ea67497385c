package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tranvictor/l2plugins/config"
	"github.com/tranvictor/l2plugins/ui"
)

func newConfigCmd(u ui.UI) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the ecosystem configuration",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the per network configuration of an ecosystem after applying the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			host, err := loadHost()
			if err != nil {
				return err
			}
			eco, err := host.Ecosystem(config.Ecosystem)
			if err != nil {
				return err
			}
			cfg := eco.Config()

			u.Section(cfg.Name)
			u.KeyValue([][2]string{
				{"Default network", cfg.DefaultNetwork},
				{"Default transaction type", cfg.DefaultTransactionType.String()},
			})
			rows := [][]string{}
			for _, name := range cfg.Names() {
				nc := cfg.Get(name)
				rows = append(rows, []string{
					name,
					fmt.Sprintf("%d", nc.RequiredConfirmations),
					fmt.Sprintf("%ds", nc.BlockTime),
					nc.DefaultTransactionType.String(),
					nc.GasLimit.String(),
					fmt.Sprintf("%.2f", nc.BaseFeeMultiplier),
					fmt.Sprintf("%ds", nc.TransactionAcceptanceTimeout),
				})
			}
			u.Table([]string{"Network", "Confirmations", "Block time", "Tx type", "Gas limit", "Base fee x", "Acceptance"}, rows)
			return nil
		},
	}

	configCmd.AddCommand(showCmd)
	return configCmd
}
