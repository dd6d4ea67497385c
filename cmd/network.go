package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvictor/l2plugins/config"
	"github.com/tranvictor/l2plugins/ui"
)

func newNetworkCmd(u ui.UI) *cobra.Command {
	networkCmd := &cobra.Command{
		Use:   "network",
		Short: "Inspect the networks of the loaded ecosystems",
	}

	var all bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the networks of an ecosystem with their providers",
		RunE: func(cmd *cobra.Command, args []string) error {
			host, err := loadHost()
			if err != nil {
				return err
			}
			ecosystems := []string{}
			if all {
				ecosystems = host.Ecosystems()
			} else {
				if _, err := host.Ecosystem(config.Ecosystem); err != nil {
					return err
				}
				ecosystems = append(ecosystems, strings.ToLower(config.Ecosystem))
			}

			for _, eco := range ecosystems {
				u.Section(eco)
				rows := [][]string{}
				for _, n := range host.Networks(eco) {
					rows = append(rows, []string{
						n.GetName(),
						u.Style(ui.KindText(n.GetKind().String())),
						fmt.Sprintf("%d", n.GetChainID()),
						strings.Join(host.ProviderNames(eco, n.GetName()), ", "),
					})
				}
				u.Table([]string{"Network", "Kind", "Chain ID", "Providers"}, rows)
			}
			return nil
		},
	}
	listCmd.Flags().BoolVarP(&all, "all", "a", false, "list every loaded ecosystem")

	networkCmd.AddCommand(listCmd)
	return networkCmd
}
