package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tranvictor/l2plugins/config"
)

func AddCommonFlagsToTransactionalCmds(c *cobra.Command) {
	c.PersistentFlags().
		BoolVarP(&config.JSONOutput, "json", "j", false, "Print the transaction as json instead of a table.")
	c.PersistentFlags().
		BoolVarP(&config.Connect, "connect", "c", false, "Connect to the network before building so chain id and confirmations come from the node. The local network is always connected.")
}
