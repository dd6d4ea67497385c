package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tranvictor/l2plugins/ui"
)

const (
	VERSION string = "0.1.0"
)

func newVersionCmd(u ui.UI) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show l2plugins version",
		Run: func(cmd *cobra.Command, args []string) {
			u.Info("Version: %s", VERSION)
		},
	}
}
