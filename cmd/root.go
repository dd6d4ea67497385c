// Copyright © 2018 Victor Tran
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tranvictor/l2plugins/config"
	"github.com/tranvictor/l2plugins/networks"
	"github.com/tranvictor/l2plugins/ui"
)

func nodeVariables() string {
	lines := []string{}
	for _, eco := range []struct {
		name    string
		entries []networks.NetworkEntry
	}{
		{networks.BaseEcosystemName, networks.BaseNetworks},
		{networks.BlastEcosystemName, networks.BlastNetworks},
	} {
		for _, entry := range eco.entries {
			lines = append(lines, fmt.Sprintf("\t%s:%s: %s", eco.name, entry.Name, networks.NodeVariableName(eco.name, entry.Name)))
		}
	}
	return strings.Join(lines, "\n")
}

// newRootCmd builds the command tree writing to u.
func newRootCmd(u ui.UI) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "l2plugins",
		Short: "Build transactions for Ethereum L2 ecosystems like Base and Blast",
		Long: fmt.Sprintf(`l2plugins loads the Base and Blast ecosystem plugins: their networks,
their per network configuration and their providers, and builds transactions
the way those ecosystems expect them.

Every ecosystem has its live networks, a fork of each live network and a
local network. Configuration is read from ape-config.yaml or the [tool.ape]
table of pyproject.toml in the working directory, or from the file given
with --config.

Live networks are reached through public nodes by default. You can use your
own node by setting the following env vars:
%s`, nodeVariables()),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if config.Verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&config.Path, "config", "", "config file (default is ape-config.yaml or pyproject.toml in the working directory)")
	rootCmd.PersistentFlags().StringVar(&config.NetworksDir, "networks-dir", "", "directory of custom network json files")
	rootCmd.PersistentFlags().StringVarP(&config.Ecosystem, "ecosystem", "e", networks.BaseEcosystemName, "ecosystem. Valid values: \"base\", \"blast\".")
	rootCmd.PersistentFlags().StringVarP(&config.Network, "network", "k", "", "network of the ecosystem, the ecosystem's default network when empty")
	rootCmd.PersistentFlags().StringVarP(&config.Provider, "provider", "p", "", "provider of the network, the only registered one when empty")
	rootCmd.PersistentFlags().BoolVarP(&config.Verbose, "verbose", "v", false, "print debug logs")

	rootCmd.AddCommand(
		newNetworkCmd(u),
		newConfigCmd(u),
		newTxCmd(u),
		newVersionCmd(u),
	)
	return rootCmd
}

// Execute runs the command line with the terminal UI. It is called by
// main.main().
func Execute() {
	if err := newRootCmd(ui.NewTerminalUI()).Execute(); err != nil {
		os.Exit(1)
	}
}
