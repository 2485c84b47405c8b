package main

import (
	"os"

	"github.com/spf13/cobra"
)

type rootCmdConfig struct {
	verbose bool
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "canopy",
		Short: "canopy is a tool to work with serialized decision-tree documents",
		Long:  `A tool to collapse serialized decision trees into N-ary form and to translate their feature indices back to an alternate numbering`,
	}
	config := &rootCmdConfig{}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "")
	rootCmd.AddCommand(versionCmd(), summarizeCmd(config), translateCmd(config))
	return rootCmd
}
