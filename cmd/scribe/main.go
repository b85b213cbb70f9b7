package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iw2rmb/scribe"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type flags struct {
	config  string
	debug   bool
	version bool
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:           "scribe [file]",
		Short:         "A terminal markdown editor with soft wrapping",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.version {
				fmt.Fprintln(cmd.OutOrStdout(), "scribe", scribe.VersionTag())
				return nil
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return run(path, f)
		},
	}
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "config file (default ~/.config/scribe/config.yaml)")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "log at debug level and enable buffer diagnostics")
	cmd.Flags().BoolVarP(&f.version, "version", "v", false, "print the version and exit")
	return cmd
}
