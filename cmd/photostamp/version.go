package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/photostamp"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			info := photostamp.GetVersionInfo()
			fmt.Printf("photostamp %s\n", info.Version)
			fmt.Printf("  commit: %s\n", info.GitCommit)
			fmt.Printf("  built:  %s\n", info.BuildTime)
			fmt.Printf("  go:     %s\n", info.GoVersion)
		},
	}
}
