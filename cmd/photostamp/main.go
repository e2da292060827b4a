package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "photostamp",
		Short: "Extract and serve capture timestamps from JPEG photos.",
	}

	// Add commands
	rootCmd.AddCommand(NewScanCommand())
	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
