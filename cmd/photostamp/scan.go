package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/simonhull/photostamp/internal/index"
)

func NewScanCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "scan [directory]",
		Short: "Index a photo directory and print capture timestamps.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			idx, err := index.Build(cmd.Context(), dir)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(idx)
			}

			for _, p := range idx.Photos {
				switch {
				case p.Err != "":
					fmt.Printf("%s\terror: %s\n", p.RelPath, p.Err)
				case p.Taken == nil:
					fmt.Printf("%s\t(no timestamp)\n", p.RelPath)
				default:
					fmt.Printf("%s\t%s\n", p.RelPath, p.Taken.Format("2006-01-02 15:04:05"))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the index as JSON")

	return cmd
}
