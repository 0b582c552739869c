package main

import (
	"fmt"
	"path/filepath"

	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/razzie/lzwarchiver/archive"
)

func newListingCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "listing archive_name",
		Short: "List the contents of an archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListing(args[0], verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show per-entry compression rate and sizes")
	return cmd
}

func runListing(archiveName string, verbose bool) error {
	entries, err := archive.ListEntries(archiveName)
	if err != nil {
		return err
	}

	if !verbose {
		for _, e := range entries {
			fmt.Println(filepath.Join(e.Path, e.Name))
		}
		return nil
	}

	tbl := table.New("NAME", "RATE (%)", "COMPRESSION SIZE (kB)", "ORIGINAL SIZE (kB)")
	for _, e := range entries {
		rate := 0
		if e.Size > 0 {
			rate = int((1 - float64(e.CSize)/float64(e.Size)) * 100)
		}
		tbl.AddRow(
			filepath.Join(e.Path, e.Name),
			rate,
			fmt.Sprintf("%.1f", float64(e.CSize)/1024),
			fmt.Sprintf("%.1f", float64(e.Size)/1024),
		)
	}
	tbl.Print()

	return nil
}
