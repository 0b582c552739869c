package main

import (
	"github.com/spf13/cobra"

	"github.com/razzie/lzwarchiver/archive"
)

func newCompressCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compress archive_name to_compress...",
		Short: "Bundle files and directories into an archive",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompress(args[0], args[1:])
		},
	}
}

func runCompress(archiveName string, targets []string) error {
	entries, err := archive.FlattenInputs(targets)
	if err != nil {
		return err
	}

	w, err := archive.NewWriter(archiveName)
	if err != nil {
		return err
	}
	defer w.Close()

	return w.WriteArchive(entries)
}
