package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/razzie/lzwarchiver/archive"
)

func newDecompressCommand(logger *zap.SugaredLogger) *cobra.Command {
	var (
		dir              string
		restore          bool
		ignoreDamage     bool
		archiveNotDamage bool
		filesNotDamage   bool
	)

	cmd := &cobra.Command{
		Use:   "decompress archive_name",
		Short: "Restore files from an archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			policy := archive.IgnoreDamage
			switch {
			case archiveNotDamage:
				policy = archive.ArchiveNotDamage
			case filesNotDamage:
				policy = archive.FilesNotDamage
			case ignoreDamage:
				policy = archive.IgnoreDamage
			}
			return runDecompress(args[0], dir, restore, policy, logger)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "output directory")
	cmd.Flags().BoolVarP(&restore, "restore-metadata", "r", false, "restore file metadata (mode, atime, mtime)")
	cmd.Flags().BoolVarP(&ignoreDamage, "ignore-damage", "i", false, "unpack all files, ignoring damage")
	cmd.Flags().BoolVarP(&archiveNotDamage, "archive-not-damage", "a", false, "unpack only if the archive is not damaged")
	cmd.Flags().BoolVarP(&filesNotDamage, "files-not-damage", "f", false, "unpack only the undamaged files")
	cmd.MarkFlagsMutuallyExclusive("ignore-damage", "archive-not-damage", "files-not-damage")

	return cmd
}

func runDecompress(archiveName, dir string, restore bool, policy archive.Policy, logger *zap.SugaredLogger) error {
	r, err := archive.NewReader(archiveName)
	if err != nil {
		return err
	}
	defer r.Close()

	return r.Unpack(dir, restore, policy, logger)
}
