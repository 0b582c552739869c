// Command lzwarchiver bundles files and directories into a single
// archive using adaptive LZW compression, and restores them on demand.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	root := newRootCommand(sugar)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(logger *zap.SugaredLogger) *cobra.Command {
	root := &cobra.Command{
		Use:          "lzwarchiver",
		Short:        "Archive and restore files with adaptive LZW compression",
		SilenceUsage: true,
	}

	root.AddCommand(newCompressCommand())
	root.AddCommand(newDecompressCommand(logger))
	root.AddCommand(newListingCommand())

	return root
}
