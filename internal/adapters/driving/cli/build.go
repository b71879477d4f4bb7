package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build [directory]",
	Short: "Build the documentation index",
	Long: `Extracts text from every PDF in the directory, embeds it and
publishes the index. A previously published index is replaced only
when the build succeeds.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	rt, err := newIndexRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	report, err := rt.indexer.Build(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	cmd.Printf("Indexed %d chunks from %d documents", report.ChunksIndexed, report.Documents)
	if skipped := report.ChunksAttempted - report.ChunksIndexed; skipped > 0 {
		cmd.Printf(" (%d chunks skipped)", skipped)
	}
	cmd.Println()
	cmd.Printf("Embedding model: %s (%d dimensions)\n",
		report.Metadata.EmbeddingModel, report.Metadata.Dimension)
	return nil
}
