package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docnav/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive terminal client",
	Long:  `Opens an interactive terminal session for asking questions.`,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	rt, err := newQueryRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	return tui.Run(cmd.Context(), rt.queries)
}
