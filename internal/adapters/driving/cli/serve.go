package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docnav/internal/adapters/driving/httpapi"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the question-answering HTTP API",
	Long: `Starts the HTTP API. Questions are answered via POST /v1/query;
the index is loaded once on first use and kept in memory for the
lifetime of the process.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	rt, err := newQueryRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	server := httpapi.NewServer(httpapi.Config{
		Addr:            addr,
		APIKey:          cfg.Server.APIKey,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, rt.queries)

	return server.Run(cmd.Context())
}
