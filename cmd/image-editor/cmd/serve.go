package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-editor-mcp/internal/server"
)

// NewServeCmd runs the MCP server on stdin/stdout.
func NewServeCmd(ctx context.Context, info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "serve the editor over MCP on stdin/stdout",
		Long: "serve speaks JSON-RPC 2.0 (MCP) on stdin/stdout, one request per line.\n" +
			"Configure it as a stdio server in your MCP client.",
		RunE: func(cmd *cobra.Command, args []string) error {
			slog.InfoContext(ctx, "starting MCP server", "version", info.Version, "commit", info.GitCommit)
			srv := server.New(
				server.WithLogger(slog.Default()),
				server.WithVersion(info.Version),
			)
			return srv.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
