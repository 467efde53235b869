package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/image-editor-mcp/cmd/image-editor/cmd"
	"github.com/ironsheep/image-editor-mcp/internal/logging"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// register sigterm for graceful shutdown
	ctx, cnc := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cnc()

	// Logs go to stderr (stdout is for MCP protocol)
	slog.SetDefault(logging.Logger(os.Stderr, false, slog.LevelInfo))
	ctx = logging.AppendCtx(ctx,
		slog.Group("app",
			slog.String("name", "image-editor"),
			slog.String("version", Version),
		))

	root := cmd.NewRoot(ctx, cmd.BuildInfo{Version: Version, BuildTime: BuildTime, GitCommit: GitCommit})
	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
