// Package cmd holds the cobra commands of the image-editor binary.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-editor-mcp/internal/logging"
)

// BuildInfo is reported by the version command and the MCP handshake.
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// NewRoot builds the image-editor command tree.
func NewRoot(ctx context.Context, info BuildInfo) *cobra.Command {
	var logCloser io.Closer
	cmd := &cobra.Command{
		Use:   "image-editor",
		Short: "gray-level image editor: MCP server and one-shot CLI",
		Long: "image-editor opens an image, applies one gray-level operation (rotation, histogram\n" +
			"equalization, stretch, blur, convolution, thresholding, morphology) and saves the result.\n" +
			"Run \"image-editor serve\" to expose the same editor over MCP on stdin/stdout.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := logging.ConfigFromEnv()
			pf := cmd.Flags()
			if pf.Changed("log-level") {
				cfg.Level, _ = pf.GetString("log-level")
			}
			if pf.Changed("log-file") {
				cfg.File, _ = pf.GetString("log-file")
			}
			if pf.Changed("log-json") {
				cfg.JSON, _ = pf.GetBool("log-json")
			}

			logger, closer, err := logging.Open(cfg)
			slog.SetDefault(logger)
			logCloser = closer
			if err != nil {
				slog.WarnContext(ctx, "invalid log level, defaulting to INFO", "level", cfg.Level, "error", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logCloser != nil {
				logCloser.Close()
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			printCommandTree(cmd.OutOrStdout(), cmd, 0)
		},
	}
	cmd.AddCommand(
		NewVersionCmd(info),
		NewServeCmd(ctx, info),
		NewApplyCmd(ctx),
		NewHistogramCmd(ctx),
		NewOperationsCmd(),
	)
	pf := cmd.PersistentFlags()
	pf.String("log-level", "INFO", "Log level (DEBUG, INFO, WARN, ERROR), env "+logging.EnvLevel)
	pf.String("log-file", "", "Write logs to this file with rotation instead of stderr, env "+logging.EnvFile)
	pf.Bool("log-json", false, "Log as JSON, env "+logging.EnvJSON)
	return cmd
}

func printCommandTree(w io.Writer, cmd *cobra.Command, indent int) {
	fmt.Fprintln(w, strings.Repeat("\t", indent), cmd.Use+":", cmd.Short)
	for _, subCmd := range cmd.Commands() {
		printCommandTree(w, subCmd, indent+1)
	}
}

// NewVersionCmd prints build information.
func NewVersionCmd(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print version information",
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "image-editor %s\n", info.Version)
			fmt.Fprintf(w, "  Build time: %s\n", info.BuildTime)
			fmt.Fprintf(w, "  Git commit: %s\n", info.GitCommit)
		},
	}
}
