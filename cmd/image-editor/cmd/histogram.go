package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-editor-mcp/internal/editor"
	"github.com/ironsheep/image-editor-mcp/internal/imaging"
)

// NewHistogramCmd prints the gray-level histogram of an image.
func NewHistogramCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "histogram",
		Short: "print the gray-level histogram of an image",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, _ := cmd.Flags().GetString("in")
			if in == "" && len(args) > 0 {
				in = args[0]
			}
			if in == "" {
				return fmt.Errorf("image path is required. Use --in flag or provide as argument")
			}

			sess := editor.New(editor.WithLogger(slog.Default()))
			if _, err := sess.Open(ctx, in); err != nil {
				return err
			}
			h, err := sess.Histogram(ctx)
			if err != nil {
				return err
			}

			if plot, _ := cmd.Flags().GetString("plot"); plot != "" {
				width, _ := cmd.Flags().GetInt("width")
				height, _ := cmd.Flags().GetInt("height")
				chart, err := imaging.RenderHistogram(h, width, height)
				if err != nil {
					return err
				}
				if err := imaging.Save(chart, plot); err != nil {
					return err
				}
			}

			w := cmd.OutOrStdout()
			switch format, _ := cmd.Flags().GetString("format"); format {
			case "json":
				return json.NewEncoder(w).Encode(h)
			case "text":
				for level, count := range h {
					if count > 0 {
						fmt.Fprintf(w, "%3d %d\n", level, count)
					}
				}
				return nil
			default:
				return fmt.Errorf("unknown format %q (text|json)", format)
			}
		},
	}

	pf := cmd.Flags()
	pf.StringP("in", "i", "", "input image path")
	pf.StringP("format", "f", "text", "output format (text|json)")
	pf.String("plot", "", "also write the histogram as a bar chart image to this path")
	pf.Int("width", imaging.Levels, "bar chart width in pixels")
	pf.Int("height", 128, "bar chart height in pixels")
	return cmd
}
