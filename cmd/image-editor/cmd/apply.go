package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-editor-mcp/internal/editor"
)

// NewApplyCmd opens one image, applies one operation and saves the result.
func NewApplyCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <operation>",
		Short: "apply one operation to an image file",
		Long: "apply opens --in, runs the named operation on it and writes the result to --out.\n" +
			"Run \"image-editor operations\" for the list of operations and their parameters.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, _ := cmd.Flags().GetString("in")
			out, _ := cmd.Flags().GetString("out")
			if in == "" || out == "" {
				return fmt.Errorf("--in and --out are required")
			}

			params, err := paramsFromFlags(cmd)
			if err != nil {
				return err
			}

			sess := editor.New(editor.WithLogger(slog.Default()))
			if _, err := sess.Open(ctx, in); err != nil {
				return err
			}
			img, err := sess.Apply(ctx, args[0], params)
			if err != nil {
				return err
			}
			if err := sess.Save(ctx, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s -> %s (%dx%d, %d channel(s))\n",
				args[0], in, out, img.Width, img.Height, img.Channels)
			return nil
		},
	}

	pf := cmd.Flags()
	pf.StringP("in", "i", "", "input image path")
	pf.StringP("out", "o", "", "output image path, format from extension")
	pf.Float64("angle", 90, "rotate: degrees, positive turns left")
	pf.Float64("threshold", editor.DefaultThreshold, "binarize/dilate/erode: gray level threshold")
	pf.Float64("min", editor.DefaultStretchMin, "stretch: input level mapped to 0")
	pf.Float64("max", editor.DefaultStretchMax, "stretch: input level mapped to 255")
	pf.String("kernel", "", `convolve: JSON matrix, e.g. "[[0,1,0],[1,-4,1],[0,1,0]]"`)
	pf.Bool("saturate", false, "clamp out-of-range results instead of wrapping")
	return cmd
}

// paramsFromFlags collects the operation parameters set on the command line.
func paramsFromFlags(cmd *cobra.Command) (editor.Params, error) {
	params := editor.Params{}
	fs := cmd.Flags()
	for _, name := range []string{"angle", "threshold", "min", "max"} {
		if fs.Changed(name) {
			v, _ := fs.GetFloat64(name)
			params[name] = v
		}
	}
	if fs.Changed("saturate") {
		v, _ := fs.GetBool("saturate")
		params["saturate"] = v
	}
	if fs.Changed("kernel") {
		raw, _ := fs.GetString("kernel")
		var k []any
		if err := json.Unmarshal([]byte(raw), &k); err != nil {
			return nil, fmt.Errorf("--kernel: %w", err)
		}
		params["kernel"] = k
	}
	return params, nil
}

// NewOperationsCmd lists the registered operations.
func NewOperationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "operations",
		Short: "list the operations accepted by apply",
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			for _, op := range editor.Operations() {
				fmt.Fprintf(w, "%-16s %s\n", op.Name, op.Description)
				for _, p := range op.Params {
					fmt.Fprintf(w, "%-16s   --%s\n", "", p)
				}
			}
		},
	}
}
