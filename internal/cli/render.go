package cli

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bstviz/pkg/core/bst"
	"github.com/matzehuels/bstviz/pkg/graph"
	"github.com/matzehuels/bstviz/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	pipeline.Options
	formats string // comma-separated output formats
	from    string // saved layout file to re-render
	output  string // output file (single format), base path, or "-" for stdout
	noCache bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [values...]",
		Short: "Build a tree and render it to files",
		Long: `Build a binary search tree by inserting the given values in order and
render the final tree.

Values may be given as arguments or with --input as a comma-separated list.
Tokens that are not valid for the category, and repeated values, are skipped.`,
		Example: `  bstviz render 50 30 70 20 40
  bstviz render -c word --input "pear, apple, fig" -f svg,json --order in-order
  bstviz render --random -c double --style graphviz -f png -o tree.png
  bstviz render --from tree.json -f svg --order post-order`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.from != "" {
				if err := loadLayoutFile(&opts.Options, opts.from); err != nil {
					return err
				}
			} else if opts.Input == "" {
				opts.Input = inputFromArgs(args)
			}
			opts.Formats = parseFormats(opts.formats)
			c.Config.apply(&opts.Options)
			return c.runRender(cmd.Context(), &opts)
		},
	}

	addBuildFlags(cmd, &opts.Options)
	addLayoutFlags(cmd, &opts.Options)
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, json, yaml, dot (comma-separated)")
	cmd.Flags().StringVar(&opts.Style, "style", "", "visual style: simple (default), outlined, graphviz")
	cmd.Flags().StringVar(&opts.Order, "order", "", "number nodes by traversal: in-order, pre-order, post-order")
	cmd.Flags().StringSliceVar(&opts.Highlight, "highlight", nil, "values to highlight")
	cmd.Flags().BoolVar(&opts.Crop, "crop", false, "crop the image to the tree")
	cmd.Flags().StringVar(&opts.from, "from", "", "re-render a layout saved as JSON or YAML")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `output file (single format) or base path; "-" writes to stdout`)
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-render even if cached")

	return cmd
}

// addBuildFlags registers the flags that choose the values of a tree.
func addBuildFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "value category: integer (default), double, letter, word, mixed")
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "comma-separated values")
	cmd.Flags().BoolVar(&opts.Random, "random", false, "generate random values")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed (0 picks one)")
}

// loadLayoutFile takes the category and values of opts from a saved layout.
// Values are listed in pre-order, which rebuilds the same shape.
func loadLayoutFile(opts *pipeline.Options, path string) error {
	l, err := graph.ReadLayoutFile(path)
	if err != nil {
		return err
	}
	t, err := graph.ToTree(l)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	opts.Category = t.Category().String()
	opts.Values = t.Strings(bst.PreOrder)
	opts.Input = ""
	opts.Random = false
	if opts.Style == "" && l.Style != "" {
		opts.Style = l.Style
	}
	return nil
}

// addLayoutFlags registers the drawing frame flags.
func addLayoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "frame width (default 800)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "frame height (default 600)")
	cmd.Flags().Float64Var(&opts.Radius, "radius", 0, "node radius (default 20)")
	cmd.Flags().Float64Var(&opts.Gap, "gap", 0, "minimum horizontal gap between subtrees")
	cmd.Flags().Float64Var(&opts.MarginX, "margin", 0, "horizontal margin")
}

func (c *CLI) runRender(ctx context.Context, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner := c.newRunner(ctx, opts.noCache)
	defer runner.Close()

	opts.Logger = logger
	result, err := runner.Execute(ctx, opts.Options)
	if err != nil {
		return err
	}

	if opts.output == "-" {
		if len(result.Artifacts) != 1 {
			return fmt.Errorf("stdout output needs exactly one format, got %d", len(result.Artifacts))
		}
		for _, data := range result.Artifacts {
			_, err := os.Stdout.Write(data)
			return err
		}
	}

	formats := slices.Sorted(maps.Keys(result.Artifacts))

	var paths []string
	for _, format := range formats {
		path := outputPath(opts.output, format, len(formats))
		if err := writeFile(path, result.Artifacts[format]); err != nil {
			return err
		}
		paths = append(paths, path)
	}

	prog.done(fmt.Sprintf("Rendered %d file(s)", len(paths)))
	printSuccess("Rendered %s", StyleHighlight.Render(result.Tree.String()))
	for i, p := range paths {
		printFile(p, humanize.Bytes(uint64(len(result.Artifacts[formats[i]]))))
	}
	fmt.Println(statsLine(result.Stats.NodeCount, result.Stats.Depth, result.Dropped, result.CacheInfo.RenderHit))
	if result.Dropped > 0 {
		printWarning("Some inputs were invalid or duplicates and have been ignored.")
	}
	return nil
}

// outputPath derives the file for one format. A single format writes to
// output verbatim when it is set; otherwise output (minus any known
// extension) is used as a base path.
func outputPath(output, format string, nFormats int) string {
	if output == "" {
		return "tree." + format
	}
	ext := filepath.Ext(output)
	if nFormats == 1 && ext != "" {
		return output
	}
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		output = strings.TrimSuffix(output, ext)
	}
	return output + "." + format
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
