package cli

import (
	"context"
	"slices"

	"github.com/spf13/cobra"

	"github.com/wiresketch/wiresketch/pkg/box"
	"github.com/wiresketch/wiresketch/pkg/grid"
	"github.com/wiresketch/wiresketch/pkg/pipeline"
)

// schematicOpts holds the command-line flags for the schematic command.
type schematicOpts struct {
	output       string   // output file (single format) or base path
	formats      []string // asc, json, svg, boxes
	size         float64  // side of the source image in pixels
	subdivisions int
	fromGrid     bool // input is a detector grid rather than label records
	merge        bool
	iouThreshold float64
	mergeScan    string
	detailed     bool // cell coordinates in the svg preview
	refresh      bool // ignore cached results
}

// schematicCommand creates the command that reconstructs a wired schematic.
func (c *CLI) schematicCommand() *cobra.Command {
	var formatsStr string
	var opts schematicOpts

	cmd := &cobra.Command{
		Use:   "schematic <labels>",
		Short: "Reconstruct an LTspice schematic from detected symbols",
		Long: `Schematic places every detected symbol on the schematic grid, wires the
corners to their nearest facing neighbours and writes the result.

Formats:
  asc    LTspice schematic (default)
  json   components and wires
  svg    Graphviz wiring preview
  boxes  the label records the schematic was built from, after merging

The input is a label file, or a detector grid with --grid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if !cmd.Flags().Changed("merge") {
				opts.merge = c.Config.Merge.Enabled
			}
			return c.runSchematic(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): asc (default), json, svg, boxes (comma-separated)")
	cmd.Flags().Float64Var(&opts.size, "size", 0, "side of the source image in pixels (default from config)")
	cmd.Flags().IntVar(&opts.subdivisions, "subdivisions", 0, "grid cells per side (default from config)")
	cmd.Flags().BoolVar(&opts.fromGrid, "grid", false, "read a detector grid instead of label records")
	cmd.Flags().BoolVar(&opts.merge, "merge", false, "merge overlapping boxes of the same class")
	cmd.Flags().Float64Var(&opts.iouThreshold, "iou", 0, "overlap above which boxes merge (default from config)")
	cmd.Flags().StringVar(&opts.mergeScan, "merge-scan", "", "merge scan: legacy or all-pairs (default from config)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show cell coordinates in the svg preview")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")

	return cmd
}

// pipelineOptions overlays the flags on the configured defaults.
func (c *CLI) pipelineOptions(opts schematicOpts) pipeline.Options {
	p := c.Config.PipelineOptions()
	if opts.size > 0 {
		p.ImageWidth, p.ImageHeight = opts.size, opts.size
	}
	if opts.subdivisions > 0 {
		p.Subdivisions = opts.subdivisions
	}
	p.Merge = opts.merge
	if opts.iouThreshold > 0 {
		p.IOUThreshold = opts.iouThreshold
	}
	if opts.mergeScan != "" {
		p.MergeScan = opts.mergeScan
	}
	p.Formats = opts.formats
	p.Detailed = opts.detailed
	p.Refresh = opts.refresh
	return p
}

func (c *CLI) runSchematic(ctx context.Context, input string, opts schematicOpts) error {
	logger := loggerFromContext(ctx)
	st := startStage(logger, "Reconstructed", "input", input)

	popts := c.pipelineOptions(opts)
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	var result *pipeline.Result
	if opts.fromGrid {
		g, err := grid.ReadFile(input, 0)
		if err != nil {
			return err
		}
		result, err = runner.Execute(ctx, g, popts)
		if err != nil {
			return err
		}
	} else {
		s, err := box.ReadFile(input, popts.ImageWidth, popts.ImageHeight)
		if err != nil {
			return err
		}
		result, err = runner.Reconstruct(ctx, s, popts)
		if err != nil {
			return err
		}
	}

	paths := outputPaths(opts.output, input, popts.Formats)
	// An explicit single output or several formats go to files; a lone
	// format without -o is printed.
	toStdout := opts.output == "" && len(popts.Formats) == 1
	for _, f := range popts.Formats {
		path := paths[f]
		if toStdout {
			path = ""
		}
		if err := c.writeOutput(path, result.Artifacts[f]); err != nil {
			return err
		}
		logger.Debugf("Wrote %s: %d bytes", f, len(result.Artifacts[f]))
	}

	st.done("components", result.Stats.Components, "wires", result.Stats.Wires, "cached", result.CacheInfo.SchematicHit)
	if toStdout {
		return nil
	}
	c.ui.success("Reconstructed schematic from %s", plural(result.Stats.Boxes, "box", "boxes"))
	c.ui.stats(statLine{
		components: result.Stats.Components,
		wires:      result.Stats.Wires,
		symbols:    result.Stats.Symbols,
		merged:     result.Stats.Merged,
	}, result.CacheInfo.SchematicHit && result.CacheInfo.RenderHit)
	for _, f := range sortedFormats(popts.Formats) {
		c.ui.file(paths[f])
	}
	return nil
}

func sortedFormats(formats []string) []string {
	out := slices.Clone(formats)
	slices.Sort(out)
	return out
}
