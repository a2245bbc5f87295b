package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wiresketch/wiresketch/pkg/augment"
	"github.com/wiresketch/wiresketch/pkg/grid"
	"github.com/wiresketch/wiresketch/pkg/pipeline"
)

// encodeOpts holds the flags for the encode command.
type encodeOpts struct {
	output       string
	subdivisions int
}

// encodeCommand creates the command that turns a labelled image into a
// detector training grid.
func (c *CLI) encodeCommand() *cobra.Command {
	var opts encodeOpts

	cmd := &cobra.Command{
		Use:   "encode <image> <labels>",
		Short: "Encode image labels into a detector grid",
		Long: `Encode reads the label file of a square image and writes the grid the
detection network is trained on: one row per cell with objectness, center,
size and class scores.

Two labels whose centers fall into the same cell cannot be encoded; the
command fails with ENCODING_CONFLICT.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEncode(cmd.Context(), args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output grid file (default: stdout)")
	cmd.Flags().IntVar(&opts.subdivisions, "subdivisions", 0, "grid cells per side (default from config)")

	return cmd
}

func (c *CLI) runEncode(ctx context.Context, imagePath, labelPath string, opts encodeOpts) error {
	st := startStage(loggerFromContext(ctx), "Encoded", "image", imagePath)

	m, err := augment.Load(imagePath, labelPath, false)
	if err != nil {
		return err
	}
	w, h := m.Size()

	popts := c.Config.PipelineOptions()
	popts.ImageWidth, popts.ImageHeight = float64(w), float64(h)
	if opts.subdivisions > 0 {
		popts.Subdivisions = opts.subdivisions
	}

	// Encoding is not cached; the runner only fires the hooks.
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	g, err := runner.Encode(ctx, m.Boxes(), popts)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := g.Write(&buf); err != nil {
		return err
	}
	if err := c.writeOutput(opts.output, buf.Bytes()); err != nil {
		return err
	}

	st.done("boxes", m.Boxes().Len(), "occupied", g.Occupied())
	if opts.output != "" {
		c.ui.success("Encoded %s into a %dx%d grid", plural(m.Boxes().Len(), "box", "boxes"), g.Size(), g.Size())
		c.ui.file(opts.output)
	}
	return nil
}

// decodeOpts holds the flags for the decode command.
type decodeOpts struct {
	output     string
	size       float64
	confidence float64
}

// decodeCommand creates the command that turns a detector grid back into
// label records.
func (c *CLI) decodeCommand() *cobra.Command {
	var opts decodeOpts

	cmd := &cobra.Command{
		Use:   "decode <grid>",
		Short: "Decode a detector grid into label records",
		Long: `Decode reads a grid written by the detector (or by encode) and writes one
label record per cell whose objectness reaches the confidence threshold.
The grid size is inferred from the number of values.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDecode(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output label file (default: stdout)")
	cmd.Flags().Float64Var(&opts.size, "size", 0, "side of the source image in pixels (default from config)")
	cmd.Flags().Float64Var(&opts.confidence, "confidence", 0, "objectness threshold (default from config)")

	return cmd
}

func (c *CLI) runDecode(ctx context.Context, input string, opts decodeOpts) error {
	st := startStage(loggerFromContext(ctx), "Decoded", "grid", input)

	g, err := grid.ReadFile(input, 0)
	if err != nil {
		return err
	}

	popts := c.Config.PipelineOptions()
	if opts.size > 0 {
		popts.ImageWidth, popts.ImageHeight = opts.size, opts.size
	}
	if opts.confidence > 0 {
		popts.Confidence = opts.confidence
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	s, hit, err := runner.DecodeWithCacheInfo(ctx, g, popts)
	if err != nil {
		return err
	}
	if err := c.writeOutput(opts.output, []byte(s.Format(popts.ImageWidth, popts.ImageHeight))); err != nil {
		return err
	}

	st.done("boxes", s.Len(), "cached", hit)
	if opts.output != "" {
		c.ui.success("Decoded %s from a %dx%d grid", plural(s.Len(), "box", "boxes"), g.Size(), g.Size())
		c.ui.stats(statLine{boxes: s.Len()}, hit)
		c.ui.file(opts.output)
		c.ui.nextStep("Reconstruct the schematic", fmt.Sprintf("wiresketch schematic %s --size %g", opts.output, popts.ImageWidth))
	}
	return nil
}
