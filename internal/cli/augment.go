package cli

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wiresketch/wiresketch/pkg/dataset"
)

// inputFlags are the source directories shared by the generator commands.
type inputFlags struct {
	images string
	labels string // defaults to images
	output string
	count  int
	seed   uint64
	color  bool
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.images, "input", "i", "", "directory of source images (required)")
	cmd.Flags().StringVar(&f.labels, "labels", "", "directory of source labels (default: the input directory)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output directory (required)")
	cmd.Flags().IntVarP(&f.count, "count", "n", 100, "number of samples to write")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed (default from config)")
	cmd.Flags().BoolVar(&f.color, "color", false, "keep colour instead of converting sources to grayscale")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
}

func (f *inputFlags) input() dataset.Input {
	labels := f.labels
	if labels == "" {
		labels = f.images
	}
	return dataset.Input{ImagesDir: f.images, LabelsDir: labels}
}

// datasetOptions overlays the flags on the configured generator settings.
func (c *CLI) datasetOptions(f inputFlags) dataset.Options {
	opts := c.Config.DatasetOptions()
	if f.seed != 0 {
		opts.Seed = f.seed
	}
	if f.color {
		opts.Color = true
	}
	opts.Logger = c.Logger
	return opts
}

// augmentOpts holds the flags specific to the augment command.
type augmentOpts struct {
	inputFlags
	size   int
	invert bool
}

// augmentCommand creates the command that writes randomly transformed
// copies of labelled sketches.
func (c *CLI) augmentCommand() *cobra.Command {
	var opts augmentOpts

	cmd := &cobra.Command{
		Use:   "augment",
		Short: "Write randomly rotated, zoomed and flipped copies of labelled sketches",
		Long: `Augment draws source images at random and applies the configured policy:
a rotation, a zoom and vertical or horizontal flips, each with its own
probability. Samples that push a symbol center out of the image are
discarded. Images are written to <output>/images and labels to
<output>/labels.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAugment(cmd.Context(), opts)
		},
	}

	opts.inputFlags.register(cmd)
	cmd.Flags().IntVar(&opts.size, "size", 0, "side of the written images (default from config)")
	cmd.Flags().BoolVar(&opts.invert, "invert", false, "invert the written images")

	return cmd
}

func (c *CLI) runAugment(ctx context.Context, opts augmentOpts) error {
	a := dataset.NewAugmenter(c.datasetOptions(opts.inputFlags))
	a.Policy = c.Config.Policy()
	a.Size = c.Config.Augment.Size
	if opts.size > 0 {
		a.Size = opts.size
	}
	a.Grayscale = !a.Options.Color
	a.Invert = opts.invert

	imagesOut := filepath.Join(opts.output, "images")
	labelsOut := filepath.Join(opts.output, "labels")
	return c.runGenerator(ctx, "Augmenting", opts.output, &a.Options, func(ctx context.Context) (dataset.Report, error) {
		return a.Generate(ctx, opts.input(), imagesOut, labelsOut, opts.count)
	})
}
