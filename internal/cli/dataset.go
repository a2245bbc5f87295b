package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/wiresketch/wiresketch/pkg/dataset"
)

// datasetCommand creates the parent command for the training set
// generators.
func (c *CLI) datasetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Generate training sets for the detection and classification networks",
	}

	cmd.AddCommand(c.preTrackingCommand())
	cmd.AddCommand(c.trackingCommand())
	cmd.AddCommand(c.identificationCommand())

	return cmd
}

// preTrackingCommand creates the "dataset pretracking" subcommand.
func (c *CLI) preTrackingCommand() *cobra.Command {
	var flags inputFlags

	cmd := &cobra.Command{
		Use:   "pretracking",
		Short: "Write every labelled symbol alone on a black frame, sorted by symbol type",
		Long: `Pretracking copies the region of each labelled symbol onto a black image of
the source size and writes it to <output>/<type>/. Unknown symbols are
skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &dataset.PreTracking{Options: c.datasetOptions(flags)}
			return c.runGenerator(cmd.Context(), "Pretracking", flags.output, &p.Options, func(ctx context.Context) (dataset.Report, error) {
				return p.Generate(ctx, flags.input(), flags.output, flags.count)
			})
		},
	}

	flags.register(cmd)
	return cmd
}

// trackingCommand creates the "dataset tracking" subcommand.
func (c *CLI) trackingCommand() *cobra.Command {
	var flags inputFlags
	var subdivisions int

	cmd := &cobra.Command{
		Use:   "tracking",
		Short: "Write images with the grid encoding of their labels",
		Long: `Tracking writes <index>.<ext> images next to <index>.txt grid files, the
training input of the detection network. Sources whose labels collide in
a grid cell are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := &dataset.Tracking{
				Options:      c.datasetOptions(flags),
				Subdivisions: c.Config.Grid.Subdivisions,
			}
			if subdivisions > 0 {
				t.Subdivisions = subdivisions
			}
			return c.runGenerator(cmd.Context(), "Tracking", flags.output, &t.Options, func(ctx context.Context) (dataset.Report, error) {
				return t.Generate(ctx, flags.input(), flags.output, flags.count)
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&subdivisions, "subdivisions", 0, "grid cells per side (default from config)")

	return cmd
}

// identificationCommand creates the "dataset identification" subcommand.
func (c *CLI) identificationCommand() *cobra.Command {
	var flags inputFlags
	var cropSize int

	cmd := &cobra.Command{
		Use:   "identification",
		Short: "Write one crop per labelled symbol, sorted by symbol type",
		Long: `Identification crops every labelled symbol with a small random jitter,
resizes the crop and writes it to <output>/<type>/<index-within-type>/.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := dataset.NewIdentification(c.datasetOptions(flags))
			id.CropSize = c.Config.Dataset.CropSize
			if cropSize > 0 {
				id.CropSize = cropSize
			}
			return c.runGenerator(cmd.Context(), "Identification", flags.output, &id.Options, func(ctx context.Context) (dataset.Report, error) {
				return id.Generate(ctx, flags.input(), flags.output, flags.count)
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&cropSize, "crop-size", 0, "side of the written crops (default from config)")

	return cmd
}

// runGenerator runs gen behind a spinner that follows opts.Progress and
// prints the report.
func (c *CLI) runGenerator(ctx context.Context, name, output string, opts *dataset.Options, gen func(context.Context) (dataset.Report, error)) error {
	st := startStage(loggerFromContext(ctx), name, "output", output)

	spin := newSpinner(ctx, os.Stderr, name+" samples...")
	opts.Progress = spin.progress(name)
	spin.start()
	report, err := gen(ctx)
	spin.stop()
	if err != nil {
		return err
	}

	st.done("written", report.Written, "rejected", report.Rejected)
	c.ui.report(name, report)
	c.ui.file(output)
	return nil
}
