// Package cli implements the wiresketch command-line interface.
//
// The commands cover both halves of the tool: turning detector output into
// LTspice schematics, and generating the datasets the detector is trained on.
//
//   - encode, decode: convert between label files and detector grids
//   - schematic: reconstruct a wired schematic from labels or a grid
//   - augment, dataset: generate training samples from labelled sketches
//   - serve: run the HTTP API
//   - cache: manage the result cache
//
// Settings come from a TOML file (see internal/config) and are overridden by
// flags. Every command runs with a charmbracelet logger in its context;
// --verbose switches it to debug level.
//
//	c := cli.New(os.Stderr, cli.LogInfo)
//	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	    os.Exit(1)
//	}
package cli
