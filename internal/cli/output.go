package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/wiresketch/wiresketch/pkg/pipeline"
)

// writeOutput writes data to path, replacing any existing file. An empty
// path sends data to the command's output stream.
func (c *CLI) writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := c.ui.w.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// formatExt maps an output format to its file suffix.
var formatExt = map[string]string{
	pipeline.FormatASC:   ".asc",
	pipeline.FormatJSON:  ".json",
	pipeline.FormatSVG:   ".svg",
	pipeline.FormatBoxes: "_boxes.txt",
}

// basePath is output without a known format suffix, or input without its
// extension when output is empty.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	for _, known := range formatExt {
		if ext == known {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// outputPaths returns one file path per format. A single format written to
// an explicit output uses that path unchanged.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + formatExt[f]
	}
	return paths
}
