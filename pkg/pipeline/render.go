package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/wiresketch/wiresketch/pkg/box"
	schemaio "github.com/wiresketch/wiresketch/pkg/io"
	"github.com/wiresketch/wiresketch/pkg/schematic"
)

// Render generates output artifacts in the requested formats. s is the box
// set g was built from and is only used by the boxes format.
func Render(ctx context.Context, s *box.Set, g *schematic.Graph, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(ctx, s, g, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, s *box.Set, g *schematic.Graph, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatASC:
		var buf bytes.Buffer
		if err := g.WriteASC(&buf, opts.Subdivisions); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatJSON:
		var buf bytes.Buffer
		if err := schemaio.WriteJSON(g, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatSVG:
		dot := schematic.ToDOT(g, schematic.DOTOptions{Detailed: opts.Detailed})
		return schematic.RenderSVG(ctx, dot)
	case FormatBoxes:
		return []byte(s.Format(opts.ImageWidth, opts.ImageHeight)), nil
	default:
		return nil, ValidateFormat(format)
	}
}
