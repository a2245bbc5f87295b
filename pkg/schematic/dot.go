package schematic

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/goccy/go-graphviz"
)

// DOTOptions configures the wiring preview.
type DOTOptions struct {
	// Detailed adds the cell coordinates to every node label.
	Detailed bool
}

// ToDOT converts g to Graphviz DOT for a wiring preview. Each grid row
// becomes one rank, so the drawing keeps the row structure of the sheet.
// Run [Graph.BuildWiring] first to include the wires.
func ToDOT(g *Graph, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	rows := make(map[int][]int)
	for i, c := range g.components {
		rows[c.Y] = append(rows[c.Y], i)
	}
	keys := make([]int, 0, len(rows))
	for y := range rows {
		keys = append(keys, y)
	}
	slices.Sort(keys)

	for _, y := range keys {
		members := rows[y]
		slices.SortStableFunc(members, func(a, b int) int {
			return g.components[a].X - g.components[b].X
		})
		fmt.Fprintf(&buf, "  { rank=same; %q [style=invis, label=\"\"];", rowID(y))
		for _, i := range members {
			fmt.Fprintf(&buf, " %q;", nodeID(i))
		}
		buf.WriteString(" }\n")
	}
	for k := 1; k < len(keys); k++ {
		fmt.Fprintf(&buf, "  %q -- %q [style=invis];\n", rowID(keys[k-1]), rowID(keys[k]))
	}

	buf.WriteString("\n")
	for i, c := range g.components {
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(i), strings.Join(nodeAttrs(c, opts), ", "))
	}

	buf.WriteString("\n")
	for _, w := range g.wires {
		fmt.Fprintf(&buf, "  %q -- %q [label=%q];\n", nodeID(w.From), nodeID(w.To), w.Dir.String())
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(i int) string { return fmt.Sprintf("c%d", i) }

func rowID(y int) string { return fmt.Sprintf("row%d", y) }

func nodeAttrs(c Component, opts DOTOptions) []string {
	label := c.Class.String()
	if d, ok := DescriptorOf(c.Class); ok {
		label = d.Kind
	}
	if opts.Detailed {
		label += fmt.Sprintf("\n(%d,%d) %s", c.X, c.Y, c.ports)
	}

	attrs := []string{fmt.Sprintf("label=%q", label)}
	if c.IsCorner() {
		attrs = append(attrs, "shape=point", "width=0.15", fmt.Sprintf("xlabel=%q", label))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
