package schematic

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	errs "github.com/wiresketch/wiresketch/pkg/errors"
)

// Sheet geometry: one grid cell spans Pitch schematic units and cell
// anchors sit Origin units into their cell.
const (
	Pitch  = 80
	Origin = 48
)

func anchor(cell int) int { return cell*Pitch + Origin }

// WriteASC runs [Graph.BuildWiring] and writes the schematic: the header,
// one WIRE line per wire, then one SYMBOL line per placed component followed
// by its instance name. Instance numbers run over placed components in list
// order; corners and classes without a descriptor take no number.
func (g *Graph) WriteASC(w io.Writer, subdivisions int) error {
	if err := errs.ValidateSubdivisions(subdivisions); err != nil {
		return err
	}
	wires := g.BuildWiring()

	bw := bufio.NewWriter(w)
	side := subdivisions * Pitch
	fmt.Fprintf(bw, "Version 4\nSHEET 1 %d %d\n", side, side)

	for _, wire := range wires {
		a, b := g.components[wire.From], g.components[wire.To]
		fmt.Fprintf(bw, "WIRE %d %d %d %d\n",
			anchor(max(a.X, b.X)), anchor(max(a.Y, b.Y)),
			anchor(min(a.X, b.X)), anchor(min(a.Y, b.Y)))
	}

	index := 0
	for _, c := range g.components {
		if c.IsCorner() {
			continue
		}
		d, ok := DescriptorOf(c.Class)
		if !ok {
			continue
		}
		fmt.Fprintf(bw, "SYMBOL %s %d %d %s\n", d.Symbol, anchor(c.X)+d.DX, anchor(c.Y)+d.DY, d.RotationTag())
		fmt.Fprintf(bw, "SYMATTR InstName %s%d\n", d.Prefix, index)
		index++
	}
	return bw.Flush()
}

// ASC returns the output of [Graph.WriteASC] as a string.
func (g *Graph) ASC(subdivisions int) (string, error) {
	var sb strings.Builder
	if err := g.WriteASC(&sb, subdivisions); err != nil {
		return "", err
	}
	return sb.String(), nil
}
