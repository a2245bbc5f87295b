package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/wiresketch/wiresketch/pkg/schematic"
)

type document struct {
	Components []component `json:"components"`
	Wires      []wire      `json:"wires"`
}

type component struct {
	Class int    `json:"class"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Name  string `json:"name,omitempty"`
}

type wire struct {
	From int    `json:"from"`
	To   int    `json:"to"`
	Dir  string `json:"dir"`
}

// WriteJSON encodes a schematic graph as JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(g *schematic.Graph, w io.Writer) error {
	comps := g.Components()
	wires := g.Wires()
	out := document{
		Components: make([]component, len(comps)),
		Wires:      make([]wire, len(wires)),
	}

	for i, c := range comps {
		out.Components[i] = component{Class: int(c.Class), X: c.X, Y: c.Y, Name: c.Class.String()}
	}
	for i, wr := range wires {
		out.Wires[i] = wire{From: wr.From, To: wr.To, Dir: wr.Dir.String()}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a schematic graph to a JSON file at path.
func ExportJSON(g *schematic.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}
