package io

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	errs "github.com/wiresketch/wiresketch/pkg/errors"
	"github.com/wiresketch/wiresketch/pkg/schematic"
)

func sampleGraph() *schematic.Graph {
	g := schematic.New(
		schematic.NewComponent(4, 3, 3),
		schematic.NewComponent(5, 3, 6),
		schematic.NewComponent(13, 5, 3),
	)
	g.BuildWiring()
	return g
}

func TestRoundTrip(t *testing.T) {
	g := sampleGraph()

	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	if !strings.Contains(buf.String(), `"dir": "bottom"`) {
		t.Errorf("output missing wire direction:\n%s", buf.String())
	}

	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if !reflect.DeepEqual(back.Wires(), g.Wires()) {
		t.Errorf("wires = %+v, want %+v", back.Wires(), g.Wires())
	}
	if !reflect.DeepEqual(back.Components(), g.Components()) {
		t.Errorf("components differ after round trip")
	}
}

func TestExportImport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := ExportJSON(sampleGraph(), path); err != nil {
		t.Fatal(err)
	}
	g, err := ImportJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	if g.Len() != 3 || len(g.Wires()) != 1 {
		t.Errorf("imported %d components and %d wires", g.Len(), len(g.Wires()))
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed", `{"components": [`},
		{"bad class", `{"components": [{"class": 40, "x": 0, "y": 0}]}`},
		{"bad direction", `{"components": [{"class": 4, "x": 0, "y": 0}, {"class": 5, "x": 0, "y": 1}], "wires": [{"from": 0, "to": 1, "dir": "down"}]}`},
		{"missing port", `{"components": [{"class": 0, "x": 0, "y": 0}, {"class": 1, "x": 0, "y": 1}], "wires": [{"from": 0, "to": 1, "dir": "bottom"}]}`},
		{"unknown component", `{"components": [{"class": 4, "x": 0, "y": 0}], "wires": [{"from": 0, "to": 3, "dir": "bottom"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if !errs.Is(err, errs.ErrCodeInvalidFormat) {
				t.Errorf("ReadJSON() error = %v, want INVALID_FORMAT", err)
			}
		})
	}
}
