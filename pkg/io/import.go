package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	errs "github.com/wiresketch/wiresketch/pkg/errors"
	"github.com/wiresketch/wiresketch/pkg/schematic"
	"github.com/wiresketch/wiresketch/pkg/symbol"
)

// ReadJSON decodes a JSON schematic from r.
//
// ReadJSON returns an INVALID_FORMAT error if the JSON is malformed, a class
// is out of range, a wire names an unknown direction, or a wire cannot be
// connected. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*schematic.Graph, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode")
	}

	comps := make([]schematic.Component, len(data.Components))
	for i, c := range data.Components {
		class := symbol.Class(c.Class)
		if !class.Valid() {
			return nil, errs.New(errs.ErrCodeInvalidFormat, "component %d: class %d out of range", i, c.Class)
		}
		comps[i] = schematic.NewComponent(class, c.X, c.Y)
	}

	g := schematic.New(comps...)
	for _, w := range data.Wires {
		d, err := schematic.ParseDirection(w.Dir)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "wire %d->%d", w.From, w.To)
		}
		if err := g.Connect(w.From, d, w.To); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "wire %d->%d", w.From, w.To)
		}
	}
	return g, nil
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
func ImportJSON(path string) (*schematic.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
