package api

import (
	"net/http"

	"github.com/wiresketch/wiresketch/pkg/box"
	"github.com/wiresketch/wiresketch/pkg/buildinfo"
	errs "github.com/wiresketch/wiresketch/pkg/errors"
	"github.com/wiresketch/wiresketch/pkg/grid"
	"github.com/wiresketch/wiresketch/pkg/pipeline"
	"github.com/wiresketch/wiresketch/pkg/symbol"
)

// =============================================================================
// Wire Types
// =============================================================================

// Box is a label record in percent form.
type Box struct {
	Class  int     `json:"class"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Geometry is shared by every request. Zero values take the server
// defaults.
type Geometry struct {
	Width        float64 `json:"width,omitempty"`
	Height       float64 `json:"height,omitempty"`
	Subdivisions int     `json:"subdivisions,omitempty"`
}

// SchematicRequest asks for the schematic of a box set. Without formats
// the response is the .asc text itself.
type SchematicRequest struct {
	Geometry
	Merge        *bool    `json:"merge,omitempty"`
	IOUThreshold float64  `json:"iou_threshold,omitempty"`
	MergeScan    string   `json:"merge_scan,omitempty"`
	Formats      []string `json:"formats,omitempty"`
	Detailed     bool     `json:"detailed,omitempty"`
	Boxes        []Box    `json:"boxes"`
}

// SchematicResponse carries several artifacts at once.
type SchematicResponse struct {
	SchematicHash string            `json:"schematic_hash"`
	Artifacts     map[string]string `json:"artifacts"`
	Stats         Stats             `json:"stats"`
	Cached        bool              `json:"cached"`
}

// Stats summarizes a reconstruction.
type Stats struct {
	Boxes      int `json:"boxes"`
	Merged     int `json:"merged"`
	Components int `json:"components"`
	Wires      int `json:"wires"`
	Symbols    int `json:"symbols"`
}

// EncodeRequest asks for the grid of a box set.
type EncodeRequest struct {
	Geometry
	Boxes []Box `json:"boxes"`
}

// GridResponse is a grid in row-major order: cell row, cell column, channel.
type GridResponse struct {
	Size     int       `json:"size"`
	Channels int       `json:"channels"`
	Occupied int       `json:"occupied"`
	Values   []float64 `json:"values"`
}

// DecodeRequest asks for the boxes of a grid. The grid side defaults to
// the subdivisions.
type DecodeRequest struct {
	Geometry
	Confidence float64   `json:"confidence,omitempty"`
	Size       int       `json:"size,omitempty"`
	Values     []float64 `json:"values"`
}

// DecodeResponse lists the decoded boxes in grid order.
type DecodeResponse struct {
	Boxes  []Box `json:"boxes"`
	Cached bool  `json:"cached"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string         `json:"status"`
		Build  buildinfo.Info `json:"build"`
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleSchematic(w http.ResponseWriter, r *http.Request) {
	var req SchematicRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := s.options(req.Geometry)
	if req.Merge != nil {
		opts.Merge = *req.Merge
	}
	if req.IOUThreshold > 0 {
		opts.IOUThreshold = req.IOUThreshold
	}
	if req.MergeScan != "" {
		opts.MergeScan = req.MergeScan
	}
	opts.Formats = req.Formats
	opts.Detailed = req.Detailed
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, r, err)
		return
	}

	set, err := toSet(req.Boxes, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	result, err := s.runner.Reconstruct(r.Context(), set, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if len(req.Formats) == 0 {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.Artifacts[pipeline.FormatASC])
		return
	}

	resp := SchematicResponse{
		SchematicHash: result.SchematicHash,
		Artifacts:     make(map[string]string, len(result.Artifacts)),
		Stats: Stats{
			Boxes:      result.Stats.Boxes,
			Merged:     result.Stats.Merged,
			Components: result.Stats.Components,
			Wires:      result.Stats.Wires,
			Symbols:    result.Stats.Symbols,
		},
		Cached: result.CacheInfo.SchematicHit && result.CacheInfo.RenderHit,
	}
	for f, data := range result.Artifacts {
		resp.Artifacts[f] = string(data)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	var req EncodeRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := s.options(req.Geometry)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, r, err)
		return
	}

	set, err := toSet(req.Boxes, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	g, err := s.runner.Encode(r.Context(), set, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, GridResponse{
		Size:     g.Size(),
		Channels: grid.Channels,
		Occupied: g.Occupied(),
		Values:   g.Values(),
	})
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	var req DecodeRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := s.options(req.Geometry)
	if req.Confidence > 0 {
		opts.Confidence = req.Confidence
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, r, err)
		return
	}

	size := req.Size
	if size == 0 {
		size = opts.Subdivisions
	}
	g, err := grid.FromValues(size, req.Values)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	set, hit, err := s.runner.DecodeWithCacheInfo(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, DecodeResponse{
		Boxes:  fromSet(set, opts),
		Cached: hit,
	})
}

// =============================================================================
// Conversion
// =============================================================================

// options derives request options from the server defaults and applies
// the request geometry.
func (s *Server) options(g Geometry) pipeline.Options {
	opts := s.defaults.Derive()
	opts.Formats = nil
	opts.Logger = s.logger
	if g.Width != 0 || g.Height != 0 {
		opts.ImageWidth, opts.ImageHeight = g.Width, g.Height
	}
	if g.Subdivisions != 0 {
		opts.Subdivisions = g.Subdivisions
	}
	return opts
}

func toSet(boxes []Box, opts pipeline.Options) (*box.Set, error) {
	s := box.NewSet()
	for i, b := range boxes {
		c := symbol.Class(b.Class)
		if !c.Valid() {
			return nil, errs.New(errs.ErrCodeInvalidInput, "box %d: unknown class %d", i, b.Class)
		}
		s.Add(box.FromPercent(c, b.X, b.Y, b.Width, b.Height, opts.ImageWidth, opts.ImageHeight))
	}
	return s, nil
}

func fromSet(s *box.Set, opts pipeline.Options) []Box {
	out := make([]Box, 0, s.Len())
	for _, b := range s.Boxes() {
		x, y, w, h := b.Percent(opts.ImageWidth, opts.ImageHeight)
		out = append(out, Box{Class: int(b.Class), X: x, Y: y, Width: w, Height: h})
	}
	return out
}
