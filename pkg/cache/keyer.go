package cache

// Keyer builds cache keys. Every option that changes a result must be part
// of its key.
type Keyer interface {
	// GridKey keys the box set decoded from a grid.
	GridKey(gridHash string, opts GridKeyOpts) string

	// SchematicKey keys the schematic reconstructed from a box set.
	SchematicKey(boxesHash string, opts SchematicKeyOpts) string

	// ArtifactKey keys one rendered output of a schematic.
	ArtifactKey(schematicHash string, opts ArtifactKeyOpts) string
}

// GridKeyOpts holds the decode options that affect the box set.
type GridKeyOpts struct {
	ImageWidth  float64 `json:"image_width"`
	ImageHeight float64 `json:"image_height"`
	Confidence  float64 `json:"confidence"`
}

// SchematicKeyOpts holds the reconstruction options that affect the
// schematic.
type SchematicKeyOpts struct {
	ImageWidth   float64 `json:"image_width"`
	ImageHeight  float64 `json:"image_height"`
	Subdivisions int     `json:"subdivisions"`
	Merge        bool    `json:"merge"`
	IOUThreshold float64 `json:"iou_threshold"`
	MergeScan    string  `json:"merge_scan"`
}

// ArtifactKeyOpts holds the render options that affect an artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed,omitempty"`
}

// DefaultKeyer hashes the input hash and options into a prefixed key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// GridKey returns "grid:<sha256>".
func (DefaultKeyer) GridKey(gridHash string, opts GridKeyOpts) string {
	return hashKey("grid", gridHash, opts)
}

// SchematicKey returns "schematic:<sha256>".
func (DefaultKeyer) SchematicKey(boxesHash string, opts SchematicKeyOpts) string {
	return hashKey("schematic", boxesHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(schematicHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", schematicHash, opts)
}
