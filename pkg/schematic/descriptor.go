package schematic

import "github.com/wiresketch/wiresketch/pkg/symbol"

// Descriptor tells how a non-corner class is placed as a schematic symbol.
type Descriptor struct {
	Kind     string // human name of the symbol
	Symbol   string // LTspice symbol name
	Rotation int    // degrees, one of 0, 90, 180, 270
	Prefix   string // reference designator prefix
	DX, DY   int    // placement offset from the cell anchor
}

// RotationTag returns the LTspice orientation tag, e.g. "R90".
func (d Descriptor) RotationTag() string {
	switch d.Rotation {
	case 90:
		return "R90"
	case 180:
		return "R180"
	case 270:
		return "R270"
	default:
		return "R0"
	}
}

var (
	voltageSource = Descriptor{Kind: "voltage source", Symbol: "bv", Prefix: "V"}
	resistor      = Descriptor{Kind: "resistor", Symbol: "res", Prefix: "R"}
	inductor      = Descriptor{Kind: "inductor", Symbol: "ind", Prefix: "L"}
	currentSource = Descriptor{Kind: "current source", Symbol: "bi2", Prefix: "I"}
	capacitor     = Descriptor{Kind: "capacitor", Symbol: "cap", Prefix: "C"}
)

func place(d Descriptor, rotation, dx, dy int) *Descriptor {
	d.Rotation, d.DX, d.DY = rotation, dx, dy
	return &d
}

// descriptors is indexed by class; nil for classes without a symbol.
var descriptors = [symbol.NumClasses]*Descriptor{
	9:  place(voltageSource, 180, 0, 16),
	10: place(voltageSource, 90, 16, 0),
	11: place(voltageSource, 0, 0, -16),
	12: place(voltageSource, 270, -16, 0),
	13: place(resistor, 0, -16, -16),
	14: place(resistor, 270, -16, 16),
	15: place(inductor, 0, -16, -16),
	16: place(inductor, 270, -16, 16),
	17: place(currentSource, 180, 0, 0),
	18: place(currentSource, 90, 0, 0),
	19: place(currentSource, 0, 0, 0),
	20: place(currentSource, 270, 0, 0),
	21: place(capacitor, 0, -16, 0),
	22: place(capacitor, 270, 0, 16),
}

// DescriptorOf returns the placement of class c. Corners, the nothing class
// and the unknown class have none.
func DescriptorOf(c symbol.Class) (Descriptor, bool) {
	if !c.Valid() || descriptors[c] == nil {
		return Descriptor{}, false
	}
	return *descriptors[c], true
}
