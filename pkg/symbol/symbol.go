// Package symbol defines the fixed taxonomy of hand-drawn circuit symbols.
//
// A [Class] is one of 25 integer ids. Classes are grouped into semantic
// [Type] values (corner, voltage generator, resistance, ...). A class encodes
// the drawn orientation of its symbol: which way a corner's legs point, which
// side a source's positive terminal faces. Every geometric transform of an
// image must therefore be paired with a class substitution. [Rotate],
// [FlipHorizontal] and [FlipVertical] perform it with static tables.
//
// # Class Layout
//
//	0..8    Corner (L corners 0..3, T junctions 4..7, cross 8)
//	9..12   Voltage generator
//	13..14  Resistance
//	15..16  Inductor
//	17..20  Current generator
//	21..22  Capacitor
//	23      Nothing (explicit "no object" label)
//	24      Something (unknown object, never learned)
//
// The six learned types (Corner through Capacitor) are the ones a detector
// predicts. Nothing and Something are sentinels: they never take part in
// rotation or flip remaps and are never produced by grid decoding.
package symbol

import (
	"fmt"
	"math"
)

// Class is a symbol class id in [0, NumClasses).
type Class int

// Type is the semantic group of a class.
type Type int

// Symbol types. The first LearnedTypes values are the ones carried by a
// detection grid; TypeNothing and TypeUnknown are sentinels.
const (
	TypeCorner Type = iota
	TypeVoltageSource
	TypeResistor
	TypeInductor
	TypeCurrentSource
	TypeCapacitor
	TypeNothing
	TypeUnknown
)

const (
	// NumClasses is the number of class ids.
	NumClasses = 25

	// LearnedTypes is the number of types a detector predicts.
	LearnedTypes = 6

	// ClassNothing labels an explicit absence of object.
	ClassNothing Class = 23

	// ClassUnknown labels an object that fits no learned type.
	ClassUnknown Class = 24
)

// typeOf maps every class id to its type.
var typeOf = [NumClasses]Type{
	TypeCorner, TypeCorner, TypeCorner, TypeCorner, TypeCorner,
	TypeCorner, TypeCorner, TypeCorner, TypeCorner,
	TypeVoltageSource, TypeVoltageSource, TypeVoltageSource, TypeVoltageSource,
	TypeResistor, TypeResistor,
	TypeInductor, TypeInductor,
	TypeCurrentSource, TypeCurrentSource, TypeCurrentSource, TypeCurrentSource,
	TypeCapacitor, TypeCapacitor,
	TypeNothing,
	TypeUnknown,
}

// canonical is the lowest class id of each type.
var canonical = [...]Class{
	TypeCorner:        0,
	TypeVoltageSource: 9,
	TypeResistor:      13,
	TypeInductor:      15,
	TypeCurrentSource: 17,
	TypeCapacitor:     21,
	TypeNothing:       ClassNothing,
	TypeUnknown:       ClassUnknown,
}

var typeNames = [...]string{
	TypeCorner:        "Corner",
	TypeVoltageSource: "Voltage generator",
	TypeResistor:      "Resistance",
	TypeInductor:      "Inductor",
	TypeCurrentSource: "Current generator",
	TypeCapacitor:     "Capacitor",
	TypeNothing:       "Nothing",
	TypeUnknown:       "Something",
}

// Valid reports whether c is a known class id.
func (c Class) Valid() bool {
	return c >= 0 && c < NumClasses
}

// Type returns the type of c. Invalid ids report TypeUnknown.
func (c Class) Type() Type {
	if !c.Valid() {
		return TypeUnknown
	}
	return typeOf[c]
}

// String returns "<type>#<index within type>", e.g. "Resistance#1".
func (c Class) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Class(%d)", int(c))
	}
	return fmt.Sprintf("%s#%d", c.Type(), IndexWithinType(c))
}

// Valid reports whether t is one of the eight types.
func (t Type) Valid() bool {
	return t >= TypeCorner && t <= TypeUnknown
}

// Learned reports whether t is one of the types a detector predicts.
func (t Type) Learned() bool {
	return t >= TypeCorner && t < LearnedTypes
}

// String returns the display name of t.
func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// TypeOf returns the type of c.
func TypeOf(c Class) Type { return c.Type() }

// IsObject reports whether c labels an object, i.e. c is not ClassNothing.
func IsObject(c Class) bool { return c != ClassNothing }

// IsUnknown reports whether c is the unknown-object class.
func IsUnknown(c Class) bool { return c == ClassUnknown }

// Canonical returns the lowest class id of t.
func Canonical(t Type) Class {
	if !t.Valid() {
		return ClassUnknown
	}
	return canonical[t]
}

// IndexWithinType returns the offset of c from its type's canonical class.
func IndexWithinType(c Class) int {
	return int(c - Canonical(c.Type()))
}

// Types returns the learned types in grid channel order.
func Types() []Type {
	ts := make([]Type, LearnedTypes)
	for i := range ts {
		ts[i] = Type(i)
	}
	return ts
}

// ============================================================================
// Orientation remapping
// ============================================================================

// rotationCycles lists classes that are successive 90 degree rotations of the
// same symbol.
var rotationCycles = [][]Class{
	{0, 1, 2, 3},
	{4, 7, 5, 6},
	{9, 10, 11, 12},
	{13, 14},
	{15, 16},
	{17, 18, 19, 20},
	{21, 22},
}

// cycleOf[c] indexes rotationCycles, -1 when c has no cycle.
// positionOf[c] is the position of c within its cycle.
var cycleOf, positionOf = buildCycleIndex()

func buildCycleIndex() (cycle, pos [NumClasses]int) {
	for i := range cycle {
		cycle[i] = -1
	}
	for ci, cyc := range rotationCycles {
		for p, c := range cyc {
			cycle[c] = ci
			pos[c] = p
		}
	}
	return cycle, pos
}

var (
	horizontalPairs = [][2]Class{{0, 1}, {2, 3}, {4, 5}, {10, 12}, {18, 20}}
	verticalPairs   = [][2]Class{{0, 3}, {1, 2}, {6, 7}, {9, 11}, {17, 19}}

	horizontalSwap = buildSwap(horizontalPairs)
	verticalSwap   = buildSwap(verticalPairs)
)

func buildSwap(pairs [][2]Class) [NumClasses]Class {
	var swap [NumClasses]Class
	for i := range swap {
		swap[i] = Class(i)
	}
	for _, p := range pairs {
		swap[p[0]] = p[1]
		swap[p[1]] = p[0]
	}
	return swap
}

// RotationStep converts an angle in radians into a number of quarter turns.
// The angle is normalized into [0, 2π). Open sectors (π/4, 3π/4),
// (3π/4, 5π/4) and (5π/4, 7π/4) give 1, 2 and 3; everything else, including
// the sector edges, gives 0.
func RotationStep(radians float64) int {
	r := math.Mod(radians, 2*math.Pi)
	if r < 0 {
		r += 2 * math.Pi
	}
	switch {
	case r > math.Pi/4 && r < 3*math.Pi/4:
		return 1
	case r > 3*math.Pi/4 && r < 5*math.Pi/4:
		return 2
	case r > 5*math.Pi/4 && r < 7*math.Pi/4:
		return 3
	default:
		return 0
	}
}

// Rotate returns the class of c after the drawing was rotated by radians.
// Classes outside every rotation cycle are returned unchanged.
func Rotate(c Class, radians float64) Class {
	if !c.Valid() || cycleOf[c] < 0 {
		return c
	}
	cyc := rotationCycles[cycleOf[c]]
	return cyc[(positionOf[c]+RotationStep(radians))%len(cyc)]
}

// FlipHorizontal returns the class of c after a left-right mirror.
func FlipHorizontal(c Class) Class {
	if !c.Valid() {
		return c
	}
	return horizontalSwap[c]
}

// FlipVertical returns the class of c after a top-bottom mirror.
func FlipVertical(c Class) Class {
	if !c.Valid() {
		return c
	}
	return verticalSwap[c]
}
