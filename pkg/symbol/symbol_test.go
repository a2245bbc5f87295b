package symbol

import (
	"math"
	"testing"
)

func TestTypeOf(t *testing.T) {
	tests := []struct {
		class Class
		want  Type
	}{
		{0, TypeCorner},
		{8, TypeCorner},
		{9, TypeVoltageSource},
		{12, TypeVoltageSource},
		{13, TypeResistor},
		{14, TypeResistor},
		{15, TypeInductor},
		{16, TypeInductor},
		{17, TypeCurrentSource},
		{20, TypeCurrentSource},
		{21, TypeCapacitor},
		{22, TypeCapacitor},
		{23, TypeNothing},
		{24, TypeUnknown},
		{-1, TypeUnknown},
		{25, TypeUnknown},
	}

	for _, tt := range tests {
		if got := TypeOf(tt.class); got != tt.want {
			t.Errorf("TypeOf(%d) = %v, want %v", tt.class, got, tt.want)
		}
	}
}

func TestTypeMappingIsTotal(t *testing.T) {
	for c := Class(0); c < NumClasses; c++ {
		typ := TypeOf(c)
		if !typ.Valid() {
			t.Errorf("TypeOf(%d) = %v, not a valid type", c, typ)
		}
		if Canonical(typ) > c {
			t.Errorf("Canonical(%v) = %d, greater than member %d", typ, Canonical(typ), c)
		}
	}
}

func TestCanonicalAndIndex(t *testing.T) {
	tests := []struct {
		class     Class
		canonical Class
		index     int
	}{
		{0, 0, 0},
		{7, 0, 7},
		{11, 9, 2},
		{14, 13, 1},
		{16, 15, 1},
		{20, 17, 3},
		{21, 21, 0},
		{23, 23, 0},
		{24, 24, 0},
	}

	for _, tt := range tests {
		if got := Canonical(TypeOf(tt.class)); got != tt.canonical {
			t.Errorf("Canonical(TypeOf(%d)) = %d, want %d", tt.class, got, tt.canonical)
		}
		if got := IndexWithinType(tt.class); got != tt.index {
			t.Errorf("IndexWithinType(%d) = %d, want %d", tt.class, got, tt.index)
		}
	}
}

func TestIsObject(t *testing.T) {
	if IsObject(ClassNothing) {
		t.Error("IsObject(ClassNothing) = true, want false")
	}
	if !IsObject(ClassUnknown) {
		t.Error("IsObject(ClassUnknown) = false, want true")
	}
	if !IsUnknown(ClassUnknown) {
		t.Error("IsUnknown(ClassUnknown) = false, want true")
	}
	if IsUnknown(13) {
		t.Error("IsUnknown(13) = true, want false")
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		class Class
		want  string
	}{
		{0, "Corner#0"},
		{14, "Resistance#1"},
		{19, "Current generator#2"},
		{23, "Nothing#0"},
		{24, "Something#0"},
		{99, "Class(99)"},
	}

	for _, tt := range tests {
		if got := tt.class.String(); got != tt.want {
			t.Errorf("Class(%d).String() = %q, want %q", int(tt.class), got, tt.want)
		}
	}
}

func TestRotationStep(t *testing.T) {
	tests := []struct {
		name string
		rad  float64
		want int
	}{
		{"zero", 0, 0},
		{"small", 0.2, 0},
		{"quarter", math.Pi / 2, 1},
		{"half", math.Pi, 2},
		{"three quarters", 3 * math.Pi / 2, 3},
		{"full", 2 * math.Pi, 0},
		{"negative quarter", -math.Pi / 2, 3},
		{"edge pi/4", math.Pi / 4, 0},
		{"edge 3pi/4", 3 * math.Pi / 4, 0},
		{"multiple turns", 4*math.Pi + math.Pi/2, 1},
		{"large negative", -3 * math.Pi, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RotationStep(tt.rad); got != tt.want {
				t.Errorf("RotationStep(%v) = %d, want %d", tt.rad, got, tt.want)
			}
		})
	}
}

func TestRotateResistor(t *testing.T) {
	once := Rotate(13, math.Pi/2)
	if once != 14 {
		t.Fatalf("Rotate(13, π/2) = %d, want 14", once)
	}
	if twice := Rotate(once, math.Pi/2); twice != 13 {
		t.Errorf("Rotate(14, π/2) = %d, want 13", twice)
	}
}

func TestRotateCycles(t *testing.T) {
	tests := []struct {
		class Class
		quart Class
		half  Class
	}{
		{0, 1, 2},
		{3, 0, 1},
		{4, 7, 5},
		{6, 4, 7},
		{9, 10, 11},
		{12, 9, 10},
		{17, 18, 19},
		{21, 22, 21},
		{8, 8, 8},
		{23, 23, 23},
		{24, 24, 24},
	}

	for _, tt := range tests {
		if got := Rotate(tt.class, math.Pi/2); got != tt.quart {
			t.Errorf("Rotate(%d, π/2) = %d, want %d", tt.class, got, tt.quart)
		}
		if got := Rotate(tt.class, math.Pi); got != tt.half {
			t.Errorf("Rotate(%d, π) = %d, want %d", tt.class, got, tt.half)
		}
	}
}

func TestRotateFullTurnIsIdentity(t *testing.T) {
	for _, cyc := range rotationCycles {
		for _, c := range cyc {
			got := c
			for i := 0; i < len(cyc); i++ {
				got = Rotate(got, math.Pi/2)
			}
			if got != c {
				t.Errorf("rotating %d through its cycle = %d, want %d", c, got, c)
			}
		}
	}
}

func TestFlipInvolution(t *testing.T) {
	for c := Class(0); c < NumClasses; c++ {
		if got := FlipHorizontal(FlipHorizontal(c)); got != c {
			t.Errorf("FlipHorizontal twice(%d) = %d", c, got)
		}
		if got := FlipVertical(FlipVertical(c)); got != c {
			t.Errorf("FlipVertical twice(%d) = %d", c, got)
		}
	}
}

func TestFlipTables(t *testing.T) {
	tests := []struct {
		class Class
		h, v  Class
	}{
		{0, 1, 3},
		{1, 0, 2},
		{2, 3, 1},
		{3, 2, 0},
		{4, 5, 4},
		{6, 6, 7},
		{8, 8, 8},
		{9, 9, 11},
		{10, 12, 10},
		{13, 13, 13},
		{17, 17, 19},
		{18, 20, 18},
		{22, 22, 22},
	}

	for _, tt := range tests {
		if got := FlipHorizontal(tt.class); got != tt.h {
			t.Errorf("FlipHorizontal(%d) = %d, want %d", tt.class, got, tt.h)
		}
		if got := FlipVertical(tt.class); got != tt.v {
			t.Errorf("FlipVertical(%d) = %d, want %d", tt.class, got, tt.v)
		}
	}
}

func TestTypes(t *testing.T) {
	ts := Types()
	if len(ts) != LearnedTypes {
		t.Fatalf("len(Types()) = %d, want %d", len(ts), LearnedTypes)
	}
	for i, typ := range ts {
		if !typ.Learned() {
			t.Errorf("Types()[%d] = %v, not learned", i, typ)
		}
	}
	if TypeNothing.Learned() || TypeUnknown.Learned() {
		t.Error("sentinel types must not be learned")
	}
}
