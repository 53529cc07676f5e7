package graph

import (
	"fmt"
	"strconv"
)

// ValueKind discriminates the payload held by a Value.
type ValueKind uint8

const (
	KindFloat ValueKind = iota
	KindInt
	KindBool
	KindVec2
	KindVec3
	KindString
)

func (k ValueKind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindVec2:
		return "vec2"
	case KindVec3:
		return "vec3"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Vec2 is a two-component vector payload.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a three-component vector payload.
type Vec3 struct {
	X, Y, Z float64
}

// Value is a tagged parameter value. Values are comparable with ==: two
// values are equal when kind and payload match. The zero Value is the
// float 0.
type Value struct {
	kind ValueKind
	f    float64
	i    int64
	b    bool
	v2   Vec2
	v3   Vec3
	s    string
}

// NewFloat builds a float Value.
func NewFloat(f float64) Value { return Value{kind: KindFloat, f: f} }

// NewInt builds an int Value.
func NewInt(i int64) Value { return Value{kind: KindInt, i: i} }

// NewBool builds a bool Value.
func NewBool(b bool) Value { return Value{kind: KindBool, b: b} }

// NewVec2 builds a vec2 Value.
func NewVec2(x, y float64) Value { return Value{kind: KindVec2, v2: Vec2{X: x, Y: y}} }

// NewVec3 builds a vec3 Value.
func NewVec3(x, y, z float64) Value { return Value{kind: KindVec3, v3: Vec3{X: x, Y: y, Z: z}} }

// NewString builds a string Value.
func NewString(s string) Value { return Value{kind: KindString, s: s} }

// Kind reports which payload the value holds.
func (v Value) Kind() ValueKind { return v.kind }

// Float returns the payload if the value is a float.
func (v Value) Float() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.f, true
}

// Int returns the payload if the value is an int.
func (v Value) Int() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// Bool returns the payload if the value is a bool.
func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Vec2 returns the payload if the value is a vec2.
func (v Value) Vec2() (Vec2, bool) {
	if v.kind != KindVec2 {
		return Vec2{}, false
	}
	return v.v2, true
}

// Vec3 returns the payload if the value is a vec3.
func (v Value) Vec3() (Vec3, bool) {
	if v.kind != KindVec3 {
		return Vec3{}, false
	}
	return v.v3, true
}

// Str returns the payload if the value is a string.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// String renders the value for logs and error messages.
func (v Value) String() string {
	switch v.kind {
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindVec2:
		return fmt.Sprintf("(%g, %g)", v.v2.X, v.v2.Y)
	case KindVec3:
		return fmt.Sprintf("(%g, %g, %g)", v.v3.X, v.v3.Y, v.v3.Z)
	case KindString:
		return strconv.Quote(v.s)
	default:
		return "<invalid>"
	}
}
