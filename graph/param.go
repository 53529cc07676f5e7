package graph

import (
	"slices"

	"golang.org/x/exp/maps"
)

// ParamBag holds one node's parameters. Reads are exported; every write goes
// through Graph.SetParam so the owning node's param version moves in step
// with its contents.
type ParamBag struct {
	values map[string]Value
}

func newParamBag() *ParamBag {
	return &ParamBag{values: make(map[string]Value)}
}

// Get returns the value stored under key.
func (p *ParamBag) Get(key string) (Value, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Has reports whether key is present.
func (p *ParamBag) Has(key string) bool {
	_, ok := p.values[key]
	return ok
}

// Len reports the number of parameters.
func (p *ParamBag) Len() int { return len(p.values) }

// Keys returns all parameter names, sorted.
func (p *ParamBag) Keys() []string {
	keys := maps.Keys(p.values)
	slices.Sort(keys)
	return keys
}

// FloatOr returns the float under key, or fallback when the key is absent or
// holds a different kind.
func (p *ParamBag) FloatOr(key string, fallback float64) float64 {
	if v, ok := p.values[key]; ok {
		if f, ok := v.Float(); ok {
			return f
		}
	}
	return fallback
}

// IntOr returns the int under key, or fallback.
func (p *ParamBag) IntOr(key string, fallback int64) int64 {
	if v, ok := p.values[key]; ok {
		if i, ok := v.Int(); ok {
			return i
		}
	}
	return fallback
}

// BoolOr returns the bool under key, or fallback.
func (p *ParamBag) BoolOr(key string, fallback bool) bool {
	if v, ok := p.values[key]; ok {
		if b, ok := v.Bool(); ok {
			return b
		}
	}
	return fallback
}

// Vec2Or returns the vec2 under key, or fallback.
func (p *ParamBag) Vec2Or(key string, fallback Vec2) Vec2 {
	if v, ok := p.values[key]; ok {
		if vec, ok := v.Vec2(); ok {
			return vec
		}
	}
	return fallback
}

// Vec3Or returns the vec3 under key, or fallback.
func (p *ParamBag) Vec3Or(key string, fallback Vec3) Vec3 {
	if v, ok := p.values[key]; ok {
		if vec, ok := v.Vec3(); ok {
			return vec
		}
	}
	return fallback
}

// StringOr returns the string under key, or fallback.
func (p *ParamBag) StringOr(key, fallback string) string {
	if v, ok := p.values[key]; ok {
		if s, ok := v.Str(); ok {
			return s
		}
	}
	return fallback
}

func (p *ParamBag) set(key string, v Value) {
	p.values[key] = v
}
