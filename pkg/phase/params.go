package phase

import (
	"errors"
	"fmt"
)

// ErrInvalidParams is the sentinel wrapped by SetParams rejections:
// an Enum value outside its options, a Bool/Text value of the wrong
// Go type, or a non-numeric Float/Int value. Numeric Float and Int
// values out of range are clamped instead of rejected.
var ErrInvalidParams = errors.New("phase: invalid parameter value")

// ParamType identifies the shape a ParamDef's value must take.
type ParamType int

const (
	ParamFloat ParamType = iota
	ParamInt
	ParamBool
	ParamText
	ParamEnum
)

func (t ParamType) String() string {
	switch t {
	case ParamFloat:
		return "Float"
	case ParamInt:
		return "Int"
	case ParamBool:
		return "Bool"
	case ParamText:
		return "Text"
	case ParamEnum:
		return "Enum"
	default:
		return "Unknown"
	}
}

// ParamDef describes one entry in a phase's parameter schema. Min/Max
// apply to Float and Int; EnumOptions applies to Enum. Group is an
// optional display label a host UI may use to cluster related params.
type ParamDef struct {
	Key         string
	DisplayName string
	Description string
	Type        ParamType
	Min, Max    float64
	EnumOptions []string
	Default     any
	Group       string
}

// Params is a phase's live parameter value set, keyed by ParamDef.Key.
type Params map[string]any

// Clone returns a shallow copy, used so SetParams can validate against a
// scratch copy before committing (no partial updates on rejection).
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// ValidateAndClamp checks candidate against defs and returns a new Params
// with Float/Int values clamped into range. Enum values outside their
// options, Bool/Text values of the wrong Go type, and non-numeric
// Float/Int values are rejected
// outright — the caller's prior Params are left untouched since this
// function never mutates candidate or defs.
func ValidateAndClamp(defs []ParamDef, candidate Params) (Params, error) {
	out := make(Params, len(candidate))
	for k, v := range candidate {
		out[k] = v
	}

	for _, def := range defs {
		v, present := candidate[def.Key]
		if !present {
			continue
		}
		switch def.Type {
		case ParamFloat:
			f, ok := toFloat(v)
			if !ok {
				return nil, fmt.Errorf("%w: %q expects a float, got %T", ErrInvalidParams, def.Key, v)
			}
			out[def.Key] = clampFloat(f, def.Min, def.Max)
		case ParamInt:
			i, ok := toInt(v)
			if !ok {
				return nil, fmt.Errorf("%w: %q expects an int, got %T", ErrInvalidParams, def.Key, v)
			}
			out[def.Key] = clampInt(i, int(def.Min), int(def.Max))
		case ParamBool:
			if _, ok := v.(bool); !ok {
				return nil, fmt.Errorf("%w: %q expects a bool, got %T", ErrInvalidParams, def.Key, v)
			}
		case ParamText:
			if _, ok := v.(string); !ok {
				return nil, fmt.Errorf("%w: %q expects a string, got %T", ErrInvalidParams, def.Key, v)
			}
		case ParamEnum:
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %q expects a string enum value, got %T", ErrInvalidParams, def.Key, v)
			}
			if !contains(def.EnumOptions, s) {
				return nil, fmt.Errorf("%w: %q value %q not in %v", ErrInvalidParams, def.Key, s, def.EnumOptions)
			}
		}
	}
	return out, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func contains(options []string, s string) bool {
	for _, o := range options {
		if o == s {
			return true
		}
	}
	return false
}
