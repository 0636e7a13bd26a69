package section

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the value kind of a field. The set is closed: every consumer that
// switches on Kind handles exactly these four variants.
type Kind int

const (
	Boolean Kind = iota
	Enum
	RangedInt
	RangedFloat

	kindCount
)

// Kinds returns every defined kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, int(kindCount))
	for k := Boolean; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// String returns the canonical registry name for the kind.
func (k Kind) String() string {
	switch k {
	case Boolean:
		return "bool"
	case Enum:
		return "enum"
	case RangedInt:
		return "int"
	case RangedFloat:
		return "float"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return k >= Boolean && k < kindCount
}

// Ranged reports whether the kind renders as a continuous control paired with
// a numeric readout.
func (k Kind) Ranged() bool {
	return k == RangedInt || k == RangedFloat
}

// ParseKind accepts both the canonical names and the control names used by
// web front ends (checkbox, select, range-num-int, range-num-float).
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bool", "boolean", "checkbox", "toggle":
		return Boolean, nil
	case "enum", "select", "choice":
		return Enum, nil
	case "int", "integer", "range-num-int":
		return RangedInt, nil
	case "float", "number", "range-num-float":
		return RangedFloat, nil
	default:
		return 0, fmt.Errorf("unknown field kind %q", name)
	}
}

// Parse converts raw control input into a typed value for this kind.
// RangedInt input with a fractional part is truncated toward zero.
func (k Kind) Parse(raw string) (any, error) {
	trimmed := strings.TrimSpace(raw)
	switch k {
	case Boolean:
		v, err := strconv.ParseBool(trimmed)
		if err != nil {
			return nil, fmt.Errorf("parse bool %q: %w", raw, err)
		}
		return v, nil
	case Enum:
		return raw, nil
	case RangedInt:
		if v, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return v, nil
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("parse int %q: invalid number", raw)
		}
		return int64(f), nil
	case RangedFloat:
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("parse float %q: invalid number", raw)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("parse %q: %s", raw, k)
	}
}

// Format renders a remote value the way a text control displays it.
func Format(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return fmt.Sprint(val)
	}
}

// Truthy mirrors loose truthiness for values written into a toggle.
func Truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case json.Number:
		f, err := val.Float64()
		return err == nil && f != 0 && !math.IsNaN(f)
	case float64:
		return val != 0 && !math.IsNaN(val)
	case int:
		return val != 0
	case int64:
		return val != 0
	default:
		return true
	}
}
