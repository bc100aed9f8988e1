package vectorindex

import (
	"fmt"
)

// filterKind discriminates the closed set of filter variants. Keeping the
// set closed lets query building switch exhaustively instead of inspecting
// untyped maps.
type filterKind int

const (
	filterEq filterKind = iota
	filterMin
	filterMax
	filterIn
)

// Filter is one metadata predicate. A filter list is a conjunction.
type Filter struct {
	kind   filterKind
	field  string
	value  any
	values []any
	bound  float64
}

// Eq matches rows whose metadata field equals value.
func Eq(field string, value any) Filter {
	return Filter{kind: filterEq, field: field, value: value}
}

// Min matches rows whose numeric metadata field is >= n.
func Min(field string, n float64) Filter {
	return Filter{kind: filterMin, field: field, bound: n}
}

// Max matches rows whose numeric metadata field is <= n.
func Max(field string, n float64) Filter {
	return Filter{kind: filterMax, field: field, bound: n}
}

// In matches rows whose metadata field equals any of values.
func In(field string, values ...any) Filter {
	return Filter{kind: filterIn, field: field, values: values}
}

// Field returns the metadata field the filter addresses.
func (f Filter) Field() string {
	return f.field
}

// Matches evaluates the filter against a metadata map. Rows missing the
// field never match.
func (f Filter) Matches(meta map[string]any) bool {
	raw, ok := meta[f.field]
	if !ok {
		return false
	}

	switch f.kind {
	case filterEq:
		return equalValues(raw, f.value)
	case filterMin:
		n, ok := toFloat(raw)
		return ok && n >= f.bound
	case filterMax:
		n, ok := toFloat(raw)
		return ok && n <= f.bound
	case filterIn:
		for _, v := range f.values {
			if equalValues(raw, v) {
				return true
			}
		}
		return false
	}
	return false
}

// equalValues compares numerically when both sides are numbers (JSON
// round-trips turn ints into float64), otherwise by printed form.
func equalValues(a, b any) bool {
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			return af == bf
		}
		return false
	}
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// referencesSkillFlag reports whether any filter addresses the
// is_skill_vector field, which switches off the default exclusion of skill
// rows from job searches.
func referencesSkillFlag(filters []Filter) bool {
	for _, f := range filters {
		if f.field == MetaIsSkillVector {
			return true
		}
	}
	return false
}
