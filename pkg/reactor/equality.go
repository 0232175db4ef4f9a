package reactor

import (
	"math"
	"reflect"
)

// changed reports whether new differs from old under NaN-aware equality
// (spec "No spurious trigger" invariant, §8.3): two floats that are both NaN
// compare equal here, even though Go's == never does, so that writing NaN
// over an existing NaN does not re-fire SET forever. Every other comparison
// falls back to reflect.DeepEqual, mirroring the teacher's deepEqual/
// hasChanged pair (pkg/bubbly/deep.go) generalized from a type parameter to
// `any`, since Record/MapC/SetC/List store values behind reflection and an
// `any` interface rather than a concrete T.
func changed(old, new any) bool {
	if of, ok := asFloat(old); ok {
		if nf, ok := asFloat(new); ok {
			if math.IsNaN(of) && math.IsNaN(nf) {
				return false
			}
			return of != nf
		}
	}
	return !reflect.DeepEqual(old, new)
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float32:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}
