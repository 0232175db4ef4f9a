package reactor

// Flavor identifies how a reactive wrapper was constructed: whether it permits
// mutation and whether it wraps nested containers reactively. Flavor is fixed
// for the lifetime of a wrapper.
type Flavor int

const (
	// MutableDeep wraps the target for both reads and writes; nested eligible
	// containers returned from reads are themselves wrapped MutableDeep.
	MutableDeep Flavor = iota
	// MutableShallow wraps the target for both reads and writes; nested
	// containers are returned raw, unwrapped.
	MutableShallow
	// ReadonlyDeep wraps the target for reads only; writes are refused.
	// Nested containers are wrapped ReadonlyDeep.
	ReadonlyDeep
	// ReadonlyShallow wraps the target for reads only; nested containers are
	// returned raw, unwrapped.
	ReadonlyShallow
)

// Readonly reports whether writes through this flavor are refused.
func (f Flavor) Readonly() bool {
	return f == ReadonlyDeep || f == ReadonlyShallow
}

// Shallow reports whether nested containers are left unwrapped.
func (f Flavor) Shallow() bool {
	return f == MutableShallow || f == ReadonlyShallow
}

// String renders the flavor name for debug output and metric labels.
func (f Flavor) String() string {
	switch f {
	case MutableDeep:
		return "mutable-deep"
	case MutableShallow:
		return "mutable-shallow"
	case ReadonlyDeep:
		return "readonly-deep"
	case ReadonlyShallow:
		return "readonly-shallow"
	default:
		return "unknown"
	}
}
