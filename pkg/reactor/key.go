package reactor

// Key identifies one trackable slot on a Target. Concrete keys are whatever
// comparable value a container uses natively — a struct field name (string),
// a sequence index (int), a map key (K), or one of the sentinel keys below.
// Key is declared as any so every container's native key type can be used
// directly as a Registry dependency-index key without boxing conversions.
type Key = any

// iterateKey and mapKeyIterateKey are distinct unexported types so that
// Iterate and MapKeyIterate can never collide with a caller-supplied key,
// no matter what comparable type that key happens to be.
type iterateKey struct{}
type mapKeyIterateKey struct{}

// Iterate is the sentinel key standing for "the whole-container enumeration
// was read" — iterating a record's fields, a sequence, a set, or a map's
// entries all track this key.
var Iterate Key = iterateKey{}

// MapKeyIterate is the sentinel key standing for "only the keys of a keyed
// map were enumerated" (as opposed to its values or entries).
var MapKeyIterate Key = mapKeyIterateKey{}

// LengthKey is the literal key used for a sequence's length slot.
const LengthKey = "length"
