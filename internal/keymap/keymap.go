// Package keymap builds the natural-key → surrogate-key lookups used to
// rewrite references in the sales extract. A KeyMap is a pure function of
// one normalized record set: every source_id present after dedup maps to
// exactly one surrogate, and nothing else maps at all. It is built once and
// read-only for the rest of the run.
package keymap

// KeyMap translates one entity's natural keys into surrogate keys.
type KeyMap struct {
	m map[string]int64
}

// Pair is one (natural key, surrogate key) association.
type Pair struct {
	SourceID  string
	Surrogate int64
}

// Build constructs a KeyMap from the normalized set's key pairs. Later
// duplicates of the same natural key are ignored; normalization upstream
// guarantees there are none.
func Build(pairs []Pair) KeyMap {
	m := make(map[string]int64, len(pairs))
	for _, p := range pairs {
		if p.SourceID == "" {
			continue
		}
		if _, exists := m[p.SourceID]; exists {
			continue
		}
		m[p.SourceID] = p.Surrogate
	}
	return KeyMap{m: m}
}

// Resolve returns the surrogate key for natural, or ok=false when the key is
// unknown. Unknown keys are an expected outcome, not an error: the caller
// decides whether an unresolved reference is tolerated or dropped.
func (k KeyMap) Resolve(natural string) (int64, bool) {
	s, ok := k.m[natural]
	return s, ok
}

// Len reports how many natural keys are mapped.
func (k KeyMap) Len() int { return len(k.m) }
