// Package clean implements the per-entity normalizers. Each normalizer takes
// the raw extract records for one entity, applies that entity's
// deduplication and field-cleaning policy, and emits typed rows with fresh
// dense surrogate keys.
//
// Field-level policy is uniform: a malformed value (bad phone, bad date,
// bad number) degrades to absent and the row is kept. Nothing here returns
// an error for data content; only structural failures (a missing extract)
// abort an entity, and those are handled upstream.
package clean

// Stats summarizes one entity's normalization for logging and metrics.
type Stats struct {
	// In is the record count entering normalization.
	In int
	// Out is the count surviving deduplication.
	Out int
	// DroppedDuplicates is In - Out.
	DroppedDuplicates int
	// DegradedFields counts values that failed parsing and became absent.
	DegradedFields int
}

func (s *Stats) settle(in, out int) {
	s.In = in
	s.Out = out
	s.DroppedDuplicates = in - out
}
