// Package builtin contains the generic, reusable transformers shared by all
// three extract pipelines.
//
// DeDup collapses duplicate records before any keys are assigned. Two modes
// cover the pipeline's needs:
//
//   - Keys set: duplicates share the same value on those fields (the
//     customer natural key); the first occurrence wins.
//   - Keys empty: duplicates are exact copies across every field (products,
//     sales); again the first occurrence wins.
//
// Both modes are stable (survivors keep their input order), which is what
// makes surrogate key assignment downstream deterministic. Running DeDup on
// an already-deduplicated batch returns it unchanged.
package builtin

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zeebo/xxh3"

	"fleximart/pkg/records"
)

// DeDup removes duplicate records, keeping the first occurrence.
type DeDup struct {
	// Keys are the fields forming the identity of a record. Empty means the
	// whole record (every field) is the identity.
	Keys []string
}

// Apply returns the surviving records in input order.
func (d DeDup) Apply(in []records.Record) []records.Record {
	if len(in) == 0 {
		return in
	}
	seen := make(map[uint64]struct{}, len(in))
	out := make([]records.Record, 0, len(in))
	for _, r := range in {
		k, ok := d.keyOf(r)
		if !ok {
			// Record is missing a key field entirely; it has no identity to
			// collapse on, so it passes through.
			out = append(out, r)
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}

// keyOf hashes the identity fields into a single comparable key. Values are
// stabilized to strings first; nil hashes distinctly from "".
func (d DeDup) keyOf(r records.Record) (uint64, bool) {
	fields := d.Keys
	if len(fields) == 0 {
		fields = make([]string, 0, len(r))
		for k := range r {
			fields = append(fields, k)
		}
		sort.Strings(fields)
	}
	var b strings.Builder
	for _, f := range fields {
		v, present := r[f]
		if !present && len(d.Keys) > 0 {
			return 0, false
		}
		b.WriteString(f)
		b.WriteByte('\x1f')
		switch t := v.(type) {
		case nil:
			b.WriteByte('\x00')
		case string:
			b.WriteString(t)
		default:
			b.WriteString(fmt.Sprint(t))
		}
		b.WriteByte('\x1e')
	}
	return xxh3.HashString(b.String()), true
}
