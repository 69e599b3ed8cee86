package builtin

import (
	"strings"

	"fleximart/pkg/records"
)

// Trim canonicalizes string values in place: non-breaking spaces become
// regular spaces and surrounding whitespace is removed. A value trimmed to
// "" becomes nil so later stages see an explicit absent.
type Trim struct{}

func (Trim) Apply(in []records.Record) []records.Record {
	for _, r := range in {
		for k, v := range r {
			s, ok := v.(string)
			if !ok {
				continue
			}
			s = strings.TrimSpace(strings.ReplaceAll(s, "\u00a0", " "))
			if s == "" {
				r[k] = nil
			} else {
				r[k] = s
			}
		}
	}
	return in
}
