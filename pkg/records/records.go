// Package records defines the loosely-typed record shape shared by the
// extract and transform stages. A Record maps canonical column names to raw
// values: strings as read from the source, or nil when the cell was empty.
//
// Absent values are represented as nil (or a missing key), never as a
// sentinel string. The typed accessors return (value, ok) pairs so callers
// can distinguish "present and parseable" from everything else.
package records

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Record is one row of a source extract keyed by canonical field name.
type Record map[string]any

// String returns the string value for field. ok is false when the field is
// missing, nil, or blank after trimming.
func (r Record) String(field string) (string, bool) {
	v, exists := r[field]
	if !exists || v == nil {
		return "", false
	}
	s, isStr := v.(string)
	if !isStr {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}

// Int returns the integer value for field, accepting already-typed ints and
// numeric strings (including decimal strings like "12.0" that denote whole
// numbers, which CSV extracts of spreadsheet data commonly carry).
func (r Record) Int(field string) (int64, bool) {
	v, exists := r[field]
	if !exists || v == nil {
		return 0, false
	}
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int64:
		return t, true
	case float64:
		return int64(t), true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int64(f), true
		}
	}
	return 0, false
}

// Decimal returns the decimal value for field. Strings are parsed exactly;
// no float round-trip is involved, so "499.00" stays 499.00.
func (r Record) Decimal(field string) (decimal.Decimal, bool) {
	v, exists := r[field]
	if !exists || v == nil {
		return decimal.Decimal{}, false
	}
	switch t := v.(type) {
	case decimal.Decimal:
		return t, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return decimal.Decimal{}, false
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	}
	return decimal.Decimal{}, false
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// MissingCount reports how many of the given fields are absent, nil, or
// blank. The data-quality report uses this to mirror the raw extract's
// missing-cell tally.
func MissingCount(recs []Record, fields []string) int {
	n := 0
	for _, r := range recs {
		for _, f := range fields {
			if _, ok := r.String(f); !ok {
				n++
			}
		}
	}
	return n
}
