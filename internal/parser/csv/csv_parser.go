// Package csv turns a raw extract stream into records. Extracts are small
// enough to materialize fully (the pipeline is a single batch per run), so
// the parser reads the whole input and returns one record per data row.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"fleximart/pkg/records"
)

// Options configures parsing. Zero values give a comma-delimited file with a
// header row and trimmed cells.
type Options struct {
	// Comma is the field delimiter; ',' when zero.
	Comma rune

	// HeaderMap renames source headers to canonical field names. Headers
	// without an entry are kept as-is (trimmed).
	HeaderMap map[string]string
}

// Parser parses one CSV extract per Parse call. Safe to reuse, not safe for
// concurrent use.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

const utf8BOM = "\uFEFF"

// Parse reads the entire input and returns one Record per data row, keyed by
// canonical header name. Empty cells become nil values so downstream stages
// see an explicit absent, never "". Rows shorter than the header are padded
// with nils; longer rows have their extra cells ignored.
func (p *Parser) Parse(r io.Reader) ([]records.Record, error) {
	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	fields := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		h = strings.TrimSpace(h)
		if mapped, ok := p.opt.HeaderMap[h]; ok && mapped != "" {
			h = mapped
		}
		fields[i] = h
	}

	var out []records.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(out)+2, err)
		}
		rec := make(records.Record, len(fields))
		for i, f := range fields {
			if f == "" {
				continue
			}
			if i >= len(row) {
				rec[f] = nil
				continue
			}
			cell := strings.TrimSpace(row[i])
			if cell == "" {
				rec[f] = nil
			} else {
				rec[f] = cell
			}
		}
		out = append(out, rec)
	}
	return out, nil
}
