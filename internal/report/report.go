// Package report renders and appends the per-run data-quality report. The
// report file is an audit log: blocks are only ever appended, never
// overwritten, so history across runs is preserved.
package report

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Entity summarizes one extract's journey through the pipeline. Counts are
// measured against the raw extract (processed, duplicates, missing) and the
// sink (loaded).
type Entity struct {
	Processed  int
	Duplicates int
	Missing    int
	Loaded     int64

	// FailReason is set when the entity's pipeline aborted (e.g. the
	// extract file was missing); its counts are then zero.
	FailReason string
}

// Summary is one run's full report.
type Summary struct {
	GeneratedAt time.Time
	Customers   Entity
	Products    Entity
	Sales       Entity

	// OrdersLoaded and ItemsLoaded are the two entities derived from the
	// sales extract; Sales.Loaded stays zero.
	OrdersLoaded int64
	ItemsLoaded  int64
}

// Render produces the human-readable report block.
func Render(s Summary) string {
	var b strings.Builder
	b.WriteString("\n================================\n")
	b.WriteString("DATA QUALITY REPORT\n")
	fmt.Fprintf(&b, "Generated: %s\n", s.GeneratedAt.Format("2006-01-02 15:04:05"))
	b.WriteString("================================\n\n")

	writeEntity(&b, "1. CUSTOMERS FILE", s.Customers, [][2]string{
		{"Records Loaded to DB", fmt.Sprint(s.Customers.Loaded)},
	})
	writeEntity(&b, "2. PRODUCTS FILE", s.Products, [][2]string{
		{"Records Loaded to DB", fmt.Sprint(s.Products.Loaded)},
	})
	writeEntity(&b, "3. SALES FILE (Orders & Items)", s.Sales, [][2]string{
		{"Unique Orders Loaded", fmt.Sprint(s.OrdersLoaded)},
		{"Line Items Loaded", fmt.Sprint(s.ItemsLoaded)},
	})
	return b.String()
}

func writeEntity(b *strings.Builder, title string, e Entity, loaded [][2]string) {
	fmt.Fprintf(b, "%s\n", title)
	if e.FailReason != "" {
		fmt.Fprintf(b, "   - Status:                  FAILED (%s)\n\n", e.FailReason)
		return
	}
	fmt.Fprintf(b, "   - Records Processed:       %d\n", e.Processed)
	fmt.Fprintf(b, "   - Duplicates (in raw):     %d\n", e.Duplicates)
	fmt.Fprintf(b, "   - Missing Values Handled:  %d\n", e.Missing)
	for _, kv := range loaded {
		fmt.Fprintf(b, "   - %-24s %s\n", kv[0]+":", kv[1])
	}
	b.WriteString("\n")
}

// Append writes the rendered summary to path, creating the file when absent.
func Append(path string, s Summary) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open report %s: %w", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(Render(s)); err != nil {
		return fmt.Errorf("append report: %w", err)
	}
	return nil
}
