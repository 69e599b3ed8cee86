package split

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fleximart/internal/keymap"
	"fleximart/internal/model"
)

func dt(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func i64(v int64) *int64 { return &v }

func maps() (customers, products keymap.KeyMap) {
	customers = keymap.Build([]keymap.Pair{{SourceID: "C1", Surrogate: 1}})
	products = keymap.Build([]keymap.Pair{{SourceID: "P1", Surrogate: 1}, {SourceID: "P2", Surrogate: 2}})
	return
}

func TestDeriveOneOrderPerLine(t *testing.T) {
	customers, products := maps()
	lines := []model.SaleLine{
		{SourceID: "T1", CustomerRef: "C1", ProductRef: "P1", Quantity: i64(1), UnitPrice: dec("10"), Total: dec("10"), Date: dt(2024, 2, 1)},
		{SourceID: "T2", CustomerRef: "C1", ProductRef: "PX", Quantity: i64(2), UnitPrice: dec("5"), Total: dec("10"), Date: dt(2024, 1, 1)},
	}
	res := Derive(lines, customers, products)
	if len(res.Orders) != len(lines) {
		t.Fatalf("orders = %d, want one per line (%d)", len(res.Orders), len(lines))
	}
	if len(res.Items) != 1 || res.DroppedItems != 1 {
		t.Fatalf("items = %d dropped = %d; unresolved product must drop the item only", len(res.Items), res.DroppedItems)
	}
	// The dropped line's order survives with its total intact.
	o := res.Orders[1]
	if o.OrderID != 2 || o.TotalAmount == nil || !o.TotalAmount.Equal(decimal.RequireFromString("10")) {
		t.Fatalf("order for product-unresolved line wrong: %+v", o)
	}
	if o.Status != model.OrderStatusPending {
		t.Fatalf("status = %q", o.Status)
	}
}

func TestDeriveUnresolvedCustomerKeepsOrder(t *testing.T) {
	customers, products := maps()
	lines := []model.SaleLine{
		{SourceID: "T1", CustomerRef: "NOPE", ProductRef: "P1", Total: dec("10"), Date: dt(2024, 1, 1)},
	}
	res := Derive(lines, customers, products)
	if len(res.Orders) != 1 || res.UnresolvedCustomers != 1 {
		t.Fatalf("orders=%d unresolved=%d", len(res.Orders), res.UnresolvedCustomers)
	}
	if res.Orders[0].CustomerID != nil {
		t.Fatalf("customer must be absent, got %v", *res.Orders[0].CustomerID)
	}
}

func TestDeriveItemsSortedByDateKeepOrderIDs(t *testing.T) {
	customers, products := maps()
	lines := []model.SaleLine{
		{SourceID: "T1", CustomerRef: "C1", ProductRef: "P1", Date: dt(2024, 3, 1)},
		{SourceID: "T2", CustomerRef: "C1", ProductRef: "P2", Date: dt(2024, 1, 1)},
		{SourceID: "T3", CustomerRef: "C1", ProductRef: "P1", Date: dt(2024, 2, 1)},
	}
	res := Derive(lines, customers, products)
	// order_item_id dense in date order; order_id reflects original order.
	wantOrderIDs := []int64{2, 3, 1}
	for i, it := range res.Items {
		if it.OrderItemID != int64(i+1) {
			t.Fatalf("order_item_id not dense: %+v", res.Items)
		}
		if it.OrderID != wantOrderIDs[i] {
			t.Fatalf("item %d: order_id = %d, want %d", i, it.OrderID, wantOrderIDs[i])
		}
	}
}

func TestDeriveAbsentDatesSortLastStably(t *testing.T) {
	customers, products := maps()
	lines := []model.SaleLine{
		{SourceID: "T1", CustomerRef: "C1", ProductRef: "P1"},
		{SourceID: "T2", CustomerRef: "C1", ProductRef: "P1", Date: dt(2024, 1, 2)},
		{SourceID: "T3", CustomerRef: "C1", ProductRef: "P1", Date: dt(2024, 1, 1)},
		{SourceID: "T4", CustomerRef: "C1", ProductRef: "P1"},
	}
	res := Derive(lines, customers, products)
	// Dated lines first in date order; undated lines take the last item
	// ids, keeping their relative order.
	wantOrderIDs := []int64{3, 2, 1, 4}
	for i, it := range res.Items {
		if it.OrderID != wantOrderIDs[i] {
			t.Fatalf("absent-date ordering: item %d order_id = %d, want %d", i, it.OrderID, wantOrderIDs[i])
		}
	}
	if last := res.Items[len(res.Items)-1]; last.OrderItemID != 4 {
		t.Fatalf("undated line must receive the last item id, got %d", last.OrderItemID)
	}
}

func TestDeriveNoDanglingProductRefs(t *testing.T) {
	customers, products := maps()
	lines := []model.SaleLine{
		{SourceID: "T1", CustomerRef: "C1", ProductRef: "P1"},
		{SourceID: "T2", CustomerRef: "C1", ProductRef: "ghost"},
		{SourceID: "T3", CustomerRef: "C1", ProductRef: "P2"},
	}
	res := Derive(lines, customers, products)
	for _, it := range res.Items {
		if _, ok := products.Resolve(itemSource(lines, it.OrderID)); !ok {
			t.Fatalf("dangling product ref in item %+v", it)
		}
		if it.ProductID != 1 && it.ProductID != 2 {
			t.Fatalf("product surrogate outside key space: %+v", it)
		}
	}
	if len(res.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(res.Items))
	}
}

// itemSource finds the natural product ref for the line that produced the
// given order id.
func itemSource(lines []model.SaleLine, orderID int64) string {
	return lines[orderID-1].ProductRef
}
