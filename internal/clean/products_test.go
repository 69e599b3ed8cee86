package clean

import (
	"testing"

	"github.com/shopspring/decimal"

	"fleximart/pkg/records"
)

func TestProductsPriceImputedFromSales(t *testing.T) {
	prods := []records.Record{
		{"product_id": "P7", "product_name": " Headphones ", "category": "electronics", "price": nil},
	}
	sales := []records.Record{
		{"product_id": "P7", "unit_price": "499.0"},
		{"product_id": "P7", "unit_price": "550.0"}, // later price ignored: first wins
	}
	out, _ := Products(prods, sales)
	p := out[0]
	if p.Price == nil || !p.Price.Equal(decimal.RequireFromString("499.0")) {
		t.Fatalf("tier-a imputation: got %v want 499.0", p.Price)
	}
	if p.Category == nil || *p.Category != "Electronics" {
		t.Fatalf("category not title-cased: %v", p.Category)
	}
	if p.ProductName != "Headphones" {
		t.Fatalf("name not trimmed: %q", p.ProductName)
	}
}

func TestProductsPriceImputedFromCategoryMean(t *testing.T) {
	prods := []records.Record{
		{"product_id": "P1", "product_name": "A", "category": "toys", "price": "10"},
		{"product_id": "P2", "product_name": "B", "category": "toys", "price": "30"},
		{"product_id": "P3", "product_name": "C", "category": "toys", "price": nil},
		{"product_id": "P4", "product_name": "D", "category": "books", "price": nil},
	}
	out, st := Products(prods, nil)
	if out[2].Price == nil || !out[2].Price.Equal(decimal.RequireFromString("20")) {
		t.Fatalf("tier-b mean: got %v want 20", out[2].Price)
	}
	// No priced row shares the books category: price stays absent.
	if out[3].Price != nil {
		t.Fatalf("category with no prices must stay absent, got %v", out[3].Price)
	}
	if st.DegradedFields != 1 {
		t.Fatalf("degraded fields = %d, want 1", st.DegradedFields)
	}
}

func TestProductsExactDuplicateDropped(t *testing.T) {
	prods := []records.Record{
		{"product_id": "P1", "product_name": "A", "category": "toys", "price": "10", "stock_quantity": "5"},
		{"product_id": "P1", "product_name": "A", "category": "toys", "price": "10", "stock_quantity": "5"},
		{"product_id": "P1", "product_name": "A", "category": "toys", "price": "12", "stock_quantity": "5"},
	}
	out, st := Products(prods, nil)
	if len(out) != 2 || st.DroppedDuplicates != 1 {
		t.Fatalf("exact dedup: got %d rows, dropped=%d", len(out), st.DroppedDuplicates)
	}
}

func TestProductsStockDefaultsToZero(t *testing.T) {
	prods := []records.Record{
		{"product_id": "P1", "product_name": "A", "price": "10", "stock_quantity": nil},
		{"product_id": "P2", "product_name": "B", "price": "10", "stock_quantity": "7.0"},
	}
	out, _ := Products(prods, nil)
	if out[0].StockQuantity != 0 {
		t.Fatalf("missing stock must default to 0, got %d", out[0].StockQuantity)
	}
	if out[1].StockQuantity != 7 {
		t.Fatalf("stock not coerced to integer, got %d", out[1].StockQuantity)
	}
}

func TestProductsSurrogatesAreDense(t *testing.T) {
	prods := []records.Record{
		{"product_id": "P9", "product_name": "A"},
		{"product_id": "P2", "product_name": "B"},
	}
	out, _ := Products(prods, nil)
	if out[0].ProductID != 1 || out[1].ProductID != 2 {
		t.Fatalf("surrogates not dense: %+v", out)
	}
	if out[0].SourceID != "P9" || out[1].SourceID != "P2" {
		t.Fatalf("source ids lost: %+v", out)
	}
}
