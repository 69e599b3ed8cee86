// Package model defines the typed entities produced by the transform stages.
// Each stage has its own named type rather than one flat structure reused
// under different column names: a raw sale line, an order header, and an
// order line item are distinct shapes with distinct lifetimes.
//
// Optional fields are pointers; nil means the value was absent or degraded
// during normalization. Money fields are decimal so quantity × unit_price
// is exact.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a normalized customer row. CustomerID is the dense surrogate
// key (1..N); SourceID preserves the natural key from the extract.
type Customer struct {
	CustomerID       int64
	SourceID         string
	FirstName        string
	LastName         string
	Email            *string
	Phone            *string // E.164, nil when unparseable or invalid
	City             *string
	RegistrationDate *time.Time
}

// Product is a normalized product row. Price is never nil after imputation
// unless no price source existed anywhere for its category.
type Product struct {
	ProductID     int64
	SourceID      string
	ProductName   string
	Category      *string
	Price         *decimal.Decimal
	StockQuantity int64
}

// SaleLine is the transient, normalized form of one raw sales transaction.
// CustomerRef and ProductRef are natural keys awaiting resolution; the line
// is consumed entirely by the splitter and never persisted.
type SaleLine struct {
	SourceID    string
	CustomerRef string
	ProductRef  string
	Quantity    *int64
	UnitPrice   *decimal.Decimal
	Total       *decimal.Decimal // quantity × unit_price, nil if either factor absent
	Date        *time.Time
}

// OrderStatusPending is the status every derived order starts in.
const OrderStatusPending = "Pending"

// Order is one order header per surviving sale line. CustomerID is nil when
// the sale's customer reference did not resolve; the order is kept anyway.
type Order struct {
	OrderID     int64
	CustomerID  *int64
	OrderDate   *time.Time
	TotalAmount *decimal.Decimal
	Status      string
}

// OrderItem is one line item per sale line with a resolvable product.
type OrderItem struct {
	OrderItemID int64
	OrderID     int64
	ProductID   int64
	Quantity    *int64
	UnitPrice   *decimal.Decimal
	Subtotal    *decimal.Decimal
}
