package storage

import (
	"time"

	"github.com/shopspring/decimal"

	"fleximart/internal/model"
)

// Target table names in load (dependency) order.
const (
	TableCustomers  = "customers"
	TableProducts   = "products"
	TableOrders     = "orders"
	TableOrderItems = "order_items"
)

// Row builders translate typed entities into column-aligned values. Optional
// fields pass through as nil so the sink stores NULL; decimals go over as
// exact strings, which both numeric codecs accept without float drift.

// CustomersTable builds the customers load unit. Surrogate keys are loaded
// explicitly; the serial column is only a backstop for ad-hoc inserts.
func CustomersTable(cs []model.Customer) Table {
	t := Table{
		Name: TableCustomers,
		Columns: []string{
			"customer_id", "first_name", "last_name",
			"email", "phone", "city", "registration_date",
		},
		Rows: make([][]any, 0, len(cs)),
	}
	for _, c := range cs {
		t.Rows = append(t.Rows, []any{
			c.CustomerID, c.FirstName, c.LastName,
			strPtr(c.Email), strPtr(c.Phone), strPtr(c.City), timePtr(c.RegistrationDate),
		})
	}
	return t
}

// ProductsTable builds the products load unit.
func ProductsTable(ps []model.Product) Table {
	t := Table{
		Name:    TableProducts,
		Columns: []string{"product_id", "product_name", "category", "price", "stock_quantity"},
		Rows:    make([][]any, 0, len(ps)),
	}
	for _, p := range ps {
		t.Rows = append(t.Rows, []any{
			p.ProductID, p.ProductName, strPtr(p.Category), decPtr(p.Price), p.StockQuantity,
		})
	}
	return t
}

// OrdersTable builds the orders load unit.
func OrdersTable(os []model.Order) Table {
	t := Table{
		Name:    TableOrders,
		Columns: []string{"order_id", "customer_id", "order_date", "total_amount", "status"},
		Rows:    make([][]any, 0, len(os)),
	}
	for _, o := range os {
		t.Rows = append(t.Rows, []any{
			o.OrderID, intPtr(o.CustomerID), timePtr(o.OrderDate), decPtr(o.TotalAmount), o.Status,
		})
	}
	return t
}

// OrderItemsTable builds the order_items load unit.
func OrderItemsTable(is []model.OrderItem) Table {
	t := Table{
		Name:    TableOrderItems,
		Columns: []string{"order_item_id", "order_id", "product_id", "quantity", "unit_price", "subtotal"},
		Rows:    make([][]any, 0, len(is)),
	}
	for _, it := range is {
		t.Rows = append(t.Rows, []any{
			it.OrderItemID, it.OrderID, it.ProductID,
			intPtr(it.Quantity), decPtr(it.UnitPrice), decPtr(it.Subtotal),
		})
	}
	return t
}

func strPtr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func intPtr(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

func timePtr(p *time.Time) any {
	if p == nil {
		return nil
	}
	return *p
}

func decPtr(p *decimal.Decimal) any {
	if p == nil {
		return nil
	}
	return p.String()
}
