package clean

import (
	"fleximart/internal/model"
	"fleximart/internal/transformer"
	"fleximart/internal/transformer/builtin"
	"fleximart/pkg/records"
)

// Customer extract field names.
const (
	FieldCustomerID = "customer_id"
	FieldFirstName  = "first_name"
	FieldLastName   = "last_name"
	FieldEmail      = "email"
	FieldPhone      = "phone"
	FieldCity       = "city"
	FieldRegDate    = "registration_date"
)

// CustomerFields enumerates the expected customer extract columns.
var CustomerFields = []string{
	FieldCustomerID, FieldFirstName, FieldLastName,
	FieldEmail, FieldPhone, FieldCity, FieldRegDate,
}

// Customers normalizes the raw customer extract. Duplicate natural keys keep
// the first occurrence; phones are canonicalized to E.164; registration
// dates are parsed flexibly; cities are title-cased. Surrogate customer_id
// values are dense 1..N in post-dedup input order, with the natural key
// preserved as source_id.
func Customers(in []records.Record) ([]model.Customer, Stats) {
	var st Stats
	chain := transformer.Chain{
		builtin.Trim{},
		builtin.DeDup{Keys: []string{FieldCustomerID}},
	}
	recs := chain.Apply(in)
	st.settle(len(in), len(recs))

	out := make([]model.Customer, 0, len(recs))
	for i, r := range recs {
		c := model.Customer{CustomerID: int64(i + 1)}
		c.SourceID, _ = r.String(FieldCustomerID)
		c.FirstName, _ = r.String(FieldFirstName)
		c.LastName, _ = r.String(FieldLastName)
		if email, ok := r.String(FieldEmail); ok {
			c.Email = &email
		}
		if phone, ok := r.String(FieldPhone); ok {
			c.Phone = normalizePhone(phone)
			if c.Phone == nil {
				st.DegradedFields++
			}
		}
		if city, ok := r.String(FieldCity); ok {
			titled := titleCase(city)
			c.City = &titled
		}
		if raw, ok := r.String(FieldRegDate); ok {
			c.RegistrationDate = parseDate(raw)
			if c.RegistrationDate == nil {
				st.DegradedFields++
			}
		}
		out = append(out, c)
	}
	return out, st
}
