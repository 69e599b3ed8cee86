package clean

import (
	"testing"
	"time"

	"fleximart/pkg/records"
)

func TestCustomersDuplicateNaturalKeyKeepsFirst(t *testing.T) {
	in := []records.Record{
		{"customer_id": "1", "first_name": "Asha", "last_name": "Rao", "phone": "9876543210"},
		{"customer_id": "1", "first_name": "Asha", "last_name": "Rao", "phone": "9999999999"},
	}
	out, st := Customers(in)
	if len(out) != 1 {
		t.Fatalf("want 1 customer, got %d", len(out))
	}
	if st.DroppedDuplicates != 1 {
		t.Fatalf("dropped duplicates = %d, want 1", st.DroppedDuplicates)
	}
	c := out[0]
	if c.Phone == nil || *c.Phone != "+919876543210" {
		t.Fatalf("phone from first occurrence normalized to E.164, got %v", c.Phone)
	}
	if c.CustomerID != 1 || c.SourceID != "1" {
		t.Fatalf("surrogate/source ids wrong: %+v", c)
	}
}

func TestCustomersSurrogatesAreDense(t *testing.T) {
	in := []records.Record{
		{"customer_id": "7"},
		{"customer_id": "3"},
		{"customer_id": "7"}, // duplicate
		{"customer_id": "9"},
	}
	out, _ := Customers(in)
	if len(out) != 3 {
		t.Fatalf("want 3 customers, got %d", len(out))
	}
	for i, c := range out {
		if c.CustomerID != int64(i+1) {
			t.Fatalf("customer_id not dense at %d: %+v", i, c)
		}
	}
	// post-dedup input order preserved
	if out[0].SourceID != "7" || out[1].SourceID != "3" || out[2].SourceID != "9" {
		t.Fatalf("surrogates not assigned in post-dedup order: %+v", out)
	}
}

func TestCustomersFieldDegradation(t *testing.T) {
	in := []records.Record{{
		"customer_id":       "1",
		"first_name":        "Asha",
		"phone":             "not-a-phone",
		"city":              "new delhi",
		"registration_date": "not-a-date",
	}}
	out, st := Customers(in)
	c := out[0]
	if c.Phone != nil {
		t.Fatalf("invalid phone must degrade to absent, got %q", *c.Phone)
	}
	if c.RegistrationDate != nil {
		t.Fatalf("unparseable date must degrade to absent, got %v", *c.RegistrationDate)
	}
	if c.City == nil || *c.City != "New Delhi" {
		t.Fatalf("city not title-cased: %v", c.City)
	}
	if st.DegradedFields != 2 {
		t.Fatalf("degraded fields = %d, want 2", st.DegradedFields)
	}
}

func TestCustomersDayFirstDates(t *testing.T) {
	in := []records.Record{
		{"customer_id": "1", "registration_date": "03/04/2024"},
		{"customer_id": "2", "registration_date": "2024-04-03"},
		{"customer_id": "3", "registration_date": "15-01-2023"},
	}
	out, _ := Customers(in)
	want := []time.Time{
		time.Date(2024, 4, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	for i, c := range out {
		if c.RegistrationDate == nil || !c.RegistrationDate.Equal(want[i]) {
			t.Fatalf("row %d: got %v want %v", i, c.RegistrationDate, want[i])
		}
	}
}

func TestNormalizePhoneVariants(t *testing.T) {
	cases := []struct {
		in   string
		want string // "" means absent
	}{
		{"9876543210", "+919876543210"},
		{"+91 98765 43210", "+919876543210"},
		{"12345", ""},
		{"garbage", ""},
	}
	for _, tc := range cases {
		got := normalizePhone(tc.in)
		switch {
		case tc.want == "" && got != nil:
			t.Fatalf("%q: want absent, got %q", tc.in, *got)
		case tc.want != "" && (got == nil || *got != tc.want):
			t.Fatalf("%q: got %v want %q", tc.in, got, tc.want)
		}
	}
}
