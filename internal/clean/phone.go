package clean

import "github.com/nyaruka/phonenumbers"

// defaultPhoneRegion is assumed for numbers without a country prefix.
const defaultPhoneRegion = "IN"

// normalizePhone returns the E.164 form of raw, or nil when the number does
// not parse or is not a valid number for its region.
func normalizePhone(raw string) *string {
	num, err := phonenumbers.Parse(raw, defaultPhoneRegion)
	if err != nil {
		return nil
	}
	if !phonenumbers.IsValidNumber(num) {
		return nil
	}
	e164 := phonenumbers.Format(num, phonenumbers.E164)
	return &e164
}
