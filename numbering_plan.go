package phoneinput

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// NumberingPlan is the numbering-plan library boundary: parsing, validity
// and canonical formatting. Implementations must not panic on garbage input.
type NumberingPlan interface {
	Parse(text, region string) (*phonenumbers.PhoneNumber, error)
	IsValidNumber(number *phonenumbers.PhoneNumber) bool
	FormatE164(number *phonenumbers.PhoneNumber) string
	// RegionForNumber returns the ISO code the library assigns to the number, if any.
	RegionForNumber(number *phonenumbers.PhoneNumber) string
}

// LibPhoneNumberPlan implements NumberingPlan with github.com/nyaruka/phonenumbers.
type LibPhoneNumberPlan struct{}

var _ NumberingPlan = LibPhoneNumberPlan{}

// Parse parses text using region as the default region hint.
func (LibPhoneNumberPlan) Parse(text, region string) (*phonenumbers.PhoneNumber, error) {
	return phonenumbers.Parse(strings.TrimSpace(text), strings.ToUpper(strings.TrimSpace(region)))
}

// IsValidNumber reports whether the number matches its region's numbering plan.
func (LibPhoneNumberPlan) IsValidNumber(number *phonenumbers.PhoneNumber) bool {
	if number == nil {
		return false
	}
	return phonenumbers.IsValidNumber(number)
}

// FormatE164 formats the number as "+<country code><national number>".
func (LibPhoneNumberPlan) FormatE164(number *phonenumbers.PhoneNumber) string {
	if number == nil {
		return ""
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}

// RegionForNumber returns the library's region for the number.
func (LibPhoneNumberPlan) RegionForNumber(number *phonenumbers.PhoneNumber) string {
	if number == nil {
		return ""
	}
	return strings.ToUpper(phonenumbers.GetRegionCodeForNumber(number))
}

// callingCodeForRegion returns the country calling code the library knows
// for region, or 0 when the region has no metadata.
func callingCodeForRegion(region string) int {
	if region == "" {
		return 0
	}
	return phonenumbers.GetCountryCodeForRegion(strings.ToUpper(region))
}
