package phoneinput

import "strings"

// CountryRecord is a single entry of the country directory.
// Records are immutable once loaded into a Directory.
type CountryRecord struct {
	Name        string  `json:"name" yaml:"name" msgpack:"name"`
	DialCode    string  `json:"dial_code" yaml:"dial_code" msgpack:"dial_code"`
	CountryCode string  `json:"country_code" yaml:"country_code" msgpack:"country_code"`
	Icon        string  `json:"icon,omitempty" yaml:"icon,omitempty" msgpack:"icon,omitempty"`
	Latitude    float64 `json:"latitude" yaml:"latitude" msgpack:"latitude"`
	Longitude   float64 `json:"longitude" yaml:"longitude" msgpack:"longitude"`
}

// Flag returns the regional indicator emoji for the record's ISO code,
// or an empty string when the code is not two ASCII letters.
func (r CountryRecord) Flag() string {
	code := strings.ToUpper(r.CountryCode)
	if len(code) != 2 {
		return ""
	}

	var b strings.Builder
	for i := 0; i < len(code); i++ {
		c := code[i]
		if c < 'A' || c > 'Z' {
			return ""
		}
		b.WriteRune(rune(c-'A') + 0x1F1E6)
	}
	return b.String()
}

// DialDigits returns the dial code without the leading plus sign.
func (r CountryRecord) DialDigits() string {
	return strings.TrimPrefix(r.DialCode, "+")
}

func (r CountryRecord) String() string {
	if r.CountryCode == "" {
		return ""
	}
	return r.CountryCode + " " + r.DialCode
}
