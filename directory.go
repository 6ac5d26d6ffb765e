package phoneinput

import (
	"fmt"
	"regexp"
	"strings"
)

var dialCodePattern = regexp.MustCompile(`^\+[0-9]{1,6}$`)

// Directory is an immutable, ordered snapshot of country records.
// Order is significant: when several countries share a dial code the
// earliest record is the default inferred country.
type Directory struct {
	records    []CountryRecord
	byCountry  map[string]int
	byDialCode map[string][]int
	maxDialLen int
	minDialLen int
}

// NewDirectory validates records and builds the lookup indexes.
func NewDirectory(records []CountryRecord) (*Directory, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDirectory
	}

	d := &Directory{
		records:    make([]CountryRecord, 0, len(records)),
		byCountry:  make(map[string]int, len(records)),
		byDialCode: make(map[string][]int),
	}

	for i, record := range records {
		code := normalizeCountryCode(record.CountryCode)
		if code == "" {
			return nil, fmt.Errorf("%w: %q at position %d", ErrInvalidCountryCode, record.CountryCode, i)
		}
		if _, exists := d.byCountry[code]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCountry, code)
		}

		dial := strings.TrimSpace(record.DialCode)
		if !dialCodePattern.MatchString(dial) {
			return nil, fmt.Errorf("%w: %q for %s", ErrInvalidDialCode, record.DialCode, code)
		}

		record.CountryCode = code
		record.DialCode = dial
		record.Name = strings.TrimSpace(record.Name)
		if record.Name == "" {
			record.Name = regionName(code, "")
		}

		idx := len(d.records)
		d.records = append(d.records, record)
		d.byCountry[code] = idx
		d.byDialCode[dial] = append(d.byDialCode[dial], idx)

		if len(dial) > d.maxDialLen {
			d.maxDialLen = len(dial)
		}
		if d.minDialLen == 0 || len(dial) < d.minDialLen {
			d.minDialLen = len(dial)
		}
	}

	return d, nil
}

// Len returns the number of records.
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Records returns a copy of all records in directory order.
func (d *Directory) Records() []CountryRecord {
	if d == nil || len(d.records) == 0 {
		return nil
	}
	out := make([]CountryRecord, len(d.records))
	copy(out, d.records)
	return out
}

// ByCountryCode looks up a record by ISO 3166-1 alpha-2 code, case-insensitively.
func (d *Directory) ByCountryCode(code string) (CountryRecord, bool) {
	if d == nil {
		return CountryRecord{}, false
	}
	idx, ok := d.byCountry[normalizeCountryCode(code)]
	if !ok {
		return CountryRecord{}, false
	}
	return d.records[idx], true
}

// ByDialCode returns the first record in directory order using the dial code.
func (d *Directory) ByDialCode(dialCode string) (CountryRecord, bool) {
	if d == nil {
		return CountryRecord{}, false
	}
	indexes := d.byDialCode[strings.TrimSpace(dialCode)]
	if len(indexes) == 0 {
		return CountryRecord{}, false
	}
	return d.records[indexes[0]], true
}

// CountriesForDialCode returns every record sharing the dial code, in directory order.
func (d *Directory) CountriesForDialCode(dialCode string) []CountryRecord {
	if d == nil {
		return nil
	}
	indexes := d.byDialCode[strings.TrimSpace(dialCode)]
	if len(indexes) == 0 {
		return nil
	}
	out := make([]CountryRecord, 0, len(indexes))
	for _, idx := range indexes {
		out = append(out, d.records[idx])
	}
	return out
}

// FindDialCode returns the country whose dial code is the longest known
// prefix of the normalized text. Only text starting with "+" is matched.
// Shared dial codes resolve to the first record in directory order.
func (d *Directory) FindDialCode(text string) (CountryRecord, bool) {
	if d == nil || !strings.HasPrefix(text, "+") {
		return CountryRecord{}, false
	}

	longest := d.maxDialLen
	if len(text) < longest {
		longest = len(text)
	}

	for size := longest; size >= d.minDialLen; size-- {
		if indexes, ok := d.byDialCode[text[:size]]; ok {
			return d.records[indexes[0]], true
		}
	}
	return CountryRecord{}, false
}

// DisplayName returns the localized country name for the ISO code, falling
// back to the record name when no translation is available.
func (d *Directory) DisplayName(code, locale string) string {
	record, ok := d.ByCountryCode(code)
	if !ok {
		return ""
	}
	if locale == "" {
		return record.Name
	}
	if name := regionName(record.CountryCode, locale); name != "" {
		return name
	}
	return record.Name
}
