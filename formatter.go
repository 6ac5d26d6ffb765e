package phoneinput

import (
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DisplayFormatter turns typed digits into display text for one country.
// Reset rescopes the formatter and discards all buffered digits; Feed
// appends digits and returns the display after the last one.
type DisplayFormatter interface {
	Reset(country CountryRecord)
	Feed(digits string) string
}

const (
	// maxNumberLength is the longest national number libphonenumber accepts.
	maxNumberLength = 17
	paddingDigit    = "9"
)

// FormatterOption configures an AsYouTypeFormatter.
type FormatterOption func(*AsYouTypeFormatter)

// WithDialPlan registers grouping rules used when the numbering-plan library
// has no metadata for region.
func WithDialPlan(region string, plan DialPlan) FormatterOption {
	return func(f *AsYouTypeFormatter) {
		code := normalizeCountryCode(region)
		plan = plan.normalized()
		if code == "" || len(plan.Groups) == 0 {
			return
		}
		if f.plans == nil {
			f.plans = make(map[string]DialPlan)
		}
		f.plans[code] = plan
	}
}

// AsYouTypeFormatter formats a number digit by digit.
//
// For each state it pads the typed digits with 9s until libphonenumber's
// international format groups the number, then cuts the grouped text back
// to the digits actually typed. A trunk prefix the library strips, such as
// the leading 0 of "020 7946 0958", is kept in front of the grouped digits.
type AsYouTypeFormatter struct {
	plans map[string]DialPlan

	region      string
	callingCode string
	// implied holds national digits carried by the dial code itself,
	// e.g. "242" for the "+1242" Bahamas entry.
	implied string
	plan    DialPlan
	hasPlan bool

	digits []byte
}

var _ DisplayFormatter = &AsYouTypeFormatter{}

// NewAsYouTypeFormatter creates an unscoped formatter; call Reset before use.
func NewAsYouTypeFormatter(opts ...FormatterOption) *AsYouTypeFormatter {
	f := &AsYouTypeFormatter{}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Reset scopes the formatter to country and clears the digit buffer.
func (f *AsYouTypeFormatter) Reset(country CountryRecord) {
	f.region = normalizeCountryCode(country.CountryCode)
	f.callingCode = ""
	f.implied = ""
	f.plan = DialPlan{}
	f.hasPlan = false
	f.digits = nil

	dial := country.DialDigits()
	if cc := callingCodeForRegion(f.region); cc > 0 {
		code := strconv.Itoa(cc)
		if strings.HasPrefix(dial, code) {
			f.callingCode = code
			f.implied = dial[len(code):]
			return
		}
	}

	f.plan, f.hasPlan = f.dialPlanFor(f.region, dial)
}

func (f *AsYouTypeFormatter) dialPlanFor(region, dial string) (DialPlan, bool) {
	if plan, ok := f.plans[region]; ok {
		return plan, true
	}
	for _, plan := range f.plans {
		if plan.CountryCode != "" && plan.CountryCode == dial {
			return plan, true
		}
	}
	return DialPlan{}, false
}

// Clear empties the digit buffer and keeps the current country scope.
func (f *AsYouTypeFormatter) Clear() {
	f.digits = f.digits[:0]
}

// InputDigit appends one digit and returns the formatted text so far.
// Runes other than ASCII digits are ignored.
func (f *AsYouTypeFormatter) InputDigit(d rune) string {
	if d >= '0' && d <= '9' {
		f.digits = append(f.digits, byte(d))
	}
	return f.format()
}

// Feed appends every digit of digits and returns the formatted text.
func (f *AsYouTypeFormatter) Feed(digits string) string {
	f.digits = append(f.digits, digitsOnly(digits)...)
	return f.format()
}

// Region returns the ISO code the formatter is scoped to.
func (f *AsYouTypeFormatter) Region() string {
	return f.region
}

func (f *AsYouTypeFormatter) format() string {
	typed := string(f.digits)
	if typed == "" {
		return ""
	}

	if f.callingCode == "" {
		if f.hasPlan {
			return f.plan.Format(typed)
		}
		return typed
	}

	national := f.implied + typed
	if len(national) > maxNumberLength {
		return typed
	}

	prefix := "+" + f.callingCode
	for size := len(national); size <= maxNumberLength; size++ {
		candidate := national + strings.Repeat(paddingDigit, size-len(national))

		number, err := phonenumbers.Parse(prefix+candidate, f.region)
		if err != nil {
			continue
		}

		nsn := phonenumbers.GetNationalSignificantNumber(number)
		if nsn == "" || !strings.HasSuffix(candidate, nsn) {
			continue
		}

		formatted := phonenumbers.Format(number, phonenumbers.INTERNATIONAL)
		grouped := strings.TrimSpace(strings.TrimPrefix(formatted, prefix))
		if grouped == nsn {
			continue
		}

		// Digits the library stripped as a trunk prefix stay in front.
		dropped := len(candidate) - len(nsn)
		trunk := ""
		if dropped > len(f.implied) {
			end := dropped
			if end > len(national) {
				end = len(national)
			}
			trunk = national[len(f.implied):end]
		}

		skip := len(f.implied) - dropped
		if skip < 0 {
			skip = 0
		}
		return trunk + sliceDigits(grouped, skip, len(national)-dropped-skip)
	}

	return typed
}

// sliceDigits returns the part of s spanning digits [skip, skip+take),
// keeping the separators between them.
func sliceDigits(s string, skip, take int) string {
	if take <= 0 {
		return ""
	}

	start, end, count := -1, len(s), 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			continue
		}
		if count == skip {
			start = i
		}
		count++
		if count == skip+take {
			end = i + 1
			break
		}
	}

	if start < 0 {
		return ""
	}
	return s[start:end]
}
