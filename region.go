package phoneinput

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// normalizeCountryCode trims and uppercases an ISO 3166-1 alpha-2 code.
// It returns an empty string when the input is not two ASCII letters.
func normalizeCountryCode(code string) string {
	trimmed := strings.ToUpper(strings.TrimSpace(code))
	if len(trimmed) != 2 {
		return ""
	}
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] < 'A' || trimmed[i] > 'Z' {
			return ""
		}
	}
	return trimmed
}

// regionName resolves the display name for a region in the requested language.
// The tag defaults to English when locale is empty or unparsable.
func regionName(code, locale string) string {
	region, err := language.ParseRegion(code)
	if err != nil {
		return ""
	}

	tag := language.English
	if locale != "" {
		if parsed, err := language.Parse(strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")); err == nil {
			tag = parsed
		}
	}

	if namer := display.Regions(tag); namer != nil {
		if name := namer.Name(region); name != "" {
			return name
		}
	}
	return display.English.Regions().Name(region)
}

// regionFromLocale extracts the region subtag of a BCP 47 locale, e.g. "en-GB" -> "GB".
func regionFromLocale(locale string) string {
	if locale == "" {
		return ""
	}

	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return ""
	}

	region, confidence := tag.Region()
	if confidence != language.Exact {
		return ""
	}
	return normalizeCountryCode(region.String())
}
