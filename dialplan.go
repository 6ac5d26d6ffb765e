package phoneinput

import "strings"

// DialPlan describes digit grouping for regions the numbering-plan library
// has no metadata for. CountryCode is digits without the leading plus sign.
// NationalPrefix is optional and stripped from typed digits when present.
// Groups defines the grouping of the national significant number; digits
// beyond the last group are appended as a trailing group.
type DialPlan struct {
	CountryCode    string
	NationalPrefix string
	Groups         []int
}

func (plan DialPlan) normalized() DialPlan {
	return DialPlan{
		CountryCode:    strings.TrimPrefix(strings.TrimSpace(plan.CountryCode), "+"),
		NationalPrefix: strings.TrimSpace(plan.NationalPrefix),
		Groups:         normalizeGroups(plan.Groups),
	}
}

// Format groups a partial or complete national number progressively.
func (plan DialPlan) Format(digits string) string {
	national := digitsOnly(digits)
	if plan.NationalPrefix != "" {
		national = strings.TrimPrefix(national, plan.NationalPrefix)
	}
	if national == "" || len(plan.Groups) == 0 {
		return national
	}

	var b strings.Builder
	pos := 0
	for i, group := range plan.Groups {
		if pos >= len(national) {
			break
		}
		upper := pos + group
		if upper > len(national) {
			upper = len(national)
		}
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(national[pos:upper])
		pos = upper
	}

	if pos < len(national) {
		b.WriteString(" ")
		b.WriteString(national[pos:])
	}
	return b.String()
}

func normalizeGroups(groups []int) []int {
	if len(groups) == 0 {
		return nil
	}
	result := make([]int, 0, len(groups))
	for _, g := range groups {
		if g > 0 {
			result = append(result, g)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
