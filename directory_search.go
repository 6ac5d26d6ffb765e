package phoneinput

import (
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	scoreExactCode = iota
	scoreDialCode
	scoreNamePrefix
	scoreWordPrefix
	scoreSubstring
	scoreFuzzy
)

type searchHit struct {
	index int
	score int
}

// Search filters the directory for a country picker. Matches on ISO code,
// dial code, name prefix and substring rank first; remaining records are
// ranked by edit distance when close enough to the query. Diacritics and
// case are ignored. A limit <= 0 returns every match.
func (d *Directory) Search(query string, limit int) []CountryRecord {
	if d == nil {
		return nil
	}

	q := foldSearchText(query)
	if q == "" {
		records := d.Records()
		if limit > 0 && len(records) > limit {
			records = records[:limit]
		}
		return records
	}

	dialQuery := ""
	if isDialQuery(q) {
		dialQuery = "+" + strings.TrimPrefix(q, "+")
	}

	maxDistance := len([]rune(q)) / 3
	if maxDistance < 1 {
		maxDistance = 1
	}

	hits := make([]searchHit, 0, len(d.records))
	for i, record := range d.records {
		score, ok := scoreRecord(record, q, dialQuery, maxDistance)
		if !ok {
			continue
		}
		hits = append(hits, searchHit{index: i, score: score})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score < hits[j].score
	})

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}

	out := make([]CountryRecord, 0, len(hits))
	for _, hit := range hits {
		out = append(out, d.records[hit.index])
	}
	return out
}

func scoreRecord(record CountryRecord, q, dialQuery string, maxDistance int) (int, bool) {
	if dialQuery != "" {
		if strings.HasPrefix(record.DialCode, dialQuery) {
			return scoreDialCode, true
		}
		return 0, false
	}

	if strings.EqualFold(record.CountryCode, q) {
		return scoreExactCode, true
	}

	name := foldSearchText(record.Name)
	if strings.HasPrefix(name, q) {
		return scoreNamePrefix, true
	}

	words := strings.FieldsFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == '-' || r == '(' || r == ')'
	})
	for _, word := range words {
		if strings.HasPrefix(word, q) {
			return scoreWordPrefix, true
		}
	}

	if strings.Contains(name, q) {
		return scoreSubstring, true
	}

	best := levenshtein.ComputeDistance(q, name)
	for _, word := range words {
		if dist := levenshtein.ComputeDistance(q, word); dist < best {
			best = dist
		}
	}
	if best > maxDistance {
		return 0, false
	}
	return scoreFuzzy + best, true
}

func isDialQuery(q string) bool {
	digits := strings.TrimPrefix(q, "+")
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// foldSearchText lowercases, strips combining marks and collapses whitespace.
func foldSearchText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}
