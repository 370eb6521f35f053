package extractor

import "strings"

// LeftToRightMark is the invisible U+200E marker storefronts scatter through
// table cells. It never survives into a stored value.
const LeftToRightMark = "\u200e"

// Clean returns the first value that is still non-empty once the
// left-to-right mark and surrounding whitespace are removed.
func Clean(values []string) (string, bool) {
	for _, v := range values {
		v = strings.TrimSpace(strings.ReplaceAll(v, LeftToRightMark, ""))
		if v != "" {
			return v, true
		}
	}
	return "", false
}

// Dedupe returns the distinct non-empty values in first-seen order.
func Dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
