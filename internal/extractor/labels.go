package extractor

import (
	"strings"
	"unicode"
)

// labelSpec is the ordered list of names a row or column may carry. Exact
// matches win over substring matches; exclusions veto substring matches only.
type labelSpec struct {
	name       string
	candidates []string
	excludes   []string
}

func normalizeLabel(s string) string {
	s = strings.ToLower(strings.ReplaceAll(s, "&", " and "))
	var b strings.Builder
	space := true
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			space = false
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	return strings.TrimSpace(b.String())
}

// match returns the index of the first label satisfying spec, or -1. taken
// marks indexes already claimed by another spec.
func (spec labelSpec) match(labels []string, taken map[int]bool) int {
	normalized := make([]string, len(labels))
	for i, l := range labels {
		normalized[i] = normalizeLabel(l)
	}

	for _, c := range spec.candidates {
		want := normalizeLabel(c)
		for i, got := range normalized {
			if !taken[i] && got != "" && got == want {
				return i
			}
		}
	}

	for _, c := range spec.candidates {
		want := normalizeLabel(c)
		for i, got := range normalized {
			if taken[i] || got == "" || !containsWord(got, want) || spec.excluded(got) {
				continue
			}
			return i
		}
	}

	return -1
}

func (spec labelSpec) excluded(label string) bool {
	for _, ex := range spec.excludes {
		if containsWord(label, normalizeLabel(ex)) {
			return true
		}
	}
	return false
}

// containsWord reports whether needle appears in haystack on word boundaries.
func containsWord(haystack, needle string) bool {
	return strings.Contains(" "+haystack+" ", " "+needle+" ")
}
