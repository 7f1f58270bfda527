package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

// entryRe captures the entry type and key of a BibTeX entry header,
// e.g. "@misc{fu2020d4rl," -> ("misc", "fu2020d4rl").
var entryRe = regexp.MustCompile(`^@([A-Za-z]+)\s*\{\s*([^,\s]+)\s*,`)

// ValidateBibTeX checks that a citation is a single well-formed BibTeX
// entry: an @type{key,...} header and balanced braces.
func ValidateBibTeX(entry string) error {
	trimmed := strings.TrimSpace(entry)
	if trimmed == "" {
		return fmt.Errorf("empty citation")
	}
	if !entryRe.MatchString(trimmed) {
		return fmt.Errorf("citation does not start with @type{key,")
	}

	depth := 0
	for _, r := range trimmed {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return fmt.Errorf("unbalanced braces in citation")
			}
		}
	}
	if depth != 0 {
		return fmt.Errorf("unbalanced braces in citation")
	}
	return nil
}

// BibTeXKey returns the citation key of a BibTeX entry, or "".
func BibTeXKey(entry string) string {
	m := entryRe.FindStringSubmatch(strings.TrimSpace(entry))
	if m == nil {
		return ""
	}
	return m[2]
}

// BibTeXType returns the lowercase entry type of a BibTeX entry, or "".
func BibTeXType(entry string) string {
	m := entryRe.FindStringSubmatch(strings.TrimSpace(entry))
	if m == nil {
		return ""
	}
	return strings.ToLower(m[1])
}
