package textutil

import (
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

// ClosestMatch returns the candidate most similar to `name` by Jaro-Winkler
// distance over normalized names, or "" if there are no candidates.
func ClosestMatch(name string, candidates []string) string {
	normalized := NormalizeName(name)

	best := ""
	bestScore := -1.0
	for _, c := range candidates {
		score := matchr.JaroWinkler(normalized, NormalizeName(c), false)
		if score > bestScore {
			best = c
			bestScore = score
		}
	}
	return best
}

var (
	linkRegex      = regexp.MustCompile(`http\S+`)
	separatorRegex = regexp.MustCompile(`[-=]{3,}`)
)

const (
	LinkPlaceholder      = "<link>"
	SeparatorPlaceholder = "-----"
	spoilerLabel         = "Spoiler"
)

// Clean replaces the parts of a post body that cannot be modeled as text.
// The order matters:
//  1. every run of non-whitespace starting with "http" becomes <link>
//  2. every run of 3 or more '-'/'=' becomes -----
//  3. the "Spoiler" label of collapsible sections is removed
func Clean(content string) string {
	content = linkRegex.ReplaceAllLiteralString(content, LinkPlaceholder)
	content = separatorRegex.ReplaceAllLiteralString(content, SeparatorPlaceholder)
	content = strings.ReplaceAll(content, spoilerLabel, "")
	return content
}
