package mapping

import (
	"regexp"
	"strings"

	"github.com/tablefuse/tablefuse/internal/sanitize"
)

// keyValuePattern extracts adjacent key/value cell pairs from a
// serialized block: every pair of cells becomes one candidate field.
var keyValuePattern = regexp.MustCompile(`([^|\n]+)\|([^|\n]+)\|`)

// Pair is one key/value cell pair lifted from a block.
type Pair struct {
	Key   string
	Value string
}

// Pairs extracts key/value pairs from a block. Keys and values are
// trimmed and HTML-escaped before they reach any record field.
func Pairs(block string) []Pair {
	matches := keyValuePattern.FindAllStringSubmatch(block, -1)
	pairs := make([]Pair, 0, len(matches))
	for _, m := range matches {
		pairs = append(pairs, Pair{
			Key:   sanitize.EscapeHTML(strings.TrimSpace(m[1])),
			Value: sanitize.Escape(strings.TrimSpace(m[2]), sanitize.ContextHTML),
		})
	}
	return pairs
}
