package engine

import (
	"strconv"
	"strings"
)

// columnPrefix tags the structural feature token in a fingerprint.
const columnPrefix = "col:"

// fingerprint derives the locality key for a serialized block: a short
// content prefix plus a column-count token. Identical prefixes and
// column counts always produce identical fingerprints. This is a
// coarse locality hash, not a content hash.
func fingerprint(block string, prefixLen int) string {
	prefix := block
	if runes := []rune(block); len(runes) > prefixLen {
		prefix = string(runes[:prefixLen])
	}
	return prefix + colSep + columnPrefix + strconv.Itoa(columnCount(block))
}

// columnCount counts cells in the block's first row. Every cell is
// terminated by a separator, so the separator count is the column
// count; an empty block yields 0.
func columnCount(block string) int {
	row, _, _ := strings.Cut(block, rowSep)
	return strings.Count(row, colSep)
}

// fingerprintColumns extracts the column-count token back out of a
// fingerprint. Returns 0 when no token parses.
func fingerprintColumns(fp string) int {
	for _, part := range strings.Split(fp, colSep) {
		if rest, ok := strings.CutPrefix(part, columnPrefix); ok {
			if n, err := strconv.Atoi(rest); err == nil {
				return n
			}
		}
	}
	return 0
}
