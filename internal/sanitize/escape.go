// Package sanitize provides context-aware escaping for extracted cell
// text before it enters the reconciliation pipeline. All functions are
// pure and safe for concurrent use.
package sanitize

import (
	"log/slog"
	"regexp"
	"strings"
)

// Context selects the escaping rules applied after whitelist filtering.
type Context int

const (
	// ContextPlain applies whitelist filtering only.
	ContextPlain Context = iota
	// ContextHTML additionally encodes HTML metacharacters as entities.
	ContextHTML
	// ContextSQL additionally escapes quotes and backslashes.
	ContextSQL
	// ContextJSON additionally escapes JSON string metacharacters.
	ContextJSON
)

// safeChars matches runs of characters outside the allowed set:
// letters, digits, punctuation, separators, marks, currency/modifier/
// math symbols, plus a small set of list-marker glyphs extractors emit.
var safeChars = regexp.MustCompile(`[^\p{L}\p{N}\p{P}\p{Z}\p{M}\p{Sc}\p{Sk}\p{Sm}\x{2605}\x{26AB}\x{2611}\x{F052}]+`)

// sqlKeywords flags statement keywords that suggest injection attempts.
var sqlKeywords = regexp.MustCompile(`(?i)\b(select|insert|update|delete|drop|alter|create|truncate|declare|exec|union|where)\b`)

// FilterInput removes everything outside the character whitelist.
func FilterInput(input string) string {
	if input == "" {
		return ""
	}
	return safeChars.ReplaceAllString(input, "")
}

// EscapeHTML encodes HTML metacharacters as entities.
func EscapeHTML(input string) string {
	var b strings.Builder
	b.Grow(len(input) * 2)
	for _, r := range input {
		switch r {
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '&':
			b.WriteString("&amp;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&#x27;")
		case '/':
			b.WriteString("&#x2F;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// EscapeSQL doubles single quotes and backslashes. Statement keywords
// in the input are logged as a potential injection attempt.
func EscapeSQL(input string) string {
	if input == "" {
		return ""
	}
	if sqlKeywords.MatchString(input) {
		slog.Warn("potential SQL injection in cell text", "input", input)
	}
	input = strings.ReplaceAll(input, "'", "''")
	return strings.ReplaceAll(input, `\`, `\\`)
}

// EscapeJSON escapes JSON string metacharacters.
func EscapeJSON(input string) string {
	var b strings.Builder
	b.Grow(len(input) * 2)
	for _, r := range input {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '/':
			b.WriteString(`\/`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Escape filters the input through the whitelist, then applies the
// escaping rules for the given context.
func Escape(input string, ctx Context) string {
	filtered := FilterInput(input)
	switch ctx {
	case ContextHTML:
		return EscapeHTML(filtered)
	case ContextSQL:
		return EscapeSQL(filtered)
	case ContextJSON:
		return EscapeJSON(filtered)
	default:
		return filtered
	}
}
