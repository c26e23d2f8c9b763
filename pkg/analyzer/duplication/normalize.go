package duplication

import (
	"regexp"
	"strings"
)

var (
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineCommentRe  = regexp.MustCompile(`//[^\n]*|#[^\n]*`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
	stringLitRe    = regexp.MustCompile("\"(?:\\\\.|[^\"\\\\\\n])*\"|'(?:\\\\.|[^'\\\\\\n])*'|`[^`]*`")
	numberLitRe    = regexp.MustCompile(`\b\d+(?:\.\d+)?\b`)
)

// NormalizeBlock canonicalizes a block of text for fingerprinting: comments
// stripped, whitespace runs collapsed, string literals replaced with STR,
// numeric literals replaced with NUM. Identifier names are deliberately left
// alone, so blocks differing only by a rename do not match.
func NormalizeBlock(text string) string {
	text = blockCommentRe.ReplaceAllString(text, "")
	text = lineCommentRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = stringLitRe.ReplaceAllString(text, "STR")
	text = numberLitRe.ReplaceAllString(text, "NUM")
	return strings.TrimSpace(text)
}

// NormalizeLine canonicalizes a single line for set comparison: trimmed,
// inner whitespace runs collapsed.
func NormalizeLine(line string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(line, " "))
}

// isCommentLine checks if a trimmed line is a comment.
func isCommentLine(line string) bool {
	return strings.HasPrefix(line, "//") ||
		strings.HasPrefix(line, "#") ||
		strings.HasPrefix(line, "/*") ||
		strings.HasPrefix(line, "*") ||
		strings.HasPrefix(line, "*/")
}

// isMeaningfulLine reports whether a line carries content worth matching:
// non-empty and not comment-only.
func isMeaningfulLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	return !isCommentLine(trimmed)
}
