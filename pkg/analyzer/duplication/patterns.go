package duplication

import (
	"regexp"
	"sort"
	"strings"

	"github.com/panbanda/mimic/pkg/models"
)

// maxPatternDisplay caps the occurrences attached to a reported idiom.
const maxPatternDisplay = 10

// maxPatternSnippet bounds each occurrence snippet.
const maxPatternSnippet = 100

type patternDef struct {
	name        string
	description string
	re          *regexp.Regexp
	suggestion  string
}

// patternCatalog lists the structural idioms worth flagging when repeated.
// Each regex covers the idiom across the supported languages, loosely.
func patternCatalog() []patternDef {
	return []patternDef{
		{
			name:        "http-handler-signature",
			description: "Repeated HTTP handler boilerplate",
			re:          regexp.MustCompile(`func\s+\w+\s*\(\s*\w+\s+http\.ResponseWriter\s*,\s*\w+\s+\*http\.Request\s*\)|function\s+\w*\s*\(\s*req\s*,\s*res\s*(?:,\s*next\s*)?\)|\(\s*req\s*,\s*res\s*(?:,\s*next\s*)?\)\s*=>`),
			suggestion:  "Wrap handlers with shared middleware or a handler factory",
		},
		{
			name:        "catch-and-log",
			description: "Errors caught and logged without further handling",
			re:          regexp.MustCompile(`catch\s*(?:\([^)]*\))?\s*\{\s*console\.(?:log|error)|if\s+err\s*!=\s*nil\s*\{\s*(?:log|fmt)\.|except\s+\w*(?:\s+as\s+\w+)?\s*:\s*\n\s*print\(`),
			suggestion:  "Centralize error handling in a shared helper or middleware",
		},
		{
			name:        "chained-guard-returns",
			description: "Stacked guard clauses returning early on each condition",
			re:          regexp.MustCompile(`if\s*\([^)]*\)\s*(?:\{\s*)?return[^\n]*\n\s*if\s*\([^)]*\)\s*(?:\{\s*)?return|if\s+[^{]+\{\s*return[^\n]*\n\s*\}\s*\n\s*if\s+[^{]+\{\s*return`),
			suggestion:  "Extract the validation chain into a reusable validator",
		},
		{
			name:        "inline-transform-callback",
			description: "Inline arrow callbacks in collection transforms",
			re:          regexp.MustCompile(`\.(?:map|filter|forEach|reduce)\(\s*(?:\([^)]*\)|\w+)\s*=>`),
			suggestion:  "Name recurring transforms and reuse them across call sites",
		},
	}
}

// scanPatterns matches the idiom catalog against every file and reports
// idioms occurring at least minOccurrences times corpus-wide. Scans must be
// sorted by path so occurrence order is deterministic.
func scanPatterns(scans []fileScan, minOccurrences int) []models.PatternDuplicate {
	results := make([]models.PatternDuplicate, 0)

	for _, def := range patternCatalog() {
		count := 0
		occurrences := make([]models.PatternOccurrence, 0)

		for _, scan := range scans {
			for _, loc := range def.re.FindAllStringIndex(scan.content, -1) {
				count++
				if len(occurrences) >= maxPatternDisplay {
					continue
				}
				occurrences = append(occurrences, models.PatternOccurrence{
					File:    scan.path,
					Line:    uint32(1 + strings.Count(scan.content[:loc[0]], "\n")),
					Snippet: patternSnippet(scan.content[loc[0]:loc[1]]),
				})
			}
		}

		if count < minOccurrences {
			continue
		}
		results = append(results, models.PatternDuplicate{
			Name:        def.name,
			Description: def.description,
			Count:       count,
			Occurrences: occurrences,
			Suggestion:  def.suggestion,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Count != results[j].Count {
			return results[i].Count > results[j].Count
		}
		return results[i].Name < results[j].Name
	})

	return results
}

// patternSnippet trims a match to its first line, bounded in length.
func patternSnippet(match string) string {
	if idx := strings.IndexByte(match, '\n'); idx >= 0 {
		match = match[:idx]
	}
	if len(match) > maxPatternSnippet {
		match = match[:maxPatternSnippet]
	}
	return strings.TrimSpace(match)
}
