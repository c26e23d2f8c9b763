package duplication

import (
	"fmt"
	"strings"
	"testing"
)

// buildLines returns n distinct lines, each longer than minLineLength.
func buildLines(prefix string, n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("%s_statement_%03d()", prefix, i)
	}
	return lines
}

func TestScoreFilePairsDice(t *testing.T) {
	shared := buildLines("shared", 30)
	a := strings.Join(append(append([]string{}, shared...), buildLines("only_a", 10)...), "\n")
	b := strings.Join(append(append([]string{}, shared...), buildLines("only_b", 10)...), "\n")

	files := []fileLineSet{
		newFileLineSet("a.js", a),
		newFileLineSet("b.js", b),
	}
	pairs := scoreFilePairs(files, 20, 70)
	if len(pairs) != 1 {
		t.Fatalf("len(pairs) = %d, want 1", len(pairs))
	}
	p := pairs[0]
	// 2 * 30 / (40 + 40) * 100 = 75
	if p.Similarity != 75 {
		t.Errorf("Similarity = %d, want 75", p.Similarity)
	}
	if p.SharedLines != 30 {
		t.Errorf("SharedLines = %d, want 30", p.SharedLines)
	}
	if p.FileA != "a.js" || p.FileB != "b.js" {
		t.Errorf("pair files = %s, %s", p.FileA, p.FileB)
	}
	if p.Suggestion != "Consider extracting a shared base or utilities" {
		t.Errorf("Suggestion = %q", p.Suggestion)
	}
}

func TestScoreFilePairsMinFileLines(t *testing.T) {
	content := strings.Join(buildLines("tiny", 10), "\n")
	files := []fileLineSet{
		newFileLineSet("a.js", content),
		newFileLineSet("b.js", content),
	}
	if pairs := scoreFilePairs(files, 20, 70); len(pairs) != 0 {
		t.Errorf("identical files under the line floor produced %d pairs, want 0", len(pairs))
	}
}

func TestScoreFilePairsThreshold(t *testing.T) {
	shared := buildLines("shared", 10)
	a := strings.Join(append(append([]string{}, shared...), buildLines("only_a", 30)...), "\n")
	b := strings.Join(append(append([]string{}, shared...), buildLines("only_b", 30)...), "\n")

	files := []fileLineSet{
		newFileLineSet("a.js", a),
		newFileLineSet("b.js", b),
	}
	// 2 * 10 / 80 * 100 = 25, below threshold.
	if pairs := scoreFilePairs(files, 20, 70); len(pairs) != 0 {
		t.Errorf("low-overlap pair retained: %d pairs, want 0", len(pairs))
	}
}

func TestScoreFilePairsIgnoresShortLines(t *testing.T) {
	// Braces and one-token lines never enter the line sets.
	a := strings.Join(append(buildLines("left", 25), "}", "{", "end"), "\n")
	b := strings.Join(append(buildLines("right", 25), "}", "{", "end"), "\n")
	files := []fileLineSet{
		newFileLineSet("a.js", a),
		newFileLineSet("b.js", b),
	}
	if pairs := scoreFilePairs(files, 20, 70); len(pairs) != 0 {
		t.Errorf("trivial shared lines inflated similarity: %d pairs", len(pairs))
	}
}

func TestSharedFunctionNames(t *testing.T) {
	a := `func validateInput(s string) error { return nil }
func renderPage(w io.Writer) {}
func loadState() {}`
	b := `func validateInput(s string) error { return nil }
func renderPage(w io.Writer) {}
func saveState() {}`

	shared := sharedFunctionNames(a, b)
	if len(shared) != 2 {
		t.Fatalf("len(shared) = %d, want 2: %v", len(shared), shared)
	}
	if shared[0] != "renderPage" || shared[1] != "validateInput" {
		t.Errorf("shared = %v, want sorted [renderPage validateInput]", shared)
	}
}

func TestSharedFunctionNamesCap(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 6; i++ {
		fmt.Fprintf(&sb, "function helper%d(x) { return x }\n", i)
	}
	shared := sharedFunctionNames(sb.String(), sb.String())
	if len(shared) != maxSharedFunctions {
		t.Errorf("len(shared) = %d, want cap %d", len(shared), maxSharedFunctions)
	}
}

func TestSharedFunctionNamesArrowBindings(t *testing.T) {
	a := "const formatDate = (d) => d.toISOString()\nconst parseDate = (s) => new Date(s)"
	b := "const formatDate = (d) => d.toISOString()\nconst other = 1"
	shared := sharedFunctionNames(a, b)
	if len(shared) != 1 || shared[0] != "formatDate" {
		t.Errorf("shared = %v, want [formatDate]", shared)
	}
}

func TestSharedImportCount(t *testing.T) {
	a := `import { api } from './api'
import { log } from './log'
import { cfg } from './config'
import { x } from './x'`
	b := `import { api } from './api'
import { log } from './log'
import { cfg } from './config'
import { y } from './y'`
	if n := sharedImportCount(a, b); n != 3 {
		t.Errorf("sharedImportCount = %d, want 3", n)
	}
	if n := sharedImportCount(a, "no imports here"); n != 0 {
		t.Errorf("sharedImportCount = %d, want 0", n)
	}
}

func TestSimilaritySuggestionTiers(t *testing.T) {
	tests := []struct {
		similarity int
		want       string
	}{
		{95, "Files are near-identical: merge them or share a common base"},
		{90, "Files are near-identical: merge them or share a common base"},
		{85, "High similarity: extract common logic into a shared module"},
		{72, "Consider extracting a shared base or utilities"},
	}
	for _, tt := range tests {
		if got := similaritySuggestion(tt.similarity); got != tt.want {
			t.Errorf("similaritySuggestion(%d) = %q, want %q", tt.similarity, got, tt.want)
		}
	}
}
