package duplication

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/cespare/xxhash/v2"
	"github.com/panbanda/mimic/pkg/models"
)

const (
	// minLineLength filters trivial lines (braces, short keywords) out of
	// the per-file line sets so they do not inflate similarity.
	minLineLength = 5

	// maxSharedFunctions caps the shared-symbol evidence per pair.
	maxSharedFunctions = 3

	// minSharedImports is the reporting floor for shared import evidence.
	minSharedImports = 3
)

// funcDeclRe matches function and arrow-binding declarations across the
// supported languages, loosely. Capture groups carry the declared name.
var funcDeclRe = regexp.MustCompile(`(?m)^\s*(?:export\s+)?(?:func\s+(?:\([^)]*\)\s*)?(\w+)\s*\(|def\s+(\w+)\s*\(|function\s+(\w+)\s*\(|(?:const|let|var)\s+(\w+)\s*=\s*(?:async\s+)?(?:function\b|\())`)

// importRe matches import targets: ES module specifiers, CommonJS requires,
// Python imports, and Go import lines.
var importRe = regexp.MustCompile(`(?m)^\s*(?:import\s+[^;\n]*?from\s+['"]([^'"]+)['"]|import\s+['"]([^'"]+)['"]|(?:const|let|var)\s+\w+\s*=\s*require\(['"]([^'"]+)['"]\)|from\s+([\w.]+)\s+import\b|import\s+([\w.]+)\s*$|\t"([^"]+)"$)`)

// fileLineSet is the per-file input to pairwise similarity scoring: the set
// of distinct normalized line hashes plus the raw content for evidence
// extraction.
type fileLineSet struct {
	path      string
	lineCount int
	set       *roaring64.Bitmap
	content   string
}

// newFileLineSet hashes every sufficiently long normalized line into a
// 64-bit set.
func newFileLineSet(path, content string) fileLineSet {
	lines := strings.Split(content, "\n")
	set := roaring64.New()
	for _, line := range lines {
		normalized := NormalizeLine(line)
		if len(normalized) <= minLineLength {
			continue
		}
		set.Add(xxhash.Sum64String(normalized))
	}
	return fileLineSet{
		path:      path,
		lineCount: len(lines),
		set:       set,
		content:   content,
	}
}

// scoreFilePairs computes the Dice-coefficient similarity for every pair of
// files meeting the minimum size, retaining pairs at or above threshold.
// Inputs must be sorted by path for deterministic pair ordering. Quadratic
// in file count; callers bound the corpus.
func scoreFilePairs(files []fileLineSet, minFileLines, threshold int) []models.SimilarFilePair {
	pairs := make([]models.SimilarFilePair, 0)

	for i := 0; i < len(files); i++ {
		if files[i].lineCount < minFileLines {
			continue
		}
		for j := i + 1; j < len(files); j++ {
			if files[j].lineCount < minFileLines {
				continue
			}

			a, b := files[i], files[j]
			total := a.set.GetCardinality() + b.set.GetCardinality()
			if total == 0 {
				continue
			}
			shared := roaring64.And(a.set, b.set).GetCardinality()
			similarity := int(math.Round(2 * float64(shared) / float64(total) * 100))
			if similarity < threshold {
				continue
			}

			pair := models.SimilarFilePair{
				FileA:       a.path,
				FileB:       b.path,
				Similarity:  similarity,
				SharedLines: int(shared),
				LinesA:      a.lineCount,
				LinesB:      b.lineCount,
				Suggestion:  similaritySuggestion(similarity),
			}
			pair.SharedFunctions = sharedFunctionNames(a.content, b.content)
			if n := sharedImportCount(a.content, b.content); n >= minSharedImports {
				pair.SharedImports = n
			}
			pairs = append(pairs, pair)
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].Similarity != pairs[j].Similarity {
			return pairs[i].Similarity > pairs[j].Similarity
		}
		if pairs[i].FileA != pairs[j].FileA {
			return pairs[i].FileA < pairs[j].FileA
		}
		return pairs[i].FileB < pairs[j].FileB
	})

	return pairs
}

// similaritySuggestion tiers the remedy by score.
func similaritySuggestion(similarity int) string {
	switch {
	case similarity >= 90:
		return "Files are near-identical: merge them or share a common base"
	case similarity >= 80:
		return "High similarity: extract common logic into a shared module"
	default:
		return "Consider extracting a shared base or utilities"
	}
}

// declaredNames extracts declared function names from content.
func declaredNames(content string) map[string]bool {
	names := make(map[string]bool)
	for _, m := range funcDeclRe.FindAllStringSubmatch(content, -1) {
		for _, g := range m[1:] {
			if g != "" {
				names[g] = true
			}
		}
	}
	return names
}

// sharedFunctionNames returns up to maxSharedFunctions names declared in
// both files, sorted.
func sharedFunctionNames(a, b string) []string {
	namesA := declaredNames(a)
	if len(namesA) == 0 {
		return nil
	}
	namesB := declaredNames(b)

	var shared []string
	for name := range namesA {
		if namesB[name] {
			shared = append(shared, name)
		}
	}
	if len(shared) == 0 {
		return nil
	}

	sort.Strings(shared)
	if len(shared) > maxSharedFunctions {
		shared = shared[:maxSharedFunctions]
	}
	return shared
}

// importTargets extracts import target strings from content.
func importTargets(content string) map[string]bool {
	targets := make(map[string]bool)
	for _, m := range importRe.FindAllStringSubmatch(content, -1) {
		for _, g := range m[1:] {
			if g != "" {
				targets[g] = true
			}
		}
	}
	return targets
}

// sharedImportCount counts import targets both files pull in.
func sharedImportCount(a, b string) int {
	targetsA := importTargets(a)
	if len(targetsA) == 0 {
		return 0
	}
	targetsB := importTargets(b)

	shared := 0
	for t := range targetsA {
		if targetsB[t] {
			shared++
		}
	}
	return shared
}
