package duplication

import (
	"fmt"
	"sort"

	"github.com/panbanda/mimic/pkg/models"
)

const (
	// highSimilarityFloor marks pairs worth a consolidation push.
	highSimilarityFloor = 80

	// hotBlockLines and hotBlockInstances gate the block-volume rule.
	hotBlockLines     = 10
	hotBlockInstances = 3

	// minorGroupLines, minorGroupInstances, and minorGroupFloor gate the
	// low-priority cleanup rule.
	minorGroupLines     = 5
	minorGroupInstances = 2
	minorGroupFloor     = 5

	// patternSavingsPerSite approximates lines saved per call site when a
	// repeated idiom is extracted.
	patternSavingsPerSite = 5
)

// buildRecommendations derives prioritized remediation advice from the
// analysis results. Rules are additive and emitted high to low.
func buildRecommendations(groups []models.CloneGroup, similarFiles []models.SimilarFilePair, patterns []models.PatternDuplicate) []models.Recommendation {
	recs := make([]models.Recommendation, 0)

	var nearIdentical []models.SimilarFilePair
	for _, pair := range similarFiles {
		if pair.Similarity >= highSimilarityFloor {
			nearIdentical = append(nearIdentical, pair)
		}
	}
	if len(nearIdentical) > 0 {
		files := make([]string, 0, len(nearIdentical)*2)
		savings := 0
		for _, pair := range nearIdentical {
			files = append(files, pair.FileA, pair.FileB)
			savings += pair.SharedLines / 2
		}
		recs = append(recs, models.Recommendation{
			Priority:         models.PriorityHigh,
			Category:         "Similar Files",
			Files:            dedupFiles(files),
			Rationale:        fmt.Sprintf("%d file pairs share at least %d%% of their content", len(nearIdentical), highSimilarityFloor),
			Action:           "Consolidate near-identical files into shared modules",
			EstimatedSavings: savings,
		})
	}

	var hotGroups []models.CloneGroup
	for _, group := range groups {
		if group.Lines >= hotBlockLines && len(group.Instances) >= hotBlockInstances {
			hotGroups = append(hotGroups, group)
		}
	}
	if len(hotGroups) > 0 {
		files := make([]string, 0)
		savings := 0
		for _, group := range hotGroups {
			for _, inst := range group.Instances {
				files = append(files, inst.File)
			}
			savings += group.Lines * (len(group.Instances) - 1)
		}
		recs = append(recs, models.Recommendation{
			Priority:         models.PriorityHigh,
			Category:         "Duplicate Code Blocks",
			Files:            dedupFiles(files),
			Rationale:        fmt.Sprintf("%d blocks of %d+ lines repeat across %d+ locations", len(hotGroups), hotBlockLines, hotBlockInstances),
			Action:           "Extract the repeated blocks into shared functions",
			EstimatedSavings: savings,
		})
	}

	if len(patterns) > 0 {
		top := patterns[0]
		files := make([]string, 0, len(top.Occurrences))
		for _, occ := range top.Occurrences {
			files = append(files, occ.File)
		}
		recs = append(recs, models.Recommendation{
			Priority:         models.PriorityMedium,
			Category:         "Code Patterns",
			Files:            dedupFiles(files),
			Rationale:        fmt.Sprintf("The %q idiom repeats %d times", top.Name, top.Count),
			Action:           top.Suggestion,
			EstimatedSavings: top.Count * patternSavingsPerSite,
		})
	}

	minor := 0
	minorSavings := 0
	minorFiles := make([]string, 0)
	for _, group := range groups {
		if group.Lines >= minorGroupLines && len(group.Instances) == minorGroupInstances {
			minor++
			minorSavings += group.Lines
			for _, inst := range group.Instances {
				minorFiles = append(minorFiles, inst.File)
			}
		}
	}
	if minor > minorGroupFloor {
		recs = append(recs, models.Recommendation{
			Priority:         models.PriorityLow,
			Category:         "Minor Duplicates",
			Files:            dedupFiles(minorFiles),
			Rationale:        fmt.Sprintf("%d small blocks are duplicated exactly once each", minor),
			Action:           "Fold small two-instance duplicates into helpers during routine refactoring",
			EstimatedSavings: minorSavings,
		})
	}

	return recs
}

// dedupFiles returns the sorted distinct file list.
func dedupFiles(files []string) []string {
	seen := make(map[string]struct{}, len(files))
	out := make([]string, 0, len(files))
	for _, f := range files {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
