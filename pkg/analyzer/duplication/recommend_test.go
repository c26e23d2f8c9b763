package duplication

import (
	"testing"

	"github.com/panbanda/mimic/pkg/models"
)

func groupOf(lines int, files ...string) models.CloneGroup {
	instances := make([]models.CloneInstance, 0, len(files))
	for _, f := range files {
		instances = append(instances, models.CloneInstance{File: f, StartLine: 1, EndLine: uint32(lines)})
	}
	return models.CloneGroup{
		Instances:      instances,
		Similarity:     100,
		Lines:          lines,
		Classification: models.ClassificationExact,
	}
}

func TestBuildRecommendationsSimilarFiles(t *testing.T) {
	pairs := []models.SimilarFilePair{
		{FileA: "a.js", FileB: "b.js", Similarity: 85, SharedLines: 40},
		{FileA: "c.js", FileB: "d.js", Similarity: 75, SharedLines: 30},
	}
	recs := buildRecommendations(nil, pairs, nil)
	if len(recs) != 1 {
		t.Fatalf("len(recs) = %d, want 1", len(recs))
	}
	r := recs[0]
	if r.Priority != models.PriorityHigh || r.Category != "Similar Files" {
		t.Errorf("rec = %s/%s", r.Priority, r.Category)
	}
	// Only the 85-similarity pair qualifies; savings = 40/2.
	if r.EstimatedSavings != 20 {
		t.Errorf("EstimatedSavings = %d, want 20", r.EstimatedSavings)
	}
	if len(r.Files) != 2 {
		t.Errorf("Files = %v, want the qualifying pair only", r.Files)
	}
}

func TestBuildRecommendationsHotBlocks(t *testing.T) {
	groups := []models.CloneGroup{
		groupOf(12, "a.go", "b.go", "c.go"),
		groupOf(5, "d.go", "e.go"),
	}
	recs := buildRecommendations(groups, nil, nil)
	if len(recs) != 1 {
		t.Fatalf("len(recs) = %d, want 1", len(recs))
	}
	r := recs[0]
	if r.Category != "Duplicate Code Blocks" || r.Priority != models.PriorityHigh {
		t.Errorf("rec = %s/%s", r.Priority, r.Category)
	}
	// 12 lines * (3-1) instances.
	if r.EstimatedSavings != 24 {
		t.Errorf("EstimatedSavings = %d, want 24", r.EstimatedSavings)
	}
}

func TestBuildRecommendationsPatterns(t *testing.T) {
	patterns := []models.PatternDuplicate{
		{Name: "catch-and-log", Count: 7, Suggestion: "Centralize error handling in a shared helper or middleware",
			Occurrences: []models.PatternOccurrence{{File: "a.js", Line: 3}}},
		{Name: "inline-transform-callback", Count: 4},
	}
	recs := buildRecommendations(nil, nil, patterns)
	if len(recs) != 1 {
		t.Fatalf("len(recs) = %d, want 1", len(recs))
	}
	r := recs[0]
	if r.Priority != models.PriorityMedium || r.Category != "Code Patterns" {
		t.Errorf("rec = %s/%s", r.Priority, r.Category)
	}
	if r.EstimatedSavings != 7*patternSavingsPerSite {
		t.Errorf("EstimatedSavings = %d, want %d", r.EstimatedSavings, 7*patternSavingsPerSite)
	}
	if r.Action != patterns[0].Suggestion {
		t.Errorf("Action = %q, want the top idiom's suggestion", r.Action)
	}
}

func TestBuildRecommendationsMinorDuplicates(t *testing.T) {
	groups := make([]models.CloneGroup, 0, 6)
	for i := 0; i < 6; i++ {
		groups = append(groups, groupOf(5, "a.go", "b.go"))
	}
	recs := buildRecommendations(groups, nil, nil)
	if len(recs) != 1 {
		t.Fatalf("len(recs) = %d, want 1", len(recs))
	}
	if recs[0].Priority != models.PriorityLow || recs[0].Category != "Minor Duplicates" {
		t.Errorf("rec = %s/%s", recs[0].Priority, recs[0].Category)
	}
	// Sum of the qualifying groups' line counts.
	if recs[0].EstimatedSavings != 30 {
		t.Errorf("EstimatedSavings = %d, want 30", recs[0].EstimatedSavings)
	}
}

func TestBuildRecommendationsMinorFloorNotMet(t *testing.T) {
	groups := make([]models.CloneGroup, 0, 5)
	for i := 0; i < 5; i++ {
		groups = append(groups, groupOf(5, "a.go", "b.go"))
	}
	if recs := buildRecommendations(groups, nil, nil); len(recs) != 0 {
		t.Errorf("five minor groups triggered the rule, want more than %d required", minorGroupFloor)
	}
}

func TestBuildRecommendationsEmpty(t *testing.T) {
	recs := buildRecommendations(nil, nil, nil)
	if len(recs) != 0 {
		t.Errorf("len(recs) = %d, want 0 (no placeholders)", len(recs))
	}
}

func TestBuildRecommendationsPriorityOrder(t *testing.T) {
	pairs := []models.SimilarFilePair{{FileA: "a.js", FileB: "b.js", Similarity: 90, SharedLines: 10}}
	groups := []models.CloneGroup{groupOf(15, "a.go", "b.go", "c.go")}
	patterns := []models.PatternDuplicate{{Name: "catch-and-log", Count: 3}}

	recs := buildRecommendations(groups, pairs, patterns)
	if len(recs) != 3 {
		t.Fatalf("len(recs) = %d, want 3", len(recs))
	}
	want := []models.Priority{models.PriorityHigh, models.PriorityHigh, models.PriorityMedium}
	for i, p := range want {
		if recs[i].Priority != p {
			t.Errorf("recs[%d].Priority = %s, want %s", i, recs[i].Priority, p)
		}
	}
}
