package models

// Classification labels how a clone group was matched.
type Classification string

const (
	// ClassificationExact marks groups found by content-addressed block
	// matching. Block-level matches are exact by construction.
	ClassificationExact Classification = "exact"
	// ClassificationSimilar is reserved for renderers that merge
	// file-similarity findings into the group list.
	ClassificationSimilar Classification = "similar"
	// ClassificationStructural is declared in the schema but never produced
	// by the engine.
	ClassificationStructural Classification = "structural"
)

// Priority ranks a recommendation.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Occurrence is one placement of a duplicated block within a file.
type Occurrence struct {
	File      string `json:"file"`
	StartLine uint32 `json:"start_line"`
	EndLine   uint32 `json:"end_line"`
}

// Lines returns the number of lines the occurrence spans.
func (o Occurrence) Lines() int {
	return int(o.EndLine-o.StartLine) + 1
}

// Overlaps reports whether two same-file occurrences intersect: either
// endpoint of o falls within other. Windows have a fixed length, so the
// endpoint test is complete.
func (o Occurrence) Overlaps(other Occurrence) bool {
	if o.File != other.File {
		return false
	}
	return (o.StartLine >= other.StartLine && o.StartLine <= other.EndLine) ||
		(o.EndLine >= other.StartLine && o.EndLine <= other.EndLine)
}

// DuplicateBlock is a fingerprint with at least two retained occurrences.
type DuplicateBlock struct {
	Fingerprint string       `json:"fingerprint"`
	Sample      string       `json:"sample"`
	Occurrences []Occurrence `json:"occurrences"`
	Suggestion  string       `json:"suggestion"`
}

// DistinctFiles returns the number of distinct files the block appears in.
func (b DuplicateBlock) DistinctFiles() int {
	seen := make(map[string]struct{}, len(b.Occurrences))
	for _, occ := range b.Occurrences {
		seen[occ.File] = struct{}{}
	}
	return len(seen)
}

// CloneInstance is a single member of a clone group.
type CloneInstance struct {
	File      string `json:"file"`
	StartLine uint32 `json:"start_line"`
	EndLine   uint32 `json:"end_line"`
	Snippet   string `json:"snippet"`
}

// CloneGroup is the reportable unit bundling all occurrences of one
// duplicate block.
type CloneGroup struct {
	ID             int             `json:"id"`
	Instances      []CloneInstance `json:"instances"`
	Similarity     int             `json:"similarity"`
	Lines          int             `json:"lines"`
	Classification Classification  `json:"classification"`
	Suggestion     string          `json:"suggestion"`
}

// Volume is the total duplicated line count the group represents, the
// primary ordering signal for remediation priority.
func (g CloneGroup) Volume() int {
	return g.Lines * len(g.Instances)
}

// SimilarFilePair is two whole files judged textually similar.
type SimilarFilePair struct {
	FileA           string   `json:"file_a"`
	FileB           string   `json:"file_b"`
	Similarity      int      `json:"similarity"`
	SharedLines     int      `json:"shared_lines"`
	LinesA          int      `json:"lines_a"`
	LinesB          int      `json:"lines_b"`
	SharedFunctions []string `json:"shared_functions,omitempty"`
	SharedImports   int      `json:"shared_imports,omitempty"`
	Suggestion      string   `json:"suggestion"`
}

// PatternOccurrence is one match of a catalog idiom.
type PatternOccurrence struct {
	File    string `json:"file"`
	Line    uint32 `json:"line"`
	Snippet string `json:"snippet"`
}

// PatternDuplicate is a repeated syntactic idiom flagged by the fixed
// heuristic catalog rather than by hashing.
type PatternDuplicate struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Count       int                 `json:"count"`
	Occurrences []PatternOccurrence `json:"occurrences"`
	Suggestion  string              `json:"suggestion"`
}

// Recommendation is a prioritized remediation item derived from the
// analysis collections.
type Recommendation struct {
	Priority         Priority `json:"priority"`
	Category         string   `json:"category"`
	Files            []string `json:"files"`
	Rationale        string   `json:"rationale"`
	Action           string   `json:"action"`
	EstimatedSavings int      `json:"estimated_savings"`
}

// DuplicationHotspot is a file with a high concentration of duplication.
type DuplicationHotspot struct {
	File            string  `json:"file"`
	DuplicateLines  int     `json:"duplicate_lines"`
	CloneGroupCount int     `json:"clone_group_count"`
	Severity        float64 `json:"severity"`
}

// DuplicationSummary provides aggregate statistics.
type DuplicationSummary struct {
	TotalFilesAnalyzed    int                  `json:"total_files_analyzed"`
	TotalLinesAnalyzed    int                  `json:"total_lines_analyzed"`
	DuplicatedLines       int                  `json:"duplicated_lines"`
	DuplicationPercentage float64              `json:"duplication_percentage"`
	EstimatedSavings      int                  `json:"estimated_savings"`
	AvgSimilarity         float64              `json:"avg_similarity"`
	StdDevSimilarity      float64              `json:"stddev_similarity"`
	P50Similarity         float64              `json:"p50_similarity"`
	P95Similarity         float64              `json:"p95_similarity"`
	Hotspots              []DuplicationHotspot `json:"hotspots,omitempty"`
}

// DuplicationAnalysis is the full duplication detection result. All fields
// are plain, fully-resolved data so any renderer can serialize it.
type DuplicationAnalysis struct {
	Blocks          []DuplicateBlock   `json:"blocks"`
	Groups          []CloneGroup       `json:"groups"`
	SimilarFiles    []SimilarFilePair  `json:"similar_files"`
	Patterns        []PatternDuplicate `json:"patterns"`
	Recommendations []Recommendation   `json:"recommendations"`
	Summary         DuplicationSummary `json:"summary"`
}

// NewDuplicationAnalysis returns the canonical empty result: every counter
// zero, every collection empty and non-nil.
func NewDuplicationAnalysis() *DuplicationAnalysis {
	return &DuplicationAnalysis{
		Blocks:          make([]DuplicateBlock, 0),
		Groups:          make([]CloneGroup, 0),
		SimilarFiles:    make([]SimilarFilePair, 0),
		Patterns:        make([]PatternDuplicate, 0),
		Recommendations: make([]Recommendation, 0),
	}
}
