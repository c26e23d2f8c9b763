package duplication

import (
	"context"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/panbanda/mimic/pkg/config"
	"github.com/panbanda/mimic/pkg/fileproc"
	"github.com/panbanda/mimic/pkg/models"
	"github.com/panbanda/mimic/pkg/scanner"
	"github.com/panbanda/mimic/pkg/source"
	"github.com/panbanda/mimic/pkg/stats"
)

// Config holds the tunable thresholds for duplication analysis.
type Config struct {
	MinBlockLines         int
	MinFileLines          int
	SimilarityThreshold   int
	MaxGroupsPerFileSet   int
	MinPatternOccurrences int
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		MinBlockLines:         5,
		MinFileLines:          20,
		SimilarityThreshold:   70,
		MaxGroupsPerFileSet:   20,
		MinPatternOccurrences: 3,
	}
}

// Analyzer detects duplicated code via content fingerprinting, pairwise file
// similarity, and structural idiom matching.
type Analyzer struct {
	config      Config
	maxFileSize int64
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithMinBlockLines sets the sliding-window height for block detection.
func WithMinBlockLines(lines int) Option {
	return func(a *Analyzer) {
		a.config.MinBlockLines = lines
	}
}

// WithSimilarityThreshold sets the retention floor for file pairs.
func WithSimilarityThreshold(threshold int) Option {
	return func(a *Analyzer) {
		a.config.SimilarityThreshold = threshold
	}
}

// WithMaxFileSize sets the maximum file size to analyze (0 = no limit).
func WithMaxFileSize(maxSize int64) Option {
	return func(a *Analyzer) {
		a.maxFileSize = maxSize
	}
}

// WithConfig sets all duplication configuration from a config struct.
func WithConfig(cfg config.DuplicationConfig) Option {
	return func(a *Analyzer) {
		a.config = Config{
			MinBlockLines:         cfg.MinBlockLines,
			MinFileLines:          cfg.MinFileLines,
			SimilarityThreshold:   cfg.SimilarityThreshold,
			MaxGroupsPerFileSet:   cfg.MaxGroupsPerFileSet,
			MinPatternOccurrences: cfg.MinPatternOccurrences,
		}
		a.maxFileSize = cfg.MaxFileSize
	}
}

// New creates a new duplication analyzer with default config.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		config:      DefaultConfig(),
		maxFileSize: 0,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// fileScan is the per-file intermediate: windows for block matching, a line
// set for pairwise similarity, and raw content for idiom matching.
type fileScan struct {
	path      string
	lineCount int
	windows   []blockWindow
	lineSet   fileLineSet
	content   string
}

// AnalyzeProject analyzes a set of files for duplication.
func (a *Analyzer) AnalyzeProject(files []string) (*models.DuplicationAnalysis, error) {
	return a.AnalyzeProjectWithProgress(files, nil)
}

// AnalyzeProjectWithProgress analyzes files with an optional progress callback.
// Files are read in parallel; results are merged in sorted path order so the
// output is deterministic regardless of scheduling.
func (a *Analyzer) AnalyzeProjectWithProgress(files []string, onProgress fileproc.ProgressFunc) (*models.DuplicationAnalysis, error) {
	paths := make([]string, len(files))
	copy(paths, files)
	sort.Strings(paths)

	scans := fileproc.ForEachFileWithProgress(paths, func(path string) (fileScan, error) {
		if a.maxFileSize > 0 {
			info, err := os.Stat(path)
			if err != nil {
				return fileScan{}, err
			}
			if info.Size() > a.maxFileSize {
				return fileScan{}, nil
			}
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return fileScan{}, err
		}
		return a.scanFile(path, content), nil
	}, onProgress)

	kept := make([]fileScan, 0, len(scans))
	for _, scan := range scans {
		if scan.path != "" {
			kept = append(kept, scan)
		}
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].path < kept[j].path })

	return a.assemble(kept), nil
}

// AnalyzeProjectFromSource analyzes files read from an arbitrary content
// source, such as an in-memory snapshot. Unreadable files are skipped.
func (a *Analyzer) AnalyzeProjectFromSource(files []string, src source.ContentSource) (*models.DuplicationAnalysis, error) {
	paths := make([]string, len(files))
	copy(paths, files)
	sort.Strings(paths)

	scans := make([]fileScan, 0, len(paths))
	for _, path := range paths {
		content, err := src.Read(path)
		if err != nil {
			continue
		}
		if a.maxFileSize > 0 && int64(len(content)) > a.maxFileSize {
			continue
		}
		scans = append(scans, a.scanFile(path, content))
	}

	return a.assemble(scans), nil
}

// Analyze implements the analyzer contract over a file list.
func (a *Analyzer) Analyze(ctx context.Context, files []string) (*models.DuplicationAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return a.AnalyzeProject(files)
}

// AnalyzeRepo analyzes a repository working tree. The commit history is part
// of the uniform analyzer signature; duplication only needs the current
// snapshot, so the history is ignored and the tree is scanned directly.
func (a *Analyzer) AnalyzeRepo(ctx context.Context, history []models.Commit, repoPath string) (*models.DuplicationAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	files, err := scanner.NewScanner(nil).ScanDir(repoPath)
	if err != nil {
		return nil, err
	}
	return a.AnalyzeProject(files)
}

// Close releases analyzer resources. The duplication analyzer holds none.
func (a *Analyzer) Close() {}

// scanFile runs the per-file extraction stages.
func (a *Analyzer) scanFile(path string, content []byte) fileScan {
	text := string(content)
	lines := strings.Split(text, "\n")
	return fileScan{
		path:      path,
		lineCount: len(lines),
		windows:   windowBlocks(path, lines, a.config.MinBlockLines),
		lineSet:   newFileLineSet(path, text),
		content:   text,
	}
}

// assemble runs the corpus-wide stages over sorted per-file scans and builds
// the final analysis.
func (a *Analyzer) assemble(scans []fileScan) *models.DuplicationAnalysis {
	analysis := models.NewDuplicationAnalysis()
	analysis.Summary.TotalFilesAnalyzed = len(scans)

	totalLines := 0
	allWindows := make([]blockWindow, 0)
	lineSets := make([]fileLineSet, 0, len(scans))
	for _, scan := range scans {
		totalLines += scan.lineCount
		allWindows = append(allWindows, scan.windows...)
		lineSets = append(lineSets, scan.lineSet)
	}
	analysis.Summary.TotalLinesAnalyzed = totalLines

	analysis.Blocks = findDuplicateBlocks(allWindows)
	analysis.Groups = buildCloneGroups(analysis.Blocks, a.config.MaxGroupsPerFileSet)
	analysis.SimilarFiles = scoreFilePairs(lineSets, a.config.MinFileLines, a.config.SimilarityThreshold)
	analysis.Patterns = scanPatterns(scans, a.config.MinPatternOccurrences)
	analysis.Recommendations = buildRecommendations(analysis.Groups, analysis.SimilarFiles, analysis.Patterns)

	a.summarize(analysis, totalLines)
	return analysis
}

// summarize fills the aggregate metrics from the assembled results.
func (a *Analyzer) summarize(analysis *models.DuplicationAnalysis, totalLines int) {
	type span struct {
		file       string
		start, end uint32
	}
	seen := make(map[span]struct{})
	duplicated := 0
	savings := 0

	for _, block := range analysis.Blocks {
		for _, occ := range block.Occurrences {
			key := span{occ.File, occ.StartLine, occ.EndLine}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			duplicated += occ.Lines()
		}
		savings += block.Occurrences[0].Lines() * (len(block.Occurrences) - 1)
	}

	analysis.Summary.DuplicatedLines = duplicated
	analysis.Summary.EstimatedSavings = savings
	if totalLines > 0 {
		pct := float64(duplicated) / float64(totalLines) * 100
		if pct > 100 {
			pct = 100
		}
		analysis.Summary.DuplicationPercentage = pct
	}

	if len(analysis.SimilarFiles) > 0 {
		similarities := make([]float64, len(analysis.SimilarFiles))
		for i, pair := range analysis.SimilarFiles {
			similarities[i] = float64(pair.Similarity)
		}
		dist := stats.Describe(similarities)
		analysis.Summary.AvgSimilarity = dist.Mean
		analysis.Summary.StdDevSimilarity = dist.StdDev
		analysis.Summary.P50Similarity = dist.P50
		analysis.Summary.P95Similarity = dist.P95
	}

	analysis.Summary.Hotspots = computeHotspots(analysis.Groups)
}

// computeHotspots ranks files by how much duplication concentrates in them.
// Severity grows with duplicated volume and the number of distinct groups a
// file participates in.
func computeHotspots(groups []models.CloneGroup) []models.DuplicationHotspot {
	type fileStat struct {
		lines     int
		groupsSet map[int]bool
	}
	fileStats := make(map[string]*fileStat)

	for _, group := range groups {
		for _, inst := range group.Instances {
			fs, ok := fileStats[inst.File]
			if !ok {
				fs = &fileStat{groupsSet: make(map[int]bool)}
				fileStats[inst.File] = fs
			}
			fs.lines += group.Lines
			fs.groupsSet[group.ID] = true
		}
	}

	hotspots := make([]models.DuplicationHotspot, 0, len(fileStats))
	for file, fs := range fileStats {
		severity := math.Log(float64(fs.lines)+1) * math.Sqrt(float64(len(fs.groupsSet)))
		hotspots = append(hotspots, models.DuplicationHotspot{
			File:            file,
			DuplicateLines:  fs.lines,
			CloneGroupCount: len(fs.groupsSet),
			Severity:        severity,
		})
	}

	sort.Slice(hotspots, func(i, j int) bool {
		if hotspots[i].Severity != hotspots[j].Severity {
			return hotspots[i].Severity > hotspots[j].Severity
		}
		return hotspots[i].File < hotspots[j].File
	})

	if len(hotspots) > 10 {
		hotspots = hotspots[:10]
	}
	return hotspots
}
