package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/panbanda/mimic/pkg/analyzer/duplication"
	"github.com/panbanda/mimic/pkg/config"
	"github.com/panbanda/mimic/pkg/models"
	"github.com/panbanda/mimic/pkg/scanner"
	toon "github.com/toon-format/toon-go"
)

// AnalyzeInput is the base input for all analysis tools.
type AnalyzeInput struct {
	Paths []string `json:"paths,omitempty" jsonschema:"Paths to analyze. Defaults to current directory if empty."`
}

// DuplicatesInput configures block-level duplicate detection.
type DuplicatesInput struct {
	AnalyzeInput
	MinLines    int   `json:"min_lines,omitempty" jsonschema:"Sliding-window height in lines. Default 5."`
	MaxFileSize int64 `json:"max_file_size,omitempty" jsonschema:"Skip files larger than this many bytes. 0 means no limit."`
}

// SimilarInput configures pairwise file similarity scoring.
type SimilarInput struct {
	AnalyzeInput
	Threshold    int `json:"threshold,omitempty" jsonschema:"Similarity retention floor, 0-100. Default 70."`
	MinFileLines int `json:"min_file_lines,omitempty" jsonschema:"Minimum file length in lines for pairing. Default 20."`
}

// PatternsInput configures idiom catalog matching.
type PatternsInput struct {
	AnalyzeInput
	MinOccurrences int `json:"min_occurrences,omitempty" jsonschema:"Minimum corpus-wide occurrences to report an idiom. Default 3."`
}

func getPaths(input AnalyzeInput) []string {
	if len(input.Paths) == 0 {
		return []string{"."}
	}
	return input.Paths
}

// scanPaths enumerates code files under the given paths with default
// exclusion rules.
func scanPaths(paths []string) ([]string, error) {
	s := scanner.NewScanner(config.DefaultConfig())
	var files []string
	for _, path := range paths {
		found, err := s.ScanDir(path)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

func toolResult(data any) (*mcp.CallToolResult, any, error) {
	out, err := toon.Marshal(data, toon.WithIndent(2))
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(out)},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

func handleDetectDuplicates(ctx context.Context, req *mcp.CallToolRequest, input DuplicatesInput) (*mcp.CallToolResult, any, error) {
	files, err := scanPaths(getPaths(input.AnalyzeInput))
	if err != nil {
		return toolError(err.Error())
	}
	if len(files) == 0 {
		return toolError("no source files found")
	}

	opts := []duplication.Option{}
	if input.MinLines > 0 {
		opts = append(opts, duplication.WithMinBlockLines(input.MinLines))
	}
	if input.MaxFileSize > 0 {
		opts = append(opts, duplication.WithMaxFileSize(input.MaxFileSize))
	}

	a := duplication.New(opts...)
	defer a.Close()
	analysis, err := a.Analyze(ctx, files)
	if err != nil {
		return toolError(err.Error())
	}

	out := struct {
		Blocks  []models.DuplicateBlock   `json:"blocks" toon:"blocks"`
		Groups  []models.CloneGroup       `json:"groups" toon:"groups"`
		Summary models.DuplicationSummary `json:"summary" toon:"summary"`
	}{analysis.Blocks, analysis.Groups, analysis.Summary}
	return toolResult(out)
}

func handleSimilarFiles(ctx context.Context, req *mcp.CallToolRequest, input SimilarInput) (*mcp.CallToolResult, any, error) {
	files, err := scanPaths(getPaths(input.AnalyzeInput))
	if err != nil {
		return toolError(err.Error())
	}
	if len(files) == 0 {
		return toolError("no source files found")
	}

	cfg := config.DefaultConfig().Duplication
	if input.Threshold > 0 {
		cfg.SimilarityThreshold = input.Threshold
	}
	if input.MinFileLines > 0 {
		cfg.MinFileLines = input.MinFileLines
	}

	a := duplication.New(duplication.WithConfig(cfg))
	defer a.Close()
	analysis, err := a.Analyze(ctx, files)
	if err != nil {
		return toolError(err.Error())
	}

	out := struct {
		SimilarFiles []models.SimilarFilePair  `json:"similar_files" toon:"similar_files"`
		Summary      models.DuplicationSummary `json:"summary" toon:"summary"`
	}{analysis.SimilarFiles, analysis.Summary}
	return toolResult(out)
}

func handleScanPatterns(ctx context.Context, req *mcp.CallToolRequest, input PatternsInput) (*mcp.CallToolResult, any, error) {
	files, err := scanPaths(getPaths(input.AnalyzeInput))
	if err != nil {
		return toolError(err.Error())
	}
	if len(files) == 0 {
		return toolError("no source files found")
	}

	cfg := config.DefaultConfig().Duplication
	if input.MinOccurrences > 0 {
		cfg.MinPatternOccurrences = input.MinOccurrences
	}

	a := duplication.New(duplication.WithConfig(cfg))
	defer a.Close()
	analysis, err := a.Analyze(ctx, files)
	if err != nil {
		return toolError(err.Error())
	}

	out := struct {
		Patterns        []models.PatternDuplicate `json:"patterns" toon:"patterns"`
		Recommendations []models.Recommendation   `json:"recommendations" toon:"recommendations"`
	}{analysis.Patterns, analysis.Recommendations}
	return toolResult(out)
}
