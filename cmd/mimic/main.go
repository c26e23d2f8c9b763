package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/panbanda/mimic/pkg/analyzer/duplication"
	"github.com/panbanda/mimic/pkg/config"
	"github.com/panbanda/mimic/pkg/models"
	"github.com/panbanda/mimic/pkg/output"
	"github.com/panbanda/mimic/pkg/progress"
	"github.com/panbanda/mimic/pkg/scanner"
	"github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = "none"    //nolint:unused // set via ldflags at build time
	date    = "unknown" //nolint:unused // set via ldflags at build time
)

func main() {
	app := &cli.App{
		Name:    "mimic",
		Usage:   "Code duplication detection CLI",
		Version: version,
		Description: `Mimic finds duplicated and near-duplicated source text across a codebase:
exact block clones via content fingerprinting, near-identical files via
set similarity, and copy-paste idioms via a fixed pattern catalog.

Supports: Go, Rust, Python, TypeScript, JavaScript, Java, C, C++, Ruby, PHP`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"MIMIC_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "text",
				Usage:   "Output format: text, json, markdown, toon",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to file",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output",
			},
		},
		Commands: []*cli.Command{
			blocksCmd(),
			similarCmd(),
			patternsCmd(),
			reportCmd(),
			initCmd(),
			mcpCmd(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

// getPaths returns paths from positional args, defaulting to ["."]
func getPaths(c *cli.Context) []string {
	if c.Args().Len() > 0 {
		return c.Args().Slice()
	}
	return []string{"."}
}

// loadConfig resolves the configuration from --config or the search path.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault(), nil
}

// scanFiles enumerates code files under each path with the config's
// exclusion rules applied.
func scanFiles(cfg *config.Config, paths []string) ([]string, error) {
	scan := scanner.NewScanner(cfg)
	var files []string
	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("invalid path %s: %w", path, err)
		}
		found, err := scan.ScanDir(absPath)
		if err != nil {
			return nil, fmt.Errorf("failed to scan directory %s: %w", path, err)
		}
		files = append(files, found...)
	}
	return files, nil
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 4 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// runAnalysis is the shared front half of every command: load config, scan,
// analyze with a progress bar.
func runAnalysis(c *cli.Context, label string, opts ...duplication.Option) (*models.DuplicationAnalysis, *output.Formatter, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}

	files, err := scanFiles(cfg, getPaths(c))
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		color.Yellow("No source files found")
		return nil, nil, nil
	}

	opts = append([]duplication.Option{duplication.WithConfig(cfg.Duplication)}, opts...)
	a := duplication.New(opts...)
	defer a.Close()

	tracker := progress.NewTracker(label, len(files))
	analysis, err := a.AnalyzeProjectWithProgress(files, tracker.Tick)
	tracker.FinishSuccess()
	if err != nil {
		return nil, nil, fmt.Errorf("analysis failed: %w", err)
	}

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), true)
	if err != nil {
		return nil, nil, err
	}
	return analysis, formatter, nil
}

func blocksCmd() *cli.Command {
	return &cli.Command{
		Name:      "blocks",
		Aliases:   []string{"dup", "clones"},
		Usage:     "Detect duplicated code blocks and clone groups",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "min-lines",
				Usage: "Sliding-window height in lines (default from config)",
			},
			&cli.Int64Flag{
				Name:  "max-file-size",
				Usage: "Skip files larger than this many bytes (0 = no limit)",
			},
		},
		Action: runBlocksCmd,
	}
}

func runBlocksCmd(c *cli.Context) error {
	var opts []duplication.Option
	if v := c.Int("min-lines"); v > 0 {
		opts = append(opts, duplication.WithMinBlockLines(v))
	}
	if v := c.Int64("max-file-size"); v > 0 {
		opts = append(opts, duplication.WithMaxFileSize(v))
	}

	analysis, formatter, err := runAnalysis(c, "Detecting duplicate blocks...", opts...)
	if err != nil || analysis == nil {
		return err
	}
	defer formatter.Close()

	if len(analysis.Groups) == 0 {
		if formatter.Format() == output.FormatText {
			color.Green("No duplicated blocks found")
		}
		return formatter.Output(analysis)
	}

	var rows [][]string
	for _, group := range analysis.Groups {
		first := group.Instances[0]
		rows = append(rows, []string{
			fmt.Sprintf("%d", group.ID),
			fmt.Sprintf("%s:%d-%d", first.File, first.StartLine, first.EndLine),
			fmt.Sprintf("%d", len(group.Instances)),
			fmt.Sprintf("%d", group.Lines),
			truncate(group.Suggestion, 48),
		})
	}

	table := output.NewTable(
		"Duplicate Blocks",
		[]string{"ID", "First Instance", "Instances", "Lines", "Suggestion"},
		rows,
		[]string{
			fmt.Sprintf("Groups: %d", len(analysis.Groups)),
			fmt.Sprintf("Duplicated Lines: %d", analysis.Summary.DuplicatedLines),
			fmt.Sprintf("Duplication: %.1f%%", analysis.Summary.DuplicationPercentage),
			fmt.Sprintf("Est. Savings: %d lines", analysis.Summary.EstimatedSavings),
		},
		analysis,
	)

	return formatter.Output(table)
}

func similarCmd() *cli.Command {
	return &cli.Command{
		Name:      "similar",
		Usage:     "Score whole-file similarity across the corpus",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "threshold",
				Usage: "Similarity retention floor, 0-100 (default from config)",
			},
		},
		Action: runSimilarCmd,
	}
}

func runSimilarCmd(c *cli.Context) error {
	var opts []duplication.Option
	if v := c.Int("threshold"); v > 0 {
		opts = append(opts, duplication.WithSimilarityThreshold(v))
	}

	analysis, formatter, err := runAnalysis(c, "Scoring file similarity...", opts...)
	if err != nil || analysis == nil {
		return err
	}
	defer formatter.Close()

	if len(analysis.SimilarFiles) == 0 {
		if formatter.Format() == output.FormatText {
			color.Green("No similar file pairs found")
		}
		return formatter.Output(analysis)
	}

	var rows [][]string
	for _, pair := range analysis.SimilarFiles {
		simStr := fmt.Sprintf("%d%%", pair.Similarity)
		if pair.Similarity >= 90 {
			simStr = color.RedString(simStr)
		} else if pair.Similarity >= 80 {
			simStr = color.YellowString(simStr)
		}

		evidence := fmt.Sprintf("%d shared lines", pair.SharedLines)
		if len(pair.SharedFunctions) > 0 {
			evidence = fmt.Sprintf("%s, fns: %v", evidence, pair.SharedFunctions)
		}

		rows = append(rows, []string{
			pair.FileA,
			pair.FileB,
			simStr,
			truncate(evidence, 40),
		})
	}

	table := output.NewTable(
		"Similar Files",
		[]string{"File A", "File B", "Similarity", "Evidence"},
		rows,
		[]string{
			fmt.Sprintf("Pairs: %d", len(analysis.SimilarFiles)),
			fmt.Sprintf("Avg Sim: %.0f%%", analysis.Summary.AvgSimilarity),
			fmt.Sprintf("P95 Sim: %.0f%%", analysis.Summary.P95Similarity),
		},
		analysis,
	)

	return formatter.Output(table)
}

func patternsCmd() *cli.Command {
	return &cli.Command{
		Name:      "patterns",
		Aliases:   []string{"idioms"},
		Usage:     "Scan for repeated copy-paste-prone idioms",
		ArgsUsage: "[path...]",
		Action:    runPatternsCmd,
	}
}

func runPatternsCmd(c *cli.Context) error {
	analysis, formatter, err := runAnalysis(c, "Scanning idiom catalog...")
	if err != nil || analysis == nil {
		return err
	}
	defer formatter.Close()

	if len(analysis.Patterns) == 0 {
		if formatter.Format() == output.FormatText {
			color.Green("No repeated idioms found")
		}
		return formatter.Output(analysis)
	}

	var rows [][]string
	for _, p := range analysis.Patterns {
		first := ""
		if len(p.Occurrences) > 0 {
			first = fmt.Sprintf("%s:%d", p.Occurrences[0].File, p.Occurrences[0].Line)
		}
		rows = append(rows, []string{
			p.Name,
			fmt.Sprintf("%d", p.Count),
			first,
			truncate(p.Suggestion, 48),
		})
	}

	table := output.NewTable(
		"Repeated Idioms",
		[]string{"Idiom", "Count", "First Seen", "Suggestion"},
		rows,
		[]string{fmt.Sprintf("Idioms: %d", len(analysis.Patterns))},
		analysis,
	)

	return formatter.Output(table)
}

func reportCmd() *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     "Full duplication report with prioritized recommendations",
		ArgsUsage: "[path...]",
		Action:    runReportCmd,
	}
}

func runReportCmd(c *cli.Context) error {
	analysis, formatter, err := runAnalysis(c, "Analyzing duplication...")
	if err != nil || analysis == nil {
		return err
	}
	defer formatter.Close()

	var groupRows [][]string
	for _, group := range analysis.Groups {
		first := group.Instances[0]
		groupRows = append(groupRows, []string{
			fmt.Sprintf("%d", group.ID),
			fmt.Sprintf("%s:%d-%d", first.File, first.StartLine, first.EndLine),
			fmt.Sprintf("%d", len(group.Instances)),
			fmt.Sprintf("%d", group.Lines),
		})
	}

	var pairRows [][]string
	for _, pair := range analysis.SimilarFiles {
		pairRows = append(pairRows, []string{
			pair.FileA, pair.FileB, fmt.Sprintf("%d%%", pair.Similarity),
		})
	}

	var recRows [][]string
	for _, rec := range analysis.Recommendations {
		recRows = append(recRows, []string{
			output.PriorityColor(string(rec.Priority), string(rec.Priority)),
			rec.Category,
			truncate(rec.Action, 56),
			fmt.Sprintf("%d lines", rec.EstimatedSavings),
		})
	}

	report := &output.Report{
		Title: "Duplication Report",
		Sections: []output.Renderable{
			output.NewTable("Clone Groups",
				[]string{"ID", "First Instance", "Instances", "Lines"},
				groupRows, nil, analysis.Groups),
			output.NewTable("Similar Files",
				[]string{"File A", "File B", "Similarity"},
				pairRows, nil, analysis.SimilarFiles),
			output.NewTable("Recommendations",
				[]string{"Priority", "Category", "Action", "Est. Savings"},
				recRows, nil, analysis.Recommendations),
		},
		Data: analysis,
	}

	if formatter.Format() == output.FormatText {
		defer func() {
			fmt.Println()
			color.Cyan("Files: %d  Lines: %d  Duplicated: %d (%.1f%%)  Est. savings: %d lines",
				analysis.Summary.TotalFilesAnalyzed,
				analysis.Summary.TotalLinesAnalyzed,
				analysis.Summary.DuplicatedLines,
				analysis.Summary.DuplicationPercentage,
				analysis.Summary.EstimatedSavings)
		}()
	}

	return formatter.Output(report)
}
