package mcpserver

// Tool descriptions with interpretation guidance for LLMs.
// Each description explains what the tool does, when to use it,
// how to interpret results, and key thresholds.

func describeDuplicates() string {
	return `Detects duplicated code blocks across the codebase via content fingerprinting.

USE WHEN:
- Finding copy-paste code that should be refactored
- Identifying candidates for shared utilities or abstractions
- Reducing maintenance burden from duplicated logic
- Preparing for DRY (Don't Repeat Yourself) improvements

INTERPRETING RESULTS:
- Blocks are exact matches after normalization: comments, whitespace,
  string literals, and numeric literals are ignored; identifier names are not
- Clone groups bundle all placements of one duplicated block,
  ordered by lines x instances (total duplicated volume)
- Suggestion tiers: one file = local helper; 2-3 files = shared utility;
  more = reusable module
- duplication_percentage is duplicated lines over total lines analyzed
- estimated_savings counts lines removable by keeping one instance per block

METRICS RETURNED:
- Blocks: fingerprint, sample, occurrences with line ranges
- Groups: instances, similarity (always 100 for exact), lines, classification
- Summary: totals, percentage, savings, per-file hotspots

Larger min_lines reduces noise from trivial duplicates.`
}

func describeSimilarFiles() string {
	return `Scores whole-file similarity for every pair of sufficiently large files.

USE WHEN:
- Finding near-identical files that diverged from one copy
- Spotting modules that should share a common base
- Auditing parallel implementations across languages or services

INTERPRETING RESULTS:
- Similarity is a Dice coefficient (0-100) over distinct normalized lines
- Only files with at least min_file_lines lines are paired
- Pairs below the threshold (default 70) are dropped entirely
- shared_functions and shared_imports corroborate that the overlap is
  structural, not coincidental
- 90+: near-identical, merge or share a base
- 80-89: extract common logic into a shared module

METRICS RETURNED:
- Pairs: both paths, similarity, shared/total line counts, evidence, suggestion
- Summary: avg/P50/P95 similarity across retained pairs

Pairwise comparison is quadratic in file count; narrow the paths for large repos.`
}

func describeScanPatterns() string {
	return `Scans the corpus for a fixed catalog of copy-paste-prone syntactic idioms.

USE WHEN:
- Finding repeated boilerplate that hashing misses (shapes, not exact text)
- Locating candidates for middleware, helpers, or named transforms
- Complementing block-level detection with structural signals

INTERPRETING RESULTS:
- Idioms: HTTP handler signatures, catch-and-log blocks, chained guard
  returns, inline transform callbacks
- count is corpus-wide; displayed occurrences are capped at 10
- Idioms under min_occurrences (default 3) are not reported
- estimated savings assume ~5 extractable lines per call site

METRICS RETURNED:
- Patterns: name, description, count, occurrences (file, line, snippet)
- Recommendations: prioritized remediation derived from the scan`
}
