package duplication

import (
	"sort"
	"strings"

	"github.com/panbanda/mimic/pkg/models"
)

// buildCloneGroups partitions duplicate blocks by their participating
// file set and turns each retained block into a reportable group. Per
// file-set emission is capped to keep pathological corpora from flooding
// the report; excess blocks are dropped, not merged.
func buildCloneGroups(blocks []models.DuplicateBlock, maxPerFileSet int) []models.CloneGroup {
	perKey := make(map[string][]models.DuplicateBlock)
	keys := make([]string, 0)

	for _, block := range blocks {
		key := fileSetKey(block.Occurrences)
		if _, ok := perKey[key]; !ok {
			keys = append(keys, key)
		}
		perKey[key] = append(perKey[key], block)
	}
	sort.Strings(keys)

	groups := make([]models.CloneGroup, 0, len(blocks))
	for _, key := range keys {
		emitted := 0
		for _, block := range perKey[key] {
			if emitted >= maxPerFileSet {
				break
			}
			emitted++

			instances := make([]models.CloneInstance, 0, len(block.Occurrences))
			for _, occ := range block.Occurrences {
				instances = append(instances, models.CloneInstance{
					File:      occ.File,
					StartLine: occ.StartLine,
					EndLine:   occ.EndLine,
					Snippet:   block.Sample,
				})
			}

			groups = append(groups, models.CloneGroup{
				Instances: instances,
				// Block-level matches are exact by construction.
				Similarity:     100,
				Lines:          block.Occurrences[0].Lines(),
				Classification: models.ClassificationExact,
				Suggestion:     block.Suggestion,
			})
		}
	}

	// Order by total duplicated volume, the primary remediation signal.
	sort.SliceStable(groups, func(i, j int) bool {
		vi, vj := groups[i].Volume(), groups[j].Volume()
		if vi != vj {
			return vi > vj
		}
		a, b := groups[i].Instances[0], groups[j].Instances[0]
		if a.File != b.File {
			return a.File < b.File
		}
		return a.StartLine < b.StartLine
	})

	for i := range groups {
		groups[i].ID = i + 1
	}

	return groups
}

// fileSetKey builds the partition key: the sorted, de-duplicated set of
// files a block appears in.
func fileSetKey(occurrences []models.Occurrence) string {
	seen := make(map[string]struct{}, len(occurrences))
	files := make([]string, 0, len(occurrences))
	for _, occ := range occurrences {
		if _, ok := seen[occ.File]; ok {
			continue
		}
		seen[occ.File] = struct{}{}
		files = append(files, occ.File)
	}
	sort.Strings(files)
	return strings.Join(files, "\x00")
}
