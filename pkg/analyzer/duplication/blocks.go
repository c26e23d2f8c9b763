package duplication

import (
	"sort"

	"github.com/panbanda/mimic/pkg/models"
)

// findDuplicateBlocks groups windows by fingerprint across the corpus,
// collapses sliding-window overlaps, and promotes fingerprints with at least
// two surviving occurrences. Windows must arrive in deterministic
// (sorted-file, ascending-line) order; the greedy dedup is order-sensitive
// by design.
//
// The kept-interval registry is shared across fingerprints per file, so the
// shifted windows inside one physical duplicated region (which hash to
// different fingerprints) collapse to the first fingerprint discovered.
// Intervals are committed only when a fingerprint is promoted; a dropped
// candidate never claims lines.
func findDuplicateBlocks(windows []blockWindow) []models.DuplicateBlock {
	type candidate struct {
		occurrences []models.Occurrence
		sample      string
	}

	byFingerprint := make(map[string]*candidate)
	order := make([]string, 0)

	for _, w := range windows {
		c, ok := byFingerprint[w.fingerprint]
		if !ok {
			c = &candidate{sample: w.sample}
			byFingerprint[w.fingerprint] = c
			order = append(order, w.fingerprint)
		}
		c.occurrences = append(c.occurrences, w.occurrence)
	}

	claimed := make(map[string][]models.Occurrence)
	blocks := make([]models.DuplicateBlock, 0)

	for _, fp := range order {
		c := byFingerprint[fp]
		if len(c.occurrences) < 2 {
			continue
		}

		kept := dedupOccurrences(c.occurrences, claimed)
		if len(kept) < 2 {
			continue
		}
		for _, occ := range kept {
			claimed[occ.File] = append(claimed[occ.File], occ)
		}

		block := models.DuplicateBlock{
			Fingerprint: fp,
			Sample:      c.sample,
			Occurrences: kept,
		}
		block.Suggestion = blockSuggestion(block.DistinctFiles())
		blocks = append(blocks, block)
	}

	sort.SliceStable(blocks, func(i, j int) bool {
		if len(blocks[i].Occurrences) != len(blocks[j].Occurrences) {
			return len(blocks[i].Occurrences) > len(blocks[j].Occurrences)
		}
		return blocks[i].Fingerprint < blocks[j].Fingerprint
	})

	return blocks
}

// dedupOccurrences keeps an occurrence only if it does not overlap any
// already-claimed interval in the same file, nor any occurrence kept earlier
// in this pass. Greedy in discovery order.
func dedupOccurrences(occurrences []models.Occurrence, claimed map[string][]models.Occurrence) []models.Occurrence {
	kept := make([]models.Occurrence, 0, len(occurrences))
	for _, occ := range occurrences {
		overlaps := false
		for _, k := range claimed[occ.File] {
			if occ.Overlaps(k) {
				overlaps = true
				break
			}
		}
		if !overlaps {
			for _, k := range kept {
				if occ.Overlaps(k) {
					overlaps = true
					break
				}
			}
		}
		if !overlaps {
			kept = append(kept, occ)
		}
	}
	return kept
}

// blockSuggestion maps the distinct-file spread of a block to a remedy.
func blockSuggestion(distinctFiles int) string {
	switch {
	case distinctFiles <= 1:
		return "Extract to a local helper function"
	case distinctFiles <= 3:
		return "Extract to a shared utility function"
	default:
		return "Create a reusable module or component"
	}
}
