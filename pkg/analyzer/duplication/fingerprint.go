package duplication

import (
	"encoding/hex"
	"strings"

	"github.com/panbanda/mimic/pkg/models"
	"github.com/zeebo/blake3"
)

const (
	// fingerprintBytes is the digest truncation width. Collisions are
	// astronomically unlikely at 64 bits for block counts this tool sees,
	// and the short hex form keeps reports readable.
	fingerprintBytes = 8

	// maxSampleLength bounds the stored snippet per block.
	maxSampleLength = 200
)

// fingerprintBlock computes the content address of a normalized block.
func fingerprintBlock(normalized string) string {
	sum := blake3.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:fingerprintBytes])
}

// blockWindow is one fixed-length window that survived the meaningful-line
// gate, ready for cross-corpus grouping.
type blockWindow struct {
	fingerprint string
	occurrence  models.Occurrence
	sample      string
}

// windowBlocks slides a window of minLines lines over the file and emits a
// fingerprint for every window with at least minLines-1 meaningful lines.
// Windows of blank/comment padding never produce a fingerprint.
func windowBlocks(path string, lines []string, minLines int) []blockWindow {
	if len(lines) < minLines {
		return nil
	}

	windows := make([]blockWindow, 0, len(lines)-minLines+1)
	for start := 0; start+minLines <= len(lines); start++ {
		block := lines[start : start+minLines]

		meaningful := 0
		for _, line := range block {
			if isMeaningfulLine(line) {
				meaningful++
			}
		}
		if meaningful < minLines-1 {
			continue
		}

		raw := strings.Join(block, "\n")
		normalized := NormalizeBlock(raw)
		if normalized == "" {
			continue
		}

		sample := raw
		if len(sample) > maxSampleLength {
			sample = sample[:maxSampleLength]
		}

		windows = append(windows, blockWindow{
			fingerprint: fingerprintBlock(normalized),
			occurrence: models.Occurrence{
				File:      path,
				StartLine: uint32(start + 1),
				EndLine:   uint32(start + minLines),
			},
			sample: sample,
		})
	}

	return windows
}
