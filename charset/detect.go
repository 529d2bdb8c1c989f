package charset

import (
	"io"
	"os"
)

// Detection constants. The ratios are empirical: they were tuned against
// GBK-encoded novel files and are preserved verbatim so existing files
// keep detecting the same way.
const (
	// detectSampleSize bounds how much of a file Detect inspects.
	detectSampleSize = 2048

	// highByteThreshold is the minimum fraction of bytes >= 0x80 for the
	// paired GBK heuristic to fire.
	highByteThreshold = 0.15
	// pairThreshold is the minimum fraction of GBK lead/trail byte pairs
	// for the paired heuristic to fire.
	pairThreshold = 0.08
	// highByteStrongThreshold alone classifies as the GB family; it
	// catches GB18030 four-byte sequences that the pair count misses.
	highByteStrongThreshold = 0.25

	// trialScoreThreshold is the minimum quality score for a trial
	// decode to displace the UTF-8 default.
	trialScoreThreshold = 0.3
)

// GBK lead bytes are 0x81-0xFE, trail bytes 0x40-0xFE.
const (
	gbkLeadMin  = 0x81
	gbkTrailMin = 0x40
	gbkMax      = 0xFE
)

// Detect classifies the dominant encoding of the file at path by
// inspecting at most its first 2 KB. It never fails: on any I/O error it
// returns UTF8, because detection is advisory and the range decoder
// re-checks every decode anyway.
//
// Priority order, first match wins: BOM, statistical GB-family
// heuristic, scored trial decode, UTF-8 default. Detect never returns
// Hex; that label only appears when range decoding exhausts every
// candidate.
func Detect(path string) Encoding {
	f, err := os.Open(path)
	if err != nil {
		return UTF8
	}
	defer f.Close()

	sample := make([]byte, detectSampleSize)
	n, err := io.ReadFull(f, sample)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return UTF8
	}

	return DetectBytes(sample[:n])
}

// DetectBytes classifies the encoding of an in-memory sample using the
// same rules as Detect. The sample should come from the start of the
// content so that the BOM check is meaningful.
func DetectBytes(sample []byte) Encoding {
	if enc, ok := detectBOM(sample); ok {
		return enc
	}
	if isLikelyGB(sample) {
		return GBK
	}
	return trialDecode(sample)
}

// detectBOM checks the leading bytes for a Unicode byte order mark.
// A BOM is ground truth and overrides everything that follows it.
func detectBOM(b []byte) (Encoding, bool) {
	switch {
	case len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF:
		return UTF8, true
	case len(b) >= 2 && b[0] == 0xFF && b[1] == 0xFE:
		return UTF16LE, true
	case len(b) >= 2 && b[0] == 0xFE && b[1] == 0xFF:
		return UTF16BE, true
	}
	return UTF8, false
}

// isLikelyGB applies the statistical GB-family heuristic: a high
// density of bytes with the top bit set, combined with adjacent byte
// pairs in the GBK lead/trail ranges. Matched pairs consume both bytes
// so overlapping pairs are not double-counted.
func isLikelyGB(sample []byte) bool {
	if len(sample) == 0 {
		return false
	}

	var highBytes, pairs int
	for i := 0; i < len(sample); {
		c := sample[i]
		if c >= 0x80 {
			highBytes++
		}
		if c >= gbkLeadMin && c <= gbkMax && i+1 < len(sample) {
			t := sample[i+1]
			if t >= gbkTrailMin && t <= gbkMax {
				pairs++
				if t >= 0x80 {
					highBytes++
				}
				i += 2
				continue
			}
		}
		i++
	}

	highRatio := float64(highBytes) / float64(len(sample))
	pairRatio := 0.0
	if halves := len(sample) / 2; halves > 0 {
		pairRatio = float64(pairs) / float64(halves)
	}

	if highRatio > highByteThreshold && pairRatio > pairThreshold {
		return true
	}
	// GB18030 four-byte sequences use trail bytes 0x30-0x39, which the
	// pair count above misses; a strong high-byte ratio alone is enough.
	return highRatio > highByteStrongThreshold
}

// trialCandidates is the order in which trialDecode attempts encodings.
// UTF-8 comes first so that it wins ties: samples that decode equally
// well everywhere (pure ASCII, for instance) stay UTF-8.
var trialCandidates = []Encoding{UTF8, GBK, GB18030}

// trialDecode decodes the sample under each candidate, scores the
// results, and keeps the best under strict-greater comparison. A
// non-UTF-8 winner is only accepted if it scores above
// trialScoreThreshold; otherwise the UTF-8 default stands.
func trialDecode(sample []byte) Encoding {
	best := UTF8
	bestScore := -1.0
	for _, enc := range trialCandidates {
		text, err := enc.Decode(sample)
		if err != nil {
			continue
		}
		if s := Score(text); s > bestScore {
			best = enc
			bestScore = s
		}
	}
	if best != UTF8 && bestScore > trialScoreThreshold {
		return best
	}
	return UTF8
}
