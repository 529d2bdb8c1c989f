package charset

// Weights and thresholds of the quality heuristic. These are empirical
// constants; changing them changes which encodings win the fallback
// search, so they are kept in one place and covered by tests.
const (
	// chineseBonus rewards correctly decoded CJK ideographs, which a
	// wrong encoding would render as control characters instead.
	chineseBonus = 0.5
	// controlPenalty makes control-character density dominate the score
	// when a decode is clearly wrong.
	controlPenalty = 0.8
)

// Score estimates how likely text is a correct decoding rather than
// mojibake. It returns a value in [0,1]; higher is better. The empty
// string scores 0.
//
// Each character is classified once: NUL is ignored entirely; control
// characters other than tab, LF and CR count against the score;
// CJK ideographs count as valid and earn a bonus; printable ASCII and
// the Latin-1 supplement count as valid; everything else (including
// code points above U+FFFF) is left uncounted.
func Score(text string) float64 {
	if len(text) == 0 {
		return 0
	}

	var total, valid, chinese, control int
	for _, r := range text {
		total++
		switch {
		case r == 0:
			// Structural noise, likely padding. Not penalized,
			// not counted as valid either.
		case r < 32 && r != '\t' && r != '\n' && r != '\r':
			control++
		case r >= 0x4E00 && r <= 0x9FFF:
			valid++
			chinese++
		case (r >= 32 && r <= 126) || (r >= 128 && r <= 255):
			valid++
		}
	}

	n := float64(total)
	score := float64(valid)/n + chineseBonus*float64(chinese)/n - controlPenalty*float64(control)/n

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
