package window

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tsawler/folio/charset"
)

// ErrRange is returned when a requested window violates
// 0 <= start <= end <= file size. Out-of-range windows are a caller
// error: the engine never clips silently.
var ErrRange = errors.New("window: byte range out of bounds")

// scoreThreshold is the minimum quality score for a hint decode to be
// accepted without consulting the fallback candidates.
const scoreThreshold = 0.5

// fallbackOrder is the fixed candidate list for the fallback search.
// The GB family comes first because the engine's primary corpus is
// Chinese novel files; order doubles as the tie-break policy, since the
// search keeps the first candidate to reach the best score.
var fallbackOrder = []charset.Encoding{
	charset.GB2312,
	charset.GBK,
	charset.GB18030,
	charset.UTF8,
	charset.UTF16LE,
	charset.UTF16BE,
	charset.Latin1,
	charset.ASCII,
}

// Result is the outcome of decoding one byte window. Text is always
// valid UTF-8; Encoding is the label that actually produced it, which
// may differ from the hint the caller passed.
type Result struct {
	Text     string
	Encoding charset.Encoding
}

// ReadRange reads bytes [start, end) of the file at path and decodes
// them, preferring hint. The hint is accepted as-is when its decode
// scores above 0.5; otherwise the fallback candidates are searched and
// the best-scoring decode wins. An unknown or Hex hint skips straight
// to the search. When no candidate decodes the bytes, the result is
// the window rendered as hexadecimal under the Hex label.
//
// Only genuine I/O failures return an error: a missing file, a failed
// read, or a window that violates 0 <= start <= end <= size. Decoding
// itself never fails.
func ReadRange(path string, start, end int64, hint charset.Encoding) (Result, error) {
	if start < 0 || end < start {
		return Result{}, fmt.Errorf("%w: [%d, %d)", ErrRange, start, end)
	}

	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Result{}, fmt.Errorf("stat file: %w", err)
	}
	if end > info.Size() {
		return Result{}, fmt.Errorf("%w: [%d, %d) exceeds size %d", ErrRange, start, end, info.Size())
	}

	if start == end {
		// Nothing to decode; report the hint unchanged.
		return Result{Text: "", Encoding: hint}, nil
	}

	buf := make([]byte, end-start)
	if _, err := f.ReadAt(buf, start); err != nil && err != io.EOF {
		return Result{}, fmt.Errorf("reading range [%d, %d): %w", start, end, err)
	}

	return Decode(buf, hint), nil
}

// ReadRangeLabel is ReadRange with a string encoding label, matching
// callers that persist the label rather than the enum. Unsupported
// labels behave like an unknown hint and trigger the fallback search.
func ReadRangeLabel(path string, start, end int64, label string) (Result, error) {
	hint, ok := charset.Parse(label)
	if !ok {
		hint = charset.Hex // unknown: forces the fallback search
	}
	return ReadRange(path, start, end, hint)
}

// Decode decodes an in-memory window under the hint, falling back to
// the candidate search exactly as ReadRange does. It is split out so
// content that is already in memory can reuse the policy.
func Decode(buf []byte, hint charset.Encoding) Result {
	hintUsable := charset.Valid(hint) && hint != charset.Hex
	if hintUsable {
		if text, err := hint.Decode(buf); err == nil {
			if charset.Score(text) > scoreThreshold {
				return Result{Text: text, Encoding: hint}
			}
		}
	}
	return searchFallback(buf, hint, hintUsable)
}

// searchFallback tries every candidate in fallbackOrder, skipping the
// already-tried hint, and keeps the highest-scoring decode under strict
// greater-than comparison so earlier candidates win ties. If every
// attempt fails, the window is rendered as hex: the caller always gets
// something to show, even for binary content.
func searchFallback(buf []byte, hint charset.Encoding, skipHint bool) Result {
	bestScore := -1.0
	var best Result
	for _, enc := range fallbackOrder {
		if skipHint && enc == hint {
			continue
		}
		text, err := enc.Decode(buf)
		if err != nil {
			continue
		}
		if s := charset.Score(text); s > bestScore {
			bestScore = s
			best = Result{Text: text, Encoding: enc}
		}
	}
	if bestScore < 0 {
		text, _ := charset.Hex.Decode(buf)
		return Result{Text: text, Encoding: charset.Hex}
	}
	return best
}
