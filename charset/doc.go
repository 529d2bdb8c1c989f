// Package charset identifies the character encoding of raw book content
// and measures how plausible a decoded string is.
//
// The package has three entry points:
//
//   - Detect classifies a file's dominant encoding from its opening bytes,
//     using a BOM check, a statistical heuristic tuned for the GB family of
//     Chinese encodings, and a scored trial decode as a last resort.
//   - Score rates a decoded string in [0,1]: high for readable text, low for
//     mojibake dominated by control characters.
//   - Sniff asks a general-purpose statistical detector for an advisory
//     charset name, for content that falls outside the supported labels.
//
// Detection is advisory, not authoritative. Detect never fails; callers pass
// its result as a hint to the window package, which re-scores every decode
// and silently switches encodings when the hint turns out to be wrong.
package charset
