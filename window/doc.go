// Package window reads byte ranges of book files and decodes them
// adaptively.
//
// A window is a half-open byte range [start, end) of a file. ReadRange
// reads exactly that range with a positioned read, decodes it under a
// hint encoding, and checks the result with the charset quality score.
// When the hint decodes poorly, or is unknown, an ordered list of
// candidate encodings is tried instead, and the best-scoring decode
// wins. If nothing decodes at all, the bytes are returned rendered as
// hexadecimal under the Hex label, so a read that succeeds at the I/O
// level never fails at the decode level.
//
// Every call opens its own file handle and releases it before
// returning; there is no shared state, so concurrent reads of
// overlapping windows need no coordination.
package window
