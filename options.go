package folio

import (
	"github.com/tsawler/folio/charset"
)

// ReadOptions holds configuration for reading a book.
type ReadOptions struct {
	// Forced encoding; when set, detection is skipped entirely.
	encoding    charset.Encoding
	hasEncoding bool

	// Whether to run the statistical sniffer when a read degrades to
	// the hex fallback, to name the likely real charset in the warning.
	sniffOnGarble bool
}

// defaultOptions returns the default read options.
func defaultOptions() ReadOptions {
	return ReadOptions{
		hasEncoding:   false,
		sniffOnGarble: true,
	}
}

// clone creates a copy of ReadOptions.
func (o ReadOptions) clone() ReadOptions {
	return ReadOptions{
		encoding:      o.encoding,
		hasEncoding:   o.hasEncoding,
		sniffOnGarble: o.sniffOnGarble,
	}
}
