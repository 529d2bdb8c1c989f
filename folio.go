// Package folio reads local book files incrementally, working out their
// character encoding from the raw bytes and decoding arbitrary byte
// ranges on demand.
//
// Basic usage:
//
//	text, warnings, err := folio.Open("novel.txt").Preview(4096)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", folio.FormatWarnings(warnings))
//	}
//
// With a known encoding:
//
//	text, _, err := folio.Open("novel.txt").
//	    WithEncoding(charset.GBK).
//	    ReadRange(0, 65536)
//
// For advanced use cases, the lower-level charset and window packages
// are also available.
package folio

import (
	"github.com/tsawler/folio/charset"
)

// Open opens a book file and returns a Book for fluent configuration.
// The file is not touched until a terminal operation runs; each read
// opens and releases its own handle, so a Book needs no Close and is
// safe to share between goroutines.
//
// Example:
//
//	text, warnings, err := folio.Open("novel.txt").ReadAll()
func Open(filename string) *Book {
	return &Book{
		filename: filename,
		options:  defaultOptions(),
	}
}

// Detect is a convenience wrapper around charset.Detect for callers
// that only want the encoding label, without constructing a Book.
// It never fails; on any I/O error it reports UTF-8.
func Detect(filename string) charset.Encoding {
	return charset.Detect(filename)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	size := folio.Must(folio.Open("novel.txt").Size())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustText is a helper that wraps a call to a terminal operation
// returning (T, []Warning, error) and panics if the error is non-nil.
// It discards warnings and returns just the value.
//
// Example:
//
//	text := folio.MustText(folio.Open("novel.txt").ReadAll())
func MustText[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
