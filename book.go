package folio

import (
	"fmt"
	"io"
	"os"

	"github.com/tsawler/folio/chapters"
	"github.com/tsawler/folio/charset"
	"github.com/tsawler/folio/format"
	"github.com/tsawler/folio/markup"
	"github.com/tsawler/folio/window"
)

// sniffSampleSize bounds how many bytes of a garbled window are handed
// to the statistical sniffer.
const sniffSampleSize = 2048

// Book provides a fluent interface for reading a local book file.
// Each configuration method returns a new Book instance, making it safe
// for concurrent use and allowing method chaining. Reads open their own
// file handle and release it before returning, so Book holds no
// resources and needs no Close.
type Book struct {
	// Source
	filename string

	// Cached file info (lazy, filled by ensureInfo)
	infoLoaded bool
	size       int64
	encoding   charset.Encoding

	// Configuration
	options ReadOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a copy of the Book with a copy of its options. This
// ensures immutability - each chain method returns a new instance.
func (b *Book) clone() *Book {
	return &Book{
		filename:   b.filename,
		infoLoaded: b.infoLoaded,
		size:       b.size,
		encoding:   b.encoding,
		options:    b.options.clone(),
		err:        b.err,
	}
}

// ensureInfo stats the file and detects its encoding once, caching both
// on the Book. Detection never fails; stat failures are real I/O errors
// and are reported.
func (b *Book) ensureInfo() error {
	if b.infoLoaded {
		return nil
	}
	if b.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	info, err := os.Stat(b.filename)
	if err != nil {
		return fmt.Errorf("stat book: %w", err)
	}
	b.size = info.Size()

	if b.options.hasEncoding {
		b.encoding = b.options.encoding
	} else {
		b.encoding = charset.Detect(b.filename)
	}
	b.infoLoaded = true
	return nil
}

// ============================================================================
// Configuration Methods (return new Book instance)
// ============================================================================

// WithEncoding fixes the encoding hint instead of detecting it from the
// file's opening bytes. The hint is still only a hint: individual reads
// may override it when it decodes poorly.
//
// Example:
//
//	text, _, err := folio.Open("novel.txt").WithEncoding(charset.GBK).ReadAll()
func (b *Book) WithEncoding(enc charset.Encoding) *Book {
	nb := b.clone()
	nb.options.encoding = enc
	nb.options.hasEncoding = true
	nb.infoLoaded = false
	return nb
}

// DisableSniff turns off the statistical charset sniffer that normally
// annotates garbled-content warnings with the likely real charset.
func (b *Book) DisableSniff() *Book {
	nb := b.clone()
	nb.options.sniffOnGarble = false
	return nb
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Encoding returns the encoding hint used for this book: the detected
// one, or the one fixed by WithEncoding. The result is cached, so
// detection reads the file at most once per Book.
func (b *Book) Encoding() (charset.Encoding, error) {
	if b.err != nil {
		return charset.UTF8, b.err
	}
	if err := b.ensureInfo(); err != nil {
		return charset.UTF8, err
	}
	return b.encoding, nil
}

// EncodingLabel returns the encoding as its canonical label string,
// which is what callers should persist in their session stores.
func (b *Book) EncodingLabel() (string, error) {
	enc, err := b.Encoding()
	if err != nil {
		return "", err
	}
	return enc.String(), nil
}

// Size returns the book file's size in bytes.
func (b *Book) Size() (int64, error) {
	if b.err != nil {
		return 0, b.err
	}
	if err := b.ensureInfo(); err != nil {
		return 0, err
	}
	return b.size, nil
}

// Format determines the book's format from its content, falling back to
// the filename extension when the magic bytes are inconclusive.
func (b *Book) Format() (format.Format, error) {
	if b.err != nil {
		return format.Unknown, b.err
	}

	f, err := os.Open(b.filename)
	if err != nil {
		return format.Unknown, fmt.Errorf("opening book: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return format.Unknown, fmt.Errorf("stat book: %w", err)
	}

	detected, err := format.DetectFromReader(f, info.Size())
	if err == nil && detected != format.Unknown {
		return detected, nil
	}
	return format.Detect(b.filename), nil
}

// ReadRange reads and decodes bytes [start, end) of the book, using the
// book's encoding as the hint. The engine may silently decode under a
// different encoding when the hint scores poorly; that and the hex
// fallback are reported as warnings, never as errors. Only genuine I/O
// failures (missing file, out-of-range window) return an error.
//
// Example:
//
//	text, warnings, err := folio.Open("novel.txt").ReadRange(0, 65536)
func (b *Book) ReadRange(start, end int64) (string, []Warning, error) {
	if b.err != nil {
		return "", nil, b.err
	}
	if err := b.ensureInfo(); err != nil {
		return "", nil, err
	}

	res, err := window.ReadRange(b.filename, start, end, b.encoding)
	if err != nil {
		return "", nil, err
	}
	return res.Text, b.windowWarnings(res, start), nil
}

// ReadAll reads and decodes the entire book.
func (b *Book) ReadAll() (string, []Warning, error) {
	if b.err != nil {
		return "", nil, b.err
	}
	if err := b.ensureInfo(); err != nil {
		return "", nil, err
	}
	return b.ReadRange(0, b.size)
}

// Preview reads and decodes the first n bytes of the book, clamped to
// the file size. Useful for list views that show an excerpt.
func (b *Book) Preview(n int64) (string, []Warning, error) {
	if b.err != nil {
		return "", nil, b.err
	}
	if err := b.ensureInfo(); err != nil {
		return "", nil, err
	}
	if n > b.size {
		n = b.size
	}
	if n < 0 {
		n = 0
	}
	return b.ReadRange(0, n)
}

// PlainText reads the entire book and, for HTML books, flattens the
// markup to readable text. Non-HTML books are returned as decoded.
func (b *Book) PlainText() (string, []Warning, error) {
	text, warnings, err := b.ReadAll()
	if err != nil {
		return "", warnings, err
	}

	f, err := b.Format()
	if err != nil {
		return "", warnings, err
	}
	if f != format.HTML {
		return text, warnings, nil
	}

	flat, err := markup.FlattenString(text)
	if err != nil {
		return "", warnings, fmt.Errorf("flattening markup: %w", err)
	}
	return flat, warnings, nil
}

// Chapters reads the entire book and scans its decoded text for chapter
// headings. Offsets in the result are relative to the decoded text, not
// to file bytes.
func (b *Book) Chapters() ([]chapters.Chapter, []Warning, error) {
	text, warnings, err := b.ReadAll()
	if err != nil {
		return nil, warnings, err
	}
	return chapters.Scan(text), warnings, nil
}

// windowWarnings translates a decode outcome into caller-facing
// warnings: hex fallback and silent encoding overrides.
func (b *Book) windowWarnings(res window.Result, start int64) []Warning {
	var warnings []Warning
	switch {
	case res.Encoding == charset.Hex:
		msg := "content decoded under no supported encoding and is shown as hex"
		if b.options.sniffOnGarble {
			if name, ok := b.sniffAt(start); ok {
				msg = fmt.Sprintf("%s (statistical detection suggests %s)", msg, name)
			}
		}
		warnings = append(warnings, Warning{Code: WarnGarbled, Message: msg})
	case res.Encoding != b.encoding && res.Text != "":
		warnings = append(warnings, Warning{
			Code:    WarnEncodingOverride,
			Message: fmt.Sprintf("decoded as %s instead of %s", res.Encoding, b.encoding),
		})
	}
	return warnings
}

// sniffAt reads a bounded sample starting at the given offset and asks
// the statistical detector for an advisory charset name.
func (b *Book) sniffAt(start int64) (string, bool) {
	f, err := os.Open(b.filename)
	if err != nil {
		return "", false
	}
	defer f.Close()

	sample := make([]byte, sniffSampleSize)
	n, err := f.ReadAt(sample, start)
	if n == 0 && err != nil && err != io.EOF {
		return "", false
	}
	return charset.Sniff(sample[:n])
}
