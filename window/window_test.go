package window

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/tsawler/folio/charset"
)

func writeTemp(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.txt")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func encodeGBK(t *testing.T, s string) []byte {
	t.Helper()
	b, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte(s))
	if err != nil {
		t.Fatalf("encoding %q as GBK: %v", s, err)
	}
	return b
}

func TestReadRange_UTF8(t *testing.T) {
	path := writeTemp(t, []byte("hello world"))

	res, err := ReadRange(path, 0, 11, charset.UTF8)
	if err != nil {
		t.Fatalf("ReadRange() error = %v", err)
	}
	if res.Text != "hello world" {
		t.Errorf("Text = %q, want %q", res.Text, "hello world")
	}
	if res.Encoding != charset.UTF8 {
		t.Errorf("Encoding = %v, want %v", res.Encoding, charset.UTF8)
	}
}

func TestReadRange_MidFileWindow(t *testing.T) {
	path := writeTemp(t, []byte("hello world"))

	res, err := ReadRange(path, 6, 11, charset.UTF8)
	if err != nil {
		t.Fatalf("ReadRange() error = %v", err)
	}
	if res.Text != "world" {
		t.Errorf("Text = %q, want %q", res.Text, "world")
	}
}

func TestReadRange_EmptyWindow(t *testing.T) {
	path := writeTemp(t, []byte("content"))

	res, err := ReadRange(path, 3, 3, charset.GBK)
	if err != nil {
		t.Fatalf("ReadRange() error = %v", err)
	}
	if res.Text != "" {
		t.Errorf("Text = %q, want empty", res.Text)
	}
	if res.Encoding != charset.GBK {
		t.Errorf("Encoding = %v, want hint %v", res.Encoding, charset.GBK)
	}
}

func TestReadRange_OutOfBounds(t *testing.T) {
	path := writeTemp(t, []byte("short"))

	tests := []struct {
		name       string
		start, end int64
	}{
		{"end past size", 0, 100},
		{"start past size", 10, 12},
		{"negative start", -1, 3},
		{"end before start", 4, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadRange(path, tt.start, tt.end, charset.UTF8)
			if !errors.Is(err, ErrRange) {
				t.Errorf("ReadRange(%d, %d) error = %v, want ErrRange", tt.start, tt.end, err)
			}
		})
	}
}

func TestReadRange_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.txt")
	if _, err := ReadRange(path, 0, 1, charset.UTF8); err == nil {
		t.Error("ReadRange(missing file) expected error, got nil")
	}
}

func TestReadRange_GBKHint(t *testing.T) {
	const text = "第一章 风雪山神庙，林教头误入白虎堂。"
	data := encodeGBK(t, text)
	path := writeTemp(t, data)

	res, err := ReadRange(path, 0, int64(len(data)), charset.GBK)
	if err != nil {
		t.Fatalf("ReadRange() error = %v", err)
	}
	if res.Text != text {
		t.Errorf("Text = %q, want %q", res.Text, text)
	}
	if res.Encoding != charset.GBK {
		t.Errorf("Encoding = %v, want %v (hint accepted)", res.Encoding, charset.GBK)
	}
}

func TestReadRange_WrongHintFallsBack(t *testing.T) {
	// GBK content read with a UTF-8 hint: the hint decode fails and the
	// fallback search finds the GB family. The search tries gb2312
	// first, so that's the label that comes back.
	const text = "第二章 陆虞候火烧草料场"
	data := encodeGBK(t, text)
	path := writeTemp(t, data)

	res, err := ReadRange(path, 0, int64(len(data)), charset.UTF8)
	if err != nil {
		t.Fatalf("ReadRange() error = %v", err)
	}
	if res.Text != text {
		t.Errorf("Text = %q, want %q", res.Text, text)
	}
	if res.Encoding != charset.GB2312 {
		t.Errorf("Encoding = %v, want %v", res.Encoding, charset.GB2312)
	}
}

func TestReadRangeLabel(t *testing.T) {
	const text = "第三章"
	data := encodeGBK(t, text)
	path := writeTemp(t, data)

	res, err := ReadRangeLabel(path, 0, int64(len(data)), "gbk")
	if err != nil {
		t.Fatalf("ReadRangeLabel() error = %v", err)
	}
	if res.Text != text || res.Encoding != charset.GBK {
		t.Errorf("ReadRangeLabel() = (%q, %v), want (%q, %v)", res.Text, res.Encoding, text, charset.GBK)
	}
}

func TestReadRangeLabel_UnknownLabel(t *testing.T) {
	// An unsupported label can't be trusted as a hint; the fallback
	// search runs and still produces readable text.
	path := writeTemp(t, []byte("plain ascii content"))

	res, err := ReadRangeLabel(path, 0, 19, "klingon")
	if err != nil {
		t.Fatalf("ReadRangeLabel() error = %v", err)
	}
	if res.Text != "plain ascii content" {
		t.Errorf("Text = %q, want the file content", res.Text)
	}
	if res.Encoding == charset.Hex {
		t.Errorf("Encoding = %v, want a real encoding from the search", res.Encoding)
	}
}

func TestDecode_HexFallback(t *testing.T) {
	// No supported encoding accepts this: 0x3F is an invalid GB trail
	// byte, 0x81 starts an incomplete UTF-8 sequence and is unmapped in
	// Windows-1252, and the odd length rules out UTF-16.
	buf := []byte{0x81, 0x3F, 0x81, 0x3F, 0x81}

	res := Decode(buf, charset.UTF8)
	if res.Encoding != charset.Hex {
		t.Fatalf("Encoding = %v, want %v", res.Encoding, charset.Hex)
	}
	if res.Text != "813f813f81" {
		t.Errorf("Text = %q, want %q", res.Text, "813f813f81")
	}
}

func TestDecode_HexHintForcesSearch(t *testing.T) {
	// A Hex hint is never decoded directly; good content still comes
	// back under a real encoding.
	res := Decode([]byte("readable"), charset.Hex)
	if res.Encoding == charset.Hex {
		t.Errorf("Encoding = %v, want a real encoding", res.Encoding)
	}
	if res.Text != "readable" {
		t.Errorf("Text = %q, want %q", res.Text, "readable")
	}
}

func TestDecode_Deterministic(t *testing.T) {
	data := encodeGBK(t, "相同输入相同输出")
	first := Decode(data, charset.UTF8)
	second := Decode(data, charset.UTF8)
	if first != second {
		t.Errorf("Decode() not deterministic: %+v vs %+v", first, second)
	}
}

func TestDecode_HintRejectedThenOverridden(t *testing.T) {
	// An ASCII hint rejects the high bytes outright, so the fallback
	// search runs and the GB family decodes them cleanly.
	data := encodeGBK(t, "明月几时有，把酒问青天。")
	res := Decode(data, charset.GB2312)
	if res.Encoding != charset.GB2312 {
		t.Fatalf("sanity: Encoding = %v, want %v", res.Encoding, charset.GB2312)
	}

	res = Decode(data, charset.ASCII)
	if res.Encoding == charset.ASCII {
		t.Errorf("ASCII hint accepted for GBK bytes")
	}
	if res.Text != "明月几时有，把酒问青天。" {
		t.Errorf("Text = %q, want the GB decoding", res.Text)
	}
}
