// Package chapters scans decoded book text for chapter headings.
//
// Plain text novels carry no structural table of contents; readers
// build one by matching heading conventions line by line. Both the
// Chinese convention (第十二章, 第3节, 卷二) and the Western one
// (Chapter 12) are recognized.
package chapters

import (
	"regexp"
	"strings"
)

// Chapter marks one heading found in decoded text. Offset is the byte
// offset of the heading line within the scanned (UTF-8) string, so a
// caller holding the same decoded text can seek straight to it.
type Chapter struct {
	Title  string
	Line   int
	Offset int
}

var headingPatterns = []*regexp.Regexp{
	// 第一章 / 第12章 / 第一百二十回, optionally preceded by a volume marker.
	regexp.MustCompile(`^\s*(?:第[0-9０-９一二三四五六七八九十百千万零两]+[章节回卷集部篇])`),
	// 卷一 / 卷二十 as standalone volume headings.
	regexp.MustCompile(`^\s*卷[0-9０-９一二三四五六七八九十百千万零两]+\s`),
	// Chapter 1 / CHAPTER XII / Chapter 3: Title
	regexp.MustCompile(`^\s*(?i:chapter)\s+(?:[0-9]+|[IVXLC]+)\b`),
	// Prologue/epilogue style markers common in novel files.
	regexp.MustCompile(`^\s*(?:序章|序言|楔子|尾声|番外)(?:\s|$)`),
}

// maxHeadingLen filters out body lines that merely begin with a heading
// phrase; real headings are short.
const maxHeadingLen = 64

// Scan walks text line by line and returns every chapter heading found,
// in order. Text is expected to be the decoded (UTF-8) content of a
// book or a window of one; offsets are relative to its start.
func Scan(text string) []Chapter {
	var found []Chapter
	offset := 0
	for i, line := range strings.Split(text, "\n") {
		if isHeading(line) {
			found = append(found, Chapter{
				Title:  strings.TrimSpace(line),
				Line:   i,
				Offset: offset,
			})
		}
		offset += len(line) + 1
	}
	return found
}

func isHeading(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) > maxHeadingLen {
		return false
	}
	for _, re := range headingPatterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}
