// Package markup flattens HTML book content to plain readable text.
package markup

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Flatten parses HTML from r and returns its visible text content.
// Script, style and other non-content elements are skipped; block
// elements are separated by newlines so paragraphs survive flattening.
func Flatten(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	flattenNode(doc, &b)
	return tidy(b.String()), nil
}

// FlattenString is Flatten over an in-memory document, typically a
// decoded window of an HTML book.
func FlattenString(content string) (string, error) {
	return Flatten(strings.NewReader(content))
}

// Title returns the document title, or "" when there is none.
func Title(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}
	node := findElement(doc, "title")
	if node == nil {
		return "", nil
	}
	var b strings.Builder
	flattenNode(node, &b)
	return strings.TrimSpace(b.String()), nil
}

func flattenNode(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		return
	}
	if n.Type == html.ElementNode {
		if skipElement(n.Data) {
			return
		}
		if n.Data == "br" {
			b.WriteString("\n")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		flattenNode(c, b)
	}
	if n.Type == html.ElementNode && isBlockElement(n.Data) {
		b.WriteString("\n")
	}
}

// skipElement reports whether an element's content is never readable text.
func skipElement(tag string) bool {
	switch tag {
	case "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed", "head":
		return true
	}
	return false
}

func isBlockElement(tag string) bool {
	switch tag {
	case "p", "div", "li", "h1", "h2", "h3", "h4", "h5", "h6", "tr", "blockquote", "pre", "section", "article":
		return true
	}
	return false
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// tidy collapses runs of blank lines and trims trailing space from each
// line, without disturbing intentional paragraph breaks.
func tidy(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := true
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, line)
		blank = false
	}
	// Drop a trailing blank line left by the last block element.
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}
