package crawler

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Strategy picks candidate elements out of a page.
type Strategy func(doc *goquery.Document) *goquery.Selection

// Chain tries strategies in order and keeps the first non-empty selection.
type Chain []Strategy

// Select returns the result of the first strategy that matches anything, or
// an empty selection.
func (c Chain) Select(doc *goquery.Document) *goquery.Selection {
	for _, s := range c {
		if sel := s(doc); sel.Length() > 0 {
			return sel
		}
	}
	return doc.Selection.Slice(0, 0)
}

// Match selects every element matching any of the selectors, in document order.
func Match(selectors ...string) Strategy {
	css := group(selectors)
	return func(doc *goquery.Document) *goquery.Selection {
		return doc.Find(css)
	}
}

// Limit caps the selection produced by s to its first n elements.
func Limit(s Strategy, n int) Strategy {
	return func(doc *goquery.Document) *goquery.Selection {
		sel := s(doc)
		if sel.Length() > n {
			return sel.Slice(0, n)
		}
		return sel
	}
}

// firstText returns the first non-blank trimmed text among the matches of
// the earliest selector that has one. Blank matches, such as a logo heading
// holding only an image, are passed over.
func firstText(doc *goquery.Document, selectors []string) (string, bool) {
	for _, css := range selectors {
		var text string
		doc.Find(css).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text = strings.TrimSpace(s.Text())
			return text == ""
		})
		if text != "" {
			return text, true
		}
	}
	return "", false
}
