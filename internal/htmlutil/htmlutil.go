// Package htmlutil extracts readable text from HTML documents.
package htmlutil

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/happyhackingspace/lexis/internal/textutil"
)

// nonContent lists elements whose text never belongs to the document body.
const nonContent = "script, style, noscript, template, head, svg"

// LoadHTML parses HTML bytes into a goquery Document.
func LoadHTML(r io.Reader) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(r)
}

// LoadHTMLString parses HTML string into a goquery Document.
func LoadHTMLString(htmlStr string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
}

// Text returns the visible text of doc with whitespace collapsed.
// Block elements are separated by spaces so adjacent words do not merge.
func Text(doc *goquery.Document) string {
	doc.Find(nonContent).Remove()
	var parts []string
	doc.Find("body").Each(func(_ int, body *goquery.Selection) {
		parts = append(parts, textOf(body))
	})
	if len(parts) == 0 {
		parts = append(parts, textOf(doc.Selection))
	}
	return strings.TrimSpace(textutil.NormalizeWhitespaces(strings.Join(parts, " ")))
}

// textOf joins the text nodes below s with spaces.
func textOf(s *goquery.Selection) string {
	var b strings.Builder
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "#text" {
			b.WriteString(c.Text())
		} else {
			b.WriteString(textOf(c))
		}
		b.WriteByte(' ')
	})
	return b.String()
}

// Title returns the document title, if any.
func Title(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// ExtractText parses htmlStr and returns its title followed by its visible text.
func ExtractText(htmlStr string) (string, error) {
	doc, err := LoadHTMLString(htmlStr)
	if err != nil {
		return "", err
	}
	title := Title(doc)
	body := Text(doc)
	if title == "" {
		return body, nil
	}
	if body == "" {
		return title, nil
	}
	return title + " " + body, nil
}
