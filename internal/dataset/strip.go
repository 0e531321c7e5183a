package dataset

import (
	"regexp"
	"strings"
)

// Removal names accepted by Fetcher.Remove.
const (
	RemoveHeaders = "headers"
	RemoveFooters = "footers"
	RemoveQuotes  = "quotes"
)

var quoteRe = regexp.MustCompile(`(writes in|writes:|wrote:|says:|said:|^In article|^Quoted from|^\||^>)`)

// StripHeader drops everything up to the first blank line. A post without a
// blank line is all header and becomes empty.
func StripHeader(text string) string {
	_, after, found := strings.Cut(text, "\n\n")
	if !found {
		return ""
	}
	return after
}

// StripQuotes drops lines that quote or attribute another post.
func StripQuotes(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if !quoteRe.MatchString(line) {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// StripFooter drops the signature block: everything from the last line made
// only of dashes or whitespace.
func StripFooter(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	lineNum := len(lines) - 1
	for ; lineNum >= 0; lineNum-- {
		if strings.Trim(strings.TrimSpace(lines[lineNum]), "-") == "" {
			break
		}
	}
	if lineNum > 0 {
		return strings.Join(lines[:lineNum], "\n")
	}
	return text
}

// Clean applies the requested removals in the order headers, footers, quotes.
func Clean(text string, remove []string) string {
	want := make(map[string]bool, len(remove))
	for _, r := range remove {
		want[r] = true
	}
	if want[RemoveHeaders] {
		text = StripHeader(text)
	}
	if want[RemoveFooters] {
		text = StripFooter(text)
	}
	if want[RemoveQuotes] {
		text = StripQuotes(text)
	}
	return text
}
