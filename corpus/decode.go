package corpus

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"

	"github.com/happyhackingspace/lexis/internal/htmlutil"
)

// Decode turns raw file bytes into plain text. Input that is not valid UTF-8
// is decoded with the detected charset (windows-1252 when nothing better is
// found), and .html/.htm files are reduced to their visible text.
func Decode(name string, data []byte) (string, error) {
	isHTML := false
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm", ".xhtml":
		isHTML = true
	}

	text := string(data)
	if !utf8.Valid(data) {
		contentType := "text/plain"
		if isHTML {
			contentType = "text/html"
		}
		enc, _, _ := charset.DetermineEncoding(data, contentType)
		decoded, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		text = string(decoded)
	}

	if isHTML {
		return htmlutil.ExtractText(text)
	}
	return text, nil
}
