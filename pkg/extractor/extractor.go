// Copyright SummarizeME Authors
// SPDX-License-Identifier: Apache-2.0

// Package extractor turns uploaded documents into plain prose suitable for
// summarization. Structure that carries no meaning for a reader (markup,
// JSON punctuation, CSV delimiters) is dropped; paragraph boundaries are kept
// as blank lines.
package extractor

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

var (
	// ErrUnsupportedFormat is returned for binary content with no known extractor.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrNoText is returned when a document parses but yields no text.
	ErrNoText = errors.New("document contains no extractable text")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Extract returns the readable text of content, choosing a parser by the
// extension of filename. Unknown extensions are treated as UTF-8 text.
func Extract(content []byte, filename string) (string, error) {
	content = bytes.TrimPrefix(content, utf8BOM)

	var (
		text string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, err = extractPDF(content)
	case ".html", ".htm", ".xhtml":
		text, err = extractHTML(content)
	case ".csv":
		text, err = extractDelimited(content, ',')
	case ".tsv":
		text, err = extractDelimited(content, '\t')
	case ".json":
		text, err = extractJSON(content)
	case ".jsonl", ".ndjson":
		text, err = extractJSONL(content)
	default:
		text, err = extractPlain(content)
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

func extractPlain(content []byte) (string, error) {
	if !utf8.Valid(content) || bytes.IndexByte(content, 0) >= 0 {
		return "", ErrUnsupportedFormat
	}
	return strings.ReplaceAll(string(content), "\r\n", "\n"), nil
}

// joinParagraphs drops blank entries and joins the rest with blank lines.
func joinParagraphs(parts []string) string {
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n\n")
}
