// Copyright SummarizeME Authors
// SPDX-License-Identifier: Apache-2.0

// Package chunker partitions long documents into sentence-aligned segments
// small enough to be summarized independently.
package chunker

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultMaxChars is the default chunk budget in characters.
const DefaultMaxChars = 2500

// sentenceEnd matches terminal punctuation followed by a whitespace run. The
// punctuation stays with the preceding sentence; the whitespace is dropped.
// Abbreviations such as "e.g. " also match.
var sentenceEnd = regexp.MustCompile(`[.!?][\s\v\x{1c}-\x{1f}\x{85}\p{Z}]+`)

// Sentences splits text at sentence boundaries. Pieces are trimmed and empty
// pieces are discarded.
func Sentences(text string) []string {
	var out []string
	start := 0
	for _, m := range sentenceEnd.FindAllStringIndex(text, -1) {
		out = appendTrimmed(out, text[start:m[0]+1])
		start = m[1]
	}
	return appendTrimmed(out, text[start:])
}

func appendTrimmed(dst []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		dst = append(dst, s)
	}
	return dst
}

// Split greedily packs consecutive sentences into chunks of at most maxChars
// characters, joined by single spaces. A sentence longer than maxChars on its
// own becomes a chunk by itself and is not truncated. If maxChars <= 0,
// DefaultMaxChars is used. Whitespace-only input yields no chunks.
func Split(text string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}

	var (
		chunks     []string
		current    []string
		currentLen int // characters in current, counting one separator per sentence
	)

	for _, s := range Sentences(text) {
		n := utf8.RuneCountInString(s)
		if len(current) > 0 && currentLen+n+1 > maxChars {
			chunks = append(chunks, strings.Join(current, " "))
			current = []string{s}
			currentLen = n
			continue
		}
		current = append(current, s)
		currentLen += n + 1
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return chunks
}
