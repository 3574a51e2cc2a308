// Copyright SummarizeME Authors
// SPDX-License-Identifier: Apache-2.0

package extractor

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var skipped = map[atom.Atom]bool{
	atom.Head:     true,
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
	atom.Nav:      true,
}

var blocks = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Li: true, atom.Tr: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Article: true, atom.Section: true, atom.Blockquote: true, atom.Pre: true,
	atom.Br: true, atom.Td: true, atom.Th: true, atom.Dd: true, atom.Dt: true,
}

// htmlText accumulates inline text until a block boundary closes the
// current paragraph.
type htmlText struct {
	paragraphs []string
	current    strings.Builder
}

func (h *htmlText) write(s string) {
	h.current.WriteString(s)
}

// flush collapses whitespace the way a browser renders inline text.
func (h *htmlText) flush() {
	if text := strings.Join(strings.Fields(h.current.String()), " "); text != "" {
		h.paragraphs = append(h.paragraphs, text)
	}
	h.current.Reset()
}

func (h *htmlText) walk(n *html.Node) {
	if n.Type == html.ElementNode && skipped[n.DataAtom] {
		return
	}
	if n.Type == html.TextNode {
		h.write(n.Data)
	}
	isBlock := n.Type == html.ElementNode && blocks[n.DataAtom]
	if isBlock {
		h.flush()
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		h.walk(c)
	}
	if isBlock {
		h.flush()
	}
}

// extractHTML returns the visible text of a page, one paragraph per block
// element.
func extractHTML(content []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return extractPlain(content)
	}

	var h htmlText
	h.walk(doc)
	h.flush()
	return joinParagraphs(h.paragraphs), nil
}
