// Copyright SummarizeME Authors
// SPDX-License-Identifier: Apache-2.0

package extractor

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// jsonStrings returns every string value in document order. Object keys
// are not included.
func jsonStrings(content []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(content))

	// Each stack entry is true for an object, where tokens alternate
	// key, value.
	var (
		stack     []bool
		expectKey []bool
		out       []string
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}

		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				stack = append(stack, true)
				expectKey = append(expectKey, true)
			case '[':
				stack = append(stack, false)
				expectKey = append(expectKey, false)
			default:
				stack = stack[:len(stack)-1]
				expectKey = expectKey[:len(expectKey)-1]
				flipKey(stack, expectKey)
			}
			continue
		case string:
			top := len(stack) - 1
			if top >= 0 && stack[top] && expectKey[top] {
				expectKey[top] = false
				continue
			}
			if s := strings.TrimSpace(v); s != "" {
				out = append(out, s)
			}
		}
		flipKey(stack, expectKey)
	}
}

// flipKey marks that the value of the enclosing object member was consumed.
func flipKey(stack, expectKey []bool) {
	if top := len(stack) - 1; top >= 0 && stack[top] {
		expectKey[top] = true
	}
}

func extractJSON(content []byte) (string, error) {
	values, err := jsonStrings(content)
	if err != nil {
		return extractPlain(content)
	}
	return joinParagraphs(values), nil
}

// extractJSONL handles one JSON document per line. Lines that are not valid
// JSON are kept verbatim.
func extractJSONL(content []byte) (string, error) {
	var paragraphs []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		values, err := jsonStrings([]byte(line))
		if err != nil {
			paragraphs = append(paragraphs, line)
			continue
		}
		paragraphs = append(paragraphs, strings.Join(values, " "))
	}
	return joinParagraphs(paragraphs), nil
}
