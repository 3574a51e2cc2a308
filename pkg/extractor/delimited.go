// Copyright SummarizeME Authors
// SPDX-License-Identifier: Apache-2.0

package extractor

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// extractDelimited renders each data row as a sentence of "header: value"
// pairs, so the model reads records rather than delimiters.
func extractDelimited(content []byte, comma rune) (string, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = comma
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return "", nil
	}
	if err != nil {
		return extractPlain(content)
	}

	var rows []string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return extractPlain(content)
		}

		pairs := make([]string, 0, len(record))
		for i, v := range record {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			if i < len(header) && strings.TrimSpace(header[i]) != "" {
				pairs = append(pairs, strings.TrimSpace(header[i])+": "+v)
			} else {
				pairs = append(pairs, v)
			}
		}
		if len(pairs) > 0 {
			rows = append(rows, strings.Join(pairs, "; ")+".")
		}
	}

	if len(rows) == 0 {
		// header only
		return strings.Join(header, ", "), nil
	}
	return strings.Join(rows, "\n"), nil
}
