// Copyright SummarizeME Authors
// SPDX-License-Identifier: Apache-2.0

package filestore

import (
	"strings"
	"testing"
)

func TestFileID(t *testing.T) {
	tests := []struct {
		model, rev, name string
		want             string
	}{
		{"google/flan-t5-base", "", "tokenizer.json", "models--google--flan-t5-base--main--tokenizer.json"},
		{"org/model", "v1.0", "tokenizer.json", "models--org--model--v1.0--tokenizer.json"},
		{"../../etc", "main", "passwd", "models--_--_--etc--main--passwd"},
	}
	for _, tt := range tests {
		got := FileID(tt.model, tt.rev, tt.name)
		if got != tt.want {
			t.Errorf("FileID(%q, %q, %q) = %q, want %q", tt.model, tt.rev, tt.name, got, tt.want)
		}
		if strings.Contains(got, "/") {
			t.Errorf("FileID %q must not contain a path separator", got)
		}
	}
}

func TestDigest(t *testing.T) {
	// sha256("abc")
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got := Digest([]byte("abc")); got != want {
		t.Errorf("Digest = %s, want %s", got, want)
	}
}
