// Copyright SummarizeME Authors
// SPDX-License-Identifier: Apache-2.0

package chunker

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "basic punctuation",
			text: "First one. Second one! Third one? Fourth",
			want: []string{"First one.", "Second one!", "Third one?", "Fourth"},
		},
		{
			name: "whitespace runs and newlines",
			text: "Alpha.   Beta.\n\nGamma.\tDelta.",
			want: []string{"Alpha.", "Beta.", "Gamma.", "Delta."},
		},
		{
			name: "no whitespace after punctuation keeps sentence whole",
			text: "Version 1.2 shipped.Then 3.4 followed.",
			want: []string{"Version 1.2 shipped.Then 3.4 followed."},
		},
		{
			name: "abbreviations split too",
			text: "Talk to Dr. Smith. He knows e.g. the plan.",
			want: []string{"Talk to Dr.", "Smith.", "He knows e.g.", "the plan."},
		},
		{
			name: "closing quote suppresses the boundary",
			text: `He said "stop." Then left.`,
			want: []string{`He said "stop." Then left.`},
		},
		{
			name: "stray punctuation becomes its own piece",
			text: "a. . b",
			want: []string{"a.", ".", "b"},
		},
		{
			name: "leading and trailing whitespace",
			text: "   Hello world.   ",
			want: []string{"Hello world."},
		},
		{
			name: "non-breaking space counts as whitespace",
			text: "One.\u00a0Two.",
			want: []string{"One.", "Two."},
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
		{
			name: "whitespace only",
			text: " \n\t ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sentences(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Sentences(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestSplit_Empty(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\n"} {
		if got := Split(text, 100); len(got) != 0 {
			t.Errorf("Split(%q) = %q, want no chunks", text, got)
		}
	}
}

func TestSplit_SingleChunkWhenFits(t *testing.T) {
	got := Split("One. Two. Three.", 100)
	want := []string{"One. Two. Three."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split = %q, want %q", got, want)
	}
}

func TestSplit_GreedyPacking(t *testing.T) {
	// Each sentence is 9 characters ("aaaaaaaa."). With a budget of 20 the
	// accumulator holds 10 after the first sentence; adding the second needs
	// 10+9+1 = 20 which still fits, the third would need 20+9+1 > 20.
	text := "aaaaaaaa. bbbbbbbb. cccccccc. dddddddd. eeeeeeee."
	got := Split(text, 20)
	want := []string{
		"aaaaaaaa. bbbbbbbb.",
		"cccccccc. dddddddd.",
		"eeeeeeee.",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split = %q, want %q", got, want)
	}
}

func TestSplit_OversizedSentenceStandsAlone(t *testing.T) {
	long := strings.Repeat("x", 50) + "."
	text := "Short one. " + long + " Tail."
	got := Split(text, 20)
	want := []string{"Short one.", long, "Tail."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Split = %q, want %q", got, want)
	}
	if utf8.RuneCountInString(got[1]) <= 20 {
		t.Errorf("oversized sentence should not be truncated")
	}
}

func TestSplit_OversizedFirstSentence(t *testing.T) {
	long := strings.Repeat("y", 30) + "!"
	got := Split(long+" ok.", 10)
	want := []string{long, "ok."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split = %q, want %q", got, want)
	}
}

func TestSplit_DefaultBudget(t *testing.T) {
	sentence := strings.Repeat("w", 99) + "."
	text := strings.TrimSpace(strings.Repeat(sentence+" ", 60))

	chunks := Split(text, 0)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks with the default budget, got %d", len(chunks))
	}
	for i, c := range chunks {
		if n := utf8.RuneCountInString(c); n > DefaultMaxChars {
			t.Errorf("chunk %d has %d chars, budget %d", i, n, DefaultMaxChars)
		}
	}
}

func TestSplit_CountsCharactersNotBytes(t *testing.T) {
	// "éééé." is 5 characters but 9 bytes. Counting bytes would yield
	// three chunks.
	text := "éééé. éééé. éééé."
	got := Split(text, 11)
	want := []string{"éééé.", "éééé. éééé."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split = %q, want %q", got, want)
	}
}

// Budget, ordering and coverage properties over a mixed document.
func TestSplit_Properties(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 200; i++ {
		b.WriteString(strings.Repeat("word ", i%17+1))
		switch i % 3 {
		case 0:
			b.WriteString("end. ")
		case 1:
			b.WriteString("end!\n")
		default:
			b.WriteString("end?  ")
		}
	}
	b.WriteString(strings.Repeat("z", 400) + ".")
	text := b.String()

	for _, budget := range []int{40, 120, 300, 2500} {
		chunks := Split(text, budget)
		sentences := Sentences(text)

		var rebuilt []string
		for _, c := range chunks {
			parts := Sentences(c)
			if utf8.RuneCountInString(c) > budget && len(parts) != 1 {
				t.Errorf("budget %d: multi-sentence chunk exceeds budget: %d chars", budget, utf8.RuneCountInString(c))
			}
			rebuilt = append(rebuilt, parts...)
		}
		if !reflect.DeepEqual(rebuilt, sentences) {
			t.Errorf("budget %d: chunks do not reproduce the sentence sequence", budget)
		}
	}
}
