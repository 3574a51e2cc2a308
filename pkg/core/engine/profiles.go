// Copyright SummarizeME Authors
// SPDX-License-Identifier: Apache-2.0

package engine

// Summary length levels accepted by Summarize.
const (
	LevelShort  = "short"
	LevelMedium = "medium"
	LevelLong   = "long"
)

// LengthProfile bundles the generation constraints of one summary length.
type LengthProfile struct {
	Name          string
	MinNewTokens  int
	MaxNewTokens  int
	LengthPenalty float64 // < 1.0 favors longer output, > 1.0 shorter
	NumBeams      int
}

var profiles = map[string]LengthProfile{
	LevelShort:  {Name: LevelShort, MinNewTokens: 80, MaxNewTokens: 140, LengthPenalty: 1.2, NumBeams: 3},
	LevelMedium: {Name: LevelMedium, MinNewTokens: 140, MaxNewTokens: 260, LengthPenalty: 1.0, NumBeams: 3},
	LevelLong:   {Name: LevelLong, MinNewTokens: 220, MaxNewTokens: 380, LengthPenalty: 0.9, NumBeams: 4},
}

// ProfileFor returns the profile of level, falling back to medium for
// unknown names.
func ProfileFor(level string) LengthProfile {
	if p, ok := profiles[level]; ok {
		return p
	}
	return profiles[LevelMedium]
}

// ValidLevel reports whether level names a known profile.
func ValidLevel(level string) bool {
	_, ok := profiles[level]
	return ok
}
