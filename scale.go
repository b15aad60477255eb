package fretwave

import (
	"fmt"
	"strings"
)

// Scale identifies one of the supported scale types. The integer values
// are the serialization tags used in config files, so they must stay
// stable; 0 is deliberately not a valid scale.
type Scale int

const (
	Major Scale = iota + 1
	NaturalMinor
	MajorPentatonic
	MinorPentatonic
	MajorBlues
	MinorBlues
)

// Scales lists all supported scales in serialization tag order.
var Scales = []Scale{Major, NaturalMinor, MajorPentatonic, MinorPentatonic, MajorBlues, MinorBlues}

var scaleNames = [...]string{
	Major:           "Major",
	NaturalMinor:    "Natural Minor",
	MajorPentatonic: "Major Pentatonic",
	MinorPentatonic: "Minor Pentatonic",
	MajorBlues:      "Major Blues",
	MinorBlues:      "Minor Blues",
}

var scaleIntervals = [...][]int{
	Major:           {0, 2, 4, 5, 7, 9, 11},
	NaturalMinor:    {0, 2, 3, 5, 7, 8, 10},
	MajorPentatonic: {0, 2, 4, 7, 9},
	MinorPentatonic: {0, 3, 5, 7, 10},
	MajorBlues:      {0, 3, 4, 7, 9},
	MinorBlues:      {0, 3, 5, 6, 7, 10},
}

// ScaleFromInt returns the scale with the given serialization tag,
// falling back to Major for unknown tags so that stale or hand-edited
// configs stay loadable.
func ScaleFromInt(n int) Scale {
	if n < int(Major) || n > int(MinorBlues) {
		return Major
	}
	return Scale(n)
}

// Intervals returns the semitone offsets from the root that belong to the
// scale, in ascending order and always starting with 0. The returned
// slice is shared; callers must not modify it.
func (s Scale) Intervals() []int {
	if s < Major || s > MinorBlues {
		return scaleIntervals[Major]
	}
	return scaleIntervals[s]
}

// Contains reports whether the note belongs to the scale rooted at key.
// Membership is octave-free: only the interval class between the note and
// the key matters, so if E4 is in the scale, so is every other E.
func (s Scale) Contains(n Note, key PitchClass) bool {
	interval := mod(int(n.Class)-int(key), NumPitchClasses)
	for _, i := range s.Intervals() {
		if i == interval {
			return true
		}
	}
	return false
}

func (s Scale) String() string {
	if s < Major || s > MinorBlues {
		return fmt.Sprintf("Scale(%d)", int(s))
	}
	return scaleNames[s]
}

// ParseScale parses a scale name as formatted by String, ignoring case,
// spaces and hyphens, so "natural-minor" and "Natural Minor" both work.
func ParseScale(str string) (Scale, error) {
	normalized := normalizeScaleName(str)
	for _, s := range Scales {
		if normalizeScaleName(scaleNames[s]) == normalized {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown scale %q", str)
}

func normalizeScaleName(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "-", "")
}

func (s Scale) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Scale) UnmarshalText(text []byte) error {
	parsed, err := ParseScale(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
