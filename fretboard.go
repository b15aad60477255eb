package fretwave

type (
	// Tuning lists the open-string notes of a stringed instrument, index 0
	// being the lowest-pitched string. The number of strings is always
	// len(tuning); nothing elsewhere assumes six strings, so alternate and
	// extended-range tunings work unchanged.
	Tuning []Note

	// FretCell is one position of a fretboard table: the note sounding at
	// that string and fret, and whether the note belongs to the scale the
	// table was computed for.
	FretCell struct {
		Note    Note
		InScale bool
	}
)

// StandardTuning returns the standard six-string guitar tuning E2 A2 D3
// G3 B3 E4, low string first.
func StandardTuning() Tuning {
	return Tuning{{E, 2}, {A, 2}, {D, 3}, {G, 3}, {B, 3}, {E, 4}}
}

// Copy makes a deep copy of a Tuning.
func (t Tuning) Copy() Tuning {
	ret := make(Tuning, len(t))
	copy(ret, t)
	return ret
}

// NoteAt returns the note sounding at the given string and fret, fret 0
// being the open string. The string index must be within the tuning and
// the fret non-negative; out-of-contract arguments panic, as they always
// mean a bug in the caller rather than bad user input.
func (t Tuning) NoteAt(stringIndex, fret int) Note {
	if fret < 0 {
		panic("fretwave: negative fret")
	}
	return t[stringIndex].Add(fret)
}

// Table computes the fretboard grid for a key and scale: one row per
// string in tuning order, each row holding fretCount cells covering frets
// 0 (the open string) through fretCount-1. The computation is pure and
// the caller owns the result. Reacting to a key or scale change means
// recomputing the whole table; the grids are at most a few hundred cells,
// so incremental updates would not pay for themselves.
func (t Tuning) Table(key PitchClass, scale Scale, fretCount int) [][]FretCell {
	grid := make([][]FretCell, len(t))
	for i := range t {
		row := make([]FretCell, fretCount)
		for fret := range row {
			note := t.NoteAt(i, fret)
			row[fret] = FretCell{Note: note, InScale: scale.Contains(note, key)}
		}
		grid[i] = row
	}
	return grid
}

var markedFrets = map[int]bool{
	3:  true,
	5:  true,
	7:  true,
	9:  true,
	12: true,
	15: true,
	17: true,
	19: true,
	21: true,
}

// MarkedFret reports whether a fret conventionally carries an inlay
// marker. The marks are display-only and independent of key and scale.
func MarkedFret(fret int) bool {
	return markedFrets[fret]
}
