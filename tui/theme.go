package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Symbols Symbols

	fg      lipgloss.Color
	muted   lipgloss.Color
	accent  lipgloss.Color
	root    lipgloss.Color
	inScale lipgloss.Color
	cursor  lipgloss.Color
	meter   lipgloss.Color
}

type Symbols struct {
	Root    rune // ◉ cell whose note is the key
	InScale rune // ● cell in the scale
	Empty   rune // · cell outside the scale
	Marker  rune // • fret inlay dot
	Meter   rune // █ filled level meter block
	MeterBG rune // ░ empty level meter block
}

func DefaultTheme() *Theme {
	return &Theme{
		Symbols: Symbols{
			Root:    '◉',
			InScale: '●',
			Empty:   '·',
			Marker:  '•',
			Meter:   '█',
			MeterBG: '░',
		},
		fg:      lipgloss.Color("#c8d3f5"),
		muted:   lipgloss.Color("#545c7e"),
		accent:  lipgloss.Color("#ff757f"),
		root:    lipgloss.Color("#ffc777"),
		inScale: lipgloss.Color("#82aaff"),
		cursor:  lipgloss.Color("#3e68d7"),
		meter:   lipgloss.Color("#c3e88d"),
	}
}

// Color roles

func (t *Theme) FG() lipgloss.Color      { return t.fg }
func (t *Theme) Muted() lipgloss.Color   { return t.muted }
func (t *Theme) Accent() lipgloss.Color  { return t.accent }
func (t *Theme) Root() lipgloss.Color    { return t.root }
func (t *Theme) InScale() lipgloss.Color { return t.inScale }
func (t *Theme) Cursor() lipgloss.Color  { return t.cursor }
func (t *Theme) Meter() lipgloss.Color   { return t.meter }
