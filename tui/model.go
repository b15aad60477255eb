// Package tui is the terminal host of a practice session: a fretboard
// grid the user walks with the cursor, picking frets to hear them.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pkanerva/fretwave"
	"github.com/pkanerva/fretwave/practice"
)

// levelRefresh is how often the view is redrawn while idle, so the level
// meter follows the tone envelope.
const levelRefresh = 50 * time.Millisecond

const meterWidth = 10

type Model struct {
	Session *practice.Session
	Theme   *Theme

	// Persist, when set, is called after every layout change and on
	// quit, so the host can save the session state.
	Persist func()

	stringIndex int // cursor, 0 = lowest-pitched string
	fret        int
	lastNote    *fretwave.Note
	quitting    bool
}

type levelTickMsg time.Time

func NewModel(session *practice.Session, theme *Theme) Model {
	return Model{Session: session, Theme: theme}
}

func levelTick() tea.Cmd {
	return tea.Tick(levelRefresh, func(t time.Time) tea.Msg {
		return levelTickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return levelTick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			m.Session.Stop()
			m.persist()
			return m, tea.Quit

		case "up", "k":
			if m.stringIndex < len(m.Session.Tuning())-1 {
				m.stringIndex++
			}

		case "down", "j":
			if m.stringIndex > 0 {
				m.stringIndex--
			}

		case "left", "h":
			if m.fret > 0 {
				m.fret--
			}

		case "right", "l":
			if m.fret < m.Session.Frets() {
				m.fret++
			}

		case "enter", " ":
			note := m.Session.PickFret(m.stringIndex, m.fret)
			m.lastNote = &note

		case "<", ",":
			m.Session.CycleKey(-1)
			m.persist()

		case ">", ".":
			m.Session.CycleKey(1)
			m.persist()

		case "s":
			m.Session.CycleScale(1)
			m.persist()

		case "f":
			if m.Session.Frets() == 12 {
				m.Session.SetFrets(24)
			} else {
				m.Session.SetFrets(12)
			}
			if max := m.Session.Frets(); m.fret > max {
				m.fret = max
			}
			m.persist()

		case "m":
			m.Session.SetMIDIEnabled(!m.Session.MIDIEnabled())
		}

	case levelTickMsg:
		return m, levelTick()
	}

	return m, nil
}

func (m Model) persist() {
	if m.Persist != nil {
		m.Persist()
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	t := m.Theme
	headerStyle := lipgloss.NewStyle().Foreground(t.Accent()).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.Muted())
	labelStyle := lipgloss.NewStyle().Foreground(t.FG())
	rootStyle := lipgloss.NewStyle().Foreground(t.Root())
	inScaleStyle := lipgloss.NewStyle().Foreground(t.InScale())
	meterStyle := lipgloss.NewStyle().Foreground(t.Meter())

	session := m.Session
	table := session.Table()
	tuning := session.Tuning()
	frets := session.Frets()

	midiState := "off"
	if session.MIDIEnabled() {
		midiState = "on"
	}
	header := headerStyle.Render(fmt.Sprintf("fretwave  %v %v  %d frets  midi:%s",
		session.Key(), session.Scale(), frets, midiState))

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")

	// fret numbers
	numbers := "     "
	for fret := 0; fret <= frets; fret++ {
		numbers += fmt.Sprintf("%-3d", fret)
	}
	out.WriteString(dimStyle.Render(numbers))
	out.WriteString("\n")

	// strings, highest on top as on a chart
	for row := len(table) - 1; row >= 0; row-- {
		out.WriteString(labelStyle.Render(fmt.Sprintf("%-4v", tuning[row])))
		out.WriteString(" ")
		for fret := 0; fret <= frets; fret++ {
			cell := table[row][fret]
			var symbol rune
			var style lipgloss.Style
			switch {
			case cell.InScale && cell.Note.Class == session.Key():
				symbol, style = t.Symbols.Root, rootStyle
			case cell.InScale:
				symbol, style = t.Symbols.InScale, inScaleStyle
			default:
				symbol, style = t.Symbols.Empty, dimStyle
			}
			if row == m.stringIndex && fret == m.fret {
				style = style.Background(t.Cursor()).Bold(true)
			}
			out.WriteString(style.Render(string(symbol)))
			out.WriteString("  ")
		}
		out.WriteString("\n")
	}

	// inlay dots
	markers := "     "
	for fret := 0; fret <= frets; fret++ {
		if fretwave.MarkedFret(fret) {
			markers += string(t.Symbols.Marker) + "  "
		} else {
			markers += "   "
		}
	}
	out.WriteString(dimStyle.Render(markers))
	out.WriteString("\n\n")

	last := "-"
	if m.lastNote != nil {
		last = fmt.Sprintf("%v  %.1f Hz", m.lastNote, m.lastNote.Frequency())
	}
	out.WriteString(labelStyle.Render(fmt.Sprintf("last: %-14s", last)))
	out.WriteString("  ")
	out.WriteString(meterStyle.Render(m.meter()))
	out.WriteString("\n")
	out.WriteString(dimStyle.Render("hjkl:move  space:play  </>:key  s:scale  f:12/24  m:midi  q:quit"))
	out.WriteString("\n")

	return out.String()
}

func (m Model) meter() string {
	level := float64(m.Session.Level()) / fretwave.ToneAmplitude
	if level > 1 {
		level = 1
	}
	filled := int(level*meterWidth + 0.5)
	s := m.Theme.Symbols
	return strings.Repeat(string(s.Meter), filled) + strings.Repeat(string(s.MeterBG), meterWidth-filled)
}
