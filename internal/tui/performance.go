// Package tui renders the live performance monitor and maps the keyboard
// onto the pad buttons. Terminals report no key-release events, so every
// button key is a toggle: first press holds it, second press lets go.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/icco/padsynth/internal/engine"
)

// pollInterval drives the engine from the bubbletea event loop. 10ms keeps
// slot edges tight at any musical tempo.
const pollInterval = 10 * time.Millisecond

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	heldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#FFD700"))

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// buttonKeys maps keyboard input to pad buttons. Arrows are the d-pad, the
// face letters are themselves, and the brackets are the shoulders.
var buttonKeys = map[string]int{
	"b":     engine.BtnB,
	"y":     engine.BtnY,
	"s":     engine.BtnSelect,
	"t":     engine.BtnStart,
	"up":    engine.BtnUp,
	"down":  engine.BtnDown,
	"left":  engine.BtnLeft,
	"right": engine.BtnRight,
	"a":     engine.BtnA,
	"x":     engine.BtnX,
	"[":     engine.BtnL,
	"]":     engine.BtnR,
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Ports describes the transport endpoints for the header.
type Ports struct {
	Out   string // MIDI output port, empty when audio-only
	Clock string // MIDI clock input port, empty when free-running
}

// Model is the bubbletea model for the performance monitor.
type Model struct {
	eng   *engine.Engine
	ports Ports
	held  [engine.NumButtons]bool

	quitting bool
}

// New builds the monitor around an already-wired engine.
func New(eng *engine.Engine, ports Ports) Model {
	return Model{eng: eng, ports: ports}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.quitting {
			return m, tea.Quit
		}
		m.eng.Poll(time.Time(msg), m.held)
		return m, tick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if b, ok := buttonKeys[key]; ok {
		m.held[b] = !m.held[b]
		return m, nil
	}

	switch key {
	case "m":
		m.eng.SetRhythmic(!m.eng.State().Rhythmic)
	case "f":
		if m.eng.State().Profile == engine.ProfileScale {
			m.eng.SetProfile(engine.ProfileRiff)
		} else {
			m.eng.SetProfile(engine.ProfileScale)
		}
	case "+", "=":
		m.eng.SetSwing(m.eng.State().Swing + 0.1)
	case "-", "_":
		m.eng.SetSwing(m.eng.State().Swing - 0.1)
	case " ":
		// Panic: drop every simulated hold and silence the voices.
		m.held = [engine.NumButtons]bool{}
		m.eng.Silence()
	case "q", "esc", "ctrl+c":
		m.held = [engine.NumButtons]bool{}
		m.eng.Silence()
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	st := m.eng.State()
	clock := m.eng.Clock()

	b.WriteString(titleStyle.Render("PADSYNTH Performance Engine") + "\n\n")

	if m.ports.Out != "" {
		b.WriteString(subtitleStyle.Render("MIDI Out: ") + m.ports.Out + "\n")
	} else {
		b.WriteString(subtitleStyle.Render("MIDI Out: ") + "audio only\n")
	}
	if m.ports.Clock != "" {
		b.WriteString(subtitleStyle.Render("Clock In: ") + m.ports.Clock + "\n")
	} else {
		b.WriteString(subtitleStyle.Render("Clock In: ") + "none (internal trigger)\n")
	}
	b.WriteString("\n")

	b.WriteString(renderClock(clock) + "\n")
	b.WriteString(renderSettings(m.eng) + "\n\n")

	b.WriteString(renderPad(m.eng, m.held) + "\n\n")

	if st.Sounding() {
		b.WriteString(subtitleStyle.Render("Playing: ") +
			noteStyle.Render(noteName(st.CurrentNote)) + "\n")
	} else if chord := chordNames(st); chord != "" {
		b.WriteString(subtitleStyle.Render("Playing: ") + noteStyle.Render(chord) + "\n")
	} else {
		b.WriteString(subtitleStyle.Render("Playing: ") + dimStyle.Render("silence") + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("b/y/a/x s/t arrows [/]: toggle buttons • m: boogie • f: profile"))
	b.WriteString("\n" + helpStyle.Render("+/-: swing • space: panic • q: quit"))

	return b.String()
}

func renderClock(c engine.ClockSnapshot) string {
	switch {
	case c.Established && c.Present:
		return subtitleStyle.Render("Tempo: ") +
			statusStyle.Render(fmt.Sprintf("%.1f BPM", c.BPM())) +
			subtitleStyle.Render("  clock locked")
	case c.Established:
		return subtitleStyle.Render("Tempo: ") +
			noteStyle.Render(fmt.Sprintf("%.1f BPM", c.BPM())) +
			subtitleStyle.Render("  clock lost, tempo held")
	default:
		return subtitleStyle.Render("Tempo: ") + dimStyle.Render("waiting for clock")
	}
}

func renderSettings(e *engine.Engine) string {
	st := e.State()
	mode := st.Style.String()
	if st.Rhythmic {
		mode = "Boogie"
	}
	return subtitleStyle.Render("Mode: ") + mode +
		subtitleStyle.Render("  Profile: ") + st.Profile.String() +
		subtitleStyle.Render("  Scale: ") + e.Scale().Mode.String() +
		subtitleStyle.Render("  Swing: ") + fmt.Sprintf("%.0f%%", st.Swing*100) +
		subtitleStyle.Render("  Porta: ") + onOff(st.Portamento)
}

// renderPad draws every button, lighting the held ones.
func renderPad(e *engine.Engine, held [engine.NumButtons]bool) string {
	var cells []string
	for i := 0; i < engine.NumButtons; i++ {
		name := " " + engine.ButtonNames[i] + " "
		if held[i] || e.Held(i) {
			cells = append(cells, heldStyle.Render(name))
		} else {
			cells = append(cells, dimStyle.Render(name))
		}
	}
	return strings.Join(cells, " ")
}

func chordNames(st *engine.State) string {
	var names []string
	for _, n := range st.ChordNotes {
		if n >= 0 {
			names = append(names, noteName(n))
		}
	}
	return strings.Join(names, " ")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func noteName(note int) string {
	notes := []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	octave := (note / 12) - 1
	return fmt.Sprintf("%s%d", notes[note%12], octave)
}
