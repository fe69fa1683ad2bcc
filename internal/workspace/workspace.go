// Package workspace is the terminal front-end of the circuit builder: a
// palette of component types on the left, the board on the right.
package workspace

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/circuitlab/internal/catalog"
	"github.com/san-kum/circuitlab/internal/circuit"
)

const (
	focusPalette = iota
	focusBoard
	focusConfirmReset
)

const (
	boardCols = 60
	boardRows = 18
	// Positions are percentages of the board, as in the browser workspace.
	step         = 2.0
	toastTimeout = 3 * time.Second
)

type toastExpiredMsg struct{ id int }

type model struct {
	circuit *circuit.Circuit
	catalog *catalog.Catalog
	logger  *log.Logger
	styles  styles

	focus, prevFocus int
	paletteCursor    int
	cursor           circuit.Position
	selected         int // index into the circuit, -1 for none
	moving           bool
	drag             circuit.Position

	toast   string
	toastID int
	width   int
	height  int
}

// New builds the workspace model. The circuit must already be restored.
func New(c *circuit.Circuit, cat *catalog.Catalog, theme Theme, logger *log.Logger) tea.Model {
	if logger == nil {
		logger = log.Default()
	}
	m := model{
		circuit:  c,
		catalog:  cat,
		logger:   logger,
		styles:   newStyles(theme),
		cursor:   circuit.Position{X: 50, Y: 50},
		selected: -1,
		width:    100,
		height:   30,
	}
	if c.Len() > 0 {
		m.selected = 0
	}
	return m
}

// Run starts the workspace on the alternate screen.
func Run(c *circuit.Circuit, cat *catalog.Catalog, theme Theme, logger *log.Logger) error {
	_, err := tea.NewProgram(New(c, cat, theme, logger), tea.WithAltScreen()).Run()
	return err
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.focus {
	case focusConfirmReset:
		return m.confirmKey(msg)
	case focusBoard:
		if m.moving {
			return m.moveKey(msg)
		}
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab":
		if m.focus == focusPalette {
			m.focus = focusBoard
		} else {
			m.focus = focusPalette
		}
		return m, nil
	case "r":
		return m.notify(fmt.Sprintf("Total resistance: %s Ω", formatValue(m.circuit.TotalResistance())))
	case "v":
		return m.notify(fmt.Sprintf("Total voltage: %s V", formatValue(m.circuit.TotalVoltage())))
	case "c":
		return m.notify(fmt.Sprintf("Total current: %s A", formatValue(m.circuit.TotalCurrent())))
	case "R":
		m.prevFocus, m.focus = m.focus, focusConfirmReset
		return m, nil
	}

	if m.focus == focusPalette {
		return m.paletteKey(msg)
	}
	return m.boardKey(msg)
}

func (m model) paletteKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.paletteCursor > 0 {
			m.paletteCursor--
		}
	case "down", "j":
		if m.paletteCursor < m.catalog.Len()-1 {
			m.paletteCursor++
		}
	case "enter", " ":
		return m.place()
	}
	return m, nil
}

func (m model) boardKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.cursor.Y = clamp(m.cursor.Y - step)
	case "down", "j":
		m.cursor.Y = clamp(m.cursor.Y + step)
	case "left", "h":
		m.cursor.X = clamp(m.cursor.X - step)
	case "right", "l":
		m.cursor.X = clamp(m.cursor.X + step)
	case "enter", " ":
		return m.place()
	case "n":
		if n := m.circuit.Len(); n > 0 {
			m.selected = (m.selected + 1) % n
		}
	case "p":
		if n := m.circuit.Len(); n > 0 {
			m.selected = (m.selected - 1 + n) % n
		}
	case "m":
		if m.selected >= 0 {
			m.moving = true
			m.drag = m.circuit.Components()[m.selected].Position
		}
	case "x", "delete":
		return m.remove()
	}
	return m, nil
}

// moveKey drags the selected component. The position is only persisted on
// drop, like a mouseup in the browser.
func (m model) moveKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.selected < 0 || m.selected >= m.circuit.Len() {
		m.moving = false
		return m, nil
	}
	pos := m.drag

	switch msg.String() {
	case "up", "k":
		pos.Y = clamp(pos.Y - step)
	case "down", "j":
		pos.Y = clamp(pos.Y + step)
	case "left", "h":
		pos.X = clamp(pos.X - step)
	case "right", "l":
		pos.X = clamp(pos.X + step)
	case "enter", " ", "m", "esc":
		m.moving = false
		if err := m.circuit.Move(m.selected, pos); err != nil {
			m.logger.Printf("persist after move: %v", err)
		}
		return m, nil
	default:
		return m, nil
	}

	m.drag = pos
	return m, nil
}

func (m model) confirmKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if err := m.circuit.Clear(); err != nil {
			m.logger.Printf("persist after reset: %v", err)
		}
		m.focus, m.selected, m.moving = focusPalette, -1, false
		return m.notify("Workspace reset")
	case "n", "N", "esc":
		m.focus = m.prevFocus
	}
	return m, nil
}

func (m model) place() (model, tea.Cmd) {
	entries := m.catalog.Entries()
	if len(entries) == 0 {
		return m, nil
	}
	comp, err := entries[m.paletteCursor].Component(m.cursor)
	if err != nil {
		return m.notify(err.Error())
	}
	if err := m.circuit.Add(comp); err != nil {
		m.logger.Printf("persist after add: %v", err)
	}
	m.selected = m.circuit.Len() - 1
	return m.notify("Placed " + comp.Label())
}

func (m model) remove() (model, tea.Cmd) {
	if m.selected < 0 {
		return m, nil
	}
	label := m.circuit.Components()[m.selected].Label()
	if err := m.circuit.Remove(m.selected); err != nil {
		m.logger.Printf("persist after remove: %v", err)
	}
	if m.selected >= m.circuit.Len() {
		m.selected = m.circuit.Len() - 1
	}
	return m.notify("Removed " + label)
}

func (m model) notify(text string) (model, tea.Cmd) {
	m.toastID++
	m.toast = text
	id := m.toastID
	return m, tea.Tick(toastTimeout, func(time.Time) tea.Msg { return toastExpiredMsg{id: id} })
}

func (m model) View() string {
	var b strings.Builder
	s := m.styles

	b.WriteString("\n  " + s.title.Render("CIRCUITLAB") + "  " + s.subtle.Render("visual circuit builder") + "\n")
	b.WriteString("  " + s.separator(boardCols+30) + "\n\n")

	palette := m.viewPalette()
	board := m.viewBoard()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, "  ", palette, "  ", board))
	b.WriteString("\n\n")

	b.WriteString("  " + m.viewTotals() + "\n")
	switch {
	case m.focus == focusConfirmReset:
		b.WriteString("  " + s.warn.Render("Reset the workspace? This removes every component.") + "  " + s.hints("y", "yes", "n", "no") + "\n")
	case m.toast != "":
		b.WriteString("  " + s.toast.Render(m.toast) + "\n")
	default:
		b.WriteString("\n")
	}
	b.WriteString("\n  " + m.viewHints() + "\n")
	return b.String()
}

func (m model) viewPalette() string {
	s := m.styles
	var b strings.Builder
	b.WriteString(s.title.Render("Components") + "\n\n")
	for i, e := range m.catalog.Entries() {
		label := fmt.Sprintf("%-18s", e.Label())
		if i == m.paletteCursor {
			b.WriteString(s.cursor.Render("▸ ") + s.selected.Render(label) + "\n")
		} else {
			b.WriteString("  " + s.item.Render(label) + "\n")
		}
	}
	b.WriteString("\n" + s.title.Render("Placed") + "\n\n")
	comps := m.circuit.Components()
	if len(comps) == 0 {
		b.WriteString(s.subtle.Render("  nothing yet") + "\n")
	}
	for i, c := range comps {
		label := fmt.Sprintf("%d %-16s", i+1, c.Label())
		if i == m.selected {
			b.WriteString(s.cursor.Render("▸ ") + s.selected.Render(label) + "\n")
		} else {
			b.WriteString("  " + s.item.Render(label) + "\n")
		}
	}

	style := s.board
	if m.focus == focusPalette {
		style = s.focused
	}
	return style.Padding(0, 1).Render(b.String())
}

func (m model) viewBoard() string {
	s := m.styles
	grid := make([][]string, boardRows)
	for r := range grid {
		grid[r] = make([]string, boardCols)
		for c := range grid[r] {
			grid[r][c] = s.subtle.Render("·")
		}
	}

	cr, cc := cell(m.cursor)
	grid[cr][cc] = s.cursor.Render("+")

	for i, comp := range m.circuit.Components() {
		pos := comp.Position
		if m.moving && i == m.selected {
			pos = m.drag
		}
		r, c := cell(pos)
		glyph := glyphFor(comp.Kind)
		if i == m.selected {
			grid[r][c] = s.selection.Render(glyph)
		} else {
			grid[r][c] = s.part.Render(glyph)
		}
	}

	rows := make([]string, boardRows)
	for r := range grid {
		rows[r] = strings.Join(grid[r], "")
	}

	style := s.board
	if m.focus == focusBoard {
		style = s.focused
	}
	return style.Render(strings.Join(rows, "\n"))
}

func (m model) viewTotals() string {
	s := m.styles
	return s.subtle.Render("R ") + s.value.Render(formatValue(m.circuit.TotalResistance())+" Ω") +
		s.subtle.Render("   V ") + s.value.Render(formatValue(m.circuit.TotalVoltage())+" V") +
		s.subtle.Render("   I ") + s.value.Render(formatValue(m.circuit.TotalCurrent())+" A")
}

func (m model) viewHints() string {
	s := m.styles
	switch {
	case m.moving:
		return s.hints("h/j/k/l", "drag", "enter", "drop")
	case m.focus == focusBoard:
		return s.hints("h/j/k/l", "cursor", "enter", "place", "n/p", "select", "m", "move", "x", "delete", "tab", "palette", "r/v/c", "calculate", "R", "reset", "q", "quit")
	default:
		return s.hints("j/k", "choose", "enter", "place", "tab", "board", "r/v/c", "calculate", "R", "reset", "q", "quit")
	}
}

// cell maps a percentage position onto the board grid. Positions outside
// 0..100 (pixels from another front-end) are pinned to the edge.
func cell(p circuit.Position) (row, col int) {
	col = int(math.Round(clamp(p.X) / 100 * float64(boardCols-1)))
	row = int(math.Round(clamp(p.Y) / 100 * float64(boardRows-1)))
	return row, col
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func glyphFor(k circuit.Kind) string {
	switch k {
	case circuit.Resistor:
		return "R"
	case circuit.Battery:
		return "B"
	case circuit.LED:
		return "L"
	case circuit.Diode:
		return "D"
	case circuit.Transformer:
		return "T"
	}
	r, size := utf8.DecodeRuneInString(string(k))
	if size == 0 {
		return "?"
	}
	return strings.ToUpper(string(r))
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
