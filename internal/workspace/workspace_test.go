package workspace

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/circuitlab/internal/catalog"
	"github.com/san-kum/circuitlab/internal/circuit"
	"github.com/san-kum/circuitlab/internal/storage"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
)

func send(t *testing.T, m tea.Model, msgs ...tea.Msg) model {
	t.Helper()
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	got, ok := m.(model)
	require.True(t, ok)
	return got
}

func newWorkspace(t *testing.T) (tea.Model, *circuit.Circuit, *storage.Memory) {
	t.Helper()
	kv := storage.NewMemory()
	c := circuit.New(kv)
	return New(c, catalog.Default(), ThemeSchematic, nil), c, kv
}

func TestPlaceFromPalette(t *testing.T) {
	m, c, _ := newWorkspace(t)

	// resistor, resistor, battery
	got := send(t, m, enter, enter, runes("j"), enter)

	require.Equal(t, 3, c.Len())
	assert.Equal(t, 200.0, c.TotalResistance())
	assert.Equal(t, 9.0, c.TotalVoltage())
	assert.Equal(t, 2, got.selected)
	assert.Equal(t, "Placed Battery (9)", got.toast)
	assert.Equal(t, circuit.Position{X: 50, Y: 50}, c.Components()[0].Position)
}

func TestPlaceAtBoardCursor(t *testing.T) {
	m, c, _ := newWorkspace(t)

	send(t, m, tab, runes("l"), runes("l"), runes("k"), enter)

	require.Equal(t, 1, c.Len())
	assert.Equal(t, circuit.Position{X: 54, Y: 48}, c.Components()[0].Position)
}

func TestCalculations(t *testing.T) {
	m, _, _ := newWorkspace(t)
	m = send(t, m, enter, runes("j"), enter)

	assert.Equal(t, "Total resistance: 100 Ω", send(t, m, runes("r")).toast)
	assert.Equal(t, "Total voltage: 9 V", send(t, m, runes("v")).toast)
	assert.Equal(t, "Total current: 0.09 A", send(t, m, runes("c")).toast)
}

func TestCurrentWithoutResistance(t *testing.T) {
	m, _, _ := newWorkspace(t)
	got := send(t, m, runes("j"), enter, runes("c"))
	assert.Equal(t, "Total current: 0 A", got.toast)
}

func TestMovePersistsOnDrop(t *testing.T) {
	m, c, kv := newWorkspace(t)
	m = send(t, m, enter, tab, runes("m"), runes("l"), runes("l"), runes("j"))

	assert.Equal(t, circuit.Position{X: 50, Y: 50}, c.Components()[0].Position, "not persisted mid-drag")
	assert.Equal(t, circuit.Position{X: 54, Y: 52}, m.(model).drag)

	send(t, m, enter)
	assert.Equal(t, circuit.Position{X: 54, Y: 52}, c.Components()[0].Position)

	restored, err := circuit.Open(kv)
	require.NoError(t, err)
	assert.Equal(t, circuit.Position{X: 54, Y: 52}, restored.Components()[0].Position)
}

func TestDeleteSelected(t *testing.T) {
	m, c, _ := newWorkspace(t)
	got := send(t, m, enter, runes("j"), enter, tab, runes("p"), runes("x"))

	require.Equal(t, 1, c.Len())
	assert.Equal(t, circuit.Battery, c.Components()[0].Kind)
	assert.Equal(t, 0, got.selected)
}

func TestResetNeedsConfirmation(t *testing.T) {
	m, c, kv := newWorkspace(t)
	m = send(t, m, enter, enter)

	m = send(t, m, runes("R"), runes("n"))
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, focusPalette, m.(model).focus)

	got := send(t, m, runes("R"), runes("y"))
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, -1, got.selected)

	raw, _, _ := kv.Get(circuit.ComponentsKey)
	assert.Equal(t, "[]", raw)
}

func TestToastExpires(t *testing.T) {
	m, _, _ := newWorkspace(t)
	got := send(t, m, runes("r"))
	require.NotEmpty(t, got.toast)

	stale := send(t, got, toastExpiredMsg{id: got.toastID - 1})
	assert.NotEmpty(t, stale.toast)

	cleared := send(t, got, toastExpiredMsg{id: got.toastID})
	assert.Empty(t, cleared.toast)
}

func TestView(t *testing.T) {
	m, _, _ := newWorkspace(t)
	m = send(t, m, enter)

	view := m.View()
	assert.Contains(t, view, "CIRCUITLAB")
	assert.Contains(t, view, "Resistor (100)")
	assert.True(t, strings.Contains(view, "R"))
}

func TestCell(t *testing.T) {
	tests := []struct {
		pos      circuit.Position
		row, col int
	}{
		{circuit.Position{X: 0, Y: 0}, 0, 0},
		{circuit.Position{X: 100, Y: 100}, boardRows - 1, boardCols - 1},
		{circuit.Position{X: 350, Y: -20}, 0, boardCols - 1},
	}
	for _, tt := range tests {
		r, c := cell(tt.pos)
		if r != tt.row || c != tt.col {
			t.Errorf("cell(%v) = (%d,%d), want (%d,%d)", tt.pos, r, c, tt.row, tt.col)
		}
	}
}

func TestGetTheme(t *testing.T) {
	th, ok := GetTheme("blueprint")
	assert.True(t, ok)
	assert.Equal(t, "blueprint", th.Name)

	th, ok = GetTheme("missing")
	assert.False(t, ok)
	assert.Equal(t, "breadboard", th.Name)

	assert.Equal(t, []string{"breadboard", "schematic", "blueprint", "phosphor"}, ThemeNames())
}

func TestGlyphFor(t *testing.T) {
	tests := map[circuit.Kind]string{
		circuit.Resistor: "R",
		"capacitor":      "C",
		"óhmetro":        "Ó",
		"":               "?",
	}
	for kind, want := range tests {
		assert.Equal(t, want, glyphFor(kind), string(kind))
	}
}
