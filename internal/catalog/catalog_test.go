package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/circuitlab/internal/circuit"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestDefault(t *testing.T) {
	c := Default()
	require.Equal(t, 5, c.Len())

	r, ok := c.Lookup(circuit.Resistor)
	require.True(t, ok)
	assert.Equal(t, 100.0, r.Magnitude)

	b, ok := c.Lookup(circuit.Battery)
	require.True(t, ok)
	assert.Equal(t, 9.0, b.Magnitude)

	_, ok = c.Lookup("capacitor")
	assert.False(t, ok)
	assert.Empty(t, c.Icon("capacitor"))
}

func TestLoadJSON(t *testing.T) {
	p := writeFile(t, "catalog.json", `[
		{"tipo": "resistor", "valor": 220, "imagen": "r.png"},
		{"tipo": "bateria", "valor": 1.5, "imagen": "b.png"}
	]`)

	c, err := Load(p)
	require.NoError(t, err)
	entries := c.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, circuit.Battery, entries[1].Kind)
	assert.Equal(t, "b.png", c.Icon(circuit.Battery))
}

func TestLoadYAML(t *testing.T) {
	p := writeFile(t, "catalog.yaml", `
- tipo: transformador
  valor: 24
  imagen: t.png
- tipo: led
  valor: 2
`)

	c, err := Load(p)
	require.NoError(t, err)
	e, ok := c.Lookup(circuit.Transformer)
	require.True(t, ok)
	assert.Equal(t, 24.0, e.Magnitude)
}

func TestLoadFailures(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(t.TempDir(), "nope.json")},
		{"bad json", writeFile(t, "bad.json", `{"tipo":`)},
		{"missing kind", writeFile(t, "nokind.json", `[{"valor": 1}]`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			assert.ErrorIs(t, err, ErrCatalogUnavailable)
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	c, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Default().Entries(), c.Entries())

	c, err = LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
	assert.Equal(t, 5, c.Len())
}

func TestEntryComponent(t *testing.T) {
	e := Entry{Kind: circuit.Resistor, Magnitude: 100, Icon: "r.png"}
	comp, err := e.Component(circuit.Position{X: 5, Y: 6})
	require.NoError(t, err)
	assert.Equal(t, circuit.Component{Kind: circuit.Resistor, Magnitude: 100, Icon: "r.png", Position: circuit.Position{X: 5, Y: 6}}, comp)
	assert.Equal(t, "Resistor (100)", e.Label())
}
