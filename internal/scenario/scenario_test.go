package scenario

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/circuitlab/internal/catalog"
	"github.com/san-kum/circuitlab/internal/circuit"
	"github.com/san-kum/circuitlab/internal/storage"
)

const divider = `
name: divider
description: two resistors and a battery
reset: true
components:
  - {tipo: resistor, valor: 100, x: 10, y: 20}
  - {tipo: resistor, valor: 200}
  - {tipo: bateria}
`

func loadString(t *testing.T, content string) *Scenario {
	t.Helper()
	p := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	s, err := LoadScenario(p)
	require.NoError(t, err)
	return s
}

func TestApply(t *testing.T) {
	s := loadString(t, divider)
	assert.Equal(t, "divider", s.Name)

	c := circuit.New(storage.NewMemory())
	require.NoError(t, c.Add(circuit.Component{Kind: circuit.Resistor, Magnitude: 1}))

	var out bytes.Buffer
	require.NoError(t, Apply(s, c, catalog.Default(), &out))

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 300.0, c.TotalResistance())
	assert.Equal(t, 9.0, c.TotalVoltage())
	assert.InDelta(t, 0.03, c.TotalCurrent(), 1e-12)

	comps := c.Components()
	assert.Equal(t, circuit.Position{X: 10, Y: 20}, comps[0].Position)
	assert.Equal(t, "icons/battery.png", comps[2].Icon)
	assert.Contains(t, out.String(), "placing 3/3: Battery (9)")
}

func TestApplyRejectsUnknownKindWithoutMagnitude(t *testing.T) {
	s := loadString(t, `
components:
  - {tipo: resistor, valor: 100}
  - {tipo: capacitor}
`)
	c := circuit.New(storage.NewMemory())

	err := Apply(s, c, catalog.Default(), nil)
	assert.Error(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestApplyUnknownKindWithMagnitude(t *testing.T) {
	s := loadString(t, `
components:
  - {tipo: capacitor, valor: 0.001, imagen: c.png}
`)
	c := circuit.New(storage.NewMemory())

	require.NoError(t, Apply(s, c, catalog.Default(), nil))
	assert.Equal(t, circuit.Kind("capacitor"), c.Components()[0].Kind)
	assert.Equal(t, 0.0, c.TotalResistance())
}

func TestLoadScenario_Invalid(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(p, []byte("components: [}"), 0644))

	_, err := LoadScenario(p)
	assert.Error(t, err)
}
