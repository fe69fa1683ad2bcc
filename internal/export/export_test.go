package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/circuitlab/internal/circuit"
	"github.com/san-kum/circuitlab/internal/storage"
)

func sample(t *testing.T) *circuit.Circuit {
	t.Helper()
	c := circuit.New(storage.NewMemory())
	require.NoError(t, c.Add(circuit.Component{Kind: circuit.Resistor, Magnitude: 100, Icon: "r.png", Position: circuit.Position{X: 1, Y: 2}}))
	require.NoError(t, c.Add(circuit.Component{Kind: circuit.Battery, Magnitude: 9}))
	return c
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sample(t)))

	var got Data
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, "resistor", got.Components[0].Kind)
	assert.Equal(t, 2.0, got.Components[0].Y)
	assert.Equal(t, 0.09, got.Totals.Current)
	assert.Nil(t, got.SavedAt)
	assert.Contains(t, buf.String(), `"tipo": "battery"`)
}

func TestJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "circuit.json")
	require.NoError(t, JSON(path, sample(t)))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestBoardToSVG(t *testing.T) {
	c := sample(t)
	require.NoError(t, c.Add(circuit.Component{Kind: "<odd>", Magnitude: 1, Position: circuit.Position{X: 500, Y: -3}}))

	svg := BoardToSVG(c, 800, 600)

	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Contains(t, svg, `xlink:href="r.png"`)
	assert.Contains(t, svg, "Resistor (100)")
	assert.Contains(t, svg, "R=100 Ω  V=9 V  I=0.09 A")
	assert.Contains(t, svg, `translate(760.0 0.0)`)
	assert.NotContains(t, svg, "<odd>")
}

func TestSVGFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.svg")
	require.NoError(t, SVG(path, sample(t), 400, 300))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}
