// Package export writes the current circuit and its totals as JSON.
package export

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/san-kum/circuitlab/internal/circuit"
)

type Component struct {
	Kind      string  `json:"tipo"`
	Magnitude float64 `json:"valor"`
	Icon      string  `json:"imagen"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

type Data struct {
	Components []Component    `json:"componentes"`
	Totals     circuit.Totals `json:"totals"`
	Count      int            `json:"count"`
	SavedAt    *time.Time     `json:"saved_at,omitempty"`
}

// FromCircuit builds the export document.
func FromCircuit(c *circuit.Circuit) Data {
	comps := c.Components()
	data := Data{
		Components: make([]Component, len(comps)),
		Totals:     c.Totals(),
		Count:      len(comps),
	}
	for i, comp := range comps {
		data.Components[i] = Component{
			Kind:      string(comp.Kind),
			Magnitude: comp.Magnitude,
			Icon:      comp.Icon,
			X:         comp.Position.X,
			Y:         comp.Position.Y,
		}
	}
	if t := c.SavedAt(); !t.IsZero() {
		data.SavedAt = &t
	}
	return data
}

func Write(w io.Writer, c *circuit.Circuit) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(FromCircuit(c))
}

func JSON(path string, c *circuit.Circuit) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return Write(file, c)
}

func JSONStdout(c *circuit.Circuit) error {
	return Write(os.Stdout, c)
}
