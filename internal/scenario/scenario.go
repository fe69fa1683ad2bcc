// Package scenario applies scripted build sequences, written in YAML, to a
// circuit.
package scenario

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/circuitlab/internal/catalog"
	"github.com/san-kum/circuitlab/internal/circuit"
)

// Scenario defines a scripted placement sequence
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Reset       bool   `yaml:"reset"`
	Components  []Step `yaml:"components"`
}

// Step places one component. Magnitude and icon fall back to the catalog
// entry for the kind when omitted.
type Step struct {
	Kind      string   `yaml:"tipo"`
	Magnitude *float64 `yaml:"valor"`
	Icon      string   `yaml:"imagen"`
	X         float64  `yaml:"x"`
	Y         float64  `yaml:"y"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}

	return &s, nil
}

func (st Step) component(cat *catalog.Catalog) (circuit.Component, error) {
	kind := circuit.ParseKind(st.Kind)
	entry, known := cat.Lookup(kind)

	var magnitude float64
	switch {
	case st.Magnitude != nil:
		magnitude = *st.Magnitude
	case known:
		magnitude = entry.Magnitude
	default:
		return circuit.Component{}, fmt.Errorf("no valor for %q and no catalog entry", st.Kind)
	}

	icon := st.Icon
	if icon == "" {
		icon = entry.Icon
	}
	return circuit.NewComponent(kind, magnitude, icon, circuit.Position{X: st.X, Y: st.Y})
}

// Apply validates every step before touching the circuit, so a bad scenario
// leaves it unchanged. Progress lines go to w when it is non-nil.
func Apply(s *Scenario, c *circuit.Circuit, cat *catalog.Catalog, w io.Writer) error {
	comps := make([]circuit.Component, 0, len(s.Components))
	for i, st := range s.Components {
		comp, err := st.component(cat)
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		comps = append(comps, comp)
	}

	if s.Reset {
		if err := c.Clear(); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
	}

	for i, comp := range comps {
		if w != nil {
			fmt.Fprintf(w, "placing %d/%d: %s\n", i+1, len(comps), comp.Label())
		}
		if err := c.Add(comp); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}
