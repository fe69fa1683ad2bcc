// Package catalog describes the palette of component types a user can place.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/circuitlab/internal/circuit"
)

// ErrCatalogUnavailable indicates a catalog file that could not be read or
// decoded. Callers fall back to Default.
var ErrCatalogUnavailable = errors.New("catalog: unavailable")

type Entry struct {
	Kind      circuit.Kind `json:"tipo" yaml:"tipo"`
	Magnitude float64      `json:"valor" yaml:"valor"`
	Icon      string       `json:"imagen" yaml:"imagen"`
}

// Component places the entry at pos.
func (e Entry) Component(pos circuit.Position) (circuit.Component, error) {
	return circuit.NewComponent(e.Kind, e.Magnitude, e.Icon, pos)
}

func (e Entry) Label() string {
	c := circuit.Component{Kind: e.Kind, Magnitude: e.Magnitude}
	return c.Label()
}

type Catalog struct {
	entries []Entry
}

func New(entries []Entry) *Catalog {
	c := &Catalog{entries: make([]Entry, 0, len(entries))}
	for _, e := range entries {
		e.Kind = circuit.ParseKind(string(e.Kind))
		c.entries = append(c.entries, e)
	}
	return c
}

// Default is the built-in palette.
func Default() *Catalog {
	return New([]Entry{
		{Kind: circuit.Resistor, Magnitude: 100, Icon: "icons/resistor.png"},
		{Kind: circuit.Battery, Magnitude: 9, Icon: "icons/battery.png"},
		{Kind: circuit.LED, Magnitude: 2, Icon: "icons/led.png"},
		{Kind: circuit.Diode, Magnitude: 3, Icon: "icons/diode.png"},
		{Kind: circuit.Transformer, Magnitude: 12, Icon: "icons/transformer.png"},
	})
}

// Load reads a JSON or YAML array of entries, picking the decoder by file
// extension.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	var entries []Entry
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &entries)
	default:
		err = json.Unmarshal(data, &entries)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCatalogUnavailable, path, err)
	}
	for i, e := range entries {
		if e.Kind == "" {
			return nil, fmt.Errorf("%w: %s: entry %d has no tipo", ErrCatalogUnavailable, path, i)
		}
	}
	return New(entries), nil
}

// LoadOrDefault loads path when set and falls back to Default on any
// failure, returning the failure so it can be logged.
func LoadOrDefault(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	c, err := Load(path)
	if err != nil {
		return Default(), err
	}
	return c, nil
}

func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Catalog) Len() int { return len(c.entries) }

// Lookup returns the first entry of the given kind.
func (c *Catalog) Lookup(kind circuit.Kind) (Entry, bool) {
	for _, e := range c.entries {
		if e.Kind == kind {
			return e, true
		}
	}
	return Entry{}, false
}

// Icon returns the icon of kind, or "" when the catalog has no such kind.
func (c *Catalog) Icon(kind circuit.Kind) string {
	e, _ := c.Lookup(kind)
	return e.Icon
}
