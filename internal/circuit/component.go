package circuit

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind is the category tag of a component. The set is open: catalog data may
// introduce kinds the model has never heard of.
type Kind string

const (
	Resistor    Kind = "resistor"
	Battery     Kind = "battery"
	LED         Kind = "led"
	Diode       Kind = "diode"
	Transformer Kind = "transformer"
)

// Legacy tags written by the browser workspace.
var kindAliases = map[string]Kind{
	"resistencia":   Resistor,
	"bateria":       Battery,
	"batería":       Battery,
	"diodo":         Diode,
	"transformador": Transformer,
}

// ParseKind normalizes user input (CLI, API, catalog, scenario files). Known
// legacy tags map to their canonical kind; anything else is lowercased.
// Components already stored are never re-parsed.
func ParseKind(s string) Kind {
	s = strings.ToLower(strings.TrimSpace(s))
	if k, ok := kindAliases[s]; ok {
		return k
	}
	return Kind(s)
}

func (k Kind) String() string { return string(k) }

// Title returns the kind with its first letter upper-cased, the way the
// palette labels it.
func (k Kind) Title() string {
	r, size := utf8.DecodeRuneInString(string(k))
	if size == 0 {
		return ""
	}
	return strings.ToUpper(string(r)) + string(k[size:])
}

// Unit is the display unit of a kind's magnitude.
func (k Kind) Unit() string {
	switch k {
	case Resistor:
		return "Ω"
	case Battery, Transformer, LED, Diode:
		return "V"
	}
	return ""
}

// Position is stored exactly as given; whether it is a percentage of the
// workspace or absolute cells is up to the presentation layer.
type Position struct {
	X float64
	Y float64
}

type Component struct {
	Kind      Kind
	Magnitude float64
	Icon      string
	Position  Position
}

// NewComponent builds a component, rejecting an empty kind and magnitudes
// that are NaN or infinite. Zero and negative magnitudes are accepted.
func NewComponent(kind Kind, magnitude float64, icon string, pos Position) (Component, error) {
	if kind == "" {
		return Component{}, ErrEmptyKind
	}
	if math.IsNaN(magnitude) || math.IsInf(magnitude, 0) {
		return Component{}, fmt.Errorf("%w: %v", ErrInvalidMagnitude, magnitude)
	}
	return Component{Kind: kind, Magnitude: magnitude, Icon: icon, Position: pos}, nil
}

// ParseMagnitude converts text input to a magnitude.
func ParseMagnitude(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMagnitude, s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMagnitude, s)
	}
	return v, nil
}

// Label is the "Kind (magnitude)" text shown next to a placed icon.
func (c Component) Label() string {
	return fmt.Sprintf("%s (%s)", c.Kind.Title(), strconv.FormatFloat(c.Magnitude, 'f', -1, 64))
}
