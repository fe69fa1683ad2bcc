package workspace

import "github.com/charmbracelet/lipgloss"

// Theme colors the surfaces of the workspace.
type Theme struct {
	Name       string
	Frame      lipgloss.Color // unfocused panel border
	FocusFrame lipgloss.Color
	Grid       lipgloss.Color // board dots, hints, muted labels
	Heading    lipgloss.Color // titles, cursor, key names
	Label      lipgloss.Color // highlighted palette row
	Part       lipgloss.Color // placed component glyphs
	Selection  lipgloss.Color // background of the selected part and toasts
	Reading    lipgloss.Color // computed totals
	Warning    lipgloss.Color
}

var (
	// ThemeBreadboard mimics a white breadboard with colored jumper wire.
	ThemeBreadboard = Theme{
		Name:       "breadboard",
		Frame:      lipgloss.Color("#5c5c5c"),
		FocusFrame: lipgloss.Color("#e8e8e8"),
		Grid:       lipgloss.Color("#7a7a7a"),
		Heading:    lipgloss.Color("#ff5f5f"),
		Label:      lipgloss.Color("#ffffff"),
		Part:       lipgloss.Color("#ffd75f"),
		Selection:  lipgloss.Color("#d70000"),
		Reading:    lipgloss.Color("#5fd75f"),
		Warning:    lipgloss.Color("#ffaf00"),
	}

	// ThemeSchematic is black ink on paper.
	ThemeSchematic = Theme{
		Name:       "schematic",
		Frame:      lipgloss.Color("#8a8a8a"),
		FocusFrame: lipgloss.Color("#000000"),
		Grid:       lipgloss.Color("#b2b2b2"),
		Heading:    lipgloss.Color("#000000"),
		Label:      lipgloss.Color("#1c1c1c"),
		Part:       lipgloss.Color("#005f87"),
		Selection:  lipgloss.Color("#87afd7"),
		Reading:    lipgloss.Color("#005f00"),
		Warning:    lipgloss.Color("#af0000"),
	}

	// ThemeBlueprint is white lines on blueprint blue.
	ThemeBlueprint = Theme{
		Name:       "blueprint",
		Frame:      lipgloss.Color("#2f5f8f"),
		FocusFrame: lipgloss.Color("#afd7ff"),
		Grid:       lipgloss.Color("#3a6ea5"),
		Heading:    lipgloss.Color("#d7ffff"),
		Label:      lipgloss.Color("#ffffff"),
		Part:       lipgloss.Color("#ffffff"),
		Selection:  lipgloss.Color("#005faf"),
		Reading:    lipgloss.Color("#87ffd7"),
		Warning:    lipgloss.Color("#ffd700"),
	}

	// ThemePhosphor is a green oscilloscope trace.
	ThemePhosphor = Theme{
		Name:       "phosphor",
		Frame:      lipgloss.Color("#005500"),
		FocusFrame: lipgloss.Color("#00ff00"),
		Grid:       lipgloss.Color("#006600"),
		Heading:    lipgloss.Color("#00ff00"),
		Label:      lipgloss.Color("#ccffcc"),
		Part:       lipgloss.Color("#88ff88"),
		Selection:  lipgloss.Color("#008800"),
		Reading:    lipgloss.Color("#aaff00"),
		Warning:    lipgloss.Color("#ffff00"),
	}

	Themes = []Theme{
		ThemeBreadboard,
		ThemeSchematic,
		ThemeBlueprint,
		ThemePhosphor,
	}
)

// GetTheme returns the named theme.
func GetTheme(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return ThemeBreadboard, false
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
