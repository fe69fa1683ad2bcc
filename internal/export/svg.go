package export

import (
	"fmt"
	"html"
	"math"
	"os"
	"strings"

	"github.com/san-kum/circuitlab/internal/circuit"
)

// BoardToSVG draws the placed components on a width×height board. Positions
// are read as percentages of the board; values beyond 0..100 are pinned to
// the edge.
func BoardToSVG(c *circuit.Circuit, width, height int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	const size = 40.0
	w, h := float64(width), float64(height)

	for _, comp := range c.Components() {
		x := pin(comp.Position.X) / 100 * (w - size)
		y := pin(comp.Position.Y) / 100 * (h - size)

		sb.WriteString(fmt.Sprintf(`<g class="%s" transform="translate(%.1f %.1f)">
`, html.EscapeString(string(comp.Kind)), x, y))
		if comp.Icon != "" {
			sb.WriteString(fmt.Sprintf(`<image xlink:href="%s" width="%.0f" height="%.0f"/>
`, html.EscapeString(comp.Icon), size, size))
		} else {
			sb.WriteString(fmt.Sprintf(`<rect width="%.0f" height="%.0f" rx="6" fill="none" stroke="#00ffff"/>
`, size, size))
		}
		sb.WriteString(fmt.Sprintf(`<text y="%.0f" fill="#ffffff" font-family="monospace" font-size="11">%s</text>
</g>
`, size+12, html.EscapeString(comp.Label())))
	}

	t := c.Totals()
	sb.WriteString(fmt.Sprintf(`<text x="8" y="%d" fill="#00ff88" font-family="monospace" font-size="12">R=%g Ω  V=%g V  I=%g A</text>
`, height-8, t.Resistance, t.Voltage, t.Current))
	sb.WriteString("</svg>")
	return sb.String()
}

func SVG(path string, c *circuit.Circuit, width, height int) error {
	return os.WriteFile(path, []byte(BoardToSVG(c, width, height)), 0644)
}

func pin(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
