package circuit

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Keys of the persisted layout. The names are kept from the browser
// workspace so existing saves keep loading.
const (
	ComponentsKey = "componentes"
	SavedAtKey    = "fechaGuardado"
	// BackupKey receives the raw snapshot when Restore has to drop entries,
	// before the next write replaces it.
	BackupKey = "componentes_respaldo"
)

// timestampLayout matches JavaScript's Date.toISOString.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

type record struct {
	Kind      string  `json:"tipo"`
	Magnitude float64 `json:"valor"`
	Icon      string  `json:"imagen"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

func encodeComponents(components []Component) (string, error) {
	records := make([]record, len(components))
	for i, c := range components {
		records[i] = record{
			Kind:      string(c.Kind),
			Magnitude: c.Magnitude,
			Icon:      c.Icon,
			X:         c.Position.X,
			Y:         c.Position.Y,
		}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// storedRecord accepts the looser shapes older workspaces wrote: valor as
// a number or as numeric text.
type storedRecord struct {
	Kind      string          `json:"tipo"`
	Magnitude json.RawMessage `json:"valor"`
	Icon      string          `json:"imagen"`
	X         float64         `json:"x"`
	Y         float64         `json:"y"`
}

func (r storedRecord) magnitude() (float64, error) {
	var v float64
	if err := json.Unmarshal(r.Magnitude, &v); err == nil && len(r.Magnitude) > 0 && string(r.Magnitude) != "null" {
		return v, nil
	}
	var text string
	if err := json.Unmarshal(r.Magnitude, &text); err == nil {
		return ParseMagnitude(text)
	}
	return 0, fmt.Errorf("%w: %s", ErrInvalidMagnitude, string(r.Magnitude))
}

// decodeComponents keeps kinds exactly as stored. Entries that cannot be
// read are skipped; the error lists them alongside the readable ones.
func decodeComponents(raw string) ([]Component, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	components := make([]Component, 0, len(entries))
	var skipped []string
	for i, entry := range entries {
		var r storedRecord
		if err := json.Unmarshal(entry, &r); err != nil {
			skipped = append(skipped, fmt.Sprintf("entry %d: %v", i, err))
			continue
		}
		m, err := r.magnitude()
		if err != nil {
			skipped = append(skipped, fmt.Sprintf("entry %d: %v", i, err))
			continue
		}
		components = append(components, Component{
			Kind:      Kind(r.Kind),
			Magnitude: m,
			Icon:      r.Icon,
			Position:  Position{X: r.X, Y: r.Y},
		})
	}
	if len(skipped) > 0 {
		return components, fmt.Errorf("%w: skipped %s", ErrCorruptSnapshot, strings.Join(skipped, "; "))
	}
	return components, nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(timestampLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
