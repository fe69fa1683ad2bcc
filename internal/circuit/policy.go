package circuit

// Policy decides which kinds feed each aggregate. Kinds match exactly. LED
// and diode are inert in both shipped policies.
type Policy struct {
	ResistanceKinds []Kind
	VoltageKinds    []Kind
}

// Tags saved by the browser workspace. Restore keeps them verbatim, so the
// shipped policies count them alongside the canonical kinds.
const (
	legacyBattery     Kind = "bateria"
	legacyTransformer Kind = "transformador"
)

var (
	DefaultPolicy = Policy{
		ResistanceKinds: []Kind{Resistor},
		VoltageKinds:    []Kind{Battery, Transformer, legacyBattery, legacyTransformer},
	}

	BatteryOnlyPolicy = Policy{
		ResistanceKinds: []Kind{Resistor},
		VoltageKinds:    []Kind{Battery, legacyBattery},
	}
)

func (p Policy) countsAsResistance(k Kind) bool { return contains(p.ResistanceKinds, k) }

func (p Policy) countsAsVoltage(k Kind) bool { return contains(p.VoltageKinds, k) }

func contains(kinds []Kind, k Kind) bool {
	for _, x := range kinds {
		if x == k {
			return true
		}
	}
	return false
}
