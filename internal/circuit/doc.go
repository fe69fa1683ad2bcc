// Package circuit holds the circuit model behind the workspace: an ordered
// list of placed components, the aggregate quantities derived from it, and
// the snapshot written to a key-value store after every mutation.
//
//   - [Component]: one placed part (kind, magnitude, icon, position)
//   - [Circuit]: ordered components plus totals and persistence
//   - [Policy]: which kinds count toward resistance and voltage
//
// # Example
//
//	c, err := circuit.Open(storage.NewMemory())
//	r, _ := circuit.NewComponent(circuit.Resistor, 100, "", circuit.Position{})
//	_ = c.Add(r)
//	fmt.Println(c.TotalCurrent())
//
// # Thread Safety
//
// Circuit instances are NOT thread-safe. Callers that share one across
// goroutines (the HTTP API) must serialize access themselves.
package circuit
