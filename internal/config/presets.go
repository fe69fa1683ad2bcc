package config

import (
	"sort"

	"github.com/san-kum/circuitlab/internal/circuit"
)

// Policies are the named voltage/resistance policies. "battery_only" matches
// the simplest workspace, which never counted transformers.
var Policies = map[string]circuit.Policy{
	"full":         circuit.DefaultPolicy,
	"battery_only": circuit.BatteryOnlyPolicy,
}

func GetPolicy(name string) (circuit.Policy, bool) {
	p, ok := Policies[name]
	return p, ok
}

func ListPolicies() []string {
	names := make([]string, 0, len(Policies))
	for name := range Policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
