package model

import "strings"

// Kind is one of the activity types published by the platform backend.
type Kind struct {
	Name  string // e.g. "projeto"
	Label string // chart series label, e.g. "Projetos"
}

var (
	KindProject = Kind{Name: "projeto", Label: "Projetos"}
	KindEvent   = Kind{Name: "evento", Label: "Eventos"}
)

// AllKinds lists the supported kinds in canonical order.
var AllKinds = []Kind{KindProject, KindEvent}

// KindNames returns just the names of all kinds.
func KindNames() []string {
	names := make([]string, len(AllKinds))
	for i, k := range AllKinds {
		names[i] = k.Name
	}
	return names
}

// KindByName returns the Kind for the given name, or ok=false.
// Matching ignores case and surrounding whitespace.
func KindByName(name string) (Kind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, k := range AllKinds {
		if k.Name == name {
			return k, true
		}
	}
	return Kind{}, false
}
