package germling

import (
	"sort"

	"github.com/appengine-ltd/arborist/internal/genetics"
)

// Table holds one ModelProvider per species UID.
type Table struct {
	providers map[string]*ModelProvider
}

// RegisterAll creates and registers a provider for every species allele.
func RegisterAll(species []genetics.Allele, m ModelManager) *Table {
	t := &Table{providers: make(map[string]*ModelProvider, len(species))}
	for _, a := range species {
		if !a.IsSpecies() {
			continue
		}
		p := NewModelProvider(a.UID)
		p.RegisterModels(m)
		t.providers[a.UID] = p
	}
	return t
}

func (t *Table) Provider(uid string) (*ModelProvider, bool) {
	p, ok := t.providers[uid]
	return p, ok
}

// UIDs returns the species with a provider, sorted.
func (t *Table) UIDs() []string {
	out := make([]string, 0, len(t.providers))
	for uid := range t.providers {
		out = append(out, uid)
	}
	sort.Strings(out)
	return out
}
