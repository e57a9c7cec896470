package genetics

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

type AlleleKind string

const (
	KindSpecies AlleleKind = "species"
	KindHeight  AlleleKind = "height"
	KindGirth   AlleleKind = "girth"
	KindGrowth  AlleleKind = "growth"
)

// Growth forms understood by the tree generators.
const (
	FormTree    = "tree"
	FormSapling = "sapling"
)

// Allele is a registry entry. Which fields are meaningful depends on Kind:
// species carry Wood, Leaves and Sapling blocks, height and girth carry Value,
// growth carries Form.
type Allele struct {
	UID     string     `yaml:"uid" json:"uid"`
	Name    string     `yaml:"name,omitempty" json:"name,omitempty"`
	Kind    AlleleKind `yaml:"kind" json:"kind"`
	Value   int        `yaml:"value,omitempty" json:"value,omitempty"`
	Form    string     `yaml:"form,omitempty" json:"form,omitempty"`
	Wood    string     `yaml:"wood,omitempty" json:"wood,omitempty"`
	Leaves  string     `yaml:"leaves,omitempty" json:"leaves,omitempty"`
	Sapling string     `yaml:"sapling,omitempty" json:"sapling,omitempty"`
}

func (a Allele) IsSpecies() bool {
	return a.Kind == KindSpecies
}

// Registry holds every known allele keyed by UID. Readers get snapshots, so a
// scan never observes a registration that happens mid-iteration.
type Registry struct {
	mu      sync.RWMutex
	alleles map[string]Allele
}

func NewRegistry() *Registry {
	return &Registry{alleles: make(map[string]Allele)}
}

func (r *Registry) Register(a Allele) error {
	a.UID = strings.TrimSpace(a.UID)
	if a.UID == "" {
		return fmt.Errorf("allele: empty uid")
	}
	if a.Kind == "" {
		return fmt.Errorf("allele %s: empty kind", a.UID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.alleles[a.UID]; exists {
		return fmt.Errorf("allele %s: already registered", a.UID)
	}
	r.alleles[a.UID] = a
	return nil
}

func (r *Registry) Get(uid string) (Allele, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.alleles[uid]
	return a, ok
}

// All returns a copy of the registry contents.
func (r *Registry) All() map[string]Allele {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]Allele, len(r.alleles))
	for uid, a := range r.alleles {
		out[uid] = a
	}
	return out
}

// Species returns the species alleles sorted by UID.
func (r *Registry) Species() []Allele {
	all := r.All()
	out := make([]Allele, 0, len(all))
	for _, a := range all {
		if a.IsSpecies() {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UID < out[j].UID })
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.alleles)
}
