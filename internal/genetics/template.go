package genetics

import (
	"fmt"
	"sync"
)

type Chromosome int

const (
	ChromosomeSpecies Chromosome = iota
	ChromosomeHeight
	ChromosomeGirth
	ChromosomeGrowth

	chromosomeCount
)

var chromosomeKinds = [chromosomeCount]AlleleKind{
	ChromosomeSpecies: KindSpecies,
	ChromosomeHeight:  KindHeight,
	ChromosomeGirth:   KindGirth,
	ChromosomeGrowth:  KindGrowth,
}

func (c Chromosome) String() string {
	if c < 0 || c >= chromosomeCount {
		return fmt.Sprintf("chromosome(%d)", int(c))
	}
	return string(chromosomeKinds[c])
}

// Template is the default allele set of a species, indexed by Chromosome.
type Template []Allele

func (t Template) SpeciesUID() string {
	if len(t) == 0 {
		return ""
	}
	return t[ChromosomeSpecies].UID
}

type Templates struct {
	mu    sync.RWMutex
	byUID map[string]Template
}

func NewTemplates() *Templates {
	return &Templates{byUID: make(map[string]Template)}
}

func (t *Templates) Register(tpl Template) error {
	if err := validateTemplate(tpl); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.byUID[tpl.SpeciesUID()] = append(Template(nil), tpl...)
	return nil
}

// Template returns a copy of the template registered for a species UID.
func (t *Templates) Template(uid string) (Template, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	tpl, ok := t.byUID[uid]
	if !ok {
		return nil, false
	}
	return append(Template(nil), tpl...), true
}

func validateTemplate(tpl Template) error {
	if len(tpl) != int(chromosomeCount) {
		return fmt.Errorf("template: want %d alleles, got %d", chromosomeCount, len(tpl))
	}
	for i, a := range tpl {
		c := Chromosome(i)
		if a.UID == "" {
			return fmt.Errorf("template %s: missing %s allele", tpl.SpeciesUID(), c)
		}
		if a.Kind != chromosomeKinds[c] {
			return fmt.Errorf("template %s: %s slot holds %s allele %s", tpl.SpeciesUID(), c, a.Kind, a.UID)
		}
	}
	return nil
}

// Genome is a template resolved into generation-ready traits.
type Genome struct {
	Species Allele
	Height  int
	Girth   int
	Form    string
}

func TemplateAsGenome(tpl Template) (Genome, error) {
	if err := validateTemplate(tpl); err != nil {
		return Genome{}, err
	}
	g := Genome{
		Species: tpl[ChromosomeSpecies],
		Height:  tpl[ChromosomeHeight].Value,
		Girth:   tpl[ChromosomeGirth].Value,
		Form:    tpl[ChromosomeGrowth].Form,
	}
	if g.Height < 1 {
		g.Height = 1
	}
	if g.Girth < 1 {
		g.Girth = 1
	}
	if g.Form == "" {
		g.Form = FormTree
	}
	return g, nil
}
