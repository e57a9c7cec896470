package command

import (
	"github.com/rs/zerolog"

	"github.com/appengine-ltd/arborist/internal/arboriculture"
	"github.com/appengine-ltd/arborist/internal/genetics"
	"github.com/appengine-ltd/arborist/internal/parser"
	"github.com/appengine-ltd/arborist/internal/world"
)

// Env is what tree commands read: the allele registry and templates, the
// world they write into and the players in it. Commands never mutate the
// registries.
type Env struct {
	Alleles   *genetics.Registry
	Templates *genetics.Templates
	World     *world.World
	Players   *world.Players
	Log       zerolog.Logger
}

// FindSpecies resolves a species phrase: an exact species UID first, then
// the one species whose display name equals the phrase once whitespace is
// stripped from both. Name matching is case-sensitive and scans in UID order.
func (e *Env) FindSpecies(phrase string) (genetics.Allele, error) {
	if a, ok := e.Alleles.Get(phrase); ok && a.IsSpecies() {
		return a, nil
	}
	want := parser.StripWhitespace(phrase)
	species := e.Alleles.Species()
	for _, a := range species {
		if parser.StripWhitespace(a.Name) == want {
			return a, nil
		}
	}
	return genetics.Allele{}, &SpeciesNotFoundError{Name: phrase, Suggestions: suggestSpecies(phrase, species)}
}

func suggestSpecies(phrase string, species []genetics.Allele) []string {
	if phrase == "" {
		return nil
	}
	names := make([]string, 0, len(species))
	for _, a := range species {
		names = append(names, parser.StripWhitespace(a.Name))
	}
	return parser.Suggest(phrase, names, 3)
}

// Genome builds the default genome of the species named by phrase.
func (e *Env) Genome(phrase string) (genetics.Genome, error) {
	species, err := e.FindSpecies(phrase)
	if err != nil {
		return genetics.Genome{}, err
	}
	tpl, ok := e.Templates.Template(species.UID)
	if !ok {
		return genetics.Genome{}, &TemplateNotFoundError{Species: species.UID}
	}
	return genetics.TemplateAsGenome(tpl)
}

// TreeGenerator returns a generator for the species named by phrase, bound to pos.
func (e *Env) TreeGenerator(phrase string, pos world.Pos) (arboriculture.Handle, error) {
	g, err := e.Genome(phrase)
	if err != nil {
		return arboriculture.Handle{}, err
	}
	return arboriculture.NewTree(g).Generator(e.World, pos), nil
}

// SpeciesNames lists species display names with whitespace removed, in UID order.
func (e *Env) SpeciesNames() []string {
	species := e.Alleles.Species()
	out := make([]string, 0, len(species))
	for _, a := range species {
		out = append(out, parser.StripWhitespace(a.Name))
	}
	return out
}
