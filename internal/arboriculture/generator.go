package arboriculture

import (
	"math/rand/v2"

	"github.com/appengine-ltd/arborist/internal/world"
)

// Generator places a feature into a world. Generators that report
// SupportsReplace honour the replace flag of Place; the rest only implement
// the minimal Generate contract and Place ignores the flag.
type Generator interface {
	SupportsReplace() bool
	Generate(w *world.World, rng *rand.Rand, pos world.Pos) bool
	Place(w *world.World, rng *rand.Rand, pos world.Pos, replace bool) bool
}

type placement func(g Generator, w *world.World, rng *rand.Rand, pos world.Pos) bool

func replacingPlacement(g Generator, w *world.World, rng *rand.Rand, pos world.Pos) bool {
	return g.Place(w, rng, pos, true)
}

func basicPlacement(g Generator, w *world.World, rng *rand.Rand, pos world.Pos) bool {
	return g.Generate(w, rng, pos)
}

func placementFor(g Generator) placement {
	if g.SupportsReplace() {
		return replacingPlacement
	}
	return basicPlacement
}

// Generate runs g at pos, replacing existing blocks when g supports it.
func Generate(g Generator, w *world.World, rng *rand.Rand, pos world.Pos) bool {
	if g == nil {
		return false
	}
	return placementFor(g)(g, w, rng, pos)
}

// Handle is a generator bound to the world and position it was created for.
type Handle struct {
	Generator Generator
	World     *world.World
	Pos       world.Pos
}

func (h Handle) SupportsReplace() bool {
	return h.Generator != nil && h.Generator.SupportsReplace()
}

// Run generates at the bound position using rng.
func (h Handle) Run(rng *rand.Rand) bool {
	return Generate(h.Generator, h.World, rng, h.Pos)
}

// At rebinds the handle to another position in the same world.
func (h Handle) At(pos world.Pos) Handle {
	h.Pos = pos
	return h
}
