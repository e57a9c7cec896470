package arboriculture

import (
	"math/rand/v2"

	"github.com/appengine-ltd/arborist/internal/genetics"
	"github.com/appengine-ltd/arborist/internal/world"
)

type Tree struct {
	Genome genetics.Genome
}

func NewTree(g genetics.Genome) *Tree {
	return &Tree{Genome: g}
}

// Generator returns the generator for this tree's growth form, bound to w and pos.
func (t *Tree) Generator(w *world.World, pos world.Pos) Handle {
	return Handle{Generator: t.generator(), World: w, Pos: pos}
}

func (t *Tree) generator() Generator {
	species := t.Genome.Species
	if t.Genome.Form == genetics.FormSapling {
		sapling := species.Sapling
		if sapling == "" {
			sapling = species.Leaves
		}
		return &SaplingGenerator{Sapling: world.Block(sapling)}
	}
	return &TreeGenerator{
		Wood:   world.Block(species.Wood),
		Leaves: world.Block(species.Leaves),
		Height: t.Genome.Height,
		Girth:  t.Genome.Girth,
	}
}

// TreeGenerator grows a girth×girth trunk Height blocks tall under a round canopy.
type TreeGenerator struct {
	Wood   world.Block
	Leaves world.Block
	Height int
	Girth  int
}

func (g *TreeGenerator) SupportsReplace() bool { return true }

func (g *TreeGenerator) Generate(w *world.World, rng *rand.Rand, pos world.Pos) bool {
	return g.Place(w, rng, pos, false)
}

func (g *TreeGenerator) Place(w *world.World, rng *rand.Rand, pos world.Pos, replace bool) bool {
	if w == nil || !w.InBounds(pos) {
		return false
	}
	height := max(g.Height, 1)
	girth := max(g.Girth, 1)
	if pos.Y+height >= w.Height {
		return false
	}
	if !replace && !g.trunkClear(w, pos, height, girth) {
		return false
	}

	canopyR := canopyRadius(height, girth)
	canopyBase := pos.Y + height - canopyR
	for y := canopyBase; y <= pos.Y+height+1; y++ {
		r := canopyR
		if y > pos.Y+height-1 {
			r = max(canopyR-1, 1)
		}
		for dx := -r; dx < girth+r; dx++ {
			for dz := -r; dz < girth+r; dz++ {
				if !inCanopy(dx, dz, r, girth) {
					continue
				}
				// Ragged edges so neighbouring trees don't look stamped.
				if onCanopyEdge(dx, dz, r, girth) && rng != nil && rng.IntN(3) == 0 {
					continue
				}
				g.set(w, world.Pos{X: pos.X + dx, Y: y, Z: pos.Z + dz}, g.Leaves, replace)
			}
		}
	}
	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < girth; dx++ {
			for dz := 0; dz < girth; dz++ {
				w.SetBlock(pos.Add(dx, dy, dz), g.Wood)
			}
		}
	}
	return true
}

func (g *TreeGenerator) trunkClear(w *world.World, pos world.Pos, height, girth int) bool {
	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < girth; dx++ {
			for dz := 0; dz < girth; dz++ {
				if w.Block(pos.Add(dx, dy, dz)) != world.Air {
					return false
				}
			}
		}
	}
	return true
}

func (g *TreeGenerator) set(w *world.World, p world.Pos, b world.Block, replace bool) {
	if !replace && w.Block(p) != world.Air {
		return
	}
	w.SetBlock(p, b)
}

func canopyRadius(height, girth int) int {
	r := (height+1)/2 + girth/2
	return min(max(r, 1), 5)
}

func inCanopy(dx, dz, r, girth int) bool {
	cx := distToTrunk(dx, girth)
	cz := distToTrunk(dz, girth)
	return cx*cx+cz*cz <= r*r
}

func onCanopyEdge(dx, dz, r, girth int) bool {
	cx := distToTrunk(dx, girth)
	cz := distToTrunk(dz, girth)
	return cx*cx+cz*cz > (r-1)*(r-1)
}

func distToTrunk(d, girth int) int {
	switch {
	case d < 0:
		return -d
	case d >= girth:
		return d - girth + 1
	default:
		return 0
	}
}

// SaplingGenerator plants a single sapling block. It only implements the
// minimal contract and never replaces an occupied cell.
type SaplingGenerator struct {
	Sapling world.Block
}

func (g *SaplingGenerator) SupportsReplace() bool { return false }

func (g *SaplingGenerator) Generate(w *world.World, _ *rand.Rand, pos world.Pos) bool {
	if w == nil || w.Block(pos) != world.Air {
		return false
	}
	return w.SetBlock(pos, g.Sapling)
}

func (g *SaplingGenerator) Place(w *world.World, rng *rand.Rand, pos world.Pos, _ bool) bool {
	return g.Generate(w, rng, pos)
}
