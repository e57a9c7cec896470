package world

import (
	"fmt"
	"math/rand/v2"
	"sort"
)

// Block is a block id from the block palette. The empty id is air.
type Block string

const (
	Air     Block = ""
	Bedrock Block = "bedrock"
	Dirt    Block = "dirt"
)

type Pos struct {
	X int `json:"x" toml:"x"`
	Y int `json:"y" toml:"y"`
	Z int `json:"z" toml:"z"`
}

func (p Pos) Add(dx, dy, dz int) Pos {
	return Pos{X: p.X + dx, Y: p.Y + dy, Z: p.Z + dz}
}

func (p Pos) String() string {
	return fmt.Sprintf("%d,%d,%d", p.X, p.Y, p.Z)
}

// World is a sparse voxel column store over a flat dirt floor. Cells below
// GroundY are dirt (bedrock at y=0) until overwritten.
type World struct {
	Name    string
	Seed    int64
	Height  int
	GroundY int

	blocks map[Pos]Block
	rng    *rand.Rand
}

func New(name string, seed int64, height, groundY int) *World {
	if height <= 0 {
		height = 256
	}
	if groundY < 1 {
		groundY = 1
	}
	if groundY >= height {
		groundY = height - 1
	}
	return &World{
		Name:    name,
		Seed:    seed,
		Height:  height,
		GroundY: groundY,
		blocks:  make(map[Pos]Block),
		rng:     seededRNG(seed, name),
	}
}

func (w *World) InBounds(p Pos) bool {
	return p.Y >= 0 && p.Y < w.Height
}

func (w *World) Block(p Pos) Block {
	if !w.InBounds(p) {
		return Air
	}
	if b, ok := w.blocks[p]; ok {
		return b
	}
	switch {
	case p.Y == 0:
		return Bedrock
	case p.Y < w.GroundY:
		return Dirt
	default:
		return Air
	}
}

// SetBlock writes b at p. Bedrock and out-of-bounds cells are never changed.
func (w *World) SetBlock(p Pos, b Block) bool {
	if !w.InBounds(p) || w.Block(p) == Bedrock {
		return false
	}
	w.blocks[p] = b
	return true
}

// TopSolidY returns the y of the highest non-air block in the column, or -1.
func (w *World) TopSolidY(x, z int) int {
	for y := w.Height - 1; y >= 0; y-- {
		if w.Block(Pos{X: x, Y: y, Z: z}) != Air {
			return y
		}
	}
	return -1
}

// Surface is the first air cell above the column's top solid block.
func (w *World) Surface(x, z int) Pos {
	return Pos{X: x, Y: w.TopSolidY(x, z) + 1, Z: z}
}

func (w *World) Rand() *rand.Rand {
	return w.rng
}

type BlockEntry struct {
	Pos   Pos
	Block Block
}

// Blocks returns every explicitly written cell, sorted by position.
func (w *World) Blocks() []BlockEntry {
	out := make([]BlockEntry, 0, len(w.blocks))
	for p, b := range w.blocks {
		out = append(out, BlockEntry{Pos: p, Block: b})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Pos, out[j].Pos
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		return a.Y < b.Y
	})
	return out
}

// Restore replaces the written cells with entries, e.g. after loading a save.
func (w *World) Restore(entries []BlockEntry) {
	w.blocks = make(map[Pos]Block, len(entries))
	for _, e := range entries {
		if w.InBounds(e.Pos) {
			w.blocks[e.Pos] = e.Block
		}
	}
}

// Count reports how many cells currently hold b.
func (w *World) Count(b Block) int {
	n := 0
	for _, got := range w.blocks {
		if got == b {
			n++
		}
	}
	return n
}
