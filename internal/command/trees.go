package command

import (
	"fmt"

	"github.com/appengine-ltd/arborist/internal/world"
)

type ForestConfig struct {
	Size   int
	Radius int
}

func DefaultForestConfig() ForestConfig {
	return ForestConfig{Size: 16, Radius: 16}
}

// NewTreesCommand builds the `trees` command tree:
//
//	trees spawn tree <species> [player]
//	trees spawn forest <species> [player]
//	trees list
func NewTreesCommand(env *Env, forest ForestConfig) *Group {
	spawn := NewGroup("spawn", PermAdmin).Add(
		NewTreeSpawn("tree", env, &treeHandler{env: env}),
		NewTreeSpawn("forest", env, &forestHandler{env: env, cfg: forest}),
	)
	list := NewFunc("list", "", PermNone, func(s Sender, _ []string) error {
		listSpecies(env, s)
		return nil
	}, "species")
	return NewGroup("trees", PermNone, "arboriculture").Add(spawn, list)
}

// treeHandler grows one tree at the player's feet.
type treeHandler struct {
	env *Env
}

func (h *treeHandler) Handle(s Sender, species string, player *world.Player) error {
	gen, err := h.env.TreeGenerator(species, player.Pos)
	if err != nil {
		h.env.Log.Warn().Err(err).Str("sender", s.Name()).Str("species", species).Msg("spawn tree failed")
		return err
	}
	ok := gen.Run(h.env.World.Rand())
	h.env.Log.Info().
		Str("sender", s.Name()).
		Str("species", species).
		Str("player", player.Name).
		Str("pos", player.Pos.String()).
		Bool("replace", gen.SupportsReplace()).
		Bool("ok", ok).
		Msg("spawn tree")
	if !ok {
		s.Send(fmt.Sprintf("Could not grow %s at %s.", species, player.Pos))
		return nil
	}
	s.Send(fmt.Sprintf("Grew %s at %s.", species, player.Pos))
	return nil
}

// forestHandler scatters trees on the surface around the player.
type forestHandler struct {
	env *Env
	cfg ForestConfig
}

func (h *forestHandler) Handle(s Sender, species string, player *world.Player) error {
	gen, err := h.env.TreeGenerator(species, player.Pos)
	if err != nil {
		h.env.Log.Warn().Err(err).Str("sender", s.Name()).Str("species", species).Msg("spawn forest failed")
		return err
	}
	size := max(h.cfg.Size, 1)
	radius := max(h.cfg.Radius, 1)
	rng := h.env.World.Rand()
	grown := 0
	for i := 0; i < size; i++ {
		x := player.Pos.X + rng.IntN(2*radius+1) - radius
		z := player.Pos.Z + rng.IntN(2*radius+1) - radius
		if gen.At(h.env.World.Surface(x, z)).Run(rng) {
			grown++
		}
	}
	h.env.Log.Info().
		Str("sender", s.Name()).
		Str("species", species).
		Str("player", player.Name).
		Str("pos", player.Pos.String()).
		Int("attempts", size).
		Int("grown", grown).
		Msg("spawn forest")
	s.Send(fmt.Sprintf("Grew %d of %d %s trees around %s.", grown, size, species, player.Name))
	return nil
}

func listSpecies(env *Env, s Sender) {
	species := env.Alleles.Species()
	if len(species) == 0 {
		s.Send("No tree species registered.")
		return
	}
	for _, a := range species {
		line := fmt.Sprintf("%s (%s)", a.UID, a.Name)
		if _, ok := env.Templates.Template(a.UID); !ok {
			line += " [no template]"
		}
		s.Send(line)
	}
}
