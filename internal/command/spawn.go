package command

import (
	"github.com/appengine-ltd/arborist/internal/parser"
	"github.com/appengine-ltd/arborist/internal/world"
)

// Handler is the placement policy of a spawn command: it receives the
// species phrase and the player the command targets.
type Handler interface {
	Handle(s Sender, species string, player *world.Player) error
}

type HandlerFunc func(s Sender, species string, player *world.Player) error

func (f HandlerFunc) Handle(s Sender, species string, player *world.Player) error {
	return f(s, species, player)
}

// TreeSpawn parses `<species...> [player]` and hands the result to its Handler.
type TreeSpawn struct {
	def     parser.CommandDef
	prefix  string
	env     *Env
	handler Handler
}

func NewTreeSpawn(name string, env *Env, handler Handler, aliases ...string) *TreeSpawn {
	return &TreeSpawn{
		def:     parser.CommandDef{Canonical: name, Aliases: aliases, MinArgs: 1, MaxArgs: 2},
		env:     env,
		handler: handler,
	}
}

func (c *TreeSpawn) Name() string            { return c.def.Canonical }
func (c *TreeSpawn) Aliases() []string       { return c.def.Aliases }
func (c *TreeSpawn) Def() parser.CommandDef  { return c.def }
func (c *TreeSpawn) PermLevel() PermLevel    { return PermAdmin }
func (c *TreeSpawn) setPrefix(prefix string) { c.prefix = prefix }

func (c *TreeSpawn) Usage() string {
	return joinPath(c.prefix, c.def.Canonical) + " <species> [player]"
}

func (c *TreeSpawn) Process(s Sender, args []string) error {
	if !c.def.Accepts(len(args)) || args[0] == "help" {
		return &UsageError{Usage: c.Usage()}
	}
	player, species, err := c.resolve(s, args)
	if err != nil {
		return err
	}
	return c.handler.Handle(s, species, player)
}

// resolve treats the last argument as a player name when such a player is
// online; otherwise every argument is part of the species phrase and the
// sender is the target.
func (c *TreeSpawn) resolve(s Sender, args []string) (*world.Player, string, error) {
	last := args[len(args)-1]
	if player, ok := c.env.Players.Lookup(last); ok {
		return player, parser.JoinArgs(args[:len(args)-1]), nil
	}
	player, ok := c.env.Players.Lookup(s.Name())
	if !ok {
		return nil, "", &PlayerNotFoundError{Name: s.Name()}
	}
	return player, parser.JoinArgs(args), nil
}

func (c *TreeSpawn) Complete(_ Sender, args []string) []string {
	switch len(args) {
	case 1:
		return parser.MatchingPrefix(args[0], append(c.env.SpeciesNames(), "help"))
	case 2:
		return parser.MatchingPrefix(args[1], c.env.Players.Names())
	default:
		return nil
	}
}
