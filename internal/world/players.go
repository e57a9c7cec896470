package world

import (
	"sort"
	"strings"
)

type Player struct {
	Name string
	Pos  Pos
}

// Players is the set of players present in a world. Names match case-insensitively.
type Players struct {
	byName map[string]*Player
}

func NewPlayers() *Players {
	return &Players{byName: make(map[string]*Player)}
}

func (p *Players) Add(name string, pos Pos) *Player {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	pl := &Player{Name: name, Pos: pos}
	p.byName[strings.ToLower(name)] = pl
	return pl
}

// Lookup resolves a player by name. A miss is reported through ok, not an error.
func (p *Players) Lookup(name string) (*Player, bool) {
	pl, ok := p.byName[strings.ToLower(strings.TrimSpace(name))]
	return pl, ok
}

func (p *Players) Names() []string {
	out := make([]string, 0, len(p.byName))
	for _, pl := range p.byName {
		out = append(out, pl.Name)
	}
	sort.Strings(out)
	return out
}

func (p *Players) All() []Player {
	out := make([]Player, 0, len(p.byName))
	for _, name := range p.Names() {
		out = append(out, *p.byName[strings.ToLower(name)])
	}
	return out
}
