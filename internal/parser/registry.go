package parser

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type commandPhrase struct {
	canonical string
	alias     string
}

type Registry struct {
	commands map[string]CommandDef
	phrases  []commandPhrase
}

func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]CommandDef),
	}
}

func (r *Registry) Register(c CommandDef) {
	c.Canonical = Normalise(c.Canonical)
	if c.Canonical == "" {
		return
	}
	r.commands[c.Canonical] = c

	r.phrases = append(r.phrases, commandPhrase{canonical: c.Canonical, alias: c.Canonical})
	for _, a := range c.Aliases {
		n := Normalise(a)
		if n == "" {
			continue
		}
		r.phrases = append(r.phrases, commandPhrase{canonical: c.Canonical, alias: n})
	}
}

func (r *Registry) Command(canonical string) (CommandDef, bool) {
	c, ok := r.commands[Normalise(canonical)]
	return c, ok
}

// Names returns the canonical names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.commands))
	for name := range r.commands {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Match resolves word to a registered command: exact name, then alias, then
// unique-enough prefix, then a small edit distance. Alternates hold the next
// best distinct commands so callers can ask "did you mean".
func (r *Registry) Match(word string) (Match, []Match) {
	in := Normalise(word)
	if in == "" {
		return Match{}, nil
	}
	cands := make([]Match, 0, len(r.phrases))
	for _, phrase := range r.phrases {
		if in == phrase.alias {
			score, source := 1.0, "exact"
			if phrase.alias != phrase.canonical {
				score, source = 0.97, "alias"
			}
			cands = append(cands, Match{Canonical: phrase.canonical, Alias: phrase.alias, Score: score, Source: source})
			continue
		}
		if len(in) >= 2 && strings.HasPrefix(phrase.alias, in) {
			cands = append(cands, Match{Canonical: phrase.canonical, Alias: phrase.alias, Score: 0.9, Source: "prefix"})
			continue
		}
		if len(in) < 3 {
			continue
		}
		dist := levenshtein.ComputeDistance(in, phrase.alias)
		if dist > levenshteinLimit(len(phrase.alias)) {
			continue
		}
		cands = append(cands, Match{
			Canonical: phrase.canonical,
			Alias:     phrase.alias,
			Score:     0.72 - (0.08 * float64(dist)),
			Source:    "lev",
		})
	}
	if len(cands) == 0 {
		return Match{}, nil
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Score == cands[j].Score {
			return cands[i].Canonical < cands[j].Canonical
		}
		return cands[i].Score > cands[j].Score
	})

	best := cands[0]
	alts := make([]Match, 0, 4)
	seen := map[string]bool{best.Canonical: true}
	for _, c := range cands[1:] {
		if seen[c.Canonical] {
			continue
		}
		seen[c.Canonical] = true
		alts = append(alts, c)
		if len(alts) >= 4 {
			break
		}
	}
	return best, alts
}

// Resolve returns the canonical command for word when the match is
// unambiguous: exact and alias hits always win, prefix and fuzzy hits only
// when no other command scores within 0.05.
func (r *Registry) Resolve(word string) (CommandDef, bool) {
	best, alts := r.Match(word)
	if !best.Found() {
		return CommandDef{}, false
	}
	if best.Source != "exact" && best.Source != "alias" {
		if len(alts) > 0 && best.Score-alts[0].Score < 0.05 {
			return CommandDef{}, false
		}
	}
	return r.commands[best.Canonical], true
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
