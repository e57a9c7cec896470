package command

import (
	"errors"
	"sort"
	"strings"

	"github.com/appengine-ltd/arborist/internal/parser"
)

// Command is a node in the command tree.
type Command interface {
	Name() string
	Aliases() []string
	PermLevel() PermLevel
	Usage() string
	Process(s Sender, args []string) error
	Complete(s Sender, args []string) []string
}

func permitted(s Sender, c Command) bool {
	return s.PermLevel() >= c.PermLevel()
}

// Group dispatches its first argument to a child command. "help" or no
// arguments prints the children's usage lines.
type Group struct {
	name    string
	aliases []string
	perm    PermLevel
	prefix  string

	children map[string]Command
	names    *parser.Registry
}

func NewGroup(name string, perm PermLevel, aliases ...string) *Group {
	return &Group{
		name:     name,
		aliases:  aliases,
		perm:     perm,
		children: make(map[string]Command),
		names:    parser.NewRegistry(),
	}
}

func (g *Group) Name() string         { return g.name }
func (g *Group) Aliases() []string    { return g.aliases }
func (g *Group) PermLevel() PermLevel { return g.perm }
func (g *Group) Usage() string        { return g.path() + " <" + strings.Join(g.names.Names(), "|") + ">" }

func (g *Group) path() string {
	return joinPath(g.prefix, g.name)
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	if name == "" {
		return prefix
	}
	return prefix + " " + name
}

// Add registers children. Nested groups and spawn commands learn their full
// path. Children without their own definition take any number of arguments.
func (g *Group) Add(children ...Command) *Group {
	for _, c := range children {
		if p, ok := c.(interface{ setPrefix(string) }); ok {
			p.setPrefix(g.path())
		}
		def := parser.CommandDef{Canonical: c.Name(), Aliases: c.Aliases(), MaxArgs: -1}
		if d, ok := c.(interface{ Def() parser.CommandDef }); ok {
			def = d.Def()
		}
		g.children[parser.Normalise(c.Name())] = c
		g.names.Register(def)
	}
	return g
}

func (g *Group) setPrefix(prefix string) {
	g.prefix = prefix
	for _, c := range g.children {
		if p, ok := c.(interface{ setPrefix(string) }); ok {
			p.setPrefix(g.path())
		}
	}
}

func (g *Group) child(word string) (Command, error) {
	def, ok := g.names.Resolve(word)
	if !ok {
		best, alts := g.names.Match(word)
		var sugg []string
		if best.Found() {
			sugg = append(sugg, best.Canonical)
		}
		for _, a := range alts {
			sugg = append(sugg, a.Canonical)
		}
		return nil, &UnknownCommandError{Word: word, Suggestions: sugg}
	}
	return g.children[parser.Normalise(def.Canonical)], nil
}

func (g *Group) Process(s Sender, args []string) error {
	if len(args) == 0 || strings.EqualFold(args[0], "help") {
		g.PrintHelp(s)
		return nil
	}
	c, err := g.child(args[0])
	if err != nil {
		return err
	}
	if !permitted(s, c) {
		return &PermissionError{Command: joinPath(g.path(), c.Name())}
	}
	if def, ok := g.names.Command(c.Name()); ok && !def.Accepts(len(args)-1) {
		return &UsageError{Usage: c.Usage()}
	}
	return c.Process(s, args[1:])
}

func (g *Group) PrintHelp(s Sender) {
	for _, name := range g.names.Names() {
		c := g.children[name]
		if !permitted(s, c) {
			continue
		}
		s.Send(c.Usage())
	}
}

func (g *Group) Complete(s Sender, args []string) []string {
	switch len(args) {
	case 0:
		return nil
	case 1:
		var names []string
		for _, name := range g.names.Names() {
			if permitted(s, g.children[name]) {
				names = append(names, name)
			}
		}
		return parser.MatchingPrefix(args[0], append(names, "help"))
	}
	c, err := g.child(args[0])
	if err != nil || !permitted(s, c) {
		return nil
	}
	return c.Complete(s, args[1:])
}

// Func adapts a plain function into a leaf command.
type Func struct {
	name    string
	usage   string
	perm    PermLevel
	prefix  string
	aliases []string
	run     func(s Sender, args []string) error
}

func NewFunc(name, usage string, perm PermLevel, run func(s Sender, args []string) error, aliases ...string) *Func {
	return &Func{name: name, usage: usage, perm: perm, run: run, aliases: aliases}
}

func (f *Func) Name() string                       { return f.name }
func (f *Func) Aliases() []string                  { return f.aliases }
func (f *Func) PermLevel() PermLevel               { return f.perm }
func (f *Func) Complete(Sender, []string) []string { return nil }
func (f *Func) setPrefix(prefix string)            { f.prefix = prefix }

func (f *Func) Usage() string {
	path := joinPath(f.prefix, f.name)
	if f.usage == "" {
		return path
	}
	return path + " " + f.usage
}

func (f *Func) Process(s Sender, args []string) error {
	return f.run(s, args)
}

// Dispatcher is the root of the command tree: it maps a console line to a
// top-level command, checks permission and reports user-facing errors.
type Dispatcher struct {
	root *Group
}

func NewDispatcher(commands ...Command) *Dispatcher {
	root := NewGroup("", PermNone)
	root.Add(commands...)
	return &Dispatcher{root: root}
}

// Execute runs line for s. The returned error has already been reported to s.
// Usage errors are only reported.
func (d *Dispatcher) Execute(s Sender, line string) error {
	words, err := parser.Split(line)
	if err != nil {
		s.Send(err.Error())
		return err
	}
	if len(words) == 0 {
		return nil
	}
	err = d.root.Process(s, words)
	if err == nil {
		return nil
	}
	Report(s, err)
	var usage *UsageError
	if errors.As(err, &usage) {
		return nil
	}
	return err
}

// Complete returns completions for the last word of line. A trailing space
// starts a new, empty word.
func (d *Dispatcher) Complete(s Sender, line string) []string {
	words, err := parser.Split(line)
	if err != nil {
		return nil
	}
	if strings.HasSuffix(line, " ") || len(words) == 0 {
		words = append(words, "")
	}
	out := d.root.Complete(s, words)
	sort.Strings(out)
	return out
}

func (d *Dispatcher) Help(s Sender) {
	d.root.PrintHelp(s)
}
