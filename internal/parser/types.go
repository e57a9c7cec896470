package parser

// CommandDef describes a command word. MaxArgs below zero means no upper bound.
type CommandDef struct {
	Canonical string
	Aliases   []string
	MinArgs   int
	MaxArgs   int
}

// Accepts reports whether n arguments fit the command.
func (d CommandDef) Accepts(n int) bool {
	return n >= d.MinArgs && (d.MaxArgs < 0 || n <= d.MaxArgs)
}

// Match is the outcome of resolving a typed command word against a Registry.
type Match struct {
	Canonical string
	Alias     string
	Score     float64
	Source    string
}

func (m Match) Found() bool {
	return m.Canonical != ""
}
