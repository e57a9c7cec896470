package command

import (
	"fmt"
	"io"
)

type PermLevel int

const (
	PermNone PermLevel = iota
	PermAdmin
)

func (p PermLevel) String() string {
	switch p {
	case PermAdmin:
		return "admin"
	default:
		return "none"
	}
}

// Sender is whoever issued a command: the console or a player.
type Sender interface {
	Name() string
	PermLevel() PermLevel
	Send(msg string)
}

// ConsoleName is the sender name of the server console.
const ConsoleName = "Server"

type WriterSender struct {
	name  string
	level PermLevel
	out   io.Writer
}

func NewConsoleSender(out io.Writer) *WriterSender {
	return &WriterSender{name: ConsoleName, level: PermAdmin, out: out}
}

func NewPlayerSender(name string, level PermLevel, out io.Writer) *WriterSender {
	return &WriterSender{name: name, level: level, out: out}
}

func (s *WriterSender) Name() string         { return s.name }
func (s *WriterSender) PermLevel() PermLevel { return s.level }

func (s *WriterSender) Send(msg string) {
	if s.out == nil {
		return
	}
	_, _ = fmt.Fprintln(s.out, msg)
}
