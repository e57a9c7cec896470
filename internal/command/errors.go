package command

import (
	"errors"
	"fmt"
	"strings"
)

// UsageError means the arguments did not fit the command. Commands print
// their help for it instead of surfacing it.
type UsageError struct {
	Usage string
}

func (e *UsageError) Error() string {
	return "usage: " + e.Usage
}

type PermissionError struct {
	Command string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("You do not have permission to use %s.", e.Command)
}

type UnknownCommandError struct {
	Word        string
	Suggestions []string
}

func (e *UnknownCommandError) Error() string {
	msg := fmt.Sprintf("Unknown command %q.", e.Word)
	if len(e.Suggestions) > 0 {
		msg += " Did you mean: " + strings.Join(e.Suggestions, ", ") + "?"
	}
	return msg
}

type PlayerNotFoundError struct {
	Name string
}

func (e *PlayerNotFoundError) Error() string {
	return fmt.Sprintf("Player %q not found.", e.Name)
}

type SpeciesNotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *SpeciesNotFoundError) Error() string {
	msg := fmt.Sprintf("No tree species found for %q.", e.Name)
	if len(e.Suggestions) > 0 {
		msg += " Did you mean: " + strings.Join(e.Suggestions, ", ") + "?"
	}
	return msg
}

type TemplateNotFoundError struct {
	Species string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("No template registered for tree species %s.", e.Species)
}

// Report sends err to the sender. Errors meant for the user are sent as-is;
// anything else is wrapped as a generic failure. It reports whether err was
// one of the user-facing kinds.
func Report(s Sender, err error) bool {
	if err == nil {
		return true
	}
	var (
		perm     *PermissionError
		unknown  *UnknownCommandError
		player   *PlayerNotFoundError
		species  *SpeciesNotFoundError
		template *TemplateNotFoundError
		usage    *UsageError
	)
	switch {
	case errors.As(err, &perm), errors.As(err, &unknown), errors.As(err, &player),
		errors.As(err, &species), errors.As(err, &template):
		s.Send(err.Error())
		return true
	case errors.As(err, &usage):
		s.Send("Usage: " + usage.Usage)
		return true
	default:
		s.Send(fmt.Sprintf("Command failed: %v", err))
		return false
	}
}
