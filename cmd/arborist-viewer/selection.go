package main

import "github.com/appengine-ltd/arborist/internal/render/germling"

// selection is the species and germling type shown in the viewer.
type selection struct {
	uids   []string
	index  int
	pollen bool
}

func (s *selection) move(delta int) {
	if len(s.uids) == 0 {
		return
	}
	s.index = ((s.index+delta)%len(s.uids) + len(s.uids)) % len(s.uids)
}

func (s *selection) current() (string, bool) {
	if len(s.uids) == 0 {
		return "", false
	}
	return s.uids[s.index], true
}

func (s *selection) kind() germling.Type {
	if s.pollen {
		return germling.Pollen
	}
	return germling.Sapling
}
