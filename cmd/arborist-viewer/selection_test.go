package main

import (
	"testing"

	"github.com/appengine-ltd/arborist/internal/render/germling"
)

func TestSelectionWraps(t *testing.T) {
	s := selection{uids: []string{"forestry.treeBirch", "forestry.treeLime", "forestry.treeOak"}}
	s.move(-1)
	if got, _ := s.current(); got != "forestry.treeOak" {
		t.Fatalf("got %q want forestry.treeOak", got)
	}
	s.move(4)
	if got, _ := s.current(); got != "forestry.treeBirch" {
		t.Fatalf("got %q want forestry.treeBirch", got)
	}
}

func TestSelectionEmpty(t *testing.T) {
	var s selection
	s.move(1)
	if _, ok := s.current(); ok {
		t.Fatalf("empty selection should have no current species")
	}
	if s.kind() != germling.Sapling {
		t.Fatalf("expected sapling by default")
	}
	s.pollen = true
	if s.kind() != germling.Pollen {
		t.Fatalf("expected pollen after toggle")
	}
}
