package world

import "testing"

func TestFlatFloor(t *testing.T) {
	w := New("overworld", 1, 32, 4)
	tests := []struct {
		pos  Pos
		want Block
	}{
		{pos: Pos{Y: 0}, want: Bedrock},
		{pos: Pos{Y: 3}, want: Dirt},
		{pos: Pos{Y: 4}, want: Air},
		{pos: Pos{Y: -1}, want: Air},
		{pos: Pos{Y: 32}, want: Air},
	}
	for _, tc := range tests {
		if got := w.Block(tc.pos); got != tc.want {
			t.Fatalf("Block(%v)=%q want=%q", tc.pos, got, tc.want)
		}
	}
	if got := w.TopSolidY(10, -3); got != 3 {
		t.Fatalf("expected top solid y 3, got %d", got)
	}
	if got := w.Surface(10, -3); got != (Pos{X: 10, Y: 4, Z: -3}) {
		t.Fatalf("unexpected surface %v", got)
	}
}

func TestSetBlockKeepsBedrock(t *testing.T) {
	w := New("overworld", 1, 32, 4)
	if w.SetBlock(Pos{Y: 0}, "oak_log") {
		t.Fatalf("expected bedrock write to be refused")
	}
	if w.SetBlock(Pos{Y: 40}, "oak_log") {
		t.Fatalf("expected out-of-bounds write to be refused")
	}
	if !w.SetBlock(Pos{Y: 2}, Air) {
		t.Fatalf("expected dirt to be diggable")
	}
	if got := w.TopSolidY(0, 0); got != 1 {
		t.Fatalf("expected top solid y 1 after dig, got %d", got)
	}
}

func TestBlocksRoundTripThroughRestore(t *testing.T) {
	w := New("overworld", 1, 32, 4)
	w.SetBlock(Pos{X: 2, Y: 5}, "oak_log")
	w.SetBlock(Pos{X: 1, Y: 5}, "oak_leaves")

	entries := w.Blocks()
	if len(entries) != 2 || entries[0].Pos.X != 1 {
		t.Fatalf("expected sorted entries, got %+v", entries)
	}

	other := New("overworld", 1, 32, 4)
	other.Restore(entries)
	if other.Block(Pos{X: 2, Y: 5}) != "oak_log" || other.Count("oak_leaves") != 1 {
		t.Fatalf("restore mismatch: %+v", other.Blocks())
	}
}

func TestPlayersLookupIsCaseInsensitive(t *testing.T) {
	p := NewPlayers()
	p.Add("Alice", Pos{X: 1, Y: 4})
	p.Add("bob", Pos{})

	pl, ok := p.Lookup("alice")
	if !ok || pl.Name != "Alice" {
		t.Fatalf("expected Alice, got %+v ok=%v", pl, ok)
	}
	if _, ok := p.Lookup("carol"); ok {
		t.Fatalf("did not expect carol")
	}
	names := p.Names()
	if len(names) != 2 || names[0] != "Alice" || names[1] != "bob" {
		t.Fatalf("unexpected names %v", names)
	}
}
