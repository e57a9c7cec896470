package command

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/appengine-ltd/arborist/internal/genetics"
	"github.com/appengine-ltd/arborist/internal/world"
)

type recordingSender struct {
	name  string
	level PermLevel
	msgs  []string
}

func (s *recordingSender) Name() string         { return s.name }
func (s *recordingSender) PermLevel() PermLevel { return s.level }
func (s *recordingSender) Send(msg string)      { s.msgs = append(s.msgs, msg) }

func (s *recordingSender) last() string {
	if len(s.msgs) == 0 {
		return ""
	}
	return s.msgs[len(s.msgs)-1]
}

type handlerCall struct {
	species string
	player  string
}

type recordingHandler struct {
	calls []handlerCall
}

func (h *recordingHandler) Handle(_ Sender, species string, player *world.Player) error {
	h.calls = append(h.calls, handlerCall{species: species, player: player.Name})
	return nil
}

func testEnv(t *testing.T) *Env {
	t.Helper()
	reg := genetics.NewRegistry()
	tpls := genetics.NewTemplates()
	height := genetics.Allele{UID: "forestry.heightSmall", Kind: genetics.KindHeight, Value: 5}
	girth := genetics.Allele{UID: "forestry.i1d", Kind: genetics.KindGirth, Value: 1}
	growth := genetics.Allele{UID: "forestry.growthTree", Kind: genetics.KindGrowth, Form: genetics.FormTree}
	species := []genetics.Allele{
		{UID: "forestry.poplar", Name: "Poplar Tree", Kind: genetics.KindSpecies, Wood: "poplar_log", Leaves: "poplar_leaves"},
		{UID: "forestry.decoy", Name: "forestry.poplar", Kind: genetics.KindSpecies, Wood: "decoy_log", Leaves: "decoy_leaves"},
		{UID: "forestry.treeLime", Name: "Silver Lime", Kind: genetics.KindSpecies, Wood: "lime_log", Leaves: "lime_leaves"},
		{UID: "forestry.treeOak", Name: "Apple Oak", Kind: genetics.KindSpecies, Wood: "oak_log", Leaves: "oak_leaves"},
		{UID: "forestry.treeBare", Name: "Bare Twig", Kind: genetics.KindSpecies, Wood: "twig_log", Leaves: "twig_leaves"},
	}
	for _, a := range append([]genetics.Allele{height, girth, growth}, species...) {
		if err := reg.Register(a); err != nil {
			t.Fatalf("register %s: %v", a.UID, err)
		}
	}
	for _, sp := range species {
		if sp.UID == "forestry.treeBare" {
			continue
		}
		if err := tpls.Register(genetics.Template{sp, height, girth, growth}); err != nil {
			t.Fatalf("template %s: %v", sp.UID, err)
		}
	}
	players := world.NewPlayers()
	players.Add("Alice", world.Pos{X: 0, Y: 4, Z: 0})
	players.Add("Bob", world.Pos{X: 20, Y: 4, Z: 20})
	return &Env{
		Alleles:   reg,
		Templates: tpls,
		World:     world.New("overworld", 42, 64, 4),
		Players:   players,
		Log:       zerolog.Nop(),
	}
}

func TestProcessRejectsWrongArgCount(t *testing.T) {
	env := testEnv(t)
	h := &recordingHandler{}
	cmd := NewTreeSpawn("tree", env, h)
	for _, args := range [][]string{nil, {}, {"Apple", "Oak", "Alice"}, {"help"}} {
		s := &recordingSender{name: "Bob", level: PermAdmin}
		err := cmd.Process(s, args)
		var usage *UsageError
		if !errors.As(err, &usage) {
			t.Fatalf("args %q: expected a usage error, got %v", args, err)
		}
		Report(s, err)
		if s.last() != "Usage: tree <species> [player]" {
			t.Fatalf("args %q: expected usage, got %q", args, s.msgs)
		}
	}
	if len(h.calls) != 0 {
		t.Fatalf("handler must not run on usage errors, got %+v", h.calls)
	}
}

func TestProcessResolvesPlayerAndPhrase(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		want   handlerCall
		sender string
	}{
		{name: "trailing player", args: []string{"AppleOak", "Alice"}, sender: "Bob", want: handlerCall{species: "AppleOak", player: "Alice"}},
		{name: "player name matched case-insensitively", args: []string{"AppleOak", "alice"}, sender: "Bob", want: handlerCall{species: "AppleOak", player: "Alice"}},
		{name: "no player falls back to sender", args: []string{"Silver", "Lime"}, sender: "Bob", want: handlerCall{species: "Silver Lime", player: "Bob"}},
		{name: "single token player leaves empty phrase", args: []string{"Alice"}, sender: "Bob", want: handlerCall{species: "", player: "Alice"}},
		{name: "single species token", args: []string{"SilverLime"}, sender: "Alice", want: handlerCall{species: "SilverLime", player: "Alice"}},
	}
	for _, tc := range tests {
		env := testEnv(t)
		h := &recordingHandler{}
		s := &recordingSender{name: tc.sender, level: PermAdmin}
		if err := NewTreeSpawn("tree", env, h).Process(s, tc.args); err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if len(h.calls) != 1 || h.calls[0] != tc.want {
			t.Fatalf("%s: got %+v want %+v", tc.name, h.calls, tc.want)
		}
	}
}

func TestProcessFallbackNeedsPlayerSender(t *testing.T) {
	env := testEnv(t)
	h := &recordingHandler{}
	s := &recordingSender{name: ConsoleName, level: PermAdmin}
	err := NewTreeSpawn("tree", env, h).Process(s, []string{"AppleOak"})
	var notFound *PlayerNotFoundError
	if !errors.As(err, &notFound) || notFound.Name != ConsoleName {
		t.Fatalf("expected player not found for console, got %v", err)
	}
	if len(h.calls) != 0 {
		t.Fatalf("handler must not run, got %+v", h.calls)
	}
}

func TestSinglePlayerTokenIsSpeciesNotFound(t *testing.T) {
	env := testEnv(t)
	s := &recordingSender{name: "Bob", level: PermAdmin}
	err := NewTreeSpawn("tree", env, &treeHandler{env: env}).Process(s, []string{"Alice"})
	var notFound *SpeciesNotFoundError
	if !errors.As(err, &notFound) || notFound.Name != "" {
		t.Fatalf("expected species not found for empty phrase, got %v", err)
	}
}

func TestFindSpecies(t *testing.T) {
	env := testEnv(t)
	tests := []struct {
		phrase string
		want   string
	}{
		{phrase: "forestry.poplar", want: "forestry.poplar"},
		{phrase: "PoplarTree", want: "forestry.poplar"},
		{phrase: "Poplar Tree", want: "forestry.poplar"},
		{phrase: "SilverLime", want: "forestry.treeLime"},
		{phrase: "Silver  Lime", want: "forestry.treeLime"},
	}
	for _, tc := range tests {
		got, err := env.FindSpecies(tc.phrase)
		if err != nil {
			t.Fatalf("FindSpecies(%q): %v", tc.phrase, err)
		}
		if got.UID != tc.want {
			t.Fatalf("FindSpecies(%q)=%s want=%s", tc.phrase, got.UID, tc.want)
		}
	}
}

func TestFindSpeciesFailures(t *testing.T) {
	env := testEnv(t)
	for _, phrase := range []string{"Unobtainium", "silverlime", "forestry.heightSmall", ""} {
		_, err := env.FindSpecies(phrase)
		var notFound *SpeciesNotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("FindSpecies(%q): expected SpeciesNotFoundError, got %v", phrase, err)
		}
		if notFound.Name != phrase {
			t.Fatalf("error should carry the phrase %q, got %q", phrase, notFound.Name)
		}
	}

	_, err := env.FindSpecies("silverlime")
	var notFound *SpeciesNotFoundError
	errors.As(err, &notFound)
	if len(notFound.Suggestions) == 0 || notFound.Suggestions[0] != "SilverLime" {
		t.Fatalf("expected SilverLime suggestion, got %v", notFound.Suggestions)
	}
}

func TestTemplateNotFound(t *testing.T) {
	env := testEnv(t)
	_, err := env.TreeGenerator("BareTwig", world.Pos{Y: 4})
	var missing *TemplateNotFoundError
	if !errors.As(err, &missing) || missing.Species != "forestry.treeBare" {
		t.Fatalf("expected template not found for forestry.treeBare, got %v", err)
	}
	if env.World.Count("twig_log") != 0 {
		t.Fatalf("no blocks may be placed on failure")
	}
}

func TestDispatcherSpawnsTree(t *testing.T) {
	env := testEnv(t)
	d := NewDispatcher(NewTreesCommand(env, DefaultForestConfig()))
	var out bytes.Buffer
	console := NewConsoleSender(&out)

	if err := d.Execute(console, `/trees spawn tree "Silver Lime" Alice`); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got := env.World.Block(world.Pos{X: 0, Y: 4, Z: 0}); got != "lime_log" {
		t.Fatalf("expected lime trunk at Alice's feet, got %q", got)
	}
	if !strings.Contains(out.String(), "Grew Silver Lime at 0,4,0.") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestDispatcherReportsErrors(t *testing.T) {
	env := testEnv(t)
	d := NewDispatcher(NewTreesCommand(env, DefaultForestConfig()))

	tests := []struct {
		line   string
		sender *recordingSender
		want   string
	}{
		{line: "trees spawn tree Unobtainium Alice", sender: &recordingSender{name: "Bob", level: PermAdmin}, want: `No tree species found for "Unobtainium".`},
		{line: "trees spawn tree BareTwig", sender: &recordingSender{name: "Bob", level: PermAdmin}, want: "No template registered for tree species forestry.treeBare."},
		{line: "trees spawn tree AppleOak", sender: &recordingSender{name: "Bob"}, want: "You do not have permission to use trees spawn."},
		{line: "trees zzz", sender: &recordingSender{name: "Bob", level: PermAdmin}, want: `Unknown command "zzz".`},
	}
	for _, tc := range tests {
		if err := d.Execute(tc.sender, tc.line); err == nil {
			t.Fatalf("%q: expected error", tc.line)
		}
		if tc.sender.last() != tc.want {
			t.Fatalf("%q: got %q want %q", tc.line, tc.sender.last(), tc.want)
		}
	}
}

func TestDispatcherForest(t *testing.T) {
	env := testEnv(t)
	d := NewDispatcher(NewTreesCommand(env, ForestConfig{Size: 6, Radius: 8}))
	s := &recordingSender{name: "Bob", level: PermAdmin}
	if err := d.Execute(s, "trees spawn forest AppleOak"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if env.World.Count("oak_log") == 0 {
		t.Fatalf("expected at least one oak trunk")
	}
	if !strings.HasPrefix(s.last(), "Grew ") || !strings.HasSuffix(s.last(), "AppleOak trees around Bob.") {
		t.Fatalf("unexpected message %q", s.last())
	}
}

func TestDispatcherCompletion(t *testing.T) {
	env := testEnv(t)
	d := NewDispatcher(NewTreesCommand(env, DefaultForestConfig()))
	admin := &recordingSender{name: "Bob", level: PermAdmin}

	tests := []struct {
		line string
		want []string
	}{
		{line: "trees spawn tree si", want: []string{"SilverLime"}},
		{line: "trees spawn tree ", want: []string{"AppleOak", "BareTwig", "PoplarTree", "SilverLime", "forestry.poplar", "help"}},
		{line: "trees spawn tree AppleOak a", want: []string{"Alice"}},
		{line: "trees spawn tree AppleOak ", want: []string{"Alice", "Bob"}},
		{line: "trees sp", want: []string{"spawn"}},
		{line: "trees spawn ", want: []string{"forest", "help", "tree"}},
	}
	for _, tc := range tests {
		got := d.Complete(admin, tc.line)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("Complete(%q)=%v want=%v", tc.line, got, tc.want)
		}
	}

	if got := d.Complete(&recordingSender{name: "Bob"}, "trees "); !reflect.DeepEqual(got, []string{"help", "list"}) {
		t.Fatalf("non-admin should not see spawn, got %v", got)
	}
}

func TestListSpecies(t *testing.T) {
	env := testEnv(t)
	d := NewDispatcher(NewTreesCommand(env, DefaultForestConfig()))
	s := &recordingSender{name: "Bob"}
	if err := d.Execute(s, "trees list"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	joined := strings.Join(s.msgs, "\n")
	if !strings.Contains(joined, "forestry.treeBare (Bare Twig) [no template]") {
		t.Fatalf("expected template marker, got %q", joined)
	}
}

func TestDispatcherPrintsUsageForArgCount(t *testing.T) {
	env := testEnv(t)
	d := NewDispatcher(NewTreesCommand(env, DefaultForestConfig()))
	for _, line := range []string{
		"trees spawn tree",
		"trees spawn forest Apple Oak Alice",
		"trees spawn tree help",
	} {
		s := &recordingSender{name: "Bob", level: PermAdmin}
		if err := d.Execute(s, line); err != nil {
			t.Fatalf("%q: usage must not surface an error, got %v", line, err)
		}
		if !strings.HasPrefix(s.last(), "Usage: trees spawn ") || !strings.HasSuffix(s.last(), " <species> [player]") {
			t.Fatalf("%q: expected usage, got %q", line, s.msgs)
		}
	}
	if env.World.Count("oak_log") != 0 {
		t.Fatalf("usage errors must not grow trees")
	}
}
