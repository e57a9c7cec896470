package genetics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultCatalogInstalls(t *testing.T) {
	reg := NewRegistry()
	tpls := NewTemplates()
	if err := DefaultCatalog().Install(reg, tpls); err != nil {
		t.Fatalf("install default catalog: %v", err)
	}

	species := reg.Species()
	if len(species) == 0 {
		t.Fatalf("expected species in default catalog")
	}
	for i := 1; i < len(species); i++ {
		if species[i-1].UID >= species[i].UID {
			t.Fatalf("species not sorted: %s before %s", species[i-1].UID, species[i].UID)
		}
	}

	tpl, ok := tpls.Template("forestry.treeOak")
	if !ok {
		t.Fatalf("expected oak template")
	}
	g, err := TemplateAsGenome(tpl)
	if err != nil {
		t.Fatalf("genome: %v", err)
	}
	if g.Species.Name != "Apple Oak" || g.Height != 5 || g.Girth != 1 || g.Form != FormTree {
		t.Fatalf("unexpected oak genome: %+v", g)
	}

	if _, ok := tpls.Template("forestry.treeWillow"); ok {
		t.Fatalf("willow ships without a template")
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(Allele{UID: "forestry.treeOak", Kind: KindSpecies}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(Allele{UID: "forestry.treeOak", Kind: KindSpecies}); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if err := reg.Register(Allele{UID: "  ", Kind: KindSpecies}); err == nil {
		t.Fatalf("expected empty uid error")
	}
}

func TestAllReturnsSnapshot(t *testing.T) {
	reg := NewRegistry()
	_ = reg.Register(Allele{UID: "a", Kind: KindSpecies})
	snap := reg.All()
	_ = reg.Register(Allele{UID: "b", Kind: KindSpecies})
	if len(snap) != 1 {
		t.Fatalf("snapshot changed after registration: %d entries", len(snap))
	}
	delete(snap, "a")
	if _, ok := reg.Get("a"); !ok {
		t.Fatalf("mutating the snapshot must not touch the registry")
	}
}

func TestTemplateKindMismatch(t *testing.T) {
	tpls := NewTemplates()
	bad := Template{
		{UID: "forestry.treeOak", Kind: KindSpecies},
		{UID: "forestry.i1d", Kind: KindGirth, Value: 1},
		{UID: "forestry.i1d", Kind: KindGirth, Value: 1},
		{UID: "forestry.growthTree", Kind: KindGrowth, Form: FormTree},
	}
	err := tpls.Register(bad)
	if err == nil || !strings.Contains(err.Error(), "height slot") {
		t.Fatalf("expected height slot error, got %v", err)
	}
	if _, err := TemplateAsGenome(bad[:2]); err == nil {
		t.Fatalf("expected short template error")
	}
}

func TestParseCatalogValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		ok   bool
	}{
		{
			name: "species needs wood",
			yaml: "alleles:\n  - {uid: x.tree, kind: species, leaves: l}\n",
		},
		{
			name: "unknown kind",
			yaml: "alleles:\n  - {uid: x.thing, kind: fruit}\n",
		},
		{
			name: "height needs value",
			yaml: "alleles:\n  - {uid: x.h, kind: height}\n",
		},
		{
			name: "minimal",
			yaml: "alleles:\n  - {uid: x.tree, kind: species, name: X Tree, wood: w, leaves: l}\n",
			ok:   true,
		},
	}
	for _, tc := range tests {
		_, err := ParseCatalog([]byte(tc.yaml))
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

func TestInstallUnknownTemplateAllele(t *testing.T) {
	c, err := ParseCatalog([]byte(`
alleles:
  - {uid: x.tree, kind: species, wood: w, leaves: l}
templates:
  - {species: x.tree, height: x.missing, girth: x.g, growth: x.f}
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	err = c.Install(NewRegistry(), NewTemplates())
	if err == nil || !strings.Contains(err.Error(), "x.missing") {
		t.Fatalf("expected unknown allele error, got %v", err)
	}
}

func TestLoadCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	body := "alleles:\n  - {uid: forestry.poplar, kind: species, name: Poplar Tree, wood: w, leaves: l}\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.Alleles) != 1 || c.Alleles[0].Name != "Poplar Tree" {
		t.Fatalf("unexpected catalog: %+v", c)
	}
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected missing file error")
	}
}
