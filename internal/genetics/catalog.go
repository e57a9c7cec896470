package genetics

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.schema.json
var catalogSchemaJSON string

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

var catalogSchema = jsonschema.MustCompileString("catalog.schema.json", catalogSchemaJSON)

// Catalog is the on-disk form of the allele registry and species templates.
type Catalog struct {
	Alleles   []Allele      `yaml:"alleles"`
	Templates []TemplateDef `yaml:"templates"`
}

// TemplateDef names the allele UID for each chromosome of a species template.
type TemplateDef struct {
	Species string `yaml:"species"`
	Height  string `yaml:"height"`
	Girth   string `yaml:"girth"`
	Growth  string `yaml:"growth"`
}

func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := ParseCatalog(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// DefaultCatalog returns the built-in species set.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("default catalog: %v", err))
	}
	return c
}

func ParseCatalog(raw []byte) (*Catalog, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := catalogSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return &c, nil
}

// Install registers every allele, then every template, into the given stores.
func (c *Catalog) Install(reg *Registry, tpls *Templates) error {
	for _, a := range c.Alleles {
		if err := reg.Register(a); err != nil {
			return err
		}
	}
	for _, def := range c.Templates {
		tpl, err := def.resolve(reg)
		if err != nil {
			return err
		}
		if err := tpls.Register(tpl); err != nil {
			return err
		}
	}
	return nil
}

func (d TemplateDef) resolve(reg *Registry) (Template, error) {
	uids := [chromosomeCount]string{
		ChromosomeSpecies: d.Species,
		ChromosomeHeight:  d.Height,
		ChromosomeGirth:   d.Girth,
		ChromosomeGrowth:  d.Growth,
	}
	tpl := make(Template, chromosomeCount)
	for i, uid := range uids {
		a, ok := reg.Get(uid)
		if !ok {
			return nil, fmt.Errorf("template %s: unknown %s allele %q", d.Species, Chromosome(i), uid)
		}
		tpl[i] = a
	}
	return tpl, nil
}
