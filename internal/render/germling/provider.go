// Package germling maps tree species to the models their germlings render with.
package germling

import (
	"fmt"
	"strings"
)

// Namespace prefixes every species UID and every registered variant name.
const Namespace = "forestry"

// SaplingItem is the shared item all germling variants are registered against.
const SaplingItem = "sapling"

type Type int

const (
	Sapling Type = iota
	Pollen
)

func (t Type) String() string {
	switch t {
	case Sapling:
		return "sapling"
	case Pollen:
		return "pollen"
	default:
		return fmt.Sprintf("germling(%d)", int(t))
	}
}

// ResourceLocation is a namespaced asset name such as "forestry:pollen".
type ResourceLocation struct {
	Domain string
	Path   string
}

func (r ResourceLocation) String() string {
	return r.Domain + ":" + r.Path
}

// ModelLocation identifies a resolved model, optionally a named variant of it.
type ModelLocation struct {
	ResourceLocation
	Variant string
}

func (m ModelLocation) String() string {
	if m.Variant == "" {
		return m.ResourceLocation.String()
	}
	return m.ResourceLocation.String() + "#" + m.Variant
}

// ModelManager resolves logical model names and records which variants an item can render as.
type ModelManager interface {
	ModelLocation(name string) ModelLocation
	RegisterVariant(item string, loc ResourceLocation)
}

// ModelProvider holds the two models of one species' germlings. The models
// are resolved once by RegisterModels and never change afterwards.
type ModelProvider struct {
	name string

	model       ModelLocation
	pollenModel ModelLocation
}

func NewModelProvider(uid string) *ModelProvider {
	return &ModelProvider{name: strings.TrimPrefix(uid, Namespace+".")}
}

func (p *ModelProvider) Name() string {
	return p.name
}

func (p *ModelProvider) RegisterModels(m ModelManager) {
	sapling := "germlings/sapling." + p.name
	p.model = m.ModelLocation(sapling)
	m.RegisterVariant(SaplingItem, ResourceLocation{Domain: Namespace, Path: sapling})
	p.pollenModel = m.ModelLocation("pollen")
	m.RegisterVariant(SaplingItem, ResourceLocation{Domain: Namespace, Path: "pollen"})
}

func (p *ModelProvider) Model(t Type) ModelLocation {
	switch t {
	case Pollen:
		return p.pollenModel
	case Sapling:
		return p.model
	default:
		panic(fmt.Sprintf("germling: unknown type %d", int(t)))
	}
}
