package germling

import (
	"os"
	"path/filepath"
	"sort"
)

// FileManager resolves models to files under Dir, laid out as
// <Dir>/<domain>/models/<path>.obj. It keeps the registered variants per item.
type FileManager struct {
	Dir string

	variants map[string][]ResourceLocation
}

func NewFileManager(dir string) *FileManager {
	return &FileManager{Dir: dir, variants: make(map[string][]ResourceLocation)}
}

func (m *FileManager) ModelLocation(name string) ModelLocation {
	return ModelLocation{ResourceLocation: ResourceLocation{Domain: Namespace, Path: name}, Variant: "inventory"}
}

func (m *FileManager) RegisterVariant(item string, loc ResourceLocation) {
	for _, existing := range m.variants[item] {
		if existing == loc {
			return
		}
	}
	m.variants[item] = append(m.variants[item], loc)
}

// Variants returns the registered variants of item sorted by name.
func (m *FileManager) Variants(item string) []ResourceLocation {
	out := append([]ResourceLocation(nil), m.variants[item]...)
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Path is the model file a location resolves to.
func (m *FileManager) Path(loc ModelLocation) string {
	return filepath.Join(m.Dir, loc.Domain, "models", filepath.FromSlash(loc.Path)+".obj")
}

// Missing lists the registered variants whose model file does not exist.
func (m *FileManager) Missing(item string) []ResourceLocation {
	var out []ResourceLocation
	for _, loc := range m.Variants(item) {
		if _, err := os.Stat(m.Path(ModelLocation{ResourceLocation: loc})); err != nil {
			out = append(out, loc)
		}
	}
	return out
}
