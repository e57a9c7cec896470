// Package rlmodels backs germling model locations with raylib models.
package rlmodels

import (
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/arborist/internal/render/germling"
)

var (
	loadModelFn   = rl.LoadModel
	unloadModelFn = rl.UnloadModel
	modelValidFn  = rl.IsModelValid
)

// Manager resolves model names through a germling.FileManager and loads the
// resolved files once a window exists. Locations whose file is missing or
// fails to load render with the fallback cube.
type Manager struct {
	files  *germling.FileManager
	models map[germling.ModelLocation]rl.Model
	wanted []germling.ModelLocation
	loaded bool
}

func New(assetsDir string) *Manager {
	return &Manager{
		files:  germling.NewFileManager(assetsDir),
		models: make(map[germling.ModelLocation]rl.Model),
	}
}

func (m *Manager) ModelLocation(name string) germling.ModelLocation {
	loc := m.files.ModelLocation(name)
	for _, w := range m.wanted {
		if w == loc {
			return loc
		}
	}
	m.wanted = append(m.wanted, loc)
	return loc
}

func (m *Manager) RegisterVariant(item string, loc germling.ResourceLocation) {
	m.files.RegisterVariant(item, loc)
}

// Load reads every resolved model from disk. Call once after rl.InitWindow().
func (m *Manager) Load() int {
	if m.loaded {
		return len(m.models)
	}
	m.loaded = true
	for _, loc := range m.wanted {
		path := m.files.Path(loc)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		model := loadModelFn(path)
		if !modelValidFn(model) {
			continue
		}
		m.models[loc] = model
	}
	return len(m.models)
}

// Model returns the loaded model for loc, if there is one.
func (m *Manager) Model(loc germling.ModelLocation) (rl.Model, bool) {
	model, ok := m.models[loc]
	return model, ok
}

// Unload releases GPU memory. Call before rl.CloseWindow().
func (m *Manager) Unload() {
	for loc, model := range m.models {
		unloadModelFn(model)
		delete(m.models, loc)
	}
	m.loaded = false
}
