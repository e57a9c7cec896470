//go:build cgo
// +build cgo

package main

import (
	"flag"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/arborist/internal/config"
	"github.com/appengine-ltd/arborist/internal/genetics"
	"github.com/appengine-ltd/arborist/internal/logging"
	"github.com/appengine-ltd/arborist/internal/render/germling"
	"github.com/appengine-ltd/arborist/internal/render/rlmodels"
)

// version, commit, date are injected at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		showVersion bool
		configPath  string
	)

	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.StringVar(&configPath, "config", "", "path to arborist.toml (default: per-user config dir)")
	flag.Parse()

	if showVersion {
		fmt.Printf("Arborist viewer %s (%s) %s\n", version, commit, date)
		return
	}

	if err := run(configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	if configPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		configPath = p
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := logging.New("arborist-viewer", cfg.LogLevel, os.Stderr)

	catalog := genetics.DefaultCatalog()
	if cfg.Catalog != "" {
		if catalog, err = genetics.LoadCatalog(cfg.Catalog); err != nil {
			return err
		}
	}
	alleles := genetics.NewRegistry()
	if err := catalog.Install(alleles, genetics.NewTemplates()); err != nil {
		return err
	}

	models := rlmodels.New(cfg.AssetsDir)
	table := germling.RegisterAll(alleles.Species(), models)
	sel := &selection{uids: table.UIDs()}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(1024, 720, "arborist viewer")
	rl.SetTargetFPS(60)
	loaded := models.Load()
	log.Info().Int("species", len(sel.uids)).Int("models", loaded).Str("assets", cfg.AssetsDir).Msg("viewer ready")

	camera := rl.NewCamera3D(
		rl.NewVector3(4, 3, 4),
		rl.NewVector3(0, 0.5, 0),
		rl.NewVector3(0, 1, 0),
		45,
		rl.CameraPerspective,
	)

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyRight) {
			sel.move(1)
		}
		if rl.IsKeyPressed(rl.KeyLeft) {
			sel.move(-1)
		}
		if rl.IsKeyPressed(rl.KeyP) {
			sel.pollen = !sel.pollen
		}
		rl.UpdateCamera(&camera, rl.CameraOrbital)

		label := "no species"
		var (
			model rl.Model
			found bool
		)
		if uid, ok := sel.current(); ok {
			if p, ok := table.Provider(uid); ok {
				loc := p.Model(sel.kind())
				model, found = models.Model(loc)
				label = fmt.Sprintf("%s  %s  %s", p.Name(), sel.kind(), loc)
			}
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)
		rl.BeginMode3D(camera)
		if found {
			rl.DrawModel(model, rl.NewVector3(0, 0, 0), 1, rl.White)
		} else {
			rl.DrawCube(rl.NewVector3(0, 0.5, 0), 1, 1, 1, rl.Green)
			rl.DrawCubeWires(rl.NewVector3(0, 0.5, 0), 1, 1, 1, rl.DarkGreen)
		}
		rl.DrawGrid(10, 1)
		rl.EndMode3D()
		rl.DrawText(label, 16, 16, 20, rl.DarkGray)
		rl.DrawText("left/right: species   P: pollen", 16, 44, 16, rl.Gray)
		rl.EndDrawing()
	}

	models.Unload()
	rl.CloseWindow()
	return nil
}
