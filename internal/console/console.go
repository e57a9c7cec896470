// Package console hosts the world, its registries and the command
// dispatcher, and runs lines typed at the server console.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/appengine-ltd/arborist/internal/command"
	"github.com/appengine-ltd/arborist/internal/config"
	"github.com/appengine-ltd/arborist/internal/genetics"
	"github.com/appengine-ltd/arborist/internal/render/germling"
	"github.com/appengine-ltd/arborist/internal/store"
	"github.com/appengine-ltd/arborist/internal/world"
)

type Server struct {
	cfg     config.Config
	env     *command.Env
	disp    *command.Dispatcher
	store   *store.Store
	console *command.WriterSender
	out     io.Writer
	log     zerolog.Logger
}

// New loads the catalog and the world named in cfg. A world missing from
// the database is created fresh with the configured players.
func New(ctx context.Context, cfg config.Config, log zerolog.Logger, out io.Writer) (*Server, error) {
	catalog := genetics.DefaultCatalog()
	if cfg.Catalog != "" {
		c, err := genetics.LoadCatalog(cfg.Catalog)
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		catalog = c
	}
	alleles := genetics.NewRegistry()
	templates := genetics.NewTemplates()
	if err := catalog.Install(alleles, templates); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	s := &Server{cfg: cfg, out: out, log: log, console: command.NewConsoleSender(out)}

	var (
		w       *world.World
		players *world.Players
	)
	if cfg.Database != "" {
		st, err := store.Open(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		s.store = st
		w, players, err = st.LoadWorld(ctx, cfg.WorldName)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			_ = st.Close()
			return nil, err
		}
	}
	if w == nil {
		w = world.New(cfg.WorldName, cfg.Seed, cfg.WorldHeight, cfg.GroundY)
		players = world.NewPlayers()
		log.Info().Str("world", cfg.WorldName).Int64("seed", cfg.Seed).Msg("created world")
	} else {
		log.Info().Str("world", w.Name).Int("blocks", len(w.Blocks())).Msg("loaded world")
	}
	for _, p := range cfg.Players {
		if _, ok := players.Lookup(p.Name); !ok {
			players.Add(p.Name, world.Pos{X: p.X, Y: p.Y, Z: p.Z})
		}
	}

	s.env = &command.Env{
		Alleles:   alleles,
		Templates: templates,
		World:     w,
		Players:   players,
		Log:       log,
	}
	forest := command.ForestConfig{Size: cfg.ForestSize, Radius: cfg.ForestRadius}
	s.disp = command.NewDispatcher(
		command.NewTreesCommand(s.env, forest),
		command.NewFunc("models", "", command.PermNone, s.checkModels),
	)
	log.Info().Int("alleles", alleles.Len()).Int("players", len(players.Names())).Msg("console ready")
	return s, nil
}

func (s *Server) Env() *command.Env { return s.env }

// Run reads lines from in until it is exhausted, ctx ends or a line asks
// to quit. The world is saved on the way out, even after cancellation.
func (s *Server) Run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		readErr <- scanner.Err()
	}()

loop:
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("console interrupted")
			break loop
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("read console: %w", err)
				}
				break loop
			}
			if !s.Handle(ctx, line) {
				break loop
			}
		}
	}
	return s.Save(context.WithoutCancel(ctx))
}

// Handle runs one console line. It returns false when the line asks to quit.
func (s *Server) Handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}
	if strings.HasPrefix(line, "@") {
		name, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)
		if name == "@" || rest == "" {
			s.console.Send("Usage: @<player> <command>")
			return true
		}
		sender, err := s.playerSender(strings.TrimPrefix(name, "@"))
		if err != nil {
			command.Report(s.console, err)
			return true
		}
		s.handleAs(ctx, sender, rest)
		return true
	}
	switch strings.ToLower(line) {
	case "quit", "exit", "stop":
		return false
	}
	s.handleAs(ctx, s.console, line)
	return true
}

func (s *Server) handleAs(ctx context.Context, sender command.Sender, line string) {
	word, rest, _ := strings.Cut(line, " ")
	switch strings.ToLower(word) {
	case "help", "/help":
		s.disp.Help(sender)
	case "complete", "/complete":
		sender.Send(strings.Join(s.disp.Complete(sender, rest), " "))
	case "save", "/save":
		if sender.PermLevel() < command.PermAdmin {
			command.Report(sender, &command.PermissionError{Command: "save"})
			return
		}
		if err := s.Save(ctx); err != nil {
			command.Report(sender, err)
			return
		}
		sender.Send(fmt.Sprintf("Saved %s.", s.env.World.Name))
	default:
		_ = s.disp.Execute(sender, line)
	}
}

func (s *Server) playerSender(name string) (command.Sender, error) {
	p, ok := s.env.Players.Lookup(name)
	if !ok {
		return nil, &command.PlayerNotFoundError{Name: name}
	}
	level := command.PermNone
	if s.cfg.IsAdmin(p.Name) {
		level = command.PermAdmin
	}
	return command.NewPlayerSender(p.Name, level, s.out), nil
}

// Save writes the world to the database, if one is configured.
func (s *Server) Save(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	if err := s.store.SaveWorld(ctx, s.env.World, s.env.Players); err != nil {
		return err
	}
	s.log.Info().Str("world", s.env.World.Name).Msg("saved world")
	return nil
}

func (s *Server) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}

func (s *Server) checkModels(sender command.Sender, _ []string) error {
	files := germling.NewFileManager(s.cfg.AssetsDir)
	table := germling.RegisterAll(s.env.Alleles.Species(), files)
	registered := files.Variants(germling.SaplingItem)
	missing := files.Missing(germling.SaplingItem)
	sender.Send(fmt.Sprintf("%d germling models for %d species, %d missing under %s.",
		len(registered), len(table.UIDs()), len(missing), s.cfg.AssetsDir))
	for _, loc := range missing {
		sender.Send("  missing " + loc.String())
	}
	return nil
}
