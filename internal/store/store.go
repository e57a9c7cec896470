// Package store saves worlds and their players to a SQLite database.
package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"

	"github.com/appengine-ltd/arborist/internal/world"
)

var ErrNotFound = errors.New("world not found")

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS worlds (
			name TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			height INTEGER NOT NULL,
			ground_y INTEGER NOT NULL,
			block_count INTEGER NOT NULL,
			blocks BLOB NOT NULL,
			saved_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS players (
			world TEXT NOT NULL REFERENCES worlds(name) ON DELETE CASCADE,
			name TEXT NOT NULL,
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			z INTEGER NOT NULL,
			PRIMARY KEY (world, name)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// SaveWorld replaces the stored copy of w and its players.
func (s *Store) SaveWorld(ctx context.Context, w *world.World, players *world.Players) error {
	blocks := w.Blocks()
	blob, err := encodeBlocks(blocks)
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM players WHERE world = ?`, w.Name); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO worlds (name, seed, height, ground_y, block_count, blocks, saved_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			seed = excluded.seed,
			height = excluded.height,
			ground_y = excluded.ground_y,
			block_count = excluded.block_count,
			blocks = excluded.blocks,
			saved_at = excluded.saved_at`,
		w.Name, w.Seed, w.Height, w.GroundY, len(blocks), blob, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save world %s: %w", w.Name, err)
	}
	if players != nil {
		for _, p := range players.All() {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO players (world, name, x, y, z) VALUES (?, ?, ?, ?, ?)`,
				w.Name, p.Name, p.Pos.X, p.Pos.Y, p.Pos.Z,
			); err != nil {
				return fmt.Errorf("save player %s: %w", p.Name, err)
			}
		}
	}
	return tx.Commit()
}

// LoadWorld restores a saved world. It returns ErrNotFound when name was never saved.
func (s *Store) LoadWorld(ctx context.Context, name string) (*world.World, *world.Players, error) {
	var (
		seed            int64
		height, groundY int
		blob            []byte
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT seed, height, ground_y, blocks FROM worlds WHERE name = ?`, name,
	).Scan(&seed, &height, &groundY, &blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load world %s: %w", name, err)
	}
	blocks, err := decodeBlocks(blob)
	if err != nil {
		return nil, nil, fmt.Errorf("load world %s: %w", name, err)
	}
	w := world.New(name, seed, height, groundY)
	w.Restore(blocks)

	rows, err := s.db.QueryContext(ctx, `SELECT name, x, y, z FROM players WHERE world = ? ORDER BY name`, name)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()
	players := world.NewPlayers()
	for rows.Next() {
		var (
			pname string
			pos   world.Pos
		)
		if err := rows.Scan(&pname, &pos.X, &pos.Y, &pos.Z); err != nil {
			return nil, nil, err
		}
		players.Add(pname, pos)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return w, players, nil
}

func encodeBlocks(blocks []world.BlockEntry) ([]byte, error) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	if err := gob.NewEncoder(enc).Encode(blocks); err != nil {
		_ = enc.Close()
		return nil, fmt.Errorf("gob encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeBlocks(blob []byte) ([]world.BlockEntry, error) {
	dec, err := zstd.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	var blocks []world.BlockEntry
	if err := gob.NewDecoder(dec).Decode(&blocks); err != nil {
		return nil, fmt.Errorf("gob decode: %w", err)
	}
	return blocks, nil
}
