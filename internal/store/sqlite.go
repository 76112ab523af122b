// internal/store/sqlite.go
//
// SQLite persistence for players, games and guesses.
// Responsibilities:
//   - Opening SQLite with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying the embedded migrations (idempotent, recorded in _migrations).
//   - Player rows + per-player counters (games played, wins, streak).
//   - Game rows and their guesses, plus per-player statistics.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-engine/assets"
	"github.com/robalobadob/wordle-engine/internal/game"
	"github.com/robalobadob/wordle-engine/internal/stats"
)

var ErrUsernameTaken = errors.New("username taken")

// DB wraps the SQLite handle.
type DB struct {
	SQL *sql.DB
}

// Open opens (and creates if missing) a SQLite database file and migrates it.
//
// - Ensures the parent directory exists for relative DSNs (e.g. ./data/wordle.db).
// - Configures busy timeout and WAL journaling mode.
// - Enforces foreign keys.
func Open(dsn string) (*DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if err := migrate(db, assets.Migrations); err != nil {
		db.Close()
		return nil, err
	}
	return &DB{SQL: db}, nil
}

// Close releases the handle.
func (d *DB) Close() error { return d.SQL.Close() }

// migrate applies *.sql files from fsys in lexical order, each in its own
// transaction, skipping names already recorded in _migrations.
func migrate(db *sql.DB, fsys fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	var files []string
	if err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".sql") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("walk migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := fs.ReadFile(fsys, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

/* ------------------------------- players -------------------------------- */

// Player matches the players table shape.
type Player struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	GamesPlayed  int       `json:"gamesPlayed"`
	Wins         int       `json:"wins"`
	Streak       int       `json:"streak"`
}

// CreatePlayer inserts a new player; usernames are unique case-insensitively.
func (d *DB) CreatePlayer(ctx context.Context, id, username, passwordHash string) (*Player, error) {
	var exists int
	err := d.SQL.QueryRowContext(ctx, `SELECT 1 FROM players WHERE lower(username)=lower(?)`, username).Scan(&exists)
	switch {
	case err == nil:
		return nil, ErrUsernameTaken
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("lookup username: %w", err)
	}
	now := time.Now().UTC().Truncate(time.Second)
	if _, err := d.SQL.ExecContext(ctx,
		`INSERT INTO players (id, username, password_hash, created_at) VALUES (?,?,?,?)`,
		id, username, passwordHash, now.Format(time.RFC3339)); err != nil {
		// A concurrent signup can win the race between the lookup and the insert.
		if isUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return &Player{ID: id, Username: username, PasswordHash: passwordHash, CreatedAt: now}, nil
}

// PlayerByID loads a player or returns ErrNotFound.
func (d *DB) PlayerByID(ctx context.Context, id string) (*Player, error) {
	return scanPlayer(d.SQL.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at, games_played, wins, streak
		 FROM players WHERE id=?`, id))
}

// PlayerByUsername loads a player (case-insensitive) or returns ErrNotFound.
func (d *DB) PlayerByUsername(ctx context.Context, username string) (*Player, error) {
	return scanPlayer(d.SQL.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at, games_played, wins, streak
		 FROM players WHERE lower(username)=lower(?)`, username))
}

func scanPlayer(row *sql.Row) (*Player, error) {
	var p Player
	var created string
	if err := row.Scan(&p.ID, &p.Username, &p.PasswordHash, &created, &p.GamesPlayed, &p.Wins, &p.Streak); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &p, nil
}

/* -------------------------------- games --------------------------------- */

// GameRecord is the persisted header of a game.
type GameRecord struct {
	ID        string
	PlayerID  string // empty for guests
	Mode      string
	Answer    string
	Difficult bool
	StartedAt time.Time // zero means now
}

// StartGame inserts the game row in status "playing".
func (d *DB) StartGame(ctx context.Context, g GameRecord) error {
	if g.StartedAt.IsZero() {
		g.StartedAt = time.Now()
	}
	_, err := d.SQL.ExecContext(ctx,
		`INSERT INTO games (id, player_id, mode, answer, difficult, status, started_at)
		 VALUES (?,?,?,?,?,?,?)`,
		g.ID, nullable(g.PlayerID), g.Mode, g.Answer, g.Difficult, string(game.StatePlaying),
		g.StartedAt.UTC().Format(time.RFC3339))
	return err
}

// RecordGuess stores guess number seq (1-based) with its result code line.
func (d *DB) RecordGuess(ctx context.Context, gameID string, seq int, word string, res game.Result) error {
	_, err := d.SQL.ExecContext(ctx,
		`INSERT INTO guesses (game_id, seq, word, marks) VALUES (?,?,?,?)`,
		gameID, seq, word, res.String())
	return err
}

// FinishGame closes a game at time at and, for a known player, bumps their
// counters in the same transaction.
func (d *DB) FinishGame(ctx context.Context, gameID, playerID string, state game.State, at time.Time) error {
	tx, err := d.SQL.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `UPDATE games SET status=?, finished_at=? WHERE id=?`,
		string(state), at.UTC().Format(time.RFC3339), gameID); err != nil {
		return fmt.Errorf("finish game: %w", err)
	}
	if playerID != "" {
		if err := bumpStats(ctx, tx, playerID, state == game.StateWon); err != nil {
			return fmt.Errorf("bump stats: %w", err)
		}
	}
	return tx.Commit()
}

// bumpStats increments games played; updates wins and streak (within tx).
func bumpStats(ctx context.Context, tx *sql.Tx, playerID string, won bool) error {
	q := `UPDATE players SET games_played = games_played + 1, streak = 0 WHERE id=?`
	if won {
		q = `UPDATE players SET games_played = games_played + 1, wins = wins + 1, streak = streak + 1 WHERE id=?`
	}
	_, err := tx.ExecContext(ctx, q, playerID)
	return err
}

// PlayerStats summarises a player's finished games.
type PlayerStats struct {
	GamesPlayed  int               `json:"gamesPlayed"`
	Wins         int               `json:"wins"`
	Losses       int               `json:"losses"`
	Streak       int               `json:"streak"`
	AverageTries float64           `json:"averageTries"`
	TopWords     []stats.WordCount `json:"topWords"`
}

// StatsFor computes statistics from a player's finished games.
func (d *DB) StatsFor(ctx context.Context, playerID string) (*PlayerStats, error) {
	p, err := d.PlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	rows, err := d.SQL.QueryContext(ctx,
		`SELECT g.id, g.status, gu.word
		 FROM games g JOIN guesses gu ON gu.game_id = g.id
		 WHERE g.player_id=? AND g.status IN (?, ?)
		 ORDER BY g.started_at, g.id, gu.seq`,
		playerID, string(game.StateWon), string(game.StateLost))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tally := stats.New()
	var curID, curStatus string
	var words []string
	flush := func() {
		if curID != "" {
			tally.Record(words, curStatus == string(game.StateWon))
		}
	}
	for rows.Next() {
		var id, status, word string
		if err := rows.Scan(&id, &status, &word); err != nil {
			return nil, err
		}
		if id != curID {
			flush()
			curID, curStatus, words = id, status, nil
		}
		words = append(words, word)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	flush()

	return &PlayerStats{
		GamesPlayed:  p.GamesPlayed,
		Wins:         p.Wins,
		Losses:       p.GamesPlayed - p.Wins,
		Streak:       p.Streak,
		AverageTries: tally.AverageTries(),
		TopWords:     tally.Top(stats.TopN),
	}, nil
}

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
