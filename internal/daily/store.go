package daily

import (
	"context"
	"database/sql"
	"errors"

	"github.com/robalobadob/wordle-engine/internal/game"
)

// Mode is the games.mode value of daily games.
const Mode = "daily"

// Entry is a player's daily game for one date.
type Entry struct {
	GameID string
	Status string // playing | won | lost
}

// LBRow is one leaderboard line: a player who solved the daily word.
type LBRow struct {
	Username  string `json:"username"`
	Tries     int    `json:"tries"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Store reads daily games from the games/guesses tables.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Played returns the player's daily game for date (YYYY-MM-DD), if any.
func (s *Store) Played(ctx context.Context, playerID, date string) (Entry, bool, error) {
	var e Entry
	err := s.db.QueryRowContext(ctx,
		`SELECT id, status FROM games
		 WHERE player_id=? AND mode=? AND substr(started_at, 1, 10)=?
		 ORDER BY started_at LIMIT 1`,
		playerID, Mode, date,
	).Scan(&e.GameID, &e.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	return e, true, nil
}

// Leaderboard ranks the won daily games of date by tries, then time taken.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.username,
		        (SELECT COUNT(1) FROM guesses gu WHERE gu.game_id = g.id) AS tries,
		        CAST(ROUND((julianday(g.finished_at) - julianday(g.started_at)) * 86400000) AS INTEGER) AS elapsed
		 FROM games g JOIN players p ON p.id = g.player_id
		 WHERE g.mode=? AND g.status=? AND substr(g.started_at, 1, 10)=?
		 ORDER BY tries ASC, elapsed ASC, g.finished_at ASC
		 LIMIT ?`, Mode, string(game.StateWon), date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []LBRow{}
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.Username, &r.Tries, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
