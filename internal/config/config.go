// Package config holds the settings of the terminal game and the HTTP server.
//
// The terminal game reads an optional JSON file (same keys as the command-line
// flags); explicitly set flags override it. The server reads environment
// variables, optionally seeded from a .env file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultSeed is the random-mode seed when none is given.
const DefaultSeed int64 = 20031007

var ErrContradictory = errors.New("contradictory parameters")

// Game configures the terminal game.
type Game struct {
	Word          string `json:"word"`
	Random        bool   `json:"random"`
	Difficult     bool   `json:"difficult"`
	Stats         bool   `json:"stats"`
	Day           int    `json:"day"`
	Seed          int64  `json:"seed"`
	FinalSet      string `json:"final_set"`
	AcceptableSet string `json:"acceptable_set"`
	State         string `json:"state"`
}

// DefaultGame returns the built-in defaults.
func DefaultGame() Game {
	return Game{Day: 1, Seed: DefaultSeed}
}

// LoadFile reads a JSON config. Missing keys keep their defaults.
func LoadFile(path string) (Game, error) {
	cfg := DefaultGame()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects option combinations that cannot be honoured together.
func (g Game) Validate() error {
	switch {
	case g.Word != "" && (g.Random || g.Seed != DefaultSeed || g.State != ""):
		return fmt.Errorf("%w: a fixed word excludes random mode, seed and state", ErrContradictory)
	case g.Word == "" && !g.Random && (g.Seed != DefaultSeed || g.State != ""):
		return fmt.Errorf("%w: seed and state need random mode", ErrContradictory)
	case g.Day < 1:
		return fmt.Errorf("%w: day must be at least 1, got %d", ErrContradictory, g.Day)
	case (g.FinalSet == "") != (g.AcceptableSet == ""):
		return fmt.Errorf("%w: final and acceptable sets go together", ErrContradictory)
	}
	return nil
}

// Server configures the HTTP service.
type Server struct {
	Port           string
	LogLevel       string
	DBPath         string
	JWTSecret      string
	JWTExpiresDays int
	CookieName     string
	ClientOrigin   string
	DailySalt      string
	AnswersFile    string
	AllowedFile    string
	Production     bool
}

// ServerFromEnv loads .env (if present) and reads the server settings.
func ServerFromEnv() Server {
	_ = godotenv.Load()
	return Server{
		Port:           getEnv("PORT", "5175"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DBPath:         getEnv("DB_PATH", "./data/wordle.db"),
		JWTSecret:      getEnv("JWT_SECRET", "dev_secret_change_me"),
		JWTExpiresDays: getEnvInt("JWT_EXPIRES_DAYS", 14),
		CookieName:     getEnv("COOKIE_NAME", "wordle_token"),
		ClientOrigin:   getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		DailySalt:      getEnv("DAILY_SALT", "local_dev_salt"),
		AnswersFile:    os.Getenv("WORDS_ANSWERS_FILE"),
		AllowedFile:    os.Getenv("WORDS_ALLOWED_FILE"),
		Production:     os.Getenv("APP_ENV") == "production",
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(k)); err == nil {
		return n
	}
	return def
}
