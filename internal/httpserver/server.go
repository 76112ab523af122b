// internal/httpserver/server.go
//
// HTTP server wiring for the Wordle backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints (optional auth): POST /game/new, POST /game/guess,
//     GET /game/{id}/hint, GET /game/{id}/knowledge, GET /game/daily/leaderboard.
//   - Auth + profile/stat endpoints: /auth/*, /stats/me (see auth.go).
//   - Persistence of games, guesses and player stats in SQLite.
//
// Notes:
//   - Live games sit in the session store; each request on a game holds the
//     session lock, so a game's tracker only ever sees one guess at a time.
//   - Persistence is best effort: a failing write is logged, the game goes on.
//   - A signed-in player gets one daily game per UTC date; asking again resumes
//     the live game or is refused once it is over.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-engine/internal/config"
	"github.com/robalobadob/wordle-engine/internal/daily"
	"github.com/robalobadob/wordle-engine/internal/game"
	"github.com/robalobadob/wordle-engine/internal/store"
	"github.com/robalobadob/wordle-engine/internal/words"
)

const (
	modeRandom = "random"
	modeDaily  = daily.Mode

	leaderboardSize = 20
)

// Server bundles router, session store, database and word lists.
type Server struct {
	r     *chi.Mux
	cfg   config.Server
	store store.Store
	db    *store.DB
	dict  *words.List
	daily *daily.Store
	now   func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Server, st store.Store, db *store.DB, dict *words.List) *Server {
	s := &Server{
		r: chi.NewRouter(), cfg: cfg, store: st, db: db, dict: dict,
		daily: daily.NewStore(db.SQL), now: time.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                       // zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(cfg.ClientOrigin))          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordle-engine","endpoints":["/health","POST /game/new","POST /game/guess","GET /game/{id}/hint","GET /game/{id}/knowledge","GET /game/daily/leaderboard","/auth/*","/stats/me"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		a, g := s.dict.Stats()
		writeJSON(w, http.StatusOK, map[string]int{"answers": a, "allowed": g})
	})

	// Game endpoints: optional auth, guests can play
	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		r.Post("/game/new", s.handleNewGame)
		r.Post("/game/guess", s.handleGuess)
		r.Get("/game/{id}/hint", s.handleHint)
		r.Get("/game/{id}/knowledge", s.handleKnowledge)
		r.Get("/game/daily/leaderboard", s.handleLeaderboard)
	})

	// Auth + profile/stats
	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ------------------------------ GAME ---------------------------------------

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Mode      string `json:"mode"`      // "random" (default) | "daily"
	Answer    string `json:"answer"`    // optional fixed answer (testing)
	Difficult bool   `json:"difficult"` // reject guesses that ignore revealed hints
}
type newGameRes struct {
	GameID    string `json:"gameId"`
	Mode      string `json:"mode"`
	Date      string `json:"date,omitempty"` // daily games only
	Rows      int    `json:"rows"`
	Cols      int    `json:"cols"`
	Difficult bool   `json:"difficult"`
}

// handleNewGame creates a live game and its database row.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json")
			return
		}
	}
	if req.Mode == "" {
		req.Mode = modeRandom
	}

	now := s.now()
	var answer, date string
	switch {
	case req.Mode == modeDaily:
		date = daily.DateKey(now)
		if g, done := s.resumeDaily(w, r, date); done {
			if g != nil {
				writeJSON(w, http.StatusOK, newGameRes{
					GameID: g.ID, Mode: modeDaily, Date: date, Rows: g.Rows, Cols: g.Cols, Difficult: g.Difficult,
				})
			}
			return
		}
		answers := s.dict.Answers()
		answer = answers[daily.WordIndex(now, s.cfg.DailySalt, len(answers))]
	case req.Mode != modeRandom:
		writeError(w, http.StatusBadRequest, "bad_mode")
		return
	case req.Answer != "":
		answer = words.Sanitize(req.Answer)
		if !words.Valid(answer) {
			writeError(w, http.StatusBadRequest, "invalid_answer")
			return
		}
	default:
		answer = s.dict.RandomAnswer()
	}

	g := game.New(answer, s.dict, req.Difficult)
	sess := &store.Session{Game: g, PlayerID: playerID(r), Mode: req.Mode}
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	if err := s.db.StartGame(r.Context(), store.GameRecord{
		ID: g.ID, PlayerID: sess.PlayerID, Mode: req.Mode, Answer: g.Answer, Difficult: g.Difficult,
		StartedAt: now,
	}); err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("insert game row")
	}

	writeJSON(w, http.StatusOK, newGameRes{
		GameID: g.ID, Mode: req.Mode, Date: date, Rows: g.Rows, Cols: g.Cols, Difficult: g.Difficult,
	})
}

// resumeDaily enforces one daily game per player and date. done reports that
// the request is settled: with the live game to resume, or with an error
// already written. Guests have no identity to key on and always get a game.
func (s *Server) resumeDaily(w http.ResponseWriter, r *http.Request, date string) (g *game.Game, done bool) {
	pid := playerID(r)
	if pid == "" {
		return nil, false
	}
	e, found, err := s.daily.Played(r.Context(), pid, date)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("daily lookup")
		writeError(w, http.StatusInternalServerError, "internal")
		return nil, true
	}
	if !found {
		return nil, false
	}
	if e.Status == string(game.StatePlaying) {
		if sess, err := s.store.Get(r.Context(), e.GameID); err == nil && sess.PlayerID == pid {
			return sess.Game, true
		}
	}
	writeError(w, http.StatusConflict, "daily_already_played")
	return nil, true
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}
type guessRes struct {
	Marks     game.Result `json:"marks"`
	State     game.State  `json:"state"`
	TriesLeft int         `json:"triesLeft"`
	Letters   string      `json:"letters"`          // 26 status codes a..z (X/R/Y/G)
	Answer    string      `json:"answer,omitempty"` // revealed once the game is over
}

// handleGuess applies a guess to a live game and records it.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess, ok := s.session(w, r, req.GameID)
	if !ok {
		return
	}
	sess.Lock()
	defer sess.Unlock()

	g := sess.Game
	res, state, err := g.ApplyGuess(req.Guess)
	if err != nil {
		status, code := guessErrorCode(err)
		writeError(w, status, code)
		return
	}

	if err := s.db.RecordGuess(r.Context(), g.ID, len(g.Guesses), g.Guesses[len(g.Guesses)-1], res); err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("record guess")
	}
	out := guessRes{Marks: res, State: state, TriesLeft: g.TriesLeft(), Letters: letterCodes(g.Tracker())}
	if state.Finished() {
		out.Answer = g.Answer
		if err := s.db.FinishGame(r.Context(), g.ID, sess.PlayerID, state, s.now()); err != nil {
			log.Warn().Err(err).Str("gameId", g.ID).Msg("finish game")
		}
		log.Info().Str("gameId", g.ID).Str("state", string(state)).Int("tries", len(g.Guesses)).Msg("game finished")
	}
	writeJSON(w, http.StatusOK, out)
}

type hintRes struct {
	Count int      `json:"count"`
	Words []string `json:"words"`
}

// handleHint lists the allowed words still consistent with the game so far.
func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	sess.Lock()
	hints := sess.Game.Hint()
	sess.Unlock()
	writeJSON(w, http.StatusOK, hintRes{Count: len(hints), Words: hints})
}

// handleKnowledge returns the tracker snapshot for inspection.
func (s *Server) handleKnowledge(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	sess.Lock()
	k := sess.Game.Knowledge()
	sess.Unlock()
	writeJSON(w, http.StatusOK, k)
}

type leaderboardRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard ranks the solved daily games of ?date=YYYY-MM-DD (default today).
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(s.now())
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		writeError(w, http.StatusBadRequest, "bad_date")
		return
	}
	top, err := s.daily.Leaderboard(r.Context(), date, leaderboardSize)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("daily leaderboard")
		writeError(w, http.StatusInternalServerError, "internal")
		return
	}
	writeJSON(w, http.StatusOK, leaderboardRes{Date: date, Top: top})
}

// session loads a live game visible to the caller, writing 404 otherwise.
// Games started by a player are private to that player.
func (s *Server) session(w http.ResponseWriter, r *http.Request, id string) (*store.Session, bool) {
	sess, err := s.store.Get(r.Context(), id)
	if err != nil || (sess.PlayerID != "" && sess.PlayerID != playerID(r)) {
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	return sess, true
}

// guessErrorCode maps engine errors to an HTTP status and error code.
func guessErrorCode(err error) (int, string) {
	switch {
	case errors.Is(err, game.ErrFinished):
		return http.StatusConflict, "game_finished"
	case errors.Is(err, game.ErrInvalidLength):
		return http.StatusBadRequest, "invalid_length"
	case errors.Is(err, game.ErrInvalidAlphabet):
		return http.StatusBadRequest, "invalid_alphabet"
	case errors.Is(err, game.ErrNotInWordList):
		return http.StatusBadRequest, "not_in_word_list"
	case errors.Is(err, game.ErrDifficultMode):
		return http.StatusBadRequest, "difficult_mode"
	default:
		log.Error().Err(err).Msg("apply guess")
		return http.StatusInternalServerError, "internal"
	}
}

func letterCodes(t *game.Tracker) string {
	st := t.Statuses()
	b := make([]byte, len(st))
	for i, s := range st {
		b[i] = s.Code()
	}
	return string(b)
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
