// Riddleshield quiz coordination
//
// One session lives in a shared store; there is no push channel of any kind.
// Every client (the host screen and each player's phone) polls /api/state on
// its own cadence, derives the current phase from the snapshot, and POSTs
// mutations. Consistency comes only from repeated read-compute-write cycles,
// so the state poll also drives the question timer: a session advances as
// long as at least one client keeps polling, regardless of who it is.
//
// Host versus player is a client-side convention. The server enforces no
// role separation and no authentication; players are only their self-chosen
// display names.

package main

import (
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"

	"github.com/harshitkumar81444-source/RIDDLE-SHIELD/internal/quiz"
	"github.com/harshitkumar81444-source/RIDDLE-SHIELD/internal/store"
)

const playerCookieName = "riddleshield_id"

type riddleServer struct {
	cfg      *Config
	sessions store.Store
	riddles  quiz.Set
	clock    clockwork.Clock
}

// stateResponse is the poll payload: the session record itself plus the
// derived fields every client would otherwise recompute each cycle.
type stateResponse struct {
	quiz.Session
	Prompt           string          `json:"prompt,omitempty"`
	QuestionCount    int             `json:"questionCount"`
	RemainingSeconds float64         `json:"remainingSeconds"`
	Leaderboard      []quiz.Standing `json:"leaderboard"`
	ServerTime       quiz.Timestamp  `json:"serverTime"`
}

type joinRequest struct {
	Name string `json:"name"`
}

type startRequest struct {
	Seed int64 `json:"seed"`
}

type answerRequest struct {
	Player        string `json:"player"`
	QuestionIndex int    `json:"questionIndex"`
	Text          string `json:"text"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// serveState ticks the timer and returns the snapshot. Quiet polls return
// store.ErrNoChange from the mutation callback so the store can skip the
// write; a poll that observes an expired window advances the cursor for
// everyone.
func (rs *riddleServer) serveState() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		getOrSetPlayerID(w, r)
		now := rs.clock.Now()

		sess, err := rs.sessions.Update(r.Context(), func(s quiz.Session) (quiz.Session, error) {
			if !s.Tick(rs.cfg.questionTime, now) {
				return s, store.ErrNoChange
			}
			return s, nil
		})
		if err != nil {
			writeError(rs.cfg, w, err)
			return
		}

		resp := stateResponse{
			Session:          sess,
			QuestionCount:    len(sess.QuestionOrder),
			RemainingSeconds: sess.Remaining(rs.cfg.questionTime, now).Seconds(),
			Leaderboard:      quiz.Leaderboard(sess, rs.riddles, rs.cfg.questionTime),
			ServerTime:       quiz.At(now),
		}
		if sess.Phase == quiz.PhaseInProgress && sess.CurrentQuestion < len(sess.QuestionOrder) {
			resp.Prompt = sess.QuestionOrder[sess.CurrentQuestion]
		}

		writeJSON(rs.cfg, w, http.StatusOK, resp)
	}
}

func (rs *riddleServer) handleJoin() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		clientID := getOrSetPlayerID(w, r)

		var req joinRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(rs.cfg, w, http.StatusBadRequest, errorResponse{Error: "malformed join request"})
			return
		}

		_, err := rs.sessions.Update(r.Context(), func(s quiz.Session) (quiz.Session, error) {
			if err := s.Join(req.Name); err != nil {
				return quiz.Session{}, err
			}
			return s, nil
		})
		if err != nil {
			writeError(rs.cfg, w, err)
			return
		}

		log.Info().Str("player", req.Name).Str("client", clientID).Msg("player joined")
		writeJSON(rs.cfg, w, http.StatusOK, struct{}{})
	}
}

func (rs *riddleServer) handleStart() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		clientID := getOrSetPlayerID(w, r)
		now := rs.clock.Now()

		var req startRequest
		if r.ContentLength > 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeJSON(rs.cfg, w, http.StatusBadRequest, errorResponse{Error: "malformed start request"})
				return
			}
		}
		seed := req.Seed
		if seed == 0 {
			seed = rs.cfg.seed
		}
		if seed == 0 {
			seed = rand.Int63()
		}

		_, err := rs.sessions.Update(r.Context(), func(s quiz.Session) (quiz.Session, error) {
			if err := s.Start(rs.riddles, seed, now); err != nil {
				return quiz.Session{}, err
			}
			return s, nil
		})
		if err != nil {
			writeError(rs.cfg, w, err)
			return
		}

		log.Info().Str("client", clientID).Int64("seed", seed).Msg("session started")
		writeJSON(rs.cfg, w, http.StatusOK, struct{}{})
	}
}

func (rs *riddleServer) handleAnswer() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		getOrSetPlayerID(w, r)
		now := rs.clock.Now()

		var req answerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(rs.cfg, w, http.StatusBadRequest, errorResponse{Error: "malformed answer request"})
			return
		}

		_, err := rs.sessions.Update(r.Context(), func(s quiz.Session) (quiz.Session, error) {
			// Ticking first keeps a poll-lagged client from slipping an
			// answer into a window that has already closed.
			s.Tick(rs.cfg.questionTime, now)
			if err := s.Submit(req.Player, req.QuestionIndex, req.Text, now); err != nil {
				return quiz.Session{}, err
			}
			return s, nil
		})
		if err != nil {
			writeError(rs.cfg, w, err)
			return
		}

		log.Debug().Str("player", req.Player).Int("question", req.QuestionIndex).Msg("answer recorded")
		writeJSON(rs.cfg, w, http.StatusOK, struct{}{})
	}
}

func (rs *riddleServer) handleReset() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		clientID := getOrSetPlayerID(w, r)

		_, err := rs.sessions.Update(r.Context(), func(quiz.Session) (quiz.Session, error) {
			return quiz.NewSession(), nil
		})
		if err != nil {
			writeError(rs.cfg, w, err)
			return
		}

		log.Info().Str("client", clientID).Msg("session reset")
		writeJSON(rs.cfg, w, http.StatusOK, struct{}{})
	}
}

func (rs *riddleServer) serveIndex() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		getOrSetPlayerID(w, r)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		securityHeaders(rs.cfg, w)
		w.Write([]byte(indexHTML))
	}
}

// writeError maps the core error taxonomy onto status codes. Everything in
// it is recoverable: clients surface the message and retry on a later cycle.
func writeError(cfg *Config, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, quiz.ErrEmptyName):
		status = http.StatusBadRequest
	case errors.Is(err, quiz.ErrNameTaken),
		errors.Is(err, quiz.ErrNotInLobby),
		errors.Is(err, quiz.ErrNoRiddles),
		errors.Is(err, quiz.ErrSessionNotLive),
		errors.Is(err, quiz.ErrStaleQuestion):
		status = http.StatusConflict
	case errors.Is(err, store.ErrUnavailable):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError || status == http.StatusServiceUnavailable {
		log.Error().Err(err).Msg("request failed")
	}
	writeJSON(cfg, w, status, errorResponse{Error: err.Error()})
}

func writeJSON(cfg *Config, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	securityHeaders(cfg, w)
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("encoding response")
	}
}

// getOrSetPlayerID tags each browser with an opaque ID used only for log
// correlation. Identity inside the game stays the display name.
func getOrSetPlayerID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(playerCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}

func registerRiddleGame(cfg *Config, mux *httprouter.Router, rs *riddleServer) {
	mux.GET(cfg.prefix+"/", rs.serveIndex())
	mux.GET(cfg.prefix+"/api/state", rs.serveState())
	mux.POST(cfg.prefix+"/api/join", rs.handleJoin())
	mux.POST(cfg.prefix+"/api/start", rs.handleStart())
	mux.POST(cfg.prefix+"/api/answer", rs.handleAnswer())
	mux.POST(cfg.prefix+"/api/reset", rs.handleReset())
}
