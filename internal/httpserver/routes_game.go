// internal/httpserver/routes_game.go
//
// HTTP routes for the session protocol.
// Exposes, all behind required auth:
//   - POST /game/new       → create a session between two players
//   - POST /game/commit    → Codemaker publishes the secret's commitment
//   - POST /game/guess     → Codebreaker submits a guess
//   - POST /game/feedback  → Codemaker submits proven feedback
//   - GET  /game/{sessionId} → read session state
//   - GET  /games/mine     → list the caller's sessions
//
// The handlers only translate JSON ⇄ protocol types; every rule lives in
// the state machine. Protocol failures surface as {error, code} with the
// contract's stable numeric codes.

package httpserver

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/zkmastermind/go-server/internal/game"
)

// mountGame registers the protocol routes.
func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewSession)
	r.Post("/game/commit", s.handleCommit)
	r.Post("/game/guess", s.handleGuess)
	r.Post("/game/feedback", s.handleFeedback)
	r.Get("/game/{sessionId}", s.handleGetGame)
	r.Get("/games/mine", s.handleMyGames)
}

// writeProtocolError renders a protocol error as the JSON envelope with
// a mapped HTTP status; anything else is a 500.
func writeProtocolError(w http.ResponseWriter, err error) {
	var perr *game.Error
	if !errors.As(err, &perr) {
		log.Error().Err(err).Msg("internal error")
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}
	status := http.StatusConflict
	switch perr.Code {
	case game.CodeGameNotFound:
		status = http.StatusNotFound
	case game.CodeNotPlayer:
		status = http.StatusForbidden
	case game.CodeInvalidFeedback, game.CodeInvalidGuess, game.CodeInvalidProofBlob:
		status = http.StatusBadRequest
	case game.CodeInvalidPublicInputs, game.CodeInvalidProof:
		status = http.StatusUnprocessableEntity
	case game.CodeVerifierNotSet:
		status = http.StatusServiceUnavailable
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": perr.Name, "code": perr.Code})
}

// ----------------------------- /game/new -----------------------------------

type newSessionReq struct {
	SessionID     uint32 `json:"sessionId"`
	Player1       string `json:"player1"`
	Player2       string `json:"player2"`
	Player1Points int64  `json:"player1Points"`
	Player2Points int64  `json:"player2Points"`
}

// handleNewSession creates a session. The caller must be one of the two
// recorded players (the other party's stake authorization is the hub's
// concern, not this server's).
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	me, ok := currentPlayer(r)
	if !ok {
		http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
		return
	}
	var req newSessionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	p1, p2 := game.PlayerID(req.Player1), game.PlayerID(req.Player2)
	if me != p1 && me != p2 {
		writeProtocolError(w, game.ErrNotPlayer)
		return
	}
	sess, err := s.engine.Create(r.Context(), req.SessionID, p1, p2, req.Player1Points, req.Player2Points)
	if err != nil {
		writeProtocolError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(sessionView(sess))
}

// ---------------------------- /game/commit ---------------------------------

type commitReq struct {
	SessionID  uint32 `json:"sessionId"`
	Commitment string `json:"commitment"` // 32 bytes, hex
}

func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	me, ok := currentPlayer(r)
	if !ok {
		http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
		return
	}
	var req commitReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	raw, err := hex.DecodeString(req.Commitment)
	if err != nil || len(raw) != 32 {
		http.Error(w, `{"error":"commitment must be 32 hex-encoded bytes"}`, http.StatusBadRequest)
		return
	}
	var c [32]byte
	copy(c[:], raw)
	if err := s.engine.CommitCode(r.Context(), me, req.SessionID, c); err != nil {
		writeProtocolError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// ----------------------------- /game/guess ---------------------------------

type guessReq struct {
	SessionID uint32 `json:"sessionId"`
	Guess     []int  `json:"guess"` // 4 digits
}

type guessRes struct {
	GuessID uint32 `json:"guessId"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	me, ok := currentPlayer(r)
	if !ok {
		http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
		return
	}
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if len(req.Guess) != game.CodeLength {
		writeProtocolError(w, game.ErrInvalidGuess)
		return
	}
	var g [game.CodeLength]byte
	for i, d := range req.Guess {
		if d < 0 || d > 255 {
			writeProtocolError(w, game.ErrInvalidGuess)
			return
		}
		g[i] = byte(d)
	}
	guessID, err := s.engine.SubmitGuess(r.Context(), me, req.SessionID, g)
	if err != nil {
		writeProtocolError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(guessRes{GuessID: guessID})
}

// --------------------------- /game/feedback --------------------------------

type feedbackReq struct {
	SessionID uint32 `json:"sessionId"`
	GuessID   uint32 `json:"guessId"`
	Exact     uint32 `json:"exact"`
	Partial   uint32 `json:"partial"`
	ProofBlob string `json:"proofBlob"` // base64
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	me, ok := currentPlayer(r)
	if !ok {
		http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
		return
	}
	var req feedbackReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	blob, err := base64.StdEncoding.DecodeString(req.ProofBlob)
	if err != nil {
		writeProtocolError(w, game.ErrInvalidProofBlob)
		return
	}
	if err := s.engine.SubmitFeedbackProof(r.Context(), me, req.SessionID, req.GuessID, req.Exact, req.Partial, blob); err != nil {
		writeProtocolError(w, err)
		return
	}
	sess, err := s.engine.GetGame(r.Context(), req.SessionID)
	if err != nil {
		writeProtocolError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(sessionView(sess))
}

// -------------------------- reads & listings -------------------------------

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id64, err := strconv.ParseUint(chi.URLParam(r, "sessionId"), 10, 32)
	if err != nil {
		http.Error(w, `{"error":"bad session id"}`, http.StatusBadRequest)
		return
	}
	sess, err := s.engine.GetGame(r.Context(), uint32(id64))
	if err != nil {
		writeProtocolError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(sessionView(sess))
}

func (s *Server) handleMyGames(w http.ResponseWriter, r *http.Request) {
	me, ok := currentPlayer(r)
	if !ok {
		http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
		return
	}
	sessions, err := s.engine.ListGames(r.Context(), me)
	if err != nil {
		writeProtocolError(w, err)
		return
	}
	out := make([]map[string]any, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, sessionView(sess))
	}
	_ = json.NewEncoder(w).Encode(out)
}

// sessionView shapes a session for JSON responses: commitment and proof
// hashes as hex, digits as plain arrays.
func sessionView(sess *game.Session) map[string]any {
	view := map[string]any{
		"sessionId":     sess.ID,
		"player1":       sess.Player1,
		"player2":       sess.Player2,
		"player1Points": sess.Player1Points,
		"player2Points": sess.Player2Points,
		"maxAttempts":   sess.MaxAttempts,
		"attemptsUsed":  sess.AttemptsUsed,
		"solved":        sess.Solved,
		"ended":         sess.Ended,
	}
	if sess.Commitment != nil {
		view["commitment"] = hex.EncodeToString(sess.Commitment[:])
	}
	if sess.PendingGuess != nil {
		view["pendingGuessId"] = *sess.PendingGuess
	}
	if sess.Winner != nil {
		view["winner"] = *sess.Winner
	}
	guesses := make([]map[string]any, 0, len(sess.Guesses))
	for _, g := range sess.Guesses {
		guesses = append(guesses, map[string]any{"guessId": g.GuessID, "guess": g.Guess})
	}
	view["guesses"] = guesses
	feedbacks := make([]map[string]any, 0, len(sess.Feedbacks))
	for _, f := range sess.Feedbacks {
		feedbacks = append(feedbacks, map[string]any{
			"guessId":   f.GuessID,
			"exact":     f.Exact,
			"partial":   f.Partial,
			"proofHash": hex.EncodeToString(f.ProofHash[:]),
		})
	}
	view["feedbacks"] = feedbacks
	return view
}
