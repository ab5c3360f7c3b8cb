package httpserver

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zkmastermind/go-server/internal/game"
	"github.com/zkmastermind/go-server/internal/hub"
	"github.com/zkmastermind/go-server/internal/prover"
	"github.com/zkmastermind/go-server/internal/store"
	"github.com/zkmastermind/go-server/internal/verifier/verifiertest"
)

// testEnv bundles a running server with two authenticated players.
type testEnv struct {
	ts      *httptest.Server
	maker   *prover.Codemaker
	p1, p2  string // account ids = PlayerIDs
	t1, t2  string // bearer tokens
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE users (
        id TEXT PRIMARY KEY, username TEXT NOT NULL UNIQUE COLLATE NOCASE,
        password_hash TEXT NOT NULL, created_at TEXT NOT NULL);`)
	require.NoError(t, err)

	proofs := &verifiertest.FakeProofSystem{}
	engine := game.NewEngine(store.NewMemoryStore(), proofs, hub.NewLogHub(), game.ClassicRules)
	srv := New(engine, db)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	maker, err := prover.New([4]byte{1, 2, 3, 4}, game.ClassicRules, proofs)
	require.NoError(t, err)

	env := &testEnv{ts: ts, maker: maker}
	env.p1, env.t1 = signup(t, srv, "codemaker", "hunter2hunter2")
	env.p2, env.t2 = signup(t, srv, "codebreaker", "hunter2hunter2")
	return env
}

// signup creates an account directly and signs a token for it.
func signup(t *testing.T, srv *Server, username, password string) (id, token string) {
	t.Helper()
	u, err := srv.createUser(username, password)
	require.NoError(t, err)
	tok, _, err := srv.signJWT(u.ID, u.Username)
	require.NoError(t, err)
	return u.ID, tok
}

// do sends a JSON request with a bearer token and decodes the response.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, e.ts.URL+path, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	var out map[string]any
	_ = json.NewDecoder(res.Body).Decode(&out)
	return res.StatusCode, out
}

func TestRoutesRequireAuth(t *testing.T) {
	env := newTestEnv(t)
	status, _ := env.do(t, http.MethodPost, "/game/new", "", map[string]any{"sessionId": 1})
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = env.do(t, http.MethodGet, "/game/1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestFullSessionOverHTTP(t *testing.T) {
	env := newTestEnv(t)

	// Create the session as player2 (either party may create).
	status, body := env.do(t, http.MethodPost, "/game/new", env.t2, map[string]any{
		"sessionId": 42, "player1": env.p1, "player2": env.p2,
		"player1Points": 100, "player2Points": 100,
	})
	require.Equal(t, http.StatusOK, status, "create: %v", body)

	// Codemaker publishes the commitment.
	c := env.maker.Commitment()
	status, body = env.do(t, http.MethodPost, "/game/commit", env.t1, map[string]any{
		"sessionId": 42, "commitment": hex.EncodeToString(c[:]),
	})
	require.Equal(t, http.StatusOK, status, "commit: %v", body)

	// Codebreaker guesses the exact secret.
	status, body = env.do(t, http.MethodPost, "/game/guess", env.t2, map[string]any{
		"sessionId": 42, "guess": []int{1, 2, 3, 4},
	})
	require.Equal(t, http.StatusOK, status, "guess: %v", body)
	assert.Equal(t, float64(0), body["guessId"])

	// Codemaker proves the feedback off-protocol and submits it.
	exact, partial, blob, err := env.maker.ProveFeedback(context.Background(), 42, 0, [4]byte{1, 2, 3, 4})
	require.NoError(t, err)
	status, body = env.do(t, http.MethodPost, "/game/feedback", env.t1, map[string]any{
		"sessionId": 42, "guessId": 0, "exact": exact, "partial": partial,
		"proofBlob": base64.StdEncoding.EncodeToString(blob),
	})
	require.Equal(t, http.StatusOK, status, "feedback: %v", body)
	assert.Equal(t, true, body["ended"])
	assert.Equal(t, true, body["solved"])
	assert.Equal(t, env.p2, body["winner"])

	// Read-back agrees.
	status, body = env.do(t, http.MethodGet, "/game/42", env.t2, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["ended"])
	assert.Equal(t, float64(1), body["attemptsUsed"])
}

func TestProtocolErrorEnvelope(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodPost, "/game/new", env.t1, map[string]any{
		"sessionId": 5, "player1": env.p1, "player2": env.p2,
	})
	require.Equal(t, http.StatusOK, status, "create: %v", body)

	// Wrong role: player2 cannot commit. Stable code 2 on the wire.
	c := env.maker.Commitment()
	status, body = env.do(t, http.MethodPost, "/game/commit", env.t2, map[string]any{
		"sessionId": 5, "commitment": hex.EncodeToString(c[:]),
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "NotPlayer", body["error"])
	assert.Equal(t, float64(game.CodeNotPlayer), body["code"])

	// Guess before commitment: ordering conflict.
	status, body = env.do(t, http.MethodPost, "/game/guess", env.t2, map[string]any{
		"sessionId": 5, "guess": []int{1, 2, 3, 4},
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CommitmentNotSet", body["error"])

	// Unknown session.
	status, body = env.do(t, http.MethodGet, "/game/404404", env.t1, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "GameNotFound", body["error"])

	// Creating a session you are not part of is rejected outright.
	status, body = env.do(t, http.MethodPost, "/game/new", env.t1, map[string]any{
		"sessionId": 6, "player1": "someone", "player2": "else",
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "NotPlayer", body["error"])
}

func TestForgedFeedbackOverHTTP(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodPost, "/game/new", env.t1, map[string]any{
		"sessionId": 8, "player1": env.p1, "player2": env.p2,
	})
	require.Equal(t, http.StatusOK, status, "create: %v", body)
	c := env.maker.Commitment()
	status, _ = env.do(t, http.MethodPost, "/game/commit", env.t1, map[string]any{
		"sessionId": 8, "commitment": hex.EncodeToString(c[:]),
	})
	require.Equal(t, http.StatusOK, status)
	status, _ = env.do(t, http.MethodPost, "/game/guess", env.t2, map[string]any{
		"sessionId": 8, "guess": []int{2, 1, 4, 3},
	})
	require.Equal(t, http.StatusOK, status)

	exact, partial, blob, err := env.maker.ProveFeedback(context.Background(), 8, 0, [4]byte{2, 1, 4, 3})
	require.NoError(t, err)

	// Claim different counts than the proof was produced for. The forged
	// claim stays in range so it reaches the public-input comparison.
	status, body = env.do(t, http.MethodPost, "/game/feedback", env.t1, map[string]any{
		"sessionId": 8, "guessId": 0, "exact": exact, "partial": partial - 1,
		"proofBlob": base64.StdEncoding.EncodeToString(blob),
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "InvalidPublicInputs", body["error"])

	// An inflated claim whose sum exceeds the code length never gets
	// that far; the range guard rejects it as plain bad input.
	status, body = env.do(t, http.MethodPost, "/game/feedback", env.t1, map[string]any{
		"sessionId": 8, "guessId": 0, "exact": exact + 1, "partial": partial,
		"proofBlob": base64.StdEncoding.EncodeToString(blob),
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "InvalidFeedback", body["error"])

	// Corrupt the proof bytes.
	tampered := append([]byte(nil), blob...)
	tampered[len(tampered)-1] ^= 0x01
	status, body = env.do(t, http.MethodPost, "/game/feedback", env.t1, map[string]any{
		"sessionId": 8, "guessId": 0, "exact": exact, "partial": partial,
		"proofBlob": base64.StdEncoding.EncodeToString(tampered),
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "InvalidProof", body["error"])

	// Garbage framing.
	status, body = env.do(t, http.MethodPost, "/game/feedback", env.t1, map[string]any{
		"sessionId": 8, "guessId": 0, "exact": exact, "partial": partial,
		"proofBlob": base64.StdEncoding.EncodeToString([]byte{1, 2, 3}),
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "InvalidProofBlob", body["error"])

	// The honest submission still lands.
	status, body = env.do(t, http.MethodPost, "/game/feedback", env.t1, map[string]any{
		"sessionId": 8, "guessId": 0, "exact": exact, "partial": partial,
		"proofBlob": base64.StdEncoding.EncodeToString(blob),
	})
	require.Equal(t, http.StatusOK, status, "honest feedback: %v", body)
	assert.Equal(t, false, body["ended"])
}

func TestMyGamesListing(t *testing.T) {
	env := newTestEnv(t)
	for _, id := range []int{1, 2} {
		status, body := env.do(t, http.MethodPost, "/game/new", env.t1, map[string]any{
			"sessionId": id, "player1": env.p1, "player2": env.p2,
		})
		require.Equal(t, http.StatusOK, status, "create %d: %v", id, body)
	}

	req, err := http.NewRequest(http.MethodGet, env.ts.URL+"/games/mine", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+env.t1)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	var list []map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&list))
	require.Len(t, list, 2)
	assert.Equal(t, float64(2), list[0]["sessionId"], "newest first")
}

func TestAuthSignupLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodPost, "/auth/signup", "", map[string]string{
		"username": "newplayer", "password": "longenoughpw",
	})
	require.Equal(t, http.StatusOK, status, "signup: %v", body)
	assert.NotEmpty(t, body["id"])

	status, _ = env.do(t, http.MethodPost, "/auth/signup", "", map[string]string{
		"username": "newplayer", "password": "longenoughpw",
	})
	assert.Equal(t, http.StatusConflict, status)

	status, body = env.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"username": "newplayer", "password": "longenoughpw",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "newplayer", body["username"])

	status, _ = env.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"username": "newplayer", "password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}
