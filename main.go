package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/zkmastermind/go-server/internal/game"
	"github.com/zkmastermind/go-server/internal/httpserver"
	"github.com/zkmastermind/go-server/internal/hub"
	"github.com/zkmastermind/go-server/internal/store"
	"github.com/zkmastermind/go-server/internal/verifier"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	db, err := openDB(getEnv("DB_PATH", "./data/app.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}

	rules := game.ExtendedRules
	if getEnv("GAME_PROFILE", "extended") == "classic" {
		rules = game.ClassicRules
	}

	engine := game.NewEngine(store.NewSQLiteStore(db), loadVerifier(), hub.NewLogHub(), rules)
	srv := httpserver.New(engine, db)
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Uint32("maxAttempts", rules.MaxAttempts).Msg("starting mastermind server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// loadVerifier reads the Groth16 verification key configured by
// VERIFIER_VK_FILE. Without one the engine still runs, but rejects
// every feedback submission with VerifierNotSet.
func loadVerifier() verifier.Verifier {
	path := os.Getenv("VERIFIER_VK_FILE")
	if path == "" {
		log.Warn().Msg("VERIFIER_VK_FILE not set; feedback submissions will be rejected")
		return nil
	}
	vkBytes, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("read verification key")
	}
	v, err := verifier.NewGroth16(vkBytes)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("parse verification key")
	}
	log.Info().Str("path", path).Msg("verification key loaded")
	return v
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
