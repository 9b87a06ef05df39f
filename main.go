// main.go
//
// Entry point for the Wordle hint engine.
//
//	hint-server -mode serve   HTTP JSON API (default)
//	hint-server -mode play    interactive terminal game
//
// Startup: load .env, configure zerolog, read config, load word lists, build
// the feedback matrix once, then hand the shared engine to the chosen front end.

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/hint-server/internal/cli"
	"github.com/robalobadob/wordle/apps/hint-server/internal/config"
	"github.com/robalobadob/wordle/apps/hint-server/internal/daily"
	"github.com/robalobadob/wordle/apps/hint-server/internal/feedback"
	"github.com/robalobadob/wordle/apps/hint-server/internal/game"
	"github.com/robalobadob/wordle/apps/hint-server/internal/httpserver"
	"github.com/robalobadob/wordle/apps/hint-server/internal/stats"
	"github.com/robalobadob/wordle/apps/hint-server/internal/store"
	"github.com/robalobadob/wordle/apps/hint-server/internal/suggest"
	"github.com/robalobadob/wordle/apps/hint-server/internal/words"
)

func main() {
	mode := flag.String("mode", "serve", "serve | play")
	flag.Parse()

	_ = godotenv.Load()
	if *mode == "play" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	lex, err := words.Load(words.Sources{
		AnswersFile: cfg.Words.AnswersFile,
		AllowedFile: cfg.Words.AllowedFile,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	targets, guesses := lex.Stats()
	log.Info().Int("answers", targets).Int("allowed", guesses).Msg("word lists loaded")

	var matrix *feedback.Matrix
	if *mode == "play" {
		matrix = cli.BuildMatrix(lex.Targets(), cfg.Rank.Workers, os.Stderr)
	} else {
		matrix = feedback.BuildMatrix(lex.Targets(),
			feedback.WithWorkers(cfg.Rank.Workers),
			feedback.WithProgress(logProgress()),
		)
	}
	engine := suggest.NewEngine(lex, matrix,
		suggest.WithPool(suggest.Pool(cfg.Rank.Pool)),
		suggest.WithTopK(cfg.Rank.TopK),
		suggest.WithWorkers(cfg.Rank.Workers),
	)
	warmStart := time.Now()
	if opening := engine.Warm(); len(opening) > 0 {
		log.Info().Str("best", opening[0].Word.String()).Dur("took", time.Since(warmStart)).Msg("opening ranking cached")
	}

	st, closeStats, err := openStats(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Stats.Backend).Msg("failed to open stats")
	}
	defer closeStats()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case "play":
		sess := game.New(lex, matrix, engine, game.WithRecorder(st.Player("local")))
		if err := cli.NewPlayer(sess, os.Stdin, os.Stdout, 0).Run(ctx); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("play")
		}
	case "serve":
		srv := httpserver.New(httpserver.Deps{
			Lexicon: lex,
			Matrix:  matrix,
			Engine:  engine,
			Store:   store.NewMemoryStore(),
			Stats:   st,
			Daily:   daily.NewPicker(cfg.DailySalt),
		}, cfg)
		go srv.RunSweeper(ctx, time.Minute)
		log.Info().Str("port", cfg.Port).Msg("starting hint-server")
		if err := srv.Start(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("server exited")
		}
	default:
		log.Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}

// openStats opens the configured stats backend.
func openStats(cfg config.Config) (stats.Store, func(), error) {
	switch cfg.Stats.Backend {
	case config.BackendJSON:
		return stats.NewJSONFile(cfg.Stats.Path), func() {}, nil
	case config.BackendSQLite:
		db, err := stats.OpenSQLite(cfg.Stats.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	default:
		return stats.NewMemory(), func() {}, nil
	}
}

// logProgress logs matrix build progress at debug level every 10%.
func logProgress() feedback.ProgressFunc {
	next := 10
	return func(done, total int) {
		if total == 0 {
			return
		}
		pct := done * 100 / total
		if pct < next && done != total {
			return
		}
		log.Debug().Int("rows", done).Int("total", total).Int("pct", pct).Msg("building feedback matrix")
		for next <= pct {
			next += 10
		}
	}
}
