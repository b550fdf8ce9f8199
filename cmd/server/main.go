package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/vtrpza/todo/internal/assist"
	"github.com/vtrpza/todo/internal/blob"
	"github.com/vtrpza/todo/internal/config"
	"github.com/vtrpza/todo/internal/game"
	"github.com/vtrpza/todo/internal/server"
	"github.com/vtrpza/todo/internal/store"
	"github.com/vtrpza/todo/internal/sweep"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load("todo_config.yml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	var bs blob.Store
	switch cfg.Storage.Driver {
	case "sqlite":
		bs, err = blob.NewSQLiteStore(cfg.Storage.DataDir)
	default:
		bs, err = blob.NewFileStore(cfg.Storage.DataDir)
	}
	if err != nil {
		log.Fatalf("open storage (%s): %v", cfg.Storage.Driver, err)
	}
	defer bs.Close()

	clock := game.RealClock{}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	engine := game.NewEngine(clock, rng, cfg)

	st, err := store.New(context.Background(), store.Options{
		Blob:                   bs,
		Engine:                 engine,
		Clock:                  clock,
		Logger:                 log.Default(),
		DefaultToastDurationMS: cfg.Toasts.DefaultDurationMS,
		StreakResetAfter:       time.Duration(cfg.Streak.ResetAfterHours) * time.Hour,
	})
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer st.Close()

	var ai assist.Client
	if cfg.Assist.Enabled {
		ai = assist.NewOpenAIClient(
			cfg.Assist.BaseURL,
			os.Getenv("OPENAI_API_KEY"),
			cfg.Assist.Model,
			time.Duration(cfg.Assist.TimeoutSeconds)*time.Second,
			log.Default(),
		)
	}

	sweeper, err := sweep.New(st, time.Local, sweep.Intervals{
		Streak:    cfg.Sweeps.StreakInterval(),
		Challenge: cfg.Sweeps.ChallengeInterval(),
		Toast:     cfg.Sweeps.ToastInterval(),
	}, log.Default())
	if err != nil {
		log.Fatalf("build sweeper: %v", err)
	}
	sweeper.Start()
	defer sweeper.Stop()

	handler, err := server.NewHandler(server.Options{
		Store:  st,
		Assist: ai,
		Config: cfg,
		Logger: log.Default(),
	})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	log.Printf("listening on http://localhost%s", cfg.Server.Addr)
	log.Fatal(http.ListenAndServe(cfg.Server.Addr, handler))
}
