package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/joho/godotenv"

	"jobpilot-client/internal/actions"
	"jobpilot-client/internal/api"
	"jobpilot-client/internal/cache"
	"jobpilot-client/internal/config"
	"jobpilot-client/internal/listing"
	"jobpilot-client/internal/notify"
	"jobpilot-client/internal/session"
	"jobpilot-client/internal/ui"
)

func main() {
	// Optional .env next to the binary; real env still wins.
	_ = godotenv.Load()

	dataDir := os.Getenv("JOBPILOT_DATA_DIR")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatal(err)
		}
		dataDir = filepath.Join(home, ".jobpilot")
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One client per data dir: a second instance would race the sqlite cache
	// and the session token slot.
	lock := flock.New(filepath.Join(dataDir, "jobpilot.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatal(err)
	}
	if !locked {
		log.Fatalf("another jobpilot instance is already using %s", dataDir)
	}
	defer func() { _ = lock.Unlock() }()

	cfgPath, err := config.EnsureUserConfig(dataDir)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed (%s): %v", cfgPath, err)
	}
	cfg = config.ApplyEnv(cfg)

	cfg, res := config.NormalizeAndValidate(cfg)
	for _, w := range res.Warnings {
		log.Printf("[config] warning: %s", w)
	}
	if !res.OK() {
		log.Fatalf("config invalid:\n- %s", strings.Join(res.Errors, "\n- "))
	}

	local, err := cache.Open(filepath.Join(dataDir, "jobpilot.db"))
	if err != nil {
		log.Fatal(err)
	}
	defer local.Close()

	hub := notify.NewHub()
	sess := session.New(session.KeyringTokens{})
	client := api.New(api.Options{
		Host:           cfg.Backend.Host,
		Timeout:        time.Duration(cfg.Backend.TimeoutSeconds) * time.Second,
		RequestsPerSec: cfg.Backend.RequestsPerSec,
		Tokens:         sess,
	})
	sess.Bind(client)

	jobs := listing.NewController(client, hub, cfg.Listing.PageSize)
	acts := actions.NewDispatcher(client, hub)

	log.Printf("[main] backend %s (data=%s)", client.BaseURL(), dataDir)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	shell := ui.NewShell(ui.Deps{
		Config:     cfg,
		ConfigPath: cfgPath,
		Session:    sess,
		API:        client,
		Jobs:       jobs,
		Actions:    acts,
		Hub:        hub,
		Local:      local,
	})
	if err := shell.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal(err)
	}
}
