// cmd/web/main.go
//
// Roster – HTTP entry point.
//
// Start-up
// --------
//
//  1. Console logger for boot, before the log directory is known.
//
//  2. Load conf/global.yaml (+ conf/.env, + ROSTER_* overrides).
//
//  3. Start the rotating file logger (tees to console in a TTY).
//
//  4. Register form definitions: embedded defaults, then conf overrides.
//
//  5. Build the data container and create the seed classrooms.
//
//  6. Serve and evict abandoned forms until SIGINT/SIGTERM, then drain
//     open requests.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"encoding/base64"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yanizio/roster/internal/config"
	"github.com/yanizio/roster/internal/datacontainer"
	"github.com/yanizio/roster/internal/form"
	"github.com/yanizio/roster/internal/logger"
	"github.com/yanizio/roster/internal/server"
	"github.com/yanizio/roster/internal/web"
)

const evictInterval = time.Minute

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func main() {
	boot := logger.Console()
	zap.ReplaceGlobals(boot.Desugar())

	//
	// ── 1.  Config ──────────────────────────────────────────────────────
	//
	cfg, err := config.Load()
	if err != nil {
		boot.Fatalw("load config", "err", err)
	}

	log, err := logger.New(cfg.LogDir(), cfg.Log.Tee || runningInTTY())
	if err != nil {
		boot.Fatalw("start logger", "err", err)
	}
	defer log.Sync()

	//
	// ── 2.  Form definitions ────────────────────────────────────────────
	//
	if err := form.RegisterDefaults(); err != nil {
		log.Fatalw("register form definitions", "err", err)
	}
	if err := form.RegisterDir(cfg.FormsDir()); err != nil {
		log.Fatalw("register form overrides", "dir", cfg.FormsDir(), "err", err)
	}

	//
	// ── 3.  Data container + seed ───────────────────────────────────────
	//
	dc := datacontainer.New()
	seeds := make([]datacontainer.ClassroomSeed, 0, len(cfg.Seed.Classrooms))
	for _, s := range cfg.Seed.Classrooms {
		seeds = append(seeds, datacontainer.ClassroomSeed{
			RoomNumber: s.RoomNumber,
			Type:       s.Type,
			Capacity:   s.Capacity,
		})
	}
	if err := dc.Seed(seeds); err != nil {
		log.Fatalw("seed classrooms", "err", err)
	}
	log.Infow("classrooms seeded", "count", dc.Classrooms.Len())

	//
	// ── 4.  CSRF key ────────────────────────────────────────────────────
	//
	var key []byte
	if cfg.CSRF.Key != "" {
		if key, err = base64.RawURLEncoding.DecodeString(cfg.CSRF.Key); err != nil {
			log.Fatalw("decode csrf key", "err", err)
		}
	} else {
		log.Warnw("csrf.key not set; tokens will not survive a restart")
	}
	csrf, err := form.NewCSRF(key)
	if err != nil {
		log.Fatalw("csrf", "err", err)
	}

	//
	// ── 5.  Serve ───────────────────────────────────────────────────────
	//
	site := web.New(dc, csrf, log, web.Options{
		MaxBodyBytes: cfg.Forms.MaxBodyBytes,
		IdleTTL:      cfg.Forms.IdleTTL,
		MaxOpen:      cfg.Forms.MaxOpen,
	})
	srv := server.New(cfg.HTTP, site.Handler())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return server.Run(gctx, srv, log) })
	g.Go(func() error { return site.RunEvictor(gctx, evictInterval) })

	if err := g.Wait(); err != nil {
		log.Errorw("http server", "err", err)
		os.Exit(1)
	}
	log.Infow("stopped")
}
