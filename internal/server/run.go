// internal/server/run.go
//
// Serve-until-cancelled lifecycle.  The listener and the shutdown watcher
// run in one errgroup: whichever finishes first decides the result, and a
// cancelled context drains in-flight requests for up to ShutdownGrace.

package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ShutdownGrace bounds how long Run waits for open requests on shutdown.
const ShutdownGrace = 10 * time.Second

// Run serves srv until ctx is cancelled or the listener fails.  A clean
// shutdown returns nil.
func Run(ctx context.Context, srv *http.Server, log *zap.SugaredLogger) error {
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}
	return serve(ctx, srv, ln, log)
}

func serve(ctx context.Context, srv *http.Server, ln net.Listener, log *zap.SugaredLogger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infow("listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Infow("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), ShutdownGrace)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	return g.Wait()
}
