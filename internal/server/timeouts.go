// internal/server/timeouts.go
//
// HTTP server with configured timeouts.
//
//   • ReadTimeout   – abort slow-loris headers
//   • WriteTimeout  – cap total response time
//   • IdleTimeout   – close keep-alives on idle clients
//
// The values come from the `http` block of conf/global.yaml.

package server

import (
	"net/http"

	"github.com/yanizio/roster/internal/config"
)

// New constructs an *http.Server from the HTTP config block.
func New(cfg config.HTTP, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}
