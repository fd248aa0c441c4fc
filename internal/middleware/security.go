// internal/middleware/security.go
//
// Security-header middleware.
//
// Every response carries a self-only policy suited to server-rendered
// forms:
//
//   • Content-Security-Policy   –  self only, forms may post only to self
//   • X-Frame-Options           –  forms cannot be framed
//   • X-Content-Type-Options    –  MIME-sniffing defence
//   • Referrer-Policy           –  drops path and form ids from Referer
//   • Cache-Control             –  rendered forms embed CSRF tokens
//
// Headers are set before next runs; a handler may still override any of
// them.

package middleware

import "net/http"

var securityHeaders = [][2]string{
	{"Content-Security-Policy", "default-src 'self'; object-src 'none'; base-uri 'self'; " +
		"form-action 'self'; frame-ancestors 'none'"},
	{"X-Frame-Options", "DENY"},
	{"X-Content-Type-Options", "nosniff"},
	{"Referrer-Policy", "same-origin"},
	{"Cache-Control", "no-store"},
}

// Security sets the headers above on every response.
func Security(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		for _, kv := range securityHeaders {
			h.Set(kv[0], kv[1])
		}
		next.ServeHTTP(w, r)
	})
}
