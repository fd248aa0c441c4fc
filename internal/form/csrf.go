// internal/form/csrf.go
//
// Roster – Forms subsystem: stateless CSRF tokens.
//
// Context
//   Every rendered form embeds a hidden `csrf_token`.  The token is
//
//      base64url( nonce | unixMicro | HMAC_SHA256(key, nonce+unixMicro) )
//
//   so verification needs only the key: no server-side token store.  Tokens
//   older than MaxAge, or stamped more than a minute in the future, fail.
//
//------------------------------------------------------------------------------

package form

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"time"
)

const (
	nonceBytes = 16
	tokenBytes = nonceBytes + 8 + sha256.Size

	// MaxAge is how long a rendered form stays submittable.
	MaxAge = 2 * time.Hour

	minKeyBytes = 32
)

// ErrShortKey is returned by NewCSRF for keys under 32 bytes.
var ErrShortKey = errors.New("csrf key must be at least 32 bytes")

// CSRF issues and verifies tokens for one key.
type CSRF struct {
	key []byte
	now func() time.Time
}

// NewCSRF returns a CSRF bound to key.  An empty key yields a random
// per-process key, so tokens do not survive a restart.
func NewCSRF(key []byte) (*CSRF, error) {
	if len(key) == 0 {
		key = make([]byte, minKeyBytes)
		if _, err := rand.Read(key); err != nil {
			return nil, err
		}
	}
	if len(key) < minKeyBytes {
		return nil, ErrShortKey
	}
	return &CSRF{key: key, now: time.Now}, nil
}

// Token creates a new token.  Call once per render.
func (c *CSRF) Token() (string, error) {
	nonce := make([]byte, nonceBytes)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	ts := make([]byte, 8)
	binary.BigEndian.PutUint64(ts, uint64(c.now().UnixMicro()))

	buf := make([]byte, 0, tokenBytes)
	buf = append(buf, nonce...)
	buf = append(buf, ts...)
	buf = append(buf, c.sign(nonce, ts)...)

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Verify reports whether tok passes the HMAC and age checks.
func (c *CSRF) Verify(tok string) bool {
	raw, err := base64.RawURLEncoding.DecodeString(tok)
	if err != nil || len(raw) != tokenBytes {
		return false
	}

	nonce := raw[:nonceBytes]
	ts := raw[nonceBytes : nonceBytes+8]
	sig := raw[nonceBytes+8:]

	issued := time.UnixMicro(int64(binary.BigEndian.Uint64(ts)))
	now := c.now()
	if now.Sub(issued) > MaxAge || issued.Sub(now) > time.Minute {
		return false
	}

	return hmac.Equal(sig, c.sign(nonce, ts))
}

func (c *CSRF) sign(nonce, ts []byte) []byte {
	mac := hmac.New(sha256.New, c.key)
	mac.Write(nonce)
	mac.Write(ts)
	return mac.Sum(nil)
}
