// internal/form/csrf_test.go
//
// Unit-tests for CSRF token issue and verification.

package form

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

func TestCSRF_RoundTrip(t *testing.T) {
	c, err := NewCSRF(nil)
	if err != nil {
		t.Fatalf("NewCSRF error: %v", err)
	}
	tok, err := c.Token()
	if err != nil {
		t.Fatalf("Token error: %v", err)
	}
	if !c.Verify(tok) {
		t.Fatal("fresh token rejected")
	}
	flipped := "A"
	if tok[0] == 'A' {
		flipped = "B"
	}
	if c.Verify(flipped + tok[1:]) {
		t.Fatal("tampered token accepted")
	}
	if c.Verify("") || c.Verify("not base64 !") {
		t.Fatal("garbage accepted")
	}
}

func TestCSRF_KeyBound(t *testing.T) {
	a, _ := NewCSRF(bytes.Repeat([]byte("a"), 32))
	b, _ := NewCSRF(bytes.Repeat([]byte("b"), 32))
	tok, _ := a.Token()
	if b.Verify(tok) {
		t.Fatal("token verified under another key")
	}
}

func TestCSRF_Expiry(t *testing.T) {
	c, _ := NewCSRF(bytes.Repeat([]byte("k"), 32))
	base := time.Now()
	c.now = func() time.Time { return base }
	tok, _ := c.Token()

	c.now = func() time.Time { return base.Add(MaxAge + time.Second) }
	if c.Verify(tok) {
		t.Fatal("expired token accepted")
	}

	c.now = func() time.Time { return base.Add(-2 * time.Minute) }
	if c.Verify(tok) {
		t.Fatal("future token accepted")
	}
}

func TestNewCSRF_ShortKey(t *testing.T) {
	if _, err := NewCSRF([]byte("short")); !errors.Is(err, ErrShortKey) {
		t.Fatalf("NewCSRF error = %v, want ErrShortKey", err)
	}
}
