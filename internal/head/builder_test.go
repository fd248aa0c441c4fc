// internal/head/builder_test.go

package head

import (
	"strings"
	"testing"
)

func TestBuilder_TitleEscapedAndLastWins(t *testing.T) {
	b := New()
	if b.Title() != "" {
		t.Fatal("empty builder rendered a title")
	}
	b.SetTitle("first")
	b.SetTitle("Classroom <new>")
	if got := string(b.Title()); got != "<title>Classroom &lt;new&gt;</title>" {
		t.Fatalf("Title = %q", got)
	}
}

func TestBuilder_Dedup(t *testing.T) {
	b := Defaults()
	b.Meta(`<meta charset="utf-8">`)
	b.Link(`<link rel="icon" href="/favicon.ico">`)
	b.Link(`<link rel="icon" href="/favicon.ico">`)

	if n := strings.Count(string(b.Metas()), `charset="utf-8"`); n != 1 {
		t.Fatalf("charset emitted %d times", n)
	}
	if n := strings.Count(string(b.Links()), "<link"); n != 1 {
		t.Fatalf("link emitted %d times", n)
	}
}
