// internal/head/builder.go
//
// The Builder collects everything that goes inside a page's <head>
// element.  It is scoped to a single render: the web host seeds defaults,
// the page handler sets the title, and the page template emits each slice.
//
// Features
// --------
//   - SetTitle   – single <title> tag (last call wins).
//   - Meta, Link – raw tags, deduplicated.
//   - Render helpers return template.HTML.
package head

import (
	"html/template"
	"strings"
)

// Builder is used by one goroutine per render.
type Builder struct {
	title string
	metas []string
	links []string
	seen  map[string]struct{}
}

func New() *Builder {
	return &Builder{seen: make(map[string]struct{})}
}

// Defaults returns a Builder with the tags every Roster page carries.
func Defaults() *Builder {
	b := New()
	b.Meta(`<meta charset="utf-8">`)
	b.Meta(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	b.Meta(`<meta name="robots" content="noindex">`)
	return b
}

// SetTitle overrides the page <title>.  The last caller wins.
func (b *Builder) SetTitle(t string) { b.title = t }

// Title returns a fully formed <title> tag or an empty string.
func (b *Builder) Title() template.HTML {
	if b.title == "" {
		return ""
	}
	return template.HTML("<title>" + template.HTMLEscapeString(b.title) + "</title>")
}

// Meta and Link take pre-escaped tags.
func (b *Builder) Meta(tag string) { b.add("meta:"+tag, &b.metas, tag) }
func (b *Builder) Link(tag string) { b.add("link:"+tag, &b.links, tag) }

func (b *Builder) add(key string, tgt *[]string, tag string) {
	if _, dup := b.seen[key]; dup {
		return
	}
	b.seen[key] = struct{}{}
	*tgt = append(*tgt, tag)
}

func (b *Builder) Metas() template.HTML { return concat(b.metas) }
func (b *Builder) Links() template.HTML { return concat(b.links) }

// concat joins pre-escaped tags without a separator.
func concat(sl []string) template.HTML {
	return template.HTML(strings.Join(sl, ""))
}
