// internal/form/renderer.go
//
// Roster – Forms subsystem: HTML renderer.
//
// Context
//   The web host shows each open form as a plain HTML page.  RenderForm walks
//   the definition in order and writes one control per field, carrying the
//   form's live state: text inputs get their current value, selects mark the
//   current index.  Save, Clear, and Close are submit buttons sharing the
//   name “intent”, so the controller receives exactly the button text.
//
// Style
//   Output is deliberately plain, no framework classes.  Each input gets
//   id="fld-{name}" and is wrapped in <div class="form-field">.
//
//------------------------------------------------------------------------------

package form

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strconv"
)

// State is what the renderer reads from an open form.
type State interface {
	Value(name string) string
	Choices(name string) (labels []string, index int, ok bool)
}

// RenderOptions bundles the per-request parts of the page.
type RenderOptions struct {
	Action    string // POST target
	CSRFToken string // hidden csrf_token value
	Error     string // banner text, empty for none
	Notice    string // status text, empty for none
}

// Intent button labels, in display order.
var intentButtons = []string{"Save", "Clear", "Close"}

// RenderForm returns the markup for def filled from st.
func RenderForm(def *FormDef, st State, opts RenderOptions) (template.HTML, error) {
	var buf bytes.Buffer

	buf.WriteString(`<form class="roster-form" method="post" action="` + html.EscapeString(opts.Action) + `">` + "\n")
	if def.Title != "" {
		buf.WriteString(`<h1>` + html.EscapeString(def.Title) + `</h1>` + "\n")
	}
	if opts.Error != "" {
		buf.WriteString(`<div class="error" role="alert">` + html.EscapeString(opts.Error) + `</div>` + "\n")
	}
	if opts.Notice != "" {
		buf.WriteString(`<div class="notice" role="status">` + html.EscapeString(opts.Notice) + `</div>` + "\n")
	}

	for i := range def.Fields {
		if err := writeField(&buf, &def.Fields[i], st); err != nil {
			return "", err
		}
	}

	buf.WriteString(fmt.Sprintf(`<input type="hidden" name="csrf_token" value="%s">`+"\n", html.EscapeString(opts.CSRFToken)))

	buf.WriteString(`<div class="form-actions">` + "\n")
	for _, b := range intentButtons {
		buf.WriteString(`<button type="submit" name="intent" value="` + b + `">` + b + `</button>` + "\n")
	}
	buf.WriteString(`</div>` + "\n")

	buf.WriteString(`</form>`)
	return template.HTML(buf.String()), nil
}

// writeField emits one labelled control.
func writeField(buf *bytes.Buffer, f *FieldDef, st State) error {
	name := html.EscapeString(f.Name)
	idAttr := `id="fld-` + name + `"`
	nameAttr := `name="` + name + `"`

	buf.WriteString(`<div class="form-field">` + "\n")
	buf.WriteString(`<label for="fld-` + name + `">` + html.EscapeString(f.Label) + `</label>` + "\n")

	switch f.Type {
	case TypeText, TypeNumber:
		// Numbers stay type="text" so the server, not the browser, decides
		// what a bad capacity looks like.
		buf.WriteString(`<input ` + idAttr + ` ` + nameAttr + ` type="text"`)
		if f.Type == TypeNumber {
			buf.WriteString(` inputmode="numeric"`)
		}
		if f.Placeholder != "" {
			buf.WriteString(` placeholder="` + html.EscapeString(f.Placeholder) + `"`)
		}
		if f.MaxLength > 0 {
			buf.WriteString(` maxlength="` + strconv.Itoa(f.MaxLength) + `"`)
		}
		if v := st.Value(f.Name); v != "" {
			buf.WriteString(` value="` + html.EscapeString(v) + `"`)
		}
		buf.WriteString(`>` + "\n")

	case TypeSelect:
		labels, index, ok := st.Choices(f.Name)
		if !ok {
			return fmt.Errorf("RenderForm: no selection state for field %q", f.Name)
		}
		buf.WriteString(`<select ` + idAttr + ` ` + nameAttr + `>` + "\n")
		if len(labels) == 0 {
			buf.WriteString(`<option value="" selected>(none available)</option>` + "\n")
		}
		for i, l := range labels {
			sel := ""
			if i == index {
				sel = ` selected`
			}
			buf.WriteString(`<option value="` + strconv.Itoa(i) + `"` + sel + `>` + html.EscapeString(l) + `</option>` + "\n")
		}
		buf.WriteString(`</select>` + "\n")

	default:
		return fmt.Errorf("writeField: unsupported field type %q in form field %s", f.Type, f.Name)
	}

	buf.WriteString(`</div>` + "\n")
	return nil
}
