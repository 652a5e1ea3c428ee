// Package components holds the markup fragments shared by the pages.
package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// HTML writes markup and keeps the first error, so a component can emit a
// sequence of writes and check once at the end.
type HTML struct {
	w   io.Writer
	err error
}

// NewHTML wraps w.
func NewHTML(w io.Writer) *HTML {
	return &HTML{w: w}
}

// Raw writes trusted markup.
func (h *HTML) Raw(parts ...string) {
	for _, part := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, part)
	}
}

// Text writes escaped text.
func (h *HTML) Text(s string) {
	h.Raw(templ.EscapeString(s))
}

// Attr writes ` name="value"` with the value escaped.
func (h *HTML) Attr(name, value string) {
	h.Raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// Flag writes a boolean attribute when on is set.
func (h *HTML) Flag(name string, on bool) {
	if on {
		h.Raw(" ", name)
	}
}

// Element writes <tag attrs>text</tag>, escaping the text.
func (h *HTML) Element(tag, class, text string) {
	h.Raw("<", tag)
	if class != "" {
		h.Attr("class", class)
	}
	h.Raw(">")
	h.Text(text)
	h.Raw("</", tag, ">")
}

// Link writes an anchor with escaped href and text.
func (h *HTML) Link(href, class, text string) {
	h.Raw("<a")
	h.Attr("href", href)
	if class != "" {
		h.Attr("class", class)
	}
	h.Raw(">")
	h.Text(text)
	h.Raw("</a>")
}

// Render writes a nested component.
func (h *HTML) Render(ctx context.Context, component templ.Component) {
	if h.err != nil || component == nil {
		return
	}
	h.err = component.Render(ctx, h.w)
}

// Err returns the first write error.
func (h *HTML) Err() error {
	return h.err
}

// Func builds a component from a function writing through HTML.
func Func(fn func(ctx context.Context, h *HTML)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := NewHTML(w)
		fn(ctx, h)
		return h.Err()
	})
}
