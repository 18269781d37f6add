package layout

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Writer writes markup for a component and keeps the first error, so a
// page body can be written without checking every call
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter wraps w
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes trusted markup unchanged
func (w *Writer) Raw(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

// Text writes escaped text
func (w *Writer) Text(s string) {
	w.Raw(templ.EscapeString(s))
}

// Textf formats then escapes
func (w *Writer) Textf(format string, args ...any) {
	w.Text(fmt.Sprintf(format, args...))
}

// Attr writes ` name="value"` with the value escaped
func (w *Writer) Attr(name, value string) {
	w.Raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// Href writes an href attribute, dropping unsafe URL schemes
func (w *Writer) Href(url string) {
	w.Attr("href", string(templ.URL(url)))
}

// Component renders a child component into the same output
func (w *Writer) Component(ctx context.Context, c templ.Component) {
	if w.err != nil {
		return
	}
	w.err = c.Render(ctx, w.w)
}

// Err returns the first error seen
func (w *Writer) Err() error {
	return w.err
}
