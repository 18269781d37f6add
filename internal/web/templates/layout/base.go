package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// PageData holds the data every page needs
type PageData struct {
	Title string
}

const style = `<style>
body { font-family: sans-serif; margin: 2em; }
table.rooms td, table.rooms th { padding: 0.3em 0.8em; text-align: left; }
table.board { border-collapse: collapse; }
table.board td { width: 1.6em; height: 1.6em; border: 1px solid #999; text-align: center; font-size: 0.8em; }
td.TW { background: #e57373; } td.DW { background: #f8bbd0; }
td.TL { background: #64b5f6; } td.DL { background: #bbdefb; }
td.STAR { background: #f8bbd0; } td.tile { background: #ffe082; font-weight: bold; }
</style>`

// Base wraps content in the page shell. Pages refresh themselves every
// ten seconds.
func Base(data PageData, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := NewWriter(out)
		w.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta http-equiv="refresh" content="10"><title>`)
		w.Text(data.Title + " - Word Duel")
		w.Raw(`</title>` + style + `</head><body><h1><a href="/">Word Duel</a></h1>`)
		w.Component(ctx, content)
		w.Raw(`</body></html>`)
		return w.Err()
	})
}
