package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
)

// TemplNode embeds a templ component in a gomponents tree. gomponents does not
// pass a context while rendering, so the component renders with a background one.
func TemplNode(component templ.Component) g.Node {
	return g.NodeFunc(func(w io.Writer) error {
		return component.Render(context.Background(), w)
	})
}
