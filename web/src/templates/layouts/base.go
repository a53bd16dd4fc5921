package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/nfrund/salesdash/internal/gate"
	"github.com/nfrund/salesdash/internal/view"
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// Base wraps page content with the document head, the navigation sidebar for
// the current session state, flash messages and the footer.
func Base(title string, state gate.State, flashes view.FlashData, content g.Node) g.Node {
	return c.HTML5(c.HTML5Props{
		Title:    CalculateTitle(title),
		Language: "en",
		Head: []g.Node{
			h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
			h.Link(h.Rel("stylesheet"), h.Href("/static/css/app.css")),
			h.Script(h.Src(htmxSrc), g.Attr("defer")),
		},
		Body: []g.Node{
			h.Div(h.Class("layout"),
				Navigation(state, title),
				h.Main(h.Class("content"),
					Flashes(flashes),
					content,
					view.TemplNode(Footer()),
				),
			),
		},
	})
}

// Navigation renders the sidebar with the views reachable from state.
func Navigation(state gate.State, active string) g.Node {
	return h.Nav(h.Class("sidebar"),
		h.H2(g.Text("Navigation")),
		h.Ul(
			g.Map(state.Views(), func(v gate.View) g.Node {
				return h.Li(navItem(v, string(v) == active))
			}),
		),
		g.If(state.LoggedIn, h.P(h.Class("muted"), g.Textf("Signed in as %s", state.Username))),
	)
}

// navItem links to a view. Logout changes session state, so it is a POST form.
func navItem(v gate.View, active bool) g.Node {
	if v == gate.ViewLogout {
		return h.Form(h.Method("post"), h.Action(v.Path()), h.Class("nav-form"),
			h.Button(h.Type("submit"), h.Class("nav-link"), g.Text(string(v))),
		)
	}
	return h.A(h.Href(v.Path()), c.Classes{"active": active}, g.Text(string(v)))
}

// Flashes renders pending success, warning and error messages.
func Flashes(f view.FlashData) g.Node {
	if f.Empty() {
		return nil
	}
	return h.Div(h.Class("flashes"),
		g.Map(f.Success, func(m string) g.Node { return h.Div(h.Class("alert success"), g.Text(m)) }),
		g.Map(f.Warning, func(m string) g.Node { return h.Div(h.Class("alert warning"), g.Text(m)) }),
		g.Map(f.Error, func(m string) g.Node { return h.Div(h.Class("alert error"), g.Text(m)) }),
	)
}

// Footer is written directly against the templ runtime.
func Footer() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<footer class="footer"><hr><b>`+
			templ.EscapeString("Academic Business Analytics Project")+
			`</b><br>`+
			templ.EscapeString("Go • Echo • Machine Learning")+
			`</footer>`)
		return err
	})
}
