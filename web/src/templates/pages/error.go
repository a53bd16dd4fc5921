package pages

import (
	"net/http"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Error renders a failed request.
func Error(status int, message string) g.Node {
	return h.Section(h.Class("card narrow"),
		h.H1(g.Textf("%d %s", status, http.StatusText(status))),
		h.P(g.Text(message)),
		h.A(h.Href("/"), g.Text("Back")),
	)
}
