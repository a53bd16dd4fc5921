package view

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

func TestTemplNode(t *testing.T) {
	component := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<b>"+templ.EscapeString("a & b")+"</b>")
		return err
	})

	var buf bytes.Buffer
	require.NoError(t, h.Div(g.Text("before"), TemplNode(component)).Render(&buf))
	assert.Equal(t, "<div>before<b>a &amp; b</b></div>", buf.String())
}
