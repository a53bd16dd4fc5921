package pages

import (
	"github.com/nfrund/salesdash/internal/view/dto/auth"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Register renders the account creation form.
func Register(data auth.RegisterData) g.Node {
	return h.Section(h.Class("card narrow"),
		h.H1(g.Text("📝 Create Account")),
		credentialsForm("/register", "Register", data.Username),
	)
}

// Login renders the sign-in form.
func Login(data auth.LoginData) g.Node {
	return h.Section(h.Class("card narrow"),
		h.H1(g.Text("🔐 Login")),
		credentialsForm("/login", "Login", data.Username),
	)
}

func credentialsForm(action, submit, username string) g.Node {
	return h.Form(h.Method("post"), h.Action(action),
		h.Label(h.For("username"), g.Text("Username")),
		h.Input(h.Type("text"), h.ID("username"), h.Name("username"), h.Value(username), h.AutoComplete("username")),
		h.Label(h.For("password"), g.Text("Password")),
		h.Input(h.Type("password"), h.ID("password"), h.Name("password")),
		h.Button(h.Type("submit"), g.Text(submit)),
	)
}
