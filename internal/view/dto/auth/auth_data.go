package auth

// LoginData is a View Model (DTO) used specifically for the login template.
// It carries the username of a failed attempt so the form can be pre-filled.
type LoginData struct {
	Username string
}

// RegisterData is used to transfer a pre-filled username to the registration template.
type RegisterData struct {
	Username string
}
