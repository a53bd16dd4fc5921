package domain

import "context"

// Credential is a single username/password pair as stored in the credential file.
// Passwords are kept in plaintext.
type Credential struct {
	Username string
	Password string
}

// RegisterResult is the user-facing outcome of a registration attempt.
type RegisterResult string

const (
	RegisterSuccess RegisterResult = "success"
	RegisterExists  RegisterResult = "exists"
	RegisterEmpty   RegisterResult = "empty"
)

// CredentialRepository defines the contract for the credential store.
// It lives in the domain because the session gate and the handlers depend on it,
// not on the file-backed implementation.
type CredentialRepository interface {
	Register(ctx context.Context, username, password string) (RegisterResult, error)
	Authenticate(ctx context.Context, username, password string) (bool, error)
	List(ctx context.Context) ([]Credential, error)
}
