// Package credentials implements the flat-file user registry.
//
// The backing file is a two-column CSV table with the header "username,password".
// Every operation reloads the whole table and every successful registration
// rewrites it. There is no locking: two processes registering at the same time
// race and the last full write wins.
package credentials

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfrund/salesdash/internal/domain"
	"github.com/spf13/afero"
)

var header = []string{"username", "password"}

// var _ ensures that Store implements the domain.CredentialRepository interface at compile time.
var _ domain.CredentialRepository = (*Store)(nil)

// Store is a credential registry backed by a CSV file on an afero filesystem.
type Store struct {
	fs   afero.Fs
	path string
}

// NewStore creates a Store for the file at path and initializes it.
func NewStore(ctx context.Context, fs afero.Fs, path string) (*Store, error) {
	s := &Store{fs: fs, path: path}
	if err := s.Init(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

// Init creates the backing file with an empty two-column table when it is
// missing or zero-length. An existing non-empty file is left untouched.
func (s *Store) Init(ctx context.Context) error {
	info, err := s.fs.Stat(s.path)
	switch {
	case err == nil && info.Size() > 0:
		return nil
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("stat credential file %s: %w", s.path, err)
	}
	return s.write(nil)
}

// Register trims both fields and appends a new credential.
// It returns RegisterEmpty when either field is blank and RegisterExists when the
// username is already taken; in both cases the file is not modified.
// An error is returned only when the store itself fails.
func (s *Store) Register(ctx context.Context, username, password string) (domain.RegisterResult, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	if username == "" || password == "" {
		return domain.RegisterEmpty, nil
	}

	creds, err := s.load()
	if err != nil {
		return "", err
	}

	for _, c := range creds {
		if c.Username == username {
			return domain.RegisterExists, nil
		}
	}

	creds = append(creds, domain.Credential{Username: username, Password: password})
	if err := s.write(creds); err != nil {
		return "", err
	}
	return domain.RegisterSuccess, nil
}

// Authenticate trims both fields and reports whether a stored credential matches
// both exactly. It never modifies the file.
func (s *Store) Authenticate(ctx context.Context, username, password string) (bool, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	creds, err := s.load()
	if err != nil {
		return false, err
	}

	for _, c := range creds {
		if c.Username == username && c.Password == password {
			return true, nil
		}
	}
	return false, nil
}

// List returns every stored credential in file order.
func (s *Store) List(ctx context.Context) ([]domain.Credential, error) {
	return s.load()
}

// load reads the full table. Any deviation from the two-column schema is
// reported as domain.ErrStoreCorruption.
func (s *Store) load() ([]domain.Credential, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return nil, fmt.Errorf("read credential file %s: %w", s.path, err)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = len(header)

	head, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s has no header", domain.ErrStoreCorruption, s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrStoreCorruption, s.path, err)
	}
	if head[0] != header[0] || head[1] != header[1] {
		return nil, fmt.Errorf("%w: %s has columns %q, want %q", domain.ErrStoreCorruption, s.path, head, header)
	}

	var creds []domain.Credential
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrStoreCorruption, s.path, err)
		}
		creds = append(creds, domain.Credential{Username: rec[0], Password: rec[1]})
	}
	return creds, nil
}

// write replaces the whole file with the header followed by creds.
func (s *Store) write(creds []domain.Credential) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(header)
	for _, c := range creds {
		_ = w.Write([]string{c.Username, c.Password})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("encode credential file: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create credential directory %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(s.fs, s.path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write credential file %s: %w", s.path, err)
	}
	return nil
}
