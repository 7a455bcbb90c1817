package main

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	errTokenMissing = errors.New("authorization header missing")
	errTokenFormat  = errors.New("invalid authorization format")
)

// authenticator resolves identities from the users store. Users are
// seeded out of band; this program only ever reads them.
type authenticator struct {
	users        *recordStore
	bearerPrefix string
}

func newAuthenticator(users *recordStore, bearerPrefix string) *authenticator {
	return &authenticator{
		users:        users,
		bearerPrefix: bearerPrefix,
	}
}

// authenticate returns the identity matching a username/password pair,
// or nil, nil when the credentials match no user.
func (a *authenticator) authenticate(username, password string) (*identity, error) {
	matches, err := a.users.findByField("username", username)
	if err != nil {
		return nil, err
	}
	for _, rec := range matches {
		var u userRecord
		if err := decodeRecord(rec, &u); err != nil {
			return nil, err
		}
		if verifyPassword(u.Password, password) {
			return u.identity(), nil
		}
	}
	return nil, nil
}

// resolveToken returns the identity owning a bearer token, or nil, nil
// for an unknown token. Tokens are assumed unique; should a token ever
// be duplicated, the first record in file order wins.
func (a *authenticator) resolveToken(token string) (*identity, error) {
	matches, err := a.users.findByField("access_token", token)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}
	var u userRecord
	if err := decodeRecord(matches[0], &u); err != nil {
		return nil, err
	}
	return u.identity(), nil
}

// bearerToken extracts the token from an Authorization header value.
// Missing header and malformed header are distinct failures so the
// HTTP layer can report them separately.
func (a *authenticator) bearerToken(header string) (string, error) {
	if header == "" {
		return "", errTokenMissing
	}
	if !strings.HasPrefix(header, a.bearerPrefix) {
		return "", errTokenFormat
	}
	token := strings.TrimSpace(header[len(a.bearerPrefix):])
	if token == "" {
		return "", errTokenFormat
	}
	return token, nil
}

// verifyPassword compares a stored password with the presented one.
// Seed files carry plaintext, compared verbatim. A stored value that is
// a bcrypt hash is compared as one instead, so a users file can be
// hardened without a code change.
func verifyPassword(stored, presented string) bool {
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented)) == nil
	}
	return stored == presented
}
