// Package auth signs dashboard users in and keeps their bearer token.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rgonek/contentdesk/apiclient"
)

// User is the account behind a token.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Session is the result of a successful login.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// ErrMissingCredentials is returned when email or password is empty.
var ErrMissingCredentials = errors.New("email and password are required")

// Login exchanges credentials for a token. The client should be created
// without a token source.
func Login(ctx context.Context, client *apiclient.Client, email, password string) (Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Session{}, ErrMissingCredentials
	}

	var session Session
	err := client.DoPlain(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &session)
	if err != nil {
		return Session{}, fmt.Errorf("login failed: %w", err)
	}
	if session.Token == "" {
		return Session{}, fmt.Errorf("login failed: %w: response carries no token", apiclient.ErrMalformedResponse)
	}

	return session, nil
}

// Me returns the user the client's token belongs to.
func Me(ctx context.Context, client *apiclient.Client) (User, error) {
	var body struct {
		User User `json:"user"`
	}
	if err := client.DoPlain(ctx, http.MethodGet, "/api/auth/me", nil, &body); err != nil {
		return User{}, fmt.Errorf("failed to fetch current user: %w", err)
	}
	return body.User, nil
}
