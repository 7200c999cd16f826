package apiclient

import (
	"context"
	"errors"
)

// ErrNoToken is returned by token sources that hold no token.
var ErrNoToken = errors.New("no auth token available")

// TokenSource supplies the bearer token attached to authorized requests.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed token.
type StaticToken string

// Token returns the token or ErrNoToken when it is empty.
func (t StaticToken) Token(context.Context) (string, error) {
	if t == "" {
		return "", ErrNoToken
	}
	return string(t), nil
}
