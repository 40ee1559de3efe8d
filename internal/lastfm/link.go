package lastfm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// AuthTimeout bounds how long Link waits for the user to authorize.
const AuthTimeout = 5 * time.Minute

// ErrAuthTimeout is returned when the authorization callback never arrives.
var ErrAuthTimeout = errors.New("timed out waiting for authorization")

// SessionStore persists the session obtained by Link.
type SessionStore interface {
	SaveLastfmSession(username, sessionKey string) error
}

// WaitForAuthCallback blocks until the callback server delivers a token,
// the timeout elapses or ctx is done. A timeout yields an empty token.
func WaitForAuthCallback(ctx context.Context, tokenChan <-chan string, timeout time.Duration) (string, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case token := <-tokenChan:
		return token, nil
	case <-timer.C:
		return "", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Link runs the desktop authorization flow: it requests a token, hands the
// authorization URL to prompt, waits for the local callback and stores the
// resulting session. It returns the linked username.
func Link(ctx context.Context, client *Client, store SessionStore, prompt func(authURL string)) (string, error) {
	server, err := listenCallback(fmt.Sprintf("localhost:%d", CallbackPort))
	if err != nil {
		return "", err
	}
	defer server.Close()

	token, err := client.GetToken()
	if err != nil {
		return "", err
	}
	prompt(client.GetAuthURL(token))

	received, err := WaitForAuthCallback(ctx, server.Tokens(), AuthTimeout)
	if err != nil {
		return "", err
	}
	if received == "" {
		return "", ErrAuthTimeout
	}

	username, sessionKey, err := client.GetSession(received)
	if err != nil {
		return "", err
	}
	if err := store.SaveLastfmSession(username, sessionKey); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	client.SetSessionKey(sessionKey)
	return username, nil
}
