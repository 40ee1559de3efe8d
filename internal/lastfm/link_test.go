package lastfm

import (
	"context"
	"errors"
	"testing"
	"testing/synctest"
	"time"
)

func TestWaitForAuthCallback_ReceivesToken(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		tokenChan := make(chan string, 1)

		// Send token before timeout
		tokenChan <- "test-token-123"

		token, err := WaitForAuthCallback(t.Context(), tokenChan, AuthTimeout)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "test-token-123" {
			t.Errorf("Token = %q, want %q", token, "test-token-123")
		}
	})
}

func TestWaitForAuthCallback_Timeout(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		tokenChan := make(chan string)

		type result struct {
			token string
			err   error
		}
		done := make(chan result)
		go func() {
			token, err := WaitForAuthCallback(t.Context(), tokenChan, AuthTimeout)
			done <- result{token, err}
		}()

		// Advance time past the 5 minute timeout
		time.Sleep(AuthTimeout + time.Second)
		synctest.Wait()

		res := <-done
		if res.err != nil {
			t.Fatalf("unexpected error: %v", res.err)
		}
		if res.token != "" {
			t.Errorf("expected empty token on timeout, got %q", res.token)
		}
	})
}

func TestWaitForAuthCallback_TokenBeforeTimeout(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		tokenChan := make(chan string)

		type result struct {
			token string
			err   error
		}
		done := make(chan result)
		go func() {
			token, err := WaitForAuthCallback(t.Context(), tokenChan, AuthTimeout)
			done <- result{token, err}
		}()

		// Wait 2 minutes then send token (before 5 min timeout)
		time.Sleep(2 * time.Minute)
		tokenChan <- "delayed-token"

		synctest.Wait()
		res := <-done
		if res.token != "delayed-token" {
			t.Errorf("Token = %q, want %q", res.token, "delayed-token")
		}
	})
}

func TestWaitForAuthCallback_ContextCanceled(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		tokenChan := make(chan string)

		done := make(chan error)
		go func() {
			_, err := WaitForAuthCallback(ctx, tokenChan, AuthTimeout)
			done <- err
		}()

		time.Sleep(time.Minute)
		cancel()

		if err := <-done; !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	})
}

func TestCallbackURL(t *testing.T) {
	if got, want := CallbackURL(), "http://localhost:9847/callback"; got != want {
		t.Errorf("CallbackURL() = %q, want %q", got, want)
	}
}

func TestGetAuthURL(t *testing.T) {
	c := New("key", "secret")
	want := "https://www.last.fm/api/auth/?api_key=key&cb=http%3A%2F%2Flocalhost%3A9847%2Fcallback&token=tok"
	if got := c.GetAuthURL("tok"); got != want {
		t.Errorf("GetAuthURL() = %q, want %q", got, want)
	}
}
