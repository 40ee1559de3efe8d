package lastfm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"time"
)

// CallbackPort is where the local authorization callback listens.
const CallbackPort = 9847

// CallbackURL is where Last.fm redirects after authorization.
func CallbackURL() string {
	return fmt.Sprintf("http://localhost:%d/callback", CallbackPort)
}

const callbackPage = `<!DOCTYPE html>
<html>
<head><title>Scrobblr - Last.fm</title></head>
<body style="font-family: sans-serif; text-align: center; padding: 50px;">
<h1>%s</h1>
<p>%s</p>
</body>
</html>`

// callbackServer receives the token Last.fm appends to the callback URL.
type callbackServer struct {
	srv    *http.Server
	tokens chan string
	done   chan struct{}
}

func listenCallback(addr string) (*callbackServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen for auth callback: %w", err)
	}

	s := &callbackServer{
		tokens: make(chan string, 1),
		done:   make(chan struct{}),
	}
	mux := http.NewServeMux()
	mux.Handle("/callback", callbackHandler(s.tokens))
	s.srv = &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		defer close(s.done)
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return
		}
	}()
	return s, nil
}

// Tokens delivers the first authorized token.
func (s *callbackServer) Tokens() <-chan string {
	return s.tokens
}

func (s *callbackServer) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = s.srv.Shutdown(ctx)
	<-s.done
}

// callbackHandler answers the browser and forwards the token. Requests
// without a token are rejected and do not end the wait.
func callbackHandler(tokens chan<- string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		token := r.URL.Query().Get("token")
		if token == "" {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, callbackPage, "Authorization failed", "Last.fm sent no token. Run the command again.")
			return
		}

		fmt.Fprintf(w, callbackPage, "Account linked", "You can close this window and return to scrobblr.")
		select {
		case tokens <- token:
		default:
		}
	})
}

// OpenBrowser opens url with the desktop's default browser.
func OpenBrowser(url string) error {
	var name string
	var args []string
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd":
		name, args = "xdg-open", []string{url}
	case "darwin":
		name, args = "open", []string{url}
	case "windows":
		name, args = "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return fmt.Errorf("open browser: unsupported platform %s", runtime.GOOS)
	}
	return exec.Command(name, args...).Start()
}
