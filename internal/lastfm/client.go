package lastfm

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/shkh/lastfm-go/lastfm"
)

// ErrNotAuthenticated is returned when calling the API without a session.
var ErrNotAuthenticated = errors.New("not authenticated")

const authURL = "https://www.last.fm/api/auth/"

// Client is a Last.fm API client holding at most one user session.
type Client struct {
	api        *lastfm.Api
	apiKey     string
	sessionKey string
}

// New creates a client for the given API account.
func New(apiKey, apiSecret string) *Client {
	return &Client{api: lastfm.New(apiKey, apiSecret), apiKey: apiKey}
}

// SetSessionKey makes the client act for a previously linked user.
func (c *Client) SetSessionKey(key string) {
	c.sessionKey = key
	c.api.SetSession(key)
}

// IsAuthenticated reports whether a session key is set.
func (c *Client) IsAuthenticated() bool {
	return c.sessionKey != ""
}

// GetToken requests an unauthorized token for the desktop auth flow.
func (c *Client) GetToken() (string, error) {
	token, err := c.api.GetToken()
	if err != nil {
		return "", fmt.Errorf("get token: %w", err)
	}
	return token, nil
}

// GetAuthURL is the page where the user authorizes token. Last.fm then
// redirects to CallbackURL.
func (c *Client) GetAuthURL(token string) string {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("token", token)
	q.Set("cb", CallbackURL())
	return authURL + "?" + q.Encode()
}

// GetSession exchanges an authorized token for a session and returns the
// user name that goes with it.
func (c *Client) GetSession(token string) (username, sessionKey string, err error) {
	if err := c.api.LoginWithToken(token); err != nil {
		return "", "", fmt.Errorf("get session: %w", err)
	}
	c.sessionKey = c.api.GetSessionKey()

	info, err := c.api.User.GetInfo(nil)
	if err != nil {
		// The session works without the name.
		return "unknown", c.sessionKey, nil //nolint:nilerr // name is cosmetic
	}
	return info.Name, c.sessionKey, nil
}

// UpdateNowPlaying shows track as currently playing on the user's profile.
func (c *Client) UpdateNowPlaying(track ScrobbleTrack) error {
	if !c.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	if _, err := c.api.Track.UpdateNowPlaying(track.params()); err != nil {
		return fmt.Errorf("update now playing: %w", err)
	}
	return nil
}

// Scrobble adds track to the user's history at track.Timestamp.
func (c *Client) Scrobble(track ScrobbleTrack) error {
	if !c.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	p := track.params()
	p["timestamp"] = track.Timestamp.Unix()
	if _, err := c.api.Track.Scrobble(p); err != nil {
		return fmt.Errorf("scrobble: %w", err)
	}
	return nil
}

var _ Scrobbler = (*Client)(nil)
