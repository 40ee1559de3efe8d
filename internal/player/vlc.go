package player

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const vlcRequestTimeout = 5 * time.Second

// ErrUnauthorized is returned when VLC rejects the web interface password.
var ErrUnauthorized = errors.New("unauthorized")

// VLC polls VLC's Lua web interface (status.json and playlist.json).
type VLC struct {
	baseURL  string
	password string
	client   *http.Client
}

// NewVLC creates a source for the VLC web interface at baseURL,
// e.g. "http://localhost:8080".
func NewVLC(baseURL, password string) *VLC {
	return &VLC{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		password: password,
		client:   &http.Client{Timeout: vlcRequestTimeout},
	}
}

func (v *VLC) Name() string { return "vlc" }

type vlcStatus struct {
	State    string  `json:"state"`
	Time     float64 `json:"time"`
	Length   float64 `json:"length"`
	Position float64 `json:"position"`
}

type vlcPlaylistNode struct {
	Type     string            `json:"type"`
	Current  string            `json:"current"`
	URI      string            `json:"uri"`
	Children []vlcPlaylistNode `json:"children"`
}

// Poll reads the playback status and the current playlist item.
func (v *VLC) Poll(ctx context.Context) (*Status, error) {
	var st vlcStatus
	if err := v.getJSON(ctx, "/requests/status.json", &st); err != nil {
		return nil, err
	}

	status := &Status{}
	switch st.State {
	case "playing":
		status.State = Playing
	case "paused":
		status.State = Paused
	case "stopped":
		return &Status{State: Stopped}, nil
	default:
		return nil, fmt.Errorf("vlc: unknown state %q", st.State)
	}

	var playlist vlcPlaylistNode
	if err := v.getJSON(ctx, "/requests/playlist.json", &playlist); err != nil {
		return nil, err
	}
	current := findCurrent(&playlist)
	if current == nil {
		return nil, nil
	}
	status.Path = FileURIToPath(current.URI)
	if status.Path == "" {
		status.Path = current.URI
	}

	status.Duration = st.Length
	// position is a 0-1 ratio with sub-second precision, time is whole seconds
	if st.Length > 0 && st.Position > 0 {
		status.Position = st.Position * st.Length
	} else {
		status.Position = st.Time
	}

	return status, nil
}

func findCurrent(node *vlcPlaylistNode) *vlcPlaylistNode {
	if node.Type == "leaf" && node.Current == "current" {
		return node
	}
	for i := range node.Children {
		if found := findCurrent(&node.Children[i]); found != nil {
			return found
		}
	}
	return nil
}

func (v *VLC) getJSON(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("vlc: create request: %w", err)
	}
	req.SetBasicAuth("", v.password)

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: vlc: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("vlc: %w", ErrUnauthorized)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("vlc: %s returned %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("vlc: decode %s: %w", path, err)
	}
	return nil
}
