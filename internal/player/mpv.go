package player

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
)

// MPV polls an mpv instance through its JSON IPC socket
// (started with --input-ipc-server=<path>).
type MPV struct {
	socketPath string
}

// NewMPV creates a source for the mpv IPC socket at socketPath.
func NewMPV(socketPath string) *MPV {
	return &MPV{socketPath: socketPath}
}

func (m *MPV) Name() string { return "mpv" }

// Poll queries mpv for the loaded file and playback position.
// An idle mpv (nothing loaded) yields a nil status.
func (m *MPV) Poll(ctx context.Context) (*Status, error) {
	c, err := dialIPC(ctx, m.socketPath)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	idle, err := c.getBool(ctx, "idle-active")
	if err != nil {
		return nil, err
	}
	if idle {
		return nil, nil
	}

	path, err := c.getString(ctx, "path")
	if errors.Is(err, errPropertyUnavailable) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	path, err = m.resolvePath(ctx, c, path)
	if err != nil {
		return nil, err
	}

	status := &Status{State: Playing, Path: path}

	paused, err := c.getBool(ctx, "pause")
	if err != nil {
		return nil, err
	}
	if paused {
		status.State = Paused
	}

	// Position and duration are briefly unavailable while a file loads;
	// leaving them zero makes the snapshot untrackable for this cycle.
	if status.Position, err = c.getFloat(ctx, "time-pos"); err != nil && !errors.Is(err, errPropertyUnavailable) {
		return nil, err
	}
	if status.Duration, err = c.getFloat(ctx, "duration"); err != nil && !errors.Is(err, errPropertyUnavailable) {
		return nil, err
	}

	return status, nil
}

// resolvePath turns mpv's "path" property into an absolute local path.
// mpv reports paths as given on its command line, so relative paths are
// joined with its working directory.
func (m *MPV) resolvePath(ctx context.Context, c *ipcConn, path string) (string, error) {
	if strings.HasPrefix(path, "file://") {
		return FileURIToPath(path), nil
	}
	if strings.Contains(path, "://") || filepath.IsAbs(path) {
		return path, nil
	}
	wd, err := c.getString(ctx, "working-directory")
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, path), nil
}
