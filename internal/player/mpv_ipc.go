package player

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"time"
)

// ipcCommand is the JSON structure sent to mpv's IPC socket.
type ipcCommand struct {
	Command   []any `json:"command"`
	RequestID int   `json:"request_id"`
}

// ipcResponse is the JSON structure received from mpv's IPC socket.
// Asynchronous events carry Event instead of RequestID.
type ipcResponse struct {
	Data      any    `json:"data"`
	Error     string `json:"error"`
	RequestID int    `json:"request_id"`
	Event     string `json:"event"`
}

const (
	ipcReadDeadline = 1 * time.Second
	ipcMaxLine      = 64 * 1024
)

// errPropertyUnavailable is mpv's answer for properties that have no value
// in the current state (e.g. time-pos while idle).
var errPropertyUnavailable = errors.New("property unavailable")

// ipcConn runs request/response exchanges over one mpv socket connection.
type ipcConn struct {
	conn    net.Conn
	scanner *bufio.Scanner
	nextID  int
}

func dialIPC(ctx context.Context, socketPath string) (*ipcConn, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("%w: connect: %w", ErrUnavailable, err)
	}
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 4096), ipcMaxLine)
	return &ipcConn{conn: conn, scanner: scanner}, nil
}

func (c *ipcConn) Close() error {
	return c.conn.Close()
}

// command sends one command and waits for its reply, skipping any events
// mpv interleaves on the socket.
func (c *ipcConn) command(ctx context.Context, args ...any) (any, error) {
	c.nextID++
	id := c.nextID

	payload, err := json.Marshal(ipcCommand{Command: args, RequestID: id})
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	deadline := time.Now().Add(ipcReadDeadline)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.conn.SetDeadline(deadline); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}

	// mpv requires newline-delimited JSON
	if _, err := c.conn.Write(append(payload, '\n')); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	for {
		if !c.scanner.Scan() {
			if err := c.scanner.Err(); err != nil {
				return nil, fmt.Errorf("read: %w", err)
			}
			return nil, fmt.Errorf("read: %w", io.ErrUnexpectedEOF)
		}
		line := c.scanner.Bytes()

		var resp ipcResponse
		if err := json.Unmarshal(line, &resp); err != nil {
			continue // Skip unparseable lines
		}
		if resp.Event != "" || resp.RequestID != id {
			continue
		}

		switch resp.Error {
		case "", "success":
			return resp.Data, nil
		case "property unavailable":
			return nil, errPropertyUnavailable
		default:
			return nil, fmt.Errorf("mpv error: %s", resp.Error)
		}
	}
}

func (c *ipcConn) getProperty(ctx context.Context, name string) (any, error) {
	v, err := c.command(ctx, "get_property", name)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", name, err)
	}
	return v, nil
}

func (c *ipcConn) getString(ctx context.Context, name string) (string, error) {
	v, err := c.getProperty(ctx, name)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("get %s: unexpected type %T", name, v)
	}
	return s, nil
}

func (c *ipcConn) getFloat(ctx context.Context, name string) (float64, error) {
	v, err := c.getProperty(ctx, name)
	if err != nil {
		return 0, err
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("get %s: unexpected type %T", name, v)
	}
	return f, nil
}

func (c *ipcConn) getBool(ctx context.Context, name string) (bool, error) {
	v, err := c.getProperty(ctx, name)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("get %s: unexpected type %T", name, v)
	}
	return b, nil
}
