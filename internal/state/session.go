package state

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrIncompleteSession is returned when saving a session without a user
// name or key.
var ErrIncompleteSession = errors.New("last.fm session needs a username and a key")

// LastfmSession is the linked Last.fm account. There is at most one.
type LastfmSession struct {
	Username   string
	SessionKey string
	LinkedAt   time.Time
}

// GetLastfmSession returns the linked account, or nil when none is linked.
func (m *Manager) GetLastfmSession() (*LastfmSession, error) {
	var (
		s        LastfmSession
		linkedAt int64
	)
	err := m.db.QueryRow(
		`SELECT username, session_key, linked_at FROM lastfm_session WHERE id = 1`,
	).Scan(&s.Username, &s.SessionKey, &linkedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no linked account
	}
	if err != nil {
		return nil, fmt.Errorf("read last.fm session: %w", err)
	}
	s.LinkedAt = time.Unix(linkedAt, 0)
	return &s, nil
}

// SaveLastfmSession links an account, replacing any previous one.
func (m *Manager) SaveLastfmSession(username, sessionKey string) error {
	if username == "" || sessionKey == "" {
		return ErrIncompleteSession
	}
	_, err := m.db.Exec(`
		INSERT INTO lastfm_session (id, username, session_key, linked_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			session_key = excluded.session_key,
			linked_at = excluded.linked_at
	`, username, sessionKey, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("save last.fm session: %w", err)
	}
	return nil
}

// DeleteLastfmSession unlinks the account. Unlinking twice is not an error.
func (m *Manager) DeleteLastfmSession() error {
	if _, err := m.db.Exec(`DELETE FROM lastfm_session`); err != nil {
		return fmt.Errorf("delete last.fm session: %w", err)
	}
	return nil
}
