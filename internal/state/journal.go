package state

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/llehouerou/scrobblr/internal/db"
	"github.com/llehouerou/scrobblr/internal/media"
	"github.com/llehouerou/scrobblr/internal/player"
	"github.com/llehouerou/scrobblr/internal/scrobble"
)

// journalLimit is the number of scrobbles kept in the history.
const journalLimit = 5000

// Scrobble is one journaled event.
type Scrobble struct {
	ID         uuid.UUID
	Player     string
	Verb       scrobble.Verb
	State      player.State
	Progress   float64
	Media      media.Info
	ObservedAt time.Time
	RecordedAt time.Time
}

// RecordScrobble appends ev to the history, dropping the oldest entries
// past journalLimit. Recording the same event twice is a no-op.
func (m *Manager) RecordScrobble(ctx context.Context, ev scrobble.Event) error {
	s := ev.Status
	return db.WithTx(ctx, m.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO scrobbles
			(id, player, verb, state, progress, media_type, title, year, season, episode, observed_at, recorded_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, ev.ID.String(), ev.Player, string(ev.Verb), int(s.State), s.Progress,
			string(s.Media.Type), s.Media.Title,
			db.NullInt(s.Media.Year), db.NullInt(s.Media.Season), db.NullInt(s.Media.Episode),
			s.UpdatedAt.Unix(), time.Now().Unix())
		if err != nil {
			return fmt.Errorf("insert scrobble: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			DELETE FROM scrobbles WHERE rowid NOT IN (
				SELECT rowid FROM scrobbles ORDER BY recorded_at DESC, rowid DESC LIMIT ?
			)
		`, journalLimit)
		if err != nil {
			return fmt.Errorf("trim journal: %w", err)
		}
		return nil
	})
}

// RecentScrobbles returns up to n journaled events, newest first.
func (m *Manager) RecentScrobbles(n int) ([]Scrobble, error) {
	rows, err := m.db.Query(`
		SELECT id, player, verb, state, progress, media_type, title, year, season, episode, observed_at, recorded_at
		FROM scrobbles
		ORDER BY recorded_at DESC, rowid DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scrobbles []Scrobble
	for rows.Next() {
		var (
			s                     Scrobble
			id, verb, mediaType   string
			state                 int
			year, season, episode sql.Null[int64]
			observedAt, recorded  int64
		)

		err := rows.Scan(
			&id, &s.Player, &verb, &state, &s.Progress, &mediaType, &s.Media.Title,
			&year, &season, &episode, &observedAt, &recorded,
		)
		if err != nil {
			return nil, err
		}

		s.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse scrobble id %q: %w", id, err)
		}
		s.Verb = scrobble.Verb(verb)
		s.State = player.State(state)
		s.Media.Type = media.Type(mediaType)
		s.Media.Year = int(db.Value(year))
		s.Media.Season = int(db.Value(season))
		s.Media.Episode = int(db.Value(episode))
		s.ObservedAt = time.Unix(observedAt, 0)
		s.RecordedAt = time.Unix(recorded, 0)

		scrobbles = append(scrobbles, s)
	}

	return scrobbles, rows.Err()
}

// Event rebuilds the dispatched event a journal entry was recorded from.
func (s Scrobble) Event() scrobble.Event {
	return scrobble.Event{
		ID:     s.ID,
		Player: s.Player,
		Verb:   s.Verb,
		Status: scrobble.Status{
			State:     s.State,
			Progress:  s.Progress,
			Media:     s.Media,
			UpdatedAt: s.ObservedAt,
		},
	}
}
