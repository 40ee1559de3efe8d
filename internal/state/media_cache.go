package state

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/llehouerou/scrobblr/internal/db"
	"github.com/llehouerou/scrobblr/internal/media"
)

// GetCachedMedia returns the cached resolution of path. found is false
// when path was never cached; a found entry with a nil info is a file the
// resolvers did not recognize.
func (m *Manager) GetCachedMedia(path string) (*media.Info, bool, error) {
	var (
		known                 bool
		mediaType, title      sql.Null[string]
		year, season, episode sql.Null[int64]
		episodes              sql.Null[string]
	)

	err := m.db.QueryRow(`
		SELECT known, media_type, title, year, season, episode, episodes
		FROM media_cache WHERE path = ?
	`, path).Scan(&known, &mediaType, &title, &year, &season, &episode, &episodes)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if !known {
		return nil, true, nil
	}

	info := &media.Info{
		Type:    media.Type(db.Value(mediaType)),
		Title:   db.Value(title),
		Year:    int(db.Value(year)),
		Season:  int(db.Value(season)),
		Episode: int(db.Value(episode)),
	}
	if raw := db.Value(episodes); raw != "" {
		if err := json.Unmarshal([]byte(raw), &info.Episodes); err != nil {
			return nil, false, fmt.Errorf("decode episodes for %s: %w", path, err)
		}
	}
	return info, true, nil
}

// PutCachedMedia stores the resolution of path. A nil info records that
// the file is not recognized.
func (m *Manager) PutCachedMedia(path string, info *media.Info) error {
	now := time.Now().Unix()

	if info == nil {
		_, err := m.db.Exec(`
			INSERT INTO media_cache (path, known, cached_at) VALUES (?, 0, ?)
			ON CONFLICT(path) DO UPDATE SET
				known = 0, media_type = NULL, title = NULL, year = NULL,
				season = NULL, episode = NULL, episodes = NULL,
				cached_at = excluded.cached_at
		`, path, now)
		return err
	}

	var episodes sql.Null[string]
	if len(info.Episodes) > 0 {
		raw, err := json.Marshal(info.Episodes)
		if err != nil {
			return err
		}
		episodes = db.Null(string(raw))
	}

	_, err := m.db.Exec(`
		INSERT INTO media_cache (path, known, media_type, title, year, season, episode, episodes, cached_at)
		VALUES (?, 1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			known = 1,
			media_type = excluded.media_type,
			title = excluded.title,
			year = excluded.year,
			season = excluded.season,
			episode = excluded.episode,
			episodes = excluded.episodes,
			cached_at = excluded.cached_at
	`, path, string(info.Type), info.Title,
		db.NullInt(info.Year), db.NullInt(info.Season), db.NullInt(info.Episode),
		episodes, now)
	return err
}

// PruneMediaCache removes entries cached more than maxAge ago and returns
// how many were removed.
func (m *Manager) PruneMediaCache(maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge).Unix()
	res, err := m.db.Exec(`DELETE FROM media_cache WHERE cached_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ClearMediaCache removes every cached resolution.
func (m *Manager) ClearMediaCache() error {
	_, err := m.db.Exec(`DELETE FROM media_cache`)
	return err
}
