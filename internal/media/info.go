// Package media describes the identity of the content behind a file.
package media

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Type is the kind of content a file holds.
type Type string

const (
	TypeMovie   Type = "movie"
	TypeEpisode Type = "episode"
)

// Info is the structured identity of a media file.
//
// Episodic content carries either a single Episode or, for files spanning
// several consecutive episodes, the ordered Episodes list.
type Info struct {
	Type     Type   `json:"type"`
	Title    string `json:"title"`
	Year     int    `json:"year,omitempty"`
	Season   int    `json:"season,omitempty"`
	Episode  int    `json:"episode,omitempty"`
	Episodes []int  `json:"episodes,omitempty"`
}

// Equal reports whether two infos describe the same content. Every field
// takes part in the comparison.
func (i Info) Equal(o Info) bool {
	return i.Type == o.Type &&
		i.Title == o.Title &&
		i.Year == o.Year &&
		i.Season == o.Season &&
		i.Episode == o.Episode &&
		slices.Equal(i.Episodes, o.Episodes)
}

// IsMultiEpisode returns true if the file spans several episodes.
func (i Info) IsMultiEpisode() bool {
	return len(i.Episodes) > 0
}

// WithEpisode returns a copy narrowed to a single episode.
func (i Info) WithEpisode(ep int) Info {
	i.Episode = ep
	i.Episodes = nil
	return i
}

// String returns a short human readable label.
func (i Info) String() string {
	switch i.Type {
	case TypeEpisode:
		return i.Title + " " + i.EpisodeCode()
	case TypeMovie:
		if i.Year > 0 {
			return fmt.Sprintf("%s (%d)", i.Title, i.Year)
		}
		return i.Title
	default:
		return i.Title
	}
}

// EpisodeCode formats the season/episode part, e.g. "S01E02" or "S01E02-E03".
func (i Info) EpisodeCode() string {
	if len(i.Episodes) > 0 {
		parts := make([]string, len(i.Episodes))
		for n, ep := range i.Episodes {
			parts[n] = fmt.Sprintf("E%02d", ep)
		}
		return fmt.Sprintf("S%02d%s", i.Season, strings.Join(parts, "-"))
	}
	return fmt.Sprintf("S%02dE%02d", i.Season, i.Episode)
}

// ParseEpisode coerces a textual episode numeral to an integer.
func ParseEpisode(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("parse episode %q: %w", s, err)
	}
	return n, nil
}
