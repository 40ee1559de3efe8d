package resolver

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dhowden/tag"
	"github.com/spf13/afero"

	"github.com/llehouerou/scrobblr/internal/media"
)

// Containers carrying metadata atoms readable by dhowden/tag.
var taggedExtensions = []string{".mp4", ".m4v", ".mov"}

// minTaggedSize is the size of an ID3v1 trailer, the last format
// dhowden/tag tries. Shorter files cannot carry tags.
const minTaggedSize = 128

// Tags resolves media from metadata embedded in the container.
type Tags struct {
	fs afero.Fs
}

// NewTags creates a tag resolver reading from fs. A nil fs uses the OS
// filesystem.
func NewTags(fs afero.Fs) *Tags {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Tags{fs: fs}
}

// Resolve reads the container tags of path. Files without usable tags
// resolve to nil.
func (t *Tags) Resolve(path string) (*media.Info, error) {
	if !slices.Contains(taggedExtensions, strings.ToLower(filepath.Ext(path))) {
		return nil, nil
	}

	f, err := t.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.Size() < minTaggedSize {
		return nil, nil
	}

	m, err := tag.ReadFrom(f)
	if errors.Is(err, tag.ErrNoTagsFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read tags %s: %w", path, err)
	}

	return infoFromMetadata(m), nil
}

// infoFromMetadata maps tags the way TV taggers write them: album is the
// show, disc the season and track the episode. A title without a track
// number is a movie.
func infoFromMetadata(m tag.Metadata) *media.Info {
	show := strings.TrimSpace(m.Album())
	if show == "" {
		show = strings.TrimSpace(m.AlbumArtist())
	}
	episode, _ := m.Track()
	if show != "" && episode > 0 {
		season, _ := m.Disc()
		return &media.Info{
			Type:    media.TypeEpisode,
			Title:   show,
			Season:  max(season, 1),
			Episode: episode,
		}
	}

	title := strings.TrimSpace(m.Title())
	if title == "" {
		return nil
	}
	return &media.Info{Type: media.TypeMovie, Title: title, Year: m.Year()}
}
