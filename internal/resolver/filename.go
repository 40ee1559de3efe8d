package resolver

import (
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/llehouerou/scrobblr/internal/media"
)

// Video file extensions recognized by the filename resolver.
var videoExtensions = []string{
	".mkv", ".mp4", ".m4v", ".avi", ".mov", ".wmv", ".webm",
	".mpg", ".mpeg", ".ts", ".m2ts", ".flv", ".ogv",
}

var (
	// S01E02, S01E02E03, S01E02-E03, S01E02-03
	seasonEpisodeRe = regexp.MustCompile(`(?i)\bs(\d{1,2})[ ._-]?e(\d{1,3})((?:-e?\d{1,3}\b|[ ._]?e\d{1,3}\b)*)`)
	extraEpisodeRe  = regexp.MustCompile(`(?i)(-?)e?(\d{1,3})`)
	// 1x02
	crossRe = regexp.MustCompile(`(?i)\b(\d{1,2})x(\d{2,3})\b`)
	// Season 1 Episode 2
	wordsRe = regexp.MustCompile(`(?i)\bseason[ ._-]*(\d{1,2})[ ._-]*episode[ ._-]*(\d{1,3})\b`)
	// "Season 1", "S01", "Series 2" folders
	seasonDirRe = regexp.MustCompile(`(?i)^(?:season|series|s)[ ._-]*(\d{1,2})$`)
	// "Episode 2", "Ep02", "E02" inside a season folder
	episodeOnlyRe = regexp.MustCompile(`(?i)\b(?:episode|ep|e)[ ._-]*(\d{1,3})\b`)
	// Title (1999), Title.1999.1080p
	movieYearRe = regexp.MustCompile(`^(.*)[ ._(\[-]+((?:19|20)\d{2})(?:[ ._)\]-]|$)`)

	bracketRe = regexp.MustCompile(`\[[^\]]*\]|\{[^}]*\}`)
	qualityRe = regexp.MustCompile(`(?i)\b(?:480p|576p|720p|1080[pi]|2160p|4k|uhd|hdr10?|x264|x265|h\.?264|h\.?265|hevc|avc|aac|ac3|dts|ddp?5\.1|bluray|blu-ray|brrip|bdrip|webrip|web-?dl|hdtv|dvdrip|remux|repack|10bit)\b.*$`)
	spaceRe   = regexp.MustCompile(`\s+`)
)

// Filename resolves media from the file name and its parent directories.
type Filename struct{}

// NewFilename creates a filename resolver.
func NewFilename() *Filename {
	return &Filename{}
}

// Resolve parses path. It never returns an error.
func (f *Filename) Resolve(path string) (*media.Info, error) {
	return Parse(path), nil
}

// Parse guesses the media behind a video file path, or returns nil.
func Parse(path string) *media.Info {
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(videoExtensions, ext) {
		return nil
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	base = bracketRe.ReplaceAllString(base, " ")

	if info := parseEpisode(base, path); info != nil {
		if info.Title == "" {
			return nil
		}
		return info
	}
	return parseMovie(base)
}

func parseEpisode(base, path string) *media.Info {
	if m := seasonEpisodeRe.FindStringSubmatchIndex(base); m != nil {
		season, _ := media.ParseEpisode(base[m[2]:m[3]])
		first, _ := media.ParseEpisode(base[m[4]:m[5]])
		episodes := expandEpisodes(first, base[m[6]:m[7]])
		return newEpisode(showTitle(base[:m[0]], path), season, episodes)
	}

	for _, re := range []*regexp.Regexp{wordsRe, crossRe} {
		if m := re.FindStringSubmatchIndex(base); m != nil {
			season, _ := media.ParseEpisode(base[m[2]:m[3]])
			episode, _ := media.ParseEpisode(base[m[4]:m[5]])
			return newEpisode(showTitle(base[:m[0]], path), season, []int{episode})
		}
	}

	// Episode number alone, season from the parent folder.
	dir := filepath.Base(filepath.Dir(path))
	sm := seasonDirRe.FindStringSubmatch(dir)
	if sm == nil {
		return nil
	}
	em := episodeOnlyRe.FindStringSubmatchIndex(base)
	if em == nil {
		return nil
	}
	season, _ := media.ParseEpisode(sm[1])
	episode, _ := media.ParseEpisode(base[em[2]:em[3]])
	return newEpisode(showTitle("", path), season, []int{episode})
}

// expandEpisodes parses the tail following the first episode number.
// "E03E04" lists episodes, "-E05" or "-05" closes a range. Ranges running
// backwards are ignored and the result is ascending without duplicates.
func expandEpisodes(first int, tail string) []int {
	episodes := []int{first}
	for _, m := range extraEpisodeRe.FindAllStringSubmatch(tail, -1) {
		n, err := media.ParseEpisode(m[2])
		if err != nil {
			continue
		}
		if m[1] == "-" {
			last := episodes[len(episodes)-1]
			for ep := last + 1; ep <= n; ep++ {
				episodes = append(episodes, ep)
			}
			continue
		}
		episodes = append(episodes, n)
	}
	slices.Sort(episodes)
	return slices.Compact(episodes)
}

func newEpisode(title string, season int, episodes []int) *media.Info {
	info := &media.Info{
		Type:   media.TypeEpisode,
		Title:  title,
		Season: season,
	}
	if len(episodes) > 1 {
		info.Episodes = episodes
	} else {
		info.Episode = episodes[0]
	}
	return info
}

// showTitle cleans prefix, falling back to the directory layout
// (Show/Season 1/file.mkv or Show/file.mkv) when the file name has none.
func showTitle(prefix, path string) string {
	if title := cleanTitle(prefix); title != "" {
		return title
	}
	dir := filepath.Dir(path)
	if seasonDirRe.MatchString(filepath.Base(dir)) {
		dir = filepath.Dir(dir)
	}
	name := filepath.Base(dir)
	if name == "." || name == string(filepath.Separator) {
		return ""
	}
	return cleanTitle(name)
}

func parseMovie(base string) *media.Info {
	if m := movieYearRe.FindStringSubmatch(base); m != nil {
		if title := cleanTitle(m[1]); title != "" {
			year, _ := media.ParseEpisode(m[2])
			return &media.Info{Type: media.TypeMovie, Title: title, Year: year}
		}
	}
	title := cleanTitle(qualityRe.ReplaceAllString(base, ""))
	if title == "" {
		return nil
	}
	return &media.Info{Type: media.TypeMovie, Title: title}
}

// cleanTitle turns "The.Office.US." into "The Office US".
func cleanTitle(s string) string {
	s = strings.NewReplacer(".", " ", "_", " ").Replace(s)
	s = qualityRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "(", " ")
	s = strings.ReplaceAll(s, ")", " ")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.Trim(s, " -")
}
