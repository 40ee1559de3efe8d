package notify

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// posterNames lists common artwork filenames in priority order.
var posterNames = []string{
	"poster.jpg", "poster.png", "poster.jpeg",
	"folder.jpg", "folder.png", "folder.jpeg",
	"cover.jpg", "cover.png", "cover.jpeg",
	"show.jpg", "show.png",
}

// FindPoster looks for artwork next to a video: "<name>-poster.jpg" or
// "<name>.jpg" first, then the common names in its folder and then in the
// parent folder (the show folder above "Season N").
// Returns the path to the image, or empty string if not found.
func FindPoster(fs afero.Fs, videoPath string) string {
	dir := filepath.Dir(videoPath)
	stem := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))

	candidates := []string{
		filepath.Join(dir, stem+"-poster.jpg"),
		filepath.Join(dir, stem+"-poster.png"),
		filepath.Join(dir, stem+".jpg"),
		filepath.Join(dir, stem+".png"),
	}
	for _, d := range []string{dir, filepath.Dir(dir)} {
		for _, name := range posterNames {
			candidates = append(candidates, filepath.Join(d, name))
		}
	}

	for _, path := range candidates {
		if fi, err := fs.Stat(path); err == nil && !fi.IsDir() {
			return path
		}
	}
	return ""
}
