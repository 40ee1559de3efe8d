package player

import (
	"net/url"
	"runtime"
	"strings"
)

// FileURIToPath converts a file:// URI to a local path.
// Returns an empty string for any other scheme.
func FileURIToPath(uri string) string {
	return fileURIToPath(uri, runtime.GOOS)
}

func fileURIToPath(uri, goos string) string {
	if !strings.HasPrefix(uri, "file://") {
		return ""
	}
	u, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	path := u.Path
	if goos == "windows" && strings.HasPrefix(path, "/") {
		path = path[1:]
	}
	return path
}
