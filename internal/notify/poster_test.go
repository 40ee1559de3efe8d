package notify

import (
	"testing"

	"github.com/spf13/afero"
)

func TestFindPoster(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		video string
		want  string
	}{
		{
			name:  "nothing",
			files: nil,
			video: "/tv/Show/Season 1/Show.S01E01.mkv",
			want:  "",
		},
		{
			name:  "per-file poster wins",
			files: []string{"/m/Heat (1995)/poster.jpg", "/m/Heat (1995)/Heat (1995)-poster.jpg"},
			video: "/m/Heat (1995)/Heat (1995).mkv",
			want:  "/m/Heat (1995)/Heat (1995)-poster.jpg",
		},
		{
			name:  "folder image",
			files: []string{"/m/Heat/folder.png"},
			video: "/m/Heat/Heat.mkv",
			want:  "/m/Heat/folder.png",
		},
		{
			name:  "show poster above season folder",
			files: []string{"/tv/Show/poster.jpg"},
			video: "/tv/Show/Season 1/Show.S01E01.mkv",
			want:  "/tv/Show/poster.jpg",
		},
		{
			name:  "season folder beats show folder",
			files: []string{"/tv/Show/poster.jpg", "/tv/Show/Season 1/cover.jpg"},
			video: "/tv/Show/Season 1/Show.S01E01.mkv",
			want:  "/tv/Show/Season 1/cover.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			for _, f := range tt.files {
				if err := afero.WriteFile(fs, f, []byte{0xFF, 0xD8, 0xFF}, 0o600); err != nil {
					t.Fatal(err)
				}
			}

			if got := FindPoster(fs, tt.video); got != tt.want {
				t.Errorf("FindPoster() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindPoster_IgnoresDirectories(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/m/Heat/poster.jpg", 0o755); err != nil {
		t.Fatal(err)
	}

	if got := FindPoster(fs, "/m/Heat/Heat.mkv"); got != "" {
		t.Errorf("FindPoster() = %q, want empty", got)
	}
}
