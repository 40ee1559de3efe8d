//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpStateOpen,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpStateOpen,
			err:      errors.New("disk full"),
			expected: "Failed to open database: disk full",
		},
		{
			name:     "config operation",
			op:       OpConfigLoad,
			err:      errors.New("invalid toml"),
			expected: "Failed to load configuration: invalid toml",
		},
		{
			name:     "player operation",
			op:       OpPlayerConnect,
			err:      errors.New("connection refused"),
			expected: "Failed to connect to player: connection refused",
		},
		{
			name:     "lastfm operation",
			op:       OpLastfmAuth,
			err:      errors.New("token expired"),
			expected: "Failed to authenticate with Last.fm: token expired",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpResolve,
			context:  "/v/show.mkv",
			err:      nil,
			expected: "",
		},
		{
			name:     "with context",
			op:       OpResolve,
			context:  "/v/show.mkv",
			err:      errors.New("permission denied"),
			expected: "Failed to identify media '/v/show.mkv': permission denied",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpCacheClear,
			context:  "",
			err:      errors.New("locked"),
			expected: "Failed to clear media cache: locked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	if err := Wrap(OpConfigLoad, nil); err != nil {
		t.Errorf("Wrap(nil) = %v, want nil", err)
	}

	cause := errors.New("no such file")
	err := Wrap(OpConfigLoad, cause)
	if got, want := err.Error(), "Failed to load configuration: no such file"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, cause) {
		t.Error("expected Wrap to unwrap to the cause")
	}

	var opErr *Error
	if !errors.As(err, &opErr) || opErr.Op != OpConfigLoad {
		t.Errorf("expected *Error with op %q, got %#v", OpConfigLoad, err)
	}
}
