package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wiresketch/wiresketch/internal/config"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", custom)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(custom, appName); dir != want {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, want)
	}
}

func TestFileCacheDirPrefersConfig(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c := New(os.Stderr, LogInfo)

	c.Config.Cache.Dir = "/srv/wiresketch-cache"
	dir, err := c.fileCacheDir()
	if err != nil || dir != "/srv/wiresketch-cache" {
		t.Errorf("fileCacheDir() = %q, %v; want the configured dir", dir, err)
	}

	c.Config = config.Default()
	dir, _ = c.fileCacheDir()
	want, _ := cacheDir()
	if dir != want {
		t.Errorf("fileCacheDir() = %q, want %q", dir, want)
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "sketch/labels.txt", "sketch/labels"},
		{"out/circuit", "labels.txt", "out/circuit"},
		{"out/circuit.asc", "labels.txt", "out/circuit"},
		{"out/circuit.svg", "labels.txt", "out/circuit"},
		{"out/circuit.v2", "labels.txt", "out/circuit.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		formats []string
		want    map[string]string
	}{
		{
			name:    "single explicit",
			output:  "circuit.cir",
			formats: []string{"asc"},
			want:    map[string]string{"asc": "circuit.cir"},
		},
		{
			name:    "single derived",
			formats: []string{"svg"},
			want:    map[string]string{"svg": "labels.svg"},
		},
		{
			name:    "multiple",
			output:  "out/c.asc",
			formats: []string{"asc", "json", "boxes"},
			want:    map[string]string{"asc": "out/c.asc", "json": "out/c.json", "boxes": "out/c_boxes.txt"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.output, "labels.txt", tt.formats)
			if len(got) != len(tt.want) {
				t.Fatalf("outputPaths() = %v, want %v", got, tt.want)
			}
			for f, p := range tt.want {
				if got[f] != p {
					t.Errorf("outputPaths()[%s] = %q, want %q", f, got[f], p)
				}
			}
		})
	}
}
