package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeDotEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}
	return path
}

func TestParseDotEnv_SkipsNoise(t *testing.T) {
	pairs, err := parseDotEnv(strings.NewReader(`
# comment

PORT=9090
export DB_PATH=./quotes.db
LOG_FORMAT="json"
REDIS_PASSWORD='s3cret'
not a pair
=orphan
`))
	if err != nil {
		t.Fatalf("parseDotEnv: %v", err)
	}

	want := [][2]string{
		{"PORT", "9090"},
		{"DB_PATH", "./quotes.db"},
		{"LOG_FORMAT", "json"},
		{"REDIS_PASSWORD", "s3cret"},
	}
	if len(pairs) != len(want) {
		t.Fatalf("got %d pairs (%v), want %d", len(pairs), pairs, len(want))
	}
	for i := range want {
		if pairs[i] != want[i] {
			t.Fatalf("pair %d = %v, want %v", i, pairs[i], want[i])
		}
	}
}

func TestUnquote_MismatchedQuotesKept(t *testing.T) {
	if got := unquote(`"half'`); got != `"half'` {
		t.Fatalf("unquote = %q", got)
	}
	if got := unquote(`"`); got != `"` {
		t.Fatalf("unquote = %q", got)
	}
}

func TestLoadDotEnv_DoesNotOverwriteExistingEnv(t *testing.T) {
	t.Setenv("KEEP", "already")
	t.Setenv("FRESH", "")

	path := writeDotEnv(t, "KEEP=fromfile\nFRESH=loaded\n")
	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}

	if got := os.Getenv("KEEP"); got != "already" {
		t.Fatalf("KEEP=%q, want %q", got, "already")
	}
	if got := os.Getenv("FRESH"); got != "loaded" {
		t.Fatalf("FRESH=%q, want %q", got, "loaded")
	}
}

func TestLoadDotEnv_MissingFileIsFine(t *testing.T) {
	if err := loadDotEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}
}
