package cli

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/matzehuels/umlgraph/pkg/cache"
)

func TestCacheClearCommand(t *testing.T) {
	c, out := newTestCLI(t)

	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	fc.Set(ctx, "a", []byte("1"), 0)
	fc.Set(ctx, "b", []byte("2"), 0)

	if err := execute(c, "cache", "clear"); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	if !strings.Contains(out.String(), "Cleared 2 cached entries") {
		t.Errorf("output = %q", out.String())
	}
	if _, hit, _ := fc.Get(ctx, "a"); hit {
		t.Error("entries should be removed")
	}
}

func TestCacheClearCommandEmpty(t *testing.T) {
	c, out := newTestCLI(t)

	if err := execute(c, "cache", "clear"); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	if !strings.Contains(out.String(), "Cache is empty") {
		t.Errorf("output = %q", out.String())
	}
}

func TestCachePathCommand(t *testing.T) {
	c, out := newTestCLI(t)

	if err := execute(c, "cache", "path"); err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	want := os.Getenv("XDG_CACHE_HOME") + string(os.PathSeparator) + appName
	if strings.TrimSpace(out.String()) != want {
		t.Errorf("cache path = %q, want %q", strings.TrimSpace(out.String()), want)
	}
}
