package properties

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/obbank/jwks-aggregator/internal/config"
	"github.com/obbank/jwks-aggregator/internal/storage"
)

func writeProperties(t *testing.T, baseDir, contents string) string {
	t.Helper()

	dir := config.FinanceDir(baseDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write properties: %v", err)
	}
	return path
}

func TestGetReadsPropertyFile(t *testing.T) {
	base := t.TempDir()
	writeProperties(t, base, "# finance settings\nDCR_JWKS_REG_ENDPOINT=https://dcr.example.com/jwks\nOTHER: value\n")

	cache := storage.NewMemoryCache()
	store := NewStore(base, cache, zaptest.NewLogger(t))

	got, ok := store.Get("DCR_JWKS_REG_ENDPOINT")
	if !ok {
		t.Fatalf("expected property to resolve")
	}
	if got != "https://dcr.example.com/jwks" {
		t.Fatalf("unexpected value %q", got)
	}

	if cache.Len() != 1 {
		t.Fatalf("expected only the looked-up key to be cached, got %d entries", cache.Len())
	}
	if _, ok := cache.Get("OTHER"); ok {
		t.Fatalf("expected OTHER to stay out of the cache")
	}
}

func TestGetReturnsCachedValueAfterFileChanges(t *testing.T) {
	base := t.TempDir()
	path := writeProperties(t, base, "DCR_JWKS_REG_ENDPOINT=https://first.example.com\n")

	store := NewStore(base, storage.NewMemoryCache(), zaptest.NewLogger(t))

	first, ok := store.Get("DCR_JWKS_REG_ENDPOINT")
	if !ok {
		t.Fatalf("expected first lookup to succeed")
	}

	if err := os.WriteFile(path, []byte("DCR_JWKS_REG_ENDPOINT=https://second.example.com\n"), 0o600); err != nil {
		t.Fatalf("rewrite properties: %v", err)
	}

	second, ok := store.Get("DCR_JWKS_REG_ENDPOINT")
	if !ok {
		t.Fatalf("expected second lookup to succeed")
	}
	if first != second || second != "https://first.example.com" {
		t.Fatalf("expected cached value to be returned, got %q then %q", first, second)
	}
}

func TestGetServesCacheEvenWhenFileRemoved(t *testing.T) {
	base := t.TempDir()
	path := writeProperties(t, base, "DCR_JWKS_REG_ENDPOINT=https://dcr.example.com\n")

	store := NewStore(base, storage.NewMemoryCache(), zaptest.NewLogger(t))
	if _, ok := store.Get("DCR_JWKS_REG_ENDPOINT"); !ok {
		t.Fatalf("expected lookup to succeed")
	}
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok := store.Get("DCR_JWKS_REG_ENDPOINT"); !ok {
		t.Fatalf("expected cached lookup to succeed without the file")
	}
}

func TestGetWithoutBaseDir(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	cache := storage.NewMemoryCache()
	store := NewStore("", cache, zap.New(core))

	if value, ok := store.Get("DCR_JWKS_REG_ENDPOINT"); ok || value != "" {
		t.Fatalf("expected absent result, got %q (ok=%v)", value, ok)
	}
	if cache.Len() != 0 {
		t.Fatalf("expected absence not to be cached")
	}
	if logs.Len() != 1 {
		t.Fatalf("expected one error log, got %d", logs.Len())
	}
}

func TestGetRetriesAfterMissingFile(t *testing.T) {
	base := t.TempDir()
	cache := storage.NewMemoryCache()
	store := NewStore(base, cache, zaptest.NewLogger(t))

	if _, ok := store.Get("DCR_JWKS_REG_ENDPOINT"); ok {
		t.Fatalf("expected lookup to fail before the file exists")
	}
	if cache.Len() != 0 {
		t.Fatalf("expected failure not to be cached")
	}

	writeProperties(t, base, "DCR_JWKS_REG_ENDPOINT=https://late.example.com\n")

	got, ok := store.Get("DCR_JWKS_REG_ENDPOINT")
	if !ok || got != "https://late.example.com" {
		t.Fatalf("expected retry to read the new file, got %q (ok=%v)", got, ok)
	}
}

func TestGetUndefinedKey(t *testing.T) {
	base := t.TempDir()
	writeProperties(t, base, "SOMETHING_ELSE=1\n")

	cache := storage.NewMemoryCache()
	store := NewStore(base, cache, zaptest.NewLogger(t))

	if _, ok := store.Get("DCR_JWKS_REG_ENDPOINT"); ok {
		t.Fatalf("expected undefined key to be absent")
	}
	if cache.Len() != 0 {
		t.Fatalf("expected nothing cached for an undefined key")
	}
}

func TestGetDoesNotExpandReferences(t *testing.T) {
	base := t.TempDir()
	writeProperties(t, base, "DCR_JWKS_REG_ENDPOINT=https://${host}/jwks\n")

	store := NewStore(base, storage.NewMemoryCache(), zaptest.NewLogger(t))

	got, ok := store.Get("DCR_JWKS_REG_ENDPOINT")
	if !ok {
		t.Fatalf("expected property to resolve")
	}
	if got != "https://${host}/jwks" {
		t.Fatalf("expected literal value, got %q", got)
	}
}

func TestGetConcurrentCallers(t *testing.T) {
	base := t.TempDir()
	writeProperties(t, base, "DCR_JWKS_REG_ENDPOINT=https://dcr.example.com\n")

	store := NewStore(base, storage.NewMemoryCache(), zaptest.NewLogger(t))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got, ok := store.Get("DCR_JWKS_REG_ENDPOINT"); !ok || got != "https://dcr.example.com" {
				t.Errorf("unexpected lookup result %q (ok=%v)", got, ok)
			}
		}()
	}
	wg.Wait()
}

func TestPath(t *testing.T) {
	store := NewStore("/opt/bank", storage.NewMemoryCache(), nil)
	want := filepath.Join("/opt/bank", "repository", "conf", "finance", "config.properties")
	if store.Path() != want {
		t.Fatalf("expected %s, got %s", want, store.Path())
	}
}
