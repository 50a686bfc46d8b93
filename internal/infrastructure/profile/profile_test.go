package profile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeProfile(t *testing.T, path string, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "governance.toml")
	writeProfile(t, path, `
organization = "Dept of Digital Services"

[report]
footer = "OFFICIAL"

[assessments]
extra = ["Accessibility Review", "  ", "Algorithmic Audit"]
`)

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.Organization != "Dept of Digital Services" {
		t.Fatalf("Organization = %q", p.Organization)
	}
	if p.Report.Footer != "OFFICIAL" {
		t.Fatalf("Footer = %q", p.Report.Footer)
	}
	want := []string{"Accessibility Review", "Algorithmic Audit"}
	if len(p.Assessments.Extra) != len(want) {
		t.Fatalf("Extra = %#v", p.Assessments.Extra)
	}
	for i, name := range want {
		if p.Assessments.Extra[i] != name {
			t.Fatalf("Extra[%d] = %q, want %q", i, p.Assessments.Extra[i], name)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatalf("Load() on missing file succeeded")
	}
}

func TestStoreReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "governance.toml")
	writeProfile(t, path, `organization = "First"`)

	store := NewStore(path)
	if err := store.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if got := store.Current().Organization; got != "First" {
		t.Fatalf("Organization = %q", got)
	}

	writeProfile(t, path, `organization = "Second"`)
	if err := store.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if got := store.Current().Organization; got != "Second" {
		t.Fatalf("Organization after reload = %q", got)
	}
}

func TestStoreReloadKeepsPreviousOnBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "governance.toml")
	writeProfile(t, path, `organization = "Stable"`)

	store := NewStore(path)
	if err := store.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	writeProfile(t, path, `organization = [not toml`)
	if err := store.Reload(context.Background()); err == nil {
		t.Fatalf("Reload() on broken file succeeded")
	}
	if got := store.Current().Organization; got != "Stable" {
		t.Fatalf("Organization = %q, want previous value kept", got)
	}
}

func TestStoreBlankPath(t *testing.T) {
	store := NewStore("")
	if err := store.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	stop, err := store.Watch(context.Background())
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	stop()
}

func TestWatchPicksUpEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "governance.toml")
	writeProfile(t, path, `organization = "Before"`)

	store := NewStore(path)
	if err := store.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	stop, err := store.Watch(context.Background())
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer stop()

	writeProfile(t, path, `organization = "After"`)

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if store.Current().Organization == "After" {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("watcher never applied the edit, still %q", store.Current().Organization)
}
