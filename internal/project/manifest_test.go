package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[package]
name = "demo"
entry = "shaders/main.s2l"
target = "metal"
`)

	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "demo" {
		t.Errorf("expected name %q, got %q", "demo", m.Name)
	}
	if m.Entry != "shaders/main.s2l" {
		t.Errorf("expected entry %q, got %q", "shaders/main.s2l", m.Entry)
	}
	if m.Target != "metal" {
		t.Errorf("expected target %q, got %q", "metal", m.Target)
	}
	if m.Dir != dir {
		t.Errorf("expected dir %q, got %q", dir, m.Dir)
	}
}

func TestLoadMissingPackageSection(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `title = "not a project"`)

	_, err := Load(path)
	if !errors.Is(err, ErrPackageSectionMissing) {
		t.Errorf("expected ErrPackageSectionMissing, got %v", err)
	}
}

func TestLoadMissingEntry(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[package]
name = "demo"
`)

	_, err := Load(path)
	if !errors.Is(err, ErrEntryMissing) {
		t.Errorf("expected ErrEntryMissing, got %v", err)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `[package`)

	if _, err := Load(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestFindWalksUpward(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `
[package]
entry = "main.s2l"
`)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, err := Find(nested)
	if err != nil {
		t.Fatal(err)
	}
	if m.Dir != root {
		t.Errorf("expected manifest from %q, got %q", root, m.Dir)
	}
}

func TestFindNotFound(t *testing.T) {
	if _, err := Find(t.TempDir()); err == nil {
		t.Error("expected an error when no manifest exists")
	}
}

func TestEntryPath(t *testing.T) {
	m := Manifest{Entry: "shaders/main.s2l", Dir: "/proj"}
	if got := m.EntryPath(); got != filepath.Join("/proj", "shaders", "main.s2l") {
		t.Errorf("unexpected entry path %q", got)
	}

	abs := Manifest{Entry: "/abs/main.s2l", Dir: "/proj"}
	if got := abs.EntryPath(); got != "/abs/main.s2l" {
		t.Errorf("unexpected entry path %q", got)
	}
}
