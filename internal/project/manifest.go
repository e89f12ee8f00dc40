// Package project loads sumi.toml project manifests.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file name looked up when no manifest path is given.
const ManifestName = "sumi.toml"

// ErrPackageSectionMissing indicates that [package] is missing.
var ErrPackageSectionMissing = errors.New("missing [package]")

// ErrEntryMissing indicates that [package].entry is missing or empty.
var ErrEntryMissing = errors.New("missing [package].entry")

// Manifest describes a sumi.toml [package] section.
type Manifest struct {
	// Name is the project name. Optional.
	Name string
	// Entry is the shader entry file, relative to the manifest's
	// directory.
	Entry string
	// Target is the default output target selector. Optional; the CLI
	// falls back to its own default when empty.
	Target string
	// Dir is the directory the manifest was loaded from.
	Dir string
}

type manifestFile struct {
	Package struct {
		Name   string `toml:"name"`
		Entry  string `toml:"entry"`
		Target string `toml:"target"`
	} `toml:"package"`
}

// Load parses the manifest at path.
func Load(path string) (Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	entry := strings.TrimSpace(cfg.Package.Entry)
	if entry == "" {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrEntryMissing)
	}
	return Manifest{
		Name:   cfg.Package.Name,
		Entry:  entry,
		Target: strings.TrimSpace(cfg.Package.Target),
		Dir:    filepath.Dir(path),
	}, nil
}

// Find walks from dir upward looking for a sumi.toml and loads the first
// one found.
func Find(dir string) (Manifest, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Manifest{}, err
	}
	for {
		candidate := filepath.Join(abs, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return Load(candidate)
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return Manifest{}, fmt.Errorf("no %s found in %s or any parent", ManifestName, dir)
		}
		abs = parent
	}
}

// EntryPath returns the absolute path of the manifest's entry file.
func (m Manifest) EntryPath() string {
	if filepath.IsAbs(m.Entry) {
		return m.Entry
	}
	return filepath.Join(m.Dir, m.Entry)
}
