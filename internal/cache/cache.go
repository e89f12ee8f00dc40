// Package cache provides a content-addressed cache of generated shader
// text, so repeated builds of unchanged source skip the compile.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// Increment when the Payload format changes; old entries are then
// treated as misses.
const schemaVersion uint16 = 1

// Key identifies one (source, target) compilation.
type Key [sha256.Size]byte

// KeyFor derives the cache key for preprocessed source text and a target
// selector.
func KeyFor(source, target string) Key {
	h := sha256.New()
	h.Write([]byte(target))
	h.Write([]byte{0})
	h.Write([]byte(source))
	var k Key
	copy(k[:], h.Sum(nil))
	return k
}

// Payload is the cached compilation result.
type Payload struct {
	Schema uint16
	Target string
	Output string
}

// DiskCache stores payloads under a directory, one msgpack file per key.
type DiskCache struct {
	dir string
}

// Open initializes a disk cache at the standard user cache location for
// the given application name.
func Open(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenAt(filepath.Join(base, app, "gen"))
}

// OpenAt initializes a disk cache rooted at dir.
func OpenAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Key) string {
	return filepath.Join(c.dir, hex.EncodeToString(key[:])+".mp")
}

// Put writes a payload for key, atomically via temp-file rename.
func (c *DiskCache) Put(key Key, target, output string) error {
	if c == nil {
		return nil
	}
	payload := Payload{
		Schema: schemaVersion,
		Target: target,
		Output: output,
	}

	f, err := os.CreateTemp(c.dir, "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), c.pathFor(key))
}

// Get reads the payload for key. The second return value reports whether
// a usable entry was found; schema mismatches count as misses.
func (c *DiskCache) Get(key Key) (Payload, bool, error) {
	if c == nil {
		return Payload{}, false, nil
	}
	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Payload{}, false, nil
		}
		return Payload{}, false, err
	}
	defer f.Close()

	var payload Payload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		// Corrupt entry: treat as a miss rather than failing the build.
		return Payload{}, false, nil
	}
	if payload.Schema != schemaVersion {
		return Payload{}, false, nil
	}
	return payload, true, nil
}
