package cache

import (
	"os"
	"path/filepath"
	"testing"
)

func TestKeyForDistinguishesInputs(t *testing.T) {
	base := KeyFor("fn main() { }", "wgsl")

	if KeyFor("fn main() { }", "metal") == base {
		t.Error("different targets must produce different keys")
	}
	if KeyFor("fn other() { }", "wgsl") == base {
		t.Error("different sources must produce different keys")
	}
	if KeyFor("fn main() { }", "wgsl") != base {
		t.Error("key derivation must be deterministic")
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	c, err := OpenAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	key := KeyFor("float f() { return 1.0; }", "metal")
	if err := c.Put(key, "metal", "float f() {\n    return 1.0;\n}"); err != nil {
		t.Fatal(err)
	}

	payload, ok, err := c.Get(key)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if payload.Target != "metal" {
		t.Errorf("expected target %q, got %q", "metal", payload.Target)
	}
	if payload.Output != "float f() {\n    return 1.0;\n}" {
		t.Errorf("unexpected output %q", payload.Output)
	}
}

func TestGetMiss(t *testing.T) {
	c, err := OpenAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	_, ok, err := c.Get(KeyFor("nothing", "wgsl"))
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected a miss for an unknown key")
	}
}

func TestGetCorruptEntryIsAMiss(t *testing.T) {
	dir := t.TempDir()
	c, err := OpenAt(dir)
	if err != nil {
		t.Fatal(err)
	}

	key := KeyFor("src", "wgsl")
	if err := os.WriteFile(c.pathFor(key), []byte("not msgpack"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, ok, err := c.Get(key)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("corrupt entry must read as a miss")
	}
}

func TestNilCacheIsANoop(t *testing.T) {
	var c *DiskCache

	if err := c.Put(KeyFor("a", "wgsl"), "wgsl", "out"); err != nil {
		t.Errorf("nil Put: %v", err)
	}
	_, ok, err := c.Get(KeyFor("a", "wgsl"))
	if err != nil {
		t.Errorf("nil Get: %v", err)
	}
	if ok {
		t.Error("nil cache must never hit")
	}
}

func TestOpenUsesXDGCacheHome(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)

	c, err := Open("sumi")
	if err != nil {
		t.Fatal(err)
	}

	want := filepath.Join(base, "sumi", "gen")
	if c.dir != want {
		t.Errorf("expected dir %q, got %q", want, c.dir)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("cache directory not created: %v", err)
	}
}
