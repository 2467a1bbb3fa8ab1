package cache

import (
	"testing"

	"github.com/latticeforge/kbest/cube"
)

func TestPutGetRoundTrip(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer c.Close()

	key := Key("h1", "S0", 3, -1, cube.Options{AddCombinedScore: true})
	if _, ok := c.Get(key); ok {
		t.Fatalf("expected miss before Put")
	}

	want := []string{"a b ||| -1.000", "b a ||| -2.000"}
	if err := c.Put(key, want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok := c.Get(key)
	if !ok {
		t.Fatalf("expected hit after Put")
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestKeyVariesByOption(t *testing.T) {
	base := cube.Options{}
	withTree := cube.Options{ExtractTree: true}

	k1 := Key("h1", "S0", 1, -1, base)
	k2 := Key("h1", "S0", 1, -1, withTree)
	if k1 == k2 {
		t.Fatalf("keys should differ when options differ: %q == %q", k1, k2)
	}
}

func TestGetMissingKey(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer c.Close()

	if _, ok := c.Get("nonexistent"); ok {
		t.Fatalf("expected miss for a key never written")
	}
}
