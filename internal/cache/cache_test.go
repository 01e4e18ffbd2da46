package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func sampleTable() Table {
	return Table{
		FormatVersion: 1,
		TableHash:     0xdeadbeef,
		SigName:       "draw",
		TypeSignature: []uint32{1, 2},
		Entries: []Entry{
			{TypePattern: 42, Specificity: 3, CallFrequency: 7, FunctionID: 1, FnName: "draw_circle", ModName: "shapes"},
		},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	table := sampleTable()
	data := Encode(table)

	got, err := Decode(data)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if got.SigName != table.SigName || got.TableHash != table.TableHash {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if len(got.Entries) != 1 || got.Entries[0].FnName != "draw_circle" {
		t.Fatalf("entry round trip mismatch: %+v", got.Entries)
	}
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	data := Encode(sampleTable())
	data[0] ^= 0xFF
	if _, err := Decode(data); err != ErrCorrupt {
		t.Fatalf("expected ErrCorrupt for bad magic, got %v", err)
	}
}

func TestDecodeDetectsCorruptedBody(t *testing.T) {
	data := Encode(sampleTable())
	data[len(data)-1] ^= 0xFF
	if _, err := Decode(data); err != ErrCorrupt {
		t.Fatalf("expected ErrCorrupt for a flipped body byte, got %v", err)
	}
}

func TestDecodeTreatsFormatMismatchAsMiss(t *testing.T) {
	table := sampleTable()
	table.FormatVersion = 99
	data := Encode(table)
	if _, err := Decode(data); err != ErrFormatMismatch {
		t.Fatalf("expected ErrFormatMismatch, got %v", err)
	}
}

func TestCacheSerializeDeserializeRoundTrip(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	key := NewKey("draw", "(Circle)", []byte("dep-content"))
	table := sampleTable()
	if _, err := c.Serialize(key, table); err != nil {
		t.Fatalf("unexpected serialize error: %v", err)
	}

	got, ok := c.Deserialize(key)
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if got.SigName != "draw" {
		t.Fatalf("unexpected deserialized table: %+v", got)
	}
	if c.StatsSnapshot().Hits != 1 {
		t.Errorf("expected 1 recorded hit, got %+v", c.StatsSnapshot())
	}
}

func TestDeserializeMissForUnknownKey(t *testing.T) {
	dir := t.TempDir()
	c, _ := New(dir)

	key := NewKey("missing", "()", nil)
	if _, ok := c.Deserialize(key); ok {
		t.Fatal("expected a miss for an unknown key")
	}
	if c.StatsSnapshot().Misses != 1 {
		t.Errorf("expected 1 recorded miss, got %+v", c.StatsSnapshot())
	}
}

func TestDeserializeEvictsStaleIndexEntryWhenFileMissing(t *testing.T) {
	dir := t.TempDir()
	c, _ := New(dir)

	key := NewKey("draw", "(Circle)", []byte("dep"))
	c.Serialize(key, sampleTable())
	if !c.IsCached(key) {
		t.Fatal("expected key cached after serialize")
	}

	// Simulate the backing file vanishing out from under the index.
	os.Remove(filepath.Join(dir, key.filename()))

	if _, ok := c.Deserialize(key); ok {
		t.Fatal("expected a miss once the backing file is gone")
	}
	if c.IsCached(key) {
		t.Fatal("expected the stale index entry to be evicted")
	}
}

func TestCleanupRemovesExpiredAndOversizedEntries(t *testing.T) {
	dir := t.TempDir()
	c, _ := New(dir)

	k1 := NewKey("a", "()", []byte("1"))
	k2 := NewKey("b", "()", []byte("2"))
	c.Serialize(k1, sampleTable())
	c.Serialize(k2, sampleTable())

	c.Cleanup(time.Hour, 0)
	if c.IsCached(k1) || c.IsCached(k2) {
		t.Fatal("expected cleanup with maxSize=0 to evict every entry")
	}
}

func TestEntriesSortedByFileName(t *testing.T) {
	dir := t.TempDir()
	c, _ := New(dir)

	c.Serialize(NewKey("zebra", "()", []byte("1")), sampleTable())
	c.Serialize(NewKey("apple", "()", []byte("2")), sampleTable())

	entries := c.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].File >= entries[1].File {
		t.Fatalf("expected entries sorted by file name, got %q then %q", entries[0].File, entries[1].File)
	}
}
