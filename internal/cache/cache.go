package cache

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/janus-lang/janus/internal/config"
	"lukechampine.com/blake3"
)

// Key is the content-addressed cache key (§4.M): the table's signature
// name, its call-site type signature, and the hash of whatever the table
// depends on (so a dependency change invalidates it without a separate
// watch mechanism).
type Key struct {
	SignatureHash     uint64
	TypeSignatureHash uint64
	DependenciesHash  [32]byte
}

// NewKey builds a Key from its three source strings. SignatureHash and
// TypeSignatureHash use xxhash (Wyhash is unavailable in the dependency
// set this cache draws from); DependenciesHash uses blake3 since it
// guards correctness (a collision would silently serve a stale table) and
// so gets a cryptographic-strength hash rather than a fast one.
func NewKey(signatureName, typeSignature string, dependencies []byte) Key {
	return Key{
		SignatureHash:     xxhash.Sum64String(signatureName),
		TypeSignatureHash: xxhash.Sum64String(typeSignature),
		DependenciesHash:  blake3.Sum256(dependencies),
	}
}

func (k Key) filename() string {
	return hex.EncodeToString(k.DependenciesHash[:8]) + "-" +
		hex.EncodeToString(uint64ToBytes(k.SignatureHash)) + "-" +
		hex.EncodeToString(uint64ToBytes(k.TypeSignatureHash)) + config.CacheFileExt
}

func uint64ToBytes(v uint64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
	return b
}

// IndexEntry is one row of cache_index.json (§6).
type IndexEntry struct {
	SigHash       uint64 `json:"sig_hash"`
	TypeSigHash   uint64 `json:"type_sig_hash"`
	DepsHash      string `json:"deps_hash"`
	File          string `json:"file"`
	Size          int64  `json:"size"`
	CreatedNs     int64  `json:"created_ns"`
	LastAccessNs  int64  `json:"last_access_ns"`
	Accesses      int64  `json:"accesses"`
	FormatVersion uint32 `json:"format_version"`
	TableHash     uint64 `json:"table_hash"`
}

// Stats tracks cache effectiveness (§4.M).
type Stats struct {
	Hits                   int64
	Misses                 int64
	TotalSerializeNanos    int64
	SerializeCount         int64
	TotalDeserializeNanos  int64
	DeserializeCount       int64
}

// AvgSerializeNanos returns the running average serialize time, 0 if
// nothing has been serialized yet.
func (s Stats) AvgSerializeNanos() int64 {
	if s.SerializeCount == 0 {
		return 0
	}
	return s.TotalSerializeNanos / s.SerializeCount
}

// AvgDeserializeNanos returns the running average deserialize time, 0 if
// nothing has been deserialized yet.
func (s Stats) AvgDeserializeNanos() int64 {
	if s.DeserializeCount == 0 {
		return 0
	}
	return s.TotalDeserializeNanos / s.DeserializeCount
}

// Cache is the on-disk, content-addressed dispatch-table cache. The
// directory is created on first use if missing (§6, idempotent).
type Cache struct {
	dir   string
	index map[string]IndexEntry // keyed by filename
	stats Stats
}

// New creates (or reopens) a cache rooted at dir.
func New(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	c := &Cache{dir: dir, index: make(map[string]IndexEntry)}
	c.loadIndex()
	return c, nil
}

func (c *Cache) indexPath() string {
	return filepath.Join(c.dir, config.CacheIndexFile)
}

func (c *Cache) loadIndex() {
	data, err := os.ReadFile(c.indexPath())
	if err != nil {
		return
	}
	var entries []IndexEntry
	if json.Unmarshal(data, &entries) != nil {
		return
	}
	for _, e := range entries {
		c.index[e.File] = e
	}
}

func (c *Cache) saveIndex() error {
	entries := make([]IndexEntry, 0, len(c.index))
	for _, e := range c.index {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].File < entries[j].File })
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return os.WriteFile(c.indexPath(), data, 0o644)
}

// Serialize encodes table under key and writes it to disk, updating the
// index with a last-writer-wins entry.
func (c *Cache) Serialize(key Key, table Table) (string, error) {
	start := time.Now()
	data := Encode(table)
	c.stats.TotalSerializeNanos += time.Since(start).Nanoseconds()
	c.stats.SerializeCount++

	name := key.filename()
	path := filepath.Join(c.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}

	now := time.Now().UnixNano()
	c.index[name] = IndexEntry{
		SigHash:       key.SignatureHash,
		TypeSigHash:   key.TypeSignatureHash,
		DepsHash:      hex.EncodeToString(key.DependenciesHash[:]),
		File:          name,
		Size:          int64(len(data)),
		CreatedNs:     now,
		LastAccessNs:  now,
		FormatVersion: table.FormatVersion,
		TableHash:     table.TableHash,
	}
	return path, c.saveIndex()
}

// Deserialize reads the table for key, if present and valid. A stale
// index entry whose file is missing on disk is silently evicted (§4.M);
// a format_version mismatch is a miss that keeps the file; a CRC
// mismatch is a miss that evicts the file.
func (c *Cache) Deserialize(key Key) (Table, bool) {
	name := key.filename()
	entry, ok := c.index[name]
	if !ok {
		c.stats.Misses++
		return Table{}, false
	}

	start := time.Now()
	data, err := os.ReadFile(filepath.Join(c.dir, name))
	if err != nil {
		delete(c.index, name)
		c.saveIndex()
		c.stats.Misses++
		return Table{}, false
	}

	table, err := Decode(data)
	c.stats.TotalDeserializeNanos += time.Since(start).Nanoseconds()
	c.stats.DeserializeCount++

	switch err {
	case nil:
		entry.LastAccessNs = time.Now().UnixNano()
		entry.Accesses++
		c.index[name] = entry
		c.saveIndex()
		c.stats.Hits++
		return table, true
	case ErrFormatMismatch:
		c.stats.Misses++
		return Table{}, false
	default:
		c.Invalidate(key)
		c.stats.Misses++
		return Table{}, false
	}
}

// IsCached reports whether key has a live index entry.
func (c *Cache) IsCached(key Key) bool {
	_, ok := c.index[key.filename()]
	return ok
}

// Invalidate removes key's file and index entry.
func (c *Cache) Invalidate(key Key) {
	name := key.filename()
	os.Remove(filepath.Join(c.dir, name))
	delete(c.index, name)
	c.saveIndex()
}

// Cleanup applies an age filter (evicting anything last accessed before
// now-maxAge) and then an LRU pass (evicting the oldest-accessed entries
// until total size is at most maxSize).
func (c *Cache) Cleanup(maxAge time.Duration, maxSize int64) {
	cutoff := time.Now().Add(-maxAge).UnixNano()
	for name, e := range c.index {
		if e.LastAccessNs < cutoff {
			os.Remove(filepath.Join(c.dir, name))
			delete(c.index, name)
		}
	}

	var total int64
	names := make([]string, 0, len(c.index))
	for name, e := range c.index {
		total += e.Size
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return c.index[names[i]].LastAccessNs < c.index[names[j]].LastAccessNs
	})
	for _, name := range names {
		if total <= maxSize {
			break
		}
		total -= c.index[name].Size
		os.Remove(filepath.Join(c.dir, name))
		delete(c.index, name)
	}

	c.saveIndex()
}

// StatsSnapshot returns the current cache statistics.
func (c *Cache) StatsSnapshot() Stats {
	return c.stats
}

// Entries returns every live index entry, sorted by file name.
func (c *Cache) Entries() []IndexEntry {
	entries := make([]IndexEntry, 0, len(c.index))
	for _, e := range c.index {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].File < entries[j].File })
	return entries
}
