// Package config holds engine-wide constants and the project manifest
// loader. Mirrors funxy's internal/config: a handful of build-time
// constants plus small mode flags, nothing more.
package config

// Version is the current dispatch-core version.
// Set at build time via -ldflags "-X github.com/janus-lang/janus/internal/config.Version=...".
var Version = "0.1.0"

// IsTestMode disables timestamp/id fields that would otherwise make
// golden output non-deterministic (diagnostic JSON, cache headers).
var IsTestMode = false

// Compatibility quality bases (§4.G). Bounds-checked by init at startup: a
// lossy/incompatible score must never be able to outrank an exact match
// even after subtracting the worst-case conversion cost.
const (
	QualityExact         = 1000
	QualityConvertible    = 500
	QualityIncompatible   = 0
	MaxExpectedPathCost   = 400 // sanity ceiling checked by init below
)

func init() {
	if QualityConvertible-MaxExpectedPathCost <= QualityIncompatible {
		panic("config: convertible score can collapse into incompatible range")
	}
	if QualityExact-MaxExpectedPathCost <= QualityConvertible {
		panic("config: exact score can collapse into convertible range")
	}
}

// Default optimizer thresholds (§4.L), overridable via janus.yaml.
const (
	DefaultMinEntriesForDecisionTree   = 8
	DefaultMinEntriesForCompression    = 64
	DefaultMinConfidenceForAutomaticOpt = 0.7
	DefaultHotPathFrequencyThreshold   = 1000
)

// Cache file constants (§6).
const (
	CacheFileExt      = ".jdc"
	CacheIndexFile    = "cache_index.json"
	CacheMagic        = uint32(0x4A414E55) // "JANU"
	CacheFormatVersion = uint32(1)
)
