// Package cache provides caching abstractions for the generation pipeline.
//
// # Overview
//
// The pipeline caches two stages independently:
//
//   - Pieces: the engine's generated piece document, keyed by a content hash
//     of the region table plus the generation options
//   - Artifacts: rendered outputs (SVG, PNG, DOT), keyed by the pieces hash
//     plus the render options
//
// Keys are produced by a [Keyer] so backends stay oblivious to what they
// store; [Cache] implementations cover local CLI usage ([FileCache]), tests
// ([NullCache]), and shared daemon deployments ([RedisCache]).
//
// # Key Hygiene
//
// All key material is content-hashed (SHA-256), so two runs over identical
// inputs hit the same entry regardless of host, ordering, or path. Use
// [NewScopedKeyer] to namespace keys when several projects share a backend.
package cache

import (
	"context"
	"time"
)

// Default TTLs per stage. Piece documents are pure functions of their inputs
// and could live forever; the TTLs bound backend growth, not correctness.
const (
	TTLPieces   = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is a byte-oriented key-value store with per-entry TTL.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired; an absent key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// PiecesKeyOpts are the generation options that shape the piece output and
// therefore belong in the cache key.
type PiecesKeyOpts struct {
	TabDepthRatio float64
	Tolerance     int
}

// ArtifactKeyOpts are the render options that shape an artifact.
type ArtifactKeyOpts struct {
	Format   string
	Masks    bool
	Outlines bool
	Columns  int
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// PiecesKey generates a key for a generated piece document.
	// regionsHash is the content hash of the canonical region table bytes.
	PiecesKey(regionsHash string, opts PiecesKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	// piecesHash is the content hash of the piece document bytes.
	ArtifactKey(piecesHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer generates globally shareable keys: the same inputs produce
// the same key everywhere.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// PiecesKey generates a key for a generated piece document.
func (k *DefaultKeyer) PiecesKey(regionsHash string, opts PiecesKeyOpts) string {
	return hashKey("pieces", regionsHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(piecesHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", piecesHash, opts)
}
