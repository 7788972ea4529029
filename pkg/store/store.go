// Package store persists generated puzzle batches.
//
// A batch is one pipeline run: the region table hash, the rendered piece
// document, and enough metadata to list and reload it later. Two backends
// are provided: an in-memory store for tests and single-process use, and a
// MongoDB store for shared deployments.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/piecemaker/pkg/errors"
)

// Batch is a persisted pipeline result.
type Batch struct {
	// ID identifies the batch. It matches the pipeline's PuzzleID.
	ID uuid.UUID `bson:"_id" json:"id"`

	// CreatedAt is the time the batch was saved.
	CreatedAt time.Time `bson:"created_at" json:"created_at"`

	// RegionsHash is the content hash of the region table the batch was
	// generated from.
	RegionsHash string `bson:"regions_hash" json:"regions_hash"`

	// PieceCount is the number of pieces in the batch.
	PieceCount int `bson:"piece_count" json:"piece_count"`

	// TabDepthRatio records the ratio the batch was generated with.
	TabDepthRatio float64 `bson:"tab_depth_ratio" json:"tab_depth_ratio"`

	// Data is the JSON piece document, as produced by the render sink with
	// masks included, so the batch can be fully reloaded.
	Data []byte `bson:"data" json:"data"`
}

// Store persists batches.
type Store interface {
	// Save stores a batch. Saving an existing ID overwrites it.
	Save(ctx context.Context, batch Batch) error

	// Load retrieves a batch by ID. Returns a BATCH_NOT_FOUND error if
	// absent.
	Load(ctx context.Context, id uuid.UUID) (Batch, error)

	// List returns batch metadata (Data omitted), newest first.
	List(ctx context.Context) ([]Batch, error)

	// Delete removes a batch. Deleting an absent ID is not an error.
	Delete(ctx context.Context, id uuid.UUID) error

	// Close releases any resources held by the store.
	Close(ctx context.Context) error
}

// ErrBatchNotFound constructs the canonical not-found error for an ID.
func ErrBatchNotFound(id uuid.UUID) error {
	return errors.New(errors.ErrCodeBatchNotFound, "batch not found: %s", id)
}
