// Package upload provides ephemeral storage for uploaded circuit files.
//
// The viewer accepts a single .gv file per upload. The file is parsed
// immediately and only the resulting edge list is retained, keyed by a
// generated identifier, so follow-up layout requests can reference the upload
// without re-sending the file. Uploads expire after a TTL and are never
// persisted; restarting the server discards them.
package upload

import (
	"context"
	"time"

	"github.com/HaomingX/KnowledgeCircuitVis/pkg/circuit"
	"github.com/HaomingX/KnowledgeCircuitVis/pkg/errors"
)

// DefaultTTL is how long an upload stays retrievable.
const DefaultTTL = time.Hour

// Upload is one parsed uploaded circuit.
type Upload struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"` // original file name
	Edges     []circuit.Edge `json:"edges"`
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// Expired reports whether the upload's TTL had passed at time t.
func (u *Upload) Expired(t time.Time) bool {
	return t.After(u.ExpiresAt)
}

// Store is the interface for upload storage backends.
type Store interface {
	// Put stores a parsed upload and returns it with a generated ID.
	Put(ctx context.Context, name string, edges []circuit.Edge) (*Upload, error)

	// Get retrieves an upload by ID. Expired or unknown IDs return a
	// NotFound error.
	Get(ctx context.Context, id string) (*Upload, error)

	// Delete removes an upload. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired uploads.
	Cleanup(ctx context.Context) error
}

// ValidateFilename checks that an uploaded file name is acceptable: it must
// carry the .gv extension and contain no path components.
func ValidateFilename(name string) error {
	return errors.ValidateUploadFilename(name)
}
