// Package docstore provides the unified interface for backend store adapters.
// This file defines the contracts that backend-specific implementations must follow.
package docstore

import (
	"context"

	"github.com/docbridge/docbridge/pkg/dbcapabilities"
)

// StoreAdapter represents a backend technology adapter.
// Each backend type must implement this interface.
type StoreAdapter interface {
	// Type returns the canonical backend type identifier
	Type() dbcapabilities.DatabaseID

	// Capabilities returns the capability metadata for this backend type
	Capabilities() dbcapabilities.Capability

	// Connect establishes a connection to a specific backend
	Connect(ctx context.Context, config ConnectionConfig) (Connection, error)
}

// Connection represents an active connection to a backend.
// The handle is shared by reference through every call and never mutated by
// the adapter core; concurrent callers must serialize their own usage or
// rely on the handle being a multiplexable session.
type Connection interface {
	// Identity and status
	ID() string
	Type() dbcapabilities.DatabaseID
	IsConnected() bool

	// Lifecycle management
	Ping(ctx context.Context) error
	Close() error

	// Docs returns the document operations handle for one schema.
	Docs(schema *Schema) Docs

	// Raw returns the underlying backend-specific client object.
	// Type assertion is required when using Raw().
	Raw() interface{}

	// Configuration
	Config() ConnectionConfig
	Adapter() StoreAdapter
}

// Docs is the per-schema document surface consumed by the generic
// persistence layer. All operations are synchronous, blocking calls against
// the single backing connection; no operation is retried internally.
type Docs interface {
	// Persist writes the document and returns it with the identifier field
	// populated (server-generated when unset).
	Persist(ctx context.Context, doc Document) (Document, error)

	// FindBy returns the documents matching the conditions. A zero
	// FindOptions retrieves all matches regardless of the backend's default
	// page size. Sort options are not supported by every backend.
	FindBy(ctx context.Context, conditions []Condition, opts FindOptions) ([]Document, error)

	// FindAll returns every document in the schema's collection, in
	// unspecified order.
	FindAll(ctx context.Context) ([]Document, error)

	// CountBy returns the number of documents matching the conditions
	// without retrieving them.
	CountBy(ctx context.Context, conditions []Condition) (int64, error)

	// DeleteBy deletes the documents matching the conditions and returns
	// the number of deletes issued.
	DeleteBy(ctx context.Context, conditions []Condition) (int64, error)

	// DeleteAll deletes every document in the schema's collection and
	// returns the number of deletes issued. On stream failure or timeout
	// the count of deletes completed so far accompanies the error.
	DeleteAll(ctx context.Context) (int64, error)

	// CreateSchema prepares backend structures for the schema. Backends
	// with externally provisioned buckets/indexes treat this as a no-op.
	CreateSchema(ctx context.Context) error
}

// FindOptions bounds a FindBy call.
type FindOptions struct {
	// Limit is the maximum number of documents to return; 0 means all
	// matches.
	Limit int

	// Offset skips that many matches before collecting results.
	Offset int

	// SortBy names a field to order by. Backends without sorted search
	// report ErrSortNotSupported rather than silently ignoring it.
	SortBy string
}

// Windowed reports whether the options request one bounded page rather
// than all matches.
func (o FindOptions) Windowed() bool {
	return o.Limit > 0 || o.Offset > 0
}
