package dbcapabilities

import "strings"

// DatabaseID is the canonical identifier for a backend technology supported
// by docbridge. Use these constants to look up capability information.
type DatabaseID string

const (
	// Riak KV with integrated full-text search (Yokozuna). The only engine
	// shipped in-tree today; the registry keeps room for more.
	Riak DatabaseID = "riak"
)

// DataParadigm enumerates the primary data storage paradigms a backend supports.
type DataParadigm string

const (
	ParadigmDocument    DataParadigm = "document"    // Collections, documents
	ParadigmKeyValue    DataParadigm = "keyvalue"    // Key/Value
	ParadigmSearchIndex DataParadigm = "searchindex" // Inverted indices
)

// Capability describes what a backend supports in a way the persistence layer
// can consume uniformly.
type Capability struct {
	// Human-friendly vendor or product name, e.g., "Riak KV".
	Name string `json:"name"`

	// Canonical ID used across the codebase (see DatabaseID constants).
	ID DatabaseID `json:"id"`

	// Whether the backend exposes an integrated search index over stored
	// values, queryable with a text query language.
	SupportsSearch bool `json:"supportsSearch"`

	// Whether the backend can enumerate all keys in a collection through a
	// server-side covering index without a full scan.
	SupportsKeyStreaming bool `json:"supportsKeyStreaming"`

	// Default wire-protocol port.
	DefaultPort int `json:"defaultPort"`

	// Primary data storage paradigms supported.
	Paradigms []DataParadigm `json:"paradigms"`

	// Common aliases (directory names, drivers, env labels) that map to this backend.
	Aliases []string `json:"aliases,omitempty"`
}

// All is a registry of capabilities keyed by the canonical database ID.
var All = map[DatabaseID]Capability{
	Riak: {
		Name:                 "Riak KV",
		ID:                   Riak,
		SupportsSearch:       true,
		SupportsKeyStreaming: true,
		DefaultPort:          8087,
		Paradigms:            []DataParadigm{ParadigmKeyValue, ParadigmDocument, ParadigmSearchIndex},
		Aliases:              []string{"riak_kv", "riakkv"},
	},
}

// Get returns the capability entry for id.
func Get(id DatabaseID) (Capability, bool) {
	cap, ok := All[id]
	return cap, ok
}

// MustGet returns the capability entry for id and panics if it is unknown.
// Intended for adapters referring to their own, always-registered entry.
func MustGet(id DatabaseID) Capability {
	cap, ok := All[id]
	if !ok {
		panic("dbcapabilities: unknown database id: " + string(id))
	}
	return cap
}

// ParseID resolves a canonical ID or a known alias (case-insensitive) to a
// DatabaseID.
func ParseID(name string) (DatabaseID, bool) {
	lowered := strings.ToLower(strings.TrimSpace(name))
	if _, ok := All[DatabaseID(lowered)]; ok {
		return DatabaseID(lowered), true
	}
	for id, cap := range All {
		for _, alias := range cap.Aliases {
			if alias == lowered {
				return id, true
			}
		}
	}
	return "", false
}
