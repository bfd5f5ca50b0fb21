package riak

import "context"

// MapValue is the wide-column representation a stored document lives in:
// a conflict-resolving map of registers, sets, nested maps, counters and
// flags. Field names carry the type suffix the search index sees
// (name_register, child_map, tags_set, ...). Once written, the value is
// owned by the storage engine; this struct is the fetched snapshot.
type MapValue struct {
	Registers map[string][]byte
	Sets      map[string][][]byte
	Maps      map[string]*MapValue
	Counters  map[string]int64
	Flags     map[string]bool
}

// NewMapValue creates an empty MapValue.
func NewMapValue() *MapValue {
	return &MapValue{
		Registers: make(map[string][]byte),
		Sets:      make(map[string][][]byte),
		Maps:      make(map[string]*MapValue),
		Counters:  make(map[string]int64),
		Flags:     make(map[string]bool),
	}
}

// MapUpdate is the write-side counterpart of MapValue: the field
// assignments one update command applies. The codec only ever produces
// registers, sets and nested maps.
type MapUpdate struct {
	Registers map[string][]byte
	Sets      map[string][][]byte
	Maps      map[string]*MapUpdate
}

// NewMapUpdate creates an empty MapUpdate.
func NewMapUpdate() *MapUpdate {
	return &MapUpdate{
		Registers: make(map[string][]byte),
		Sets:      make(map[string][][]byte),
		Maps:      make(map[string]*MapUpdate),
	}
}

// SetRegister assigns a register field.
func (u *MapUpdate) SetRegister(name string, value []byte) *MapUpdate {
	u.Registers[name] = value
	return u
}

// AddToSet appends a member to a set field.
func (u *MapUpdate) AddToSet(name string, member []byte) *MapUpdate {
	u.Sets[name] = append(u.Sets[name], member)
	return u
}

// Map returns the nested update for a map field, creating it on first use.
func (u *MapUpdate) Map(name string) *MapUpdate {
	nested, ok := u.Maps[name]
	if !ok {
		nested = NewMapUpdate()
		u.Maps[name] = nested
	}
	return nested
}

// SearchResult is one page of a windowed search: the total number of
// matches and the retrievable keys of this window's hits.
type SearchResult struct {
	NumFound uint64
	Keys     []string
}

// StreamMessageKind tags the messages of a streamed key scan.
type StreamMessageKind int

const (
	// StreamMessageKeys carries one chunk of keys.
	StreamMessageKeys StreamMessageKind = iota
	// StreamMessageDone signals the scan finished; no further messages follow.
	StreamMessageDone
	// StreamMessageAborted signals the server side gave up mid-scan.
	StreamMessageAborted
)

// StreamMessage is one message of a streamed key scan, tagged with the
// correlation handle of the scan it belongs to.
type StreamMessage struct {
	Handle string
	Kind   StreamMessageKind
	Keys   []string
}

// KeyStream is the consumer side of a streamed key scan: a correlation
// handle plus the channel the tagged messages arrive on.
type KeyStream struct {
	Handle string
	C      <-chan StreamMessage
}

// StoreClient is the store-protocol surface the adapter core consumes.
// Connection acquisition, transport retries and authentication live behind
// it; the core never retries and never mutates the client.
type StoreClient interface {
	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// FetchMap retrieves the map value stored under key in bucket.
	// A missing key is not an error: found is false and the value nil.
	FetchMap(ctx context.Context, bucket, key string) (value *MapValue, found bool, err error)

	// UpdateMap applies the update to the map stored under key. An empty
	// key asks the server to generate one; the generated key is returned.
	UpdateMap(ctx context.Context, bucket, key string, update *MapUpdate) (generatedKey string, err error)

	// DeleteKey removes the value stored under key. Deleting a missing key
	// succeeds.
	DeleteKey(ctx context.Context, bucket, key string) error

	// Search runs the query against the named search index and returns one
	// window of matches plus the total count. A zero limit requests the
	// server's default page size.
	Search(ctx context.Context, index, query string, limit, offset uint32) (*SearchResult, error)

	// StreamKeys starts a server-side streamed scan over every key in the
	// bucket, via the engine's covering index. Messages tagged with the
	// returned stream's handle arrive on its channel until a done or
	// aborted message.
	StreamKeys(ctx context.Context, bucket string) (*KeyStream, error)

	// Close releases the client.
	Close() error
}
