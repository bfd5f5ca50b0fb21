package riak

import (
	"context"

	"github.com/docbridge/docbridge/pkg/dbcapabilities"
	"github.com/docbridge/docbridge/pkg/docstore"
)

// Docs implements docstore.Docs for one schema over one connection.
type Docs struct {
	conn   *Connection
	schema *docstore.Schema
	codec  *codec
	bucket string
	index  string
}

// Persist writes the document as a CRDT map. When the identifier field is
// unset the store generates the key, and a second write records it in the
// identifier register so searches on that field keep working.
func (d *Docs) Persist(ctx context.Context, doc docstore.Document) (docstore.Document, error) {
	if !d.conn.IsConnected() {
		return doc, docstore.ErrConnectionClosed
	}

	update, err := d.codec.Encode(doc)
	if err != nil {
		return doc, docstore.WrapError(dbcapabilities.Riak, "persist", err)
	}

	key, _ := doc.ID(d.schema).(string)
	if key != "" {
		update.SetRegister(d.codec.names.storageName(d.schema.IDField), []byte(key))
		if _, err := d.conn.client.UpdateMap(ctx, d.bucket, key, update); err != nil {
			return doc, docstore.WrapError(dbcapabilities.Riak, "persist", err)
		}
		return doc, nil
	}

	generated, err := d.conn.client.UpdateMap(ctx, d.bucket, "", update)
	if err != nil {
		return doc, docstore.WrapError(dbcapabilities.Riak, "persist", err)
	}

	idUpdate := NewMapUpdate()
	idUpdate.SetRegister(d.codec.names.storageName(d.schema.IDField), []byte(generated))
	if _, err := d.conn.client.UpdateMap(ctx, d.bucket, generated, idUpdate); err != nil {
		return doc, docstore.WrapError(dbcapabilities.Riak, "persist", err)
	}

	if doc.Fields == nil {
		doc.Fields = make(map[string]interface{})
	}
	doc.Fields[d.schema.IDField] = generated
	return doc, nil
}

// FindBy returns the documents matching the conditions. A lone equality on
// the identifier field short-circuits to a key fetch without touching the
// search index.
func (d *Docs) FindBy(ctx context.Context, conditions []docstore.Condition, opts docstore.FindOptions) ([]docstore.Document, error) {
	if !d.conn.IsConnected() {
		return nil, docstore.ErrConnectionClosed
	}
	if opts.SortBy != "" {
		return nil, docstore.WrapError(dbcapabilities.Riak, "findBy", docstore.ErrSortNotSupported)
	}

	if key, ok := d.pointLookupKey(conditions); ok && !opts.Windowed() {
		doc, found, err := d.fetchOne(ctx, key)
		if err != nil {
			return nil, docstore.WrapError(dbcapabilities.Riak, "findBy", err)
		}
		if !found {
			return []docstore.Document{}, nil
		}
		return []docstore.Document{doc}, nil
	}

	keys, err := d.searchKeys(ctx, CompileConditions(conditions), opts)
	if err != nil {
		return nil, docstore.WrapError(dbcapabilities.Riak, "findBy", err)
	}

	return d.fetchDocuments(ctx, keys, "findBy")
}

// searchKeys resolves the matching keys for one query. A windowed request
// with an explicit limit is a single search; everything else runs an
// unbounded search as a default-window probe followed by one remainder
// window covering the keys the probe did not return.
func (d *Docs) searchKeys(ctx context.Context, query string, opts docstore.FindOptions) ([]string, error) {
	// negative window values would wrap around in the uint32 conversion
	if opts.Limit < 0 {
		opts.Limit = 0
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}

	if opts.Limit > 0 {
		result, err := d.conn.client.Search(ctx, d.index, query, uint32(opts.Limit), uint32(opts.Offset))
		if err != nil {
			return nil, err
		}
		return result.Keys, nil
	}

	offset := uint32(opts.Offset)
	probe, err := d.conn.client.Search(ctx, d.index, query, 0, offset)
	if err != nil {
		return nil, err
	}

	got := uint64(offset) + uint64(len(probe.Keys))
	if got >= probe.NumFound {
		return probe.Keys, nil
	}

	remainder, err := d.conn.client.Search(ctx, d.index, query, uint32(probe.NumFound-got), uint32(got))
	if err != nil {
		return nil, err
	}
	return append(probe.Keys, remainder.Keys...), nil
}

// FindAll streams every key in the bucket and fetches the documents chunk
// by chunk. On stream failure or timeout the documents gathered so far
// accompany the error.
func (d *Docs) FindAll(ctx context.Context) ([]docstore.Document, error) {
	if !d.conn.IsConnected() {
		return nil, docstore.ErrConnectionClosed
	}

	// cancel releases the producer goroutine if the scan ends early
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stream, err := d.conn.client.StreamKeys(ctx, d.bucket)
	if err != nil {
		return nil, docstore.WrapError(dbcapabilities.Riak, "findAll", err)
	}

	var results []docstore.Document
	outcome, consumeErr := consumeKeyStream(ctx, stream, func(keys []string) error {
		chunk, err := d.fetchDocuments(ctx, keys, "findAll")
		if err != nil {
			return err
		}
		// chunks accumulate newest-first
		results = append(chunk, results...)
		return nil
	})

	if err := streamError(outcome, consumeErr); err != nil {
		d.conn.adapter.logWarn("FindAll on bucket %s ended early with %d documents: %v", d.bucket, len(results), err)
		return results, docstore.WrapError(dbcapabilities.Riak, "findAll", err)
	}
	return results, nil
}

// CountBy returns the match count from the search index without fetching
// any document.
func (d *Docs) CountBy(ctx context.Context, conditions []docstore.Condition) (int64, error) {
	if !d.conn.IsConnected() {
		return 0, docstore.ErrConnectionClosed
	}

	result, err := d.conn.client.Search(ctx, d.index, CompileConditions(conditions), 0, 0)
	if err != nil {
		return 0, docstore.WrapError(dbcapabilities.Riak, "countBy", err)
	}
	return int64(result.NumFound), nil
}

// DeleteBy deletes the documents matching the conditions and returns the
// number of deletes issued. A lone equality on the identifier field skips
// the search index.
func (d *Docs) DeleteBy(ctx context.Context, conditions []docstore.Condition) (int64, error) {
	if !d.conn.IsConnected() {
		return 0, docstore.ErrConnectionClosed
	}

	if key, ok := d.pointLookupKey(conditions); ok {
		if err := d.conn.client.DeleteKey(ctx, d.bucket, key); err != nil {
			return 0, docstore.WrapError(dbcapabilities.Riak, "deleteBy", err)
		}
		return 1, nil
	}

	keys, err := d.searchKeys(ctx, CompileConditions(conditions), docstore.FindOptions{})
	if err != nil {
		return 0, docstore.WrapError(dbcapabilities.Riak, "deleteBy", err)
	}

	var deleted int64
	for _, key := range keys {
		if err := d.conn.client.DeleteKey(ctx, d.bucket, key); err != nil {
			return deleted, docstore.WrapError(dbcapabilities.Riak, "deleteBy", err)
		}
		deleted++
	}
	return deleted, nil
}

// DeleteAll streams every key in the bucket and deletes each one. On
// stream failure or timeout the count of deletes completed so far
// accompanies the error.
func (d *Docs) DeleteAll(ctx context.Context) (int64, error) {
	if !d.conn.IsConnected() {
		return 0, docstore.ErrConnectionClosed
	}

	// cancel releases the producer goroutine if the scan ends early
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stream, err := d.conn.client.StreamKeys(ctx, d.bucket)
	if err != nil {
		return 0, docstore.WrapError(dbcapabilities.Riak, "deleteAll", err)
	}

	var deleted int64
	outcome, consumeErr := consumeKeyStream(ctx, stream, func(keys []string) error {
		for _, key := range keys {
			if err := d.conn.client.DeleteKey(ctx, d.bucket, key); err != nil {
				return err
			}
			deleted++
		}
		return nil
	})

	if err := streamError(outcome, consumeErr); err != nil {
		d.conn.adapter.logWarn("DeleteAll on bucket %s ended early after %d deletes: %v", d.bucket, deleted, err)
		return deleted, docstore.WrapError(dbcapabilities.Riak, "deleteAll", err)
	}
	return deleted, nil
}

// pointLookupKey reports whether conditions reduce to one equality on the
// identifier field, and the key to fetch if so.
func (d *Docs) pointLookupKey(conditions []docstore.Condition) (string, bool) {
	if len(conditions) != 1 {
		return "", false
	}

	var field string
	var value interface{}
	switch c := conditions[0].(type) {
	case docstore.Eq:
		field, value = c.Field, c.Value
	case docstore.Compare:
		if c.Op != docstore.OpEqual {
			return "", false
		}
		field, value = c.Field, c.Value
	default:
		return "", false
	}

	if field != d.schema.IDField {
		return "", false
	}
	key, ok := value.(string)
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

func (d *Docs) fetchOne(ctx context.Context, key string) (docstore.Document, bool, error) {
	value, found, err := d.conn.client.FetchMap(ctx, d.bucket, key)
	if err != nil || !found {
		return docstore.Document{}, false, err
	}
	doc, err := d.codec.Decode(key, value)
	if err != nil {
		return docstore.Document{}, false, err
	}
	return doc, true, nil
}

// fetchDocuments fetches and decodes each key. Keys deleted between the
// search and the fetch are skipped.
func (d *Docs) fetchDocuments(ctx context.Context, keys []string, operation string) ([]docstore.Document, error) {
	docs := make([]docstore.Document, 0, len(keys))
	for _, key := range keys {
		doc, found, err := d.fetchOne(ctx, key)
		if err != nil {
			return docs, docstore.WrapError(dbcapabilities.Riak, operation, err)
		}
		if !found {
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
