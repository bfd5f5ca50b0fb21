// Package riak implements the docstore adapter for Riak KV with Solr
// search. Documents live as CRDT maps in schema-named buckets; queries run
// against the bucket's search index.
package riak

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/docbridge/docbridge/pkg/dbcapabilities"
	"github.com/docbridge/docbridge/pkg/docstore"
	"github.com/docbridge/docbridge/pkg/logger"
)

// nameTableCacheSize bounds the number of per-schema name tables kept per
// connection.
const nameTableCacheSize = 64

func init() {
	docstore.Register(NewAdapter())
}

// Adapter implements docstore.StoreAdapter for Riak.
type Adapter struct {
	Log *logger.Logger
}

// NewAdapter creates a new Riak adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// NewAdapterWithLogger creates a new Riak adapter that logs through log.
func NewAdapterWithLogger(log *logger.Logger) *Adapter {
	return &Adapter{Log: log}
}

// Type returns the backend type identifier.
func (a *Adapter) Type() dbcapabilities.DatabaseID {
	return dbcapabilities.Riak
}

// Capabilities returns the capability metadata for Riak.
func (a *Adapter) Capabilities() dbcapabilities.Capability {
	return dbcapabilities.MustGet(dbcapabilities.Riak)
}

// Connect establishes a connection to a Riak cluster and verifies it with
// a ping before handing it out.
func (a *Adapter) Connect(ctx context.Context, config docstore.ConnectionConfig) (docstore.Connection, error) {
	if config.Host == "" {
		return nil, docstore.NewConfigurationError(dbcapabilities.Riak, "host", "host is required")
	}

	port := config.Port
	if port == 0 {
		port = a.Capabilities().DefaultPort
	}
	address := fmt.Sprintf("%s:%d", config.Host, port)
	bucketType := config.Option("bucketType", "maps")

	client, err := newProtocolClient(address, bucketType)
	if err != nil {
		return nil, docstore.NewConnectionError(dbcapabilities.Riak, config.Host, port, err)
	}

	if err := client.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, docstore.NewConnectionError(dbcapabilities.Riak, config.Host, port, err)
	}

	id := config.DatabaseID
	if id == "" {
		id = uuid.NewString()
	}

	tables, err := lru.New[string, *nameTable](nameTableCacheSize)
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	conn := &Connection{
		id:      id,
		adapter: a,
		config:  config,
		client:  client,
		tables:  tables,
	}
	conn.connected.Store(true)

	a.logInfo("Connected to riak at %s (connection %s)", address, id)
	return conn, nil
}

func (a *Adapter) logInfo(format string, args ...interface{}) {
	if a.Log != nil {
		a.Log.Infof(format, args...)
	}
}

func (a *Adapter) logWarn(format string, args ...interface{}) {
	if a.Log != nil {
		a.Log.Warnf(format, args...)
	}
}

// Connection implements docstore.Connection for Riak.
type Connection struct {
	id        string
	adapter   *Adapter
	config    docstore.ConnectionConfig
	client    StoreClient
	connected atomic.Bool

	// per-schema name tables, keyed by schema name
	tables *lru.Cache[string, *nameTable]
}

// ID returns the connection identifier.
func (c *Connection) ID() string {
	return c.id
}

// Type returns the backend type.
func (c *Connection) Type() dbcapabilities.DatabaseID {
	return dbcapabilities.Riak
}

// IsConnected returns whether the connection is active.
func (c *Connection) IsConnected() bool {
	return c.connected.Load()
}

// Ping checks the connection health.
func (c *Connection) Ping(ctx context.Context) error {
	if !c.IsConnected() {
		return docstore.ErrConnectionClosed
	}
	return docstore.WrapError(dbcapabilities.Riak, "ping", c.client.Ping(ctx))
}

// Close shuts the connection down. Further operations report
// ErrConnectionClosed.
func (c *Connection) Close() error {
	if !c.connected.CompareAndSwap(true, false) {
		return nil
	}
	c.adapter.logInfo("Closing riak connection %s", c.id)
	return c.client.Close()
}

// Docs returns the document operations handle for one schema.
func (c *Connection) Docs(schema *docstore.Schema) docstore.Docs {
	return &Docs{
		conn:   c,
		schema: schema,
		codec:  newCodec(schema, c.tableFor(schema)),
		bucket: c.bucketName(schema),
		index:  c.indexName(schema),
	}
}

// Raw returns the underlying StoreClient.
func (c *Connection) Raw() interface{} {
	return c.client
}

// Config returns the connection configuration.
func (c *Connection) Config() docstore.ConnectionConfig {
	return c.config
}

// Adapter returns the adapter that created this connection.
func (c *Connection) Adapter() docstore.StoreAdapter {
	return c.adapter
}

func (c *Connection) tableFor(schema *docstore.Schema) *nameTable {
	if table, ok := c.tables.Get(schema.Name); ok {
		return table
	}
	table := newNameTable(schema)
	c.tables.Add(schema.Name, table)
	return table
}

func (c *Connection) bucketName(schema *docstore.Schema) string {
	return c.config.Option("bucketPrefix", "") + schema.Name
}

func (c *Connection) indexName(schema *docstore.Schema) string {
	if idx := c.config.Option("searchIndex."+schema.Name, ""); idx != "" {
		return idx
	}
	return c.bucketName(schema) + c.config.Option("searchIndexSuffix", "_index")
}
