package riak

import (
	"context"

	"github.com/docbridge/docbridge/pkg/docstore"
)

// CreateSchema is a no-op. Bucket types and search indexes are provisioned
// on the cluster out of band (riak-admin), so there is nothing to create
// per schema; the call only confirms the connection is usable.
func (d *Docs) CreateSchema(ctx context.Context) error {
	if !d.conn.IsConnected() {
		return docstore.ErrConnectionClosed
	}
	d.conn.adapter.logInfo("Schema %s maps to bucket %s with index %s", d.schema.Name, d.bucket, d.index)
	return nil
}
