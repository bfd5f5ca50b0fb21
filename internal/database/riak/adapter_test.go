package riak

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docbridge/docbridge/pkg/dbcapabilities"
	"github.com/docbridge/docbridge/pkg/docstore"
)

func TestAdapterType(t *testing.T) {
	adapter := NewAdapter()
	assert.Equal(t, dbcapabilities.Riak, adapter.Type())

	caps := adapter.Capabilities()
	assert.True(t, caps.SupportsSearch)
	assert.True(t, caps.SupportsKeyStreaming)
	assert.Equal(t, 8087, caps.DefaultPort)
}

func TestAdapterSelfRegisters(t *testing.T) {
	adapter, err := docstore.Get(dbcapabilities.Riak)
	require.NoError(t, err)
	assert.Equal(t, dbcapabilities.Riak, adapter.Type())
}

func TestConnectRequiresHost(t *testing.T) {
	_, err := NewAdapter().Connect(context.Background(), docstore.ConnectionConfig{})
	assert.ErrorIs(t, err, docstore.ErrInvalidConfiguration)
}

func TestConnectionIdentity(t *testing.T) {
	conn := testConnection(newFakeClient())

	assert.Equal(t, "test-conn", conn.ID())
	assert.Equal(t, dbcapabilities.Riak, conn.Type())
	assert.True(t, conn.IsConnected())
	assert.Equal(t, "localhost", conn.Config().Host)
	assert.NotNil(t, conn.Adapter())
}

func TestConnectionClose(t *testing.T) {
	client := newFakeClient()
	conn := testConnection(client)

	require.NoError(t, conn.Close())
	assert.True(t, client.closed)
	assert.False(t, conn.IsConnected())
	assert.ErrorIs(t, conn.Ping(context.Background()), docstore.ErrConnectionClosed)

	// closing twice is harmless
	assert.NoError(t, conn.Close())
}

func TestConnectionPing(t *testing.T) {
	client := newFakeClient()
	conn := testConnection(client)
	assert.NoError(t, conn.Ping(context.Background()))
}

func TestBucketAndIndexNaming(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		conn := testConnection(newFakeClient())
		schema := userSchema()
		assert.Equal(t, "users", conn.bucketName(schema))
		assert.Equal(t, "users_index", conn.indexName(schema))
	})

	t.Run("prefix and suffix options", func(t *testing.T) {
		conn := testConnection(newFakeClient())
		conn.config.Options = map[string]interface{}{
			"bucketPrefix":      "app_",
			"searchIndexSuffix": "_idx",
		}
		schema := userSchema()
		assert.Equal(t, "app_users", conn.bucketName(schema))
		assert.Equal(t, "app_users_idx", conn.indexName(schema))
	})

	t.Run("per-schema index override", func(t *testing.T) {
		conn := testConnection(newFakeClient())
		conn.config.Options = map[string]interface{}{
			"searchIndex.users": "people",
		}
		assert.Equal(t, "people", conn.indexName(userSchema()))
	})
}

func TestNameTableCaching(t *testing.T) {
	conn := testConnection(newFakeClient())
	schema := userSchema()

	first := conn.tableFor(schema)
	second := conn.tableFor(schema)
	assert.Same(t, first, second)
}
