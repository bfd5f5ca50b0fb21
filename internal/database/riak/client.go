package riak

import (
	"context"
	"fmt"

	riak "github.com/basho/riak-go-client"
	"github.com/google/uuid"
)

// protocolClient adapts the protobuf client to the StoreClient seam. One
// instance owns one cluster handle; it is safe for concurrent use.
type protocolClient struct {
	cluster    *riak.Cluster
	bucketType string
}

func newProtocolClient(address, bucketType string) (*protocolClient, error) {
	node, err := riak.NewNode(&riak.NodeOptions{RemoteAddress: address})
	if err != nil {
		return nil, err
	}

	cluster, err := riak.NewCluster(&riak.ClusterOptions{Nodes: []*riak.Node{node}})
	if err != nil {
		return nil, err
	}

	if err := cluster.Start(); err != nil {
		return nil, err
	}

	return &protocolClient{cluster: cluster, bucketType: bucketType}, nil
}

func (c *protocolClient) Ping(ctx context.Context) error {
	cmd := &riak.PingCommand{}
	return c.cluster.Execute(cmd)
}

func (c *protocolClient) FetchMap(ctx context.Context, bucket, key string) (*MapValue, bool, error) {
	cmd, err := riak.NewFetchMapCommandBuilder().
		WithBucketType(c.bucketType).
		WithBucket(bucket).
		WithKey(key).
		Build()
	if err != nil {
		return nil, false, err
	}

	if err := c.cluster.Execute(cmd); err != nil {
		return nil, false, err
	}

	resp := cmd.(*riak.FetchMapCommand).Response
	if resp == nil || resp.IsNotFound {
		return nil, false, nil
	}
	return fromDriverMap(resp.Map), true, nil
}

func (c *protocolClient) UpdateMap(ctx context.Context, bucket, key string, update *MapUpdate) (string, error) {
	builder := riak.NewUpdateMapCommandBuilder().
		WithBucketType(c.bucketType).
		WithBucket(bucket).
		WithMapOperation(toDriverOp(update))
	if key != "" {
		builder = builder.WithKey(key)
	}

	cmd, err := builder.Build()
	if err != nil {
		return "", err
	}

	if err := c.cluster.Execute(cmd); err != nil {
		return "", err
	}

	resp := cmd.(*riak.UpdateMapCommand).Response
	if key != "" {
		return key, nil
	}
	if resp == nil || resp.GeneratedKey == "" {
		return "", fmt.Errorf("store did not return a generated key for bucket %s", bucket)
	}
	return resp.GeneratedKey, nil
}

func (c *protocolClient) DeleteKey(ctx context.Context, bucket, key string) error {
	cmd, err := riak.NewDeleteValueCommandBuilder().
		WithBucketType(c.bucketType).
		WithBucket(bucket).
		WithKey(key).
		Build()
	if err != nil {
		return err
	}
	return c.cluster.Execute(cmd)
}

func (c *protocolClient) Search(ctx context.Context, index, query string, limit, offset uint32) (*SearchResult, error) {
	builder := riak.NewSearchCommandBuilder().
		WithIndexName(index).
		WithQuery(query).
		WithStart(offset)
	if limit > 0 {
		builder = builder.WithNumRows(limit)
	}

	cmd, err := builder.Build()
	if err != nil {
		return nil, err
	}

	if err := c.cluster.Execute(cmd); err != nil {
		return nil, err
	}

	resp := cmd.(*riak.SearchCommand).Response
	result := &SearchResult{}
	if resp == nil {
		return result, nil
	}

	result.NumFound = uint64(resp.NumFound)
	result.Keys = make([]string, 0, len(resp.Docs))
	for _, doc := range resp.Docs {
		result.Keys = append(result.Keys, doc.Key)
	}
	return result, nil
}

// StreamKeys enumerates every key in bucket through the $bucket index,
// delivering chunks on the returned stream's channel as the store sends
// them. The terminal message is Done on success or Aborted on any error.
func (c *protocolClient) StreamKeys(ctx context.Context, bucket string) (*KeyStream, error) {
	handle := uuid.NewString()
	out := make(chan StreamMessage)

	cb := func(results []*riak.SecondaryIndexQueryResult) error {
		keys := make([]string, 0, len(results))
		for _, r := range results {
			if len(r.ObjectKey) > 0 {
				keys = append(keys, string(r.ObjectKey))
			}
		}
		if len(keys) == 0 {
			return nil
		}
		select {
		case out <- StreamMessage{Handle: handle, Kind: StreamMessageKeys, Keys: keys}:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	cmd, err := riak.NewSecondaryIndexQueryCommandBuilder().
		WithBucketType(c.bucketType).
		WithBucket(bucket).
		WithIndexName("$bucket").
		WithIndexKey(bucket).
		WithStreaming(true).
		WithCallback(cb).
		Build()
	if err != nil {
		return nil, err
	}

	go func() {
		defer close(out)
		kind := StreamMessageDone
		if err := c.cluster.Execute(cmd); err != nil {
			kind = StreamMessageAborted
		}
		select {
		case out <- StreamMessage{Handle: handle, Kind: kind}:
		case <-ctx.Done():
		}
	}()

	return &KeyStream{Handle: handle, C: out}, nil
}

func (c *protocolClient) Close() error {
	return c.cluster.Stop()
}

// fromDriverMap copies a fetched driver map into the engine representation.
func fromDriverMap(m *riak.Map) *MapValue {
	value := NewMapValue()
	if m == nil {
		return value
	}

	for name, reg := range m.Registers {
		value.Registers[name] = reg
	}
	for name, set := range m.Sets {
		value.Sets[name] = set
	}
	for name, nested := range m.Maps {
		value.Maps[name] = fromDriverMap(nested)
	}
	for name, count := range m.Counters {
		value.Counters[name] = count
	}
	for name, flag := range m.Flags {
		value.Flags[name] = flag
	}
	return value
}

// toDriverOp translates an engine map update into a driver map operation.
func toDriverOp(update *MapUpdate) *riak.MapOperation {
	op := &riak.MapOperation{}
	applyDriverOp(op, update)
	return op
}

func applyDriverOp(op *riak.MapOperation, update *MapUpdate) {
	for name, reg := range update.Registers {
		op.SetRegister(name, reg)
	}
	for name, members := range update.Sets {
		for _, member := range members {
			op.AddToSet(name, member)
		}
	}
	for name, nested := range update.Maps {
		applyDriverOp(op.Map(name), nested)
	}
}
