// Package docstore defines the unified contract between a generic
// document-persistence layer and backend-specific store adapters.
//
// A Store adapter translates the generic surface (persist, find-by,
// delete-by, find-all, delete-all) into the native operations of one
// backend technology. The package holds everything the two sides share:
// the document and schema model, the condition tree used to express
// queries, the connection configuration, the error taxonomy, and the
// adapter registry.
//
// Typical usage:
//
//	conn, err := docstore.Connect(ctx, docstore.ConnectionConfig{
//		ConnectionType: "riak",
//		Host:           "127.0.0.1",
//		Port:           8087,
//	})
//	if err != nil { ... }
//	defer conn.Close()
//
//	people := conn.Docs(schema)
//	docs, err := people.FindBy(ctx, []docstore.Condition{
//		docstore.Compare{Field: "age", Op: docstore.OpGreaterThan, Value: 30},
//	}, docstore.FindOptions{})
package docstore
