// Package artifact provides storage abstraction for pipeline step outputs.
//
// A Store holds the named artifacts of one run: frame payloads, the verbatim
// metadata document, the manifest, model info. Each run owns its store
// exclusively; same-named artifacts are silently overwritten.
//
// # Built-in implementations
//
//   - LocalStore: local filesystem (the processing container's output dir)
//   - MemoryStore: in-memory, for tests
//   - s3.Store: Amazon S3 via the upload manager
//   - minio.Store: MinIO and other S3-compatible endpoints
package artifact
