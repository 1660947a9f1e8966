// Package blobstore abstracts where score files live.
//
// A ScoreArray or ScoreData can be saved to and loaded from any BlobStore
// instead of a local path.
//
// # Built-in Implementations
//
//   - LocalStore: local directory, memory-mapped reads, atomic rename on write
//   - MemoryStore: in-process map, for tests
//   - s3.Store: Amazon S3 (aws-sdk-go-v2)
//   - minio.Store: MinIO and other S3-compatible servers
//
// Names are slash-separated; stores with a root prefix join it in front of
// every name.
package blobstore
