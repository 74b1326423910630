// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so generated feature collections can be mirrored
// to AWS S3 or a self-hosted MinIO bucket, where the static map page reads them.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - MakeBucket: Creates a new bucket if needed (see EnsureBucket).
//   - PutObject: Uploads content (with size and options).
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	err = storage.EnsureBucket(ctx, client, "puzzled-pint-map", "")
package storage
