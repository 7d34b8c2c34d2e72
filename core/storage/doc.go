// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a small interface covering what the
// catalog needs for product images: bucket checks, upload, download, stat and
// delete. The abstraction supports both AWS S3 and self-hosted MinIO.
//
// The Client interface makes storage interactions easy to mock in unit tests
// (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg)
//	exists, err := client.BucketExists(ctx, "catalog")
package storage
