// Package storage archives reconciliation reports in an S3-compatible bucket.
//
// Client is the subset of the MinIO client the application calls, so tests
// can substitute mocks.Client. The helpers EnsureBucket, PutBytes and List
// cover everything the archiver and the health check need.
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.PutBytes(ctx, client, cfg.Storage.Bucket, "reports/2024-05-01/20240502T083000Z.json", "application/json", data)
package storage
