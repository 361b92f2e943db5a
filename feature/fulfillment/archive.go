package fulfillment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"order-reconciler/core/storage"
	"order-reconciler/feature/fulfillment/plan"

	"go.uber.org/zap"
)

const (
	// ContentTypeXLSX is the media type of exported workbooks.
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeJSON = "application/json"
)

// Archiver writes finished runs to object storage.
type Archiver struct {
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewArchiver creates an archiver writing to bucket.
func NewArchiver(client storage.Client, bucket string, logger *zap.Logger) *Archiver {
	return &Archiver{client: client, bucket: bucket, logger: logger}
}

// ArchivePrefix returns the object prefix of a date's archived runs.
func ArchivePrefix(date time.Time) string {
	return "reports/" + date.Format(plan.DateLayout) + "/"
}

// Archive stores reports as reports/<date>/<timestamp>.json and .xlsx and
// returns the object names.
func (a *Archiver) Archive(ctx context.Context, date time.Time, reports []PlatformReport, at time.Time) ([]string, error) {
	if err := storage.EnsureBucket(ctx, a.client, a.bucket); err != nil {
		return nil, err
	}

	base := ArchivePrefix(date) + at.UTC().Format("20060102T150405Z")

	data, err := json.Marshal(reports)
	if err != nil {
		return nil, fmt.Errorf("failed to encode reports: %w", err)
	}
	xlsx, err := ExportXLSX(reports)
	if err != nil {
		return nil, err
	}

	names := []string{base + ".json", base + ".xlsx"}
	if err := storage.PutBytes(ctx, a.client, a.bucket, names[0], contentTypeJSON, data); err != nil {
		return nil, err
	}
	if err := storage.PutBytes(ctx, a.client, a.bucket, names[1], ContentTypeXLSX, xlsx); err != nil {
		return nil, err
	}

	a.logger.Debug("Archived run", zap.String("bucket", a.bucket), zap.Strings("objects", names))
	return names, nil
}

// List returns the archived object names of date.
func (a *Archiver) List(ctx context.Context, date time.Time) ([]string, error) {
	return storage.List(ctx, a.client, a.bucket, ArchivePrefix(date))
}
