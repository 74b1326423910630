package locations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"path/filepath"

	"puzzled-pint-map/core/storage"
	"puzzled-pint-map/core/utils"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Publisher persists feature collections.
type Publisher interface {
	Publish(ctx context.Context, eventID int, fc *FeatureCollection) ([]string, error)
}

// ArtifactPublisher writes collections to a directory and, when a storage
// client is configured, mirrors them to a bucket.
type ArtifactPublisher struct {
	dir    string
	client storage.Client
	bucket string
	region string
	prefix string
	logger *zap.Logger
}

// NewArtifactPublisher creates a publisher writing to dir only.
func NewArtifactPublisher(dir string, logger *zap.Logger) *ArtifactPublisher {
	return &ArtifactPublisher{dir: dir, logger: logger}
}

// WithBucket enables the bucket mirror.
func (p *ArtifactPublisher) WithBucket(client storage.Client, bucket, region, prefix string) *ArtifactPublisher {
	p.client = client
	p.bucket = bucket
	p.region = region
	p.prefix = prefix
	return p
}

// FileName returns the artifact name for an event.
func FileName(eventID int) string {
	return fmt.Sprintf("locations_%d.geojson", eventID)
}

// Publish writes the collection and returns the locations it was written to.
func (p *ArtifactPublisher) Publish(ctx context.Context, eventID int, fc *FeatureCollection) ([]string, error) {
	if fc == nil {
		fc = NewFeatureCollection()
	}
	if fc.Features == nil {
		fc.Features = []Feature{}
	}

	data, err := json.Marshal(fc)
	if err != nil {
		return nil, fmt.Errorf("locations: failed to encode event %d: %w", eventID, err)
	}

	name := FileName(eventID)
	localPath := filepath.Join(p.dir, name)
	if err := utils.WriteFileAtomic(localPath, data); err != nil {
		return nil, fmt.Errorf("locations: failed to write %s: %w", localPath, err)
	}
	written := []string{localPath}
	p.logger.Info("Wrote feature collection", zap.String("path", localPath), zap.Int("features", len(fc.Features)))

	if p.client == nil {
		return written, nil
	}

	if err := storage.EnsureBucket(ctx, p.client, p.bucket, p.region); err != nil {
		return written, err
	}

	objectName := path.Join(p.prefix, name)
	_, err = p.client.PutObject(ctx, p.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/geo+json",
	})
	if err != nil {
		return written, fmt.Errorf("locations: failed to upload %s: %w", objectName, err)
	}
	written = append(written, fmt.Sprintf("s3://%s/%s", p.bucket, objectName))
	p.logger.Info("Uploaded feature collection", zap.String("bucket", p.bucket), zap.String("object", objectName))

	return written, nil
}
