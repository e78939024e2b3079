package archive

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// Archiver receives meeting audio right before the meeting is deleted from
// local storage.
type Archiver interface {
	ArchiveMeeting(ctx context.Context, meetingID string, chunkPaths []string) error
}

// Config carries the object storage connection settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinioArchiver copies meeting chunks into an object storage bucket under
// meetings/<id>/<filename>.
type MinioArchiver struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

// NewMinioArchiver connects to the object store and ensures the bucket
// exists.
func NewMinioArchiver(ctx context.Context, cfg Config, logger *zap.Logger) (*MinioArchiver, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return &MinioArchiver{client: client, bucket: cfg.Bucket, logger: logger}, nil
}

// ArchiveMeeting uploads every chunk. A failed upload aborts the archive so
// the caller can keep the local copy.
func (a *MinioArchiver) ArchiveMeeting(ctx context.Context, meetingID string, chunkPaths []string) error {
	archivedAt := time.Now().Format(time.RFC3339)
	for _, chunk := range chunkPaths {
		key := path.Join("meetings", meetingID, filepath.Base(chunk))
		_, err := a.client.FPutObject(ctx, a.bucket, key, chunk, minio.PutObjectOptions{
			ContentType: "audio/wav",
			UserMetadata: map[string]string{
				"meeting-id":  meetingID,
				"archived-at": archivedAt,
			},
		})
		if err != nil {
			return fmt.Errorf("archive %s: %w", key, err)
		}
	}
	a.logger.Info("meeting archived",
		zap.String("meeting", meetingID),
		zap.Int("chunks", len(chunkPaths)))
	return nil
}

// NopArchiver is used when no object storage is configured; deletions then
// discard the audio permanently.
type NopArchiver struct{}

func (NopArchiver) ArchiveMeeting(context.Context, string, []string) error { return nil }
