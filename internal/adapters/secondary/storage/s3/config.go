package s3

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Config struct {
	Host         string        `envconfig:"HOST"`                     // localhost:9000
	AccessKey    string        `envconfig:"ACCESS_KEY"`               // minioadmin
	SecretKey    string        `envconfig:"SECRET_KEY"`               // minioadmin
	Bucket       string        `envconfig:"BUCKET" default:"banners"` // banners
	UseSSL       bool          `envconfig:"USE_SSL" default:"false"`  // false для локальной разработки
	CreateBucket bool          `envconfig:"CREATE_BUCKET" default:"false"`
	KeyPrefix    string        `envconfig:"KEY_PREFIX" default:"banners/"`
	PresignTTL   time.Duration `envconfig:"PRESIGN_TTL" default:"1h"`
}

// Enabled архив включается, если задан хост
func (c *Config) Enabled() bool {
	return c != nil && c.Host != ""
}

// NewClient создаёт новый MinIO клиент
func (c *Config) NewClient() (*minio.Client, error) {
	client, err := minio.New(c.Host, &minio.Options{
		Creds:  credentials.NewStaticV4(c.AccessKey, c.SecretKey, ""),
		Secure: c.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, c.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if !c.CreateBucket {
			return nil, fmt.Errorf("bucket %s does not exist", c.Bucket)
		}
		if err := client.MakeBucket(ctx, c.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", c.Bucket, err)
		}
	}

	return client, nil
}
