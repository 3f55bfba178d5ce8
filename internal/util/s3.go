package util

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/nakachan-ing/todo-cli/internal/model"
	"golang.org/x/sync/errgroup"
)

// ObjectStore is the subset of *s3.Client used for sync.
type ObjectStore interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

const maxParallelTransfers = 4

func NewS3Client(ctx context.Context, todoConfig model.Config) (*s3.Client, error) {
	var opts []func(*config.LoadOptions) error
	if todoConfig.Sync.AWSProfile != "" {
		opts = append(opts, config.WithSharedConfigProfile(todoConfig.Sync.AWSProfile))
	}
	if todoConfig.Sync.AWSRegion != "" {
		opts = append(opts, config.WithRegion(todoConfig.Sync.AWSRegion))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	return s3.NewFromConfig(cfg), nil
}

// ObjectKey maps a data-dir relative file to its key under Sync.Prefix.
func ObjectKey(config model.Config, relPath string) string {
	return path.Join(config.Sync.Prefix, filepath.ToSlash(relPath))
}

func UploadToS3(ctx context.Context, client ObjectStore, bucket, filePath, s3Key string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(s3Key),
		Body:   file,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to S3: %w", s3Key, err)
	}

	log.Printf("✅ Uploaded %s to S3", s3Key)
	return nil
}

func DownloadFromS3(ctx context.Context, client ObjectStore, bucket, s3Key, localPath string) error {
	resp, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(s3Key),
	})
	if err != nil {
		return fmt.Errorf("failed to download %s from S3: %w", s3Key, err)
	}
	defer resp.Body.Close()

	localDir := filepath.Dir(localPath)
	if err := os.MkdirAll(localDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", localDir, err)
	}

	file, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", localPath, err)
	}
	defer file.Close()

	if _, err := file.ReadFrom(resp.Body); err != nil {
		return fmt.Errorf("failed to write file %s: %w", localPath, err)
	}

	log.Printf("✅ Downloaded %s from S3", s3Key)
	return nil
}

// SyncFiles transfers files (relative to the data dir) in the given
// direction, a few at a time. The first failure cancels the rest.
func SyncFiles(ctx context.Context, client ObjectStore, config model.Config, direction string, files []string) error {
	if direction != "push" && direction != "pull" {
		return fmt.Errorf("unknown sync direction: %s", direction)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelTransfers)

	for _, file := range files {
		localPath := filepath.Join(config.DataDir, filepath.FromSlash(file))
		key := ObjectKey(config, file)

		if direction == "push" {
			g.Go(func() error {
				return UploadToS3(ctx, client, config.Sync.Bucket, localPath, key)
			})
		} else {
			g.Go(func() error {
				return DownloadFromS3(ctx, client, config.Sync.Bucket, key, localPath)
			})
		}
	}

	return g.Wait()
}

func putBytes(ctx context.Context, client ObjectStore, bucket, key string, data []byte) error {
	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to S3: %w", key, err)
	}
	return nil
}

func isNotFoundErr(err error) bool {
	var noSuchKey *types.NoSuchKey
	return errors.As(err, &noSuchKey)
}
