package util

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/nakachan-ing/todo-cli/internal/model"
)

// GenerateMetadata maps every file under dir (relative, slash separated) to
// its modification time. Names listed in exclude are skipped.
func GenerateMetadata(dir string, exclude []string) (map[string]string, error) {
	metadata := make(map[string]string)
	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}

	err := filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			log.Printf("⚠️ Failed to access path: %s (%v)", p, err)
			return nil
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(dir, p)
		if err != nil {
			log.Printf("⚠️ Failed to get relative path for: %s (%v)", p, err)
			return nil
		}
		relPath = filepath.ToSlash(relPath)
		if skip[relPath] || skip[path.Base(relPath)] || path.Ext(relPath) == ".tmp" {
			return nil
		}

		metadata[relPath] = info.ModTime().UTC().Format(time.RFC3339)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}

	return metadata, nil
}

func SaveMetadata(metadataPath string, metadata map[string]string) error {
	data, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", model.MetadataFile, err)
	}

	if err := os.MkdirAll(filepath.Dir(metadataPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", metadataPath, err)
	}
	if err := os.WriteFile(metadataPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", metadataPath, err)
	}
	return nil
}

// LoadMetadata returns an empty map when metadataPath does not exist.
func LoadMetadata(metadataPath string) (map[string]string, error) {
	data, err := os.ReadFile(metadataPath)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", metadataPath, err)
	}
	return parseMetadata(data)
}

func parseMetadata(data []byte) (map[string]string, error) {
	metadata := make(map[string]string)
	if len(data) == 0 {
		return metadata, nil
	}
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}
	return metadata, nil
}

func metadataKey(config model.Config) string {
	return ObjectKey(config, model.MetadataFile)
}

func UploadMetadata(ctx context.Context, client ObjectStore, config model.Config, metadata map[string]string) error {
	data, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	key := metadataKey(config)
	if err := putBytes(ctx, client, config.Sync.Bucket, key, data); err != nil {
		return err
	}
	log.Printf("✅ %s uploaded to S3!", key)
	return nil
}

// DownloadMetadata returns an empty map when the bucket has no metadata yet.
func DownloadMetadata(ctx context.Context, client ObjectStore, config model.Config) (map[string]string, error) {
	key := metadataKey(config)
	resp, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(config.Sync.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFoundErr(err) {
			log.Printf("⚠️ No %s found on S3, returning empty metadata.", key)
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("failed to download %s from S3: %w", key, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s from S3: %w", key, err)
	}
	return parseMetadata(data)
}

const (
	SourceLocal  = "local"
	SourceRemote = "s3"
)

// DetectChanges lists the files that are newer (or only present) on the
// source side. Timestamps within one second count as equal.
func DetectChanges(localMeta, remoteMeta map[string]string, source string) []string {
	var filesToSync []string

	for file, remoteTimeStr := range remoteMeta {
		localTimeStr, exists := localMeta[file]

		if !exists {
			if source == SourceRemote {
				filesToSync = append(filesToSync, file)
			}
			continue
		}

		remoteTime, err := time.Parse(time.RFC3339, remoteTimeStr)
		if err != nil {
			log.Printf("⚠️ Failed to parse remote timestamp for %s: %v", file, err)
			continue
		}

		localTime, err := time.Parse(time.RFC3339, localTimeStr)
		if err != nil {
			log.Printf("⚠️ Failed to parse local timestamp for %s: %v", file, err)
			continue
		}

		if source == SourceRemote && remoteTime.After(localTime.Add(1*time.Second)) {
			filesToSync = append(filesToSync, file)
		}
		if source == SourceLocal && localTime.After(remoteTime.Add(1*time.Second)) {
			filesToSync = append(filesToSync, file)
		}
	}

	if source == SourceLocal {
		for file := range localMeta {
			if _, exists := remoteMeta[file]; !exists {
				filesToSync = append(filesToSync, file)
			}
		}
	}

	sort.Strings(filesToSync)
	return filesToSync
}
