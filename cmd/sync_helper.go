package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/nakachan-ing/todo-cli/internal/model"
	"github.com/nakachan-ing/todo-cli/internal/util"
)

// SyncWithS3 pushes or pulls the files of the data directory that changed
// since the other side's metadata snapshot.
func SyncWithS3(ctx context.Context, config model.Config, direction string) error {
	s3Client, err := util.NewS3Client(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}
	return syncDataDir(ctx, s3Client, config, direction)
}

func syncDataDir(ctx context.Context, client util.ObjectStore, config model.Config, direction string) error {
	remoteMetadata, err := util.DownloadMetadata(ctx, client, config)
	if err != nil {
		return fmt.Errorf("failed to download metadata from S3: %w", err)
	}

	switch direction {
	case "pull":
		localMetadata, err := util.GenerateMetadata(config.DataDir, config.Sync.Exclude)
		if err != nil {
			return err
		}

		fileList := util.DetectChanges(localMetadata, remoteMetadata, util.SourceRemote)
		if len(fileList) == 0 {
			log.Println("✅ No changes detected. Everything is up-to-date.")
			return nil
		}

		log.Println("🔄 Downloading changed files from S3...")
		if err := util.SyncFiles(ctx, client, config, "pull", fileList); err != nil {
			return err
		}
		// keep pulled files from looking locally modified on the next push
		for _, file := range fileList {
			if t, err := time.Parse(time.RFC3339, remoteMetadata[file]); err == nil {
				_ = os.Chtimes(filepath.Join(config.DataDir, filepath.FromSlash(file)), t, t)
			}
		}
		return util.SaveMetadata(config.MetadataPath(), remoteMetadata)

	case "push":
		log.Println("🔄 Generating metadata for push...")
		localMetadata, err := util.GenerateMetadata(config.DataDir, config.Sync.Exclude)
		if err != nil {
			return err
		}

		fileList := util.DetectChanges(localMetadata, remoteMetadata, util.SourceLocal)
		if len(fileList) == 0 {
			log.Println("✅ No changes detected. Everything is up-to-date.")
			return nil
		}

		log.Println("🔄 Uploading changed files to S3...")
		if err := util.SyncFiles(ctx, client, config, "push", fileList); err != nil {
			return err
		}
		if err := util.UploadMetadata(ctx, client, config, localMetadata); err != nil {
			return err
		}
		return util.SaveMetadata(config.MetadataPath(), localMetadata)
	}

	return fmt.Errorf("unknown sync direction: %s", direction)
}

// ShowSyncStatus lists the files each direction would transfer.
func ShowSyncStatus(ctx context.Context, config model.Config) error {
	s3Client, err := util.NewS3Client(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	localMetadata, err := util.GenerateMetadata(config.DataDir, config.Sync.Exclude)
	if err != nil {
		return err
	}
	remoteMetadata, err := util.DownloadMetadata(ctx, s3Client, config)
	if err != nil {
		return err
	}

	fmt.Println("📌 Files to be updated from S3:")
	for _, file := range util.DetectChanges(localMetadata, remoteMetadata, util.SourceRemote) {
		fmt.Println("   -", file)
	}
	fmt.Println("📌 Files to be uploaded to S3:")
	for _, file := range util.DetectChanges(localMetadata, remoteMetadata, util.SourceLocal) {
		fmt.Println("   -", file)
	}
	return nil
}
