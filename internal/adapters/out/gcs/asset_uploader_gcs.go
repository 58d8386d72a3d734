// internal/adapters/out/gcs/asset_uploader_gcs.go
package gcs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"

	"framecraft/internal/adapters/out/gcs/common"
	assetdom "framecraft/internal/domain/asset"
)

// AssetUploaderGCS is the asset-host adapter for deployments that keep
// order images in a GCS bucket instead of the hosted upload endpoint
// (ASSET_HOST_MODE=gcs). It satisfies the same uploader port as the
// HTTP client: one object per destination id, public URL back.
type AssetUploaderGCS struct {
	Client *storage.Client
	Bucket string
	Folder string
}

func NewAssetUploaderGCS(client *storage.Client, bucket, folder string) *AssetUploaderGCS {
	return &AssetUploaderGCS{
		Client: client,
		Bucket: strings.TrimSpace(bucket),
		Folder: strings.Trim(strings.TrimSpace(folder), "/"),
	}
}

// minImageDataLen mirrors the HTTP uploader's fast-fail: obviously
// corrupt payloads are rejected before touching the bucket.
const minImageDataLen = 32

func (u *AssetUploaderGCS) Upload(ctx context.Context, imageData, destinationID string) (string, string, error) {
	if u == nil || u.Client == nil {
		return "", "", errors.New("asset_uploader_gcs: nil storage client")
	}
	bucket := strings.TrimSpace(u.Bucket)
	if bucket == "" {
		return "", "", errors.New("asset_uploader_gcs: bucket is empty")
	}
	destID := strings.TrimSpace(destinationID)
	if destID == "" {
		return "", "", errors.New("asset_uploader_gcs: destinationID is empty")
	}
	if len(strings.TrimSpace(imageData)) < minImageDataLen {
		return "", "", assetdom.ErrInvalidImageData
	}

	raw, contentType, err := assetdom.DecodeImageData(imageData)
	if err != nil {
		return "", "", fmt.Errorf("asset_uploader_gcs: decode image data: %w", err)
	}

	objName := destID + extensionFor(contentType)
	if u.Folder != "" {
		objName = u.Folder + "/" + objName
	}

	w := u.Client.Bucket(bucket).Object(objName).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := w.Write(raw); err != nil {
		_ = w.Close()
		return "", "", fmt.Errorf("asset_uploader_gcs: write object: %w", err)
	}
	if err := w.Close(); err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			return "", "", fmt.Errorf("asset_uploader_gcs: upload failed: status=%d body=%s", gerr.Code, gerr.Message)
		}
		return "", "", fmt.Errorf("asset_uploader_gcs: upload failed: %w", err)
	}

	url := common.GCSPublicURL(bucket, objName, "")
	log.Printf("[gcs_uploader] uploaded object=%s size=%d", objName, len(raw))
	return url, objName, nil
}

func extensionFor(contentType string) string {
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ""
	}
}
