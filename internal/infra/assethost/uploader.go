// internal/infra/assethost/uploader.go
package assethost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	assetdom "framecraft/internal/domain/asset"
)

// HTTPUploader posts image payloads to the hosted asset endpoint as an
// unsigned multipart upload and returns the public URL of the stored
// asset. It implements usecase.AssetUploader.
type HTTPUploader struct {
	client   *http.Client
	endpoint string // e.g. "https://assets.framecraft.app/v1/upload"
	preset   string // unsigned upload preset name
	folder   string // optional destination folder on the host
	apiKey   string // optional; some deployments front the host with auth
}

func NewHTTPUploader(endpoint, preset, folder, apiKey string) *HTTPUploader {
	endpoint = strings.TrimSpace(endpoint)
	endpoint = strings.TrimRight(endpoint, "/")

	return &HTTPUploader{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		endpoint: endpoint,
		preset:   strings.TrimSpace(preset),
		folder:   strings.Trim(strings.TrimSpace(folder), "/"),
		apiKey:   apiKey,
	}
}

// minImageDataLen rejects obviously truncated payloads before any
// network round trip is made.
const minImageDataLen = 32

// Upload sends one image and returns (url, assetID). assetID is the
// host-side public id, usable for later admin operations.
func (u *HTTPUploader) Upload(ctx context.Context, imageData, destinationID string) (string, string, error) {
	if u == nil {
		return "", "", fmt.Errorf("uploader is nil")
	}
	if u.endpoint == "" {
		return "", "", fmt.Errorf("endpoint is empty; asset host not configured")
	}
	destID := strings.TrimSpace(destinationID)
	if destID == "" {
		return "", "", fmt.Errorf("destinationID is empty")
	}
	if len(strings.TrimSpace(imageData)) < minImageDataLen {
		return "", "", assetdom.ErrInvalidImageData
	}

	raw, contentType, err := assetdom.DecodeImageData(imageData)
	if err != nil {
		return "", "", fmt.Errorf("decode image data: %w", err)
	}

	body, formContentType, err := u.buildForm(raw, contentType, destID)
	if err != nil {
		return "", "", fmt.Errorf("build upload form: %w", err)
	}

	log.Printf("[assethost] Upload start dest=%s size=%d", destID, len(raw))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, body)
	if err != nil {
		log.Printf("[assethost] create request FAILED err=%v", err)
		return "", "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", formContentType)

	if u.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+u.apiKey)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		log.Printf("[assethost] http request FAILED err=%v", err)
		return "", "", fmt.Errorf("upload image: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf(
			"[assethost] upload FAILED status=%d body=%s",
			resp.StatusCode,
			string(bodyBytes),
		)
		return "", "", fmt.Errorf("upload failed: status=%d body=%s", resp.StatusCode, string(bodyBytes))
	}

	var res struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
		PublicID  string `json:"public_id"`
	}
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Printf("[assethost] decode response FAILED err=%v body=%s", err, string(bodyBytes))
		return "", "", fmt.Errorf("decode upload response: %w", err)
	}

	url := res.SecureURL
	if url == "" {
		url = res.URL
	}
	if url == "" {
		log.Printf("[assethost] upload response has empty url body=%s", string(bodyBytes))
		return "", "", fmt.Errorf("upload response has empty url")
	}

	log.Printf("[assethost] Upload OK dest=%s url=%s", destID, url)
	return url, res.PublicID, nil
}

// buildForm assembles the multipart body in memory. Payloads are capped
// upstream by the HTTP layer, so buffering here is acceptable.
func (u *HTTPUploader) buildForm(raw []byte, contentType, destID string) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, destID))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(raw); err != nil {
		return nil, "", err
	}

	if u.preset != "" {
		if err := w.WriteField("upload_preset", u.preset); err != nil {
			return nil, "", err
		}
	}
	if err := w.WriteField("public_id", destID); err != nil {
		return nil, "", err
	}
	if u.folder != "" {
		if err := w.WriteField("folder", u.folder); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}
