package cloudinary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/torkelwestby/christmas-rebus/internal/platform/envutil"
	"github.com/torkelwestby/christmas-rebus/internal/platform/logger"
)

// Upload is the media host's view of a stored image.
type Upload struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

// Client uploads images to the external media host using an unsigned preset.
// The host accepts remote URLs and data:...;base64 payloads alike in the
// file field.
type Client interface {
	UploadImage(ctx context.Context, fileRef string, filename string) (Upload, error)
}

type client struct {
	log          *logger.Logger
	baseURL      string
	cloudName    string
	uploadPreset string
	httpClient   *http.Client
}

func NewClient(log *logger.Logger) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	cloudName := strings.TrimSpace(os.Getenv("CLOUDINARY_CLOUD_NAME"))
	uploadPreset := strings.TrimSpace(os.Getenv("CLOUDINARY_UPLOAD_PRESET"))
	if cloudName == "" || uploadPreset == "" {
		return nil, fmt.Errorf("missing CLOUDINARY_CLOUD_NAME or CLOUDINARY_UPLOAD_PRESET")
	}

	baseURL := strings.TrimRight(envutil.Str("CLOUDINARY_BASE_URL", "https://api.cloudinary.com"), "/")
	timeoutSec := envutil.Int("CLOUDINARY_TIMEOUT_SECONDS", 30)

	return &client{
		log:          log.With("service", "CloudinaryClient"),
		baseURL:      baseURL,
		cloudName:    cloudName,
		uploadPreset: uploadPreset,
		httpClient:   &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}, nil
}

func (c *client) UploadImage(ctx context.Context, fileRef string, filename string) (Upload, error) {
	var out Upload
	fileRef = strings.TrimSpace(fileRef)
	if fileRef == "" {
		return out, fmt.Errorf("file reference required")
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	_ = writer.WriteField("file", fileRef)
	_ = writer.WriteField("upload_preset", c.uploadPreset)
	if strings.TrimSpace(filename) != "" {
		_ = writer.WriteField("public_id_prefix", strings.TrimSuffix(filename, ".jpg"))
	}
	_ = writer.Close()

	url := fmt.Sprintf("%s/v1_1/%s/image/upload", c.baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return out, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return out, err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return out, readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return out, fmt.Errorf("cloudinary http %d: %s", resp.StatusCode, string(raw))
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, err
	}
	if strings.TrimSpace(out.SecureURL) == "" {
		return out, fmt.Errorf("cloudinary response missing secure_url")
	}
	return out, nil
}
