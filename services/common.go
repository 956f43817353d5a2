package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxImageBytes = 10 << 20

var httpClient = &http.Client{Timeout: 30 * time.Second}

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
	"image/heic": true,
}

// heifBrands are the ftyp major brands of HEIC/HEIF photos, which
// http.DetectContentType does not recognise.
var heifBrands = [][]byte{
	[]byte("heic"), []byte("heix"), []byte("heim"), []byte("heis"),
	[]byte("mif1"), []byte("msf1"),
}

func detectImageType(content []byte) string {
	if len(content) >= 12 && bytes.Equal(content[4:8], []byte("ftyp")) {
		for _, brand := range heifBrands {
			if bytes.Equal(content[8:12], brand) {
				return "image/heic"
			}
		}
	}
	return http.DetectContentType(content)
}

// ReadImageFromUrl downloads an image and reports its sniffed content type.
func ReadImageFromUrl(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get response: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("failed to fetch file, status code: %d", resp.StatusCode)
	}

	content, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response body: %w", err)
	}
	if len(content) > maxImageBytes {
		return nil, "", fmt.Errorf("image is larger than %d bytes", maxImageBytes)
	}
	mimeType := detectImageType(content)
	if !allowedImageTypes[mimeType] {
		return nil, mimeType, fmt.Errorf("unsupported file type: %s", mimeType)
	}
	return content, mimeType, nil
}

func StrPointer(str string) *string {
	return &str
}
