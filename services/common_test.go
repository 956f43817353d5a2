package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

var heicHeader = []byte("\x00\x00\x00\x18ftypheic\x00\x00\x00\x00mif1heic")

func TestReadImageFromUrl(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/shirt.png":
			w.Write(pngHeader)
		case "/coat.heic":
			w.Write(heicHeader)
		case "/notes.txt":
			w.Write([]byte("plain text"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()
	ctx := context.Background()

	content, mimeType, err := ReadImageFromUrl(ctx, server.URL+"/shirt.png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)
	assert.Equal(t, pngHeader, content)

	content, mimeType, err = ReadImageFromUrl(ctx, server.URL+"/coat.heic")
	require.NoError(t, err)
	assert.Equal(t, "image/heic", mimeType)
	assert.Equal(t, heicHeader, content)

	_, _, err = ReadImageFromUrl(ctx, server.URL+"/notes.txt")
	assert.ErrorContains(t, err, "unsupported file type")

	_, _, err = ReadImageFromUrl(ctx, server.URL+"/missing.png")
	assert.ErrorContains(t, err, "404")
}
