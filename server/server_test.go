package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/lossless/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := DefaultConfig()
	cfg.UploadDir = filepath.Join(t.TempDir(), "uploads")
	cfg.MaxUploadBytes = 1 << 20

	s, err := New(cfg, nil)
	require.NoError(t, err)

	return s
}

func multipartBody(t *testing.T, filename string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func post(t *testing.T, h http.Handler, path, filename string, content []byte, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := multipartBody(t, filename, content, fields)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())

	return v
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.MaxUploadBytes = 0
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Addr = ""
	_, err := New(cfg, nil)
	require.Error(t, err)
}

func TestRoot(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, healthText, rec.Body.String())
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflight(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/compress", nil))

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestUpload(t *testing.T) {
	s := newTestServer(t)

	rec := post(t, s.Handler(), "/upload", "hello.txt", []byte("hello"), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[uploadResponse](t, rec)
	require.Equal(t, "hello.txt", resp.OriginalName)
	require.EqualValues(t, 5, resp.Size)
	require.True(t, strings.HasSuffix(resp.Filename, "-hello.txt"))
	require.Len(t, resp.Checksum, 16)

	data, err := s.Store().Read(resp.Filename)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), data)

	rec = post(t, s.Handler(), "/upload", "", nil, map[string]string{"algorithm": "rle"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompressDecompressDownload(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()
	original := []byte(strings.Repeat("compress me over http, ", 40))

	for _, algorithm := range []string{"rle", "huffman", "lz77"} {
		t.Run(algorithm, func(t *testing.T) {
			rec := post(t, h, "/compress", "doc.txt", original, map[string]string{"algorithm": algorithm})
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			cresp := decode[compressResponse](t, rec)
			require.Equal(t, algorithm, cresp.Algorithm)
			require.Equal(t, len(original), cresp.OriginalSize)
			require.Equal(t, "compressed-doc.txt", cresp.OutputFilename)
			require.NotEmpty(t, cresp.CompressionRatio)
			require.NotEmpty(t, cresp.ProcessingTime)

			rec = httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/download/"+cresp.OutputFilename, nil))
			require.Equal(t, http.StatusOK, rec.Code)
			require.Contains(t, rec.Header().Get("Content-Disposition"), "compressed-doc.txt")
			artifact := rec.Body.Bytes()
			require.Len(t, artifact, cresp.CompressedSize)

			rec = post(t, h, "/decompress", cresp.OutputFilename, artifact, map[string]string{"algorithm": algorithm})
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			dresp := decode[decompressResponse](t, rec)
			require.Equal(t, "text", dresp.FileType)
			require.Equal(t, len(original), dresp.DecompressedSize)
			require.Equal(t, len(artifact), dresp.CompressedSize)
			require.Equal(t, "decompressed-compressed-doc.txt", dresp.OutputFilename)

			restored, err := s.Store().Read(dresp.OutputFilename)
			require.NoError(t, err)
			require.Equal(t, original, restored)
		})
	}
}

func TestDecompress_ImageFileType(t *testing.T) {
	h := newTestServer(t).Handler()
	pixels := bytes.Repeat([]byte{0, 0, 0, 255}, 64)

	rec := post(t, h, "/compress", "px.png", pixels, map[string]string{"algorithm": "rle"})
	require.Equal(t, http.StatusOK, rec.Code)
	cresp := decode[compressResponse](t, rec)
	require.Equal(t, "compressed-px.png", cresp.OutputFilename)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/download/compressed-px.png", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = post(t, h, "/decompress", "compressed-px.png", rec.Body.Bytes(), map[string]string{"algorithm": "rle"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image", decode[decompressResponse](t, rec).FileType)
}

func TestCompress_Errors(t *testing.T) {
	h := newTestServer(t).Handler()

	tests := []struct {
		name     string
		path     string
		filename string
		content  []byte
		fields   map[string]string
		status   int
	}{
		{"no file", "/compress", "", nil, map[string]string{"algorithm": "rle"}, http.StatusBadRequest},
		{"no algorithm", "/compress", "a.txt", []byte("a"), nil, http.StatusBadRequest},
		{"bad extension", "/compress", "a.exe", []byte("a"), map[string]string{"algorithm": "rle"}, http.StatusBadRequest},
		{"bad algorithm", "/compress", "a.txt", []byte("a"), map[string]string{"algorithm": "bzip2"}, http.StatusBadRequest},
		{"invalid utf8", "/compress", "a.txt", []byte{0xff}, map[string]string{"algorithm": "huffman"}, http.StatusUnprocessableEntity},
		{"corrupt artifact", "/decompress", "a.bin", []byte{1, 2, 3}, map[string]string{"algorithm": "lz77"}, http.StatusUnprocessableEntity},
		{"bad rle text", "/decompress", "a.txt", []byte("a0;"), map[string]string{"algorithm": "rle"}, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, h, tt.path, tt.filename, tt.content, tt.fields)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())

			resp := decode[errorResponse](t, rec)
			require.NotEmpty(t, resp.Error)
		})
	}
}

func TestCompress_TooLarge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UploadDir = t.TempDir()
	cfg.MaxUploadBytes = 1024

	s, err := New(cfg, nil)
	require.NoError(t, err)

	rec := post(t, s.Handler(), "/compress", "big.txt", bytes.Repeat([]byte("x"), 4096), map[string]string{"algorithm": "rle"})
	require.NotEqual(t, http.StatusOK, rec.Code)
	require.Less(t, rec.Code, http.StatusInternalServerError)
}

func TestDownload_Errors(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/download/missing.txt", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/download/..", nil))
	require.NotEqual(t, http.StatusOK, rec.Code)
}

func TestStatusFor(t *testing.T) {
	require.Equal(t, http.StatusNotFound, statusFor(store.ErrNotFound))
	require.Equal(t, http.StatusBadRequest, statusFor(store.ErrInvalidName))
	require.Equal(t, http.StatusRequestEntityTooLarge, statusFor(&http.MaxBytesError{Limit: 1}))
	require.Equal(t, http.StatusInternalServerError, statusFor(io.ErrUnexpectedEOF))
}

func TestServe_Shutdown(t *testing.T) {
	s := newTestServer(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Serve(ctx, ln)
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, err)
	require.Equal(t, healthText, string(body))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	_, err = os.Stat(s.Store().Dir())
	require.NoError(t, err)
}
