package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/arloliu/lossless"
	"github.com/arloliu/lossless/errs"
	"github.com/arloliu/lossless/format"
	"github.com/arloliu/lossless/store"
)

const healthText = "Compression server is running"

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".bmp": true, ".gif": true,
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type uploadResponse struct {
	Message      string `json:"message"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	Checksum     string `json:"checksum"`
}

type compressResponse struct {
	Message          string `json:"message"`
	Algorithm        string `json:"algorithm"`
	OriginalSize     int    `json:"originalSize"`
	CompressedSize   int    `json:"compressedSize"`
	CompressionRatio string `json:"compressionRatio"`
	ProcessingTime   string `json:"processingTime"`
	OutputFilename   string `json:"outputFilename"`
	Checksum         string `json:"checksum"`
}

type decompressResponse struct {
	Message            string `json:"message"`
	Algorithm          string `json:"algorithm"`
	FileType           string `json:"fileType"`
	CompressedSize     int    `json:"compressedSize"`
	DecompressedSize   int    `json:"decompressedSize"`
	DecompressionRatio string `json:"decompressionRatio"`
	ProcessingTime     string `json:"processingTime"`
	OutputFilename     string `json:"outputFilename"`
	Checksum           string `json:"checksum"`
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, healthText)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := s.formFile(w, r)
	if err != nil {
		writeError(w, statusFor(err), "No file uploaded", err)
		return
	}
	defer file.Close()

	entry, err := s.store.Save(header.Filename, file)
	if err != nil {
		writeError(w, statusFor(err), "Upload failed", err)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Message:      "File uploaded successfully",
		Filename:     entry.Name,
		OriginalName: entry.OriginalName,
		Size:         entry.Size,
		Checksum:     entry.Checksum,
	})
}

func (s *Server) handleCompress(w http.ResponseWriter, r *http.Request) {
	algorithm, name, data, ok := s.readCodecRequest(w, r)
	if !ok {
		return
	}

	start := time.Now()
	result, err := lossless.CompressFile(name, data, algorithm)
	if err != nil {
		writeError(w, statusFor(err), "Compression failed", err)
		return
	}
	elapsed := time.Since(start)

	if _, err := s.store.Write(result.OutputName, result.Data); err != nil {
		writeError(w, http.StatusInternalServerError, "Compression failed: no output file generated", err)
		return
	}

	log.Debugf("compressed %s with %s/%s: %d -> %d bytes",
		name, result.Stats.Codec.Name(), result.Variant, result.Stats.OriginalSize, result.Stats.CompressedSize)

	writeJSON(w, http.StatusOK, compressResponse{
		Message:          "File compressed using " + algorithm,
		Algorithm:        algorithm,
		OriginalSize:     result.Stats.OriginalSize,
		CompressedSize:   result.Stats.CompressedSize,
		CompressionRatio: fmt.Sprintf("%.2f", result.Stats.Ratio()),
		ProcessingTime:   formatSeconds(elapsed),
		OutputFilename:   result.OutputName,
		Checksum:         result.Checksum,
	})
}

func (s *Server) handleDecompress(w http.ResponseWriter, r *http.Request) {
	algorithm, name, data, ok := s.readCodecRequest(w, r)
	if !ok {
		return
	}

	start := time.Now()
	result, err := lossless.DecompressFile(name, data, algorithm)
	if err != nil {
		writeError(w, statusFor(err), "Decompression failed or invalid file format", err)
		return
	}
	elapsed := time.Since(start)

	if _, err := s.store.Write(result.OutputName, result.Data); err != nil {
		writeError(w, http.StatusInternalServerError, "Decompression failed: no output file generated", err)
		return
	}

	writeJSON(w, http.StatusOK, decompressResponse{
		Message:            "File decompressed with " + algorithm,
		Algorithm:          algorithm,
		FileType:           fileType(name, result.Variant),
		CompressedSize:     result.Stats.CompressedSize,
		DecompressedSize:   result.Stats.DecompressedSize,
		DecompressionRatio: fmt.Sprintf("%.2f", result.Stats.Ratio()),
		ProcessingTime:     formatSeconds(elapsed),
		OutputFilename:     result.OutputName,
		Checksum:           result.Checksum,
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("filename")

	f, err := s.store.Open(name)
	if err != nil {
		status := statusFor(err)
		http.Error(w, http.StatusText(status), status)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		http.Error(w, "Error during file download", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Type", "application/octet-stream")
	http.ServeContent(w, r, name, info.ModTime(), f)
}

// readCodecRequest stores the uploaded file and returns the algorithm, the
// original file name and the file contents. It writes the error response
// itself and reports false on failure.
func (s *Server) readCodecRequest(w http.ResponseWriter, r *http.Request) (string, string, []byte, bool) {
	file, header, err := s.formFile(w, r)
	if err != nil {
		writeError(w, statusFor(err), "File or algorithm not provided", err)
		return "", "", nil, false
	}
	defer file.Close()

	algorithm := strings.TrimSpace(r.FormValue("algorithm"))
	if algorithm == "" {
		writeError(w, http.StatusBadRequest, "File or algorithm not provided", nil)
		return "", "", nil, false
	}

	if _, err := format.ClassifyFile(header.Filename); err != nil {
		writeError(w, http.StatusBadRequest, "Unsupported file type", err)
		return "", "", nil, false
	}

	entry, err := s.store.Save(header.Filename, file)
	if err != nil {
		writeError(w, statusFor(err), "Upload failed", err)
		return "", "", nil, false
	}

	data, err := s.store.Read(entry.Name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Upload failed", err)
		return "", "", nil, false
	}

	return algorithm, entry.OriginalName, data, true
}

func (s *Server) formFile(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(min(s.cfg.MaxUploadBytes, 8<<20)); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", errMissingFile, err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", errMissingFile, err)
	}

	return file, header, nil
}

var errMissingFile = errors.New("missing file")

// statusFor maps an error to the response status: bad content is 422, a bad
// selector or request is 400, a missing file is 404, everything else is 500.
func statusFor(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errs.IsCodecError(err):
		return http.StatusUnprocessableEntity
	case errs.IsSelectorError(err), errors.Is(err, store.ErrInvalidName), errors.Is(err, errMissingFile):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func fileType(name string, variant format.Variant) string {
	if variant == format.VariantText {
		return "text"
	}
	if imageExtensions[strings.ToLower(filepath.Ext(name))] {
		return "image"
	}

	return "binary"
}

func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := errorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
		if status >= http.StatusInternalServerError {
			log.Errorf("%s: %v", message, err)
		}
	}
	writeJSON(w, status, resp)
}
