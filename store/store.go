// Package store keeps uploaded and generated files in one directory.
//
// Uploads are saved under generated names of the form
// <unix-nanos>-<xxhash64>-<original name> so concurrent uploads of the same
// file never collide. Generated outputs are saved under a caller-chosen name.
// Files older than a maximum age are removed by Cleanup, which RunJanitor
// calls on a fixed interval.
package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/op/go-logging"

	"github.com/arloliu/lossless/internal/hash"
)

var log = logging.MustGetLogger("lossless/store")

var (
	// ErrInvalidName reports a file name that is empty or escapes the store directory.
	ErrInvalidName = errors.New("invalid file name")
	// ErrNotFound reports a file that is not in the store.
	ErrNotFound = errors.New("file not found")
)

const tempPattern = ".incoming-*"

// Entry describes a stored file.
type Entry struct {
	// Name is the file name inside the store.
	Name string
	// OriginalName is the name the file was uploaded with.
	OriginalName string
	// Size is the file size in bytes.
	Size int64
	// Checksum is the xxHash64 of the contents as 16 hex digits.
	Checksum string
}

// Store is a flat directory of files. It is safe for concurrent use.
type Store struct {
	dir string
	now func() time.Time
}

// New opens the store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty store directory", ErrInvalidName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory %s: %w", dir, err)
	}

	return &Store{dir: dir, now: time.Now}, nil
}

// Dir returns the store directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the absolute location of name inside the store.
//
// Returns ErrInvalidName if name is empty, contains a path separator or is a
// relative path element.
func (s *Store) Path(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}

	return filepath.Join(s.dir, name), nil
}

// ValidateName checks that name is a single path element.
func ValidateName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`), strings.ContainsRune(name, 0):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	case name != filepath.Base(name):
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	return nil
}

// UniqueName builds the stored name for an upload of original with the given
// content checksum.
func (s *Store) UniqueName(original string, checksum uint64) string {
	return fmt.Sprintf("%d-%016x-%s", s.now().UnixNano(), checksum, filepath.Base(original))
}

// Save copies r into the store under a unique name derived from original.
//
// Returns ErrInvalidName if the base name of original is not usable.
func (s *Store) Save(original string, r io.Reader) (Entry, error) {
	base := filepath.Base(filepath.Clean("/" + strings.ReplaceAll(original, `\`, "/")))
	if err := ValidateName(base); err != nil {
		return Entry{}, err
	}

	tmp, err := os.CreateTemp(s.dir, tempPattern)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to create upload file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	digest := hash.NewDigest()
	size, err := io.Copy(io.MultiWriter(tmp, digest), r)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return Entry{}, fmt.Errorf("failed to store upload %s: %w", base, err)
	}

	sum := digest.Sum64()
	name := s.UniqueName(base, sum)
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return Entry{}, fmt.Errorf("failed to store upload %s: %w", base, err)
	}

	log.Debugf("saved upload %s as %s (%d bytes)", base, name, size)

	return Entry{
		Name:         name,
		OriginalName: base,
		Size:         size,
		Checksum:     fmt.Sprintf("%016x", sum),
	}, nil
}

// Write stores data under name, replacing any existing file of that name.
func (s *Store) Write(name string, data []byte) (Entry, error) {
	path, err := s.Path(name)
	if err != nil {
		return Entry{}, err
	}

	tmp, err := os.CreateTemp(s.dir, tempPattern)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return Entry{}, fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return Entry{}, fmt.Errorf("failed to write %s: %w", name, err)
	}

	log.Debugf("wrote %s (%d bytes)", name, len(data))

	return Entry{
		Name:         name,
		OriginalName: name,
		Size:         int64(len(data)),
		Checksum:     hash.ChecksumHex(data),
	}, nil
}

// Open opens a stored file for reading.
//
// Returns ErrNotFound if name is not in the store.
func (s *Store) Open(name string) (*os.File, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}

	if info, err := f.Stat(); err != nil || !info.Mode().IsRegular() {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	return f, nil
}

// Read returns the contents of a stored file.
func (s *Store) Read(name string) ([]byte, error) {
	f, err := s.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	return data, nil
}
