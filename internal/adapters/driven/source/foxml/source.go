package foxml

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
	"github.com/custodia-labs/fedora-migrate/internal/core/ports/driven"
	"github.com/custodia-labs/fedora-migrate/internal/logger"
)

// DefaultFetchTimeout bounds the fetch of URL content locations.
const DefaultFetchTimeout = 60 * time.Second

// Ensure Source implements the interface.
var _ driven.ObjectSource = (*Source)(nil)

// Source yields one object per FOXML file, in file name order.
type Source struct {
	dir   string
	files []string
	http  *http.Client

	mu  sync.Mutex
	pos int
}

// NewSource lists the FOXML files in dir.
func NewSource(dir string) (*Source, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: source directory is required", domain.ErrInvalidInput)
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("open source directory: %w", err)
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.xml"))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	sort.Strings(files)
	logger.Debug("Found %d FOXML files in %s", len(files), dir)

	return &Source{
		dir:   dir,
		files: files,
		http:  &http.Client{Timeout: DefaultFetchTimeout},
	}, nil
}

// SetHTTPClient sets the client used to fetch URL content locations.
func (s *Source) SetHTTPClient(c *http.Client) {
	s.http = c
}

// Len returns the number of objects in the source.
func (s *Source) Len() int {
	return len(s.files)
}

// Next parses the next file. Returns io.EOF when every file has been read.
func (s *Source) Next(ctx context.Context) (driven.ObjectProcessor, error) {
	s.mu.Lock()
	if s.pos >= len(s.files) {
		s.mu.Unlock()
		return nil, io.EOF
	}
	path := s.files[s.pos]
	s.pos++
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrTransport, path, err)
	}
	defer f.Close()

	obj, err := decodeObject(f)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", domain.ErrStructural, filepath.Base(path), err)
	}
	return &objectProcessor{obj: obj, http: s.http}, nil
}

// Close releases resources.
func (s *Source) Close() error {
	return nil
}
