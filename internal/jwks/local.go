package jwks

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/obbank/jwks-aggregator/internal/config"
)

// CertListFileName is the local certificate list read from the finance
// configuration directory.
const CertListFileName = "cert-list.json"

// LocalSource reads the bank's own certificates from disk. It never caches:
// the file may be edited by hand while the service runs.
type LocalSource struct {
	baseDir string
	logger  *zap.Logger
}

// NewLocalSource returns a LocalSource rooted at baseDir.
func NewLocalSource(baseDir string, logger *zap.Logger) *LocalSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalSource{baseDir: baseDir, logger: logger}
}

// Path returns the absolute location of the certificate list.
func (s *LocalSource) Path() string {
	return filepath.Join(config.FinanceDir(s.baseDir), CertListFileName)
}

// Load reads the certificate list. An unset base directory, a missing file or
// a blank file yield an empty keyset. Unreadable files wrap ErrLocalRead and
// malformed contents wrap ErrParse.
func (s *LocalSource) Load() (Keyset, error) {
	if s.baseDir == "" {
		s.logger.Error("base directory is not set, serving no bank certificates")
		return Keyset{}, nil
	}

	path := s.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Error("bank certificate file not found", zap.String("path", path))
			return Keyset{}, nil
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrLocalRead, path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return Keyset{}, nil
	}

	var keys Keyset
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, path, err)
	}
	if keys == nil {
		return nil, fmt.Errorf("%w: %s: expected a JSON array", ErrParse, path)
	}
	return keys, nil
}
