package properties

import (
	"path/filepath"

	"github.com/magiconair/properties"
	"go.uber.org/zap"

	"github.com/obbank/jwks-aggregator/internal/config"
	"github.com/obbank/jwks-aggregator/internal/storage"
)

// FileName is the properties file read from the finance configuration directory.
const FileName = "config.properties"

// Store looks up properties, consulting the cache before the filesystem.
type Store struct {
	baseDir string
	cache   storage.PropertyCache
	logger  *zap.Logger
	loader  properties.Loader
}

// NewStore constructs a Store rooted at baseDir. An empty baseDir is accepted;
// every uncached lookup then fails closed.
func NewStore(baseDir string, cache storage.PropertyCache, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		baseDir: baseDir,
		cache:   cache,
		logger:  logger,
		loader: properties.Loader{
			Encoding:         properties.ISO_8859_1,
			DisableExpansion: true,
		},
	}
}

// Get returns the value of key. The second result is false when the base
// directory is unset, the file cannot be read, or the key is not defined.
// Only hits are cached.
func (s *Store) Get(key string) (string, bool) {
	if value, ok := s.cache.Get(key); ok {
		return value, true
	}

	if s.baseDir == "" {
		s.logger.Error("base directory is not set", zap.String("property", key))
		return "", false
	}

	path := s.Path()
	props, err := s.loader.LoadFile(path)
	if err != nil {
		s.logger.Error("failed to read property file",
			zap.String("path", path),
			zap.Error(err),
		)
		return "", false
	}
	props.DisableExpansion = true

	value, ok := props.Get(key)
	if !ok {
		s.logger.Warn("property not defined",
			zap.String("path", path),
			zap.String("property", key),
		)
		return "", false
	}

	s.cache.Set(key, value)
	return value, true
}

// Path returns the absolute location of the properties file.
func (s *Store) Path() string {
	return filepath.Join(config.FinanceDir(s.baseDir), FileName)
}
