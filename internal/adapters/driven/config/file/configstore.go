package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/webidl-updater/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// DefaultDir is the configuration directory under the user's home.
const DefaultDir = ".webidl-updater"

// ConfigStore reads webidl-updater settings from a TOML file.
//
// Tables are flattened to dotted keys ("rewrite.output_dir"). Values are
// normalised when the file is loaded: TOML integers become int and arrays
// of strings become []string, so getters only need a type assertion.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]any
}

// NewConfigStore creates a store for path and loads it. An empty path
// means ~/.webidl-updater/config.toml.
func NewConfigStore(path string) (*ConfigStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, DefaultDir, "config.toml")
	}

	s := &ConfigStore{filePath: path, data: map[string]any{}}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.data[key]
	return val, ok
}

func (s *ConfigStore) GetString(key string) string {
	val, _ := s.Get(key)
	str, _ := val.(string)
	return str
}

func (s *ConfigStore) GetInt(key string) int {
	val, _ := s.Get(key)
	n, _ := val.(int)
	return n
}

func (s *ConfigStore) GetBool(key string) bool {
	val, _ := s.Get(key)
	b, _ := val.(bool)
	return b
}

func (s *ConfigStore) GetStringSlice(key string) []string {
	val, _ := s.Get(key)
	list, _ := val.([]string)
	return list
}

// Load reads the TOML file. A missing file leaves the store empty.
func (s *ConfigStore) Load() error {
	raw, err := os.ReadFile(s.filePath)
	if errors.Is(err, fs.ErrNotExist) {
		raw, err = nil, nil
	}
	if err != nil {
		return err
	}

	var tables map[string]any
	if err := toml.Unmarshal(raw, &tables); err != nil {
		return fmt.Errorf("parse %s: %w", s.filePath, err)
	}

	data := make(map[string]any)
	flatten(data, "", tables)

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

// flatten copies tables into dst under dotted keys,
// e.g. {"rewrite": {"no_diff": true}} becomes {"rewrite.no_diff": true}.
func flatten(dst map[string]any, prefix string, tables map[string]any) {
	for key, value := range tables {
		if prefix != "" {
			key = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			flatten(dst, key, nested)
			continue
		}
		dst[key] = normalise(value)
	}
}

func normalise(value any) any {
	switch v := value.(type) {
	case int64:
		return int(v)
	case []any:
		strs := make([]string, 0, len(v))
		for _, item := range v {
			str, ok := item.(string)
			if !ok {
				return v
			}
			strs = append(strs, str)
		}
		return strs
	default:
		return v
	}
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}
