package kvstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/kjk/agenda/atomicfile"
)

// FileStore stores each key in its own file in Dir.
// Configure the exported fields and call OpenFileStore().
type FileStore struct {
	Dir string
	// how values are written. Values written with a different codec
	// are still readable
	Codec Codec

	mu sync.Mutex
}

// OpenFileStore creates the directory if needed
func OpenFileStore(s *FileStore) error {
	if s.Dir == "" {
		return fmt.Errorf("data directory is not set. For current directory, use '.'")
	}
	if !s.Codec.valid() {
		return fmt.Errorf("unknown codec %s", s.Codec)
	}
	dir, err := filepath.Abs(s.Dir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for '%s': %w", s.Dir, err)
	}
	s.Dir = dir
	return os.MkdirAll(s.Dir, 0755)
}

func isSafeKeyChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '-' || c == '_':
		return true
	}
	return false
}

// escapeKey maps a key to a file name that is valid on every os.
// Different keys never map to the same name.
func escapeKey(key string) string {
	var sb strings.Builder
	for i := 0; i < len(key); i++ {
		c := key[i]
		if isSafeKeyChar(c) {
			sb.WriteByte(c)
			continue
		}
		fmt.Fprintf(&sb, "%%%02X", c)
	}
	return sb.String()
}

func (s *FileStore) path(key string, c Codec) string {
	return filepath.Join(s.Dir, escapeKey(key)+c.ext())
}

// codecs in the order Get() tries them, configured codec first
func (s *FileStore) readOrder() []Codec {
	res := []Codec{s.Codec}
	for _, c := range allCodecs {
		if c != s.Codec {
			res = append(res, c)
		}
	}
	return res
}

func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := checkKey(ctx, key); err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.readOrder() {
		path := s.path(key, c)
		d, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", false, fmt.Errorf("get '%s': %w", key, err)
		}
		d, err = c.decode(d)
		if err != nil {
			return "", false, fmt.Errorf("get '%s': decoding %s: %w", key, filepath.Base(path), err)
		}
		return string(d), true, nil
	}
	return "", false, nil
}

func (s *FileStore) Set(ctx context.Context, key string, value string) error {
	if err := checkKey(ctx, key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.Codec.encode([]byte(value))
	if err != nil {
		return fmt.Errorf("set '%s': %w", key, err)
	}
	if err = atomicfile.WriteFile(s.path(key, s.Codec), d); err != nil {
		return fmt.Errorf("set '%s': %w", key, err)
	}
	// drop copies written with other codecs so they can't resurface
	// after a codec change
	for _, c := range allCodecs {
		if c != s.Codec {
			_ = removeIfExists(s.path(key, c))
		}
	}
	return nil
}

func (s *FileStore) Remove(ctx context.Context, key string) error {
	if err := checkKey(ctx, key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range allCodecs {
		if err := removeIfExists(s.path(key, c)); err != nil {
			return fmt.Errorf("remove '%s': %w", key, err)
		}
	}
	return nil
}

func removeIfExists(path string) error {
	err := os.Remove(path)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
