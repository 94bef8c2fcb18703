// Package config is the configuration of the agenda command
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kjk/agenda/appointment"
	"github.com/kjk/agenda/kvstore"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// where appointments are stored
	DataDir string `yaml:"data_dir"`
	// store key holding the appointment list
	StorageKey string `yaml:"storage_key"`
	// none, zstd or brotli
	Codec string `yaml:"codec"`
	// empty means log to stdout only
	LogDir  string `yaml:"log_dir"`
	Verbose bool   `yaml:"verbose"`
}

func Default() *Config {
	return &Config{
		DataDir:    defaultDataDir(),
		StorageKey: appointment.DefaultKey,
		Codec:      "none",
	}
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "agenda_data"
	}
	return filepath.Join(dir, "agenda")
}

// Load reads a YAML file over defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	d, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err = yaml.Unmarshal(d, cfg); err != nil {
		return nil, fmt.Errorf("parsing '%s': %w", path, err)
	}
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("'%s': %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("data_dir is empty")
	}
	if c.StorageKey == "" {
		return errors.New("storage_key is empty")
	}
	_, err := kvstore.ParseCodec(c.Codec)
	return err
}

// OpenStore opens the file store described by c
func (c *Config) OpenStore() (*kvstore.FileStore, error) {
	codec, err := kvstore.ParseCodec(c.Codec)
	if err != nil {
		return nil, err
	}
	s := &kvstore.FileStore{
		Dir:   c.DataDir,
		Codec: codec,
	}
	if err = kvstore.OpenFileStore(s); err != nil {
		return nil, err
	}
	return s, nil
}
