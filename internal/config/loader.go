package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	appName        = "jellyfav"
	defaultEnvFile = ".env"
)

// Options selects the files Load reads. Empty fields fall back to
// JELLYFAV_CONFIG_FILE / ~/.config/jellyfav.yaml and ./.env; a missing
// default file is ignored, a missing explicit one is an error.
type Options struct {
	File    string
	EnvFile string
}

func Load(opts Options) (*Config, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	cfg := defaults()

	if err := loadFile(&cfg, opts.File); err != nil {
		return nil, err
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	err := godotenv.Load(path)
	if err == nil {
		log.WithField("file", path).Debug("loaded env file")
		return nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading env file %s: %w", path, err)
}

func loadFile(cfg *Config, path string) error {
	explicit := path != ""
	if !explicit {
		path = os.Getenv(envPrefix + "_CONFIG_FILE")
		explicit = path != ""
	}
	if !explicit {
		path = defaultConfigPath()
	}
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("unmarshaling config file %s: %w", path, err)
	}

	log.WithField("file", path).Debug("loaded config file")
	return nil
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appName+".yaml")
}
