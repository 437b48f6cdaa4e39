// Package config persists the downloader Config record as a JSON file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/kerbaras/comicdto/pkg/data"
	"github.com/kerbaras/comicdto/pkg/hydrate"
	"github.com/sirupsen/logrus"
)

const DefaultPath = "config.json"

// Default returns the configuration used when no file is stored.
func Default() *data.Config {
	return &data.Config{
		URLBase:     "mangacopy.com",
		OutputPath:  "./",
		PackageType: "cbz",
		NamingStyle: "title",
		UserList:    []*data.User{},
	}
}

// Load reads the config stored at path. A missing file yields the defaults;
// an unreadable or malformed one is logged and also yields the defaults.
func Load(path string, log logrus.FieldLogger) *data.Config {
	content, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.WithError(err).WithField("path", path).Warn("Could not read config, using defaults")
		}
		return Default()
	}

	cfg, err := Decode(content)
	if err != nil {
		log.WithError(err).WithField("path", path).Warn("Could not parse config, using defaults")
		return Default()
	}
	log.WithFields(logrus.Fields{"path": path, "users": len(cfg.UserList)}).Debug("Loaded config")
	return cfg
}

// Decode hydrates a config document. Fields missing from the document stay
// empty.
func Decode(content []byte) (*data.Config, error) {
	in, err := hydrate.FromJSON(content)
	if err != nil {
		return nil, err
	}
	if in.Kind() != hydrate.KindObject {
		return nil, fmt.Errorf("config must be a JSON object, got %s", in.Kind())
	}
	cfg, err := hydrate.Decode[data.Config](data.Registry, in)
	if err != nil {
		return nil, err
	}
	if cfg.UserList == nil {
		cfg.UserList = []*data.User{}
	}
	return &cfg, nil
}

// Save writes cfg to path as indented JSON.
func Save(path string, cfg *data.Config) error {
	content, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Replace stores incoming at path but keeps the user list already on disk;
// accounts are never edited through a settings update.
func Replace(path string, incoming *data.Config, log logrus.FieldLogger) (*data.Config, error) {
	if incoming == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	current := Load(path, log)

	next := *incoming
	next.UserList = current.UserList
	if err := Save(path, &next); err != nil {
		return nil, err
	}
	log.WithField("path", path).Info("Saved config")
	return &next, nil
}
