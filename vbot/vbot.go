// Package vbot holds application-level defaults shared across subpackages.
package vbot

import (
	"os"
	"path/filepath"
)

const (
	DefaultAppName     = "vendabot"
	DefaultCatalogSize = 50
)

var (
	// DefaultConfigPath is the per-user config directory.
	DefaultConfigPath = filepath.Join(userConfigDir(), DefaultAppName)

	// DefaultDatabaseDir is where the embedded database lives.
	DefaultDatabaseDir = filepath.Join(userConfigDir(), DefaultAppName, "data")

	// DefaultDatabasePath is the embedded database file.
	DefaultDatabasePath = filepath.Join(DefaultDatabaseDir, "vendabot.db")
)

func userConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	return "."
}
