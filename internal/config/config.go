// Package config handles batch tool configuration loading and management.
package config

import (
	"github.com/Faultbox/meshbatch/internal/assets"
	"github.com/Faultbox/meshbatch/internal/attach"
)

// Config holds all tool settings.
type Config struct {
	Batch   BatchConfig   `yaml:"batch"`
	Assets  AssetsConfig  `yaml:"assets"`
	Logging LoggingConfig `yaml:"logging"`
}

// BatchConfig controls what happens around a combine pass.
type BatchConfig struct {
	Collider           attach.ColliderKind `yaml:"collider"`            // none, mesh, sphere, box, capsule
	Rigidbody          bool                `yaml:"rigidbody"`           // attach a kinematic rigid body
	DeactivateChildren bool                `yaml:"deactivate_children"` // hide the merged source nodes
	SaveAction         assets.SaveAction   `yaml:"save_action"`         // none, mesh, prefab
	AssetName          string              `yaml:"asset_name"`
}

// AssetsConfig holds asset database settings.
type AssetsConfig struct {
	Database string `yaml:"database"` // SQLite file path
	Folder   string `yaml:"folder"`   // path prefix of stored assets
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Batch: BatchConfig{
			Collider:           attach.ColliderNone,
			Rigidbody:          false,
			DeactivateChildren: true,
			SaveAction:         assets.SaveNone,
			AssetName:          assets.DefaultAssetName,
		},
		Assets: AssetsConfig{
			Database: "assets.db",
			Folder:   assets.DefaultFolder,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
