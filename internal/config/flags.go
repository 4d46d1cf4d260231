package config

import "flag"

// Flags holds command-line overrides. Zero values leave the config unchanged.
type Flags struct {
	Config       string
	Debug        bool
	Collider     string
	Rigidbody    bool
	Save         string
	Name         string
	Database     string
	KeepChildren bool
}

// Register adds the override flags to fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.Collider, "collider", "", "Collider to attach: none, mesh, sphere, box, capsule")
	fs.BoolVar(&f.Rigidbody, "rigidbody", false, "Attach a kinematic rigid body")
	fs.StringVar(&f.Save, "save", "", "Save action: none, mesh, prefab")
	fs.StringVar(&f.Name, "name", "", "Asset name used when saving")
	fs.StringVar(&f.Database, "db", "", "Asset database path")
	fs.BoolVar(&f.KeepChildren, "keep-children", false, "Leave source nodes active after combining")
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) error {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Collider != "" {
		if err := cfg.Batch.Collider.UnmarshalText([]byte(f.Collider)); err != nil {
			return err
		}
	}
	if f.Rigidbody {
		cfg.Batch.Rigidbody = true
	}
	if f.Save != "" {
		if err := cfg.Batch.SaveAction.UnmarshalText([]byte(f.Save)); err != nil {
			return err
		}
	}
	if f.Name != "" {
		cfg.Batch.AssetName = f.Name
	}
	if f.Database != "" {
		cfg.Assets.Database = f.Database
	}
	if f.KeepChildren {
		cfg.Batch.DeactivateChildren = false
	}
	return nil
}
