package app

import (
	"os"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
)

// Config holds the complete application configuration, loadable from
// environment variables (PIZZERIA_ prefix), a .env file, or YAML config files.
type Config struct {
	Store    StoreConfig
	Admin    AdminConfig
	Snapshot SnapshotConfig
	// Menu is the YAML seed menu used by the seed command. Empty means the
	// built-in menu.
	Menu string `default:"" usage:"YAML seed menu file"`
}

// StoreConfig describes the pizzeria itself.
type StoreConfig struct {
	Name        string `default:"Pizzeria Buena" usage:"Store name"`
	Address     string `default:"Strada Cocorilor, nr 88" usage:"Store address"`
	PriceUpdate string `default:"first" usage:"Component price update policy: first or all"`
}

// AdminConfig identifies the store administrator.
type AdminConfig struct {
	Name  string `default:"Admin" usage:"Administrator name"`
	Phone string `default:"+40712345678" usage:"Administrator phone"`
}

// SnapshotConfig controls where the store state is persisted.
type SnapshotConfig struct {
	Dir string `default:"." usage:"Directory for snapshot files"`
	Key string `default:"pizzeria.json" usage:"Snapshot file name, gzip-compressed when it ends in .gz"`
	// MirrorDatabaseURL enables the PostgreSQL snapshot mirror.
	MirrorDatabaseURL string `default:"" usage:"PostgreSQL URL for the snapshot mirror (PIZZERIA_SNAPSHOT_MIRROR_DATABASE_URL or DATABASE_URL)"`
}

// LoadConfig loads configuration from .env, environment variables and YAML
// config files, then applies platform-specific defaults. Command-line flags
// belong to the CLI and are not parsed here.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrap(err, "load .env")
	}

	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		SkipFlags: true,
		EnvPrefix: "PIZZERIA",
		Files:     []string{"pizzeria.yaml", "/etc/pizzeria/pizzeria.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	return &cfg, nil
}

// applyPlatformDefaults maps the standard DATABASE_URL variable onto the
// snapshot mirror.
func (c *Config) applyPlatformDefaults() {
	if c.Snapshot.MirrorDatabaseURL == "" {
		if v := os.Getenv("DATABASE_URL"); v != "" {
			c.Snapshot.MirrorDatabaseURL = v
		}
	}
}
