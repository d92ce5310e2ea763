package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

// Defaults for Config.
const (
	DefaultModule     = "app"
	DefaultHeader     = "Code generated by essence. DO NOT EDIT."
	DefaultBcryptCost = bcrypt.DefaultCost
	DefaultGoVersion  = "1.24"
)

// Config holds the code generation settings. The zero value is not
// usable; start from NewConfig or LoadConfig.
type Config struct {
	// Module is the module path of the generated service. Generated
	// packages import each other below it (e.g. "app/routes").
	Module string `yaml:"module"`
	// Header is the comment placed at the top of every generated Go file.
	Header string `yaml:"header"`
	// BcryptCost is the password hashing cost used by the auth routes.
	BcryptCost int `yaml:"bcryptCost"`
	// GoVersion is written to the go directive of the generated go.mod.
	GoVersion string `yaml:"goVersion"`
	// Workers bounds the number of artifacts rendered concurrently.
	Workers int `yaml:"workers"`
	// NoViews skips creation of the views directory.
	NoViews bool `yaml:"noViews"`
}

// defaults returns a Config with every default applied.
func defaults() *Config {
	return &Config{
		Module:     DefaultModule,
		Header:     DefaultHeader,
		BcryptCost: DefaultBcryptCost,
		GoVersion:  DefaultGoVersion,
		Workers:    runtime.GOMAXPROCS(0),
	}
}

// Validate checks the config values.
func (c *Config) Validate() error {
	if err := module.CheckImportPath(c.Module); err != nil {
		return NewConfigError("Module", c.Module, err.Error())
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return NewConfigError("BcryptCost", c.BcryptCost, fmt.Sprintf("must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.Workers < 1 {
		return NewConfigError("Workers", c.Workers, "must be positive")
	}
	return nil
}

// PkgPath returns the import path of a package of the generated service.
func (c *Config) PkgPath(pkg string) string {
	return c.Module + "/" + pkg
}

// LoadConfig loads an essence.yaml configuration file over the defaults.
// A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read essence config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse essence config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes cfg as YAML to path.
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal essence config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
