package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/thoreinstein/bonitahooks/internal/errors"
	"github.com/thoreinstein/bonitahooks/internal/paths"
	"github.com/thoreinstein/bonitahooks/internal/report"
	"github.com/thoreinstein/bonitahooks/pkg/fileutil"
)

// CurrentVersion is the only supported config version.
const CurrentVersion = 1

// Config is the top-level configuration.
type Config struct {
	Version            int      `mapstructure:"version" json:"version" yaml:"version"`
	Glyph              string   `mapstructure:"glyph" json:"glyph" yaml:"glyph"`
	DisabledChecks     []string `mapstructure:"disabled_checks" json:"disabled_checks,omitempty" yaml:"disabled_checks,omitempty"`
	RulesFile          string   `mapstructure:"rules_file" json:"rules_file,omitempty" yaml:"rules_file,omitempty"`
	MaxFileSize        int64    `mapstructure:"max_file_size" json:"max_file_size" yaml:"max_file_size"`
	DefaultProjectType string   `mapstructure:"default_project_type" json:"default_project_type,omitempty" yaml:"default_project_type,omitempty"`

	// File is the config file that was read, empty when defaults are used.
	File string `mapstructure:"-" json:"file,omitempty" yaml:"-"`
}

// Init resets Viper and configures search paths, environment binding and
// defaults. Call it once before Load.
func Init() {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(paths.ProjectDir("."))
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix("BONITAHOOKS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("version", CurrentVersion)
	viper.SetDefault("glyph", report.DefaultGlyph)
	viper.SetDefault("disabled_checks", []string{})
	viper.SetDefault("rules_file", "")
	viper.SetDefault("max_file_size", fileutil.MaxFileSize)
	viper.SetDefault("default_project_type", "")
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Version:     CurrentVersion,
		Glyph:       report.DefaultGlyph,
		MaxFileSize: fileutil.MaxFileSize,
	}
}

// Load reads the configuration. An explicit path must exist; with an empty
// path a missing file silently yields defaults. The result is validated.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// defaults
		case errors.As(err, &notFound):
			return nil, errors.Wrapf(errors.ErrNotFound, "config file %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}
	cfg.File = viper.ConfigFileUsed()

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrap(errs[0], "validating config")
	}

	return &cfg, nil
}

// RulesPath returns the absolute-or-relative path of the custom rules file,
// resolving a relative path against the config file's directory.
func (c *Config) RulesPath() string {
	if c.RulesFile == "" || filepath.IsAbs(c.RulesFile) || c.File == "" {
		return c.RulesFile
	}
	return filepath.Join(filepath.Dir(c.File), c.RulesFile)
}
