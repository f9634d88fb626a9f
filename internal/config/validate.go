package config

import (
	"strings"

	"github.com/thoreinstein/bonitahooks/internal/errors"
)

// Validate checks cfg and returns every problem found, or nil.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version != CurrentVersion {
		errs = append(errs, errors.Wrapf(errors.ErrInvalidConfig, "unsupported config version: %d", cfg.Version))
	}

	if strings.ContainsAny(cfg.Glyph, "\r\n") {
		errs = append(errs, errors.Wrap(errors.ErrInvalidConfig, "glyph must be a single line"))
	}

	if cfg.MaxFileSize < 0 {
		errs = append(errs, errors.Wrapf(errors.ErrInvalidConfig, "max_file_size must not be negative: %d", cfg.MaxFileSize))
	}

	if strings.ContainsRune(cfg.RulesFile, '\x00') {
		errs = append(errs, errors.Wrap(errors.ErrInvalidConfig, "rules_file is not a valid path"))
	}

	for _, id := range cfg.DisabledChecks {
		if strings.TrimSpace(id) == "" {
			errs = append(errs, errors.Wrap(errors.ErrInvalidConfig, "disabled_checks contains an empty entry"))
			break
		}
	}

	return errs
}
