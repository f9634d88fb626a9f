package doctor

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/bonitahooks/internal/config"
	"github.com/thoreinstein/bonitahooks/internal/errors"
	"github.com/thoreinstein/bonitahooks/internal/rule"
	"github.com/thoreinstein/bonitahooks/internal/settings"
)

// ConfigLoader loads and validates the configuration.
type ConfigLoader func() (*config.Config, error)

// ConfigCheck verifies that the configuration loads and that every disabled
// check exists.
type ConfigCheck struct {
	load    ConfigLoader
	catalog *rule.Registry
}

var _ Check = (*ConfigCheck)(nil)

// NewConfigCheck creates a config check. catalog is used to resolve
// disabled_checks entries.
func NewConfigCheck(load ConfigLoader, catalog *rule.Registry) *ConfigCheck {
	return &ConfigCheck{load: load, catalog: catalog}
}

// Name returns the unique identifier for this check.
func (c *ConfigCheck) Name() string { return "config" }

// Category returns the grouping for this check.
func (c *ConfigCheck) Category() string { return "config" }

// Run executes the check.
func (c *ConfigCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category(), Details: make(map[string]any)}

	cfg, err := c.load()
	if err != nil {
		result.Status = SeverityError
		result.Message = err.Error()
		result.FixHint = "fix the config file or remove it to use defaults"
		return result
	}

	result.Details["glyph"] = cfg.Glyph
	result.Details["max_file_size"] = cfg.MaxFileSize
	if cfg.RulesFile != "" {
		result.Details["rules_file"] = cfg.RulesPath()
	}

	if cfg.File == "" {
		result.Status = SeverityInfo
		result.Message = "no config file found, using defaults"
		return result
	}
	result.Details["file"] = cfg.File

	var unknown []string
	for _, id := range cfg.DisabledChecks {
		if _, err := c.catalog.Check(id); err != nil {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		result.Status = SeverityWarning
		result.Message = "disabled_checks names unknown checks: " + strings.Join(unknown, ", ")
		result.FixHint = "run 'bonitahooks rules list' to see check IDs"
		return result
	}

	if cfg.DefaultProjectType != "" {
		if _, err := settings.LookupType(cfg.DefaultProjectType); err != nil {
			result.Status = SeverityWarning
			result.Message = "default_project_type is unknown: " + cfg.DefaultProjectType
			result.FixHint = "run 'bonitahooks settings types' to see project types"
			return result
		}
	}

	result.Status = SeverityPass
	result.Message = "loaded " + cfg.File
	return result
}

// RulesFileCheck verifies that the custom rules file parses and compiles.
type RulesFileCheck struct {
	path    string
	catalog *rule.Registry
}

var _ Check = (*RulesFileCheck)(nil)

// NewRulesFileCheck creates a rules file check. An empty path means no custom
// rules are configured.
func NewRulesFileCheck(path string, catalog *rule.Registry) *RulesFileCheck {
	return &RulesFileCheck{path: path, catalog: catalog}
}

// Name returns the unique identifier for this check.
func (c *RulesFileCheck) Name() string { return "rules-file" }

// Category returns the grouping for this check.
func (c *RulesFileCheck) Category() string { return "rules" }

// Run executes the check.
func (c *RulesFileCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	if c.path == "" {
		result.Status = SeverityInfo
		result.Message = "no custom rules file configured"
		return result
	}
	result.Details = map[string]any{"path": c.path}

	sets, err := rule.LoadFile(c.path, c.catalog)
	if err != nil {
		result.Status = SeverityError
		result.Message = formatRulesError(err)
		if errors.Is(err, os.ErrNotExist) {
			result.FixHint = "create the file or unset rules_file"
		}
		return result
	}

	names := make([]string, len(sets))
	for i, s := range sets {
		names[i] = s.Name
	}
	result.Details["sets"] = names
	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%d custom rule set(s) loaded", len(sets))
	return result
}

// SettingsCheck verifies that a settings.json file is valid JSON and that its
// hook commands name known rule sets.
type SettingsCheck struct {
	path     string
	registry *rule.Registry
	binary   string
}

var _ Check = (*SettingsCheck)(nil)

// NewSettingsCheck creates a settings check for the file at path.
func NewSettingsCheck(path string, registry *rule.Registry, binary string) *SettingsCheck {
	return &SettingsCheck{path: path, registry: registry, binary: binary}
}

// Name returns the unique identifier for this check.
func (c *SettingsCheck) Name() string { return "settings" }

// Category returns the grouping for this check.
func (c *SettingsCheck) Category() string { return "settings" }

// Run executes the check.
func (c *SettingsCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"path": c.path},
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			result.Status = SeverityInfo
			result.Message = "no settings file"
			result.FixHint = "run 'bonitahooks settings generate --project-type <type>'"
			return result
		}
		result.Status = SeverityError
		result.Message = fmt.Sprintf("read error: %v", err)
		return result
	}

	var s settings.Settings
	if err := json.Unmarshal(data, &s); err != nil {
		result.Status = SeverityError
		result.Message = formatJSONError(err, data)
		return result
	}

	refs := s.References(c.binary)
	result.Details["hooks"] = len(refs)
	if len(refs) == 0 {
		result.Status = SeverityWarning
		result.Message = "no bonitahooks hooks installed"
		result.FixHint = "run 'bonitahooks settings generate --project-type <type> --merge'"
		return result
	}

	var unknown []string
	for _, ref := range refs {
		for _, name := range ref.Sets {
			if _, err := c.registry.Lookup(name); err != nil {
				unknown = append(unknown, name)
			}
		}
	}
	if len(unknown) > 0 {
		result.Status = SeverityError
		result.Message = "hooks reference unknown rule sets: " + strings.Join(unknown, ", ")
		result.FixHint = "regenerate the hooks or add the sets to the rules file"
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%d hook command(s) reference known rule sets", len(refs))
	return result
}

// formatRulesError adds position information to TOML errors.
func formatRulesError(err error) string {
	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		return fmt.Sprintf("TOML syntax error at line %d, column %d: %s", row, col, decodeErr.Error())
	}

	var strictErr *toml.StrictMissingError
	if errors.As(err, &strictErr) && len(strictErr.Errors) > 0 {
		first := strictErr.Errors[0]
		row, col := first.Position()
		return fmt.Sprintf("unknown key %s at line %d, column %d", strings.Join(first.Key(), "."), row, col)
	}

	return err.Error()
}

// formatJSONError extracts position information from JSON syntax errors.
func formatJSONError(err error, data []byte) string {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		line, col := offsetToLineCol(data, int(syntaxErr.Offset))
		return fmt.Sprintf("JSON syntax error at line %d, column %d: %s", line, col, syntaxErr.Error())
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		line, col := offsetToLineCol(data, int(typeErr.Offset))
		return fmt.Sprintf("JSON type error at line %d, column %d: %s", line, col, typeErr.Error())
	}

	return fmt.Sprintf("JSON error: %v", err)
}

// offsetToLineCol converts a byte offset to 1-indexed line and column.
func offsetToLineCol(data []byte, offset int) (line, col int) {
	offset = min(max(offset, 0), len(data))

	line = 1
	lineStart := 0
	for i := range offset {
		if data[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return line, offset - lineStart + 1
}
