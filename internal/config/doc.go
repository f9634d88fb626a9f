// Package config loads bonitahooks configuration through Viper.
//
// The configuration file is YAML named config.yaml, searched first in the
// project's .bonitahooks directory and then in the user config directory
// ($XDG_CONFIG_HOME/bonitahooks, or BONITAHOOKS_CONFIG_DIR). Every key can be
// overridden with a BONITAHOOKS_ prefixed environment variable.
//
//	version: 1
//	glyph: "⚠️"
//	disabled_checks:
//	  - no-wildcard-import
//	rules_file: rules.toml
//	max_file_size: 1048576
//	default_project_type: bonita-process
//
// A relative rules_file is resolved against the directory of the config file
// that declared it.
package config
