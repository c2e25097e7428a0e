// SPDX-License-Identifier: MIT
// Package cli: optional YAML configuration file.
// The file seeds render defaults; explicit flags win over file values.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configFileName is the default per-user configuration file, looked up in
// the home directory when --config is not given.
const configFileName = ".matcli.yaml"

// fileConfig mirrors the YAML document shape.
type fileConfig struct {
	Warn       bool   `yaml:"warn"`
	Quiet      bool   `yaml:"quiet"`
	Flatten    bool   `yaml:"flatten"`
	Transpose  bool   `yaml:"transpose"`
	Slice      string `yaml:"slice"`
	Poly       string `yaml:"poly"`
	FieldSep   string `yaml:"field_sep"`
	RealFmt    string `yaml:"real_fmt"`
	ComplexFmt string `yaml:"complex_fmt"`
}

// loadConfig folds the config file (explicit path or the per-user
// default) into the render configuration. File values apply only where
// the corresponding flag was not set on the command line. A missing
// default file is not an error; a missing explicit file is.
func (a *App) loadConfig(cmd *cobra.Command) error {
	path, explicit := a.configPath, a.configPath != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil // no home, no default config
		}
		path = filepath.Join(home, configFileName)
	}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		return nil
	default:
		return fmt.Errorf("config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		if !explicit {
			// A broken default file must not wedge every invocation.
			if a.cfg.Warn {
				fmt.Fprintf(a.errw, "matcli: warning: ignoring config %s: %v\n", path, err)
			}
			return nil
		}
		return fmt.Errorf("config %s: %w", path, err)
	}

	set := cmd.Flags().Changed
	if !set("warn") {
		a.cfg.Warn = a.cfg.Warn || fc.Warn
	}
	if !set("quiet") {
		a.cfg.Quiet = fc.Quiet
	}
	if !set("flatten") {
		a.flatten = fc.Flatten
	}
	if !set("transpose") {
		a.cfg.Transpose = fc.Transpose
	}
	if !set("slice") && fc.Slice != "" {
		a.cfg.Slice = fc.Slice
	}
	if !set("poly") && fc.Poly != "" {
		a.polyVar = fc.Poly
	}
	if fc.FieldSep != "" {
		a.cfg.FieldSep = fc.FieldSep
	}
	if fc.RealFmt != "" {
		a.cfg.RealFmt = fc.RealFmt
	}
	if fc.ComplexFmt != "" {
		a.cfg.ComplexFmt = fc.ComplexFmt
	}

	return nil
}
