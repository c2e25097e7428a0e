// SPDX-License-Identifier: MIT
// Package cli: the help and version surfaces.
// help with no argument prints the full function summary table; with an
// argument it prints syntax and documentation for every function whose
// dotted name contains the argument as a substring.
package cli

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Version is the tool version, overridable at link time.
var Version = "0.1.0"

// backendModule is the numeric backend whose version the version surface
// reports.
const backendModule = "gonum.org/v1/gonum"

// fallbackBackendVersion is reported when build info is unavailable
// (e.g. a non-module build).
const fallbackBackendVersion = "v0.16.0"

func (a *App) runHelp(tokens []string) error {
	if len(tokens) == 0 {
		return a.helpSummary()
	}

	return a.helpMatches(tokens[0])
}

// helpSummary prints the usage line and the full function table.
func (a *App) helpSummary() error {
	fmt.Fprintln(a.out, "usage: matcli [flags] FUNCTION [ARG ...]")
	fmt.Fprintln(a.out)

	border := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(border).
		Headers("FUNCTION", "DESCRIPTION")
	for _, name := range a.registry.Names() {
		e, _ := a.registry.Lookup(name)
		tbl.Row(name, e.Doc)
	}
	fmt.Fprintln(a.out, tbl)

	return nil
}

// helpMatches prints syntax and documentation for every function whose
// name contains the query.
func (a *App) helpMatches(query string) error {
	found := false
	for _, name := range a.registry.Names() {
		if !strings.Contains(name, query) {
			continue
		}
		found = true
		e, _ := a.registry.Lookup(name)
		fmt.Fprintf(a.out, "%s\n    %s\n", e.Syntax, e.Doc)
	}
	if !found {
		return &codedError{
			code: ExitNotFound,
			err:  fmt.Errorf("help: no function matches %q", query),
		}
	}

	return nil
}

func (a *App) runVersion() error {
	fmt.Fprintf(a.out, "matcli %s (%s %s)\n", Version, backendModule, backendVersion())

	return nil
}

// backendVersion recovers the numeric backend version from build info.
func backendVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return fallbackBackendVersion
	}
	for _, dep := range info.Deps {
		if dep.Path == backendModule {
			return dep.Version
		}
	}

	return fallbackBackendVersion
}
