// SPDX-License-Identifier: MIT
// Package cli: documentation page generation (maintenance surface).
// One Markdown page per namespace, regenerated from the schema table so
// the pages can never drift from the registry.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// generateDocs writes one <namespace>.md per registry namespace into dir.
func (a *App) generateDocs(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &codedError{code: ExitBadArgument, err: err}
	}

	byNamespace := make(map[string][]string)
	for _, name := range a.registry.Names() {
		ns := name
		if i := strings.Index(name, "."); i > 0 {
			ns = name[:i]
		}
		byNamespace[ns] = append(byNamespace[ns], name)
	}

	namespaces := make([]string, 0, len(byNamespace))
	for ns := range byNamespace {
		namespaces = append(namespaces, ns)
	}
	sort.Strings(namespaces)

	for _, ns := range namespaces {
		var b strings.Builder
		fmt.Fprintf(&b, "# %s functions\n", ns)
		for _, name := range byNamespace[ns] {
			e, _ := a.registry.Lookup(name)
			fmt.Fprintf(&b, "\n## %s\n\n```\n%s\n```\n\n%s\n", e.Name, e.Syntax, e.Doc)
		}

		path := filepath.Join(dir, ns+".md")
		if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
			return &codedError{code: ExitBadArgument, err: err}
		}
		a.log.Debug("docs page written", zap.String("path", path))
	}

	return nil
}
