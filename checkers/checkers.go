// Package checkers combines the line-oriented and tree-based scanning
// passes into a single diagnostic stream per file.
package checkers

import (
	"context"
	"strings"

	"github.com/sometanjas/Static-Code-Analyzer/checkers/linescan"
	"github.com/sometanjas/Static-Code-Analyzer/checkers/treescan"
	"github.com/sometanjas/Static-Code-Analyzer/checkers/types"
	"github.com/sometanjas/Static-Code-Analyzer/report"
)

// FileChecker runs both scanning passes over single files. It holds no
// per-file state and may be shared across files.
type FileChecker struct {
	reporter report.Reporter
}

// New returns a FileChecker reporting tool-level events to reporter.
func New(reporter report.Reporter) *FileChecker {
	return &FileChecker{reporter: reporter}
}

// Check runs the line scan and the tree scan over content and returns the
// combined diagnostics: line diagnostics in line order first, then tree
// diagnostics in traversal order. A tree parse failure is surfaced through
// the reporter and leaves the line diagnostics intact.
func (c *FileChecker) Check(ctx context.Context, path string, content []byte) []types.Diagnostic {
	diagnostics := linescan.Scan(SplitLines(string(content)))

	treeDiagnostics, err := treescan.Scan(ctx, content)
	if err != nil {
		c.reporter.Errorf("failed to parse %s: %v", path, err)
		return diagnostics
	}

	return append(diagnostics, treeDiagnostics...)
}

// Render formats diagnostics for path, one line of output per diagnostic,
// preserving their order.
func Render(path string, diagnostics []types.Diagnostic) []string {
	lines := make([]string, 0, len(diagnostics))
	for _, d := range diagnostics {
		lines = append(lines, d.Render(path))
	}
	return lines
}

// SplitLines splits content into physical lines, keeping each line's
// terminator so the length and indentation rules see the raw text. A final
// line without a terminator is kept as-is.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
