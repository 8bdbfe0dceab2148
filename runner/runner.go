// Package runner discovers files, feeds them to the checkers and prints
// their diagnostics.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/sometanjas/Static-Code-Analyzer/checkers"
	"github.com/sometanjas/Static-Code-Analyzer/report"
)

// Runner checks files and writes their diagnostics to a single output
// stream. Failures are per-file: a missing or unparseable file never stops
// the rest of a run.
type Runner struct {
	out      io.Writer
	reporter report.Reporter
	checker  *checkers.FileChecker
	workers  int
}

// New returns a Runner writing diagnostics to out and tool-level events to
// reporter. workers bounds the number of files checked concurrently; values
// below one fall back to the number of CPUs.
func New(out io.Writer, reporter report.Reporter, workers int) *Runner {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &Runner{
		out:      out,
		reporter: reporter,
		checker:  checkers.New(reporter),
		workers:  workers,
	}
}

// Run checks path, which may name a single file or a directory.
func (r *Runner) Run(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintf(r.out, "The path '%s' is neither a valid file nor directory.\n", path)
		return nil
	}

	if info.IsDir() {
		r.reporter.Infof("The provided path is a directory")
		return r.runDirectory(ctx, path)
	}

	r.reporter.Infof("The provided path is a file")
	r.emit(r.checkFile(ctx, path))
	return nil
}

// runDirectory checks every file directly under dir, in ascending filename
// order. Sub-directories are skipped. Files are checked concurrently, but
// each file's diagnostics are buffered and emitted in file order, never
// interleaved.
func (r *Runner) runDirectory(ctx context.Context, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("error reading directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	r.reporter.Infof("Created a list from files in a directory")

	sort.Strings(files)
	r.reporter.Infof("Sorted list of files in the directory in ascending order according to the file name")

	results := make([][]string, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			results[i] = r.checkFile(ctx, file)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, lines := range results {
		r.emit(lines)
	}
	return nil
}

// checkFile returns the rendered diagnostics for one file. An unreadable
// file yields a single not-found line instead of aborting the run.
func (r *Runner) checkFile(ctx context.Context, path string) []string {
	content, err := os.ReadFile(path)
	if err != nil {
		return []string{fmt.Sprintf("File not found: %s", path)}
	}

	diagnostics := r.checker.Check(ctx, path, content)
	return checkers.Render(path, diagnostics)
}

func (r *Runner) emit(lines []string) {
	for _, line := range lines {
		fmt.Fprintln(r.out, line)
	}
}
