// Package catalog holds the fixed table of rule codes and their metadata.
// The table itself is embedded; it describes the rules, it does not
// configure them.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed issues.toml
var issuesTOML []byte

// IssueMeta describes one rule: its stable code, category, short title and
// a markdown description.
type IssueMeta struct {
	IssueCode   string `toml:"issue_code"`
	Category    string `toml:"category"`
	Title       string `toml:"title"`
	Description string `toml:"description"`
}

// issueFile is used for decoding issues from a TOML file.
type issueFile struct {
	Issues []IssueMeta `toml:"issues"`
}

// Load decodes the embedded catalog.
func Load() ([]IssueMeta, error) {
	return Read(bytes.NewReader(issuesTOML))
}

// Read decodes a catalog from TOML content and returns its issues sorted by
// issue code.
func Read(r io.Reader) ([]IssueMeta, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var f issueFile
	if err := toml.Unmarshal(content, &f); err != nil {
		return nil, err
	}

	sort.Slice(f.Issues, func(i, j int) bool {
		return f.Issues[i].IssueCode < f.Issues[j].IssueCode
	})

	return f.Issues, nil
}

// Lookup returns the catalog entry for code.
func Lookup(code string) (IssueMeta, error) {
	issues, err := Load()
	if err != nil {
		return IssueMeta{}, err
	}

	for _, issue := range issues {
		if issue.IssueCode == code {
			return issue, nil
		}
	}

	return IssueMeta{}, fmt.Errorf("unknown issue code: %s", code)
}

// RenderHTML converts an issue's markdown description to sanitized HTML.
func RenderHTML(issue IssueMeta) (string, error) {
	// use the Github-flavored Markdown extension
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
	)

	var buf bytes.Buffer
	if err := md.Convert([]byte(issue.Description), &buf); err != nil {
		return "", err
	}

	// sanitize markdown body
	p := bluemonday.UGCPolicy()
	return p.Sanitize(buf.String()), nil
}
