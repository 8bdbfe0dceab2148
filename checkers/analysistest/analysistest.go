// Package analysistest verifies checker output against annotations embedded
// in Python testdata files. An expected issue is written as a comment on
// the line that raises it: `# raise: S001,S004`.
package analysistest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/sometanjas/Static-Code-Analyzer/checkers"
	"github.com/sometanjas/Static-Code-Analyzer/checkers/types"
	"github.com/sometanjas/Static-Code-Analyzer/report"
)

// ParsedIssue represents an expected issue parsed using tree-sitter.
type ParsedIssue struct {
	IssueCode string
	Line      int
}

// Run checks filename and compares the resulting diagnostics with the
// file's raise annotations.
func Run(filename string) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	checker := checkers.New(report.Nop{})
	diagnostics := checker.Check(context.Background(), filename, content)

	parsedIssues, err := parseAnnotations(content)
	if err != nil {
		return err
	}

	return compare(diagnostics, parsedIssues)
}

// parseAnnotations extracts the expected issues from the raise annotations
// in content.
func parseAnnotations(content []byte) ([]ParsedIssue, error) {
	lang := python.GetLanguage()

	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	// generate tree
	ctx := context.Background()
	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, err
	}

	// create a query for fetching comments
	query, err := sitter.NewQuery([]byte("(comment) @comment"), lang)
	if err != nil {
		return nil, err
	}

	// execute query on root node
	qc := sitter.NewQueryCursor()
	qc.Exec(query, tree.RootNode())
	defer qc.Close()

	exp := regexp.MustCompile(`.*raise: `)

	var parsedIssues []ParsedIssue

	// iterate over matches
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}

		for _, c := range m.Captures {
			node := c.Node
			nodeContent := node.Content(content)

			if !strings.Contains(nodeContent, "raise: ") {
				continue
			}

			substrings := exp.Split(nodeContent, -1)
			if len(substrings) < 2 {
				continue
			}

			// add each annotated code at the comment's line
			for _, issueCode := range strings.Split(substrings[1], ",") {
				parsedIssues = append(parsedIssues, ParsedIssue{
					IssueCode: strings.TrimSpace(issueCode),
					Line:      int(node.StartPoint().Row) + 1,
				})
			}
		}
	}

	return parsedIssues, nil
}

// compare checks that the actual diagnostics and the parsed annotations
// agree, ignoring emission order.
func compare(diagnostics []types.Diagnostic, parsedIssues []ParsedIssue) error {
	actual := make([]ParsedIssue, 0, len(diagnostics))
	for _, d := range diagnostics {
		actual = append(actual, ParsedIssue{IssueCode: d.Code, Line: d.Line})
	}

	sortIssues(actual)
	sortIssues(parsedIssues)

	// if number of issues don't match, exit early.
	if len(actual) != len(parsedIssues) {
		return fmt.Errorf("mismatch between the number of reported issues (%d) and parsed issues (%d)", len(actual), len(parsedIssues))
	}

	for i := range actual {
		if actual[i] != parsedIssues[i] {
			return errors.New("mismatch between parsed issue and report issue")
		}
	}

	return nil
}

func sortIssues(issues []ParsedIssue) {
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Line != issues[j].Line {
			return issues[i].Line < issues[j].Line
		}
		return issues[i].IssueCode < issues[j].IssueCode
	})
}
