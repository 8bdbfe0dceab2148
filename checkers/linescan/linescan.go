// Package linescan applies the line-oriented style rules (S001..S009) to a
// file's physical lines.
package linescan

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sometanjas/Static-Code-Analyzer/checkers/types"
)

// maxLineLength is the longest allowed line, measured after trimming
// trailing whitespace.
const maxLineLength = 79

// Rule checks one raw line and returns a diagnostic, or nil when the line
// is compliant. Rules never fail: a malformed line simply yields no
// diagnostic.
type Rule func(line string, lineNumber int) *types.Diagnostic

// rules are evaluated in this order for every line. The blank-line rule
// (S006) is stateful and handled separately by State, between the first and
// second group.
var rules = []Rule{
	checkLength,
	checkIndentation,
	checkSemicolon,
	checkCommentSpacing,
	checkTodo,
}

// definitionRules run after the blank-line rule on every line.
var definitionRules = []Rule{
	checkConstructSpacing,
	checkClassName,
	checkFunctionName,
}

// Scan walks lines in order, applying every rule to each line and carrying
// the blank-line count between lines. Diagnostics come back in line order,
// rule order within a line. Line numbers start at 1.
func Scan(lines []string) []types.Diagnostic {
	var diagnostics []types.Diagnostic
	var state State

	for i, line := range lines {
		number := i + 1

		for _, rule := range rules {
			if d := rule(line, number); d != nil {
				diagnostics = append(diagnostics, *d)
			}
		}

		if d := state.Observe(line, number); d != nil {
			diagnostics = append(diagnostics, *d)
		}

		for _, rule := range definitionRules {
			if d := rule(line, number); d != nil {
				diagnostics = append(diagnostics, *d)
			}
		}
	}

	return diagnostics
}

// State is the only value carried between lines: the count of consecutive
// blank lines seen so far. One State serves one file's scan; the zero value
// is ready to use.
type State struct {
	consecutiveBlank int
}

// Observe feeds the next line to the blank-line rule (S006). Blank lines
// increment the counter and yield nothing. A non-blank line preceded by more
// than two blanks yields the diagnostic at the non-blank line's number; the
// counter resets on every non-blank line.
func (s *State) Observe(line string, lineNumber int) *types.Diagnostic {
	if strings.TrimSpace(line) == "" {
		s.consecutiveBlank++
		return nil
	}

	blank := s.consecutiveBlank
	s.consecutiveBlank = 0
	if blank > 2 {
		return diag(lineNumber, "S006", "More than two blank lines used before this line")
	}
	return nil
}

func diag(lineNumber int, code, message string) *types.Diagnostic {
	return &types.Diagnostic{Line: lineNumber, Code: code, Message: message}
}

// checkLength reports S001 for lines longer than maxLineLength characters,
// not counting trailing whitespace.
func checkLength(line string, lineNumber int) *types.Diagnostic {
	trimmed := strings.TrimRightFunc(line, unicode.IsSpace)
	if utf8.RuneCountInString(trimmed) > maxLineLength {
		return diag(lineNumber, "S001", "Too long")
	}
	return nil
}

// checkIndentation reports S002 when the count of leading space characters
// is not a multiple of four. Tabs are not normalized; only literal spaces
// count, so a whitespace-only line with stray spaces is still flagged.
func checkIndentation(line string, lineNumber int) *types.Diagnostic {
	leading := 0
	for _, r := range line {
		if r != ' ' {
			break
		}
		leading++
	}
	if leading%4 != 0 {
		return diag(lineNumber, "S002", "Indentation is not a multiple of four")
	}
	return nil
}

var (
	// A statement-terminating semicolon: either directly before a trailing
	// comment or at the very end of the line.
	semicolonPattern = regexp.MustCompile(`;\s*#|;$`)
	// A semicolon preceded by a comment marker lives inside the comment.
	commentedSemicolonPattern = regexp.MustCompile(`#.*;`)
)

// checkSemicolon reports S003 for a statement-terminating semicolon outside
// of a comment.
func checkSemicolon(line string, lineNumber int) *types.Diagnostic {
	text := strings.TrimRight(line, "\r\n")
	if semicolonPattern.MatchString(text) && !commentedSemicolonPattern.MatchString(text) {
		return diag(lineNumber, "S003", "Unnecessary semicolon")
	}
	return nil
}

// checkCommentSpacing reports S004 when an inline comment is not preceded by
// two spaces. Only the first marker on the line counts; a marker at position
// zero is a full-line comment and exempt.
func checkCommentSpacing(line string, lineNumber int) *types.Diagnostic {
	commentStart := strings.Index(line, "#")
	if commentStart <= 0 {
		return nil
	}
	if !strings.HasSuffix(line[:commentStart], "  ") {
		return diag(lineNumber, "S004", "Less than two spaces before inline comments")
	}
	return nil
}

// checkTodo reports S005 when the comment portion of the line contains a
// TODO, case-insensitively. Code before the first marker is not inspected.
func checkTodo(line string, lineNumber int) *types.Diagnostic {
	_, comment, found := strings.Cut(line, "#")
	if !found {
		return nil
	}
	if strings.Contains(strings.ToUpper(comment), "TODO") {
		return diag(lineNumber, "S005", "TODO found")
	}
	return nil
}

// constructPattern matches a class or def keyword followed by either zero
// spaces or two-or-more spaces before the identifier. A single space is the
// only compliant form.
var constructPattern = regexp.MustCompile(`^(class|def)( {2,})?\w`)

// checkConstructSpacing reports S007 for malformed spacing after a class or
// def keyword.
func checkConstructSpacing(line string, lineNumber int) *types.Diagnostic {
	m := constructPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return nil
	}
	return diag(lineNumber, "S007", "Too many spaces after "+m[1])
}

// checkClassName reports S008 when a class name starts with a lowercase
// letter.
func checkClassName(line string, lineNumber int) *types.Diagnostic {
	name, ok := definitionName(line, "class")
	if !ok || name == "" {
		return nil
	}
	if first, _ := utf8.DecodeRuneInString(name); unicode.IsLower(first) {
		return diag(lineNumber, "S008", fmt.Sprintf("Class name %s should be written in CamelCase", name))
	}
	return nil
}

// checkFunctionName reports S009 when a function name looks PascalCase,
// i.e. starts with an uppercase letter.
func checkFunctionName(line string, lineNumber int) *types.Diagnostic {
	name, ok := definitionName(line, "def")
	if !ok || name == "" {
		return nil
	}
	if first, _ := utf8.DecodeRuneInString(name); unicode.IsLetter(first) && unicode.IsUpper(first) {
		return diag(lineNumber, "S009", fmt.Sprintf("Function name %s should be written in snake_case", name))
	}
	return nil
}

// definitionName extracts the bare identifier following a class or def
// keyword. Leading whitespace is stripped first so nested definitions are
// still checked, and the keyword must be followed by a space: a longer
// identifier such as "classify" does not count. The name is cut at the
// first parenthesis, colon or whitespace.
func definitionName(line, keyword string) (string, bool) {
	text := strings.TrimSpace(line)
	rest, ok := strings.CutPrefix(text, keyword+" ")
	if !ok {
		return "", false
	}
	rest = strings.TrimLeft(rest, " ")
	if end := strings.IndexAny(rest, "(: \t"); end >= 0 {
		rest = rest[:end]
	}
	return rest, true
}
