// Package treescan applies the structural style rules (S010..S012) by
// parsing Python source with tree-sitter and walking the resulting tree.
package treescan

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/sometanjas/Static-Code-Analyzer/checkers/types"
)

// ErrSyntax is returned when the parsed tree contains a syntax error.
// tree-sitter is error-tolerant, so any ERROR node fails the whole file's
// structural analysis, matching the all-or-nothing behavior of an ast parse.
var ErrSyntax = errors.New("syntax error in source")

// snakeCasePattern matches a lowercase letter or underscore followed by
// lowercase letters, digits and underscores. Shared by S010 and S011.
var snakeCasePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func isSnakeCase(name string) bool {
	return snakeCasePattern.MatchString(name)
}

// Scan parses content as Python source and returns its structural
// diagnostics in traversal order. On a parse failure it returns no
// diagnostics and a non-nil error; line-based checks are unaffected by such
// a failure.
func Scan(ctx context.Context, content []byte) ([]types.Diagnostic, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, err
	}

	root := tree.RootNode()
	if root.HasError() {
		return nil, ErrSyntax
	}

	s := &scanner{content: content}
	s.walk(root)
	return s.diagnostics, nil
}

type scanner struct {
	content     []byte
	diagnostics []types.Diagnostic
}

// walk visits every named node exactly once, parents before children,
// siblings in source order, descending into nested functions and class
// bodies.
func (s *scanner) walk(node *sitter.Node) {
	switch node.Type() {
	case "function_definition":
		s.checkFunctionDefinition(node)
	case "assignment", "augmented_assignment", "for_statement", "for_in_clause":
		s.checkStoreTargets(node.ChildByFieldName("left"))
	case "named_expression":
		s.checkStoreTargets(node.ChildByFieldName("name"))
	case "as_pattern":
		// `with ... as target` binds its target; `except ... as name`
		// does not bind a Name node and is exempt
		if p := node.Parent(); p == nil || p.Type() != "except_clause" {
			s.checkStoreTargets(node.ChildByFieldName("alias"))
		}
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		s.walk(node.NamedChild(i))
	}
}

// checkFunctionDefinition applies S010 to the positional and keyword-only
// parameter names, then S012 to their default values. Both report at the
// definition's line. Splat parameters (*args, **kwargs) are not checked.
func (s *scanner) checkFunctionDefinition(node *sitter.Node) {
	line := lineOf(node)
	params := node.ChildByFieldName("parameters")
	if params == nil {
		return
	}

	for i := 0; i < int(params.NamedChildCount()); i++ {
		name := parameterName(params.NamedChild(i))
		if name == nil {
			continue
		}
		if arg := name.Content(s.content); !isSnakeCase(arg) {
			s.report(line, "S010", fmt.Sprintf("Argument name '%s' should be written in snake_case", arg))
		}
	}

	for i := 0; i < int(params.NamedChildCount()); i++ {
		value := parameterDefault(params.NamedChild(i))
		if value == nil {
			continue
		}
		if isMutableLiteral(value.Type()) {
			s.report(line, "S012", "Default argument value is mutable")
		}
	}
}

// parameterName returns the identifier node of a plain, typed or defaulted
// parameter, or nil for splat parameters and separators.
func parameterName(param *sitter.Node) *sitter.Node {
	switch param.Type() {
	case "identifier":
		return param
	case "typed_parameter":
		// the identifier is the first named child, unless this is a
		// splat parameter
		child := param.NamedChild(0)
		if child != nil && child.Type() == "identifier" {
			return child
		}
	case "default_parameter", "typed_default_parameter":
		name := param.ChildByFieldName("name")
		if name != nil && name.Type() == "identifier" {
			return name
		}
	}
	return nil
}

// parameterDefault returns the default-value node of a parameter, or nil if
// it has none.
func parameterDefault(param *sitter.Node) *sitter.Node {
	switch param.Type() {
	case "default_parameter", "typed_default_parameter":
		return param.ChildByFieldName("value")
	}
	return nil
}

// isMutableLiteral reports whether a node kind is one of the mutable
// literal forms flagged as default values.
func isMutableLiteral(kind string) bool {
	switch kind {
	case "list", "dictionary", "set":
		return true
	}
	return false
}

// checkStoreTargets collects the identifiers bound by an assignment target
// and applies S011 to each, at the identifier's own line. Tuple, list and
// splat patterns are descended into; attribute and subscript targets are
// skipped because their base name is a read, not a binding.
func (s *scanner) checkStoreTargets(target *sitter.Node) {
	if target == nil {
		return
	}

	switch target.Type() {
	case "identifier":
		name := target.Content(s.content)
		if !isSnakeCase(name) {
			s.report(lineOf(target), "S011", fmt.Sprintf("Variable name '%s' should be written in snake_case", name))
		}
	case "pattern_list", "tuple_pattern", "list_pattern", "list_splat_pattern", "parenthesized_expression", "as_pattern_target":
		for i := 0; i < int(target.NamedChildCount()); i++ {
			s.checkStoreTargets(target.NamedChild(i))
		}
	}
}

func (s *scanner) report(line int, code, message string) {
	s.diagnostics = append(s.diagnostics, types.Diagnostic{Line: line, Code: code, Message: message})
}

// lineOf maps a node's position back to the original source's 1-based line
// numbering.
func lineOf(node *sitter.Node) int {
	return int(node.StartPoint().Row) + 1
}
