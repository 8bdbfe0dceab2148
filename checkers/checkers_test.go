package checkers

import (
	"context"
	"strings"
	"testing"

	"github.com/go-test/deep"

	"github.com/sometanjas/Static-Code-Analyzer/checkers/types"
	"github.com/sometanjas/Static-Code-Analyzer/report"
)

func TestSplitLines(t *testing.T) {
	cases := []struct {
		description string
		content     string
		expected    []string
	}{
		{"empty content", "", nil},
		{"single line with terminator", "a = 1\n", []string{"a = 1\n"}},
		{"final line without terminator", "a = 1\nb = 2", []string{"a = 1\n", "b = 2"}},
		{"blank lines are kept", "a = 1\n\n\nb = 2\n", []string{"a = 1\n", "\n", "\n", "b = 2\n"}},
		{"crlf terminators are kept", "a = 1\r\nb = 2\r\n", []string{"a = 1\r\n", "b = 2\r\n"}},
	}

	for _, tc := range cases {
		got := SplitLines(tc.content)
		if diff := deep.Equal(got, tc.expected); diff != nil {
			t.Errorf("description: %s, %s", tc.description, diff)
		}
	}
}

func TestCheckOrdering(t *testing.T) {
	// line diagnostics come first, tree diagnostics after them, even though
	// the tree diagnostics may point at earlier lines
	content := "def Bad(argX=[]):\n    return argX\n"

	checker := New(report.Nop{})
	got := checker.Check(context.Background(), "script.py", []byte(content))

	expected := []types.Diagnostic{
		{Line: 1, Code: "S009", Message: "Function name Bad should be written in snake_case"},
		{Line: 1, Code: "S010", Message: "Argument name 'argX' should be written in snake_case"},
		{Line: 1, Code: "S012", Message: "Default argument value is mutable"},
	}
	if diff := deep.Equal(got, expected); diff != nil {
		t.Error(diff)
	}
}

func TestCheckDeterminism(t *testing.T) {
	content := "class myClass:\n    def MyFunc(self):\n        xVal = 1;\n        return xVal\n"

	checker := New(report.Nop{})
	first := checker.Check(context.Background(), "script.py", []byte(content))
	second := checker.Check(context.Background(), "script.py", []byte(content))

	if diff := deep.Equal(first, second); diff != nil {
		t.Error(diff)
	}
}

func TestCheckParseFailure(t *testing.T) {
	// a broken file keeps its line diagnostics; the parse failure goes to
	// the reporter, not into the diagnostic stream
	content := "def  f(:\n"

	var captured report.Capture
	checker := New(&captured)
	got := checker.Check(context.Background(), "broken.py", []byte(content))

	expected := []types.Diagnostic{
		{Line: 1, Code: "S007", Message: "Too many spaces after def"},
	}
	if diff := deep.Equal(got, expected); diff != nil {
		t.Error(diff)
	}

	events := captured.Events()
	if len(events) != 1 {
		t.Fatalf("expected one reported event, got %d", len(events))
	}
	if events[0].Level != "ERROR" || !strings.Contains(events[0].Message, "broken.py") {
		t.Errorf("unexpected event: %+v", events[0])
	}
}

func TestRender(t *testing.T) {
	diagnostics := []types.Diagnostic{
		{Line: 1, Code: "S008", Message: "Class name myClass should be written in CamelCase"},
		{Line: 3, Code: "S001", Message: "Too long"},
	}

	got := Render("test/script.py", diagnostics)
	expected := []string{
		"test/script.py: Line 1: S008 Class name myClass should be written in CamelCase",
		"test/script.py: Line 3: S001 Too long",
	}
	if diff := deep.Equal(got, expected); diff != nil {
		t.Error(diff)
	}
}
