package types

import "fmt"

// Diagnostic represents a single style violation found in a file. Line
// numbers are 1-based and always refer to the original file's layout,
// including for tree-based rules.
type Diagnostic struct {
	Line    int
	Code    string
	Message string
}

// Render returns the diagnostic in the textual reporting format shared by
// every checking pass.
func (d Diagnostic) Render(path string) string {
	return fmt.Sprintf("%s: Line %d: %s %s", path, d.Line, d.Code, d.Message)
}
