// Package diag defines the diagnostic value types produced by validation
// passes and consumed by the editor surface. Diagnostics are immutable once
// created and never outlive the document version they were computed for.
package diag

// Category identifies the kind of issue a diagnostic reports.
// The set is closed: passes may only emit one of these values, which keeps
// switch statements over categories exhaustiveness-checkable.
type Category int

const (
	UnknownCommand Category = iota
	MissingImport
	DeprecatedCommand
	CallShapeError
	MissingCallParens
	WrongNamespace
	MELMissingSemicolon
	MELUnterminatedString
	MELBadVariable
	MELUnbalancedBraces
	EmptySelectionQuery
	DuplicateImport

	numCategories
)

var categoryNames = [...]string{
	UnknownCommand:        "unknown-command",
	MissingImport:         "missing-import",
	DeprecatedCommand:     "deprecated-command",
	CallShapeError:        "call-shape-error",
	MissingCallParens:     "missing-call-parens",
	WrongNamespace:        "wrong-namespace",
	MELMissingSemicolon:   "mel-missing-semicolon",
	MELUnterminatedString: "mel-unterminated-string",
	MELBadVariable:        "mel-bad-variable",
	MELUnbalancedBraces:   "mel-unbalanced-braces",
	EmptySelectionQuery:   "empty-selection-query",
	DuplicateImport:       "duplicate-import",
}

// String returns the stable lint-name for the category.
func (c Category) String() string {
	if c < 0 || c >= numCategories {
		return "unknown"
	}
	return categoryNames[c]
}

// Diagnostic is a single reported issue. Line and Column are 0-based;
// Length is the span of the offending token in runes so the editor can
// place a marker. Suggestion, when non-empty, is a replacement token the
// user may accept.
type Diagnostic struct {
	Line       int
	Column     int
	Length     int
	Category   Category
	Message    string
	Suggestion string
}

// Key is the identity used for deduplication. Two diagnostics with the same
// key are the same finding even if their messages differ.
type Key struct {
	Line     int
	Column   int
	Category Category
}

// Key returns the deduplication key for the diagnostic.
func (d Diagnostic) Key() Key {
	return Key{Line: d.Line, Column: d.Column, Category: d.Category}
}

// Less orders diagnostics by line, then column, then category. The order is
// total for distinct keys, which makes aggregator output deterministic.
func (d Diagnostic) Less(other Diagnostic) bool {
	if d.Line != other.Line {
		return d.Line < other.Line
	}
	if d.Column != other.Column {
		return d.Column < other.Column
	}
	return d.Category < other.Category
}
