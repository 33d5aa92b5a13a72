package passes

import (
	"fmt"
	"regexp"
	"strings"

	"mayalint/internal/diag"
)

var melDeclRe = regexp.MustCompile(`^\s*(global\s+)?(string|int|float|vector|matrix)\s*(\[\s*\])?\s+([A-Za-z_$][A-Za-z0-9_]*)`)

// melHeaderRe matches statement headers that legitimately end without a
// semicolon.
var melHeaderRe = regexp.MustCompile(`^\s*(if|else|for|while|do|switch|case\b|default\s*:|global\s+proc|proc)\b`)

// runMELSyntax performs the secondary-dialect checks: statements missing a
// trailing semicolon, unterminated string literals, declarations whose
// variable lacks the $ prefix, and unbalanced braces over the document.
func runMELSyntax(lines []string, _ Mode, _ *Env) []diag.Diagnostic {
	var out []diag.Diagnostic
	depth := 0
	lastLine := -1
	for i, raw := range lines {
		line := stripMELComment(raw)
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			lastLine = i
		}

		if col, open := unterminatedString(line); open {
			out = append(out, diag.Diagnostic{
				Line:     i,
				Column:   col,
				Length:   len(line) - col,
				Category: diag.MELUnterminatedString,
				Message:  "string literal is not terminated",
			})
			// The rest of the line is inside the string; skip the
			// remaining checks to avoid cascading noise.
			continue
		}

		if m := melDeclRe.FindStringSubmatch(line); m != nil && !strings.HasPrefix(m[4], "$") {
			col := strings.Index(line, m[4])
			out = append(out, diag.Diagnostic{
				Line:       i,
				Column:     col,
				Length:     len(m[4]),
				Category:   diag.MELBadVariable,
				Message:    fmt.Sprintf("MEL variables need a $ prefix: $%s", m[4]),
				Suggestion: "$" + m[4],
			})
		}

		if needsSemicolon(trimmed) {
			out = append(out, diag.Diagnostic{
				Line:     i,
				Column:   len(strings.TrimRight(line, " \t")) - 1,
				Length:   1,
				Category: diag.MELMissingSemicolon,
				Message:  "statement is missing a terminating semicolon",
			})
		}

		for j := 0; j < len(line); j++ {
			switch line[j] {
			case '"':
				// Strings were verified balanced above; skip over one.
				j = skipString(line, j)
			case '{':
				depth++
			case '}':
				depth--
				if depth < 0 {
					out = append(out, diag.Diagnostic{
						Line:     i,
						Column:   j,
						Length:   1,
						Category: diag.MELUnbalancedBraces,
						Message:  "closing brace without a matching opening brace",
					})
					depth = 0
				}
			}
		}
	}
	if depth > 0 && lastLine >= 0 {
		out = append(out, diag.Diagnostic{
			Line:     lastLine,
			Column:   0,
			Length:   1,
			Category: diag.MELUnbalancedBraces,
			Message:  fmt.Sprintf("%d opening brace(s) never closed", depth),
		})
	}
	return out
}

// needsSemicolon reports whether a trimmed, comment-free line looks like a
// statement that should end in a semicolon but does not.
func needsSemicolon(trimmed string) bool {
	if trimmed == "" {
		return false
	}
	last := trimmed[len(trimmed)-1]
	if last == ';' || last == '{' || last == '}' || last == ',' || last == '(' || last == '\\' {
		return false
	}
	if melHeaderRe.MatchString(trimmed) {
		return false
	}
	return true
}

// unterminatedString reports whether the line opens a double-quoted string
// it never closes, returning the opening quote's column.
func unterminatedString(line string) (int, bool) {
	open := -1
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			if open >= 0 {
				i++
			}
		case '"':
			if open < 0 {
				open = i
			} else {
				open = -1
			}
		}
	}
	return open, open >= 0
}

// skipString advances past a double-quoted string starting at i and returns
// the index of its closing quote.
func skipString(line string, i int) int {
	for j := i + 1; j < len(line); j++ {
		if line[j] == '\\' {
			j++
			continue
		}
		if line[j] == '"' {
			return j
		}
	}
	return len(line) - 1
}
