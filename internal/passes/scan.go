package passes

import (
	"regexp"
	"strings"
)

// callSite is one namespace-qualified command reference found on a line.
type callSite struct {
	line   int
	col    int    // 0-based column of the command name
	prefix string // the module token as written: cmds, mel, om, ...
	name   string
	called bool   // reference is followed by an opening paren
	args   string // raw argument text when the call closes on the same line
	closed bool   // the call's closing paren sits on the same line
}

// qualifiedRefRe matches module-qualified references in Python dialect code.
// The recognized module tokens mirror the conventional import aliases.
var qualifiedRefRe = regexp.MustCompile(`\b(cmds|mel|om|OpenMaya|api)\.([A-Za-z_][A-Za-z0-9_]*)`)

// stripPythonComment removes a trailing # comment, respecting string
// literals so a # inside quotes survives.
func stripPythonComment(line string) string {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '#':
			return line[:i]
		}
	}
	return line
}

// stripMELComment removes a trailing // comment, respecting string literals.
func stripMELComment(line string) string {
	var inString bool
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case inString:
			if c == '\\' {
				i++
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '/' && i+1 < len(line) && line[i+1] == '/':
			return line[:i]
		}
	}
	return line
}

var pythonImportLineRe = regexp.MustCompile(`^\s*(import|from)\b`)

// findCallSites scans Python-dialect lines for qualified command references.
// Import lines are skipped: module paths like maya.api.OpenMaya would
// otherwise look like qualified references.
func findCallSites(lines []string) []callSite {
	var sites []callSite
	for i, raw := range lines {
		line := stripPythonComment(raw)
		if pythonImportLineRe.MatchString(line) {
			continue
		}
		for _, m := range qualifiedRefRe.FindAllStringSubmatchIndex(line, -1) {
			site := callSite{
				line:   i,
				col:    m[4],
				prefix: line[m[2]:m[3]],
				name:   line[m[4]:m[5]],
			}
			rest := line[m[5]:]
			if strings.HasPrefix(strings.TrimLeft(rest, " \t"), "(") {
				site.called = true
				open := m[5] + strings.Index(line[m[5]:], "(")
				if close := matchParen(line, open); close >= 0 {
					site.closed = true
					site.args = line[open+1 : close]
				}
			}
			sites = append(sites, site)
		}
	}
	return sites
}

// matchParen returns the index of the paren closing the one at open, or -1
// when the call does not close on this line.
func matchParen(line string, open int) int {
	depth := 0
	var quote byte
	for i := open; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// melKeywords are MEL tokens that start statements but are not commands.
var melKeywords = map[string]bool{
	"if": true, "else": true, "for": true, "while": true, "do": true,
	"switch": true, "case": true, "default": true, "break": true,
	"continue": true, "return": true, "global": true, "proc": true,
	"string": true, "int": true, "float": true, "vector": true,
	"matrix": true, "in": true, "true": true, "false": true,
	"on": true, "off": true, "yes": true, "no": true,
}

var melLeadingTokenRe = regexp.MustCompile(`^\s*` + "`?" + `([A-Za-z_][A-Za-z0-9_]*)`)

// melCommandToken extracts the leading command token of a MEL statement, if
// any. Declarations, control flow, and assignments yield no token.
func melCommandToken(raw string) (name string, col int, ok bool) {
	line := stripMELComment(raw)
	m := melLeadingTokenRe.FindStringSubmatchIndex(line)
	if m == nil {
		return "", 0, false
	}
	name = line[m[2]:m[3]]
	if melKeywords[name] {
		return "", 0, false
	}
	// An assignment target ($x = ...) or attribute path is not a command.
	rest := strings.TrimLeft(line[m[3]:], " \t")
	if strings.HasPrefix(rest, "=") && !strings.HasPrefix(rest, "==") {
		return "", 0, false
	}
	return name, m[2], true
}
