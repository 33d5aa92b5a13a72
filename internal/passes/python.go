package passes

import (
	"fmt"
	"regexp"
	"strings"

	"mayalint/internal/diag"
	"mayalint/internal/knowledge"
)

// moduleForPrefix maps a source-level module token to the import that
// provides it and the knowledge-base namespace its commands live in.
var moduleForPrefix = map[string]struct {
	importPath string
	ns         knowledge.Namespace
}{
	"cmds":     {"maya.cmds", knowledge.NamespaceCmds},
	"mel":      {"maya.mel", knowledge.NamespaceMEL},
	"om":       {"maya.api.OpenMaya", knowledge.NamespaceAPI},
	"api":      {"maya.api.OpenMaya", knowledge.NamespaceAPI},
	"OpenMaya": {"maya.api.OpenMaya", knowledge.NamespaceAPI},
}

var importRes = map[string]*regexp.Regexp{
	"maya.cmds":         regexp.MustCompile(`^\s*(import\s+maya\.cmds\b|from\s+maya\s+import\s+.*\bcmds\b)`),
	"maya.mel":          regexp.MustCompile(`^\s*(import\s+maya\.mel\b|from\s+maya\s+import\s+.*\bmel\b)`),
	"maya.api.OpenMaya": regexp.MustCompile(`^\s*(import\s+maya\.(api\.)?OpenMaya\b|from\s+maya(\.api)?\s+import\s+.*\bOpenMaya\b)`),
}

// importedModules returns the import line for each maya module imported in
// the document, plus any duplicate-import findings.
func importedModules(lines []string) (map[string]int, []diag.Diagnostic) {
	imported := make(map[string]int)
	var dups []diag.Diagnostic
	for i, raw := range lines {
		line := stripPythonComment(raw)
		for mod, re := range importRes {
			loc := re.FindStringIndex(line)
			if loc == nil {
				continue
			}
			if _, seen := imported[mod]; seen {
				dups = append(dups, diag.Diagnostic{
					Line:     i,
					Column:   loc[0],
					Length:   loc[1] - loc[0],
					Category: diag.DuplicateImport,
					Message:  fmt.Sprintf("%s is already imported", mod),
				})
				continue
			}
			imported[mod] = i
		}
	}
	return imported, dups
}

// runMissingImport reports qualified command usage whose module is never
// imported, plus duplicate imports of the same module.
func runMissingImport(lines []string, _ Mode, _ *Env) []diag.Diagnostic {
	imported, out := importedModules(lines)
	for _, site := range findCallSites(lines) {
		mod, ok := moduleForPrefix[site.prefix]
		if !ok {
			continue
		}
		if _, has := imported[mod.importPath]; has {
			continue
		}
		out = append(out, diag.Diagnostic{
			Line:       site.line,
			Column:     site.col,
			Length:     len(site.name),
			Category:   diag.MissingImport,
			Message:    fmt.Sprintf("%s.%s used but %s is not imported", site.prefix, site.name, mod.importPath),
			Suggestion: fmt.Sprintf("import %s as %s", mod.importPath, site.prefix),
		})
	}
	return out
}

// runUnknownCommand reports references that do not resolve in the knowledge
// base, attaching a fuzzy suggestion when one clears the floor.
func runUnknownCommand(lines []string, mode Mode, env *Env) []diag.Diagnostic {
	var out []diag.Diagnostic
	if mode == ModeMEL {
		for i, raw := range lines {
			name, col, ok := melCommandToken(raw)
			if !ok {
				continue
			}
			if _, known := env.KB.Lookup(name); known {
				continue
			}
			out = append(out, unknownDiag(i, col, name, melCandidates(env.KB), env))
		}
		return out
	}
	for _, site := range findCallSites(lines) {
		mod, ok := moduleForPrefix[site.prefix]
		if !ok {
			continue
		}
		if _, known := env.KB.Lookup(site.name); known {
			continue
		}
		out = append(out, unknownDiag(site.line, site.col, site.name, env.KB.NamesIn(mod.ns), env))
	}
	return out
}

func unknownDiag(line, col int, name string, candidates []string, env *Env) diag.Diagnostic {
	d := diag.Diagnostic{
		Line:     line,
		Column:   col,
		Length:   len(name),
		Category: diag.UnknownCommand,
		Message:  fmt.Sprintf("unknown command %q", name),
	}
	if m, ok := env.Fuzzy.Suggest(name, candidates); ok {
		d.Message = fmt.Sprintf("unknown command %q, did you mean %q?", name, m.Name)
		d.Suggestion = m.Name
	}
	return d
}

// melCandidates returns the suggestion pool for MEL mode: MEL builtins plus
// the cmds surface, which MEL statements call directly.
func melCandidates(kb *knowledge.Base) []string {
	mel := kb.NamesIn(knowledge.NamespaceMEL)
	cmds := kb.NamesIn(knowledge.NamespaceCmds)
	out := make([]string, 0, len(mel)+len(cmds))
	out = append(out, mel...)
	out = append(out, cmds...)
	return out
}

// runDeprecatedCommand flags resolvable commands the table marks deprecated.
func runDeprecatedCommand(lines []string, mode Mode, env *Env) []diag.Diagnostic {
	var out []diag.Diagnostic
	flag := func(line, col int, name string) {
		entry, known := env.KB.Lookup(name)
		if !known || !entry.Deprecated {
			return
		}
		out = append(out, diag.Diagnostic{
			Line:     line,
			Column:   col,
			Length:   len(name),
			Category: diag.DeprecatedCommand,
			Message:  fmt.Sprintf("%s is deprecated", entry.Name),
		})
	}
	if mode == ModeMEL {
		for i, raw := range lines {
			if name, col, ok := melCommandToken(raw); ok {
				flag(i, col, name)
			}
		}
		return out
	}
	for _, site := range findCallSites(lines) {
		flag(site.line, site.col, site.name)
	}
	return out
}

var assignPrefixRe = regexp.MustCompile(`^\s*[A-Za-z_][A-Za-z0-9_.]*\s*=\s*$`)

// runCallShape reports line-local API misuse: multi-return results assigned
// without indexing, void results assigned at all, bare references missing
// call parens, API classes reached through cmds, and empty selection
// queries.
func runCallShape(lines []string, _ Mode, env *Env) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, site := range findCallSites(lines) {
		entry, known := env.KB.Lookup(site.name)
		if !known {
			continue
		}
		line := stripPythonComment(lines[site.line])

		if entry.Namespace == knowledge.NamespaceAPI && site.prefix == "cmds" {
			out = append(out, diag.Diagnostic{
				Line:       site.line,
				Column:     site.col,
				Length:     len(site.name),
				Category:   diag.WrongNamespace,
				Message:    fmt.Sprintf("%s is an OpenMaya class, not a cmds command", entry.Name),
				Suggestion: "om." + entry.Name,
			})
			continue
		}

		if !site.called {
			out = append(out, diag.Diagnostic{
				Line:       site.line,
				Column:     site.col,
				Length:     len(site.name),
				Category:   diag.MissingCallParens,
				Message:    fmt.Sprintf("%s.%s referenced without calling it", site.prefix, site.name),
				Suggestion: fmt.Sprintf("%s.%s()", site.prefix, site.name),
			})
			continue
		}

		prefixStart := site.col - len(site.prefix) - 1
		assigned := prefixStart >= 0 && assignPrefixRe.MatchString(line[:prefixStart])

		if assigned && entry.Void {
			out = append(out, diag.Diagnostic{
				Line:     site.line,
				Column:   site.col,
				Length:   len(site.name),
				Category: diag.CallShapeError,
				Message:  fmt.Sprintf("%s returns nothing; assigning its result is a mistake", entry.Name),
			})
			continue
		}

		if assigned && entry.MultiReturn && site.closed && !indexedAfterCall(line, site) {
			out = append(out, diag.Diagnostic{
				Line:       site.line,
				Column:     site.col,
				Length:     len(site.name),
				Category:   diag.CallShapeError,
				Message:    fmt.Sprintf("%s returns a list; index the result (e.g. [0]) before using it as a node", entry.Name),
				Suggestion: fmt.Sprintf("%s.%s(...)[0]", site.prefix, site.name),
			})
		}

		if emptySelectionQuery(entry.Name, site) {
			out = append(out, diag.Diagnostic{
				Line:     site.line,
				Column:   site.col,
				Length:   len(site.name),
				Category: diag.EmptySelectionQuery,
				Message:  fmt.Sprintf("%s called with an empty selection query", entry.Name),
			})
		}
	}
	return out
}

// indexedAfterCall reports whether the call's result is indexed on the same
// line, e.g. cmds.polySphere(r=2)[0].
func indexedAfterCall(line string, site callSite) bool {
	open := strings.Index(line[site.col:], "(")
	if open < 0 {
		return false
	}
	close := matchParen(line, site.col+open)
	if close < 0 {
		return false
	}
	rest := strings.TrimLeft(line[close+1:], " \t")
	return strings.HasPrefix(rest, "[")
}

// emptySelectionQuery reports select() with no arguments and select/ls with
// an empty string literal.
func emptySelectionQuery(name string, site callSite) bool {
	if !site.called || !site.closed {
		return false
	}
	args := strings.TrimSpace(site.args)
	switch name {
	case "select":
		return args == "" || args == `""` || args == "''"
	case "ls":
		return args == `""` || args == "''"
	}
	return false
}
