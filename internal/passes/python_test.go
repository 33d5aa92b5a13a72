package passes

import (
	"strings"
	"testing"

	"mayalint/internal/diag"
	"mayalint/internal/fuzzy"
	"mayalint/internal/knowledge"
)

func testEnv() *Env {
	return &Env{KB: knowledge.Default(), Fuzzy: fuzzy.Default()}
}

func runPass(t *testing.T, name string, src string, mode Mode) []diag.Diagnostic {
	t.Helper()
	for _, p := range Default() {
		if p.Name == name {
			return p.Run(strings.Split(src, "\n"), mode, testEnv())
		}
	}
	t.Fatalf("no pass named %q", name)
	return nil
}

func categories(ds []diag.Diagnostic) []diag.Category {
	out := make([]diag.Category, len(ds))
	for i, d := range ds {
		out[i] = d.Category
	}
	return out
}

func TestMissingImport(t *testing.T) {
	src := "cmds.polySphere(r=2)"
	ds := runPass(t, "missing-import", src, ModePython)
	if len(ds) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(ds), ds)
	}
	if ds[0].Category != diag.MissingImport {
		t.Errorf("category = %v", ds[0].Category)
	}
	if ds[0].Suggestion != "import maya.cmds as cmds" {
		t.Errorf("suggestion = %q", ds[0].Suggestion)
	}
}

func TestMissingImport_SatisfiedByImport(t *testing.T) {
	src := "import maya.cmds as cmds\ncmds.polySphere(r=2)"
	if ds := runPass(t, "missing-import", src, ModePython); len(ds) != 0 {
		t.Errorf("unexpected diagnostics: %v", ds)
	}
}

func TestMissingImport_FromImportForm(t *testing.T) {
	src := "from maya import cmds\ncmds.ls(type='mesh')"
	if ds := runPass(t, "missing-import", src, ModePython); len(ds) != 0 {
		t.Errorf("unexpected diagnostics: %v", ds)
	}
}

func TestDuplicateImport(t *testing.T) {
	src := "import maya.cmds as cmds\nimport maya.cmds as mc"
	ds := runPass(t, "missing-import", src, ModePython)
	if len(ds) != 1 || ds[0].Category != diag.DuplicateImport {
		t.Fatalf("got %v, want one DuplicateImport", ds)
	}
	if ds[0].Line != 1 {
		t.Errorf("line = %d, want 1", ds[0].Line)
	}
}

func TestUnknownCommand_WithSuggestion(t *testing.T) {
	src := "import maya.cmds as cmds\ncmds.polySpere(r=2)"
	ds := runPass(t, "unknown-command", src, ModePython)
	if len(ds) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(ds), ds)
	}
	d := ds[0]
	if d.Category != diag.UnknownCommand {
		t.Errorf("category = %v", d.Category)
	}
	if d.Suggestion != "polySphere" {
		t.Errorf("suggestion = %q, want polySphere", d.Suggestion)
	}
	if d.Line != 1 || d.Column != strings.Index("cmds.polySpere(r=2)", "polySpere") {
		t.Errorf("position = %d:%d", d.Line, d.Column)
	}
}

func TestUnknownCommand_BelowFloorNoSuggestion(t *testing.T) {
	src := "cmds.frobnicate()"
	ds := runPass(t, "unknown-command", src, ModePython)
	if len(ds) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(ds))
	}
	if ds[0].Suggestion != "" {
		t.Errorf("unrelated token must not get a suggestion, got %q", ds[0].Suggestion)
	}
}

func TestUnknownCommand_KnownIsQuiet(t *testing.T) {
	src := "cmds.polySphere(r=2)\ncmds.select(cl=True)"
	if ds := runPass(t, "unknown-command", src, ModePython); len(ds) != 0 {
		t.Errorf("unexpected diagnostics: %v", ds)
	}
}

func TestUnknownCommand_CommentsIgnored(t *testing.T) {
	src := "# cmds.polySpere(r=2)"
	if ds := runPass(t, "unknown-command", src, ModePython); len(ds) != 0 {
		t.Errorf("commented-out code should not be scanned: %v", ds)
	}
}

func TestDeprecatedCommand(t *testing.T) {
	src := "cmds.bindSkin('joint1', 'mesh1')"
	ds := runPass(t, "deprecated-command", src, ModePython)
	if len(ds) != 1 || ds[0].Category != diag.DeprecatedCommand {
		t.Fatalf("got %v, want one DeprecatedCommand", ds)
	}
}

func TestCallShape_MultiReturnWithoutIndex(t *testing.T) {
	src := "node = cmds.polySphere(r=2)"
	ds := runPass(t, "call-shape", src, ModePython)
	if len(ds) != 1 || ds[0].Category != diag.CallShapeError {
		t.Fatalf("got %v, want one CallShapeError", ds)
	}
}

func TestCallShape_IndexedIsFine(t *testing.T) {
	src := "node = cmds.polySphere(r=2)[0]"
	if ds := runPass(t, "call-shape", src, ModePython); len(ds) != 0 {
		t.Errorf("indexed multi-return assignment is correct usage: %v", ds)
	}
}

func TestCallShape_VoidAssignment(t *testing.T) {
	src := "ok = cmds.select('pSphere1')"
	ds := runPass(t, "call-shape", src, ModePython)
	if len(ds) != 1 || ds[0].Category != diag.CallShapeError {
		t.Fatalf("got %v, want one CallShapeError", ds)
	}
}

func TestCallShape_MissingParens(t *testing.T) {
	src := "cmds.polySphere"
	ds := runPass(t, "call-shape", src, ModePython)
	if len(ds) != 1 || ds[0].Category != diag.MissingCallParens {
		t.Fatalf("got %v, want one MissingCallParens", ds)
	}
}

func TestCallShape_WrongNamespace(t *testing.T) {
	src := "mesh = cmds.MFnMesh(dagPath)"
	ds := runPass(t, "call-shape", src, ModePython)
	if len(ds) != 1 || ds[0].Category != diag.WrongNamespace {
		t.Fatalf("got %v, want one WrongNamespace", ds)
	}
	if ds[0].Suggestion != "om.MFnMesh" {
		t.Errorf("suggestion = %q", ds[0].Suggestion)
	}
}

func TestCallShape_EmptySelectionQuery(t *testing.T) {
	tests := []struct {
		src  string
		want int
	}{
		{"cmds.select()", 1},
		{`cmds.select("")`, 1},
		{`cmds.ls("")`, 1},
		{"cmds.ls()", 0}, // listing everything is legitimate
		{"cmds.select('pSphere1')", 0},
	}
	for _, tt := range tests {
		ds := runPass(t, "call-shape", tt.src, ModePython)
		count := 0
		for _, c := range categories(ds) {
			if c == diag.EmptySelectionQuery {
				count++
			}
		}
		if count != tt.want {
			t.Errorf("%q: got %d EmptySelectionQuery, want %d", tt.src, count, tt.want)
		}
	}
}

func TestEmptyDocument(t *testing.T) {
	for _, p := range Default() {
		if !p.AppliesTo(ModePython) {
			continue
		}
		if ds := p.Run([]string{""}, ModePython, testEnv()); len(ds) != 0 {
			t.Errorf("pass %s reported on an empty document: %v", p.Name, ds)
		}
	}
}
