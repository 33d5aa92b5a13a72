package document

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNew_StartsAtVersionOne(t *testing.T) {
	d := New("cmds.polySphere(r=2)")
	if d.Version() != 1 {
		t.Errorf("version = %d, want 1", d.Version())
	}
	if d.LineCount() != 1 {
		t.Errorf("line count = %d, want 1", d.LineCount())
	}
}

func TestNew_EmptyTextIsOneEmptyLine(t *testing.T) {
	d := New("")
	if d.LineCount() != 1 {
		t.Errorf("line count = %d, want 1", d.LineCount())
	}
	if d.Text() != "" {
		t.Errorf("text = %q", d.Text())
	}
}

func TestSetText_BumpsVersion(t *testing.T) {
	d := New("a")
	d.SetText("a\nb")
	d.SetText("a\nb\nc")
	if d.Version() != 3 {
		t.Errorf("version = %d, want 3", d.Version())
	}
	if d.LineCount() != 3 {
		t.Errorf("line count = %d, want 3", d.LineCount())
	}
}

func TestSnapshot_IsolatedFromLaterEdits(t *testing.T) {
	d := New("first\nsecond")
	snap := d.Snapshot()

	d.SetText("rewritten")

	want := []string{"first", "second"}
	if diff := cmp.Diff(want, snap.Lines); diff != "" {
		t.Errorf("snapshot changed under a later edit (-want +got):\n%s", diff)
	}
	if snap.Version != 1 {
		t.Errorf("snapshot version = %d, want 1", snap.Version)
	}
	if d.Version() != 2 {
		t.Errorf("document version = %d, want 2", d.Version())
	}
}

func TestSetLines_CopiesInput(t *testing.T) {
	d := New("x")
	lines := []string{"one", "two"}
	d.SetLines(lines)
	lines[0] = "mutated"

	if d.Text() != "one\ntwo" {
		t.Errorf("text = %q; the buffer must not alias caller slices", d.Text())
	}
	if d.Version() != 2 {
		t.Errorf("version = %d, want 2", d.Version())
	}
}

func TestSnapshot_TextRoundTrip(t *testing.T) {
	const src = "import maya.cmds as cmds\n\ncmds.select(cl=True)"
	if got := New(src).Snapshot().Text(); got != src {
		t.Errorf("round trip = %q, want %q", got, src)
	}
}
