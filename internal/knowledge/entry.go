package knowledge

import "fmt"

// Namespace groups commands by the module they are reached through in
// script-editor code.
type Namespace int

const (
	// NamespaceCmds is the primary scripting module (maya.cmds).
	NamespaceCmds Namespace = iota
	// NamespaceAPI covers OpenMaya API classes.
	NamespaceAPI
	// NamespaceMEL covers MEL builtins and global procedures.
	NamespaceMEL
	// NamespaceOther covers everything else (plugins, site procs).
	NamespaceOther
)

var namespaceNames = [...]string{
	NamespaceCmds:  "cmds",
	NamespaceAPI:   "api",
	NamespaceMEL:   "mel",
	NamespaceOther: "other",
}

// String returns the namespace token as it appears in source.
func (n Namespace) String() string {
	if n < 0 || int(n) >= len(namespaceNames) {
		return "other"
	}
	return namespaceNames[n]
}

// ParseNamespace maps a namespace token to its enum value.
func ParseNamespace(s string) (Namespace, error) {
	for i, name := range namespaceNames {
		if s == name {
			return Namespace(i), nil
		}
	}
	return NamespaceOther, fmt.Errorf("unknown namespace %q", s)
}

// UnmarshalYAML decodes a namespace from its string form.
func (n *Namespace) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	ns, err := ParseNamespace(s)
	if err != nil {
		return err
	}
	*n = ns
	return nil
}

// CommandEntry describes one known callable command.
type CommandEntry struct {
	// Name is the command's canonical spelling (case preserved for display).
	Name string
	// Namespace is the module the command belongs to.
	Namespace Namespace
	// Deprecated marks commands that still resolve but should not be used.
	Deprecated bool
	// MultiReturn marks commands whose result is a list (creation commands
	// returning [transform, shape], query commands returning node lists).
	// Assigning such a result without indexing is a common misuse.
	MultiReturn bool
	// Void marks commands that return nothing; assigning their result is
	// always a mistake.
	Void bool
}

// Qualified returns the name as written in source, e.g. "cmds.polySphere".
// MEL builtins are unqualified.
func (e CommandEntry) Qualified() string {
	if e.Namespace == NamespaceMEL {
		return e.Name
	}
	return e.Namespace.String() + "." + e.Name
}
