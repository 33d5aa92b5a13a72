// Package knowledge holds the static table of known script-editor commands.
// The table is built once per process, is immutable afterwards, and is safe
// for concurrent reads from any number of analyses. A failed lookup is not
// an error: it is the signal that drives fuzzy suggestion.
package knowledge

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"mayalint/internal/logging"
)

//go:embed commands.yaml
var embeddedTable []byte

// Base is an immutable lookup of known commands keyed by lowercase name.
type Base struct {
	byName map[string]CommandEntry
	names  []string
	byNS   map[Namespace][]string
}

type tableFile struct {
	Commands []struct {
		Name       string    `yaml:"name"`
		NS         Namespace `yaml:"ns"`
		Deprecated bool      `yaml:"deprecated"`
		Multi      bool      `yaml:"multi"`
		Void       bool      `yaml:"void"`
	} `yaml:"commands"`
}

// Load builds a Base from a YAML command table. Duplicate names (case
// insensitive) are rejected so the table stays unambiguous.
func Load(data []byte) (*Base, error) {
	var tf tableFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parse command table: %w", err)
	}
	b := &Base{
		byName: make(map[string]CommandEntry, len(tf.Commands)),
		byNS:   make(map[Namespace][]string),
	}
	for _, c := range tf.Commands {
		key := strings.ToLower(c.Name)
		if _, dup := b.byName[key]; dup {
			return nil, fmt.Errorf("duplicate command %q in table", c.Name)
		}
		entry := CommandEntry{
			Name:        c.Name,
			Namespace:   c.NS,
			Deprecated:  c.Deprecated,
			MultiReturn: c.Multi,
			Void:        c.Void,
		}
		b.byName[key] = entry
		b.names = append(b.names, c.Name)
		b.byNS[c.NS] = append(b.byNS[c.NS], c.Name)
	}
	sort.Strings(b.names)
	for ns := range b.byNS {
		sort.Strings(b.byNS[ns])
	}
	return b, nil
}

// FromEntries builds a Base directly from entries. Intended for tests.
func FromEntries(entries ...CommandEntry) *Base {
	b := &Base{
		byName: make(map[string]CommandEntry, len(entries)),
		byNS:   make(map[Namespace][]string),
	}
	for _, e := range entries {
		key := strings.ToLower(e.Name)
		if _, dup := b.byName[key]; dup {
			continue
		}
		b.byName[key] = e
		b.names = append(b.names, e.Name)
		b.byNS[e.Namespace] = append(b.byNS[e.Namespace], e.Name)
	}
	sort.Strings(b.names)
	for ns := range b.byNS {
		sort.Strings(b.byNS[ns])
	}
	return b
}

// Lookup returns the entry for name, matching case-insensitively.
func (b *Base) Lookup(name string) (CommandEntry, bool) {
	e, ok := b.byName[strings.ToLower(name)]
	return e, ok
}

// AllNames returns every known command name in sorted order. The returned
// slice is shared and must not be modified.
func (b *Base) AllNames() []string { return b.names }

// NamesIn returns the sorted command names belonging to one namespace.
// The returned slice is shared and must not be modified.
func (b *Base) NamesIn(ns Namespace) []string { return b.byNS[ns] }

// Len returns the number of known commands.
func (b *Base) Len() int { return len(b.byName) }

var (
	defaultOnce sync.Once
	defaultBase *Base
)

// Default returns the process-wide knowledge base built from the embedded
// table. The table is a build artifact, so a parse failure is a programmer
// error and panics.
func Default() *Base {
	defaultOnce.Do(func() {
		b, err := Load(embeddedTable)
		if err != nil {
			panic(fmt.Sprintf("knowledge: embedded command table invalid: %v", err))
		}
		logging.Knowledge().Debug("command table loaded", zap.Int("commands", b.Len()))
		defaultBase = b
	})
	return defaultBase
}
