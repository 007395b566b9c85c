// Package variables persists script variables, a flat string map stored as
// .osmscripts/<script>.json in the working project.
//
// The file is read on first access and only rewritten by Save when a value
// changed. Concurrent processes writing the same store are not coordinated.
package variables

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/osmscripts/core/internal/files"
	"github.com/osmscripts/core/internal/jsontree"
	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Variable is one stored name/value pair.
type Variable struct {
	Name  string
	Value string
}

// Store holds the variables of one script.
type Store struct {
	files *files.Files
	path  string

	loaded bool
	dirty  bool
	doc    []byte
	data   map[string]string
	unset  map[string]bool
}

// Path returns the store file of script inside project dir.
func Path(dir, script string) string {
	return filepath.Join(dir, files.OverrideDir, script+".json")
}

// New returns a store backed by the file at path, written through f.
func New(f *files.Files, path string) *Store {
	return &Store{files: f, path: path}
}

func (s *Store) load() {
	if s.loaded {
		return
	}
	s.loaded = true
	s.data = make(map[string]string)
	s.unset = make(map[string]bool)

	data, err := afero.ReadFile(s.files.Fs, s.path)
	if err != nil || !gjson.ValidBytes(data) {
		return
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return
	}

	s.doc = data
	root.ForEach(func(key, value gjson.Result) bool {
		s.data[key.String()] = value.String()
		return true
	})
}

// Get returns the value of name and whether it is set.
func (s *Store) Get(name string) (string, bool) {
	s.load()
	v, ok := s.data[name]
	return v, ok
}

// All returns every variable sorted by name.
func (s *Store) All() []Variable {
	s.load()
	result := make([]Variable, 0, len(s.data))
	for name, value := range s.data {
		result = append(result, Variable{Name: name, Value: value})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Set assigns value to name.
func (s *Store) Set(name, value string) {
	s.load()
	s.data[name] = value
	delete(s.unset, name)
	s.dirty = true
}

// Unset removes name.
func (s *Store) Unset(name string) {
	s.load()
	delete(s.data, name)
	s.unset[name] = true
	s.dirty = true
}

// Save writes the store if anything changed. Existing keys keep their
// position in the file; new keys are appended in name order.
func (s *Store) Save() error {
	if !s.dirty {
		return nil
	}

	doc := s.doc
	if doc == nil {
		doc = []byte("{}")
	}

	var err error
	for name := range s.unset {
		if doc, err = sjson.DeleteBytes(doc, escape(name)); err != nil {
			return fmt.Errorf("removing variable %s: %w", name, err)
		}
	}
	for _, v := range s.All() {
		if doc, err = sjson.SetBytes(doc, escape(v.Name), v.Value); err != nil {
			return fmt.Errorf("setting variable %s: %w", v.Name, err)
		}
	}

	if err := s.files.Save(s.path, jsontree.PrettyBytes(doc)); err != nil {
		return err
	}

	s.doc = doc
	s.unset = make(map[string]bool)
	s.dirty = false
	return nil
}

// escape turns a variable name into a literal sjson path.
func escape(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch r {
		case '\\', '.', '*', '?', '|', '#', '@', '!', ':', '=', '<', '>', '%':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
