// internal/form/definition.go
//
// Roster – Forms subsystem: YAML definition loader.
//
// Context
//   Each data-entry form is declared in YAML: its identifier, title, and the
//   ordered list of fields the window shows.  The classroom and course
//   definitions ship embedded in the binary.  Operators may drop files with
//   the same IDs into an override directory to relabel fields or change
//   placeholders; overrides replace the embedded definition wholesale.
//
// Workflow
//   •  LoadFormDef parses a single YAML document and validates its shape.
//   •  RegisterDefaults loads the embedded definitions.
//   •  RegisterDir walks an override directory and registers every “*.yaml”.
//   •  GetFormDef offers read-only access by ID.
//
//   Field rules (lengths, patterns, ranges) are NOT enforced from YAML.
//   Entities own their validation; maxlength and required only drive the
//   HTML hints the renderer writes.
//
//------------------------------------------------------------------------------

package form

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed defs/*.yaml
var defaultDefs embed.FS

// Form IDs shipped with the binary.
const (
	ClassroomFormID = "classroom"
	CourseFormID    = "course"
)

// Field types understood by forms and the renderer.
const (
	TypeText   = "text"
	TypeNumber = "number"
	TypeSelect = "select"
)

// -----------------------------------------------------------------------------
// Data structures
// -----------------------------------------------------------------------------

// FormDef represents one form definition loaded from YAML.
type FormDef struct {
	ID     string     `yaml:"id"`     // Unique identifier, e.g. “course”.
	Title  string     `yaml:"title"`  // Window title.
	Fields []FieldDef `yaml:"fields"` // Display order.
}

// FieldDef describes a single input control on the form.
type FieldDef struct {
	Name        string `yaml:"name"`        // Control key.  Required.
	Label       string `yaml:"label"`       // Human-readable label.  Required.
	Type        string `yaml:"type"`        // text, number, or select.
	Placeholder string `yaml:"placeholder"` // Optional placeholder text.
	Required    bool   `yaml:"required"`    // Rendered as a hint only.
	MaxLength   int    `yaml:"maxlength"`   // ≥ 0, 0 means unset.
}

// Field returns the named field definition.
func (fd *FormDef) Field(name string) (FieldDef, bool) {
	for _, f := range fd.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDef{}, false
}

// -----------------------------------------------------------------------------
// Registry
// -----------------------------------------------------------------------------

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*FormDef)
)

// GetFormDef returns a parsed FormDef by ID.  The boolean is false when the
// ID is unknown.
func GetFormDef(id string) (*FormDef, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	fd, ok := registry[id]
	return fd, ok
}

func register(fd *FormDef) {
	registryMu.Lock()
	registry[fd.ID] = fd
	registryMu.Unlock()
}

// -----------------------------------------------------------------------------
// Loader API
// -----------------------------------------------------------------------------

// LoadFormDef parses one YAML document.  name is used in error messages
// only.  It never mutates the registry.
func LoadFormDef(name string, raw []byte) (*FormDef, error) {
	var fd FormDef
	if err := yaml.Unmarshal(raw, &fd); err != nil {
		return nil, fmt.Errorf("parse YAML %s: %w", name, err)
	}
	if err := validateFormDef(&fd, name); err != nil {
		return nil, err
	}
	return &fd, nil
}

// RegisterDefaults loads the definitions embedded in the binary.
func RegisterDefaults() error {
	entries, err := fs.ReadDir(defaultDefs, "defs")
	if err != nil {
		return err
	}
	for _, e := range entries {
		path := "defs/" + e.Name()
		raw, err := defaultDefs.ReadFile(path)
		if err != nil {
			return err
		}
		fd, err := LoadFormDef(path, raw)
		if err != nil {
			return err
		}
		register(fd)
	}
	return nil
}

// RegisterDir loads every “*.yaml” under dir, overriding definitions with
// the same ID.  A missing directory is not an error.
func RegisterDir(dir string) error {
	if dir == "" {
		return nil
	}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".yaml") {
			return nil
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read form file %s: %w", path, err)
		}
		fd, err := LoadFormDef(path, raw)
		if err != nil {
			return err // fail fast so issues surface loudly.
		}
		register(fd)
		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// -----------------------------------------------------------------------------
// Validation helpers
// -----------------------------------------------------------------------------

func validateFormDef(fd *FormDef, name string) error {
	if fd.ID == "" {
		return fmt.Errorf("form definition %s: missing required 'id'", name)
	}
	if len(fd.Fields) == 0 {
		return fmt.Errorf("form definition %s: must have 'fields'", name)
	}

	seen := make(map[string]struct{}, len(fd.Fields))
	for i := range fd.Fields {
		f := &fd.Fields[i]
		if err := validateField(f, name); err != nil {
			return err
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("form %s: duplicate field name '%s'", name, f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}

func validateField(f *FieldDef, name string) error {
	if f.Name == "" {
		return fmt.Errorf("form %s: field missing 'name'", name)
	}
	if f.Label == "" {
		return fmt.Errorf("form %s: field '%s' missing 'label'", name, f.Name)
	}
	switch f.Type {
	case TypeText, TypeNumber, TypeSelect:
	case "":
		return fmt.Errorf("form %s: field '%s' missing 'type'", name, f.Name)
	default:
		return fmt.Errorf("form %s: field '%s' has unsupported type %q", name, f.Name, f.Type)
	}
	if f.MaxLength < 0 {
		return fmt.Errorf("form %s: field '%s' maxlength cannot be negative", name, f.Name)
	}
	return nil
}
