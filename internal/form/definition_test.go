// internal/form/definition_test.go
//
// Unit-tests for YAML definition loading and the registry.

package form

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRegisterDefaults(t *testing.T) {
	if err := RegisterDefaults(); err != nil {
		t.Fatalf("RegisterDefaults error: %v", err)
	}
	for _, id := range []string{ClassroomFormID, CourseFormID} {
		fd, ok := GetFormDef(id)
		if !ok {
			t.Fatalf("form %q not registered", id)
		}
		if fd.Title == "" || len(fd.Fields) != 3 {
			t.Fatalf("form %q loaded oddly: %#v", id, fd)
		}
	}
}

func TestLoadFormDef_Rejects(t *testing.T) {
	cases := map[string]string{
		"missing id":     "fields:\n  - {name: a, label: A, type: text}\n",
		"no fields":      "id: x\n",
		"duplicate":      "id: x\nfields:\n  - {name: a, label: A, type: text}\n  - {name: a, label: B, type: text}\n",
		"missing label":  "id: x\nfields:\n  - {name: a, type: text}\n",
		"unknown type":   "id: x\nfields:\n  - {name: a, label: A, type: radio}\n",
		"negative max":   "id: x\nfields:\n  - {name: a, label: A, type: text, maxlength: -1}\n",
		"malformed yaml": "id: [x\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFormDef(name, []byte(doc)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestRegisterDir_Overrides(t *testing.T) {
	if err := RegisterDefaults(); err != nil {
		t.Fatalf("RegisterDefaults error: %v", err)
	}
	t.Cleanup(func() { _ = RegisterDefaults() })

	dir := t.TempDir()
	doc := `id: classroom
title: New Room
fields:
  - {name: room_number, label: Room, type: text}
  - {name: type_of_room, label: Kind, type: text}
  - {name: capacity, label: Seats, type: number}
`
	if err := os.WriteFile(filepath.Join(dir, "classroom.yaml"), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := RegisterDir(dir); err != nil {
		t.Fatalf("RegisterDir error: %v", err)
	}
	fd, _ := GetFormDef(ClassroomFormID)
	if fd.Title != "New Room" {
		t.Fatalf("override not applied: %q", fd.Title)
	}
}

func TestRegisterDir_MissingIsFine(t *testing.T) {
	if err := RegisterDir(filepath.Join(t.TempDir(), "nope")); err != nil {
		t.Fatalf("RegisterDir error: %v", err)
	}
	if err := RegisterDir(""); err != nil {
		t.Fatalf("RegisterDir(\"\") error: %v", err)
	}
}

func TestRegisterDir_BadFileFails(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("id: x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := RegisterDir(dir)
	if err == nil || !strings.Contains(err.Error(), "bad.yaml") {
		t.Fatalf("RegisterDir error = %v, want one naming bad.yaml", err)
	}
}
