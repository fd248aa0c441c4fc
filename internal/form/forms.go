// internal/form/forms.go
//
// Roster – Forms subsystem: the classroom and course input forms.
//
// Context
//   Form is the shared base: a Frame, the definition it was built from, and
//   its controls keyed by field name.  ClassroomForm and CourseForm add typed
//   accessors so controllers never look controls up by string or cast a
//   selection value.
//
//------------------------------------------------------------------------------

package form

import (
	"fmt"

	"github.com/yanizio/roster/internal/entity"
)

// Field names the forms require from their definitions.
const (
	FieldRoomNumber = "room_number"
	FieldTypeOfRoom = "type_of_room"
	FieldCapacity   = "capacity"
	FieldClassroom  = "classroom"
	FieldCourseID   = "course_id"
	FieldCourseName = "course_name"
)

// Form is the state of one open input form.
type Form struct {
	Frame

	def   *FormDef
	bind  *binding
	texts map[string]*Text
	lists map[string]lister
}

func newForm(def *FormDef) *Form {
	f := &Form{
		def:   def,
		bind:  &binding{},
		texts: make(map[string]*Text),
		lists: make(map[string]lister),
	}
	for _, fd := range def.Fields {
		if fd.Type == TypeText || fd.Type == TypeNumber {
			f.texts[fd.Name] = &Text{name: fd.Name, bind: f.bind}
		}
	}
	return f
}

// Def returns the definition the form was built from.
func (f *Form) Def() *FormDef { return f.def }

// Attach routes control reads to src until Detach.
func (f *Form) Attach(src Source) { f.bind.set(src) }

// Detach restores reads from stored state.
func (f *Form) Detach() { f.bind.set(nil) }

// Value returns the stored text of a field, or "" for unknown names.
func (f *Form) Value(name string) string {
	if t, ok := f.texts[name]; ok {
		return t.Value()
	}
	return ""
}

// Choices returns display labels and the selected index of a selection
// field.  ok is false for unknown names.
func (f *Form) Choices(name string) (labels []string, index int, ok bool) {
	l, ok := f.lists[name]
	if !ok {
		return nil, NoSelection, false
	}
	return l.Labels(), l.Index(), true
}

// Controls returns every control in definition order.
func (f *Form) Controls() []Control {
	out := make([]Control, 0, len(f.def.Fields))
	for _, fd := range f.def.Fields {
		if t, ok := f.texts[fd.Name]; ok {
			out = append(out, t)
		} else if l, ok := f.lists[fd.Name]; ok {
			out = append(out, l)
		}
	}
	return out
}

func (f *Form) text(name string) (*Text, error) {
	t, ok := f.texts[name]
	if !ok {
		return nil, fmt.Errorf("form %s: text field %q not defined", f.def.ID, name)
	}
	return t, nil
}

// -----------------------------------------------------------------------------
// Classroom
// -----------------------------------------------------------------------------

// ClassroomForm captures room number, type, and capacity.
type ClassroomForm struct {
	*Form
	roomNumber *Text
	typeOfRoom *Text
	capacity   *Text
}

// NewClassroomForm builds the form from def.  def must define the three
// classroom text fields.
func NewClassroomForm(def *FormDef) (*ClassroomForm, error) {
	f := &ClassroomForm{Form: newForm(def)}
	var err error
	if f.roomNumber, err = f.text(FieldRoomNumber); err != nil {
		return nil, err
	}
	if f.typeOfRoom, err = f.text(FieldTypeOfRoom); err != nil {
		return nil, err
	}
	if f.capacity, err = f.text(FieldCapacity); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *ClassroomForm) RoomNumber() TextField { return f.roomNumber }
func (f *ClassroomForm) TypeOfRoom() TextField { return f.typeOfRoom }
func (f *ClassroomForm) Capacity() TextField   { return f.capacity }

// -----------------------------------------------------------------------------
// Course
// -----------------------------------------------------------------------------

// CourseForm captures the classroom selection, course id, and name.
type CourseForm struct {
	*Form
	classrooms *List[*entity.Classroom]
	courseID   *Text
	courseName *Text
}

// NewCourseForm builds the form from def.  def must define a select field
// named “classroom” and the two course text fields.
func NewCourseForm(def *FormDef) (*CourseForm, error) {
	fd, ok := def.Field(FieldClassroom)
	if !ok || fd.Type != TypeSelect {
		return nil, fmt.Errorf("form %s: select field %q not defined", def.ID, FieldClassroom)
	}

	f := &CourseForm{Form: newForm(def)}
	f.classrooms = &List[*entity.Classroom]{name: FieldClassroom, bind: f.bind, index: NoSelection}
	f.lists[FieldClassroom] = f.classrooms

	var err error
	if f.courseID, err = f.text(FieldCourseID); err != nil {
		return nil, err
	}
	if f.courseName, err = f.text(FieldCourseName); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *CourseForm) Classrooms() Selection[*entity.Classroom] { return f.classrooms }
func (f *CourseForm) CourseID() TextField                      { return f.courseID }
func (f *CourseForm) CourseName() TextField                    { return f.courseName }
