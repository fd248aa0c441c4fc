// internal/controller/forms.go
//
// Constructors for the classroom and course controllers.  Each one names
// the view it needs as a small interface, reads controls in a fixed order,
// and builds the entity through the entity package's setters.
package controller

import (
	"go.uber.org/zap"

	"github.com/yanizio/roster/internal/entity"
	"github.com/yanizio/roster/internal/form"
)

// ClassroomView is what the classroom controller reads.
type ClassroomView interface {
	form.Window
	RoomNumber() form.TextField
	TypeOfRoom() form.TextField
	Capacity() form.TextField
}

// CourseView is what the course controller reads.
type CourseView interface {
	form.Window
	Classrooms() form.Selection[*entity.Classroom]
	CourseID() form.TextField
	CourseName() form.TextField
}

// ClassroomList is the read side of the classroom container.
type ClassroomList interface {
	All() []*entity.Classroom
}

// NewClassroomController wires a classroom form to store and shows it.
func NewClassroomController(v ClassroomView, store Store[*entity.Classroom],
	log *zap.SugaredLogger, p ErrorPresenter) *Controller[*entity.Classroom] {
	controls := []form.Control{v.RoomNumber(), v.TypeOfRoom(), v.Capacity()}

	build := func() (*entity.Classroom, error) {
		number, err := readText(entity.KindClassroom, form.FieldRoomNumber, v.RoomNumber())
		if err != nil {
			return nil, err
		}
		kind, err := readText(entity.KindClassroom, form.FieldTypeOfRoom, v.TypeOfRoom())
		if err != nil {
			return nil, err
		}
		capacity, err := readText(entity.KindClassroom, form.FieldCapacity, v.Capacity())
		if err != nil {
			return nil, err
		}
		return entity.NewClassroom(number, kind, capacity)
	}

	return newController(entity.KindClassroom, v, controls, build, store, log, p)
}

// NewCourseController wires a course form to store, fills the classroom
// selection from rooms, and shows it.
func NewCourseController(v CourseView, store Store[*entity.Course], rooms ClassroomList,
	log *zap.SugaredLogger, p ErrorPresenter) *Controller[*entity.Course] {
	v.Classrooms().SetOptions(rooms.All())
	controls := []form.Control{v.Classrooms(), v.CourseID(), v.CourseName()}

	build := func() (*entity.Course, error) {
		room, _, err := v.Classrooms().Selected()
		if err != nil {
			return nil, &ReadError{Field: entity.KindCourse + "." + form.FieldClassroom, Err: err}
		}
		id, err := readText(entity.KindCourse, form.FieldCourseID, v.CourseID())
		if err != nil {
			return nil, err
		}
		name, err := readText(entity.KindCourse, form.FieldCourseName, v.CourseName())
		if err != nil {
			return nil, err
		}
		return entity.NewCourse(room, id, name)
	}

	return newController(entity.KindCourse, v, controls, build, store, log, p)
}

func readText(kind, field string, tf form.TextField) (string, error) {
	s, err := tf.Text()
	if err != nil {
		return "", &ReadError{Field: kind + "." + field, Err: err}
	}
	return s, nil
}
