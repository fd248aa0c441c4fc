// internal/entity/course.go
//
// Roster – Entities: Course.
//
// Context
//   A Course is offered in an existing Classroom, chosen from the list the
//   application already holds.  The course keeps a read-only reference to
//   that classroom; it never owns or mutates it.
//
//------------------------------------------------------------------------------

package entity

// KindCourse labels course errors, logs, and metrics.
const KindCourse = "course"

// Course is a validated course offering.
type Course struct {
	classroom  *Classroom
	courseID   string
	courseName string
}

// NewCourse sets the classroom first, then the name, then the id, and
// stops at the first failure.
func NewCourse(classroom *Classroom, courseID, courseName string) (*Course, error) {
	c := &Course{}
	if err := c.SetClassroom(classroom); err != nil {
		return nil, err
	}
	if err := c.SetCourseName(courseName); err != nil {
		return nil, err
	}
	if err := c.SetCourseID(courseID); err != nil {
		return nil, err
	}
	return c, nil
}

// SetClassroom stores the selected room.  A nil selection is missing data.
func (c *Course) SetClassroom(room *Classroom) error {
	if room == nil {
		return missing(KindCourse, "classroom")
	}
	c.classroom = room
	return nil
}

// SetCourseID stores an identifier such as "CIS-355".
func (c *Course) SetCourseID(raw string) error {
	v, err := check(KindCourse, "course_id", raw, courseIDRule)
	if err != nil {
		return err
	}
	c.courseID = v
	return nil
}

// SetCourseName stores the display name.
func (c *Course) SetCourseName(raw string) error {
	v, err := check(KindCourse, "course_name", raw, courseNameRule)
	if err != nil {
		return err
	}
	c.courseName = v
	return nil
}

func (c *Course) Classroom() *Classroom { return c.classroom }
func (c *Course) CourseID() string      { return c.courseID }
func (c *Course) CourseName() string    { return c.courseName }

// CourseJSON is the wire shape used by the read-only API.
type CourseJSON struct {
	CourseID   string        `json:"course_id"`
	CourseName string        `json:"course_name"`
	Classroom  ClassroomJSON `json:"classroom"`
}

// JSON snapshots the getters.
func (c *Course) JSON() CourseJSON {
	out := CourseJSON{CourseID: c.courseID, CourseName: c.courseName}
	if c.classroom != nil {
		out.Classroom = c.classroom.JSON()
	}
	return out
}
