// seed.go loads classrooms declared in configuration so the course form has
// rooms to offer on first start.  Seeds go through the same setters as a
// form Save; one bad entry aborts startup.
package datacontainer

import (
	"fmt"

	"github.com/yanizio/roster/internal/entity"
)

// ClassroomSeed is one configured room.  Capacity stays a string so the
// setter sees exactly what an operator typed.
type ClassroomSeed struct {
	RoomNumber string
	Type       string
	Capacity   string
}

// Seed appends every seed to c.Classrooms in order.  Nothing is appended
// unless every seed validates.
func (c *Container) Seed(seeds []ClassroomSeed) error {
	rooms := make([]*entity.Classroom, 0, len(seeds))
	for i, s := range seeds {
		room, err := entity.NewClassroom(s.RoomNumber, s.Type, s.Capacity)
		if err != nil {
			return fmt.Errorf("seed classroom %d: %w", i, err)
		}
		rooms = append(rooms, room)
	}
	for _, r := range rooms {
		c.Classrooms.Add(r)
	}
	return nil
}
