// internal/entity/classroom.go
//
// Roster – Entities: Classroom.
//
// Context
//   A Classroom is a room number, a room type, and a seating capacity.
//   Setters take the raw string exactly as typed into a form and validate
//   it before storing; getters return whatever was last stored and do no
//   checking of their own.  A zero Classroom is "unset" and must not reach
//   a data container: build one with NewClassroom instead.
//
//------------------------------------------------------------------------------

package entity

import "fmt"

// KindClassroom labels classroom errors, logs, and metrics.
const KindClassroom = "classroom"

// Room is the capability set every classroom record offers.
type Room interface {
	SetRoomNumber(raw string) error
	SetTypeOfRoom(raw string) error
	SetCapacity(raw string) error

	RoomNumber() string
	TypeOfRoom() string
	Capacity() int
}

var _ Room = (*Classroom)(nil)

// Classroom is a validated room record.
type Classroom struct {
	roomNumber string
	typeOfRoom string
	capacity   int
}

// NewClassroom runs every setter in order and returns the first failure.
// On error the partially filled value is discarded.
func NewClassroom(roomNumber, roomType, capacity string) (*Classroom, error) {
	c := &Classroom{}
	if err := c.SetRoomNumber(roomNumber); err != nil {
		return nil, err
	}
	if err := c.SetTypeOfRoom(roomType); err != nil {
		return nil, err
	}
	if err := c.SetCapacity(capacity); err != nil {
		return nil, err
	}
	return c, nil
}

// SetRoomNumber stores a room identifier such as "R101" or "B-204".
func (c *Classroom) SetRoomNumber(raw string) error {
	v, err := check(KindClassroom, "room_number", raw, roomNumberRule)
	if err != nil {
		return err
	}
	c.roomNumber = v
	return nil
}

// SetTypeOfRoom stores the room category, e.g. "Lab" or "Lecture Hall".
func (c *Classroom) SetTypeOfRoom(raw string) error {
	v, err := check(KindClassroom, "type_of_room", raw, roomTypeRule)
	if err != nil {
		return err
	}
	c.typeOfRoom = v
	return nil
}

// SetCapacity parses raw as a positive whole number of seats.
func (c *Classroom) SetCapacity(raw string) error {
	n, err := checkInt(KindClassroom, "capacity", raw, capacityRule)
	if err != nil {
		return err
	}
	c.capacity = n
	return nil
}

func (c *Classroom) RoomNumber() string { return c.roomNumber }
func (c *Classroom) TypeOfRoom() string { return c.typeOfRoom }
func (c *Classroom) Capacity() int      { return c.capacity }

// String is what selection lists display.
func (c *Classroom) String() string {
	return fmt.Sprintf("%s (%s, %d seats)", c.roomNumber, c.typeOfRoom, c.capacity)
}

// ClassroomJSON is the wire shape used by the read-only API.
type ClassroomJSON struct {
	RoomNumber string `json:"room_number"`
	TypeOfRoom string `json:"type_of_room"`
	Capacity   int    `json:"capacity"`
}

// JSON snapshots the getters.
func (c *Classroom) JSON() ClassroomJSON {
	return ClassroomJSON{RoomNumber: c.roomNumber, TypeOfRoom: c.typeOfRoom, Capacity: c.capacity}
}
