package seating

import (
	"errors"

	"ExamTimetabler/internal/timetable"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrTooManyStudents = errors.New("too many students for the hall grid")
	ErrSeatOutOfRange  = errors.New("seat number out of range")
	ErrSeatOccupied    = errors.New("seat is already occupied")
)

// SeatRecord is one student's seat in a hall for one sitting. SeatNumber
// is zero while the student is unplaced. Records may be amended by a
// manual override but never by the planner after generation.
type SeatRecord struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Date       string             `bson:"date" json:"date"`
	Period     timetable.Period   `bson:"period" json:"period"`
	HallID     primitive.ObjectID `bson:"hall_id" json:"hall_id"`
	StudentID  primitive.ObjectID `bson:"student_id,omitempty" json:"student_id,omitempty"`
	MatricNo   string             `bson:"matric_no" json:"matric_no"`
	CourseCode string             `bson:"course_code" json:"course_code"`
	ClassID    primitive.ObjectID `bson:"class_id" json:"class_id"`
	SeatNumber int                `bson:"seat_number,omitempty" json:"seat_number,omitempty"`
}

// AllocationSummary reports the outcome of a seat allocation run.
type AllocationSummary struct {
	TotalStudents    int     `json:"total_students"`
	PlacedStudents   int     `json:"placed_students"`
	UnplacedStudents int     `json:"unplaced_students"`
	PercentagePlaced float64 `json:"percentage_placed"`
}
