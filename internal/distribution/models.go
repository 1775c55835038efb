package distribution

import (
	"errors"

	"ExamTimetabler/internal/timetable"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrCapacityExceeded is returned when more students need seats than the
// halls can hold in total. Checked before distribution runs.
var ErrCapacityExceeded = errors.New("total students exceed total hall capacity")

// ErrNoSuitableHall is returned when no hall accepted any class at all,
// even under the relaxed placement test.
var ErrNoSuitableHall = errors.New("no suitable hall for any scheduled class")

// Unit is one scheduled class to be packed into a hall.
type Unit struct {
	ScheduleID primitive.ObjectID `json:"schedule_id"`
	ClassID    primitive.ObjectID `json:"class_id"`
	ClassName  string             `json:"class_name"`
	CourseCode string             `json:"course_code"`
	Size       int                `json:"size"`
}

// DistributionItem records how many students of a class sit in the hall.
type DistributionItem struct {
	ScheduleID   primitive.ObjectID `bson:"schedule_id" json:"schedule_id"`
	ClassID      primitive.ObjectID `bson:"class_id" json:"class_id"`
	ClassName    string             `bson:"class_name" json:"class_name"`
	CourseCode   string             `bson:"course_code" json:"course_code"`
	StudentCount int                `bson:"student_count" json:"student_count"`
}

// Distribution is the set of class groups assigned to one hall for one
// sitting.
type Distribution struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	HallID   primitive.ObjectID `bson:"hall_id" json:"hall_id"`
	HallName string             `bson:"hall_name" json:"hall_name"`
	Date     string             `bson:"date" json:"date"`
	Period   timetable.Period   `bson:"period" json:"period"`
	Items    []DistributionItem `bson:"items" json:"items"`
}

// DistributionStats summarises a generated distribution.
type DistributionStats struct {
	HallsUsed           int     `json:"halls_used"`
	StudentsDistributed int     `json:"students_distributed"`
	TotalCapacity       int     `json:"total_capacity"`
	UtilizationPct      float64 `json:"utilization_pct"`
	UnplacedUnits       int     `json:"unplaced_units"`
}
