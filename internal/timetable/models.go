package timetable

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Period identifies the sitting within an exam day.
type Period string

const (
	PeriodAM Period = "AM"
	PeriodPM Period = "PM"
)

// DateLayout is the wire format for exam dates.
const DateLayout = "2006-01-02"

// ScheduledExam is one class sitting one course on a date and period.
// Rows are immutable once persisted.
type ScheduledExam struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CourseID   primitive.ObjectID `bson:"course_id" json:"course_id"`
	CourseCode string             `bson:"course_code" json:"course_code"`
	ExamType   string             `bson:"exam_type" json:"exam_type"`
	ClassID    primitive.ObjectID `bson:"class_id" json:"class_id"`
	ClassName  string             `bson:"class_name" json:"class_name"`
	ClassSize  int                `bson:"class_size" json:"class_size"`
	Date       string             `bson:"date" json:"date"`
	Period     Period             `bson:"period" json:"period"`
}
