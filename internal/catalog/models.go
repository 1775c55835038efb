package catalog

import (
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exam types recognised by the scheduler.
const (
	ExamTypeCBE = "CBE" // computer based, seated outside the shared budget
	ExamTypePBE = "PBE" // paper based
	ExamTypeNAN = "NAN" // no exam held, excluded from distribution
)

var ErrInvalidSnapshot = errors.New("invalid catalog snapshot")

// Department represents an academic department.
type Department struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`
	Slug string             `bson:"slug" json:"slug"`
}

// Class represents a class (cohort) sitting exams together.
type Class struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"` // e.g. ND1, PND2, HND II
	Size         int                `bson:"size" json:"size"` // number of students
	DepartmentID primitive.ObjectID `bson:"department_id" json:"department_id"`
}

// Course represents an examinable course offered to one or more classes.
type Course struct {
	ID       primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Code     string               `bson:"code" json:"code"`
	Title    string               `bson:"title" json:"title"`
	ExamType string               `bson:"exam_type" json:"exam_type"` // CBE, PBE or NAN
	ClassIDs []primitive.ObjectID `bson:"class_ids" json:"class_ids"`
}

// Hall represents a physical examination hall.
type Hall struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Capacity    int                `bson:"capacity" json:"capacity"`
	MaxStudents int                `bson:"max_students" json:"max_students"` // per-course cap inside the hall
	MinCourses  int                `bson:"min_courses" json:"min_courses"`   // max distinct courses, name kept from the legacy schema
	Rows        int                `bson:"rows" json:"rows"`
	Cols        int                `bson:"cols" json:"cols"`
}

// Student represents a registered student.
type Student struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MatricNo string             `bson:"matric_no" json:"matric_no"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	ClassID  primitive.ObjectID `bson:"class_id" json:"class_id"`
}

// CourseSnapshot is a course with its class references resolved, the form
// the scheduling engine consumes.
type CourseSnapshot struct {
	ID       primitive.ObjectID
	Code     string
	ExamType string
	Classes  []Class
}

// SeatsRequired is the total number of seats the course's classes need.
func (c CourseSnapshot) SeatsRequired() int {
	total := 0
	for _, cls := range c.Classes {
		total += cls.Size
	}
	return total
}

// ValidExamType reports whether t is one of the recognised exam types.
func ValidExamType(t string) bool {
	return t == ExamTypeCBE || t == ExamTypePBE || t == ExamTypeNAN
}

// MatricNumber builds a student matric number from the class name, the
// department slug and a serial, following the institutional scheme:
// N/ for national diploma classes, PN/ for pre-ND, H/ for higher ND.
func MatricNumber(deptSlug, className string, serial int) string {
	var prefix string
	switch {
	case strings.HasPrefix(className, "N"):
		prefix = "N/"
	case strings.HasPrefix(className, "P"):
		prefix = "PN/"
	default:
		prefix = "H/"
	}
	return fmt.Sprintf("%s%s/%04d", prefix, deptSlug, serial)
}

// ValidateCourses rejects snapshots with dangling or malformed references
// before any scheduling stage runs.
func ValidateCourses(courses []CourseSnapshot) error {
	for _, course := range courses {
		if course.Code == "" {
			return fmt.Errorf("%w: course %s has no code", ErrInvalidSnapshot, course.ID.Hex())
		}
		if !ValidExamType(course.ExamType) {
			return fmt.Errorf("%w: course %s has unknown exam type %q", ErrInvalidSnapshot, course.Code, course.ExamType)
		}
		for _, cls := range course.Classes {
			if cls.ID.IsZero() {
				return fmt.Errorf("%w: course %s references a missing class", ErrInvalidSnapshot, course.Code)
			}
			if cls.Size < 0 {
				return fmt.Errorf("%w: class %s has negative size", ErrInvalidSnapshot, cls.Name)
			}
		}
	}
	return nil
}

// ValidateHalls rejects hall snapshots whose grid does not match the
// declared capacity.
func ValidateHalls(halls []Hall) error {
	for _, hall := range halls {
		if hall.ID.IsZero() {
			return fmt.Errorf("%w: hall %q has no id", ErrInvalidSnapshot, hall.Name)
		}
		if hall.Rows*hall.Cols != hall.Capacity {
			return fmt.Errorf("%w: hall %s grid %dx%d does not match capacity %d",
				ErrInvalidSnapshot, hall.Name, hall.Rows, hall.Cols, hall.Capacity)
		}
	}
	return nil
}
