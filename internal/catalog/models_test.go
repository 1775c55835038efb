package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestValidExamType(t *testing.T) {
	assert.True(t, ValidExamType(ExamTypeCBE))
	assert.True(t, ValidExamType(ExamTypePBE))
	assert.True(t, ValidExamType(ExamTypeNAN))
	assert.False(t, ValidExamType("OBE"))
	assert.False(t, ValidExamType(""))
	assert.False(t, ValidExamType("pbe"))
}

func TestMatricNumber(t *testing.T) {
	assert.Equal(t, "N/cs/0007", MatricNumber("cs", "ND2", 7))
	assert.Equal(t, "PN/acc/0001", MatricNumber("acc", "PND1", 1))
	assert.Equal(t, "H/eee/0123", MatricNumber("eee", "HND II", 123))
}

func TestSeatsRequired(t *testing.T) {
	course := CourseSnapshot{
		Code:     "MTH111",
		ExamType: ExamTypePBE,
		Classes: []Class{
			{ID: primitive.NewObjectID(), Name: "ND1", Size: 30},
			{ID: primitive.NewObjectID(), Name: "HND1", Size: 25},
		},
	}
	assert.Equal(t, 55, course.SeatsRequired())
	assert.Equal(t, 0, CourseSnapshot{}.SeatsRequired())
}

func TestValidateCourses(t *testing.T) {
	valid := CourseSnapshot{
		ID:       primitive.NewObjectID(),
		Code:     "MTH111",
		ExamType: ExamTypePBE,
		Classes:  []Class{{ID: primitive.NewObjectID(), Name: "ND1", Size: 30}},
	}
	assert.NoError(t, ValidateCourses([]CourseSnapshot{valid}))

	noCode := valid
	noCode.Code = ""
	assert.ErrorIs(t, ValidateCourses([]CourseSnapshot{noCode}), ErrInvalidSnapshot)

	badType := valid
	badType.ExamType = "XYZ"
	assert.ErrorIs(t, ValidateCourses([]CourseSnapshot{badType}), ErrInvalidSnapshot)

	dangling := valid
	dangling.Classes = []Class{{Name: "ND1", Size: 30}}
	assert.ErrorIs(t, ValidateCourses([]CourseSnapshot{dangling}), ErrInvalidSnapshot)
}

func TestValidateHalls(t *testing.T) {
	valid := Hall{
		ID:       primitive.NewObjectID(),
		Name:     "Hall A",
		Capacity: 48,
		Rows:     6,
		Cols:     8,
	}
	assert.NoError(t, ValidateHalls([]Hall{valid}))

	mismatched := valid
	mismatched.Rows = 5
	assert.ErrorIs(t, ValidateHalls([]Hall{mismatched}), ErrInvalidSnapshot)

	missingID := valid
	missingID.ID = primitive.NilObjectID
	assert.ErrorIs(t, ValidateHalls([]Hall{missingID}), ErrInvalidSnapshot)
}
