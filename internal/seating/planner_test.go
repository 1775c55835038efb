package seating

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func makeStudents(course string, count int) []SeatStudent {
	classID := primitive.NewObjectID()
	students := make([]SeatStudent, count)
	for i := range students {
		students[i] = SeatStudent{
			StudentID:  primitive.NewObjectID(),
			MatricNo:   fmt.Sprintf("N/%s/%04d", course, i+1),
			CourseCode: course,
			ClassID:    classID,
		}
	}
	return students
}

// assertNoAdjacentSameCourse fails if any two placed students of the same
// course sit in 8-adjacent seats.
func assertNoAdjacentSameCourse(t *testing.T, placed []PlacedSeat, cols int) {
	t.Helper()
	for i := 0; i < len(placed); i++ {
		for j := i + 1; j < len(placed); j++ {
			if placed[i].Student.CourseCode != placed[j].Student.CourseCode {
				continue
			}
			assert.Falsef(t, SeatsAdjacent(placed[i].SeatNumber, placed[j].SeatNumber, cols),
				"students of %s in adjacent seats %d and %d",
				placed[i].Student.CourseCode, placed[i].SeatNumber, placed[j].SeatNumber)
		}
	}
}

func TestSeatNumberRoundTrip(t *testing.T) {
	const rows, cols = 7, 9
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			seat := SeatNumber(r, c, cols)
			require.GreaterOrEqual(t, seat, 1)
			require.LessOrEqual(t, seat, rows*cols)
			gotR, gotC := RowCol(seat, cols)
			assert.Equal(t, r, gotR)
			assert.Equal(t, c, gotC)
		}
	}
}

func TestSeatsAdjacent(t *testing.T) {
	// 4-column grid: seat 1 is (0,0).
	assert.True(t, SeatsAdjacent(1, 2, 4))  // same row
	assert.True(t, SeatsAdjacent(1, 5, 4))  // same column
	assert.True(t, SeatsAdjacent(1, 6, 4))  // diagonal
	assert.True(t, SeatsAdjacent(6, 1, 4))  // symmetric
	assert.False(t, SeatsAdjacent(1, 3, 4)) // two columns apart
	assert.False(t, SeatsAdjacent(1, 9, 4)) // two rows apart
	assert.False(t, SeatsAdjacent(1, 1, 4)) // identity
	assert.False(t, SeatsAdjacent(4, 5, 4)) // row wrap is not adjacency
}

func TestAllocateScenario(t *testing.T) {
	// 4x4 grid, 8 students from 2 courses: a checkerboard split seats all
	// of them without adjacent same-course pairs.
	students := append(makeStudents("MTH111", 4), makeStudents("COM111", 4)...)

	fullPlacements := 0
	for seed := int64(0); seed < 10; seed++ {
		rng := rand.New(rand.NewSource(seed))
		result := Allocate(students, 4, 4, rng)

		assertNoAdjacentSameCourse(t, result.Placed, 4)
		if len(result.Placed) == len(students) {
			fullPlacements++
			assert.Equal(t, 100.0, result.PercentagePlaced)
		}
	}
	assert.Greater(t, fullPlacements, 0, "no seed achieved full placement")
}

func TestAllocateAdjacencyNeverSacrificed(t *testing.T) {
	// Overload a small grid: whatever ends up placed must still honour the
	// adjacency rule, with the surplus reported unplaced.
	students := append(makeStudents("MTH111", 9), makeStudents("COM111", 9)...)

	for seed := int64(0); seed < 10; seed++ {
		rng := rand.New(rand.NewSource(seed))
		result := Allocate(students, 4, 4, rng)

		assert.LessOrEqual(t, len(result.Placed), 16)
		assert.Equal(t, len(students), len(result.Placed)+len(result.Unplaced))
		assertNoAdjacentSameCourse(t, result.Placed, 4)
	}
}

func TestAllocateSeatNumbersUnique(t *testing.T) {
	students := append(makeStudents("MTH111", 10), makeStudents("COM111", 10)...)
	rng := rand.New(rand.NewSource(11))
	result := Allocate(students, 6, 6, rng)

	seen := make(map[int]bool)
	for _, placed := range result.Placed {
		assert.GreaterOrEqual(t, placed.SeatNumber, 1)
		assert.LessOrEqual(t, placed.SeatNumber, 36)
		assert.Falsef(t, seen[placed.SeatNumber], "seat %d assigned twice", placed.SeatNumber)
		seen[placed.SeatNumber] = true
	}
}

func TestAllocateDeterministicForSeed(t *testing.T) {
	students := append(makeStudents("MTH111", 6), makeStudents("COM111", 6)...)

	first := Allocate(students, 5, 5, rand.New(rand.NewSource(0)))
	second := Allocate(students, 5, 5, rand.New(rand.NewSource(0)))

	require.Equal(t, len(first.Placed), len(second.Placed))
	for i := range first.Placed {
		assert.Equal(t, first.Placed[i].Student.MatricNo, second.Placed[i].Student.MatricNo)
		assert.Equal(t, first.Placed[i].SeatNumber, second.Placed[i].SeatNumber)
	}
	assert.Equal(t, first.Unplaced, second.Unplaced)
}

func TestAllocateEmptyRoster(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	result := Allocate(nil, 4, 4, rng)
	assert.Empty(t, result.Placed)
	assert.Empty(t, result.Unplaced)
	assert.Equal(t, 0.0, result.PercentagePlaced)
}

func TestAllocateSingleCourseSpreads(t *testing.T) {
	// 8 students of one course fit a 4x4 grid only on non-adjacent cells.
	students := makeStudents("MTH111", 8)

	for seed := int64(0); seed < 10; seed++ {
		rng := rand.New(rand.NewSource(seed))
		result := Allocate(students, 4, 4, rng)
		assertNoAdjacentSameCourse(t, result.Placed, 4)
		assert.Equal(t, len(students), len(result.Placed)+len(result.Unplaced))
	}
}

func TestValidateManualSeat(t *testing.T) {
	occupied := map[int]bool{3: true}

	assert.NoError(t, ValidateManualSeat(1, 4, 4, occupied))
	assert.NoError(t, ValidateManualSeat(16, 4, 4, occupied))
	// Adjacency is not checked for manual overrides: seat 2 borders the
	// occupied seat 3 and is still accepted.
	assert.NoError(t, ValidateManualSeat(2, 4, 4, occupied))

	assert.ErrorIs(t, ValidateManualSeat(0, 4, 4, occupied), ErrSeatOutOfRange)
	assert.ErrorIs(t, ValidateManualSeat(17, 4, 4, occupied), ErrSeatOutOfRange)
	assert.ErrorIs(t, ValidateManualSeat(3, 4, 4, occupied), ErrSeatOccupied)
}
