package distribution

import (
	"math/rand"
	"testing"

	"ExamTimetabler/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func makeHall(name string, capacity, maxStudents, minCourses int) catalog.Hall {
	return catalog.Hall{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Capacity:    capacity,
		MaxStudents: maxStudents,
		MinCourses:  minCourses,
	}
}

func makeUnit(course string, size int) Unit {
	return Unit{
		ScheduleID: primitive.NewObjectID(),
		ClassID:    primitive.NewObjectID(),
		ClassName:  course + "-class",
		CourseCode: course,
		Size:       size,
	}
}

func TestDistributeScenario(t *testing.T) {
	// 2 halls (40/30 capacity, matching per-course caps, min_courses 3/2),
	// 3 units of distinct courses sized 50/20/10.
	halls := []catalog.Hall{
		makeHall("Hall A", 40, 40, 3),
		makeHall("Hall B", 30, 30, 2),
	}
	units := []Unit{
		makeUnit("MTH111", 50),
		makeUnit("COM111", 20),
		makeUnit("GNS111", 10),
	}

	rng := rand.New(rand.NewSource(1))
	results, unplaced := Distribute(units, halls, rng)

	for _, result := range results {
		courses := make(map[string]bool)
		for _, p := range result.Placements {
			assert.Falsef(t, courses[p.Unit.CourseCode],
				"hall %s hosts course %s twice", result.Hall.Name, p.Unit.CourseCode)
			courses[p.Unit.CourseCode] = true
		}
		assert.LessOrEqual(t, len(courses), result.Hall.MinCourses)
	}

	// The 50-student unit exceeds both derated capacities and lands in
	// Hall A via the relaxed fallback, truncated to the per-course cap.
	require.Len(t, results, 2)
	require.Len(t, results[0].Placements, 1)
	assert.Equal(t, "MTH111", results[0].Placements[0].Unit.CourseCode)
	assert.Equal(t, 40, results[0].Placements[0].StudentCount)
	require.Len(t, results[1].Placements, 1)
	assert.Equal(t, "COM111", results[1].Placements[0].Unit.CourseCode)
	assert.Equal(t, 20, results[1].Placements[0].StudentCount)

	// Both halls are opened by then, so the 10-student unit has nowhere
	// left to go and is reported unplaced.
	require.Len(t, unplaced, 1)
	assert.Equal(t, "GNS111", unplaced[0].CourseCode)
}

func TestDistributeStudentCountBound(t *testing.T) {
	halls := []catalog.Hall{
		makeHall("Hall A", 120, 35, 4),
		makeHall("Hall B", 80, 30, 4),
	}
	units := []Unit{
		makeUnit("MTH111", 60),
		makeUnit("COM111", 28),
		makeUnit("GNS111", 35),
		makeUnit("BIO111", 12),
	}

	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		results, _ := Distribute(units, halls, rng)
		for _, result := range results {
			for _, p := range result.Placements {
				limit := result.Hall.MaxStudents
				if p.Unit.Size < limit {
					limit = p.Unit.Size
				}
				// The small-residual rule may round a count up to the full
				// unit, never beyond it.
				assert.LessOrEqual(t, p.StudentCount, p.Unit.Size)
				assert.GreaterOrEqual(t, p.StudentCount, limit)
			}
		}
	}
}

func TestDistributeAbsorbsSmallResidual(t *testing.T) {
	// 43 students against a per-course cap of 40 leaves a residual of 3,
	// which is absorbed rather than stranded.
	halls := []catalog.Hall{makeHall("Hall A", 50, 40, 3)}
	units := []Unit{makeUnit("MTH111", 43)}

	rng := rand.New(rand.NewSource(2))
	results, unplaced := Distribute(units, halls, rng)

	require.Len(t, results, 1)
	require.Len(t, results[0].Placements, 1)
	assert.Equal(t, 43, results[0].Placements[0].StudentCount)
	assert.Empty(t, unplaced)
}

func TestDistributeTruncatesWithoutRequeue(t *testing.T) {
	// An oversized unit is visited once: the remainder beyond the
	// per-course cap is not offered to the second hall.
	halls := []catalog.Hall{
		makeHall("Hall A", 100, 40, 3),
		makeHall("Hall B", 100, 40, 3),
	}
	units := []Unit{makeUnit("MTH111", 60)}

	rng := rand.New(rand.NewSource(3))
	results, unplaced := Distribute(units, halls, rng)

	require.Len(t, results, 1)
	require.Len(t, results[0].Placements, 1)
	assert.Equal(t, 40, results[0].Placements[0].StudentCount)
	assert.Empty(t, unplaced)
}

func TestDistributeCourseExclusivity(t *testing.T) {
	// Two classes of the same course must not share a hall.
	halls := []catalog.Hall{
		makeHall("Hall A", 100, 50, 3),
		makeHall("Hall B", 100, 50, 3),
	}
	units := []Unit{
		makeUnit("MTH111", 30),
		makeUnit("MTH111", 30),
	}

	for seed := int64(0); seed < 10; seed++ {
		rng := rand.New(rand.NewSource(seed))
		results, unplaced := Distribute(units, halls, rng)
		assert.Empty(t, unplaced)
		for _, result := range results {
			courses := make(map[string]int)
			for _, p := range result.Placements {
				courses[p.Unit.CourseCode]++
			}
			for course, count := range courses {
				assert.Equalf(t, 1, count, "course %s duplicated in %s (seed %d)",
					course, result.Hall.Name, seed)
			}
		}
	}
}

func TestDistributeMinCoursesCap(t *testing.T) {
	halls := []catalog.Hall{makeHall("Hall A", 200, 50, 2)}
	units := []Unit{
		makeUnit("MTH111", 20),
		makeUnit("COM111", 20),
		makeUnit("GNS111", 20),
	}

	rng := rand.New(rand.NewSource(4))
	results, unplaced := Distribute(units, halls, rng)

	require.Len(t, results, 1)
	assert.Len(t, results[0].Placements, 2)
	assert.Len(t, unplaced, 1)
}

func TestDistributePrefersOpenedHalls(t *testing.T) {
	// Units that fit an already-opened hall stay there instead of opening
	// a second hall.
	halls := []catalog.Hall{
		makeHall("Hall A", 100, 60, 4),
		makeHall("Hall B", 100, 60, 4),
	}
	units := []Unit{
		makeUnit("MTH111", 30),
		makeUnit("COM111", 20),
		makeUnit("GNS111", 10),
	}

	rng := rand.New(rand.NewSource(5))
	results, unplaced := Distribute(units, halls, rng)

	assert.Empty(t, unplaced)
	require.Len(t, results, 1)
	assert.Len(t, results[0].Placements, 3)
}

func TestDistributeEmptyUnits(t *testing.T) {
	halls := []catalog.Hall{makeHall("Hall A", 100, 60, 4)}
	rng := rand.New(rand.NewSource(6))
	results, unplaced := Distribute(nil, halls, rng)
	assert.Empty(t, results)
	assert.Empty(t, unplaced)
}

func TestTotals(t *testing.T) {
	halls := []catalog.Hall{
		makeHall("Hall A", 40, 40, 3),
		makeHall("Hall B", 30, 30, 2),
	}
	units := []Unit{makeUnit("MTH111", 50), makeUnit("COM111", 20)}

	assert.Equal(t, 70, TotalCapacity(halls))
	assert.Equal(t, 70, TotalSeatsNeeded(units))
}
