package timetable

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"ExamTimetabler/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestID() primitive.ObjectID {
	return primitive.NewObjectID()
}

func makeCourse(code, examType string, classNames []string, classSizes []int) catalog.CourseSnapshot {
	course := catalog.CourseSnapshot{
		ID:       newTestID(),
		Code:     code,
		ExamType: examType,
	}
	for i, name := range classNames {
		course.Classes = append(course.Classes, catalog.Class{
			ID:   newTestID(),
			Name: name,
			Size: classSizes[i],
		})
	}
	return course
}

func makeHalls(capacities ...int) []catalog.Hall {
	halls := make([]catalog.Hall, len(capacities))
	for i, capacity := range capacities {
		halls[i] = catalog.Hall{
			ID:       newTestID(),
			Name:     fmt.Sprintf("Hall %d", i+1),
			Capacity: capacity,
		}
	}
	return halls
}

func TestSplitCourses(t *testing.T) {
	first := makeCourse("MTH101", catalog.ExamTypePBE, []string{"ND1"}, []int{30})
	second := makeCourse("MTH201", catalog.ExamTypePBE, []string{"ND2"}, []int{30})
	secondRoman := makeCourse("COM201", catalog.ExamTypePBE, []string{"HND II"}, []int{25})
	cbe := makeCourse("GNS202", catalog.ExamTypeCBE, []string{"PND2"}, []int{40})
	nan := makeCourse("SIW204", catalog.ExamTypeNAN, []string{"ND2"}, []int{20})

	am, pm := SplitCourses([]catalog.CourseSnapshot{first, second, secondRoman, cbe, nan})

	amCodes := make([]string, 0, len(am))
	for _, c := range am {
		amCodes = append(amCodes, c.Code)
	}
	pmCodes := make([]string, 0, len(pm))
	for _, c := range pm {
		pmCodes = append(pmCodes, c.Code)
	}

	// Only PBE courses with a second-year class move to the afternoon.
	assert.ElementsMatch(t, []string{"MTH101", "GNS202", "SIW204"}, amCodes)
	assert.ElementsMatch(t, []string{"MTH201", "COM201"}, pmCodes)
}

func TestSessionBudget(t *testing.T) {
	assert.Equal(t, 90, SessionBudget(makeHalls(60, 40)))
	assert.Equal(t, 45, SessionBudget(makeHalls(30, 21)))
	assert.Equal(t, 0, SessionBudget(nil))
}

func TestGenerateNoClassTwicePerDate(t *testing.T) {
	shared := catalog.Class{ID: newTestID(), Name: "ND1", Size: 20}
	courseA := catalog.CourseSnapshot{ID: newTestID(), Code: "AAA111", ExamType: catalog.ExamTypePBE, Classes: []catalog.Class{shared}}
	courseB := catalog.CourseSnapshot{ID: newTestID(), Code: "BBB111", ExamType: catalog.ExamTypePBE, Classes: []catalog.Class{shared}}
	halls := makeHalls(100)
	dates := []string{"2026-03-02", "2026-03-03"}

	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		entries := Generate(dates, []catalog.CourseSnapshot{courseA, courseB}, nil, halls, rng)

		seen := make(map[string]int)
		for _, entry := range Expand(entries) {
			seen[entry.Date+"/"+entry.ClassID.Hex()]++
		}
		for key, count := range seen {
			assert.Equalf(t, 1, count, "class scheduled twice on %s (seed %d)", key, seed)
		}
		// Both courses share the class, so they must land on different dates.
		assert.Len(t, entries, 2)
	}
}

func TestGenerateScenario(t *testing.T) {
	// 2 dates, 100 seats of hall capacity (budget 90 per session), three AM
	// PBE courses of 50/30/40 and one small CBE course.
	halls := makeHalls(60, 40)
	dates := []string{"2026-03-02", "2026-03-03"}

	for seed := int64(0); seed < 50; seed++ {
		am := []catalog.CourseSnapshot{
			makeCourse("MTH111", catalog.ExamTypePBE, []string{"ND1"}, []int{50}),
			makeCourse("COM111", catalog.ExamTypePBE, []string{"PND1"}, []int{30}),
			makeCourse("GNS111", catalog.ExamTypePBE, []string{"HND1"}, []int{40}),
			makeCourse("CBE101", catalog.ExamTypeCBE, []string{"NDC1"}, []int{20}),
		}
		rng := rand.New(rand.NewSource(seed))
		entries := Generate(dates, am, nil, halls, rng)

		cbeCount := 0
		cbePerDate := make(map[string]int)
		amSizePerDate := make(map[string]int)
		classDates := make(map[string]bool)

		for _, entry := range entries {
			require.Equal(t, PeriodAM, entry.Period)
			if entry.Course.ExamType == catalog.ExamTypeCBE {
				cbeCount++
				cbePerDate[entry.Date]++
			} else {
				amSizePerDate[entry.Date] += entry.Course.SeatsRequired()
			}
			for _, cls := range entry.Course.Classes {
				key := entry.Date + "/" + cls.ID.Hex()
				assert.Falsef(t, classDates[key], "class repeated on a date (seed %d)", seed)
				classDates[key] = true
			}
		}

		assert.Equalf(t, 1, cbeCount, "expected exactly one CBE sitting (seed %d)", seed)
		for date, count := range cbePerDate {
			assert.LessOrEqualf(t, count, 1, "more than one CBE on %s (seed %d)", date, seed)
		}
		for date, size := range amSizePerDate {
			assert.LessOrEqualf(t, size, 90, "AM budget exceeded on %s (seed %d)", date, seed)
		}
	}
}

func TestGenerateCBEClosesMorning(t *testing.T) {
	// With only a CBE course and another AM course, any date that carries
	// the CBE sitting must carry nothing scheduled after it in the morning.
	halls := makeHalls(200)
	dates := []string{"2026-03-02"}

	for seed := int64(0); seed < 20; seed++ {
		am := []catalog.CourseSnapshot{
			makeCourse("CBE101", catalog.ExamTypeCBE, []string{"ND1"}, []int{30}),
			makeCourse("MTH111", catalog.ExamTypePBE, []string{"PND1"}, []int{30}),
		}
		rng := rand.New(rand.NewSource(seed))
		entries := Generate(dates, am, nil, halls, rng)

		for i, entry := range entries {
			if entry.Course.ExamType == catalog.ExamTypeCBE {
				assert.Equalf(t, len(entries)-1, i, "courses scheduled after the CBE sitting (seed %d)", seed)
			}
		}
	}
}

func TestGeneratePMIgnoresCBECutoff(t *testing.T) {
	// A morning CBE sitting must not stop afternoon scheduling on that date.
	halls := makeHalls(200)
	dates := []string{"2026-03-02"}
	am := []catalog.CourseSnapshot{
		makeCourse("CBE101", catalog.ExamTypeCBE, []string{"ND1"}, []int{30}),
	}
	pm := []catalog.CourseSnapshot{
		makeCourse("MTH211", catalog.ExamTypePBE, []string{"ND2"}, []int{30}),
	}

	rng := rand.New(rand.NewSource(1))
	entries := Generate(dates, am, pm, halls, rng)

	periods := make(map[Period]int)
	for _, entry := range entries {
		periods[entry.Period]++
	}
	assert.Equal(t, 1, periods[PeriodAM])
	assert.Equal(t, 1, periods[PeriodPM])
}

func TestGenerateEmptyEligibleSet(t *testing.T) {
	// A course too large for the budget can never be scheduled; the loop
	// must end cleanly with no entries rather than attempting a pick.
	halls := makeHalls(40) // budget 36
	dates := []string{"2026-03-02", "2026-03-03"}
	am := []catalog.CourseSnapshot{
		makeCourse("BIG999", catalog.ExamTypePBE, []string{"ND1"}, []int{50}),
	}

	rng := rand.New(rand.NewSource(7))
	entries := Generate(dates, am, nil, halls, rng)
	assert.Empty(t, entries)
}

func TestGenerateNoCourses(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	entries := Generate([]string{"2026-03-02"}, nil, nil, makeHalls(100), rng)
	assert.Empty(t, entries)
}

func TestGenerateSessionBudgetInvariant(t *testing.T) {
	halls := makeHalls(50, 30, 20) // budget 90
	dates := []string{"2026-03-02", "2026-03-03", "2026-03-04"}

	for seed := int64(0); seed < 30; seed++ {
		var am, pm []catalog.CourseSnapshot
		for i := 0; i < 6; i++ {
			am = append(am, makeCourse(fmt.Sprintf("AMC%03d", i), catalog.ExamTypePBE,
				[]string{fmt.Sprintf("ND1-%d", i)}, []int{10 + i*7}))
			pm = append(pm, makeCourse(fmt.Sprintf("PMC%03d", i), catalog.ExamTypePBE,
				[]string{fmt.Sprintf("ND2-%d", i)}, []int{10 + i*5}))
		}
		rng := rand.New(rand.NewSource(seed))
		entries := Generate(dates, am, pm, halls, rng)

		sizePerSitting := make(map[string]int)
		for _, entry := range entries {
			if entry.Course.ExamType != catalog.ExamTypeCBE {
				sizePerSitting[entry.Date+"/"+string(entry.Period)] += entry.Course.SeatsRequired()
			}
		}
		for sitting, size := range sizePerSitting {
			assert.LessOrEqualf(t, size, 90, "budget exceeded in %s (seed %d)", sitting, seed)
		}
	}
}

func TestExpand(t *testing.T) {
	course := makeCourse("MTH111", catalog.ExamTypePBE, []string{"ND1", "HND1"}, []int{30, 25})
	rows := Expand([]Entry{{Course: course, Date: "2026-03-02", Period: PeriodAM}})

	require.Len(t, rows, 2)
	assert.Equal(t, "MTH111", rows[0].CourseCode)
	assert.Equal(t, "ND1", rows[0].ClassName)
	assert.Equal(t, 30, rows[0].ClassSize)
	assert.Equal(t, "HND1", rows[1].ClassName)
	assert.Equal(t, "2026-03-02", rows[1].Date)
	assert.Equal(t, PeriodAM, rows[1].Period)
}

func TestExamDatesSkipsSundays(t *testing.T) {
	start, err := time.Parse(DateLayout, "2026-01-02")
	require.NoError(t, err)
	end, err := time.Parse(DateLayout, "2026-01-06")
	require.NoError(t, err)

	dates := ExamDates(start, end)
	// 2026-01-04 is a Sunday.
	assert.Equal(t, []string{"2026-01-02", "2026-01-03", "2026-01-05", "2026-01-06"}, dates)
}
