package timetable

import (
	"math/rand"
	"strings"

	"ExamTimetabler/internal/catalog"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Entry is one course scheduled into a date and period. It expands into
// one ScheduledExam row per constituent class.
type Entry struct {
	Course catalog.CourseSnapshot
	Date   string
	Period Period
}

// hasSecondYearClass reports whether any of the course's classes is a
// second-year variant (name ending in "II" or "2").
func hasSecondYearClass(course catalog.CourseSnapshot) bool {
	for _, cls := range course.Classes {
		if strings.HasSuffix(cls.Name, "II") || strings.HasSuffix(cls.Name, "2") {
			return true
		}
	}
	return false
}

// SplitCourses partitions courses into the AM and PM pools. PBE courses
// with a second-year class sit in the afternoon; everything else,
// including all CBE and NAN courses, sits in the morning.
func SplitCourses(courses []catalog.CourseSnapshot) (am, pm []catalog.CourseSnapshot) {
	for _, course := range courses {
		if course.ExamType == catalog.ExamTypePBE && hasSecondYearClass(course) {
			pm = append(pm, course)
		} else {
			am = append(am, course)
		}
	}
	return am, pm
}

// SessionBudget is the seat budget available to a single sitting: 90% of
// the combined hall capacity, truncated.
func SessionBudget(halls []catalog.Hall) int {
	total := 0
	for _, hall := range halls {
		total += hall.Capacity
	}
	return int(float64(total) * 0.9)
}

// scheduleState tracks what has been placed so far across both sessions.
type scheduleState struct {
	classDates map[string]map[primitive.ObjectID]bool // date -> classes already sitting that date
	cbeDates   map[string]bool                        // dates that already carry a CBE exam
}

func newScheduleState() *scheduleState {
	return &scheduleState{
		classDates: make(map[string]map[primitive.ObjectID]bool),
		cbeDates:   make(map[string]bool),
	}
}

func (st *scheduleState) classScheduled(course catalog.CourseSnapshot, date string) bool {
	onDate := st.classDates[date]
	for _, cls := range course.Classes {
		if onDate[cls.ID] {
			return true
		}
	}
	return false
}

func (st *scheduleState) record(course catalog.CourseSnapshot, date string) {
	onDate := st.classDates[date]
	if onDate == nil {
		onDate = make(map[primitive.ObjectID]bool)
		st.classDates[date] = onDate
	}
	for _, cls := range course.Classes {
		onDate[cls.ID] = true
	}
	if course.ExamType == catalog.ExamTypeCBE {
		st.cbeDates[date] = true
	}
}

// coursePool is an index-based pool with an explicit consumed set, so the
// course slice is never mutated while loops run over it.
type coursePool struct {
	courses  []catalog.CourseSnapshot
	consumed []bool
}

func newCoursePool(courses []catalog.CourseSnapshot) *coursePool {
	return &coursePool{courses: courses, consumed: make([]bool, len(courses))}
}

// eligible returns the indexes of courses that fit the remaining budget
// and have no class already sitting on the date.
func (p *coursePool) eligible(date string, budget int, st *scheduleState) []int {
	var out []int
	for i, course := range p.courses {
		if p.consumed[i] {
			continue
		}
		if course.SeatsRequired() > budget {
			continue
		}
		if st.classScheduled(course, date) {
			continue
		}
		out = append(out, i)
	}
	return out
}

// Generate assigns courses to dates and periods. Each date runs two
// independent loops, AM then PM, each with its own seat budget. Picks
// among eligible courses are uniform over the supplied rng; an empty
// eligible set simply ends the loop.
func Generate(dates []string, amCourses, pmCourses []catalog.CourseSnapshot, halls []catalog.Hall, rng *rand.Rand) []Entry {
	var entries []Entry
	st := newScheduleState()
	amPool := newCoursePool(amCourses)
	pmPool := newCoursePool(pmCourses)

	for _, date := range dates {
		budgetAM := SessionBudget(halls)
		for {
			// A CBE sitting closes the morning for the rest of the date.
			if st.cbeDates[date] {
				break
			}
			eligible := amPool.eligible(date, budgetAM, st)
			if len(eligible) == 0 {
				break
			}
			idx := eligible[rng.Intn(len(eligible))]
			course := amPool.courses[idx]
			amPool.consumed[idx] = true
			entries = append(entries, Entry{Course: course, Date: date, Period: PeriodAM})
			st.record(course, date)

			if course.ExamType == catalog.ExamTypeCBE {
				break
			}
			// CBE cohorts sit outside the shared pool; everything else
			// draws down the session budget.
			budgetAM -= course.SeatsRequired()
			if budgetAM <= 0 {
				break
			}
		}

		budgetPM := SessionBudget(halls)
		for {
			eligible := pmPool.eligible(date, budgetPM, st)
			if len(eligible) == 0 {
				break
			}
			idx := eligible[rng.Intn(len(eligible))]
			course := pmPool.courses[idx]
			pmPool.consumed[idx] = true
			entries = append(entries, Entry{Course: course, Date: date, Period: PeriodPM})
			st.record(course, date)

			budgetPM -= course.SeatsRequired()
			if budgetPM <= 0 {
				break
			}
		}
	}
	return entries
}

// Expand turns scheduled entries into one ScheduledExam row per class.
func Expand(entries []Entry) []*ScheduledExam {
	var rows []*ScheduledExam
	for _, entry := range entries {
		for _, cls := range entry.Course.Classes {
			rows = append(rows, &ScheduledExam{
				ID:         primitive.NewObjectID(),
				CourseID:   entry.Course.ID,
				CourseCode: entry.Course.Code,
				ExamType:   entry.Course.ExamType,
				ClassID:    cls.ID,
				ClassName:  cls.Name,
				ClassSize:  cls.Size,
				Date:       entry.Date,
				Period:     entry.Period,
			})
		}
	}
	return rows
}
