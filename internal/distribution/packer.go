package distribution

import (
	"math/rand"
	"sort"

	"ExamTimetabler/internal/catalog"
)

// constraintFactor reserves headroom in each hall so the seat planner can
// still honour adjacency constraints afterwards.
const constraintFactor = 0.85

// minResidualGroup: a leftover smaller than this is absorbed into the
// current hall rather than stranded.
const minResidualGroup = 5

// Placement is one accepted (hall, unit) assignment.
type Placement struct {
	Unit         Unit
	StudentCount int
}

// HallResult is a hall together with the placements it received.
type HallResult struct {
	Hall       catalog.Hall
	Placements []Placement
}

type hallState struct {
	hall      catalog.Hall
	remaining int
	opened    bool
	courses   map[string]bool
	result    []Placement
}

// canPlace applies the course-exclusivity and distinct-course checks, then
// tests the unit against the hall's remaining capacity, derated unless the
// relaxed fallback is in effect.
func (h *hallState) canPlace(unit Unit, derated bool) bool {
	if h.courses[unit.CourseCode] {
		return false
	}
	if len(h.courses) >= h.hall.MinCourses {
		return false
	}
	capacity := h.remaining
	if derated {
		capacity = int(float64(h.remaining) * constraintFactor)
	}
	students := unit.Size
	if h.hall.MaxStudents < students {
		students = h.hall.MaxStudents
	}
	return capacity >= students
}

// place assigns as many of the unit's students as the hall's per-course
// cap allows, absorbing a tiny leftover whole.
func (h *hallState) place(unit *Unit) {
	students := h.hall.MaxStudents
	if students >= unit.Size {
		students = unit.Size
	}
	if unit.Size-students < minResidualGroup {
		students = unit.Size
	}
	h.result = append(h.result, Placement{Unit: *unit, StudentCount: students})
	h.courses[unit.CourseCode] = true
	h.remaining -= students
	unit.Size -= students
}

// Distribute bin-packs class units into halls, largest first. Units are
// shuffled before sorting so equal sizes break ties differently between
// runs. Each unit is visited exactly once; a remainder beyond the
// per-course cap stays undistributed for this sitting. Units no hall
// accepts under either the strict or the relaxed test come back in the
// second return value.
func Distribute(units []Unit, halls []catalog.Hall, rng *rand.Rand) ([]HallResult, []Unit) {
	work := make([]Unit, len(units))
	copy(work, units)
	rng.Shuffle(len(work), func(i, j int) { work[i], work[j] = work[j], work[i] })
	sort.SliceStable(work, func(i, j int) bool { return work[i].Size > work[j].Size })

	states := make([]*hallState, len(halls))
	for i, hall := range halls {
		states[i] = &hallState{hall: hall, remaining: hall.Capacity, courses: make(map[string]bool)}
	}
	sort.SliceStable(states, func(i, j int) bool { return states[i].hall.Capacity > states[j].hall.Capacity })

	var opened []*hallState
	var unplaced []Unit

	for i := range work {
		unit := &work[i]
		if unit.Size == 0 {
			continue
		}

		placed := false
		for _, h := range opened {
			if h.canPlace(*unit, true) {
				h.place(unit)
				placed = true
				break
			}
		}
		if !placed {
			for _, h := range states {
				if !h.opened && h.canPlace(*unit, true) {
					h.place(unit)
					h.opened = true
					opened = append(opened, h)
					placed = true
					break
				}
			}
		}
		if !placed {
			for _, h := range states {
				if !h.opened && h.canPlace(*unit, false) {
					h.place(unit)
					h.opened = true
					opened = append(opened, h)
					placed = true
					break
				}
			}
		}
		if !placed {
			unplaced = append(unplaced, *unit)
		}
	}

	var results []HallResult
	for _, h := range opened {
		if len(h.result) > 0 {
			results = append(results, HallResult{Hall: h.hall, Placements: h.result})
		}
	}
	return results, unplaced
}

// TotalCapacity sums the raw capacities of the halls.
func TotalCapacity(halls []catalog.Hall) int {
	total := 0
	for _, hall := range halls {
		total += hall.Capacity
	}
	return total
}

// TotalSeatsNeeded sums the sizes of the units awaiting distribution.
func TotalSeatsNeeded(units []Unit) int {
	total := 0
	for _, unit := range units {
		total += unit.Size
	}
	return total
}
