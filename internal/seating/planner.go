package seating

import (
	"math/rand"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SeatStudent is one student awaiting a seat in a hall sitting.
type SeatStudent struct {
	StudentID  primitive.ObjectID
	MatricNo   string
	CourseCode string
	ClassID    primitive.ObjectID
}

// PlacedSeat pairs a student with the seat number they were given.
type PlacedSeat struct {
	Student    SeatStudent
	SeatNumber int
}

// Result is the outcome of an allocation: placed students with seat
// numbers, the students left unplaced, and the placement percentage.
// Placement below the informal 60% target is still returned as-is.
type Result struct {
	Placed           []PlacedSeat
	Unplaced         []SeatStudent
	PercentagePlaced float64
}

// SeatNumber maps a zero-based grid cell to its 1-based row-major seat number.
func SeatNumber(row, col, cols int) int {
	return row*cols + col + 1
}

// RowCol is the inverse of SeatNumber.
func RowCol(seat, cols int) (row, col int) {
	return (seat - 1) / cols, (seat - 1) % cols
}

// SeatsAdjacent reports whether two seat numbers are 8-directional
// neighbours in a grid with the given column count.
func SeatsAdjacent(a, b, cols int) bool {
	if a == b {
		return false
	}
	ar, ac := RowCol(a, cols)
	br, bc := RowCol(b, cols)
	dr, dc := ar-br, ac-bc
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr <= 1 && dc <= 1
}

var directions = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}

// allocator holds the occupancy state of one hall grid during placement.
type allocator struct {
	rows, cols int
	seats      [][]*SeatStudent
	positions  map[int][2]int // student index -> (row, col)
	students   []SeatStudent
}

func newAllocator(students []SeatStudent, rows, cols int) *allocator {
	seats := make([][]*SeatStudent, rows)
	for r := range seats {
		seats[r] = make([]*SeatStudent, cols)
	}
	return &allocator{
		rows:      rows,
		cols:      cols,
		seats:     seats,
		positions: make(map[int][2]int),
		students:  students,
	}
}

// validPosition reports whether the cell has no seated neighbour from the
// same course. Adjacency is never relaxed.
func (a *allocator) validPosition(courseCode string, row, col int) bool {
	for _, d := range directions {
		r, c := row+d[0], col+d[1]
		if r < 0 || r >= a.rows || c < 0 || c >= a.cols {
			continue
		}
		if neighbour := a.seats[r][c]; neighbour != nil && neighbour.CourseCode == courseCode {
			return false
		}
	}
	return true
}

func (a *allocator) seat(idx, row, col int) {
	a.seats[row][col] = &a.students[idx]
	a.positions[idx] = [2]int{row, col}
}

func (a *allocator) placed(idx int) bool {
	_, ok := a.positions[idx]
	return ok
}

// Placement patterns tried in order during the first pass.
const (
	patternCheckerboard = "checkerboard"
	patternDiagonal     = "diagonal"
	patternSequential   = "sequential"
)

// patternCells lists the empty cells selected by a pattern, shuffled.
func (a *allocator) patternCells(pattern string, rng *rand.Rand) [][2]int {
	var cells [][2]int
	for r := 0; r < a.rows; r++ {
		for c := 0; c < a.cols; c++ {
			if a.seats[r][c] != nil {
				continue
			}
			switch pattern {
			case patternCheckerboard:
				if (r+c)%2 == 0 {
					cells = append(cells, [2]int{r, c})
				}
			case patternDiagonal:
				if r%2 == c%2 {
					cells = append(cells, [2]int{r, c})
				}
			default:
				cells = append(cells, [2]int{r, c})
			}
		}
	}
	rng.Shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })
	return cells
}

// tryPattern seats as many of the group's unplaced students as the
// pattern's cells allow. Returns the number seated.
func (a *allocator) tryPattern(group []int, pattern string, rng *rand.Rand) int {
	cells := a.patternCells(pattern, rng)
	placed := 0
	for _, idx := range group {
		if a.placed(idx) {
			continue
		}
		course := a.students[idx].CourseCode
		for i, cell := range cells {
			r, c := cell[0], cell[1]
			if a.seats[r][c] == nil && a.validPosition(course, r, c) {
				a.seat(idx, r, c)
				cells = append(cells[:i], cells[i+1:]...)
				placed++
				break
			}
		}
	}
	return placed
}

// tryRandom samples random cells for each unplaced student, up to the
// attempt budget per student.
func (a *allocator) tryRandom(indexes []int, attempts int, rng *rand.Rand) int {
	placed := 0
	for _, idx := range indexes {
		if a.placed(idx) {
			continue
		}
		course := a.students[idx].CourseCode
		for try := 0; try < attempts; try++ {
			r, c := rng.Intn(a.rows), rng.Intn(a.cols)
			if a.seats[r][c] == nil && a.validPosition(course, r, c) {
				a.seat(idx, r, c)
				placed++
				break
			}
		}
	}
	return placed
}

// Allocate seats students into a rows x cols grid so that no two students
// of the same course end up 8-adjacent. Three passes: pattern placement
// per course group, then two rounds of random sampling with growing
// attempt budgets. Students still unseated after the last pass stay
// unplaced; the adjacency guarantee is never traded for coverage.
func Allocate(students []SeatStudent, rows, cols int, rng *rand.Rand) Result {
	if len(students) == 0 {
		return Result{}
	}

	a := newAllocator(students, rows, cols)

	// Group by course, then shuffle group order and each group's members.
	groupsByCourse := make(map[string][]int)
	var courses []string
	for i, s := range students {
		if _, ok := groupsByCourse[s.CourseCode]; !ok {
			courses = append(courses, s.CourseCode)
		}
		groupsByCourse[s.CourseCode] = append(groupsByCourse[s.CourseCode], i)
	}
	rng.Shuffle(len(courses), func(i, j int) { courses[i], courses[j] = courses[j], courses[i] })

	for _, course := range courses {
		group := groupsByCourse[course]
		rng.Shuffle(len(group), func(i, j int) { group[i], group[j] = group[j], group[i] })

		for _, pattern := range []string{patternCheckerboard, patternDiagonal, patternSequential} {
			remaining := 0
			for _, idx := range group {
				if !a.placed(idx) {
					remaining++
				}
			}
			if remaining == 0 {
				break
			}
			if a.tryPattern(group, pattern, rng) > 0 {
				break
			}
		}
	}

	all := make([]int, len(students))
	for i := range all {
		all[i] = i
	}
	a.tryRandom(all, 300, rng)
	a.tryRandom(all, 500, rng)

	var result Result
	for i, s := range students {
		if pos, ok := a.positions[i]; ok {
			result.Placed = append(result.Placed, PlacedSeat{
				Student:    s,
				SeatNumber: SeatNumber(pos[0], pos[1], cols),
			})
		} else {
			result.Unplaced = append(result.Unplaced, s)
		}
	}
	result.PercentagePlaced = float64(len(result.Placed)) / float64(len(students)) * 100
	return result
}

// ValidateManualSeat checks a manual seat assignment: the seat must exist
// in the grid and be free. Adjacency is deliberately not re-validated for
// manual overrides.
func ValidateManualSeat(seatNumber, rows, cols int, occupied map[int]bool) error {
	if seatNumber < 1 || seatNumber > rows*cols {
		return ErrSeatOutOfRange
	}
	if occupied[seatNumber] {
		return ErrSeatOccupied
	}
	return nil
}
