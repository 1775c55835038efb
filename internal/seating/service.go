package seating

import (
	"context"
	"errors"
	"log"
	"math/rand"

	"ExamTimetabler/internal/catalog"
	"ExamTimetabler/internal/distribution"
	"ExamTimetabler/internal/timetable"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// allocationSeed fixes the planner rng so a regeneration over identical
// inputs reproduces the same arrangement.
const allocationSeed = 0

// SeatingService handles business logic for seat allocation.
type SeatingService struct {
	repo         *SeatingRepository
	distribution *distribution.DistributionRepository
	catalog      *catalog.CatalogRepository
}

// NewSeatingService creates a new seating service.
func NewSeatingService(repo *SeatingRepository, distributionRepo *distribution.DistributionRepository, catalogRepo *catalog.CatalogRepository) *SeatingService {
	return &SeatingService{repo: repo, distribution: distributionRepo, catalog: catalogRepo}
}

// GenerateSeating allocates seats for every student assigned to one hall
// sitting and persists the records, placed and unplaced alike.
func (s *SeatingService) GenerateSeating(ctx context.Context, date string, period timetable.Period, hallID primitive.ObjectID) (*AllocationSummary, error) {
	hall, err := s.catalog.FindHallByID(ctx, hallID)
	if err != nil {
		return nil, err
	}
	if hall == nil {
		return nil, errors.New("hall not found")
	}

	dist, err := s.distribution.FindByHall(ctx, date, period, hallID)
	if err != nil {
		return nil, err
	}
	if dist == nil {
		return nil, errors.New("no distribution for this hall sitting")
	}

	var students []SeatStudent
	for _, item := range dist.Items {
		roster, err := s.catalog.RosterByClass(ctx, item.ClassID)
		if err != nil {
			return nil, err
		}
		count := item.StudentCount
		if count > len(roster) {
			count = len(roster)
		}
		for _, student := range roster[:count] {
			students = append(students, SeatStudent{
				StudentID:  student.ID,
				MatricNo:   student.MatricNo,
				CourseCode: item.CourseCode,
				ClassID:    item.ClassID,
			})
		}
	}

	if len(students) > hall.Rows*hall.Cols {
		return nil, ErrTooManyStudents
	}

	rng := rand.New(rand.NewSource(allocationSeed))
	result := Allocate(students, hall.Rows, hall.Cols, rng)

	records := make([]*SeatRecord, 0, len(students))
	for _, placed := range result.Placed {
		records = append(records, &SeatRecord{
			Date:       date,
			Period:     period,
			HallID:     hallID,
			StudentID:  placed.Student.StudentID,
			MatricNo:   placed.Student.MatricNo,
			CourseCode: placed.Student.CourseCode,
			ClassID:    placed.Student.ClassID,
			SeatNumber: placed.SeatNumber,
		})
	}
	for _, unplaced := range result.Unplaced {
		records = append(records, &SeatRecord{
			Date:       date,
			Period:     period,
			HallID:     hallID,
			StudentID:  unplaced.StudentID,
			MatricNo:   unplaced.MatricNo,
			CourseCode: unplaced.CourseCode,
			ClassID:    unplaced.ClassID,
		})
	}
	// Regeneration replaces any previous arrangement for this sitting.
	if err := s.repo.Clear(ctx, date, period, hallID); err != nil {
		return nil, err
	}
	if err := s.repo.BulkCreate(ctx, records); err != nil {
		return nil, err
	}

	summary := &AllocationSummary{
		TotalStudents:    len(students),
		PlacedStudents:   len(result.Placed),
		UnplacedStudents: len(result.Unplaced),
		PercentagePlaced: result.PercentagePlaced,
	}
	log.Printf("Seat allocation for hall %s on %s %s: %d/%d placed (%.2f%%)",
		hall.Name, date, period, summary.PlacedStudents, summary.TotalStudents, summary.PercentagePlaced)
	return summary, nil
}

// GetArrangement returns the stored seat records of one hall sitting.
func (s *SeatingService) GetArrangement(ctx context.Context, date string, period timetable.Period, hallID primitive.ObjectID) ([]*SeatRecord, error) {
	return s.repo.FindByHall(ctx, date, period, hallID)
}

// ManualAssign seats an unplaced student at an explicit seat number. The
// seat must exist and be free; adjacency is not re-checked for manual
// overrides.
func (s *SeatingService) ManualAssign(ctx context.Context, date string, period timetable.Period, hallID, studentID primitive.ObjectID, seatNumber int) error {
	hall, err := s.catalog.FindHallByID(ctx, hallID)
	if err != nil {
		return err
	}
	if hall == nil {
		return errors.New("hall not found")
	}

	records, err := s.repo.FindByHall(ctx, date, period, hallID)
	if err != nil {
		return err
	}
	occupied := make(map[int]bool)
	var target *SeatRecord
	for _, record := range records {
		if record.SeatNumber > 0 {
			occupied[record.SeatNumber] = true
		}
		if record.StudentID == studentID {
			target = record
		}
	}
	if target == nil {
		return errors.New("student has no seat record for this sitting")
	}

	if err := ValidateManualSeat(seatNumber, hall.Rows, hall.Cols, occupied); err != nil {
		return err
	}
	return s.repo.SetSeatNumber(ctx, target.ID, seatNumber)
}
