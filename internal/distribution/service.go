package distribution

import (
	"context"
	"log"
	"math/rand"
	"time"

	"ExamTimetabler/internal/catalog"
	"ExamTimetabler/internal/timetable"
)

// DistributionService handles business logic for hall distribution.
type DistributionService struct {
	repo      *DistributionRepository
	timetable *timetable.TimetableRepository
	catalog   *catalog.CatalogRepository
}

// NewDistributionService creates a new distribution service.
func NewDistributionService(repo *DistributionRepository, timetableRepo *timetable.TimetableRepository, catalogRepo *catalog.CatalogRepository) *DistributionService {
	return &DistributionService{repo: repo, timetable: timetableRepo, catalog: catalogRepo}
}

// GenerateDistribution packs the classes scheduled for one sitting into
// halls and persists the result. CBE and NAN exams never enter the halls
// and are excluded up front.
func (s *DistributionService) GenerateDistribution(ctx context.Context, date string, period timetable.Period) (*DistributionStats, error) {
	exams, err := s.timetable.FindByDateAndPeriod(ctx, date, period)
	if err != nil {
		return nil, err
	}

	var units []Unit
	for _, exam := range exams {
		if exam.ExamType == catalog.ExamTypeCBE || exam.ExamType == catalog.ExamTypeNAN {
			continue
		}
		units = append(units, Unit{
			ScheduleID: exam.ID,
			ClassID:    exam.ClassID,
			ClassName:  exam.ClassName,
			CourseCode: exam.CourseCode,
			Size:       exam.ClassSize,
		})
	}

	halls, err := s.catalog.GetAllHalls(ctx)
	if err != nil {
		return nil, err
	}
	if err := catalog.ValidateHalls(halls); err != nil {
		return nil, err
	}
	if TotalSeatsNeeded(units) > TotalCapacity(halls) {
		return nil, ErrCapacityExceeded
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	results, unplaced := Distribute(units, halls, rng)
	if len(units) > 0 && len(results) == 0 {
		return nil, ErrNoSuitableHall
	}

	for _, unit := range unplaced {
		log.Printf("No suitable hall for %s %s (%d students), dropped from %s %s",
			unit.CourseCode, unit.ClassName, unit.Size, date, period)
	}

	distributions := make([]*Distribution, 0, len(results))
	studentsDistributed := 0
	for _, result := range results {
		d := &Distribution{
			HallID:   result.Hall.ID,
			HallName: result.Hall.Name,
			Date:     date,
			Period:   period,
		}
		for _, p := range result.Placements {
			d.Items = append(d.Items, DistributionItem{
				ScheduleID:   p.Unit.ScheduleID,
				ClassID:      p.Unit.ClassID,
				ClassName:    p.Unit.ClassName,
				CourseCode:   p.Unit.CourseCode,
				StudentCount: p.StudentCount,
			})
			studentsDistributed += p.StudentCount
			if p.StudentCount < p.Unit.Size {
				log.Printf("Class %s (%s) truncated in %s: %d of %d students seated",
					p.Unit.ClassName, p.Unit.CourseCode, result.Hall.Name, p.StudentCount, p.Unit.Size)
			}
		}
		distributions = append(distributions, d)
	}

	if err := s.repo.BulkCreate(ctx, distributions); err != nil {
		return nil, err
	}

	stats := &DistributionStats{
		HallsUsed:           len(distributions),
		StudentsDistributed: studentsDistributed,
		TotalCapacity:       TotalCapacity(halls),
		UnplacedUnits:       len(unplaced),
	}
	if stats.TotalCapacity > 0 {
		stats.UtilizationPct = float64(studentsDistributed) / float64(stats.TotalCapacity) * 100
	}
	log.Printf("Distribution for %s %s: %d halls used, %d students, %.1f%% utilization",
		date, period, stats.HallsUsed, stats.StudentsDistributed, stats.UtilizationPct)
	return stats, nil
}

// GetDistributions returns the stored distributions of one sitting.
func (s *DistributionService) GetDistributions(ctx context.Context, date string, period timetable.Period) ([]*Distribution, error) {
	return s.repo.FindByDateAndPeriod(ctx, date, period)
}

// GetStatistics recomputes summary statistics from the stored
// distributions of one sitting.
func (s *DistributionService) GetStatistics(ctx context.Context, date string, period timetable.Period) (*DistributionStats, error) {
	distributions, err := s.repo.FindByDateAndPeriod(ctx, date, period)
	if err != nil {
		return nil, err
	}
	halls, err := s.catalog.GetAllHalls(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DistributionStats{HallsUsed: len(distributions), TotalCapacity: TotalCapacity(halls)}
	for _, d := range distributions {
		for _, item := range d.Items {
			stats.StudentsDistributed += item.StudentCount
		}
	}
	if stats.TotalCapacity > 0 {
		stats.UtilizationPct = float64(stats.StudentsDistributed) / float64(stats.TotalCapacity) * 100
	}
	return stats, nil
}

// ClearDistribution removes the distributions of one sitting.
func (s *DistributionService) ClearDistribution(ctx context.Context, date string, period timetable.Period) error {
	return s.repo.Clear(ctx, date, period)
}
