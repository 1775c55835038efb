package timetable

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sort"
	"time"

	"ExamTimetabler/internal/catalog"
)

// TimetableService handles business logic for timetable generation.
type TimetableService struct {
	repo    *TimetableRepository
	catalog *catalog.CatalogRepository
}

// NewTimetableService creates a new timetable service.
func NewTimetableService(repo *TimetableRepository, catalogRepo *catalog.CatalogRepository) *TimetableService {
	return &TimetableService{repo: repo, catalog: catalogRepo}
}

// ExamDates builds the ordered list of exam dates between start and end
// inclusive, skipping Sundays.
func ExamDates(start, end time.Time) []string {
	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Sunday {
			dates = append(dates, d.Format(DateLayout))
		}
	}
	return dates
}

// GenerateTimetable produces and persists a fresh timetable for the given
// date range. Returns the number of scheduled exam rows created.
func (s *TimetableService) GenerateTimetable(ctx context.Context, startDate, endDate string) (int, error) {
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return 0, errors.New("invalid start date")
	}
	end, err := time.Parse(DateLayout, endDate)
	if err != nil {
		return 0, errors.New("invalid end date")
	}
	if start.After(end) {
		return 0, errors.New("end date must be greater than start date")
	}
	dates := ExamDates(start, end)
	if len(dates) == 0 {
		return 0, errors.New("date range contains no exam days")
	}

	halls, err := s.catalog.GetAllHalls(ctx)
	if err != nil {
		return 0, err
	}
	courses, err := s.catalog.CourseSnapshots(ctx)
	if err != nil {
		return 0, err
	}
	if err := catalog.ValidateHalls(halls); err != nil {
		return 0, err
	}
	if err := catalog.ValidateCourses(courses); err != nil {
		return 0, err
	}

	am, pm := SplitCourses(courses)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	entries := Generate(dates, am, pm, halls, rng)
	rows := Expand(entries)

	if err := s.repo.BulkCreate(ctx, rows); err != nil {
		return 0, err
	}
	log.Printf("Timetable generated: %d courses scheduled into %d rows over %d dates",
		len(entries), len(rows), len(dates))
	return len(rows), nil
}

// GetTimetable returns the scheduled exams of one sitting.
func (s *TimetableService) GetTimetable(ctx context.Context, date string, period Period) ([]*ScheduledExam, error) {
	return s.repo.FindByDateAndPeriod(ctx, date, period)
}

// GetExamDates lists the distinct dates a timetable exists for.
func (s *TimetableService) GetExamDates(ctx context.Context) ([]string, error) {
	dates, err := s.repo.DistinctDates(ctx)
	if err != nil {
		return nil, err
	}
	sort.Strings(dates)
	return dates, nil
}

// ClearTimetable deletes the generated timetable.
func (s *TimetableService) ClearTimetable(ctx context.Context) error {
	return s.repo.Clear(ctx)
}
