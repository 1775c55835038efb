package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogService handles business logic for catalog entities.
type CatalogService struct {
	repo *CatalogRepository
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo *CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) CreateDepartment(ctx context.Context, dept *Department) error {
	existing, err := s.repo.FindDepartmentBySlug(ctx, dept.Slug)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("department with slug %s already exists", dept.Slug)
	}
	return s.repo.CreateDepartment(ctx, dept)
}

func (s *CatalogService) CreateClass(ctx context.Context, cls *Class) error {
	dept, err := s.repo.GetAllDepartments(ctx)
	if err != nil {
		return err
	}
	for _, d := range dept {
		if d.ID == cls.DepartmentID {
			return s.repo.CreateClass(ctx, cls)
		}
	}
	return errors.New("department not found")
}

func (s *CatalogService) CreateCourse(ctx context.Context, course *Course) error {
	if !ValidExamType(course.ExamType) {
		return fmt.Errorf("invalid exam type %q", course.ExamType)
	}
	return s.repo.CreateCourse(ctx, course)
}

// AddClassToCourse registers an existing class as an offering of a course.
func (s *CatalogService) AddClassToCourse(ctx context.Context, courseID, classID primitive.ObjectID) error {
	cls, err := s.repo.FindClassByID(ctx, classID)
	if err != nil {
		return err
	}
	if cls == nil {
		return errors.New("class not found")
	}
	return s.repo.AddClassToCourse(ctx, courseID, classID)
}

func (s *CatalogService) CreateHall(ctx context.Context, hall *Hall) error {
	if hall.Rows*hall.Cols != hall.Capacity {
		return fmt.Errorf("hall grid %dx%d does not match capacity %d", hall.Rows, hall.Cols, hall.Capacity)
	}
	return s.repo.CreateHall(ctx, hall)
}

// EnrollStudent creates a student, assigning the next matric number in the
// class unless one was supplied.
func (s *CatalogService) EnrollStudent(ctx context.Context, student *Student) error {
	cls, err := s.repo.FindClassByID(ctx, student.ClassID)
	if err != nil {
		return err
	}
	if cls == nil {
		return errors.New("class not found")
	}
	if student.MatricNo == "" {
		departments, err := s.repo.GetAllDepartments(ctx)
		if err != nil {
			return err
		}
		var slug string
		for _, d := range departments {
			if d.ID == cls.DepartmentID {
				slug = d.Slug
			}
		}
		if slug == "" {
			return errors.New("department not found for class")
		}
		count, err := s.repo.CountStudentsByClass(ctx, student.ClassID)
		if err != nil {
			return err
		}
		student.MatricNo = MatricNumber(slug, cls.Name, int(count)+1)
	}
	return s.repo.CreateStudent(ctx, student)
}

func (s *CatalogService) GetAllDepartments(ctx context.Context) ([]*Department, error) {
	return s.repo.GetAllDepartments(ctx)
}

func (s *CatalogService) GetAllClasses(ctx context.Context) ([]*Class, error) {
	return s.repo.GetAllClasses(ctx)
}

func (s *CatalogService) GetAllCourses(ctx context.Context) ([]*Course, error) {
	return s.repo.GetAllCourses(ctx)
}

func (s *CatalogService) GetAllHalls(ctx context.Context) ([]Hall, error) {
	return s.repo.GetAllHalls(ctx)
}

func (s *CatalogService) GetClassRoster(ctx context.Context, classID string) ([]*Student, error) {
	id, err := ParseID(classID)
	if err != nil {
		return nil, err
	}
	return s.repo.RosterByClass(ctx, id)
}
