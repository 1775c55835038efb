package catalog

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogHandler handles HTTP requests for catalog operations.
type CatalogHandler struct {
	service *CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// CreateDepartmentRequest represents the request to create a department.
type CreateDepartmentRequest struct {
	Name string `json:"name"` // Department name
	Slug string `json:"slug"` // Short unique code, used in matric numbers
}

// CreateClassRequest represents the request to create a class.
type CreateClassRequest struct {
	Name         string `json:"name"`          // Class name, e.g. ND2
	Size         int    `json:"size"`          // Number of students
	DepartmentID string `json:"department_id"` // Owning department
}

// CreateCourseRequest represents the request to create a course.
type CreateCourseRequest struct {
	Code     string   `json:"code"`      // Course code
	Title    string   `json:"title"`     // Course title
	ExamType string   `json:"exam_type"` // CBE, PBE or NAN
	ClassIDs []string `json:"class_ids"` // Classes offering the course
}

// CreateHallRequest represents the request to create a hall.
type CreateHallRequest struct {
	Name        string `json:"name"`         // Hall name
	Capacity    int    `json:"capacity"`     // Total seats (rows * cols)
	MaxStudents int    `json:"max_students"` // Per-course cap in the hall
	MinCourses  int    `json:"min_courses"`  // Max distinct courses allowed
	Rows        int    `json:"rows"`         // Grid rows
	Cols        int    `json:"cols"`         // Grid columns
}

// EnrollStudentRequest represents the request to enroll a student.
type EnrollStudentRequest struct {
	Name     string `json:"name"`      // Student name
	Email    string `json:"email"`     // Student email
	MatricNo string `json:"matric_no"` // Optional, generated when empty
	ClassID  string `json:"class_id"`  // Class the student belongs to
}

// CreateDepartment allows admins to create a new department.
func (h *CatalogHandler) CreateDepartment(c echo.Context) error {
	var req CreateDepartmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if req.Name == "" || req.Slug == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Name and slug are required"})
	}

	dept := &Department{
		ID:   primitive.NewObjectID(),
		Name: req.Name,
		Slug: req.Slug,
	}
	if err := h.service.CreateDepartment(context.Background(), dept); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, dept)
}

// ListDepartments returns all departments.
func (h *CatalogHandler) ListDepartments(c echo.Context) error {
	departments, err := h.service.GetAllDepartments(context.Background())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch departments"})
	}
	return c.JSON(http.StatusOK, departments)
}

// CreateClass allows admins to create a new class.
func (h *CatalogHandler) CreateClass(c echo.Context) error {
	var req CreateClassRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	deptID, err := primitive.ObjectIDFromHex(req.DepartmentID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid department ID"})
	}

	cls := &Class{
		ID:           primitive.NewObjectID(),
		Name:         req.Name,
		Size:         req.Size,
		DepartmentID: deptID,
	}
	if err := h.service.CreateClass(context.Background(), cls); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, cls)
}

// ListClasses returns all classes.
func (h *CatalogHandler) ListClasses(c echo.Context) error {
	classes, err := h.service.GetAllClasses(context.Background())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch classes"})
	}
	return c.JSON(http.StatusOK, classes)
}

// CreateCourse allows admins to create a new course.
func (h *CatalogHandler) CreateCourse(c echo.Context) error {
	var req CreateCourseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	classIDs := make([]primitive.ObjectID, len(req.ClassIDs))
	for i, idStr := range req.ClassIDs {
		id, err := primitive.ObjectIDFromHex(idStr)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid class ID"})
		}
		classIDs[i] = id
	}

	course := &Course{
		ID:       primitive.NewObjectID(),
		Code:     req.Code,
		Title:    req.Title,
		ExamType: req.ExamType,
		ClassIDs: classIDs,
	}
	if err := h.service.CreateCourse(context.Background(), course); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, course)
}

// AddClassToCourse registers a class as an offering of an existing course.
func (h *CatalogHandler) AddClassToCourse(c echo.Context) error {
	courseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid course ID"})
	}
	classID, err := primitive.ObjectIDFromHex(c.Param("class_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid class ID"})
	}

	if err := h.service.AddClassToCourse(context.Background(), courseID, classID); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Class added to course"})
}

// ListCourses returns all courses.
func (h *CatalogHandler) ListCourses(c echo.Context) error {
	courses, err := h.service.GetAllCourses(context.Background())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch courses"})
	}
	return c.JSON(http.StatusOK, courses)
}

// CreateHall allows admins to create a new hall.
func (h *CatalogHandler) CreateHall(c echo.Context) error {
	var req CreateHallRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	hall := &Hall{
		ID:          primitive.NewObjectID(),
		Name:        req.Name,
		Capacity:    req.Capacity,
		MaxStudents: req.MaxStudents,
		MinCourses:  req.MinCourses,
		Rows:        req.Rows,
		Cols:        req.Cols,
	}
	if err := h.service.CreateHall(context.Background(), hall); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, hall)
}

// ListHalls returns all halls.
func (h *CatalogHandler) ListHalls(c echo.Context) error {
	halls, err := h.service.GetAllHalls(context.Background())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch halls"})
	}
	return c.JSON(http.StatusOK, halls)
}

// EnrollStudent allows staff to enroll a new student.
func (h *CatalogHandler) EnrollStudent(c echo.Context) error {
	var req EnrollStudentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	classID, err := primitive.ObjectIDFromHex(req.ClassID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid class ID"})
	}

	student := &Student{
		ID:       primitive.NewObjectID(),
		Name:     req.Name,
		Email:    req.Email,
		MatricNo: req.MatricNo,
		ClassID:  classID,
	}
	if err := h.service.EnrollStudent(context.Background(), student); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, student)
}

// GetClassRoster returns the students of a class ordered by matric number.
func (h *CatalogHandler) GetClassRoster(c echo.Context) error {
	classID := c.Param("id")
	if classID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Class ID is required"})
	}

	roster, err := h.service.GetClassRoster(context.Background(), classID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, roster)
}
