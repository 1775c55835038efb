package catalog

import (
	"context"
	"fmt"

	"ExamTimetabler/internal/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CatalogRepository handles DB operations for catalog entities.
type CatalogRepository struct {
	departmentsCollection *mongo.Collection
	classesCollection     *mongo.Collection
	coursesCollection     *mongo.Collection
	hallsCollection       *mongo.Collection
	studentsCollection    *mongo.Collection
}

// NewCatalogRepository creates a new repository for catalog operations.
func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	config.UniqueMatricIndex(db.Collection("students"))
	return &CatalogRepository{
		departmentsCollection: db.Collection("departments"),
		classesCollection:     db.Collection("classes"),
		coursesCollection:     db.Collection("courses"),
		hallsCollection:       db.Collection("halls"),
		studentsCollection:    db.Collection("students"),
	}
}

// Department operations
func (r *CatalogRepository) CreateDepartment(ctx context.Context, dept *Department) error {
	_, err := r.departmentsCollection.InsertOne(ctx, dept)
	return err
}

func (r *CatalogRepository) FindDepartmentBySlug(ctx context.Context, slug string) (*Department, error) {
	var dept Department
	err := r.departmentsCollection.FindOne(ctx, bson.M{"slug": slug}).Decode(&dept)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &dept, nil
}

func (r *CatalogRepository) GetAllDepartments(ctx context.Context) ([]*Department, error) {
	cursor, err := r.departmentsCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var departments []*Department
	if err := cursor.All(ctx, &departments); err != nil {
		return nil, err
	}
	return departments, nil
}

// Class operations
func (r *CatalogRepository) CreateClass(ctx context.Context, cls *Class) error {
	_, err := r.classesCollection.InsertOne(ctx, cls)
	return err
}

func (r *CatalogRepository) FindClassByID(ctx context.Context, id primitive.ObjectID) (*Class, error) {
	var cls Class
	err := r.classesCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&cls)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &cls, nil
}

func (r *CatalogRepository) GetAllClasses(ctx context.Context) ([]*Class, error) {
	cursor, err := r.classesCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var classes []*Class
	if err := cursor.All(ctx, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

// Course operations
func (r *CatalogRepository) CreateCourse(ctx context.Context, course *Course) error {
	_, err := r.coursesCollection.InsertOne(ctx, course)
	return err
}

func (r *CatalogRepository) AddClassToCourse(ctx context.Context, courseID, classID primitive.ObjectID) error {
	update := bson.M{"$addToSet": bson.M{"class_ids": classID}}
	_, err := r.coursesCollection.UpdateByID(ctx, courseID, update)
	return err
}

func (r *CatalogRepository) GetAllCourses(ctx context.Context) ([]*Course, error) {
	cursor, err := r.coursesCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var courses []*Course
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// Hall operations
func (r *CatalogRepository) CreateHall(ctx context.Context, hall *Hall) error {
	_, err := r.hallsCollection.InsertOne(ctx, hall)
	return err
}

func (r *CatalogRepository) FindHallByID(ctx context.Context, id primitive.ObjectID) (*Hall, error) {
	var hall Hall
	err := r.hallsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&hall)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &hall, nil
}

func (r *CatalogRepository) GetAllHalls(ctx context.Context) ([]Hall, error) {
	cursor, err := r.hallsCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var halls []Hall
	if err := cursor.All(ctx, &halls); err != nil {
		return nil, err
	}
	return halls, nil
}

// Student operations
func (r *CatalogRepository) CreateStudent(ctx context.Context, student *Student) error {
	_, err := r.studentsCollection.InsertOne(ctx, student)
	return err
}

// RosterByClass returns the students of a class ordered by matric number.
func (r *CatalogRepository) RosterByClass(ctx context.Context, classID primitive.ObjectID) ([]*Student, error) {
	opts := options.Find().SetSort(bson.M{"matric_no": 1})
	cursor, err := r.studentsCollection.Find(ctx, bson.M{"class_id": classID}, opts)
	if err != nil {
		return nil, err
	}
	var students []*Student
	if err := cursor.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (r *CatalogRepository) CountStudentsByClass(ctx context.Context, classID primitive.ObjectID) (int64, error) {
	return r.studentsCollection.CountDocuments(ctx, bson.M{"class_id": classID})
}

func (r *CatalogRepository) FindStudentsByDepartments(ctx context.Context, departments []string) ([]*Student, error) {
	depts, err := r.GetAllDepartments(ctx)
	if err != nil {
		return nil, err
	}
	wanted := make(map[primitive.ObjectID]bool)
	for _, d := range depts {
		for _, slug := range departments {
			if d.Slug == slug {
				wanted[d.ID] = true
			}
		}
	}
	classes, err := r.GetAllClasses(ctx)
	if err != nil {
		return nil, err
	}
	var classIDs []primitive.ObjectID
	for _, cls := range classes {
		if len(departments) == 0 || wanted[cls.DepartmentID] {
			classIDs = append(classIDs, cls.ID)
		}
	}
	if len(classIDs) == 0 {
		return nil, nil
	}
	cursor, err := r.studentsCollection.Find(ctx, bson.M{"class_id": bson.M{"$in": classIDs}})
	if err != nil {
		return nil, err
	}
	var students []*Student
	if err := cursor.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// CourseSnapshots loads all courses with their class references resolved.
// A class id that resolves to no stored class is a dangling reference and
// fails the load.
func (r *CatalogRepository) CourseSnapshots(ctx context.Context) ([]CourseSnapshot, error) {
	courses, err := r.GetAllCourses(ctx)
	if err != nil {
		return nil, err
	}
	classes, err := r.GetAllClasses(ctx)
	if err != nil {
		return nil, err
	}
	classByID := make(map[primitive.ObjectID]*Class, len(classes))
	for _, cls := range classes {
		classByID[cls.ID] = cls
	}

	snapshots := make([]CourseSnapshot, 0, len(courses))
	for _, course := range courses {
		snapshot := CourseSnapshot{
			ID:       course.ID,
			Code:     course.Code,
			ExamType: course.ExamType,
		}
		for _, classID := range course.ClassIDs {
			cls, ok := classByID[classID]
			if !ok {
				return nil, fmt.Errorf("%w: course %s references unknown class %s",
					ErrInvalidSnapshot, course.Code, classID.Hex())
			}
			snapshot.Classes = append(snapshot.Classes, *cls)
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, nil
}
