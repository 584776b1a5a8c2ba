package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/luct/reporting-system/internal/core/domain"
)

const (
	facultiesCollection = "faculties"
	classesCollection   = "classes"
	coursesCollection   = "courses"
)

// DirectoryRepository reads the faculty/class/course reference collections.
type DirectoryRepository struct {
	faculties *mongo.Collection
	classes   *mongo.Collection
	courses   *mongo.Collection
}

func NewDirectoryRepository(db *mongo.Database) *DirectoryRepository {
	return &DirectoryRepository{
		faculties: db.Collection(facultiesCollection),
		classes:   db.Collection(classesCollection),
		courses:   db.Collection(coursesCollection),
	}
}

type mongoFaculty struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"faculty_name"`
}

type mongoClass struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"class_name"`
	Year      int                `bson:"year"`
	FacultyID string             `bson:"faculty_id"`
}

type mongoCourse struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"course_name"`
	Code      string             `bson:"course_code"`
	FacultyID string             `bson:"faculty_id"`
}

func (r *DirectoryRepository) ListFaculties(ctx context.Context) ([]domain.Faculty, error) {
	cur, err := r.faculties.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "faculty_name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list faculties: %w", err)
	}
	defer cur.Close(ctx)

	faculties := []domain.Faculty{}
	for cur.Next(ctx) {
		var mf mongoFaculty
		if err := cur.Decode(&mf); err != nil {
			return nil, fmt.Errorf("decode faculty: %w", err)
		}
		faculties = append(faculties, domain.Faculty{ID: mf.ID.Hex(), Name: mf.Name})
	}
	return faculties, cur.Err()
}

func (r *DirectoryRepository) FindFaculty(ctx context.Context, id string) (*domain.Faculty, error) {
	oid, err := parseID(id, domain.ErrFacultyNotFound)
	if err != nil {
		return nil, err
	}

	var mf mongoFaculty
	if err := r.faculties.FindOne(ctx, bson.M{"_id": oid}).Decode(&mf); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFacultyNotFound
		}
		return nil, fmt.Errorf("find faculty: %w", err)
	}
	return &domain.Faculty{ID: mf.ID.Hex(), Name: mf.Name}, nil
}

func (r *DirectoryRepository) ListClasses(ctx context.Context) ([]domain.Class, error) {
	cur, err := r.classes.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "class_name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	defer cur.Close(ctx)

	classes := []domain.Class{}
	for cur.Next(ctx) {
		var mc mongoClass
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode class: %w", err)
		}
		classes = append(classes, domain.Class{ID: mc.ID.Hex(), Name: mc.Name, Year: mc.Year, FacultyID: mc.FacultyID})
	}
	return classes, cur.Err()
}

func (r *DirectoryRepository) FindClass(ctx context.Context, id string) (*domain.Class, error) {
	oid, err := parseID(id, domain.ErrClassNotFound)
	if err != nil {
		return nil, err
	}

	var mc mongoClass
	if err := r.classes.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClassNotFound
		}
		return nil, fmt.Errorf("find class: %w", err)
	}
	return &domain.Class{ID: mc.ID.Hex(), Name: mc.Name, Year: mc.Year, FacultyID: mc.FacultyID}, nil
}

func (r *DirectoryRepository) ListCourses(ctx context.Context, facultyID string) ([]domain.Course, error) {
	filter := bson.M{}
	if facultyID != "" {
		filter["faculty_id"] = facultyID
	}

	cur, err := r.courses.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "course_code", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer cur.Close(ctx)

	courses := []domain.Course{}
	for cur.Next(ctx) {
		var mc mongoCourse
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode course: %w", err)
		}
		courses = append(courses, domain.Course{ID: mc.ID.Hex(), Name: mc.Name, Code: mc.Code, FacultyID: mc.FacultyID})
	}
	return courses, cur.Err()
}

func (r *DirectoryRepository) FindCourse(ctx context.Context, id string) (*domain.Course, error) {
	oid, err := parseID(id, domain.ErrCourseNotFound)
	if err != nil {
		return nil, err
	}

	var mc mongoCourse
	if err := r.courses.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("find course: %w", err)
	}
	return &domain.Course{ID: mc.ID.Hex(), Name: mc.Name, Code: mc.Code, FacultyID: mc.FacultyID}, nil
}

func (r *DirectoryRepository) FindCourses(ctx context.Context, ids []string) (map[string]*domain.Course, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}

	result := make(map[string]*domain.Course, len(oids))
	if len(oids) == 0 {
		return result, nil
	}

	cur, err := r.courses.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find courses: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var mc mongoCourse
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode course: %w", err)
		}
		result[mc.ID.Hex()] = &domain.Course{ID: mc.ID.Hex(), Name: mc.Name, Code: mc.Code, FacultyID: mc.FacultyID}
	}
	return result, cur.Err()
}
