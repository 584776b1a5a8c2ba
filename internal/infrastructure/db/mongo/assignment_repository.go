package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/luct/reporting-system/internal/core/domain"
)

const assignmentsCollection = "course_assignments"

// AssignmentRepository persists course-to-lecturer assignments.
type AssignmentRepository struct {
	col *mongo.Collection
}

func NewAssignmentRepository(db *mongo.Database) *AssignmentRepository {
	return &AssignmentRepository{col: db.Collection(assignmentsCollection)}
}

type mongoAssignment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	CourseID   string             `bson:"course_id"`
	LecturerID string             `bson:"lecturer_id"`
	AssignedBy string             `bson:"assigned_by"`
	AssignedAt int64              `bson:"assigned_at"`
}

func (r *AssignmentRepository) Create(ctx context.Context, a *domain.CourseAssignment) (*domain.CourseAssignment, error) {
	res, err := r.col.InsertOne(ctx, mongoAssignment{
		CourseID:   a.CourseID,
		LecturerID: a.LecturerID,
		AssignedBy: a.AssignedBy,
		AssignedAt: a.AssignedAt.Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("insert assignment: %w", err)
	}

	created := *a
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *AssignmentRepository) List(ctx context.Context, lecturerID string) ([]*domain.CourseAssignment, error) {
	filter := bson.M{}
	if lecturerID != "" {
		filter["lecturer_id"] = lecturerID
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "assigned_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer cur.Close(ctx)

	assignments := []*domain.CourseAssignment{}
	for cur.Next(ctx) {
		var ma mongoAssignment
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode assignment: %w", err)
		}
		assignments = append(assignments, &domain.CourseAssignment{
			ID:         ma.ID.Hex(),
			CourseID:   ma.CourseID,
			LecturerID: ma.LecturerID,
			AssignedBy: ma.AssignedBy,
			AssignedAt: unixToTime(ma.AssignedAt),
		})
	}
	return assignments, cur.Err()
}

// DeleteOwned removes the assignment only when assignedBy created it. Missing
// id and foreign creator both surface ErrAssignmentNotFound.
func (r *AssignmentRepository) DeleteOwned(ctx context.Context, id, assignedBy string) error {
	oid, err := parseID(id, domain.ErrAssignmentNotFound)
	if err != nil {
		return err
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid, "assigned_by": assignedBy})
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAssignmentNotFound
	}
	return nil
}

// EnsureIndexes creates lookup indexes on the assignments collection.
func (r *AssignmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "lecturer_id", Value: 1}}},
		{Keys: bson.D{{Key: "assigned_by", Value: 1}}},
	})
	return err
}
