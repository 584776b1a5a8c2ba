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

const ratingsCollection = "lecturer_ratings"

// RatingRepository persists student ratings of lecturers.
type RatingRepository struct {
	col *mongo.Collection
}

func NewRatingRepository(db *mongo.Database) *RatingRepository {
	return &RatingRepository{col: db.Collection(ratingsCollection)}
}

type mongoRating struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	LecturerID string             `bson:"lecturer_id"`
	StudentID  string             `bson:"student_id"`
	Rating     int                `bson:"rating"`
	Comment    string             `bson:"comment,omitempty"`
	CreatedAt  int64              `bson:"created_at"`
}

func (r *RatingRepository) Create(ctx context.Context, rating *domain.Rating) (*domain.Rating, error) {
	res, err := r.col.InsertOne(ctx, mongoRating{
		LecturerID: rating.LecturerID,
		StudentID:  rating.StudentID,
		Rating:     rating.Rating,
		Comment:    rating.Comment,
		CreatedAt:  rating.CreatedAt.Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("insert rating: %w", err)
	}

	created := *rating
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *RatingRepository) List(ctx context.Context, studentID string) ([]*domain.Rating, error) {
	filter := bson.M{}
	if studentID != "" {
		filter["student_id"] = studentID
	}
	return r.find(ctx, filter)
}

func (r *RatingRepository) ListByLecturer(ctx context.Context, lecturerID string) ([]*domain.Rating, error) {
	return r.find(ctx, bson.M{"lecturer_id": lecturerID})
}

// DeleteOwned removes the rating only when studentID owns it. Missing id and
// foreign owner both surface ErrRatingNotFound.
func (r *RatingRepository) DeleteOwned(ctx context.Context, id, studentID string) error {
	oid, err := parseID(id, domain.ErrRatingNotFound)
	if err != nil {
		return err
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid, "student_id": studentID})
	if err != nil {
		return fmt.Errorf("delete rating: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRatingNotFound
	}
	return nil
}

// AggregateByLecturer groups all ratings by lecturer in the store, returning
// count and mean per lecturer id.
func (r *RatingRepository) AggregateByLecturer(ctx context.Context) (map[string]domain.RatingAggregate, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$lecturer_id"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "mean", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate ratings: %w", err)
	}
	defer cur.Close(ctx)

	result := make(map[string]domain.RatingAggregate)
	for cur.Next(ctx) {
		var row struct {
			LecturerID string  `bson:"_id"`
			Count      int64   `bson:"count"`
			Mean       float64 `bson:"mean"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode aggregate: %w", err)
		}
		result[row.LecturerID] = domain.RatingAggregate{Count: row.Count, Mean: row.Mean}
	}
	return result, cur.Err()
}

// EnsureIndexes creates lookup indexes on the ratings collection.
func (r *RatingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "lecturer_id", Value: 1}}},
		{Keys: bson.D{{Key: "student_id", Value: 1}}},
	})
	return err
}

func (r *RatingRepository) find(ctx context.Context, filter bson.M) ([]*domain.Rating, error) {
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	defer cur.Close(ctx)

	ratings := []*domain.Rating{}
	for cur.Next(ctx) {
		var mr mongoRating
		if err := cur.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode rating: %w", err)
		}
		ratings = append(ratings, &domain.Rating{
			ID:         mr.ID.Hex(),
			LecturerID: mr.LecturerID,
			StudentID:  mr.StudentID,
			Rating:     mr.Rating,
			Comment:    mr.Comment,
			CreatedAt:  unixToTime(mr.CreatedAt),
		})
	}
	return ratings, cur.Err()
}
