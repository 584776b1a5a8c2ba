package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/luct/reporting-system/internal/core/domain"
)

const (
	usersCollection    = "users"
	studentsCollection = "students"
)

// UserRepository persists user accounts and the student profile rows.
type UserRepository struct {
	users    *mongo.Collection
	students *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		users:    db.Collection(usersCollection),
		students: db.Collection(studentsCollection),
	}
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	FacultyID    string             `bson:"faculty_id,omitempty"`
	CreatedAt    int64              `bson:"created_at"`
}

type mongoStudentProfile struct {
	UserID    string `bson:"user_id"`
	ClassID   string `bson:"class_id"`
	CreatedAt int64  `bson:"created_at"`
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := mongoUser{
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		FacultyID:    user.FacultyID,
		CreatedAt:    user.CreatedAt.Unix(),
	}

	res, err := r.users.InsertOne(ctx, doc)
	if err != nil {
		// The unique index on email is the authoritative duplicate guard.
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var mu mongoUser
	if err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := parseID(id, domain.ErrUserNotFound)
	if err != nil {
		return nil, err
	}

	var mu mongoUser
	if err := r.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}

	result := make(map[string]*domain.User, len(oids))
	if len(oids) == 0 {
		return result, nil
	}

	cur, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var mu mongoUser
		if err := cur.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		u := mu.toDomain()
		result[u.ID] = u
	}
	return result, cur.Err()
}

func (r *UserRepository) ListLecturers(ctx context.Context, facultyID string) ([]*domain.User, error) {
	filter := bson.M{"role": string(domain.RoleLecturer)}
	if facultyID != "" {
		filter["faculty_id"] = facultyID
	}

	cur, err := r.users.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list lecturers: %w", err)
	}
	defer cur.Close(ctx)

	var lecturers []*domain.User
	for cur.Next(ctx) {
		var mu mongoUser
		if err := cur.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode lecturer: %w", err)
		}
		lecturers = append(lecturers, mu.toDomain())
	}
	return lecturers, cur.Err()
}

func (r *UserRepository) CreateStudentProfile(ctx context.Context, userID, classID string) error {
	_, err := r.students.InsertOne(ctx, mongoStudentProfile{
		UserID:    userID,
		ClassID:   classID,
		CreatedAt: time.Now().UTC().Unix(),
	})
	if err != nil {
		return fmt.Errorf("insert student profile: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique email index plus lookup indexes. The email
// index is load-bearing: it closes the concurrent duplicate-registration race
// that the application-level existence check cannot.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}, {Key: "faculty_id", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = r.students.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	return err
}

func (mu mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:           mu.ID.Hex(),
		Name:         mu.Name,
		Email:        mu.Email,
		PasswordHash: mu.PasswordHash,
		Role:         domain.Role(mu.Role),
		FacultyID:    mu.FacultyID,
		CreatedAt:    unixToTime(mu.CreatedAt),
	}
}
