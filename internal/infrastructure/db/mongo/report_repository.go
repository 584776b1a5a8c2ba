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

const reportsCollection = "reports"

// ReportRepository persists lecture reports. Owner-scoped mutations put the
// lecturer id in the match filter, so ownership verification and the write
// are a single store operation.
type ReportRepository struct {
	col *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{col: db.Collection(reportsCollection)}
}

type mongoReport struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	LecturerID       string             `bson:"lecturer_id"`
	LecturerName     string             `bson:"lecturer_name"`
	ClassID          string             `bson:"class_id"`
	ClassName        string             `bson:"class_name"`
	CourseID         string             `bson:"course_id"`
	CourseName       string             `bson:"course_name"`
	CourseCode       string             `bson:"course_code"`
	WeekOfReporting  string             `bson:"week_of_reporting"`
	DateOfLecture    string             `bson:"date_of_lecture"`
	StudentsPresent  int                `bson:"students_present"`
	TotalStudents    int                `bson:"total_students"`
	Venue            string             `bson:"venue"`
	LectureTime      string             `bson:"lecture_time"`
	Topic            string             `bson:"topic"`
	LearningOutcomes string             `bson:"learning_outcomes"`
	Recommendations  string             `bson:"recommendations"`
	PRLFeedback      string             `bson:"prl_feedback,omitempty"`
	CreatedAt        int64              `bson:"created_at"`
}

func (r *ReportRepository) Create(ctx context.Context, report *domain.Report) (*domain.Report, error) {
	res, err := r.col.InsertOne(ctx, fromDomainReport(report))
	if err != nil {
		return nil, fmt.Errorf("insert report: %w", err)
	}

	created := *report
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ReportRepository) List(ctx context.Context, lecturerID string) ([]*domain.Report, error) {
	filter := bson.M{}
	if lecturerID != "" {
		filter["lecturer_id"] = lecturerID
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer cur.Close(ctx)

	reports := []*domain.Report{}
	for cur.Next(ctx) {
		var mr mongoReport
		if err := cur.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode report: %w", err)
		}
		reports = append(reports, mr.toDomain())
	}
	return reports, cur.Err()
}

func (r *ReportRepository) FindByID(ctx context.Context, id string) (*domain.Report, error) {
	oid, err := parseID(id, domain.ErrReportNotFound)
	if err != nil {
		return nil, err
	}

	var mr mongoReport
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("find report: %w", err)
	}
	return mr.toDomain(), nil
}

// UpdateOwned applies the patch to the report only when it belongs to
// lecturerID. A zero match count — missing id or foreign owner alike — maps
// to ErrReportNotFound.
func (r *ReportRepository) UpdateOwned(ctx context.Context, id, lecturerID string, patch domain.ReportPatch) error {
	oid, err := parseID(id, domain.ErrReportNotFound)
	if err != nil {
		return err
	}

	set := patchToSet(patch)
	if len(set) == 0 {
		return fmt.Errorf("%w: no updatable fields in payload", domain.ErrValidation)
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "lecturer_id": lecturerID},
		bson.M{"$set": set},
	)
	if err != nil {
		return fmt.Errorf("update report: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrReportNotFound
	}
	return nil
}

func (r *ReportRepository) DeleteOwned(ctx context.Context, id, lecturerID string) error {
	oid, err := parseID(id, domain.ErrReportNotFound)
	if err != nil {
		return err
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid, "lecturer_id": lecturerID})
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrReportNotFound
	}
	return nil
}

// SetFeedback writes only the prl_feedback field, on any report.
func (r *ReportRepository) SetFeedback(ctx context.Context, id, feedback string) error {
	oid, err := parseID(id, domain.ErrReportNotFound)
	if err != nil {
		return err
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"prl_feedback": feedback}},
	)
	if err != nil {
		return fmt.Errorf("set feedback: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrReportNotFound
	}
	return nil
}

// EnsureIndexes creates lookup indexes on the reports collection.
func (r *ReportRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "lecturer_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	return err
}

func patchToSet(patch domain.ReportPatch) bson.M {
	set := bson.M{}
	if patch.WeekOfReporting != nil {
		set["week_of_reporting"] = *patch.WeekOfReporting
	}
	if patch.DateOfLecture != nil {
		set["date_of_lecture"] = *patch.DateOfLecture
	}
	if patch.StudentsPresent != nil {
		set["students_present"] = *patch.StudentsPresent
	}
	if patch.TotalStudents != nil {
		set["total_students"] = *patch.TotalStudents
	}
	if patch.Venue != nil {
		set["venue"] = *patch.Venue
	}
	if patch.LectureTime != nil {
		set["lecture_time"] = *patch.LectureTime
	}
	if patch.Topic != nil {
		set["topic"] = *patch.Topic
	}
	if patch.LearningOutcomes != nil {
		set["learning_outcomes"] = *patch.LearningOutcomes
	}
	if patch.Recommendations != nil {
		set["recommendations"] = *patch.Recommendations
	}
	return set
}

func fromDomainReport(report *domain.Report) mongoReport {
	return mongoReport{
		LecturerID:       report.LecturerID,
		LecturerName:     report.LecturerName,
		ClassID:          report.ClassID,
		ClassName:        report.ClassName,
		CourseID:         report.CourseID,
		CourseName:       report.CourseName,
		CourseCode:       report.CourseCode,
		WeekOfReporting:  report.WeekOfReporting,
		DateOfLecture:    report.DateOfLecture,
		StudentsPresent:  report.StudentsPresent,
		TotalStudents:    report.TotalStudents,
		Venue:            report.Venue,
		LectureTime:      report.LectureTime,
		Topic:            report.Topic,
		LearningOutcomes: report.LearningOutcomes,
		Recommendations:  report.Recommendations,
		PRLFeedback:      report.PRLFeedback,
		CreatedAt:        report.CreatedAt.Unix(),
	}
}

func (mr mongoReport) toDomain() *domain.Report {
	return &domain.Report{
		ID:               mr.ID.Hex(),
		LecturerID:       mr.LecturerID,
		LecturerName:     mr.LecturerName,
		ClassID:          mr.ClassID,
		ClassName:        mr.ClassName,
		CourseID:         mr.CourseID,
		CourseName:       mr.CourseName,
		CourseCode:       mr.CourseCode,
		WeekOfReporting:  mr.WeekOfReporting,
		DateOfLecture:    mr.DateOfLecture,
		StudentsPresent:  mr.StudentsPresent,
		TotalStudents:    mr.TotalStudents,
		Venue:            mr.Venue,
		LectureTime:      mr.LectureTime,
		Topic:            mr.Topic,
		LearningOutcomes: mr.LearningOutcomes,
		Recommendations:  mr.Recommendations,
		PRLFeedback:      mr.PRLFeedback,
		CreatedAt:        unixToTime(mr.CreatedAt),
	}
}
