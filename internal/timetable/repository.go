package timetable

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// TimetableRepository handles DB operations for scheduled exams.
type TimetableRepository struct {
	timetableCollection *mongo.Collection
}

// NewTimetableRepository creates a new repository for timetable operations.
func NewTimetableRepository(db *mongo.Database) *TimetableRepository {
	return &TimetableRepository{timetableCollection: db.Collection("timetable")}
}

// BulkCreate inserts all scheduled exam rows in one call.
func (r *TimetableRepository) BulkCreate(ctx context.Context, exams []*ScheduledExam) error {
	if len(exams) == 0 {
		return nil
	}
	docs := make([]interface{}, len(exams))
	for i, exam := range exams {
		docs[i] = exam
	}
	_, err := r.timetableCollection.InsertMany(ctx, docs)
	return err
}

// FindByDateAndPeriod returns the scheduled exams of one sitting.
func (r *TimetableRepository) FindByDateAndPeriod(ctx context.Context, date string, period Period) ([]*ScheduledExam, error) {
	cursor, err := r.timetableCollection.Find(ctx, bson.M{"date": date, "period": period})
	if err != nil {
		return nil, err
	}
	var exams []*ScheduledExam
	if err := cursor.All(ctx, &exams); err != nil {
		return nil, err
	}
	return exams, nil
}

// DistinctDates returns the dates a timetable exists for, sorted.
func (r *TimetableRepository) DistinctDates(ctx context.Context) ([]string, error) {
	raw, err := r.timetableCollection.Distinct(ctx, "date", bson.M{})
	if err != nil {
		return nil, err
	}
	dates := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			dates = append(dates, s)
		}
	}
	return dates, nil
}

// Clear removes every scheduled exam row, allowing regeneration.
func (r *TimetableRepository) Clear(ctx context.Context) error {
	_, err := r.timetableCollection.DeleteMany(ctx, bson.M{})
	return err
}
