package seating

import (
	"context"
	"errors"

	"ExamTimetabler/internal/timetable"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SeatingRepository handles DB operations for seat records.
type SeatingRepository struct {
	seatsCollection *mongo.Collection
}

// NewSeatingRepository creates a new repository for seating operations.
func NewSeatingRepository(db *mongo.Database) *SeatingRepository {
	return &SeatingRepository{seatsCollection: db.Collection("seat_arrangements")}
}

// BulkCreate inserts the seat records of one hall sitting.
func (r *SeatingRepository) BulkCreate(ctx context.Context, records []*SeatRecord) error {
	if len(records) == 0 {
		return nil
	}
	docs := make([]interface{}, len(records))
	for i, record := range records {
		docs[i] = record
	}
	_, err := r.seatsCollection.InsertMany(ctx, docs)
	return err
}

// FindByHall returns the seat records of one hall sitting, ordered by
// course then matric number.
func (r *SeatingRepository) FindByHall(ctx context.Context, date string, period timetable.Period, hallID primitive.ObjectID) ([]*SeatRecord, error) {
	filter := bson.M{"date": date, "period": period, "hall_id": hallID}
	opts := options.Find().SetSort(bson.D{{Key: "course_code", Value: 1}, {Key: "matric_no", Value: 1}})
	cursor, err := r.seatsCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var records []*SeatRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SetSeatNumber updates one record's seat number.
func (r *SeatingRepository) SetSeatNumber(ctx context.Context, id primitive.ObjectID, seatNumber int) error {
	update := bson.M{"$set": bson.M{"seat_number": seatNumber}}
	res, err := r.seatsCollection.UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("seat record not found")
	}
	return nil
}

// Clear removes the seat records of one hall sitting.
func (r *SeatingRepository) Clear(ctx context.Context, date string, period timetable.Period, hallID primitive.ObjectID) error {
	_, err := r.seatsCollection.DeleteMany(ctx, bson.M{"date": date, "period": period, "hall_id": hallID})
	return err
}
