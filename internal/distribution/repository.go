package distribution

import (
	"context"

	"ExamTimetabler/internal/timetable"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// DistributionRepository handles DB operations for hall distributions.
type DistributionRepository struct {
	distributionsCollection *mongo.Collection
}

// NewDistributionRepository creates a new repository for distribution operations.
func NewDistributionRepository(db *mongo.Database) *DistributionRepository {
	return &DistributionRepository{distributionsCollection: db.Collection("distributions")}
}

// BulkCreate inserts the distributions of one sitting.
func (r *DistributionRepository) BulkCreate(ctx context.Context, distributions []*Distribution) error {
	if len(distributions) == 0 {
		return nil
	}
	docs := make([]interface{}, len(distributions))
	for i, d := range distributions {
		docs[i] = d
	}
	_, err := r.distributionsCollection.InsertMany(ctx, docs)
	return err
}

// FindByDateAndPeriod returns the distributions of one sitting.
func (r *DistributionRepository) FindByDateAndPeriod(ctx context.Context, date string, period timetable.Period) ([]*Distribution, error) {
	cursor, err := r.distributionsCollection.Find(ctx, bson.M{"date": date, "period": period})
	if err != nil {
		return nil, err
	}
	var distributions []*Distribution
	if err := cursor.All(ctx, &distributions); err != nil {
		return nil, err
	}
	return distributions, nil
}

// FindByHall returns the distribution of one hall for one sitting.
func (r *DistributionRepository) FindByHall(ctx context.Context, date string, period timetable.Period, hallID primitive.ObjectID) (*Distribution, error) {
	var distribution Distribution
	err := r.distributionsCollection.FindOne(ctx, bson.M{"date": date, "period": period, "hall_id": hallID}).Decode(&distribution)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &distribution, nil
}

// Clear removes all distributions for a sitting.
func (r *DistributionRepository) Clear(ctx context.Context, date string, period timetable.Period) error {
	_, err := r.distributionsCollection.DeleteMany(ctx, bson.M{"date": date, "period": period})
	return err
}
