package notification

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// NoticeRepository handles DB operations for notices.
type NoticeRepository struct {
	collection *mongo.Collection
}

// NewNoticeRepository creates a new repository for notices.
func NewNoticeRepository(db *mongo.Database) *NoticeRepository {
	return &NoticeRepository{collection: db.Collection("notices")}
}

// CreateNotice inserts a new notice into the DB.
func (r *NoticeRepository) CreateNotice(ctx context.Context, n *Notice) error {
	_, err := r.collection.InsertOne(ctx, n)
	return err
}

// GetPendingNotices fetches notices scheduled to be sent (status = scheduled, send_time <= now).
func (r *NoticeRepository) GetPendingNotices(ctx context.Context) ([]*Notice, error) {
	filter := bson.M{"status": "scheduled", "send_time": bson.M{"$lte": time.Now()}}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var notices []*Notice
	if err := cursor.All(ctx, &notices); err != nil {
		return nil, err
	}
	return notices, nil
}

// UpdateNoticeStatus updates the status and sent_to fields of a notice.
func (r *NoticeRepository) UpdateNoticeStatus(ctx context.Context, id primitive.ObjectID, status string, sentTo []string) error {
	update := bson.M{"$set": bson.M{"status": status, "sent_to": sentTo, "updated_at": time.Now()}}
	res, err := r.collection.UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("notice not found")
	}
	return nil
}

// ListNotices fetches notices, optionally filtered by department slug.
func (r *NoticeRepository) ListNotices(ctx context.Context, department string) ([]*Notice, error) {
	filter := bson.M{}
	if department != "" {
		filter["departments"] = department
	}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var notices []*Notice
	if err := cursor.All(ctx, &notices); err != nil {
		return nil, err
	}
	return notices, nil
}

// DeleteNotice deletes a notice by ObjectID.
func (r *NoticeRepository) DeleteNotice(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.New("notice not found")
	}
	return nil
}
