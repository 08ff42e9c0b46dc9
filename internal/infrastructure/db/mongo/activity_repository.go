package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskforge/task-system/internal/core/domain"
)

const activityCollection = "task_activity"

type MongoActivityRepository struct {
	coll *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *MongoActivityRepository {
	return &MongoActivityRepository{coll: db.Collection(activityCollection)}
}

type activityDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	TaskID    string             `bson:"task_id"`
	Action    string             `bson:"action"`
	ActorID   string             `bson:"actor_id"`
	Detail    string             `bson:"detail,omitempty"`
	Timestamp time.Time          `bson:"timestamp"`
}

func (r *MongoActivityRepository) Insert(ctx context.Context, e *domain.ActivityEntry) error {
	doc := activityDoc{
		TaskID:    e.TaskID,
		Action:    e.Action,
		ActorID:   e.ActorID,
		Detail:    e.Detail,
		Timestamp: e.Timestamp,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (r *MongoActivityRepository) ListByTask(ctx context.Context, taskID string, limit int) ([]*domain.ActivityEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{"task_id": taskID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer cur.Close(ctx)

	entries := make([]*domain.ActivityEntry, 0)
	for cur.Next(ctx) {
		var doc activityDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode activity: %w", err)
		}
		entries = append(entries, &domain.ActivityEntry{
			ID:        doc.ID.Hex(),
			TaskID:    doc.TaskID,
			Action:    doc.Action,
			ActorID:   doc.ActorID,
			Detail:    doc.Detail,
			Timestamp: doc.Timestamp.UTC(),
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return entries, nil
}
