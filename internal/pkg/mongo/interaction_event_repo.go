package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type InteractionEventRepo interface {
	SaveEvent(ctx context.Context, evt *InteractionEvent) error
	GetRecentByUser(ctx context.Context, storeID uint64, userExternalID string, limit int) ([]*InteractionEvent, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type interactionEventRepoImpl struct {
	col *mongo.Collection
}

func NewInteractionEventRepo(db *mongo.Database) InteractionEventRepo {
	return &interactionEventRepoImpl{
		col: db.Collection("interaction_event"),
	}
}

// SaveEvent 将原始事件存入 MongoDB
func (s *interactionEventRepoImpl) SaveEvent(ctx context.Context, evt *InteractionEvent) error {
	_, err := s.col.InsertOne(ctx, evt)
	return err
}

// GetRecentByUser 按接收时间倒序查询某用户最近的原始事件
func (s *interactionEventRepoImpl) GetRecentByUser(ctx context.Context, storeID uint64, userExternalID string, limit int) ([]*InteractionEvent, error) {
	filter := bson.M{
		"store_id":         storeID,
		"user_external_id": userExternalID,
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "received_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var events []*InteractionEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}

	return events, nil
}

// DeleteBefore 清理过期归档，返回删除条数
func (s *interactionEventRepoImpl) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.col.DeleteMany(ctx, bson.M{
		"received_at": bson.M{"$lt": cutoff},
	})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
