package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"aligniq/internal/model"
)

type ResponseRepo interface {
	// Upsert stores a response, replacing any prior answer to the same
	// question in the same conversation.
	Upsert(ctx context.Context, resp *model.Response) error
	GetByConversationID(ctx context.Context, conversationID string) ([]*model.Response, error)
	DeleteByConversationID(ctx context.Context, conversationID string) error
}

type responseRepo struct {
	collection *mongo.Collection
}

func NewResponseRepo(db *mongo.Database) ResponseRepo {
	return &responseRepo{
		collection: db.Collection("responses"),
	}
}

func (r *responseRepo) Upsert(ctx context.Context, resp *model.Response) error {
	if resp.AnsweredAt.IsZero() {
		resp.AnsweredAt = time.Now()
	}

	filter := bson.M{
		"conversationId": resp.ConversationID,
		"questionId":     resp.QuestionID,
	}
	update := bson.M{"$set": resp}
	opts := options.Update().SetUpsert(true)

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

func (r *responseRepo) GetByConversationID(ctx context.Context, conversationID string) ([]*model.Response, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"conversationId": conversationID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []*model.Response
	if err = cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *responseRepo) DeleteByConversationID(ctx context.Context, conversationID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"conversationId": conversationID})
	return err
}
