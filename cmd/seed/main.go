// Seeds demo conversations for local development: one completed with a
// recommendation, one mid-progress with a gap at the second question.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"aligniq/internal/catalog"
	"aligniq/internal/config"
	"aligniq/internal/model"
	"aligniq/internal/repository"
	"aligniq/internal/scoring"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)
	convRepo := repository.NewConversationRepo(db)
	respRepo := repository.NewResponseRepo(db)
	cat := catalog.Default()

	// Completed conversation: every question answered with its first option.
	completed := &model.Conversation{
		ID:      "demo-completed",
		OwnerID: "rep_demo1234",
		Status:  model.ConversationInProgress,
	}
	if err := convRepo.Create(ctx, completed); err != nil {
		log.Fatalf("Failed to create conversation: %v", err)
	}

	responses := make(map[string]model.Response, cat.Len())
	for _, q := range cat.Questions() {
		opt := q.Options[0]
		resp := &model.Response{
			ConversationID: completed.ID,
			QuestionID:     q.ID,
			OptionID:       opt.ID,
			Scores:         opt.Scores.Clone(),
			AnsweredAt:     time.Now(),
		}
		if err := respRepo.Upsert(ctx, resp); err != nil {
			log.Fatalf("Failed to store response: %v", err)
		}
		responses[q.ID] = *resp
	}

	totals, err := scoring.ComputeTotals(cat, responses)
	if err != nil {
		log.Fatalf("Failed to compute totals: %v", err)
	}
	now := time.Now()
	completed.Status = model.ConversationCompleted
	completed.Recommended = scoring.Recommend(totals)
	completed.CompletedAt = &now
	if err := convRepo.Update(ctx, completed); err != nil {
		log.Fatalf("Failed to complete conversation: %v", err)
	}
	fmt.Printf("Seeded %s: totals=%v recommended=%s\n", completed.ID, totals, completed.Recommended)

	// In-progress conversation with a gap: questions 1 and 3 answered,
	// question 2 skipped, so resumption lands on index 1.
	partial := &model.Conversation{
		ID:     "demo-in-progress",
		Status: model.ConversationInProgress,
	}
	if err := convRepo.Create(ctx, partial); err != nil {
		log.Fatalf("Failed to create conversation: %v", err)
	}
	for _, i := range []int{0, 2} {
		q := cat.QuestionAt(i)
		opt := q.Options[1]
		resp := &model.Response{
			ConversationID: partial.ID,
			QuestionID:     q.ID,
			OptionID:       opt.ID,
			Scores:         opt.Scores.Clone(),
			AnsweredAt:     time.Now(),
		}
		if err := respRepo.Upsert(ctx, resp); err != nil {
			log.Fatalf("Failed to store response: %v", err)
		}
	}
	fmt.Printf("Seeded %s: 2 of %d questions answered\n", partial.ID, cat.Len())
}
