package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sanketnagtilak/mern-project/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AgentRepository struct {
	collection *mongo.Collection
}

func NewAgentRepository(collection *mongo.Collection) *AgentRepository {
	return &AgentRepository{collection: collection}
}

func (r *AgentRepository) Insert(ctx context.Context, a *models.Agent) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, a); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("AgentRepository.Insert: %w", err)
	}
	return nil
}

func (r *AgentRepository) FindByID(ctx context.Context, id string) (*models.Agent, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *AgentRepository) FindByEmail(ctx context.Context, email string) (*models.Agent, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AgentRepository) findOne(ctx context.Context, filter bson.M) (*models.Agent, error) {
	var a models.Agent
	if err := r.collection.FindOne(ctx, filter).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("AgentRepository.FindOne: %w", err)
	}
	return &a, nil
}

// IncrementListings adjusts the listings counter with a single $inc. A
// decrement only matches while the counter stays non-negative, so a missing
// agent and an agent already at zero both report ErrNotFound.
func (r *AgentRepository) IncrementListings(ctx context.Context, id string, delta int) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	filter := bson.M{"_id": oid}
	if delta < 0 {
		filter["listings"] = bson.M{"$gte": -delta}
	}
	res, err := r.collection.UpdateOne(ctx, filter, bson.M{
		"$inc": bson.M{"listings": delta},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("AgentRepository.IncrementListings: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
