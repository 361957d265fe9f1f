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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ListingRepository struct {
	collection *mongo.Collection
}

func NewListingRepository(collection *mongo.Collection) *ListingRepository {
	return &ListingRepository{collection: collection}
}

func (r *ListingRepository) Insert(ctx context.Context, l *models.Listing) error {
	if l.ID.IsZero() {
		l.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, l); err != nil {
		return fmt.Errorf("ListingRepository.Insert: %w", err)
	}
	return nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*models.Listing, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var l models.Listing
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&l); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ListingRepository.FindByID: %w", err)
	}
	return &l, nil
}

func (r *ListingRepository) Find(ctx context.Context, q ListingQuery) ([]models.Listing, error) {
	return r.find(ctx, BuildListingFilter(q), q.FindOptions())
}

func (r *ListingRepository) FindByAgent(ctx context.Context, agentID string, limit, skip int64) ([]models.Listing, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	return r.find(ctx, bson.M{"agentRef": agentID}, opts)
}

func (r *ListingRepository) FindByUser(ctx context.Context, userID string) ([]models.Listing, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, bson.M{"userRef": userID}, opts)
}

func (r *ListingRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Listing, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("ListingRepository.Find: %w", err)
	}
	defer cursor.Close(ctx)

	listings := []models.Listing{}
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("ListingRepository.Find decode: %w", err)
	}
	return listings, nil
}

// Replace writes the whole document back; concurrent writers are last-write-wins.
func (r *ListingRepository) Replace(ctx context.Context, l *models.Listing) error {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": l.ID}, l)
	if err != nil {
		return fmt.Errorf("ListingRepository.Replace: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ListingRepository) SetHouseOptions(ctx context.Context, id primitive.ObjectID, houseOptions []string) (*models.Listing, error) {
	return r.findAndUpdate(ctx, id, bson.M{"$set": bson.M{
		"houseOptions": houseOptions,
		"updatedAt":    time.Now().UTC(),
	}})
}

func (r *ListingRepository) PushImage(ctx context.Context, id primitive.ObjectID, url string) (*models.Listing, error) {
	return r.findAndUpdate(ctx, id, bson.M{
		"$push": bson.M{"imageUrls": url},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (r *ListingRepository) findAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Listing, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var l models.Listing
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&l); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ListingRepository.Update: %w", err)
	}
	return &l, nil
}

func (r *ListingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("ListingRepository.Delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
