// Package services implements the business rules of listings, agents and
// user accounts on top of the repository layer.
package services

import (
	"context"
	"io"

	"github.com/sanketnagtilak/mern-project/models"
	"github.com/sanketnagtilak/mern-project/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ListingStore interface {
	Insert(ctx context.Context, l *models.Listing) error
	FindByID(ctx context.Context, id string) (*models.Listing, error)
	Find(ctx context.Context, q repository.ListingQuery) ([]models.Listing, error)
	FindByAgent(ctx context.Context, agentID string, limit, skip int64) ([]models.Listing, error)
	FindByUser(ctx context.Context, userID string) ([]models.Listing, error)
	Replace(ctx context.Context, l *models.Listing) error
	SetHouseOptions(ctx context.Context, id primitive.ObjectID, houseOptions []string) (*models.Listing, error)
	PushImage(ctx context.Context, id primitive.ObjectID, url string) (*models.Listing, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type AgentStore interface {
	Insert(ctx context.Context, a *models.Agent) error
	FindByID(ctx context.Context, id string) (*models.Agent, error)
	FindByEmail(ctx context.Context, email string) (*models.Agent, error)
	IncrementListings(ctx context.Context, id string, delta int) error
}

type UserStore interface {
	Insert(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Replace(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ImageStore interface {
	Upload(ctx context.Context, filename, contentType string, src io.Reader) (string, error)
	Open(ctx context.Context, id string) (*repository.Image, error)
}

// ListingCache caches search pages. A nil ListingCache disables caching.
type ListingCache interface {
	GetCached(ctx context.Context, key string, dest interface{}) (bool, error)
	SetCached(ctx context.Context, key string, value interface{}) error
	Version(ctx context.Context, namespace string) (int64, error)
	BumpVersion(ctx context.Context, namespace string) error
}
