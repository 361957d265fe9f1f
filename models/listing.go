package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ListingTypeSale = "sale"
	ListingTypeRent = "rent"
)

type Listing struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description" json:"description"`
	Address       string             `bson:"address" json:"address"`
	Type          string             `bson:"type" json:"type"`
	Price         float64            `bson:"price" json:"price"`
	DiscountPrice float64            `bson:"discountPrice" json:"discountPrice"`
	Bedrooms      int                `bson:"bedrooms" json:"bedrooms"`
	Bathrooms     int                `bson:"bathrooms" json:"bathrooms"`
	Furnished     bool               `bson:"furnished" json:"furnished"`
	Parking       bool               `bson:"parking" json:"parking"`
	Offer         bool               `bson:"offer" json:"offer"`
	ImageURLs     []string           `bson:"imageUrls" json:"imageUrls"`
	UserRef       string             `bson:"userRef" json:"userRef"`
	AgentRef      string             `bson:"agentRef,omitempty" json:"agentRef,omitempty"`
	HouseOptions  []string           `bson:"houseOptions" json:"houseOptions"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CanEditOptions reports whether id is the owning user or the referenced agent.
func (l *Listing) CanEditOptions(id string) bool {
	if id == "" {
		return false
	}
	return id == l.UserRef || (l.AgentRef != "" && id == l.AgentRef)
}

type CreateListingRequest struct {
	Name          string   `json:"name" validate:"required"`
	Description   string   `json:"description"`
	Address       string   `json:"address"`
	Type          string   `json:"type" validate:"required,oneof=sale rent"`
	Price         float64  `json:"price" validate:"gte=0"`
	DiscountPrice float64  `json:"discountPrice" validate:"gte=0"`
	Bedrooms      int      `json:"bedrooms" validate:"gte=0"`
	Bathrooms     int      `json:"bathrooms" validate:"gte=0"`
	Furnished     bool     `json:"furnished"`
	Parking       bool     `json:"parking"`
	Offer         bool     `json:"offer"`
	ImageURLs     []string `json:"imageUrls"`
	UserRef       string   `json:"userRef"`
	AgentRef      string   `json:"agentRef"`
	HouseOptions  []string `json:"houseOptions"`
}

// UpdateListingRequest carries only the fields present in the request body.
type UpdateListingRequest struct {
	Name          *string   `json:"name" validate:"omitempty,min=1"`
	Description   *string   `json:"description"`
	Address       *string   `json:"address"`
	Type          *string   `json:"type" validate:"omitempty,oneof=sale rent"`
	Price         *float64  `json:"price" validate:"omitempty,gte=0"`
	DiscountPrice *float64  `json:"discountPrice" validate:"omitempty,gte=0"`
	Bedrooms      *int      `json:"bedrooms" validate:"omitempty,gte=0"`
	Bathrooms     *int      `json:"bathrooms" validate:"omitempty,gte=0"`
	Furnished     *bool     `json:"furnished"`
	Parking       *bool     `json:"parking"`
	Offer         *bool     `json:"offer"`
	ImageURLs     *[]string `json:"imageUrls"`
	AgentRef      *string   `json:"agentRef"`
	HouseOptions  *[]string `json:"houseOptions"`
}

type RemoveOptionRequest struct {
	Option string `json:"option"`
}
