package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/sanketnagtilak/mern-project/models"
	"github.com/sanketnagtilak/mern-project/repository"
	"github.com/sanketnagtilak/mern-project/utils"
)

const listingCacheNamespace = "listings"

type ListingService struct {
	listings ListingStore
	agents   *AgentService
	images   ImageStore
	tx       repository.TxRunner
	cache    ListingCache
}

func NewListingService(listings ListingStore, agents *AgentService, images ImageStore, tx repository.TxRunner, cache ListingCache) *ListingService {
	return &ListingService{
		listings: listings,
		agents:   agents,
		images:   images,
		tx:       tx,
		cache:    cache,
	}
}

// Create persists a listing owned by callerID. A referenced agent must exist
// and has its counter incremented in the same unit of work.
func (s *ListingService) Create(ctx context.Context, callerID string, req models.CreateListingRequest) (*models.Listing, error) {
	now := time.Now().UTC()
	listing := &models.Listing{
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		Address:       req.Address,
		Type:          req.Type,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		Furnished:     req.Furnished,
		Parking:       req.Parking,
		Offer:         req.Offer,
		ImageURLs:     nonNil(req.ImageURLs),
		UserRef:       callerID,
		AgentRef:      strings.TrimSpace(req.AgentRef),
		HouseOptions:  MergeHouseOptions(nil, req.HouseOptions),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if listing.AgentRef != "" {
			if err := s.agents.AttachListing(ctx, listing.AgentRef); err != nil {
				return err
			}
		}
		if err := s.listings.Insert(ctx, listing); err != nil {
			if listing.AgentRef != "" && !s.tx.Transactional() {
				_, _ = s.agents.DetachListing(ctx, listing.AgentRef)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return listing, nil
}

func (s *ListingService) Get(ctx context.Context, id string) (*models.Listing, error) {
	listing, err := s.listings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound("Listing not found!")
		}
		return nil, err
	}
	return listing, nil
}

func (s *ListingService) Delete(ctx context.Context, id, callerID string) error {
	listing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if callerID != listing.UserRef {
		return utils.Unauthorized("You can only delete your own listings!")
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		detached := false
		if listing.AgentRef != "" {
			var err error
			if detached, err = s.agents.DetachListing(ctx, listing.AgentRef); err != nil {
				return err
			}
		}
		if err := s.listings.Delete(ctx, listing.ID); err != nil {
			if detached && !s.tx.Transactional() {
				_ = s.agents.AttachListing(ctx, listing.AgentRef)
			}
			if errors.Is(err, repository.ErrNotFound) {
				return utils.NotFound("Listing not found!")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

// Update applies the supplied fields to the owner's listing. The owner
// reference is immutable; an agentRef change moves the counter from the old
// agent to the new one.
func (s *ListingService) Update(ctx context.Context, id, callerID string, req models.UpdateListingRequest) (*models.Listing, error) {
	listing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if callerID != listing.UserRef {
		return nil, utils.Unauthorized("You can only update your own listings!")
	}

	oldAgent := listing.AgentRef
	applyListingUpdate(listing, req)
	listing.UpdatedAt = time.Now().UTC()
	newAgent := listing.AgentRef

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		undo, err := s.agents.Reassign(ctx, oldAgent, newAgent)
		if err != nil {
			return err
		}
		if err := s.listings.Replace(ctx, listing); err != nil {
			if !s.tx.Transactional() {
				undo(ctx)
			}
			if errors.Is(err, repository.ErrNotFound) {
				return utils.NotFound("Listing not found!")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return listing, nil
}

func applyListingUpdate(l *models.Listing, req models.UpdateListingRequest) {
	if req.Name != nil {
		l.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if req.Address != nil {
		l.Address = *req.Address
	}
	if req.Type != nil {
		l.Type = *req.Type
	}
	if req.Price != nil {
		l.Price = *req.Price
	}
	if req.DiscountPrice != nil {
		l.DiscountPrice = *req.DiscountPrice
	}
	if req.Bedrooms != nil {
		l.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		l.Bathrooms = *req.Bathrooms
	}
	if req.Furnished != nil {
		l.Furnished = *req.Furnished
	}
	if req.Parking != nil {
		l.Parking = *req.Parking
	}
	if req.Offer != nil {
		l.Offer = *req.Offer
	}
	if req.ImageURLs != nil {
		l.ImageURLs = nonNil(*req.ImageURLs)
	}
	if req.AgentRef != nil {
		l.AgentRef = strings.TrimSpace(*req.AgentRef)
	}
	if req.HouseOptions != nil {
		l.HouseOptions = MergeHouseOptions(nil, *req.HouseOptions)
	}
}

// Search returns one page of listings matching q, served from the cache
// when one is configured.
func (s *ListingService) Search(ctx context.Context, q repository.ListingQuery) ([]models.Listing, error) {
	var key string
	if s.cache != nil {
		if version, err := s.cache.Version(ctx, listingCacheNamespace); err == nil {
			key = utils.GenerateQueryCacheKey(fmt.Sprintf("%s:v%d", listingCacheNamespace, version), q.CacheParams())
			var cached []models.Listing
			if hit, err := s.cache.GetCached(ctx, key, &cached); err == nil && hit {
				return cached, nil
			}
		} else {
			log.Printf("listing cache unavailable: %v", err)
		}
	}

	listings, err := s.listings.Find(ctx, q)
	if err != nil {
		return nil, err
	}

	if key != "" {
		if err := s.cache.SetCached(ctx, key, listings); err != nil {
			log.Printf("listing cache write failed: %v", err)
		}
	}
	return listings, nil
}

func (s *ListingService) ListByAgent(ctx context.Context, agentID string, limit, skip int64) ([]models.Listing, error) {
	if _, err := s.agents.Get(ctx, agentID); err != nil {
		return nil, err
	}
	return s.listings.FindByAgent(ctx, agentID, limit, skip)
}

func (s *ListingService) ListByUser(ctx context.Context, userID, callerID string) ([]models.Listing, error) {
	if userID != callerID {
		return nil, utils.Unauthorized("You can only view your own listings!")
	}
	return s.listings.FindByUser(ctx, userID)
}

// AddHouseOptions merges houseOptions into the listing's set. A nil slice
// means the request carried no array.
func (s *ListingService) AddHouseOptions(ctx context.Context, id, callerID string, houseOptions []string) (*models.Listing, error) {
	if houseOptions == nil {
		return nil, utils.BadRequest("House options must be provided as an array")
	}
	listing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !listing.CanEditOptions(callerID) {
		return nil, utils.Unauthorized("You can only add options to your own listings!")
	}
	return s.saveHouseOptions(ctx, listing, MergeHouseOptions(listing.HouseOptions, houseOptions))
}

func (s *ListingService) RemoveHouseOption(ctx context.Context, id, callerID, option string) (*models.Listing, error) {
	if option == "" {
		return nil, utils.BadRequest("Option to remove must be provided")
	}
	listing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !listing.CanEditOptions(callerID) {
		return nil, utils.Unauthorized("You can only remove options from your own listings!")
	}
	return s.saveHouseOptions(ctx, listing, RemoveHouseOption(listing.HouseOptions, option))
}

func (s *ListingService) saveHouseOptions(ctx context.Context, listing *models.Listing, houseOptions []string) (*models.Listing, error) {
	updated, err := s.listings.SetHouseOptions(ctx, listing.ID, houseOptions)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound("Listing not found!")
		}
		return nil, err
	}
	s.invalidate(ctx)
	return updated, nil
}

// AddImage stores an uploaded image and appends its URL to the listing.
func (s *ListingService) AddImage(ctx context.Context, id, callerID, filename, contentType string, src io.Reader) (*models.Listing, error) {
	listing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if callerID != listing.UserRef {
		return nil, utils.Unauthorized("You can only upload images to your own listings!")
	}

	fileID, err := s.images.Upload(ctx, filename, contentType, src)
	if err != nil {
		return nil, err
	}

	updated, err := s.listings.PushImage(ctx, listing.ID, "/api/listing/images/"+fileID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound("Listing not found!")
		}
		return nil, err
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *ListingService) OpenImage(ctx context.Context, fileID string) (*repository.Image, error) {
	img, err := s.images.Open(ctx, fileID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound("Image not found!")
		}
		return nil, err
	}
	return img, nil
}

func (s *ListingService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.BumpVersion(ctx, listingCacheNamespace); err != nil {
		log.Printf("listing cache invalidation failed: %v", err)
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
