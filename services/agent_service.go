package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sanketnagtilak/mern-project/models"
	"github.com/sanketnagtilak/mern-project/repository"
	"github.com/sanketnagtilak/mern-project/utils"
)

// AgentService owns the agents collection, including the listings counter
// that Listing writes keep in step.
type AgentService struct {
	agents AgentStore
	tokens TokenIssuer
}

func NewAgentService(agents AgentStore, tokens TokenIssuer) *AgentService {
	return &AgentService{agents: agents, tokens: tokens}
}

func (s *AgentService) Signup(ctx context.Context, req models.AgentSignupRequest) (*models.AgentAuthResponse, error) {
	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("AgentService.Signup hash: %w", err)
	}

	now := time.Now().UTC()
	agent := &models.Agent{
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Password:  hashed,
		Phone:     req.Phone,
		Agency:    req.Agency,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.agents.Insert(ctx, agent); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.Conflict("Agent already exists!")
		}
		return nil, err
	}

	return s.authResponse(agent)
}

func (s *AgentService) Signin(ctx context.Context, req models.SigninRequest) (*models.AgentAuthResponse, error) {
	agent, err := s.agents.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound("Agent not found!")
		}
		return nil, err
	}
	if err := utils.CheckPassword(agent.Password, req.Password); err != nil {
		return nil, utils.Unauthorized("Wrong credentials!")
	}
	return s.authResponse(agent)
}

func (s *AgentService) authResponse(agent *models.Agent) (*models.AgentAuthResponse, error) {
	token, err := s.tokens.Issue(agent.ID.Hex(), utils.KindAgent)
	if err != nil {
		return nil, fmt.Errorf("AgentService token: %w", err)
	}
	return &models.AgentAuthResponse{Token: token, Agent: *agent}, nil
}

func (s *AgentService) Get(ctx context.Context, id string) (*models.Agent, error) {
	agent, err := s.agents.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound("Agent not found!")
		}
		return nil, err
	}
	return agent, nil
}

// AttachListing counts one more listing against the agent. It fails with
// NotFound when the agent does not exist, leaving every counter untouched.
func (s *AgentService) AttachListing(ctx context.Context, agentID string) error {
	if err := s.agents.IncrementListings(ctx, agentID, 1); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.NotFound("Agent not found!")
		}
		return err
	}
	return nil
}

// DetachListing counts one listing less and reports whether the counter
// moved. A missing agent, or one already at zero, is not an error for the
// listing being removed.
func (s *AgentService) DetachListing(ctx context.Context, agentID string) (bool, error) {
	if err := s.agents.IncrementListings(ctx, agentID, -1); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Printf("agent %s: listings counter not decremented (agent missing or at zero)", agentID)
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Reassign moves one listing from oldID to newID. Either side may be empty.
// The returned undo reverts exactly the counter changes that were applied.
func (s *AgentService) Reassign(ctx context.Context, oldID, newID string) (undo func(context.Context), err error) {
	undo = func(context.Context) {}
	if oldID == newID {
		return undo, nil
	}

	attached := false
	if newID != "" {
		if err := s.AttachListing(ctx, newID); err != nil {
			return undo, err
		}
		attached = true
	}

	detached := false
	if oldID != "" {
		detached, err = s.DetachListing(ctx, oldID)
		if err != nil {
			if attached {
				_, _ = s.DetachListing(ctx, newID)
			}
			return undo, err
		}
	}

	return func(ctx context.Context) {
		if attached {
			_, _ = s.DetachListing(ctx, newID)
		}
		if detached {
			if err := s.AttachListing(ctx, oldID); err != nil {
				log.Printf("agent %s: listings counter not restored: %v", oldID, err)
			}
		}
	}, nil
}
