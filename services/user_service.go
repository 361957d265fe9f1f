package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sanketnagtilak/mern-project/models"
	"github.com/sanketnagtilak/mern-project/repository"
	"github.com/sanketnagtilak/mern-project/utils"
)

type UserService struct {
	users  UserStore
	tokens TokenIssuer
}

func NewUserService(users UserStore, tokens TokenIssuer) *UserService {
	return &UserService{users: users, tokens: tokens}
}

func (s *UserService) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("UserService.Signup hash: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		Username:  strings.TrimSpace(req.Username),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Password:  hashed,
		Avatar:    models.DefaultAvatar,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.Conflict("User already exists!")
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Signin(ctx context.Context, req models.SigninRequest) (*models.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound("User not found!")
		}
		return nil, err
	}
	if err := utils.CheckPassword(user.Password, req.Password); err != nil {
		return nil, utils.Unauthorized("Wrong credentials!")
	}

	token, err := s.tokens.Issue(user.ID.Hex(), utils.KindUser)
	if err != nil {
		return nil, fmt.Errorf("UserService.Signin token: %w", err)
	}
	return &models.AuthResponse{Token: token, User: *user}, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound("User not found!")
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id, callerID string, req models.UpdateUserRequest) (*models.User, error) {
	if id != callerID {
		return nil, utils.Unauthorized("You can only update your own account!")
	}
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != "" {
		user.Username = strings.TrimSpace(req.Username)
	}
	if req.Email != "" {
		user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}
	if req.Password != "" {
		hashed, err := utils.HashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("UserService.Update hash: %w", err)
		}
		user.Password = hashed
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Replace(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, utils.Conflict("Username or email already in use!")
		case errors.Is(err, repository.ErrNotFound):
			return nil, utils.NotFound("User not found!")
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id, callerID string) error {
	if id != callerID {
		return utils.Unauthorized("You can only delete your own account!")
	}
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, user.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.NotFound("User not found!")
		}
		return err
	}
	return nil
}
