package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/kmutua/dukabook-api/internal/domain/entity"
	"github.com/kmutua/dukabook-api/internal/domain/enum"
	"github.com/kmutua/dukabook-api/internal/domain/repository"
	"github.com/kmutua/dukabook-api/pkg/apperror"
	"github.com/kmutua/dukabook-api/pkg/utils"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   repository.UserRepository
	shopRepo   repository.ShopRepository
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, shopRepo repository.ShopRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		shopRepo:   shopRepo,
		jwtManager: jwtManager,
	}
}

// TokenPair holds an access token and its refresh token
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResult is returned after a successful login or registration
type AuthResult struct {
	User   *entity.User `json:"user"`
	Tokens TokenPair    `json:"tokens"`
}

// RegisterInput represents the register input
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	ShopID    *uuid.UUID
	Role      enum.Role
}

// Register creates a new staff account. Scoped users must name their shop;
// privileged users must not.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResult, error) {
	if input.Role == "" {
		input.Role = enum.RoleScoped
	}
	if !input.Role.Valid() {
		return nil, apperror.NewBadRequestError("Invalid role")
	}

	switch input.Role {
	case enum.RoleScoped:
		if input.ShopID == nil {
			return nil, apperror.NewBadRequestError("Scoped users require a shop")
		}
		shop, err := s.shopRepo.GetByID(ctx, *input.ShopID)
		if err != nil {
			return nil, err
		}
		if shop == nil {
			return nil, apperror.NewNotFoundError("Shop")
		}
	case enum.RolePrivileged:
		if input.ShopID != nil {
			return nil, apperror.NewBadRequestError("Privileged users have no home shop")
		}
	}

	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		ShopID:    input.ShopID,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  hashed,
		Role:      input.Role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueTokens(user)
}

// Login authenticates a user by email and password
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPasswordHash(password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a fresh token pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrUnauthorized
	}

	return s.issueTokens(user)
}

func (s *AuthService) issueTokens(user *entity.User) (*AuthResult, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role.String(), user.ShopID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		User: user,
		Tokens: TokenPair{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	}, nil
}
