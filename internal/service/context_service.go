package service

import (
	"context"
	"errors"
	"fmt"

	"admitrag/internal/models"
	"admitrag/pkg/auth"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ContextService resolves an optional bearer token into the requesting
// student's profile and school list for prompt personalization.
type ContextService struct {
	jwtManager *auth.JWTManager
	store      ProfileStore
	maxSchools int
	logger     *zap.Logger
}

func NewContextService(jwtManager *auth.JWTManager, store ProfileStore, maxSchools int, logger *zap.Logger) *ContextService {
	return &ContextService{
		jwtManager: jwtManager,
		store:      store,
		maxSchools: maxSchools,
		logger:     logger,
	}
}

// Lookup returns (nil, nil) when no token is supplied: an anonymous chat
// is not an error. A present-but-invalid token or a failed fetch returns
// an error so the caller can decide to degrade; a student without a
// profile row simply gets a nil Profile.
func (s *ContextService) Lookup(ctx context.Context, token string) (*models.UserContext, error) {
	if token == "" {
		return nil, nil
	}

	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("malformed user ID in token: %w", err)
	}

	userCtx := &models.UserContext{}

	profile, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("profile lookup failed: %w", err)
		}
	} else {
		userCtx.Profile = profile
	}

	schools, err := s.store.ListSchools(ctx, userID, s.maxSchools)
	if err != nil {
		return nil, fmt.Errorf("school list lookup failed: %w", err)
	}
	userCtx.Schools = schools

	return userCtx, nil
}
