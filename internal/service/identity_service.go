package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/helpfurr/adopt-api/internal/models"
	appErrors "github.com/helpfurr/adopt-api/pkg/errors"
)

type identityGateway interface {
	FirstUser(ctx context.Context) (*models.User, error)
}

// IdentityService resolves the acting user. Authentication itself is
// owned by the upstream; this service only validates bearer tokens
// minted alongside it and, for the moderation view, falls back to the
// upstream user endpoint to stamp an approver identity the way the
// original admin table did.
type IdentityService struct {
	secret  string
	gateway identityGateway
	metrics *MetricsService
	logger  *zap.Logger
}

// NewIdentityService constructs the service.
func NewIdentityService(secret string, gw identityGateway, metrics *MetricsService, logger *zap.Logger) *IdentityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IdentityService{secret: secret, gateway: gw, metrics: metrics, logger: logger}
}

// ValidateToken parses and verifies a bearer token.
func (s *IdentityService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}

// DefaultModerator fetches the upstream user record used to stamp
// approvals when the request carries no bearer identity.
func (s *IdentityService) DefaultModerator(ctx context.Context) (*models.User, error) {
	start := time.Now()
	user, err := s.gateway.FirstUser(ctx)
	s.metrics.ObserveUpstreamCall("fetch_user", err, time.Since(start))
	if err != nil {
		s.logger.Warn("default moderator lookup failed", zap.Error(err))
		return nil, err
	}
	return user, nil
}
