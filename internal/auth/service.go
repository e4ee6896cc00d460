package auth

import (
	"context"
	"errors"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	// DefaultTTL is how long a verified token stays in the cache
	DefaultTTL = time.Hour

	sessionKeyPrefix = "trainmate-session||"
)

// ErrInvalidToken is returned when the bearer token cannot be verified.
var ErrInvalidToken = errors.New("invalid auth token")

type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// Service verifies Firebase ID tokens and caches the verified
// token -> user id mapping in redis, so hot requests skip the
// round trip to the identity provider.
type Service struct {
	verifier    idTokenVerifier
	redisClient *redis.Client
	ttl         time.Duration
}

func NewService(verifier idTokenVerifier, redisClient *redis.Client, ttl time.Duration) *Service {
	return &Service{
		verifier:    verifier,
		redisClient: redisClient,
		ttl:         ttl,
	}
}

// Verify resolves the bearer token to a user id. The cache is
// best-effort: a redis failure falls through to full verification.
func (s *Service) Verify(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrInvalidToken
	}

	sessionKey := sessionKeyPrefix + token
	cmd := s.redisClient.Get(ctx, sessionKey)
	switch err := cmd.Err(); {
	case err == nil:
		return cmd.Val(), nil
	case !errors.Is(err, redis.Nil):
		log.Warnf("auth token cache get: %s", err)
	}

	decoded, err := s.verifier.VerifyIDToken(ctx, token)
	if err != nil {
		log.Tracef("verify id token: %s", err)
		return "", ErrInvalidToken
	}

	if err := s.redisClient.Set(ctx, sessionKey, decoded.UID, s.ttl).Err(); err != nil {
		log.Warnf("auth token cache set: %s", err)
	}

	return decoded.UID, nil
}
