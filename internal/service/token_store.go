package service

import (
	"context"
	"fmt"
	"time"

	"clinic-backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// TokenStore tracks which issued JWT ids are still valid. A token that
// passes signature validation but is absent here has been revoked.
type TokenStore interface {
	Save(ctx context.Context, userID uuid.UUID, tokenID string, tokenType jwt.TokenType, ttl time.Duration) error
	Exists(ctx context.Context, userID uuid.UUID, tokenID string, tokenType jwt.TokenType) (bool, error)
	Delete(ctx context.Context, userID uuid.UUID, tokenID string, tokenType jwt.TokenType) error
	// DeleteByTokenID revokes a token when only its id is known (logout).
	DeleteByTokenID(ctx context.Context, tokenID string, tokenType jwt.TokenType) error
	// RevokeAll drops every token of a user, e.g. after a password change.
	RevokeAll(ctx context.Context, userID uuid.UUID) error
}

type redisTokenStore struct {
	client *redis.Client
	log    *logrus.Logger
}

func NewTokenStore(client *redis.Client, log *logrus.Logger) TokenStore {
	return &redisTokenStore{
		client: client,
		log:    log,
	}
}

func tokenKeyPrefix(tokenType jwt.TokenType) string {
	if tokenType == jwt.RefreshToken {
		return "refresh_token"
	}
	return "access_token"
}

func tokenKey(userID uuid.UUID, tokenID string, tokenType jwt.TokenType) string {
	return fmt.Sprintf("%s:%s:%s", tokenKeyPrefix(tokenType), userID.String(), tokenID)
}

func (s *redisTokenStore) Save(ctx context.Context, userID uuid.UUID, tokenID string, tokenType jwt.TokenType, ttl time.Duration) error {
	if err := s.client.Set(ctx, tokenKey(userID, tokenID, tokenType), "valid", ttl).Err(); err != nil {
		s.log.Warnf("Failed to store token in Redis: %+v", err)
		return err
	}
	return nil
}

func (s *redisTokenStore) Exists(ctx context.Context, userID uuid.UUID, tokenID string, tokenType jwt.TokenType) (bool, error) {
	exists, err := s.client.Exists(ctx, tokenKey(userID, tokenID, tokenType)).Result()
	if err != nil {
		s.log.Warnf("Failed to check token in Redis: %+v", err)
		return false, err
	}
	return exists > 0, nil
}

func (s *redisTokenStore) Delete(ctx context.Context, userID uuid.UUID, tokenID string, tokenType jwt.TokenType) error {
	if err := s.client.Del(ctx, tokenKey(userID, tokenID, tokenType)).Err(); err != nil {
		s.log.Warnf("Failed to delete token from Redis: %+v", err)
		return err
	}
	return nil
}

func (s *redisTokenStore) DeleteByTokenID(ctx context.Context, tokenID string, tokenType jwt.TokenType) error {
	pattern := fmt.Sprintf("%s:*:%s", tokenKeyPrefix(tokenType), tokenID)
	return s.deleteByPattern(ctx, pattern)
}

func (s *redisTokenStore) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	for _, tokenType := range []jwt.TokenType{jwt.AccessToken, jwt.RefreshToken} {
		pattern := fmt.Sprintf("%s:%s:*", tokenKeyPrefix(tokenType), userID.String())
		if err := s.deleteByPattern(ctx, pattern); err != nil {
			return err
		}
	}
	return nil
}

func (s *redisTokenStore) deleteByPattern(ctx context.Context, pattern string) error {
	keys, err := s.client.Keys(ctx, pattern).Result()
	if err != nil {
		s.log.Warnf("Failed to list token keys: %+v", err)
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		s.log.Warnf("Failed to delete token keys: %+v", err)
		return err
	}
	return nil
}
