package services

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"solemate_server/config"
	"solemate_server/structs"
	"strings"
	"sync"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
	redisCtx    = context.Background()
)

// CacheService provides Redis caching with connection pooling and retry logic.
// It fronts two hot paths: product detail views and the session-token to
// cart-tree lookup.
type CacheService struct {
	logger *gecho.Logger
	config *structs.Config
	client *redis.Client
}

func NewCacheService(logger *gecho.Logger, cfg *structs.Config) *CacheService {
	return &CacheService{
		logger: logger,
		config: cfg,
		client: getRedisClient(),
	}
}

// getRedisClient returns a singleton Redis client with proper connection pooling
func getRedisClient() *redis.Client {
	redisOnce.Do(func() {
		cfg := config.GetConfig()
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Address,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,

			// Connection pool settings
			PoolSize:        cfg.Cache.PoolSize,
			MinIdleConns:    cfg.Cache.MinIdleConns,
			MaxIdleConns:    cfg.Cache.MaxIdleConns,
			PoolTimeout:     cfg.Cache.PoolTimeout,
			ConnMaxIdleTime: cfg.Cache.IdleTimeout,

			// Timeouts
			DialTimeout:  cfg.Cache.DialTimeout,
			ReadTimeout:  cfg.Cache.ReadTimeout,
			WriteTimeout: cfg.Cache.WriteTimeout,

			// Retry settings
			MaxRetries:      cfg.Cache.MaxRetries,
			MinRetryBackoff: cfg.Cache.MinRetryBackoff,
			MaxRetryBackoff: cfg.Cache.MaxRetryBackoff,
		})
	})
	return redisClient
}

// Close closes the Redis connection pool
func (cs *CacheService) Close() error {
	if redisClient != nil {
		return redisClient.Close()
	}
	return nil
}

func productDetailKey(id uuid.UUID) string {
	return fmt.Sprintf("product:detail:%s", id)
}

func sessionTreeKey(token string) string {
	return fmt.Sprintf("session:tree:%s", token)
}

// GetProductDetail returns the cached detail view, or nil on a miss.
func (cs *CacheService) GetProductDetail(id uuid.UUID) (*structs.ProductDetailView, error) {
	var raw string
	err := cs.withRetry(func() error {
		var err error
		raw, err = cs.client.Get(redisCtx, productDetailKey(id)).Result()
		return err
	}, cs.config.Cache.MaxRetries)

	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var view structs.ProductDetailView
	if err := json.Unmarshal([]byte(raw), &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (cs *CacheService) SetProductDetail(view *structs.ProductDetailView) error {
	raw, err := json.Marshal(view)
	if err != nil {
		return err
	}

	return cs.withRetry(func() error {
		return cs.client.Set(redisCtx, productDetailKey(view.ID), raw, cs.config.Cache.ProductTTL).Err()
	}, cs.config.Cache.MaxRetries)
}

// InvalidateProduct drops the cached detail view for a product.
func (cs *CacheService) InvalidateProduct(id uuid.UUID) error {
	return cs.withRetry(func() error {
		return cs.client.Del(redisCtx, productDetailKey(id)).Err()
	}, cs.config.Cache.MaxRetries)
}

// GetSessionTree returns the cached cart tree id for a session token,
// or nil on a miss.
func (cs *CacheService) GetSessionTree(token string) (*uuid.UUID, error) {
	var raw string
	err := cs.withRetry(func() error {
		var err error
		raw, err = cs.client.Get(redisCtx, sessionTreeKey(token)).Result()
		return err
	}, cs.config.Cache.MaxRetries)

	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (cs *CacheService) SetSessionTree(token string, treeID uuid.UUID) error {
	return cs.withRetry(func() error {
		return cs.client.Set(redisCtx, sessionTreeKey(token), treeID.String(), cs.config.Cache.SessionTTL).Err()
	}, cs.config.Cache.MaxRetries)
}

// InvalidateSessionTree drops a stale session -> tree mapping.
func (cs *CacheService) InvalidateSessionTree(token string) error {
	return cs.withRetry(func() error {
		return cs.client.Del(redisCtx, sessionTreeKey(token)).Err()
	}, cs.config.Cache.MaxRetries)
}

// withRetry executes a Redis operation with exponential backoff retry logic
func (cs *CacheService) withRetry(operation func() error, maxRetries int) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		lastErr = err

		if attempt == maxRetries {
			break
		}

		// Only retry on network/connection errors, not on logical errors like key not found
		if !isRetryableCacheError(err) {
			return err
		}

		maxBackoff := 2000 // max 2000ms = 2s
		base := 100        // 100ms base

		backoff := base * (1 << attempt) // exponential
		backoff = min(backoff, maxBackoff)

		// add jitter ±50%
		jitterBytes := make([]byte, 4)
		if _, err := rand.Read(jitterBytes); err != nil {
			time.Sleep(time.Duration(backoff) * time.Millisecond)
			continue
		}
		jitter := int(uint32(jitterBytes[0])<<24 | uint32(jitterBytes[1])<<16 | uint32(jitterBytes[2])<<8 | uint32(jitterBytes[3]))
		jitter = jitter % (backoff/2 + 1)
		if jitter < 0 {
			jitter = -jitter
		}
		backoffWithJitter := backoff/2 + jitter

		time.Sleep(time.Duration(backoffWithJitter) * time.Millisecond)
	}

	return fmt.Errorf("redis operation failed after %d retries: %w", maxRetries, lastErr)
}

// isRetryableCacheError determines if a cache error is worth retrying
func isRetryableCacheError(err error) bool {
	if err == nil {
		return false
	}

	// Don't retry on nil results (key not found)
	if err == redis.Nil {
		return false
	}

	errStr := err.Error()
	retryableErrors := []string{
		"connection refused",
		"connection reset",
		"timeout",
		"broken pipe",
		"no such host",
		"network is unreachable",
	}

	for _, retryable := range retryableErrors {
		if strings.Contains(errStr, retryable) {
			return true
		}
	}

	return false
}
