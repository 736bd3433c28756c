package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pagos/internal/models"

	"github.com/redis/go-redis/v9"
)

var (
	historyKey    = GenerateKey(EntityPayment, "history")
	historyGenKey = GenerateKey(EntityPayment, "history", "gen")

	errStaleHistory = errors.New("history generation moved")
)

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Get decodes the value under key into dest. A missing key is not an error.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

// Payment history caching
func (s *CacheService) GetHistory(ctx context.Context) ([]models.PaymentHistoryRow, bool, error) {
	var rows []models.PaymentHistoryRow
	found, err := s.Get(ctx, historyKey, &rows)
	if err != nil || !found {
		return nil, false, err
	}
	if rows == nil {
		rows = []models.PaymentHistoryRow{}
	}
	return rows, true, nil
}

// HistoryGeneration returns the number of invalidations so far. A history
// read from the store is only cached under the generation seen before the read.
func (s *CacheService) HistoryGeneration(ctx context.Context) (int64, error) {
	gen, err := s.client.Get(ctx, historyGenKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read history generation: %w", err)
	}
	return gen, nil
}

// SetHistory stores rows unless the history was invalidated after generation
// was read. A skipped write is not an error.
func (s *CacheService) SetHistory(ctx context.Context, generation int64, rows []models.PaymentHistoryRow) error {
	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, historyGenKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return errStaleHistory
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, historyKey, data, s.ttl)
			return nil
		})
		return err
	}, historyGenKey)

	if errors.Is(err, errStaleHistory) || errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

// InvalidateHistory bumps the generation and drops the cached history in
// one transaction.
func (s *CacheService) InvalidateHistory(ctx context.Context) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, historyGenKey)
		pipe.Del(ctx, historyKey)
		return nil
	})
	return err
}

// Close closes the Redis client connection
func (s *CacheService) Close() error {
	return s.client.Close()
}
