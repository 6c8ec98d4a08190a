package redis

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/search"
	goredis "github.com/redis/go-redis/v9"
)

const recentSearchPrefix = "ems:recent_searches:"

type recentSearchStore struct {
	client *goredis.Client
}

// NewRecentSearchStore keeps each user's recent searches in a Redis list.
func NewRecentSearchStore(client *goredis.Client) search.RecentStore {
	return &recentSearchStore{client: client}
}

func recentKey(userID string) string {
	return recentSearchPrefix + userID
}

func (s *recentSearchStore) List(ctx context.Context, userID string) ([]string, error) {
	items, err := s.client.LRange(ctx, recentKey(userID), 0, search.MaxRecent-1).Result()
	if err != nil {
		return nil, fmt.Errorf("list recent searches: %w", err)
	}
	return items, nil
}

// Add moves query to the front of the list, dropping earlier copies and
// anything past MaxRecent, in one transaction.
func (s *recentSearchStore) Add(ctx context.Context, userID string, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.List(ctx, userID)
	}

	key := recentKey(userID)
	var lrange *goredis.StringSliceCmd
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.LRem(ctx, key, 0, query)
		pipe.LPush(ctx, key, query)
		pipe.LTrim(ctx, key, 0, search.MaxRecent-1)
		lrange = pipe.LRange(ctx, key, 0, -1)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("save recent search: %w", err)
	}
	return lrange.Val(), nil
}

func (s *recentSearchStore) Clear(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, recentKey(userID)).Err(); err != nil {
		return fmt.Errorf("clear recent searches: %w", err)
	}
	return nil
}
